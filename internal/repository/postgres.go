package repository

import (
	"context"
	"fmt"
	"strings"

	"storefinder-api/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StoreRepository answers distance-bounded store queries against
// PostgreSQL/PostGIS. Distances are computed on the geography type, so they
// are geodesic, and every query orders by ascending distance.
type StoreRepository struct {
	db *pgxpool.Pool
}

// NewStoreRepository creates a new PostGIS-backed store repository.
func NewStoreRepository(db *pgxpool.Pool) *StoreRepository {
	return &StoreRepository{db: db}
}

const candidateColumns = `
		s.id,
		s.name,
		COALESCE(s.description, ''),
		s.is_active,
		COALESCE(s.street, ''),
		COALESCE(s.city, ''),
		COALESCE(s.state, ''),
		COALESCE(s.country, ''),
		COALESCE(s.postal_code, ''),
		ST_Y(s.geom::geometry) AS latitude,
		ST_X(s.geom::geometry) AS longitude,
		ST_Distance(s.geom, ST_SetSRID(ST_MakePoint($2, $1), 4326)::geography) AS distance_meters,
		COALESCE(s.tags, '{}')`

// sortColumns maps caller-supplied sort fields to real columns. Anything
// outside this map fails before a query is issued.
var sortColumns = map[string]string{
	"":         "distance_meters",
	"distance": "distance_meters",
	"name":     "s.name",
	"city":     "s.city",
}

func orderClause(sortBy, direction string) (string, error) {
	column, ok := sortColumns[strings.ToLower(sortBy)]
	if !ok {
		return "", fmt.Errorf("repository: unrecognized sort field %q: %w", sortBy, models.ErrInvalidArgument)
	}
	dir := "ASC"
	if strings.EqualFold(direction, "desc") {
		dir = "DESC"
	}
	if column == "distance_meters" {
		return fmt.Sprintf("ORDER BY distance_meters %s", dir), nil
	}
	return fmt.Sprintf("ORDER BY %s %s, distance_meters ASC", column, dir), nil
}

func scanCandidates(rows pgx.Rows) ([]models.StoreCandidate, error) {
	var candidates []models.StoreCandidate
	for rows.Next() {
		var c models.StoreCandidate
		err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Description,
			&c.IsActive,
			&c.Address.Street,
			&c.Address.City,
			&c.Address.State,
			&c.Address.Country,
			&c.Address.PostalCode,
			&c.Latitude,
			&c.Longitude,
			&c.DistanceMeters,
			&c.Tags,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan store candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}
	return candidates, nil
}

// QueryNearby returns the requested page of active stores within
// radiusMeters of the point, ordered by ascending geodesic distance.
func (r *StoreRepository) QueryNearby(ctx context.Context, lat, lon, radiusMeters float64, page, size int, sortBy, sortDirection string) (models.Page[models.StoreCandidate], error) {
	order, err := orderClause(sortBy, sortDirection)
	if err != nil {
		return models.Page[models.StoreCandidate]{}, err
	}

	countSQL := `
		SELECT COUNT(*)
		FROM stores s
		WHERE s.is_active
		  AND ST_DWithin(s.geom, ST_SetSRID(ST_MakePoint($2, $1), 4326)::geography, $3)
	`
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, lat, lon, radiusMeters).Scan(&total); err != nil {
		return models.Page[models.StoreCandidate]{}, fmt.Errorf("repository: failed to count nearby stores: %w", err)
	}

	sql := `
		SELECT` + candidateColumns + `
		FROM stores s
		WHERE s.is_active
		  AND ST_DWithin(s.geom, ST_SetSRID(ST_MakePoint($2, $1), 4326)::geography, $3)
		` + order + `
		LIMIT $4 OFFSET $5
	`
	rows, err := r.db.Query(ctx, sql, lat, lon, radiusMeters, size, page*size)
	if err != nil {
		return models.Page[models.StoreCandidate]{}, fmt.Errorf("repository: failed to execute nearby query: %w", err)
	}
	defer rows.Close()

	candidates, err := scanCandidates(rows)
	if err != nil {
		return models.Page[models.StoreCandidate]{}, err
	}

	return models.NewPage(candidates, page, size, total), nil
}

// QueryNearbyWithProductName returns the requested page of active stores
// within radiusMeters that hold in-stock inventory of a product whose name
// contains name (case-insensitive).
func (r *StoreRepository) QueryNearbyWithProductName(ctx context.Context, lat, lon, radiusMeters float64, page, size int, name string) (models.Page[models.StoreCandidate], error) {
	const productPredicate = `
		  AND EXISTS (
			SELECT 1
			FROM inventory i
			JOIN products p ON p.id = i.product_id
			WHERE i.store_id = s.id
			  AND i.is_active
			  AND i.stock_quantity > 0
			  AND p.name ILIKE '%' || $4 || '%'
		  )`

	countSQL := `
		SELECT COUNT(*)
		FROM stores s
		WHERE s.is_active
		  AND ST_DWithin(s.geom, ST_SetSRID(ST_MakePoint($2, $1), 4326)::geography, $3)
	` + productPredicate
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, lat, lon, radiusMeters, name).Scan(&total); err != nil {
		return models.Page[models.StoreCandidate]{}, fmt.Errorf("repository: failed to count stores with product %q: %w", name, err)
	}

	sql := `
		SELECT` + candidateColumns + `
		FROM stores s
		WHERE s.is_active
		  AND ST_DWithin(s.geom, ST_SetSRID(ST_MakePoint($2, $1), 4326)::geography, $3)
	` + productPredicate + `
		ORDER BY distance_meters ASC
		LIMIT $5 OFFSET $6
	`
	rows, err := r.db.Query(ctx, sql, lat, lon, radiusMeters, name, size, page*size)
	if err != nil {
		return models.Page[models.StoreCandidate]{}, fmt.Errorf("repository: failed to execute product name query: %w", err)
	}
	defer rows.Close()

	candidates, err := scanCandidates(rows)
	if err != nil {
		return models.Page[models.StoreCandidate]{}, err
	}

	return models.NewPage(candidates, page, size, total), nil
}

// QueryNearbyWithProductID returns all active stores within radiusMeters
// holding in-stock inventory of the exact product, ordered by ascending
// distance.
func (r *StoreRepository) QueryNearbyWithProductID(ctx context.Context, lat, lon, radiusMeters float64, productID int64) ([]models.StoreCandidate, error) {
	sql := `
		SELECT` + candidateColumns + `
		FROM stores s
		WHERE s.is_active
		  AND ST_DWithin(s.geom, ST_SetSRID(ST_MakePoint($2, $1), 4326)::geography, $3)
		  AND EXISTS (
			SELECT 1
			FROM inventory i
			WHERE i.store_id = s.id
			  AND i.product_id = $4
			  AND i.is_active
			  AND i.stock_quantity > 0
		  )
		ORDER BY distance_meters ASC
	`
	rows, err := r.db.Query(ctx, sql, lat, lon, radiusMeters, productID)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute product id query: %w", err)
	}
	defer rows.Close()

	return scanCandidates(rows)
}

// QueryNearbyFullText returns all active stores within radiusMeters whose
// name or description matches the free-text query and that hold any in-stock
// inventory, ordered by ascending distance.
func (r *StoreRepository) QueryNearbyFullText(ctx context.Context, query string, lat, lon, radiusMeters float64) ([]models.StoreCandidate, error) {
	sql := `
		SELECT` + candidateColumns + `
		FROM stores s
		WHERE s.is_active
		  AND ST_DWithin(s.geom, ST_SetSRID(ST_MakePoint($2, $1), 4326)::geography, $3)
		  AND s.search_tsvector @@ websearch_to_tsquery('english', $4)
		  AND EXISTS (
			SELECT 1
			FROM inventory i
			WHERE i.store_id = s.id
			  AND i.is_active
			  AND i.stock_quantity > 0
		  )
		ORDER BY distance_meters ASC
	`
	rows, err := r.db.Query(ctx, sql, lat, lon, radiusMeters, query)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute full-text query: %w", err)
	}
	defer rows.Close()

	return scanCandidates(rows)
}

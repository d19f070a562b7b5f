package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefinder-api/internal/geo"
	"storefinder-api/internal/models"
	"storefinder-api/internal/tags"
)

const minProductNameLength = 3

// StoreGateway is the spatial query collaborator. Implementations must
// return rows pre-sorted by ascending geodesic distance and restricted to
// active stores (and in-stock inventory where product-bound).
type StoreGateway interface {
	QueryNearby(ctx context.Context, lat, lon, radiusMeters float64, page, size int, sortBy, sortDirection string) (models.Page[models.StoreCandidate], error)
	QueryNearbyWithProductName(ctx context.Context, lat, lon, radiusMeters float64, page, size int, name string) (models.Page[models.StoreCandidate], error)
	QueryNearbyWithProductID(ctx context.Context, lat, lon, radiusMeters float64, productID int64) ([]models.StoreCandidate, error)
	QueryNearbyFullText(ctx context.Context, query string, lat, lon, radiusMeters float64) ([]models.StoreCandidate, error)
}

// ProductLookup resolves product existence before a spatial query is issued.
type ProductLookup interface {
	ExistsByName(ctx context.Context, name string) (bool, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

// StoreSearchService orchestrates nearby-store searches: it validates input,
// delegates to the spatial gateway, maps rows into the caller-facing shape
// and applies the tag post-filter. Stateless and safe for concurrent use.
type StoreSearchService struct {
	gateway  StoreGateway
	products ProductLookup
}

// NewStoreSearchService creates a new store search service.
func NewStoreSearchService(gateway StoreGateway, products ProductLookup) *StoreSearchService {
	return &StoreSearchService{gateway: gateway, products: products}
}

func validateArea(point models.GeoPoint, radiusKm float64) error {
	if !point.Valid() {
		return fmt.Errorf("service: invalid coordinates (%f, %f): %w", point.Latitude, point.Longitude, models.ErrInvalidArgument)
	}
	if radiusKm <= 0 {
		return fmt.Errorf("service: radius must be positive, got %gkm: %w", radiusKm, models.ErrInvalidArgument)
	}
	return nil
}

// gatewayError classifies a failed gateway call. Sort-field rejections
// surface as invalid argument; everything else is a dependency failure.
func gatewayError(err error) error {
	if errors.Is(err, models.ErrInvalidArgument) {
		return err
	}
	return fmt.Errorf("service: spatial query failed: %w: %w", models.ErrDependencyFailure, err)
}

// FindNearby returns one page of active stores within criteria.RadiusKm of
// criteria.Point, ordered by ascending distance. A page with zero elements
// is reported as not found; an intentionally out-of-range page is therefore
// indistinguishable from an empty search area.
func (s *StoreSearchService) FindNearby(ctx context.Context, criteria models.SearchCriteria) (models.Page[models.NearbyStoreResult], error) {
	if err := validateArea(criteria.Point, criteria.RadiusKm); err != nil {
		return models.Page[models.NearbyStoreResult]{}, err
	}

	radiusMeters := geo.KilometersToMeters(criteria.RadiusKm)
	page, err := s.gateway.QueryNearby(ctx, criteria.Point.Latitude, criteria.Point.Longitude, radiusMeters,
		criteria.Page, criteria.Size, criteria.SortBy, criteria.SortDirection)
	if err != nil {
		return models.Page[models.NearbyStoreResult]{}, gatewayError(err)
	}

	if len(page.Content) == 0 {
		return models.Page[models.NearbyStoreResult]{}, fmt.Errorf("service: no stores within %gkm radius: %w", criteria.RadiusKm, models.ErrNotFound)
	}

	return mapPage(page), nil
}

// FindNearbyWithProductName returns one page of active stores within the
// radius holding in-stock inventory of a product whose name contains
// productName. Product existence is checked first so a miss never costs a
// spatial scan.
func (s *StoreSearchService) FindNearbyWithProductName(ctx context.Context, criteria models.SearchCriteria, productName string) (models.Page[models.NearbyStoreResult], error) {
	productName = strings.TrimSpace(productName)
	if len(productName) < minProductNameLength {
		return models.Page[models.NearbyStoreResult]{}, fmt.Errorf("service: product name must be at least %d characters: %w", minProductNameLength, models.ErrInvalidArgument)
	}
	if err := validateArea(criteria.Point, criteria.RadiusKm); err != nil {
		return models.Page[models.NearbyStoreResult]{}, err
	}

	exists, err := s.products.ExistsByName(ctx, productName)
	if err != nil {
		return models.Page[models.NearbyStoreResult]{}, fmt.Errorf("service: product lookup failed: %w: %w", models.ErrDependencyFailure, err)
	}
	if !exists {
		return models.Page[models.NearbyStoreResult]{}, fmt.Errorf("service: no product named %q: %w", productName, models.ErrNotFound)
	}

	radiusMeters := geo.KilometersToMeters(criteria.RadiusKm)
	page, err := s.gateway.QueryNearbyWithProductName(ctx, criteria.Point.Latitude, criteria.Point.Longitude, radiusMeters,
		criteria.Page, criteria.Size, productName)
	if err != nil {
		return models.Page[models.NearbyStoreResult]{}, gatewayError(err)
	}

	if len(page.Content) == 0 {
		return models.Page[models.NearbyStoreResult]{}, fmt.Errorf("service: no stores with product %q within %gkm radius: %w", productName, criteria.RadiusKm, models.ErrNotFound)
	}

	return mapPage(page), nil
}

// FindNearbyWithProductID returns all active stores within radiusKm of the
// point holding in-stock inventory of the exact product, ordered by
// ascending distance.
func (s *StoreSearchService) FindNearbyWithProductID(ctx context.Context, latitude, longitude, radiusKm float64, productID int64) ([]models.NearbyStoreResult, error) {
	point := models.GeoPoint{Latitude: latitude, Longitude: longitude}
	if err := validateArea(point, radiusKm); err != nil {
		return nil, err
	}

	exists, err := s.products.ExistsByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("service: product lookup failed: %w: %w", models.ErrDependencyFailure, err)
	}
	if !exists {
		return nil, fmt.Errorf("service: no product with id %d: %w", productID, models.ErrNotFound)
	}

	radiusMeters := geo.KilometersToMeters(radiusKm)
	candidates, err := s.gateway.QueryNearbyWithProductID(ctx, latitude, longitude, radiusMeters, productID)
	if err != nil {
		return nil, gatewayError(err)
	}

	if len(candidates) == 0 {
		return nil, fmt.Errorf("service: no stores with product %d within %.0fkm radius: %w", productID, radiusKm, models.ErrNotFound)
	}

	return mapCandidates(candidates), nil
}

// SearchNearbyFullText returns all active stores within radiusKm whose name
// or description matches the free-text query and that hold any in-stock
// inventory, ordered by ascending distance.
func (s *StoreSearchService) SearchNearbyFullText(ctx context.Context, query string, latitude, longitude, radiusKm float64) ([]models.NearbyStoreResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("service: search query must not be blank: %w", models.ErrInvalidArgument)
	}
	point := models.GeoPoint{Latitude: latitude, Longitude: longitude}
	if err := validateArea(point, radiusKm); err != nil {
		return nil, err
	}

	radiusMeters := geo.KilometersToMeters(radiusKm)
	candidates, err := s.gateway.QueryNearbyFullText(ctx, query, latitude, longitude, radiusMeters)
	if err != nil {
		return nil, gatewayError(err)
	}

	if len(candidates) == 0 {
		return nil, fmt.Errorf("service: no stores matching %q within %gkm radius: %w", query, radiusKm, models.ErrNotFound)
	}

	return mapCandidates(candidates), nil
}

// FindNearbyFilteredByTags runs FindNearby and keeps only the stores whose
// normalized tag set is a superset of the query tags (matchAll) or
// intersects them (matchAny). Paging happens before the tag filter, so a
// page can shrink below its size once filtered. An empty tag set returns the
// page content unfiltered.
func (s *StoreSearchService) FindNearbyFilteredByTags(ctx context.Context, criteria models.SearchCriteria, tagSet []string, matchAll bool) ([]models.NearbyStoreResult, error) {
	page, err := s.FindNearby(ctx, criteria)
	if err != nil {
		return nil, err
	}

	if len(tagSet) == 0 {
		return page.Content, nil
	}

	query := tags.Normalize(tagSet)
	filtered := make([]models.NearbyStoreResult, 0, len(page.Content))
	for _, store := range page.Content {
		storeTags := tags.Normalize(store.Tags)
		if matchAll {
			if tags.ContainsAll(storeTags, query) {
				filtered = append(filtered, store)
			}
		} else if tags.ContainsAny(storeTags, query) {
			filtered = append(filtered, store)
		}
	}

	return filtered, nil
}

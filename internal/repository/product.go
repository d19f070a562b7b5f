package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ProductRepository answers existence checks against the products table.
type ProductRepository struct {
	db *pgxpool.Pool
}

// NewProductRepository creates a new PostgreSQL product repository.
func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{db: db}
}

// ExistsByName reports whether any product's name contains name
// (case-insensitive), matching the predicate the spatial queries use.
func (r *ProductRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	sql := `SELECT EXISTS (SELECT 1 FROM products WHERE name ILIKE '%' || $1 || '%')`
	if err := r.db.QueryRow(ctx, sql, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("repository: failed to check product name %q: %w", name, err)
	}
	return exists, nil
}

// ExistsByID reports whether a product with the given id exists.
func (r *ProductRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	sql := `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`
	if err := r.db.QueryRow(ctx, sql, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("repository: failed to check product id %d: %w", id, err)
	}
	return exists, nil
}

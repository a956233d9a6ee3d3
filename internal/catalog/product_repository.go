package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// productColumns is the column list shared by every product query.
const productColumns = "id, name, description, price, stock, category, user_id, created_at, updated_at"

// ProductRepository defines the interface for product persistence.
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context) ([]Product, error)
	ListByUser(ctx context.Context, userID string) ([]Product, error)
	ListByCategory(ctx context.Context, category string) ([]Product, error)
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id string) error
}

// PostgresProductRepository implements ProductRepository against the hosted Postgres.
type PostgresProductRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new Postgres-backed product repository.
func NewProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

// Create inserts a new product. The ID is generated if empty.
func (r *PostgresProductRepository) Create(ctx context.Context, product *Product) error {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO products (id, name, description, price, stock, category, user_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		product.ID, product.Name, nullString(product.Description), product.Price,
		product.Stock, nullString(product.Category), product.UserID,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating product: %w", err)
	}

	return nil
}

// GetByID retrieves a product by its unique ID.
func (r *PostgresProductRepository) GetByID(ctx context.Context, id string) (*Product, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE id = $1", id)
	return scanProduct(row)
}

// List returns all products, newest first.
func (r *PostgresProductRepository) List(ctx context.Context) ([]Product, error) {
	return r.listProducts(ctx,
		"SELECT "+productColumns+" FROM products ORDER BY created_at DESC")
}

// ListByUser returns the products owned by a user, newest first.
func (r *PostgresProductRepository) ListByUser(ctx context.Context, userID string) ([]Product, error) {
	return r.listProducts(ctx,
		"SELECT "+productColumns+" FROM products WHERE user_id = $1 ORDER BY created_at DESC", userID)
}

// ListByCategory returns the products in a category, newest first.
func (r *PostgresProductRepository) ListByCategory(ctx context.Context, category string) ([]Product, error) {
	return r.listProducts(ctx,
		"SELECT "+productColumns+" FROM products WHERE category = $1 ORDER BY created_at DESC", category)
}

// Update modifies a product's mutable fields (name, description, price, stock, category).
func (r *PostgresProductRepository) Update(ctx context.Context, product *Product) error {
	product.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx,
		`UPDATE products SET name = $1, description = $2, price = $3, stock = $4, category = $5, updated_at = $6
		 WHERE id = $7`,
		product.Name, nullString(product.Description), product.Price, product.Stock,
		nullString(product.Category), product.UpdatedAt, product.ID,
	)
	if err != nil {
		return fmt.Errorf("updating product: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating product: %w", err)
	}
	if rows == 0 {
		return ErrProductNotFound
	}
	return nil
}

// Delete removes a product by ID.
func (r *PostgresProductRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}
	if rows == 0 {
		return ErrProductNotFound
	}
	return nil
}

// listProducts executes a query and scans all product results.
func (r *PostgresProductRepository) listProducts(ctx context.Context, query string, args ...any) ([]Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating products: %w", err)
	}

	if products == nil {
		products = []Product{}
	}
	return products, nil
}

// scanner is an interface for sql.Row and sql.Rows Scan methods.
type scanner interface {
	Scan(dest ...any) error
}

// scanProduct scans a product from any scanner (Row or Rows).
func scanProduct(s scanner) (*Product, error) {
	var p Product
	var description, category sql.NullString

	err := s.Scan(&p.ID, &p.Name, &description, &p.Price, &p.Stock,
		&category, &p.UserID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("scanning product: %w", err)
	}

	if description.Valid {
		p.Description = description.String
	}
	if category.Valid {
		p.Category = category.String
	}

	return &p, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

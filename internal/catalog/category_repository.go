package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// CategoryRepository defines the interface for category lookups. Categories
// are seeded through migrations; there are no write operations.
type CategoryRepository interface {
	List(ctx context.Context) ([]Category, error)
	GetByName(ctx context.Context, name string) (*Category, error)
}

// PostgresCategoryRepository implements CategoryRepository against Postgres.
type PostgresCategoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new Postgres-backed category repository.
func NewCategoryRepository(db *sql.DB) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{db: db}
}

// List returns all categories sorted by name.
func (r *PostgresCategoryRepository) List(ctx context.Context) ([]Category, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, description, created_at FROM categories ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}

	if categories == nil {
		categories = []Category{}
	}
	return categories, nil
}

// GetByName retrieves a category by its unique name.
func (r *PostgresCategoryRepository) GetByName(ctx context.Context, name string) (*Category, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, name, description, created_at FROM categories WHERE name = $1", name)
	return scanCategory(row)
}

func scanCategory(s scanner) (*Category, error) {
	var c Category
	var description sql.NullString

	err := s.Scan(&c.ID, &c.Name, &description, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("scanning category: %w", err)
	}

	if description.Valid {
		c.Description = description.String
	}

	return &c, nil
}

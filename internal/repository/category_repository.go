package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// CategoryRepository lists the categories sellers have declared on their profiles
type CategoryRepository interface {
	List(ctx context.Context) ([]string, error)
}

type categoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new instance of CategoryRepository
func NewCategoryRepository(db *sql.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// List retrieves the distinct, non-empty seller categories in name order
func (r *categoryRepository) List(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT category
		FROM seller_profiles
		WHERE category <> ''
		ORDER BY category ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

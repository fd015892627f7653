package repository

import (
	"context"
	"database/sql"
	"fmt"

	"handcrafted-haven/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReviewStats is the raw aggregate over a product's reviews.
// Average is invalid when the product has no reviews.
type ReviewStats struct {
	Average decimal.NullDecimal
	Count   int
}

// ReviewRepository defines the interface for review data access
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]*domain.Review, error)
	Stats(ctx context.Context, productID uuid.UUID) (*ReviewStats, error)
}

type reviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new instance of ReviewRepository
func NewReviewRepository(db *sql.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) error {
	query := `
		INSERT INTO reviews (id, product_id, user_id, rating, review, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		review.ID,
		review.ProductID,
		review.UserID,
		review.Rating,
		review.Review,
		review.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

// ListByProduct retrieves a product's reviews with the reviewer's name, oldest first
func (r *reviewRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*domain.Review, error) {
	query := `
		SELECT r.id, r.product_id, r.user_id, COALESCE(u.first_name, ''), COALESCE(u.last_name, ''),
		       r.rating, COALESCE(r.review, ''), r.created_at
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.product_id = $1
		ORDER BY r.created_at ASC, r.id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []*domain.Review{}
	for rows.Next() {
		review := &domain.Review{}
		err := rows.Scan(
			&review.ID,
			&review.ProductID,
			&review.UserID,
			&review.FirstName,
			&review.LastName,
			&review.Rating,
			&review.Review,
			&review.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}

	return reviews, nil
}

// Stats aggregates the average rating and review count of a product
func (r *reviewRepository) Stats(ctx context.Context, productID uuid.UUID) (*ReviewStats, error) {
	query := `
		SELECT AVG(rating)::text, COUNT(*)
		FROM reviews
		WHERE product_id = $1
	`

	stats := &ReviewStats{}
	if err := r.db.QueryRowContext(ctx, query, productID).Scan(&stats.Average, &stats.Count); err != nil {
		return nil, fmt.Errorf("failed to aggregate reviews: %w", err)
	}

	return stats, nil
}

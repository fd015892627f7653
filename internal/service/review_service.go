package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"handcrafted-haven/internal/domain"
	"handcrafted-haven/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	MinRating       = 1
	MaxRating       = 5
	MinReviewLength = 10
)

var (
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
	ErrReviewTooShort = errors.New("review must be at least 10 characters")
)

// ReviewService handles product reviews and their aggregate rating
type ReviewService interface {
	Post(ctx context.Context, userID, productID uuid.UUID, rating int, text string) (*domain.Review, error)
	List(ctx context.Context, productID uuid.UUID) ([]*domain.Review, error)
	Stats(ctx context.Context, productID uuid.UUID) (*domain.ProductStats, error)
}

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
	logger      *zap.Logger
}

// NewReviewService creates a new instance of ReviewService
func NewReviewService(reviewRepo repository.ReviewRepository, productRepo repository.ProductRepository, logger *zap.Logger) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

func (s *reviewService) Post(ctx context.Context, userID, productID uuid.UUID, rating int, text string) (*domain.Review, error) {
	if rating < MinRating || rating > MaxRating {
		return nil, ErrInvalidRating
	}
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < MinReviewLength {
		return nil, ErrReviewTooShort
	}

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}

	review := &domain.Review{
		ID:        uuid.New(),
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
		Review:    text,
		CreatedAt: time.Now(),
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to post review: %w", err)
	}

	s.logger.Info("Review posted",
		zap.String("product_id", productID.String()),
		zap.Int("rating", rating),
	)

	return review, nil
}

// List returns a product's reviews, oldest first
func (s *reviewService) List(ctx context.Context, productID uuid.UUID) ([]*domain.Review, error) {
	reviews, err := s.reviewRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// Stats returns the average rating to one decimal place, "0.0" when unrated
func (s *reviewService) Stats(ctx context.Context, productID uuid.UUID) (*domain.ProductStats, error) {
	raw, err := s.reviewRepo.Stats(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get review stats: %w", err)
	}

	stats := &domain.ProductStats{
		AverageRating: "0.0",
		ReviewCount:   raw.Count,
	}
	if raw.Average.Valid {
		stats.AverageRating = raw.Average.Decimal.StringFixed(1)
	}

	return stats, nil
}

package catalog

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
)

var (
	ErrInvalidPageSize   = errors.New("page size must be greater than zero")
	ErrInvalidPageNumber = errors.New("page number must be at least 1")
)

// Store is the product storage the catalog reads from.
// Find returns rows ordered by product name, then id, ascending.
// A limit of zero or less returns every matching row.
type Store interface {
	Count(ctx context.Context, pred Predicate) (int, error)
	Find(ctx context.Context, pred Predicate, limit, offset int) ([]JoinedProductRow, error)
}

// CategoryLister lists the distinct seller categories shoppers can filter by
type CategoryLister interface {
	List(ctx context.Context) ([]string, error)
}

// PageResult is one page of the filtered catalog
type PageResult struct {
	TotalCount int           `json:"total_count"`
	Items      []ProductView `json:"items"`
}

// Service answers catalog queries. It holds no state between calls.
type Service struct {
	store      Store
	categories CategoryLister
	logger     *zap.Logger
}

// NewService creates a new catalog Service
func NewService(store Store, categories CategoryLister, logger *zap.Logger) *Service {
	return &Service{
		store:      store,
		categories: categories,
		logger:     logger,
	}
}

// Count returns the number of products matching the selection
func (s *Service) Count(ctx context.Context, sel FilterSelection) (int, error) {
	total, err := s.store.Count(ctx, Build(sel))
	if err != nil {
		return 0, fmt.Errorf("failed to count catalog products: %w", err)
	}
	return total, nil
}

// Page returns the total match count and the requested 1-based page
func (s *Service) Page(ctx context.Context, sel FilterSelection, pageSize, pageNumber int) (*PageResult, error) {
	if pageSize <= 0 {
		return nil, ErrInvalidPageSize
	}
	if pageNumber < 1 {
		return nil, ErrInvalidPageNumber
	}

	pred := Build(sel)

	total, err := s.store.Count(ctx, pred)
	if err != nil {
		return nil, fmt.Errorf("failed to count catalog products: %w", err)
	}

	// a page whose offset does not fit in an int lies past any stored row
	if pageNumber-1 > math.MaxInt/pageSize {
		return &PageResult{TotalCount: total, Items: []ProductView{}}, nil
	}

	offset := pageSize * (pageNumber - 1)
	rows, err := s.store.Find(ctx, pred, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog page: %w", err)
	}

	s.logger.Debug("Catalog page fetched",
		zap.Int("total", total),
		zap.Int("page", pageNumber),
		zap.Int("page_size", pageSize),
		zap.Int("items", len(rows)),
	)

	return &PageResult{
		TotalCount: total,
		Items:      toViews(rows),
	}, nil
}

// List returns every product matching the selection
func (s *Service) List(ctx context.Context, sel FilterSelection) ([]ProductView, error) {
	rows, err := s.store.Find(ctx, Build(sel), 0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog products: %w", err)
	}
	return toViews(rows), nil
}

// Featured returns the first n products of the unfiltered catalog
func (s *Service) Featured(ctx context.Context, n int) ([]ProductView, error) {
	if n <= 0 {
		return nil, ErrInvalidPageSize
	}
	rows, err := s.store.Find(ctx, Predicate{}, n, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch featured products: %w", err)
	}
	return toViews(rows), nil
}

// Categories returns the category labels available for filtering
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func toViews(rows []JoinedProductRow) []ProductView {
	views := make([]ProductView, 0, len(rows))
	for _, row := range rows {
		views = append(views, ToView(row))
	}
	return views
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"handcrafted-haven/internal/catalog"
	"handcrafted-haven/internal/domain"
	"handcrafted-haven/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrForbidden     = errors.New("product belongs to another seller")
	ErrNegativePrice = errors.New("price must not be negative")
	ErrPriceTooLarge = errors.New("price must not exceed 99999999.99")
)

// MaxPrice is the largest price a NUMERIC(10,2) column holds
var MaxPrice = decimal.RequireFromString("99999999.99")

// ProductInput carries the seller-editable fields of a product
type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Image       string
	Category    *string
}

// ProductService manages the products a seller lists
type ProductService interface {
	Create(ctx context.Context, sellerID uuid.UUID, in ProductInput) (*domain.Product, error)
	Update(ctx context.Context, sellerID, productID uuid.UUID, in ProductInput) (*domain.Product, error)
	UpdateDescription(ctx context.Context, sellerID, productID uuid.UUID, description string) error
	Delete(ctx context.Context, sellerID, productID uuid.UUID) error
	Get(ctx context.Context, productID uuid.UUID) (*catalog.ProductView, error)
}

type productService struct {
	productRepo repository.ProductRepository
	logger      *zap.Logger
}

// NewProductService creates a new instance of ProductService
func NewProductService(productRepo repository.ProductRepository, logger *zap.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger,
	}
}

func (s *productService) Create(ctx context.Context, sellerID uuid.UUID, in ProductInput) (*domain.Product, error) {
	if err := checkPrice(in.Price); err != nil {
		return nil, err
	}

	now := time.Now()
	product := &domain.Product{
		ID:          uuid.New(),
		SellerID:    sellerID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price.Round(2),
		Image:       in.Image,
		Category:    in.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("seller_id", sellerID.String()),
	)

	return product, nil
}

// Update replaces name, description, price and image. The category is kept.
func (s *productService) Update(ctx context.Context, sellerID, productID uuid.UUID, in ProductInput) (*domain.Product, error) {
	if err := checkPrice(in.Price); err != nil {
		return nil, err
	}

	product, err := s.ownedProduct(ctx, sellerID, productID)
	if err != nil {
		return nil, err
	}

	product.Name = in.Name
	product.Description = in.Description
	product.Price = in.Price.Round(2)
	product.Image = in.Image
	product.UpdatedAt = time.Now()

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}

func (s *productService) UpdateDescription(ctx context.Context, sellerID, productID uuid.UUID, description string) error {
	if _, err := s.ownedProduct(ctx, sellerID, productID); err != nil {
		return err
	}

	if err := s.productRepo.UpdateDescription(ctx, productID, sellerID, description); err != nil {
		return fmt.Errorf("failed to update product description: %w", err)
	}

	return nil
}

func (s *productService) Delete(ctx context.Context, sellerID, productID uuid.UUID) error {
	if _, err := s.ownedProduct(ctx, sellerID, productID); err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, productID, sellerID); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.logger.Info("Product deleted",
		zap.String("product_id", productID.String()),
		zap.String("seller_id", sellerID.String()),
	)

	return nil
}

// Get returns the shopper-facing view of a single product
func (s *productService) Get(ctx context.Context, productID uuid.UUID) (*catalog.ProductView, error) {
	row, err := s.productRepo.FindViewByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	view := catalog.ToView(*row)
	return &view, nil
}

// checkPrice validates the price as it will be stored, rounded to cents
func checkPrice(price decimal.Decimal) error {
	rounded := price.Round(2)
	if rounded.IsNegative() {
		return ErrNegativePrice
	}
	if rounded.GreaterThan(MaxPrice) {
		return ErrPriceTooLarge
	}
	return nil
}

func (s *productService) ownedProduct(ctx context.Context, sellerID, productID uuid.UUID) (*domain.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}

	if !product.OwnedBy(sellerID) {
		return nil, ErrForbidden
	}

	return product, nil
}

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

// MinStoryLength is the shortest story a seller may publish
const MinStoryLength = 10

var (
	ErrStoryTooShort = errors.New("story must be at least 10 characters")
)

// SellerService serves seller storefronts and their stories
type SellerService interface {
	List(ctx context.Context) ([]*domain.SellerProfile, error)
	Get(ctx context.Context, sellerID uuid.UUID) (*domain.SellerProfile, error)
	UpdateBasics(ctx context.Context, basics domain.SellerBasics) (*domain.SellerProfile, error)
	PostStory(ctx context.Context, sellerID uuid.UUID, content string) (*domain.Story, error)
	Stories(ctx context.Context, sellerID uuid.UUID) ([]*domain.Story, error)
}

type sellerService struct {
	sellerRepo repository.SellerRepository
	logger     *zap.Logger
}

// NewSellerService creates a new instance of SellerService
func NewSellerService(sellerRepo repository.SellerRepository, logger *zap.Logger) SellerService {
	return &sellerService{
		sellerRepo: sellerRepo,
		logger:     logger,
	}
}

// List returns every seller ordered by name with display defaults applied
func (s *sellerService) List(ctx context.Context) ([]*domain.SellerProfile, error) {
	sellers, err := s.sellerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sellers: %w", err)
	}

	for _, seller := range sellers {
		withDefaults(seller)
	}

	return sellers, nil
}

func (s *sellerService) Get(ctx context.Context, sellerID uuid.UUID) (*domain.SellerProfile, error) {
	seller, err := s.sellerRepo.FindByUserID(ctx, sellerID)
	if err != nil {
		if errors.Is(err, repository.ErrSellerNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get seller: %w", err)
	}

	return withDefaults(seller), nil
}

// UpdateBasics rewrites the seller's name and profile fields and returns the result
func (s *sellerService) UpdateBasics(ctx context.Context, basics domain.SellerBasics) (*domain.SellerProfile, error) {
	if err := s.sellerRepo.UpdateBasics(ctx, basics); err != nil {
		if errors.Is(err, repository.ErrSellerNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update seller: %w", err)
	}

	s.logger.Info("Seller profile updated", zap.String("seller_id", basics.UserID.String()))

	return s.Get(ctx, basics.UserID)
}

func (s *sellerService) PostStory(ctx context.Context, sellerID uuid.UUID, content string) (*domain.Story, error) {
	content = strings.TrimSpace(content)
	if utf8.RuneCountInString(content) < MinStoryLength {
		return nil, ErrStoryTooShort
	}

	story := &domain.Story{
		ID:        uuid.New(),
		SellerID:  sellerID,
		Content:   content,
		CreatedAt: time.Now(),
	}

	if err := s.sellerRepo.CreateStory(ctx, story); err != nil {
		return nil, fmt.Errorf("failed to post story: %w", err)
	}

	return story, nil
}

// Stories returns a seller's stories, newest first
func (s *sellerService) Stories(ctx context.Context, sellerID uuid.UUID) ([]*domain.Story, error) {
	stories, err := s.sellerRepo.ListStories(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}
	return stories, nil
}

func withDefaults(seller *domain.SellerProfile) *domain.SellerProfile {
	if seller.ImageURL == "" {
		seller.ImageURL = domain.DefaultSellerImage
	}
	return seller
}

package service

import (
	"context"
	"errors"
	"testing"

	"handcrafted-haven/internal/domain"
	"handcrafted-haven/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSellerService_ListAppliesPlaceholderImage(t *testing.T) {
	repo := newMockSellerRepository()
	pedro := &domain.SellerProfile{UserID: uuid.New(), FirstName: "Pedro", LastName: "Torres", Category: "Woodwork", ImageURL: "/images/sellers/vendedormadera.png"}
	ana := &domain.SellerProfile{UserID: uuid.New(), FirstName: "Ana", LastName: "Gomez", Category: "Ceramics"}
	require.NoError(t, repo.Create(context.Background(), pedro))
	require.NoError(t, repo.Create(context.Background(), ana))

	svc := NewSellerService(repo, zap.NewNop())

	sellers, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, sellers, 2)
	assert.Equal(t, "Ana", sellers[0].FirstName)
	assert.Equal(t, domain.DefaultSellerImage, sellers[0].ImageURL)
	assert.Equal(t, "/images/sellers/vendedormadera.png", sellers[1].ImageURL)

	seller, err := svc.Get(context.Background(), ana.UserID)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSellerImage, seller.ImageURL)

	_, err = svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrSellerNotFound)
}

func TestSellerService_UpdateBasics(t *testing.T) {
	repo := newMockSellerRepository()
	sellerID := uuid.New()
	require.NoError(t, repo.Create(context.Background(), &domain.SellerProfile{UserID: sellerID, FirstName: "Ana"}))

	svc := NewSellerService(repo, zap.NewNop())

	updated, err := svc.UpdateBasics(context.Background(), domain.SellerBasics{
		UserID:      sellerID,
		FirstName:   "Ana Maria",
		LastName:    "Gomez",
		Category:    "Ceramics",
		Phone:       "098-765-4321",
		Description: "Creator of fine pottery.",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", updated.FirstName)
	assert.Equal(t, "Ceramics", updated.Category)
	assert.Equal(t, domain.DefaultSellerImage, updated.ImageURL)

	_, err = svc.UpdateBasics(context.Background(), domain.SellerBasics{UserID: uuid.New()})
	assert.ErrorIs(t, err, repository.ErrSellerNotFound)

	errDB := errors.New("connection reset")
	repo.updateErr = errDB
	_, err = svc.UpdateBasics(context.Background(), domain.SellerBasics{UserID: sellerID})
	assert.ErrorIs(t, err, errDB)
}

func TestSellerService_Stories(t *testing.T) {
	repo := newMockSellerRepository()
	svc := NewSellerService(repo, zap.NewNop())
	ctx := context.Background()
	sellerID := uuid.New()

	_, err := svc.PostStory(ctx, sellerID, "   too short   ")
	assert.ErrorIs(t, err, ErrStoryTooShort)

	first, err := svc.PostStory(ctx, sellerID, "My first kiln firing")
	require.NoError(t, err)
	second, err := svc.PostStory(ctx, sellerID, "  Glazing with local clay  ")
	require.NoError(t, err)
	assert.Equal(t, "Glazing with local clay", second.Content)

	stories, err := svc.Stories(ctx, sellerID)
	require.NoError(t, err)
	require.Len(t, stories, 2)
	assert.Equal(t, second.ID, stories[0].ID)
	assert.Equal(t, first.ID, stories[1].ID)
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"handcrafted-haven/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrSellerNotFound = errors.New("seller profile not found")
)

// SellerRepository defines the interface for seller profile and story data access
type SellerRepository interface {
	Create(ctx context.Context, profile *domain.SellerProfile) error
	CreateWithUser(ctx context.Context, user *domain.User, profile *domain.SellerProfile) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.SellerProfile, error)
	List(ctx context.Context) ([]*domain.SellerProfile, error)
	UpdateBasics(ctx context.Context, basics domain.SellerBasics) error
	CreateStory(ctx context.Context, story *domain.Story) error
	ListStories(ctx context.Context, sellerID uuid.UUID) ([]*domain.Story, error)
}

type sellerRepository struct {
	db *sql.DB
}

// NewSellerRepository creates a new instance of SellerRepository
func NewSellerRepository(db *sql.DB) SellerRepository {
	return &sellerRepository{db: db}
}

const sellerProfileSelect = `
	SELECT sp.user_id, COALESCE(u.first_name, ''), COALESCE(u.last_name, ''),
	       sp.category, sp.description, sp.image_url, sp.phone, sp.created_at, sp.updated_at
	FROM seller_profiles sp
	JOIN users u ON u.id = sp.user_id
`

// Create inserts an empty or prefilled profile for a seller
func (r *sellerRepository) Create(ctx context.Context, profile *domain.SellerProfile) error {
	return insertProfile(ctx, r.db, profile)
}

// CreateWithUser inserts a seller account and its profile in one transaction.
// Either both rows exist afterwards or neither does.
func (r *sellerRepository) CreateWithUser(ctx context.Context, user *domain.User, profile *domain.SellerProfile) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertUser(ctx, tx, user); err != nil {
		return err
	}

	profile.UserID = user.ID
	if err := insertProfile(ctx, tx, profile); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seller registration: %w", err)
	}

	return nil
}

func insertProfile(ctx context.Context, db execer, profile *domain.SellerProfile) error {
	query := `
		INSERT INTO seller_profiles (user_id, category, description, image_url, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := db.ExecContext(
		ctx,
		query,
		profile.UserID,
		profile.Category,
		profile.Description,
		profile.ImageURL,
		profile.Phone,
		profile.CreatedAt,
		profile.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create seller profile: %w", err)
	}

	return nil
}

// FindByUserID retrieves the profile of a seller together with their name
func (r *sellerRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.SellerProfile, error) {
	query := sellerProfileSelect + " WHERE sp.user_id = $1"

	profile, err := scanSellerProfile(r.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSellerNotFound
		}
		return nil, fmt.Errorf("failed to find seller profile: %w", err)
	}

	return profile, nil
}

// List retrieves every seller profile ordered by first then last name
func (r *sellerRepository) List(ctx context.Context) ([]*domain.SellerProfile, error) {
	query := sellerProfileSelect + " ORDER BY u.first_name ASC, u.last_name ASC, sp.user_id ASC"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sellers: %w", err)
	}
	defer rows.Close()

	profiles := []*domain.SellerProfile{}
	for rows.Next() {
		profile, err := scanSellerProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan seller profile: %w", err)
		}
		profiles = append(profiles, profile)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sellers: %w", err)
	}

	return profiles, nil
}

// UpdateBasics writes the seller's name and profile fields atomically
func (r *sellerRepository) UpdateBasics(ctx context.Context, basics domain.SellerBasics) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE users
		SET first_name = $2, last_name = $3, updated_at = NOW()
		WHERE id = $1
	`, basics.UserID, basics.FirstName, basics.LastName)
	if err != nil {
		return fmt.Errorf("failed to update seller name: %w", err)
	}
	if err := expectOneRow(result, ErrSellerNotFound); err != nil {
		return err
	}

	result, err = tx.ExecContext(ctx, `
		UPDATE seller_profiles
		SET category = $2, phone = $3, description = $4, image_url = $5, updated_at = NOW()
		WHERE user_id = $1
	`, basics.UserID, basics.Category, basics.Phone, basics.Description, basics.ImageURL)
	if err != nil {
		return fmt.Errorf("failed to update seller profile: %w", err)
	}
	if err := expectOneRow(result, ErrSellerNotFound); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seller update: %w", err)
	}

	return nil
}

func (r *sellerRepository) CreateStory(ctx context.Context, story *domain.Story) error {
	query := `
		INSERT INTO stories (id, seller_id, content, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.ExecContext(ctx, query, story.ID, story.SellerID, story.Content, story.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create story: %w", err)
	}

	return nil
}

// ListStories retrieves a seller's stories, newest first
func (r *sellerRepository) ListStories(ctx context.Context, sellerID uuid.UUID) ([]*domain.Story, error) {
	query := `
		SELECT id, seller_id, content, created_at
		FROM stories
		WHERE seller_id = $1
		ORDER BY created_at DESC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}
	defer rows.Close()

	stories := []*domain.Story{}
	for rows.Next() {
		story := &domain.Story{}
		if err := rows.Scan(&story.ID, &story.SellerID, &story.Content, &story.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan story: %w", err)
		}
		stories = append(stories, story)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stories: %w", err)
	}

	return stories, nil
}

func scanSellerProfile(s rowScanner) (*domain.SellerProfile, error) {
	profile := &domain.SellerProfile{}
	err := s.Scan(
		&profile.UserID,
		&profile.FirstName,
		&profile.LastName,
		&profile.Category,
		&profile.Description,
		&profile.ImageURL,
		&profile.Phone,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return profile, nil
}

package service

import (
	"context"
	"sort"

	"handcrafted-haven/internal/catalog"
	"handcrafted-haven/internal/domain"
	"handcrafted-haven/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type mockUserRepository struct {
	users map[string]*domain.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users: make(map[string]*domain.User),
	}
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if _, exists := m.users[user.Email]; exists {
		return repository.ErrUserAlreadyExists
	}
	m.users[user.Email] = user
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, exists := m.users[email]
	if !exists {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

type mockSessionRepository struct {
	sessions map[string]*domain.Session
}

func newMockSessionRepository() *mockSessionRepository {
	return &mockSessionRepository{
		sessions: make(map[string]*domain.Session),
	}
}

func (m *mockSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	m.sessions[session.Token] = session
	return nil
}

func (m *mockSessionRepository) FindByToken(ctx context.Context, token string) (*domain.Session, error) {
	session, exists := m.sessions[token]
	if !exists {
		return nil, repository.ErrSessionNotFound
	}
	if session.Revoked {
		return nil, repository.ErrSessionRevoked
	}
	return session, nil
}

func (m *mockSessionRepository) Revoke(ctx context.Context, token string) error {
	session, exists := m.sessions[token]
	if !exists {
		return repository.ErrSessionNotFound
	}
	session.Revoked = true
	return nil
}

type mockSellerRepository struct {
	users     *mockUserRepository
	profiles  map[uuid.UUID]*domain.SellerProfile
	stories   []*domain.Story
	createErr error
	updateErr error
}

func newMockSellerRepository() *mockSellerRepository {
	return &mockSellerRepository{
		profiles: make(map[uuid.UUID]*domain.SellerProfile),
	}
}

func (m *mockSellerRepository) Create(ctx context.Context, profile *domain.SellerProfile) error {
	m.profiles[profile.UserID] = profile
	return nil
}

// CreateWithUser stores both rows or, when createErr is set, neither
func (m *mockSellerRepository) CreateWithUser(ctx context.Context, user *domain.User, profile *domain.SellerProfile) error {
	if m.createErr != nil {
		return m.createErr
	}
	if err := m.users.Create(ctx, user); err != nil {
		return err
	}
	profile.UserID = user.ID
	return m.Create(ctx, profile)
}

func (m *mockSellerRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.SellerProfile, error) {
	profile, exists := m.profiles[userID]
	if !exists {
		return nil, repository.ErrSellerNotFound
	}
	copied := *profile
	return &copied, nil
}

func (m *mockSellerRepository) List(ctx context.Context) ([]*domain.SellerProfile, error) {
	out := []*domain.SellerProfile{}
	for _, p := range m.profiles {
		copied := *p
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FirstName != out[j].FirstName {
			return out[i].FirstName < out[j].FirstName
		}
		return out[i].LastName < out[j].LastName
	})
	return out, nil
}

func (m *mockSellerRepository) UpdateBasics(ctx context.Context, basics domain.SellerBasics) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	profile, exists := m.profiles[basics.UserID]
	if !exists {
		return repository.ErrSellerNotFound
	}
	profile.FirstName = basics.FirstName
	profile.LastName = basics.LastName
	profile.Category = basics.Category
	profile.Phone = basics.Phone
	profile.Description = basics.Description
	profile.ImageURL = basics.ImageURL
	return nil
}

func (m *mockSellerRepository) CreateStory(ctx context.Context, story *domain.Story) error {
	m.stories = append(m.stories, story)
	return nil
}

func (m *mockSellerRepository) ListStories(ctx context.Context, sellerID uuid.UUID) ([]*domain.Story, error) {
	out := []*domain.Story{}
	for i := len(m.stories) - 1; i >= 0; i-- {
		if m.stories[i].SellerID == sellerID {
			out = append(out, m.stories[i])
		}
	}
	return out, nil
}

type mockProductRepository struct {
	products map[uuid.UUID]*domain.Product
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{
		products: make(map[uuid.UUID]*domain.Product),
	}
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	copied := *product
	m.products[product.ID] = &copied
	return nil
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	existing, exists := m.products[product.ID]
	if !exists || existing.SellerID != product.SellerID {
		return repository.ErrProductNotFound
	}
	copied := *product
	m.products[product.ID] = &copied
	return nil
}

func (m *mockProductRepository) UpdateDescription(ctx context.Context, id, sellerID uuid.UUID, description string) error {
	existing, exists := m.products[id]
	if !exists || existing.SellerID != sellerID {
		return repository.ErrProductNotFound
	}
	existing.Description = description
	return nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id, sellerID uuid.UUID) error {
	existing, exists := m.products[id]
	if !exists || existing.SellerID != sellerID {
		return repository.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, exists := m.products[id]
	if !exists {
		return nil, repository.ErrProductNotFound
	}
	copied := *product
	return &copied, nil
}

func (m *mockProductRepository) FindViewByID(ctx context.Context, id uuid.UUID) (*catalog.JoinedProductRow, error) {
	product, exists := m.products[id]
	if !exists {
		return nil, repository.ErrProductNotFound
	}
	row := toRow(product)
	return &row, nil
}

func (m *mockProductRepository) Count(ctx context.Context, pred catalog.Predicate) (int, error) {
	rows, _ := m.Find(ctx, pred, 0, 0)
	return len(rows), nil
}

func (m *mockProductRepository) Find(ctx context.Context, pred catalog.Predicate, limit, offset int) ([]catalog.JoinedProductRow, error) {
	rows := []catalog.JoinedProductRow{}
	for _, p := range m.products {
		row := toRow(p)
		if pred.Matches(row) {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Name != rows[j].Name {
			return rows[i].Name < rows[j].Name
		}
		return rows[i].ID.String() < rows[j].ID.String()
	})
	if offset >= len(rows) {
		return []catalog.JoinedProductRow{}, nil
	}
	rows = rows[offset:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows, nil
}

func toRow(p *domain.Product) catalog.JoinedProductRow {
	description := p.Description
	image := p.Image
	return catalog.JoinedProductRow{
		ID:          p.ID,
		SellerID:    p.SellerID,
		Name:        p.Name,
		Description: &description,
		Price:       p.Price,
		Image:       &image,
		Category:    p.Category,
	}
}

type mockReviewRepository struct {
	reviews []*domain.Review
}

func (m *mockReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	m.reviews = append(m.reviews, review)
	return nil
}

func (m *mockReviewRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*domain.Review, error) {
	out := []*domain.Review{}
	for _, r := range m.reviews {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockReviewRepository) Stats(ctx context.Context, productID uuid.UUID) (*repository.ReviewStats, error) {
	stats := &repository.ReviewStats{}
	sum := 0
	for _, r := range m.reviews {
		if r.ProductID == productID {
			sum += r.Rating
			stats.Count++
		}
	}
	if stats.Count > 0 {
		stats.Average = decimal.NewNullDecimal(decimal.NewFromInt(int64(sum)).Div(decimal.NewFromInt(int64(stats.Count))))
	}
	return stats, nil
}

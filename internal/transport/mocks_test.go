package transport

import (
	"context"
	"sort"
	"strings"
	"sync"

	"handcrafted-haven/internal/catalog"
	"handcrafted-haven/internal/domain"
	"handcrafted-haven/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type mockUserRepository struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*domain.User)}
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.users[user.Email]; exists {
		return repository.ErrUserAlreadyExists
	}
	m.users[user.Email] = user
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, exists := m.users[email]
	if !exists {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

type mockSessionRepository struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
}

func newMockSessionRepository() *mockSessionRepository {
	return &mockSessionRepository{sessions: make(map[string]*domain.Session)}
}

func (m *mockSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.Token] = session
	return nil
}

func (m *mockSessionRepository) FindByToken(ctx context.Context, token string) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
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
	m.mu.Lock()
	defer m.mu.Unlock()
	session, exists := m.sessions[token]
	if !exists {
		return repository.ErrSessionNotFound
	}
	session.Revoked = true
	return nil
}

// mockSellerRepository reads seller names from the user repository the way
// the SQL implementation joins users.
type mockSellerRepository struct {
	mu       sync.Mutex
	users    *mockUserRepository
	profiles map[uuid.UUID]*domain.SellerProfile
	stories  []*domain.Story
}

func newMockSellerRepository(users *mockUserRepository) *mockSellerRepository {
	return &mockSellerRepository{
		users:    users,
		profiles: make(map[uuid.UUID]*domain.SellerProfile),
	}
}

func (m *mockSellerRepository) withNames(p *domain.SellerProfile) *domain.SellerProfile {
	copied := *p
	if user, err := m.users.FindByID(context.Background(), p.UserID); err == nil {
		copied.FirstName = user.FirstName
		copied.LastName = user.LastName
	}
	return &copied
}

func (m *mockSellerRepository) Create(ctx context.Context, profile *domain.SellerProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *profile
	m.profiles[profile.UserID] = &copied
	return nil
}

func (m *mockSellerRepository) CreateWithUser(ctx context.Context, user *domain.User, profile *domain.SellerProfile) error {
	if err := m.users.Create(ctx, user); err != nil {
		return err
	}
	profile.UserID = user.ID
	return m.Create(ctx, profile)
}

func (m *mockSellerRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.SellerProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	profile, exists := m.profiles[userID]
	if !exists {
		return nil, repository.ErrSellerNotFound
	}
	return m.withNames(profile), nil
}

func (m *mockSellerRepository) List(ctx context.Context) ([]*domain.SellerProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*domain.SellerProfile{}
	for _, p := range m.profiles {
		out = append(out, m.withNames(p))
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
	m.mu.Lock()
	defer m.mu.Unlock()
	profile, exists := m.profiles[basics.UserID]
	if !exists {
		return repository.ErrSellerNotFound
	}
	if user, err := m.users.FindByID(ctx, basics.UserID); err == nil {
		user.FirstName = basics.FirstName
		user.LastName = basics.LastName
	}
	profile.Category = basics.Category
	profile.Phone = basics.Phone
	profile.Description = basics.Description
	profile.ImageURL = basics.ImageURL
	return nil
}

func (m *mockSellerRepository) CreateStory(ctx context.Context, story *domain.Story) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stories = append(m.stories, story)
	return nil
}

func (m *mockSellerRepository) ListStories(ctx context.Context, sellerID uuid.UUID) ([]*domain.Story, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*domain.Story{}
	for i := len(m.stories) - 1; i >= 0; i-- {
		if m.stories[i].SellerID == sellerID {
			out = append(out, m.stories[i])
		}
	}
	return out, nil
}

// Categories implements catalog.CategoryLister over the stored profiles.
func (m *mockSellerRepository) Categories(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := map[string]bool{}
	out := []string{}
	for _, p := range m.profiles {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

type categoryLister func(ctx context.Context) ([]string, error)

func (f categoryLister) List(ctx context.Context) ([]string, error) {
	return f(ctx)
}

// mockProductRepository also serves as the catalog store, joining products
// with the seller repository.
type mockProductRepository struct {
	mu       sync.Mutex
	sellers  *mockSellerRepository
	products map[uuid.UUID]*domain.Product
	findErr  error
}

func newMockProductRepository(sellers *mockSellerRepository) *mockProductRepository {
	return &mockProductRepository{
		sellers:  sellers,
		products: make(map[uuid.UUID]*domain.Product),
	}
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *product
	m.products[product.ID] = &copied
	return nil
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, exists := m.products[product.ID]
	if !exists || existing.SellerID != product.SellerID {
		return repository.ErrProductNotFound
	}
	copied := *product
	m.products[product.ID] = &copied
	return nil
}

func (m *mockProductRepository) UpdateDescription(ctx context.Context, id, sellerID uuid.UUID, description string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, exists := m.products[id]
	if !exists || existing.SellerID != sellerID {
		return repository.ErrProductNotFound
	}
	existing.Description = description
	return nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id, sellerID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, exists := m.products[id]
	if !exists || existing.SellerID != sellerID {
		return repository.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	product, exists := m.products[id]
	if !exists {
		return nil, repository.ErrProductNotFound
	}
	copied := *product
	return &copied, nil
}

func (m *mockProductRepository) FindViewByID(ctx context.Context, id uuid.UUID) (*catalog.JoinedProductRow, error) {
	product, err := m.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	row := m.toRow(product)
	return &row, nil
}

func (m *mockProductRepository) Count(ctx context.Context, pred catalog.Predicate) (int, error) {
	rows, err := m.Find(ctx, pred, 0, 0)
	return len(rows), err
}

func (m *mockProductRepository) Find(ctx context.Context, pred catalog.Predicate, limit, offset int) ([]catalog.JoinedProductRow, error) {
	m.mu.Lock()
	products := make([]*domain.Product, 0, len(m.products))
	for _, p := range m.products {
		products = append(products, p)
	}
	findErr := m.findErr
	m.mu.Unlock()

	if findErr != nil {
		return nil, findErr
	}

	rows := []catalog.JoinedProductRow{}
	for _, p := range products {
		row := m.toRow(p)
		if pred.Matches(row) {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Name != rows[j].Name {
			return rows[i].Name < rows[j].Name
		}
		return strings.Compare(rows[i].ID.String(), rows[j].ID.String()) < 0
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

func (m *mockProductRepository) toRow(p *domain.Product) catalog.JoinedProductRow {
	description := p.Description
	image := p.Image
	row := catalog.JoinedProductRow{
		ID:          p.ID,
		SellerID:    p.SellerID,
		Name:        p.Name,
		Description: &description,
		Price:       p.Price,
		Image:       &image,
		Category:    p.Category,
	}
	if profile, err := m.sellers.FindByUserID(context.Background(), p.SellerID); err == nil {
		first, last := profile.FirstName, profile.LastName
		row.Seller = catalog.SellerRow{
			FirstName: &first,
			LastName:  &last,
			Profile:   &catalog.ProfileRow{Category: profile.Category},
		}
	}
	return row
}

type mockReviewRepository struct {
	mu      sync.Mutex
	reviews []*domain.Review
}

func (m *mockReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reviews = append(m.reviews, review)
	return nil
}

func (m *mockReviewRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*domain.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*domain.Review{}
	for _, r := range m.reviews {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockReviewRepository) Stats(ctx context.Context, productID uuid.UUID) (*repository.ReviewStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
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

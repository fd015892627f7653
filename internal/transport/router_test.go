package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"handcrafted-haven/internal/catalog"
	"handcrafted-haven/internal/config"
	"handcrafted-haven/internal/domain"
	"handcrafted-haven/internal/middleware"
	"handcrafted-haven/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testJWTSecret = "test-secret"

// testApp wires every handler to in-memory repositories behind a chi router.
type testApp struct {
	router      chi.Router
	users       *mockUserRepository
	sellers     *mockSellerRepository
	products    *mockProductRepository
	userService service.UserService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	logger := zap.NewNop()
	users := newMockUserRepository()
	sessions := newMockSessionRepository()
	sellers := newMockSellerRepository(users)
	products := newMockProductRepository(sellers)
	reviews := &mockReviewRepository{}

	userService := service.NewUserService(users, sessions, sellers, config.JWTConfig{Secret: testJWTSecret}, logger)
	catalogService := catalog.NewService(products, categoryLister(sellers.Categories), logger)
	catalogCfg := config.CatalogConfig{DefaultPageSize: 12, MaxPageSize: 50, FeaturedCount: 6}

	auth := middleware.AuthMiddleware(testJWTSecret, logger)
	router := chi.NewRouter()
	NewUserHandler(userService, logger).RegisterRoutes(router, auth)
	NewCatalogHandler(catalogService, catalogCfg, logger).RegisterRoutes(router)
	NewProductHandler(service.NewProductService(products, logger), service.NewReviewService(reviews, products, logger), logger).RegisterRoutes(router, auth, nil)
	NewSellerHandler(service.NewSellerService(sellers, logger), catalogService, logger).RegisterRoutes(router, auth, nil)

	return &testApp{
		router:      router,
		users:       users,
		sellers:     sellers,
		products:    products,
		userService: userService,
	}
}

// register creates an account and returns its ID and an access token.
func (a *testApp) register(t *testing.T, email, firstName, role string) (uuid.UUID, string) {
	t.Helper()
	ctx := context.Background()
	user, err := a.userService.Register(ctx, service.RegisterInput{
		Email:     email,
		Password:  "Artisan1!",
		FirstName: firstName,
		LastName:  "Tester",
		Role:      role,
	})
	require.NoError(t, err)

	token, _, _, err := a.userService.Login(ctx, email, "Artisan1!")
	require.NoError(t, err)
	return user.ID, token
}

func (a *testApp) seller(t *testing.T, email, firstName, category string) (uuid.UUID, string) {
	t.Helper()
	id, token := a.register(t, email, firstName, domain.RoleSeller)
	a.sellers.profiles[id].Category = category
	return id, token
}

func (a *testApp) addProduct(t *testing.T, sellerID uuid.UUID, name, price string) uuid.UUID {
	t.Helper()
	product := &domain.Product{
		ID:          uuid.New(),
		SellerID:    sellerID,
		Name:        name,
		Description: name + " made by hand.",
		Price:       decimal.RequireFromString(price),
		Image:       "/images/" + name + ".png",
	}
	require.NoError(t, a.products.Create(context.Background(), product))
	return product.ID
}

func (a *testApp) do(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

// Package seed loads the demo storefront: two sellers, one buyer and six
// products. Every insert is idempotent so the seeder can run repeatedly.
package seed

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"handcrafted-haven/internal/domain"
	"handcrafted-haven/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// DefaultPassword is the password of every fixture account
const DefaultPassword = "password123"

var productNamespace = uuid.MustParse("4f6c3a62-2f0e-4c36-9f0b-6a2f1d9b7c10")

var (
	PedroID  = uuid.MustParse("7baf7cfb-84b9-47ba-b554-a146daefec3e")
	AnaID    = uuid.MustParse("0e2a45e8-7d06-4b89-8a5e-2790e2b79338")
	CarlosID = uuid.MustParse("3958dc9e-712f-4377-85e9-fec4b6a6442a")
)

type Fixtures struct {
	Users    []domain.User
	Profiles []domain.SellerProfile
	Products []domain.Product
}

// Summary counts the rows actually inserted by one run
type Summary struct {
	Users    int
	Profiles int
	Products int
}

// DemoFixtures returns the demo data set. Product IDs are derived from the
// product name so reruns hit the same primary keys.
func DemoFixtures() Fixtures {
	users := []domain.User{
		{ID: PedroID, FirstName: "Pedro", LastName: "Torres", Email: "pedro.torres@example.com", Role: domain.RoleSeller},
		{ID: AnaID, FirstName: "Ana", LastName: "Gomez", Email: "ana.gomez@example.com", Role: domain.RoleSeller},
		{ID: CarlosID, FirstName: "Carlos", LastName: "Ruiz", Email: "carlos.ruiz@example.com", Role: domain.RoleUser},
	}

	profiles := []domain.SellerProfile{
		{UserID: PedroID, Category: "Woodwork", Description: "Artisan of wood from Panguipulli.", ImageURL: "/images/sellers/vendedormadera.png", Phone: "123-456-7890"},
		{UserID: AnaID, Category: "Ceramics", Description: "Creator of fine pottery.", ImageURL: "/images/sellers/vendedoramujer.png", Phone: "098-765-4321"},
	}

	products := []domain.Product{
		product(PedroID, "Hand-carved Wooden Bowl", "25.00", "Hand-carved from native wood.", "/images/productos/madera/Hand-carved Wooden Bowl.png", "Woodwork"),
		product(PedroID, "Beaded Earrings", "35.50", "Durable and beautiful earrings.", "/images/productos/joyeria/Beaded Earrings.png", "Jewelry"),
		product(AnaID, "Clay Coffee Mug", "18.00", "Perfect for your morning coffee.", "/images/productos/alfarero/Clay Coffee Mug.png", "Pottery"),
		product(AnaID, "Mini Clay Vase", "42.00", "A beautiful centerpiece for any room.", "/images/productos/alfarero/Mini Clay Vase.png", "Pottery"),
		product(PedroID, "Chilean Coastline", "12.00", "A beautiful painting made with love", "/images/productos/pintura/Chilean Coastline.png", "Painting"),
		product(AnaID, "Woven Table Runner", "22.00", "Ideal for family tables that join kindness.", "/images/productos/telas/Woven Table Runner.png", "Textiles"),
	}

	return Fixtures{Users: users, Profiles: profiles, Products: products}
}

func product(sellerID uuid.UUID, name, price, description, image, category string) domain.Product {
	return domain.Product{
		ID:          uuid.NewSHA1(productNamespace, []byte(name)),
		SellerID:    sellerID,
		Name:        name,
		Description: description,
		Price:       decimal.RequireFromString(price),
		Image:       image,
		Category:    &category,
	}
}

// Run inserts the fixtures in one transaction, skipping rows that already exist.
func Run(ctx context.Context, db *sql.DB, fixtures Fixtures, logger *zap.Logger) (Summary, error) {
	var summary Summary

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), service.BcryptCost)
	if err != nil {
		return summary, fmt.Errorf("failed to hash fixture password: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return summary, fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()

	for _, u := range fixtures.Users {
		n, err := execCount(ctx, tx, `
			INSERT INTO users (id, email, password_hash, first_name, last_name, role, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
			ON CONFLICT DO NOTHING`,
			u.ID, u.Email, string(hash), u.FirstName, u.LastName, u.Role, now)
		if err != nil {
			return summary, fmt.Errorf("failed to seed user %s: %w", u.Email, err)
		}
		summary.Users += n
	}

	for _, p := range fixtures.Profiles {
		n, err := execCount(ctx, tx, `
			INSERT INTO seller_profiles (user_id, category, description, image_url, phone, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $6)
			ON CONFLICT (user_id) DO NOTHING`,
			p.UserID, p.Category, p.Description, p.ImageURL, p.Phone, now)
		if err != nil {
			return summary, fmt.Errorf("failed to seed seller profile %s: %w", p.UserID, err)
		}
		summary.Profiles += n
	}

	for _, p := range fixtures.Products {
		n, err := execCount(ctx, tx, `
			INSERT INTO products (id, seller_id, name, description, price, image, category, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
			ON CONFLICT (id) DO NOTHING`,
			p.ID, p.SellerID, p.Name, p.Description, p.Price, p.Image, p.Category, now)
		if err != nil {
			return summary, fmt.Errorf("failed to seed product %q: %w", p.Name, err)
		}
		summary.Products += n
	}

	if err := tx.Commit(); err != nil {
		return summary, fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	logger.Info("Seed completed",
		zap.Int("users", summary.Users),
		zap.Int("seller_profiles", summary.Profiles),
		zap.Int("products", summary.Products),
	)

	return summary, nil
}

func execCount(ctx context.Context, tx *sql.Tx, query string, args ...interface{}) (int, error) {
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	n, err := result.RowsAffected()
	return int(n), err
}

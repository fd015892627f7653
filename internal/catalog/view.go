package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// JoinedProductRow is a product row joined with its seller and the seller's
// profile, exactly as the store returns it. Nullable columns are pointers.
type JoinedProductRow struct {
	ID          uuid.UUID
	SellerID    uuid.UUID
	Name        string
	Description *string
	Price       decimal.Decimal
	Image       *string
	Category    *string
	Seller      SellerRow
}

// SellerRow is the seller part of a joined product row
type SellerRow struct {
	FirstName *string
	LastName  *string
	// Profile is nil while the seller has not completed onboarding
	Profile *ProfileRow
}

// ProfileRow is the seller-profile part of a joined product row
type ProfileRow struct {
	Category string
}

// ProductView is the display-ready shape of a product
type ProductView struct {
	ID          uuid.UUID       `json:"product_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Category    *string         `json:"category"`
	SellerID    uuid.UUID       `json:"user_id"`
	Seller      SellerView      `json:"seller"`
}

// SellerView is the seller summary embedded in a product view
type SellerView struct {
	FirstName string       `json:"firstname"`
	LastName  string       `json:"lastname"`
	Profile   *ProfileView `json:"profile"`
}

// ProfileView carries the seller's profile category
type ProfileView struct {
	Category string `json:"category"`
}

// ToView maps a joined row to a product view, defaulting absent text to "".
// Category stays nil when the product has none.
func ToView(row JoinedProductRow) ProductView {
	if row.ID == uuid.Nil {
		panic("catalog: joined product row without id")
	}

	view := ProductView{
		ID:          row.ID,
		Name:        row.Name,
		Description: stringOrEmpty(row.Description),
		Price:       row.Price,
		Image:       stringOrEmpty(row.Image),
		SellerID:    row.SellerID,
		Seller: SellerView{
			FirstName: stringOrEmpty(row.Seller.FirstName),
			LastName:  stringOrEmpty(row.Seller.LastName),
		},
	}

	if row.Category != nil {
		category := *row.Category
		view.Category = &category
	}

	if row.Seller.Profile != nil {
		view.Seller.Profile = &ProfileView{Category: row.Seller.Profile.Category}
	}

	return view
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents an item listed by a seller.
// Price is a fixed-point decimal backed by a NUMERIC column.
type Product struct {
	ID          uuid.UUID       `json:"product_id" db:"id"`
	SellerID    uuid.UUID       `json:"user_id" db:"seller_id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Image       string          `json:"image" db:"image"`
	Category    *string         `json:"category" db:"category"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// OwnedBy reports whether the product belongs to the given seller
func (p *Product) OwnedBy(sellerID uuid.UUID) bool {
	return p.SellerID == sellerID
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultSellerImage is shown for sellers that have not uploaded a picture
const DefaultSellerImage = "/images/placeholder-avatar.png"

// SellerProfile holds the public storefront data of a seller.
// FirstName and LastName are read from the owning user.
type SellerProfile struct {
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	FirstName   string    `json:"firstname" db:"first_name"`
	LastName    string    `json:"lastname" db:"last_name"`
	Category    string    `json:"category" db:"category"`
	Description string    `json:"description" db:"description"`
	ImageURL    string    `json:"image_url" db:"image_url"`
	Phone       string    `json:"phone" db:"phone"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// SellerBasics is the editable part of a seller profile together with the
// seller's display name. It is written in a single transaction.
type SellerBasics struct {
	UserID      uuid.UUID
	FirstName   string
	LastName    string
	Category    string
	Phone       string
	Description string
	ImageURL    string
}

// Story is a short post a seller publishes on their profile
type Story struct {
	ID        uuid.UUID `json:"story_id" db:"id"`
	SellerID  uuid.UUID `json:"user_id" db:"seller_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Review is a buyer's rating of a product
type Review struct {
	ID        uuid.UUID `json:"review_id" db:"id"`
	ProductID uuid.UUID `json:"product_id" db:"product_id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	FirstName string    `json:"firstname" db:"first_name"`
	LastName  string    `json:"lastname" db:"last_name"`
	Rating    int       `json:"rating" db:"rating"`
	Review    string    `json:"review" db:"review"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ProductStats summarises the reviews of a product
type ProductStats struct {
	AverageRating string `json:"average_rating"`
	ReviewCount   int    `json:"review_count"`
}

package wishlist

import (
	"time"

	"github.com/google/uuid"
)

// Item is one product saved by a user.
type Item struct {
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	ProductID uuid.UUID `json:"product_id" db:"product_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

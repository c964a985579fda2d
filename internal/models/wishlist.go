package models

import (
	"time"

	"github.com/google/uuid"
)

// WishlistEntry links a user to a saved product. Unique per (user, product).
type WishlistEntry struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    string    `json:"userId" gorm:"not null;index:idx_wishlist_user;uniqueIndex:idx_wishlist_user_product"`
	ProductID uuid.UUID `json:"productId" gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_user_product"`
	AddedAt   time.Time `json:"addedAt"`
}

// TableName returns the table name for the WishlistEntry model
func (WishlistEntry) TableName() string {
	return "wishlist_entries"
}

// AddToWishlistRequest represents a request to save a product
type AddToWishlistRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

// WishlistItemView is a wishlist entry joined with its product snapshot.
type WishlistItemView struct {
	Entry   WishlistEntry `json:"entry"`
	Product ProductView   `json:"product"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// CartLine is one product's presence in a user's cart. At most one line
// exists per (user, product) pair; repeat adds accumulate the quantity.
type CartLine struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID        string    `json:"userId" gorm:"not null;index:idx_cart_user;uniqueIndex:idx_cart_user_product"`
	ProductID     uuid.UUID `json:"productId" gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product"`
	Quantity      int       `json:"quantity" gorm:"not null"`
	SelectedSize  string    `json:"selectedSize"`
	SelectedColor string    `json:"selectedColor"`
	AddedAt       time.Time `json:"addedAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// TableName returns the table name for the CartLine model
func (CartLine) TableName() string {
	return "cart_lines"
}

// AddToCartRequest represents a request to add a product to the cart
type AddToCartRequest struct {
	ProductID string  `json:"productId" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
	Size      *string `json:"size,omitempty"`
	Color     *string `json:"color,omitempty"`
}

// SetQuantityRequest represents a request to replace a cart line's quantity
type SetQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// CartItemView is a cart line joined with its current product snapshot.
type CartItemView struct {
	Line    CartLine    `json:"line"`
	Product ProductView `json:"product"`
}

// CartView is the user's full cart with derived totals.
type CartView struct {
	Items    []CartItemView `json:"items"`
	Count    int64          `json:"count"`
	Subtotal float64        `json:"subtotal"`
}

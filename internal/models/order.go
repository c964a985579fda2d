package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OrderStatus represents the status of a ledger order
type OrderStatus string

const (
	OrderStatusPlaced OrderStatus = "PLACED"
)

// Order is an append-only ledger record of a completed checkout.
type Order struct {
	ID              uuid.UUID   `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID          string      `json:"userId" gorm:"not null;index"`
	PaymentIntentID string      `json:"paymentIntentId" gorm:"not null;uniqueIndex"`
	Total           float64     `json:"total" gorm:"not null"`
	Currency        string      `json:"currency" gorm:"not null;default:'USD'"`
	Status          OrderStatus `json:"status" gorm:"not null;default:'PLACED'"`
	// PaymentMeta is the provider intent snapshot captured when the
	// order was confirmed, kept for reconciliation.
	PaymentMeta datatypes.JSON `json:"paymentMeta,omitempty" gorm:"type:jsonb"`
	Items       []OrderItem    `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one product line inside a ledger order. ProductName and
// UnitPrice are snapshots taken at checkout time.
type OrderItem struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OrderID     uuid.UUID `json:"orderId" gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID `json:"productId" gorm:"type:uuid;not null;index"`
	ProductName string    `json:"productName"`
	Quantity    int       `json:"quantity" gorm:"not null"`
	UnitPrice   float64   `json:"unitPrice" gorm:"not null"`
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}

// TopSellingProduct pairs a catalog product with its accumulated sales.
type TopSellingProduct struct {
	Product       ProductView `json:"product"`
	TotalQuantity int         `json:"totalQuantity"`
	TotalRevenue  float64     `json:"totalRevenue"`
}

// ConfirmCheckoutRequest reports a succeeded payment intent to finalize.
type ConfirmCheckoutRequest struct {
	PaymentIntentID string `json:"paymentIntentId" binding:"required"`
}

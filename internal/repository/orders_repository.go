package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"commerce-service/internal/models"
)

// OrdersRepositoryInterface defines the order ledger. Orders are appended
// at checkout and read back only for aggregation; nothing updates them.
type OrdersRepositoryInterface interface {
	Append(ctx context.Context, order *models.Order) error
	GetByPaymentIntent(ctx context.Context, paymentIntentID string) (*models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	ListAllItems(ctx context.Context) ([]models.OrderItem, error)
}

type OrdersRepository struct {
	db *gorm.DB
}

var _ OrdersRepositoryInterface = (*OrdersRepository)(nil)

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{db: db}
}

// Append writes an order and its items in one transaction
func (r *OrdersRepository) Append(ctx context.Context, order *models.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	order.CreatedAt = time.Now()
	for i := range order.Items {
		if order.Items[i].ID == uuid.Nil {
			order.Items[i].ID = uuid.New()
		}
		order.Items[i].OrderID = order.ID
	}
	return r.db.WithContext(ctx).Create(order).Error
}

// GetByPaymentIntent retrieves the order finalized for a payment intent,
// used to keep checkout confirmation idempotent.
func (r *OrdersRepository) GetByPaymentIntent(ctx context.Context, paymentIntentID string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("payment_intent_id = ?", paymentIntentID).
		First(&order).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &order, nil
}

// ListByUser retrieves a user's orders, newest first
func (r *OrdersRepository) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// ListAllItems scans every line item in the ledger for aggregation
func (r *OrdersRepository) ListAllItems(ctx context.Context) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := r.db.WithContext(ctx).Find(&items).Error
	return items, err
}

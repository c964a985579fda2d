package services

import (
	"context"
	"encoding/json"
	"errors"
	"math"

	"github.com/sirupsen/logrus"

	"commerce-service/internal/clients"
	"commerce-service/internal/events"
	"commerce-service/internal/models"
	"commerce-service/internal/repository"
)

// CheckoutService turns a cart into a payment intent and, once the
// provider reports success, into an append-only order ledger entry.
type CheckoutService struct {
	cart      *CartService
	orders    repository.OrdersRepositoryInterface
	payments  clients.PaymentClient
	publisher *events.Publisher
	currency  string
	logger    *logrus.Entry
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(cart *CartService, orders repository.OrdersRepositoryInterface, payments clients.PaymentClient, publisher *events.Publisher, currency string, logger *logrus.Logger) *CheckoutService {
	if currency == "" {
		currency = "USD"
	}
	return &CheckoutService{
		cart:      cart,
		orders:    orders,
		payments:  payments,
		publisher: publisher,
		currency:  currency,
		logger:    logger.WithField("component", "checkout"),
	}
}

// CreateIntent registers the user's current cart subtotal with the payment
// provider and returns the intent for client-side completion.
func (s *CheckoutService) CreateIntent(ctx context.Context, userID string) (*clients.PaymentIntent, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}

	cart, err := s.cart.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	intent, err := s.payments.CreateIntent(ctx, clients.CreateIntentRequest{
		Amount:   math.Round(cart.Subtotal*100) / 100,
		Currency: s.currency,
		Metadata: map[string]string{"userId": userID},
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"userId":   userID,
		"intentId": intent.ID,
		"amount":   intent.Amount,
	}).Info("Payment intent created")
	return intent, nil
}

// Confirm finalizes a checkout after the provider reports the intent as
// succeeded: the cart is snapshotted into a ledger order and then cleared.
// Confirming the same intent twice returns the already-placed order.
func (s *CheckoutService) Confirm(ctx context.Context, userID, paymentIntentID string) (*models.Order, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}

	existing, err := s.orders.GetByPaymentIntent(ctx, paymentIntentID)
	if err == nil {
		if existing.UserID != userID {
			return nil, ErrUnauthorized
		}
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	intent, err := s.payments.GetIntent(ctx, paymentIntentID)
	if err != nil {
		return nil, err
	}
	if owner, ok := intent.Metadata["userId"]; ok && owner != userID {
		return nil, ErrUnauthorized
	}
	if intent.Status != clients.IntentStatusSucceeded {
		return nil, ErrPaymentPending
	}

	cart, err := s.cart.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	order := &models.Order{
		UserID:          userID,
		PaymentIntentID: paymentIntentID,
		Total:           math.Round(cart.Subtotal*100) / 100,
		Currency:        s.currency,
		Status:          models.OrderStatusPlaced,
		Items:           make([]models.OrderItem, 0, len(cart.Items)),
	}
	if meta, err := json.Marshal(map[string]interface{}{
		"intentStatus": intent.Status,
		"intentAmount": intent.Amount,
		"currency":     s.currency,
	}); err == nil {
		order.PaymentMeta = meta
	}
	for _, item := range cart.Items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID:   item.Product.Product.ID,
			ProductName: item.Product.Product.Name,
			Quantity:    item.Line.Quantity,
			UnitPrice:   item.Product.DiscountedPrice,
		})
	}

	if err := s.orders.Append(ctx, order); err != nil {
		return nil, err
	}

	if err := s.cart.ClearCart(ctx, userID); err != nil {
		// The order is already on the ledger; a stale cart is recoverable.
		s.logger.WithError(err).WithField("userId", userID).Warn("Failed to clear cart after checkout")
	}

	s.publisher.PublishOrderPlaced(ctx, userID, order.ID.String(), order.Total)
	s.logger.WithFields(logrus.Fields{
		"userId":  userID,
		"orderId": order.ID,
		"total":   order.Total,
	}).Info("Order placed")
	return order, nil
}

// ListOrders returns the user's placed orders, newest first
func (s *CheckoutService) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	return s.orders.ListByUser(ctx, userID)
}

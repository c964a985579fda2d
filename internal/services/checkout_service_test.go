package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"commerce-service/internal/clients"
	"commerce-service/internal/models"
	"commerce-service/internal/repository"
)

func newCheckoutFixture(t *testing.T) (*CheckoutService, *fakeCartRepository, *MockProductsRepository, *MockOrdersRepository, *MockPaymentClient) {
	t.Helper()
	cartRepo := newFakeCartRepository()
	mockProducts := new(MockProductsRepository)
	mockOrders := new(MockOrdersRepository)
	mockPayments := new(MockPaymentClient)

	cart := NewCartService(cartRepo, mockProducts, nil, newTestLogger())
	service := NewCheckoutService(cart, mockOrders, mockPayments, nil, "USD", newTestLogger())
	return service, cartRepo, mockProducts, mockOrders, mockPayments
}

// seedCart puts quantity of a 20.00 product into user-1's cart
func seedCart(t *testing.T, cartRepo *fakeCartRepository, mockProducts *MockProductsRepository, productID uuid.UUID, quantity int) *models.Product {
	t.Helper()
	product := &models.Product{ID: productID, Name: "Jacket", Price: 20.0}
	_, err := cartRepo.AddOrIncrement(context.Background(), &models.CartLine{
		UserID:    "user-1",
		ProductID: productID,
		Quantity:  quantity,
	}, "", "")
	assert.NoError(t, err)
	mockProducts.On("BatchGetByIDs", mock.Anything, mock.Anything).
		Return(map[uuid.UUID]*models.Product{productID: product}, nil)
	return product
}

// ===========================================
// Intent Tests
// ===========================================

func TestCreateIntent_FromCartSubtotal(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()

	service, cartRepo, mockProducts, _, mockPayments := newCheckoutFixture(t)
	seedCart(t, cartRepo, mockProducts, productID, 3)

	mockPayments.On("CreateIntent", ctx, mock.MatchedBy(func(req clients.CreateIntentRequest) bool {
		return req.Amount == 60.0 && req.Currency == "USD"
	})).Return(&clients.PaymentIntent{ID: "pi_1", Amount: 60.0, Status: clients.IntentStatusProcessing}, nil)

	intent, err := service.CreateIntent(ctx, "user-1")

	assert.NoError(t, err)
	assert.Equal(t, "pi_1", intent.ID)
	mockPayments.AssertExpectations(t)
}

func TestCreateIntent_EmptyCart(t *testing.T) {
	ctx := context.Background()

	service, _, mockProducts, _, _ := newCheckoutFixture(t)
	mockProducts.On("BatchGetByIDs", mock.Anything, mock.Anything).
		Return(map[uuid.UUID]*models.Product{}, nil)

	_, err := service.CreateIntent(ctx, "user-1")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCreateIntent_Unauthenticated(t *testing.T) {
	ctx := context.Background()

	service, _, _, _, _ := newCheckoutFixture(t)

	_, err := service.CreateIntent(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

// ===========================================
// Confirm Tests
// ===========================================

func TestConfirm_PlacesOrderAndClearsCart(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()

	service, cartRepo, mockProducts, mockOrders, mockPayments := newCheckoutFixture(t)
	seedCart(t, cartRepo, mockProducts, productID, 2)

	mockOrders.On("GetByPaymentIntent", ctx, "pi_1").Return(nil, repository.ErrNotFound)
	mockPayments.On("GetIntent", ctx, "pi_1").
		Return(&clients.PaymentIntent{ID: "pi_1", Status: clients.IntentStatusSucceeded}, nil)
	mockOrders.On("Append", ctx, mock.AnythingOfType("*models.Order")).Return(nil)

	order, err := service.Confirm(ctx, "user-1", "pi_1")

	assert.NoError(t, err)
	assert.Equal(t, "user-1", order.UserID)
	assert.Equal(t, 40.0, order.Total)
	assert.Len(t, order.Items, 1)
	assert.Equal(t, "Jacket", order.Items[0].ProductName)
	assert.Equal(t, 2, order.Items[0].Quantity)

	// The cart was cleared after the ledger write
	lines, _ := cartRepo.ListByUser(ctx, "user-1")
	assert.Empty(t, lines)
}

func TestConfirm_IsIdempotentPerIntent(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()

	service, _, _, mockOrders, mockPayments := newCheckoutFixture(t)

	placed := &models.Order{ID: orderID, UserID: "user-1", PaymentIntentID: "pi_1", Total: 40.0}
	mockOrders.On("GetByPaymentIntent", ctx, "pi_1").Return(placed, nil)

	order, err := service.Confirm(ctx, "user-1", "pi_1")

	assert.NoError(t, err)
	assert.Equal(t, orderID, order.ID)
	mockPayments.AssertNotCalled(t, "GetIntent", mock.Anything, mock.Anything)
	mockOrders.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestConfirm_RejectsPendingPayment(t *testing.T) {
	ctx := context.Background()

	service, _, _, mockOrders, mockPayments := newCheckoutFixture(t)

	mockOrders.On("GetByPaymentIntent", ctx, "pi_1").Return(nil, repository.ErrNotFound)
	mockPayments.On("GetIntent", ctx, "pi_1").
		Return(&clients.PaymentIntent{ID: "pi_1", Status: clients.IntentStatusProcessing}, nil)

	_, err := service.Confirm(ctx, "user-1", "pi_1")
	assert.ErrorIs(t, err, ErrPaymentPending)
	mockOrders.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestConfirm_OtherUsersIntent(t *testing.T) {
	ctx := context.Background()

	service, _, _, mockOrders, _ := newCheckoutFixture(t)

	placed := &models.Order{ID: uuid.New(), UserID: "user-2", PaymentIntentID: "pi_1"}
	mockOrders.On("GetByPaymentIntent", ctx, "pi_1").Return(placed, nil)

	_, err := service.Confirm(ctx, "user-1", "pi_1")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestConfirm_RejectsIntentCreatedByAnotherUser(t *testing.T) {
	ctx := context.Background()

	service, _, _, mockOrders, mockPayments := newCheckoutFixture(t)

	// The intent carries the creating user in its metadata; a different
	// user cannot place an order against it even when it succeeded.
	mockOrders.On("GetByPaymentIntent", ctx, "pi_1").Return(nil, repository.ErrNotFound)
	mockPayments.On("GetIntent", ctx, "pi_1").
		Return(&clients.PaymentIntent{
			ID:       "pi_1",
			Status:   clients.IntentStatusSucceeded,
			Metadata: map[string]string{"userId": "user-2"},
		}, nil)

	_, err := service.Confirm(ctx, "user-1", "pi_1")
	assert.ErrorIs(t, err, ErrUnauthorized)
	mockOrders.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"commerce-service/internal/clients"
	"commerce-service/internal/models"
	"commerce-service/internal/repository"
)

// MockProductsRepository is a mock implementation of ProductsRepositoryInterface
type MockProductsRepository struct {
	mock.Mock
}

var _ repository.ProductsRepositoryInterface = (*MockProductsRepository)(nil)

func (m *MockProductsRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	if args.Error(0) == nil && product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockProductsRepository) Update(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductsRepository) GetByID(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductsRepository) BatchGetByIDs(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]*models.Product, error) {
	args := m.Called(ctx, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]*models.Product), args.Error(1)
}

func (m *MockProductsRepository) List(ctx context.Context, categoryID string, limit, offset int) ([]models.Product, int64, error) {
	args := m.Called(ctx, categoryID, limit, offset)
	return args.Get(0).([]models.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductsRepository) Delete(ctx context.Context, productID uuid.UUID) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

// MockWishlistRepository is a mock implementation of WishlistRepositoryInterface
type MockWishlistRepository struct {
	mock.Mock
}

var _ repository.WishlistRepositoryInterface = (*MockWishlistRepository)(nil)

func (m *MockWishlistRepository) Add(ctx context.Context, entry *models.WishlistEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockWishlistRepository) Remove(ctx context.Context, userID string, productID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID, productID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWishlistRepository) Exists(ctx context.Context, userID string, productID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, productID)
	return args.Bool(0), args.Error(1)
}

func (m *MockWishlistRepository) ListByUser(ctx context.Context, userID string) ([]models.WishlistEntry, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.WishlistEntry), args.Error(1)
}

func (m *MockWishlistRepository) DeleteAll(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockReviewsRepository is a mock implementation of ReviewsRepositoryInterface
type MockReviewsRepository struct {
	mock.Mock
}

var _ repository.ReviewsRepositoryInterface = (*MockReviewsRepository)(nil)

func (m *MockReviewsRepository) Create(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	if args.Error(0) == nil && review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockReviewsRepository) Overwrite(ctx context.Context, reviewID uuid.UUID, rating int, comment string) error {
	args := m.Called(ctx, reviewID, rating, comment)
	return args.Error(0)
}

func (m *MockReviewsRepository) GetByID(ctx context.Context, reviewID uuid.UUID) (*models.Review, error) {
	args := m.Called(ctx, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewsRepository) GetByUserAndProduct(ctx context.Context, userID string, productID uuid.UUID) (*models.Review, error) {
	args := m.Called(ctx, userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewsRepository) Delete(ctx context.Context, reviewID uuid.UUID) error {
	args := m.Called(ctx, reviewID)
	return args.Error(0)
}

func (m *MockReviewsRepository) SetFeatured(ctx context.Context, reviewID uuid.UUID, featured bool) error {
	args := m.Called(ctx, reviewID, featured)
	return args.Error(0)
}

func (m *MockReviewsRepository) ListFeatured(ctx context.Context) ([]models.Review, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *MockReviewsRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.Review, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *MockReviewsRepository) ListByUser(ctx context.Context, userID string) ([]models.Review, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Review), args.Error(1)
}

// MockCustomersRepository is a mock implementation of CustomersRepositoryInterface
type MockCustomersRepository struct {
	mock.Mock
}

var _ repository.CustomersRepositoryInterface = (*MockCustomersRepository)(nil)

func (m *MockCustomersRepository) GetByID(ctx context.Context, userID string) (*models.Customer, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockCustomersRepository) BatchGetByIDs(ctx context.Context, userIDs []string) (map[string]*models.Customer, error) {
	args := m.Called(ctx, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*models.Customer), args.Error(1)
}

func (m *MockCustomersRepository) Upsert(ctx context.Context, customer *models.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

// MockOrdersRepository is a mock implementation of OrdersRepositoryInterface
type MockOrdersRepository struct {
	mock.Mock
}

var _ repository.OrdersRepositoryInterface = (*MockOrdersRepository)(nil)

func (m *MockOrdersRepository) Append(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	if args.Error(0) == nil && order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockOrdersRepository) GetByPaymentIntent(ctx context.Context, paymentIntentID string) (*models.Order, error) {
	args := m.Called(ctx, paymentIntentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrdersRepository) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrdersRepository) ListAllItems(ctx context.Context) ([]models.OrderItem, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.OrderItem), args.Error(1)
}

// MockStorageClient is a mock implementation of clients.StorageClient
type MockStorageClient struct {
	mock.Mock
}

var _ clients.StorageClient = (*MockStorageClient)(nil)

func (m *MockStorageClient) GetURL(ctx context.Context, imageID string) (string, error) {
	args := m.Called(ctx, imageID)
	return args.String(0), args.Error(1)
}

func (m *MockStorageClient) Delete(ctx context.Context, imageID string) error {
	args := m.Called(ctx, imageID)
	return args.Error(0)
}

// MockPaymentClient is a mock implementation of clients.PaymentClient
type MockPaymentClient struct {
	mock.Mock
}

var _ clients.PaymentClient = (*MockPaymentClient)(nil)

func (m *MockPaymentClient) CreateIntent(ctx context.Context, req clients.CreateIntentRequest) (*clients.PaymentIntent, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.PaymentIntent), args.Error(1)
}

func (m *MockPaymentClient) GetIntent(ctx context.Context, intentID string) (*clients.PaymentIntent, error) {
	args := m.Called(ctx, intentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.PaymentIntent), args.Error(1)
}

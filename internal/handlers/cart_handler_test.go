package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"commerce-service/internal/models"
	"commerce-service/internal/repository"
	"commerce-service/internal/services"
)

// MockCartRepository is a mock implementation of CartRepositoryInterface
type MockCartRepository struct {
	mock.Mock
}

var _ repository.CartRepositoryInterface = (*MockCartRepository)(nil)

func (m *MockCartRepository) AddOrIncrement(ctx context.Context, line *models.CartLine, defaultSize, defaultColor string) (*models.CartLine, error) {
	args := m.Called(ctx, line, defaultSize, defaultColor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CartLine), args.Error(1)
}

func (m *MockCartRepository) GetLineByID(ctx context.Context, lineID uuid.UUID) (*models.CartLine, error) {
	args := m.Called(ctx, lineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CartLine), args.Error(1)
}

func (m *MockCartRepository) SetQuantity(ctx context.Context, lineID uuid.UUID, quantity int) error {
	args := m.Called(ctx, lineID, quantity)
	return args.Error(0)
}

func (m *MockCartRepository) DeleteLine(ctx context.Context, lineID uuid.UUID) error {
	args := m.Called(ctx, lineID)
	return args.Error(0)
}

func (m *MockCartRepository) DeleteByProduct(ctx context.Context, userID string, productID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID, productID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCartRepository) DeleteAll(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockCartRepository) ListByUser(ctx context.Context, userID string) ([]models.CartLine, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.CartLine), args.Error(1)
}

func (m *MockCartRepository) SumQuantities(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockProductsRepository is a mock implementation of ProductsRepositoryInterface
type MockProductsRepository struct {
	mock.Mock
}

var _ repository.ProductsRepositoryInterface = (*MockProductsRepository)(nil)

func (m *MockProductsRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
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

func setupCartRouter(cartRepo repository.CartRepositoryInterface, productsRepo repository.ProductsRepositoryInterface, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	service := services.NewCartService(cartRepo, productsRepo, nil, logger)
	handler := NewCartHandler(service)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set("userId", userID)
		}
		c.Next()
	})
	r.POST("/cart/items", handler.AddItem)
	r.DELETE("/cart/products/:productId", handler.RemoveProduct)
	r.GET("/cart/count", handler.GetCount)
	return r
}

func TestAddItem_Success(t *testing.T) {
	productID := uuid.New()
	cartRepo := new(MockCartRepository)
	productsRepo := new(MockProductsRepository)
	router := setupCartRouter(cartRepo, productsRepo, "user-1")

	productsRepo.On("GetByID", mock.Anything, productID).
		Return(&models.Product{ID: productID, Name: "Jacket"}, nil)
	cartRepo.On("AddOrIncrement", mock.Anything, mock.AnythingOfType("*models.CartLine"), mock.Anything, mock.Anything).
		Return(&models.CartLine{ID: uuid.New(), UserID: "user-1", ProductID: productID, Quantity: 2}, nil)

	body, _ := json.Marshal(models.AddToCartRequest{ProductID: productID.String(), Quantity: 2})
	req := httptest.NewRequest(http.MethodPost, "/cart/items", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.SuccessResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestAddItem_MissingProductMapsTo404(t *testing.T) {
	productID := uuid.New()
	cartRepo := new(MockCartRepository)
	productsRepo := new(MockProductsRepository)
	router := setupCartRouter(cartRepo, productsRepo, "user-1")

	productsRepo.On("GetByID", mock.Anything, productID).Return(nil, repository.ErrNotFound)

	body, _ := json.Marshal(models.AddToCartRequest{ProductID: productID.String(), Quantity: 1})
	req := httptest.NewRequest(http.MethodPost, "/cart/items", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp models.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestAddItem_InvalidBodyMapsTo400(t *testing.T) {
	router := setupCartRouter(new(MockCartRepository), new(MockProductsRepository), "user-1")

	req := httptest.NewRequest(http.MethodPost, "/cart/items", bytes.NewBufferString(`{"quantity": 0}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRemoveProduct_NotInCartMapsTo404(t *testing.T) {
	productID := uuid.New()
	cartRepo := new(MockCartRepository)
	router := setupCartRouter(cartRepo, new(MockProductsRepository), "user-1")

	cartRepo.On("DeleteByProduct", mock.Anything, "user-1", productID).Return(int64(0), nil)

	req := httptest.NewRequest(http.MethodDelete, "/cart/products/"+productID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp models.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "NOT_IN_CART", resp.Error.Code)
}

func TestGetCount_AnonymousReadsZero(t *testing.T) {
	router := setupCartRouter(new(MockCartRepository), new(MockProductsRepository), "")

	req := httptest.NewRequest(http.MethodGet, "/cart/count", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Count int64 `json:"count"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, int64(0), resp.Data.Count)
}

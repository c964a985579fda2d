package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"commerce-service/internal/models"
	"commerce-service/internal/repository"
)

// fakeCartRepository is an in-memory CartRepositoryInterface with the real
// accumulate-on-conflict semantics, so the one-line-per-pair behavior can
// be exercised across multiple calls.
type fakeCartRepository struct {
	lines map[uuid.UUID]*models.CartLine
}

var _ repository.CartRepositoryInterface = (*fakeCartRepository)(nil)

func newFakeCartRepository() *fakeCartRepository {
	return &fakeCartRepository{lines: make(map[uuid.UUID]*models.CartLine)}
}

func (f *fakeCartRepository) AddOrIncrement(ctx context.Context, line *models.CartLine, defaultSize, defaultColor string) (*models.CartLine, error) {
	for _, existing := range f.lines {
		if existing.UserID == line.UserID && existing.ProductID == line.ProductID {
			existing.Quantity += line.Quantity
			if line.SelectedSize != "" {
				existing.SelectedSize = line.SelectedSize
			}
			if line.SelectedColor != "" {
				existing.SelectedColor = line.SelectedColor
			}
			existing.UpdatedAt = time.Now()
			copied := *existing
			return &copied, nil
		}
	}
	created := *line
	created.ID = uuid.New()
	if created.SelectedSize == "" {
		created.SelectedSize = defaultSize
	}
	if created.SelectedColor == "" {
		created.SelectedColor = defaultColor
	}
	created.AddedAt = time.Now()
	f.lines[created.ID] = &created
	copied := created
	return &copied, nil
}

func (f *fakeCartRepository) GetLineByID(ctx context.Context, lineID uuid.UUID) (*models.CartLine, error) {
	line, ok := f.lines[lineID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *line
	return &copied, nil
}

func (f *fakeCartRepository) SetQuantity(ctx context.Context, lineID uuid.UUID, quantity int) error {
	line, ok := f.lines[lineID]
	if !ok {
		return repository.ErrNotFound
	}
	line.Quantity = quantity
	return nil
}

func (f *fakeCartRepository) DeleteLine(ctx context.Context, lineID uuid.UUID) error {
	if _, ok := f.lines[lineID]; !ok {
		return repository.ErrNotFound
	}
	delete(f.lines, lineID)
	return nil
}

func (f *fakeCartRepository) DeleteByProduct(ctx context.Context, userID string, productID uuid.UUID) (int64, error) {
	var removed int64
	for id, line := range f.lines {
		if line.UserID == userID && line.ProductID == productID {
			delete(f.lines, id)
			removed++
		}
	}
	return removed, nil
}

func (f *fakeCartRepository) DeleteAll(ctx context.Context, userID string) error {
	for id, line := range f.lines {
		if line.UserID == userID {
			delete(f.lines, id)
		}
	}
	return nil
}

func (f *fakeCartRepository) ListByUser(ctx context.Context, userID string) ([]models.CartLine, error) {
	out := make([]models.CartLine, 0)
	for _, line := range f.lines {
		if line.UserID == userID {
			out = append(out, *line)
		}
	}
	return out, nil
}

func (f *fakeCartRepository) SumQuantities(ctx context.Context, userID string) (int64, error) {
	var total int64
	for _, line := range f.lines {
		if line.UserID == userID {
			total += int64(line.Quantity)
		}
	}
	return total, nil
}

func testProduct(id uuid.UUID) *models.Product {
	return &models.Product{
		ID:    id,
		Name:  "Linen Shirt",
		Price: 29.0,
		Sizes: models.SizeList{
			{Name: "S", Price: 29.0},
			{Name: "M", Price: 31.0},
		},
		Colors: models.ColorList{
			{Name: "White", Value: "#ffffff"},
		},
	}
}

// ===========================================
// Add Tests
// ===========================================

func TestAddToCart_RepeatAddsAccumulateOnOneLine(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()

	cartRepo := newFakeCartRepository()
	mockProducts := new(MockProductsRepository)
	service := NewCartService(cartRepo, mockProducts, nil, newTestLogger())

	mockProducts.On("GetByID", ctx, productID).Return(testProduct(productID), nil)

	first, err := service.AddToCart(ctx, "user-1", productID, 2, nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, 2, first.Quantity)

	second, err := service.AddToCart(ctx, "user-1", productID, 3, nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, 5, second.Quantity)
	assert.Equal(t, first.ID, second.ID)

	lines, _ := cartRepo.ListByUser(ctx, "user-1")
	assert.Len(t, lines, 1)
}

func TestAddToCart_DefaultsToFirstVariants(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()

	cartRepo := newFakeCartRepository()
	mockProducts := new(MockProductsRepository)
	service := NewCartService(cartRepo, mockProducts, nil, newTestLogger())

	mockProducts.On("GetByID", ctx, productID).Return(testProduct(productID), nil)

	line, err := service.AddToCart(ctx, "user-1", productID, 1, nil, nil)

	assert.NoError(t, err)
	assert.Equal(t, "S", line.SelectedSize)
	assert.Equal(t, "White", line.SelectedColor)
}

func TestAddToCart_ExplicitSelectionOverridesDefaults(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()

	cartRepo := newFakeCartRepository()
	mockProducts := new(MockProductsRepository)
	service := NewCartService(cartRepo, mockProducts, nil, newTestLogger())

	mockProducts.On("GetByID", ctx, productID).Return(testProduct(productID), nil)

	size := "M"
	line, err := service.AddToCart(ctx, "user-1", productID, 1, &size, nil)

	assert.NoError(t, err)
	assert.Equal(t, "M", line.SelectedSize)
	assert.Equal(t, "White", line.SelectedColor)
}

func TestAddToCart_RepeatAddWithoutSelectionKeepsExisting(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()

	cartRepo := newFakeCartRepository()
	mockProducts := new(MockProductsRepository)
	service := NewCartService(cartRepo, mockProducts, nil, newTestLogger())

	mockProducts.On("GetByID", ctx, productID).Return(testProduct(productID), nil)

	size := "M"
	_, err := service.AddToCart(ctx, "user-1", productID, 1, &size, nil)
	assert.NoError(t, err)

	// Adding again with no selection accumulates quantity but must not
	// reset the stored size back to the product's first variant.
	line, err := service.AddToCart(ctx, "user-1", productID, 2, nil, nil)

	assert.NoError(t, err)
	assert.Equal(t, 3, line.Quantity)
	assert.Equal(t, "M", line.SelectedSize)
	assert.Equal(t, "White", line.SelectedColor)
}

func TestAddToCart_Unauthenticated(t *testing.T) {
	ctx := context.Background()

	service := NewCartService(newFakeCartRepository(), new(MockProductsRepository), nil, newTestLogger())

	_, err := service.AddToCart(ctx, "", uuid.New(), 1, nil, nil)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAddToCart_InvalidQuantity(t *testing.T) {
	ctx := context.Background()

	service := NewCartService(newFakeCartRepository(), new(MockProductsRepository), nil, newTestLogger())

	_, err := service.AddToCart(ctx, "user-1", uuid.New(), 0, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestAddToCart_MissingProduct(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()

	mockProducts := new(MockProductsRepository)
	service := NewCartService(newFakeCartRepository(), mockProducts, nil, newTestLogger())

	mockProducts.On("GetByID", ctx, productID).Return(nil, repository.ErrNotFound)

	_, err := service.AddToCart(ctx, "user-1", productID, 1, nil, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

// ===========================================
// Ownership Tests
// ===========================================

func TestSetQuantity_OtherUsersLine(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()

	cartRepo := newFakeCartRepository()
	mockProducts := new(MockProductsRepository)
	service := NewCartService(cartRepo, mockProducts, nil, newTestLogger())

	mockProducts.On("GetByID", ctx, productID).Return(testProduct(productID), nil)
	line, err := service.AddToCart(ctx, "user-1", productID, 1, nil, nil)
	assert.NoError(t, err)

	err = service.SetQuantity(ctx, "user-2", line.ID, 4)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// The owner's quantity is untouched
	kept, _ := cartRepo.GetLineByID(ctx, line.ID)
	assert.Equal(t, 1, kept.Quantity)
}

func TestRemoveLine_OtherUsersLine(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()

	cartRepo := newFakeCartRepository()
	mockProducts := new(MockProductsRepository)
	service := NewCartService(cartRepo, mockProducts, nil, newTestLogger())

	mockProducts.On("GetByID", ctx, productID).Return(testProduct(productID), nil)
	line, err := service.AddToCart(ctx, "user-1", productID, 1, nil, nil)
	assert.NoError(t, err)

	err = service.RemoveLine(ctx, "user-2", line.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

// ===========================================
// Remove / Clear Tests
// ===========================================

func TestRemoveByProduct_NotInCart(t *testing.T) {
	ctx := context.Background()

	service := NewCartService(newFakeCartRepository(), new(MockProductsRepository), nil, newTestLogger())

	err := service.RemoveByProduct(ctx, "user-1", uuid.New())
	assert.ErrorIs(t, err, ErrNotInCart)
}

func TestClearCart_EmptyCartIsNoop(t *testing.T) {
	ctx := context.Background()

	service := NewCartService(newFakeCartRepository(), new(MockProductsRepository), nil, newTestLogger())

	assert.NoError(t, service.ClearCart(ctx, "user-1"))
	assert.NoError(t, service.ClearCart(ctx, "user-1"))
}

// ===========================================
// Read Tests
// ===========================================

func TestGetCart_ComputesTotalsAndDropsDeletedProducts(t *testing.T) {
	ctx := context.Background()
	liveID := uuid.New()
	deletedID := uuid.New()

	cartRepo := newFakeCartRepository()
	mockProducts := new(MockProductsRepository)
	service := NewCartService(cartRepo, mockProducts, nil, newTestLogger())

	product := testProduct(liveID)
	product.Price = 20.0
	product.DiscountPercentage = 10

	mockProducts.On("GetByID", ctx, liveID).Return(product, nil)
	mockProducts.On("GetByID", ctx, deletedID).Return(testProduct(deletedID), nil)

	_, err := service.AddToCart(ctx, "user-1", liveID, 2, nil, nil)
	assert.NoError(t, err)
	_, err = service.AddToCart(ctx, "user-1", deletedID, 1, nil, nil)
	assert.NoError(t, err)

	// The second product has since been deleted from the catalog
	mockProducts.ExpectedCalls = nil
	mockProducts.On("BatchGetByIDs", ctx, mock.Anything).
		Return(map[uuid.UUID]*models.Product{liveID: product}, nil)

	cart, err := service.GetCart(ctx, "user-1")

	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, int64(2), cart.Count)
	// 20.0 with 10% off = 18.00 per unit
	assert.Equal(t, 36.0, cart.Subtotal)
}

func TestGetCartCount_AnonymousReadsZero(t *testing.T) {
	ctx := context.Background()

	service := NewCartService(newFakeCartRepository(), new(MockProductsRepository), nil, newTestLogger())

	assert.Equal(t, int64(0), service.GetCartCount(ctx, ""))
}

func TestGetCartCount_SumsAcrossLines(t *testing.T) {
	ctx := context.Background()
	firstID := uuid.New()
	secondID := uuid.New()

	cartRepo := newFakeCartRepository()
	mockProducts := new(MockProductsRepository)
	service := NewCartService(cartRepo, mockProducts, nil, newTestLogger())

	mockProducts.On("GetByID", ctx, firstID).Return(testProduct(firstID), nil)
	mockProducts.On("GetByID", ctx, secondID).Return(testProduct(secondID), nil)

	_, err := service.AddToCart(ctx, "user-1", firstID, 2, nil, nil)
	assert.NoError(t, err)
	_, err = service.AddToCart(ctx, "user-1", secondID, 3, nil, nil)
	assert.NoError(t, err)

	assert.Equal(t, int64(5), service.GetCartCount(ctx, "user-1"))
}

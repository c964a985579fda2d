package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"commerce-service/internal/models"
)

// ProductCacheTTL bounds how stale a cached product may get.
const ProductCacheTTL = 5 * time.Minute

// ProductsRepositoryInterface defines catalog persistence operations
type ProductsRepositoryInterface interface {
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, productID uuid.UUID) (*models.Product, error)
	BatchGetByIDs(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]*models.Product, error)
	List(ctx context.Context, categoryID string, limit, offset int) ([]models.Product, int64, error)
	Delete(ctx context.Context, productID uuid.UUID) error
}

type ProductsRepository struct {
	db    *gorm.DB
	redis *redis.Client
}

var _ ProductsRepositoryInterface = (*ProductsRepository)(nil)

func NewProductsRepository(db *gorm.DB, redis *redis.Client) *ProductsRepository {
	return &ProductsRepository{db: db, redis: redis}
}

func productCacheKey(productID uuid.UUID) string {
	return fmt.Sprintf("commerce:product:%s", productID.String())
}

// invalidateProductCache drops the cached copy after a mutation.
func (r *ProductsRepository) invalidateProductCache(ctx context.Context, productID uuid.UUID) {
	if r.redis == nil {
		return
	}
	_ = r.redis.Del(ctx, productCacheKey(productID)).Err()
}

// Create inserts a new product
func (r *ProductsRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Create(product).Error
}

// Update overwrites an existing product and invalidates its cache
func (r *ProductsRepository) Update(ctx context.Context, product *models.Product) error {
	product.UpdatedAt = time.Now()
	err := r.db.WithContext(ctx).Save(product).Error
	if err == nil {
		r.invalidateProductCache(ctx, product.ID)
	}
	return err
}

// GetByID retrieves a product by ID with caching
func (r *ProductsRepository) GetByID(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	cacheKey := productCacheKey(productID)

	if r.redis != nil {
		val, err := r.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var product models.Product
			if err := json.Unmarshal([]byte(val), &product); err == nil {
				return &product, nil
			}
		}
	}

	var product models.Product
	if err := r.db.WithContext(ctx).Where("id = ?", productID).First(&product).Error; err != nil {
		return nil, translateNotFound(err)
	}

	if r.redis != nil {
		if data, err := json.Marshal(product); err == nil {
			r.redis.Set(ctx, cacheKey, data, ProductCacheTTL)
		}
	}

	return &product, nil
}

// BatchGetByIDs retrieves multiple products in a single query, keyed by id.
// Missing ids are simply absent from the result, never an error.
func (r *ProductsRepository) BatchGetByIDs(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]*models.Product, error) {
	result := make(map[uuid.UUID]*models.Product, len(productIDs))
	if len(productIDs) == 0 {
		return result, nil
	}

	var products []*models.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", productIDs).Find(&products).Error; err != nil {
		return nil, err
	}
	for _, p := range products {
		result[p.ID] = p
	}
	return result, nil
}

// List retrieves products with an optional category filter and pagination
func (r *ProductsRepository) List(ctx context.Context, categoryID string, limit, offset int) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Product{})
	if categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// Delete removes a product record and invalidates its cache
func (r *ProductsRepository) Delete(ctx context.Context, productID uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", productID).Delete(&models.Product{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	r.invalidateProductCache(ctx, productID)
	return nil
}

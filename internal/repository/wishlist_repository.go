package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"commerce-service/internal/models"
)

// WishlistRepositoryInterface defines wishlist persistence operations
type WishlistRepositoryInterface interface {
	Add(ctx context.Context, entry *models.WishlistEntry) error
	Remove(ctx context.Context, userID string, productID uuid.UUID) (int64, error)
	Exists(ctx context.Context, userID string, productID uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]models.WishlistEntry, error)
	DeleteAll(ctx context.Context, userID string) error
}

type WishlistRepository struct {
	db *gorm.DB
}

var _ WishlistRepositoryInterface = (*WishlistRepository)(nil)

func NewWishlistRepository(db *gorm.DB) *WishlistRepository {
	return &WishlistRepository{db: db}
}

// Add inserts a wishlist entry. Re-adding an existing (user, product) pair
// is a no-op thanks to the unique index and conflict clause.
func (r *WishlistRepository) Add(ctx context.Context, entry *models.WishlistEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.AddedAt = time.Now()
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoNothing: true,
		}).
		Create(entry).Error
}

// Remove deletes the user's entry for a product, reporting rows removed
func (r *WishlistRepository) Remove(ctx context.Context, userID string, productID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.WishlistEntry{})
	return result.RowsAffected, result.Error
}

// Exists reports whether the user has saved the product
func (r *WishlistRepository) Exists(ctx context.Context, userID string, productID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.WishlistEntry{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	return count > 0, err
}

// ListByUser retrieves the user's wishlist, newest first
func (r *WishlistRepository) ListByUser(ctx context.Context, userID string) ([]models.WishlistEntry, error) {
	var entries []models.WishlistEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("added_at DESC").
		Find(&entries).Error
	return entries, err
}

// DeleteAll clears the user's wishlist. Idempotent.
func (r *WishlistRepository) DeleteAll(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.WishlistEntry{}).Error
}

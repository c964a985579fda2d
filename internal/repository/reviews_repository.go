package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"commerce-service/internal/models"
)

// ReviewsRepositoryInterface defines review persistence operations
type ReviewsRepositoryInterface interface {
	Create(ctx context.Context, review *models.Review) error
	Overwrite(ctx context.Context, reviewID uuid.UUID, rating int, comment string) error
	GetByID(ctx context.Context, reviewID uuid.UUID) (*models.Review, error)
	GetByUserAndProduct(ctx context.Context, userID string, productID uuid.UUID) (*models.Review, error)
	Delete(ctx context.Context, reviewID uuid.UUID) error
	SetFeatured(ctx context.Context, reviewID uuid.UUID, featured bool) error
	ListFeatured(ctx context.Context) ([]models.Review, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.Review, error)
	ListByUser(ctx context.Context, userID string) ([]models.Review, error)
}

type ReviewsRepository struct {
	db *gorm.DB
}

var _ ReviewsRepositoryInterface = (*ReviewsRepository)(nil)

func NewReviewsRepository(db *gorm.DB) *ReviewsRepository {
	return &ReviewsRepository{db: db}
}

// Create inserts a new review
func (r *ReviewsRepository) Create(ctx context.Context, review *models.Review) error {
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	review.CreatedAt = time.Now()
	return r.db.WithContext(ctx).Create(review).Error
}

// Overwrite replaces rating and comment in place and resets createdAt, so a
// user's history only ever shows their latest review of a product.
func (r *ReviewsRepository) Overwrite(ctx context.Context, reviewID uuid.UUID, rating int, comment string) error {
	result := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("id = ?", reviewID).
		Updates(map[string]interface{}{
			"rating":     rating,
			"comment":    comment,
			"created_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID retrieves a review by ID
func (r *ReviewsRepository) GetByID(ctx context.Context, reviewID uuid.UUID) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).Where("id = ?", reviewID).First(&review).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &review, nil
}

// GetByUserAndProduct retrieves the user's review of a product, if any
func (r *ReviewsRepository) GetByUserAndProduct(ctx context.Context, userID string, productID uuid.UUID) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&review).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &review, nil
}

// Delete removes a review
func (r *ReviewsRepository) Delete(ctx context.Context, reviewID uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", reviewID).Delete(&models.Review{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetFeatured updates the featured flag
func (r *ReviewsRepository) SetFeatured(ctx context.Context, reviewID uuid.UUID, featured bool) error {
	result := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("id = ?", reviewID).
		Update("featured", featured)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListFeatured retrieves featured reviews, newest first
func (r *ReviewsRepository) ListFeatured(ctx context.Context) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Where("featured = ?", true).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// ListByProduct retrieves a product's reviews, newest first
func (r *ReviewsRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// ListByUser retrieves a user's reviews, newest first
func (r *ReviewsRepository) ListByUser(ctx context.Context, userID string) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

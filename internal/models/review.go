package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is a user's product review. At most one exists per (user, product)
// pair; resubmission overwrites rating, comment and createdAt in place.
type Review struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    string    `json:"userId" gorm:"not null;index:idx_reviews_user;uniqueIndex:idx_reviews_user_product"`
	ProductID uuid.UUID `json:"productId" gorm:"type:uuid;not null;index:idx_reviews_product;uniqueIndex:idx_reviews_user_product"`
	Rating    int       `json:"rating" gorm:"not null"`
	Comment   string    `json:"comment"`
	Featured  bool      `json:"featured" gorm:"not null;default:false;index"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName returns the table name for the Review model
func (Review) TableName() string {
	return "reviews"
}

// SubmitReviewRequest represents a review submission
type SubmitReviewRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
	Comment   string `json:"comment"`
}

// ToggleFeaturedRequest represents a request to set the featured flag
type ToggleFeaturedRequest struct {
	Featured *bool `json:"featured" binding:"required"`
}

// ReviewView is a review joined with a display name and product snapshot.
// The product name falls back to a placeholder when the product is gone.
type ReviewView struct {
	Review
	ReviewerName string `json:"reviewerName"`
	ProductName  string `json:"productName"`
}

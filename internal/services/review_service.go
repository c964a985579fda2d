package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"commerce-service/internal/events"
	"commerce-service/internal/models"
	"commerce-service/internal/repository"
)

// UnavailableProductName is shown on reviews whose product was deleted.
const UnavailableProductName = "Unavailable product"

// ReviewService owns product reviews: at most one per (user, product),
// upserted in place on resubmission.
type ReviewService struct {
	repo      repository.ReviewsRepositoryInterface
	products  repository.ProductsRepositoryInterface
	customers repository.CustomersRepositoryInterface
	publisher *events.Publisher
	logger    *logrus.Entry
}

// NewReviewService creates a new ReviewService
func NewReviewService(repo repository.ReviewsRepositoryInterface, products repository.ProductsRepositoryInterface, customers repository.CustomersRepositoryInterface, publisher *events.Publisher, logger *logrus.Logger) *ReviewService {
	return &ReviewService{
		repo:      repo,
		products:  products,
		customers: customers,
		publisher: publisher,
		logger:    logger.WithField("component", "reviews"),
	}
}

// SubmitReview creates the user's review of a product or overwrites the
// existing one in place. The user's history only ever shows their latest
// review, never a log of revisions.
func (s *ReviewService) SubmitReview(ctx context.Context, userID string, productID uuid.UUID, rating int, comment string) (*models.Review, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	existing, err := s.repo.GetByUserAndProduct(ctx, userID, productID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if existing != nil {
		if err := s.repo.Overwrite(ctx, existing.ID, rating, comment); err != nil {
			return nil, err
		}
		updated, err := s.repo.GetByID(ctx, existing.ID)
		if err != nil {
			return nil, err
		}
		s.publisher.PublishReviewSubmitted(ctx, userID, updated.ID.String(), productID.String(), rating)
		return updated, nil
	}

	review := &models.Review{
		UserID:    userID,
		ProductID: productID,
		Rating:    rating,
		Comment:   comment,
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, err
	}
	s.publisher.PublishReviewSubmitted(ctx, userID, review.ID.String(), productID.String(), rating)
	return review, nil
}

// DeleteReview removes the caller's own review
func (s *ReviewService) DeleteReview(ctx context.Context, reviewID uuid.UUID, requestingUserID string) error {
	review, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if review.UserID != requestingUserID {
		return ErrUnauthorized
	}

	if err := s.repo.Delete(ctx, reviewID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.publisher.PublishReviewDeleted(ctx, requestingUserID, reviewID.String(), false)
	return nil
}

// AdminDeleteReview removes any review without an ownership check
func (s *ReviewService) AdminDeleteReview(ctx context.Context, reviewID uuid.UUID) error {
	if err := s.repo.Delete(ctx, reviewID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.publisher.PublishReviewDeleted(ctx, "", reviewID.String(), true)
	return nil
}

// ToggleFeatured sets the promotional flag. Administrative operation, no
// ownership check.
func (s *ReviewService) ToggleFeatured(ctx context.Context, reviewID uuid.UUID, featured bool) error {
	if err := s.repo.SetFeatured(ctx, reviewID, featured); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// ListFeaturedReviews returns featured reviews with display joins
func (s *ReviewService) ListFeaturedReviews(ctx context.Context) ([]models.ReviewView, error) {
	reviews, err := s.repo.ListFeatured(ctx)
	if err != nil {
		return nil, err
	}
	return s.buildViews(ctx, reviews)
}

// ListProductReviews returns a product's reviews with display joins
func (s *ReviewService) ListProductReviews(ctx context.Context, productID uuid.UUID) ([]models.ReviewView, error) {
	reviews, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return s.buildViews(ctx, reviews)
}

// ListUserReviews returns a user's reviews with display joins
func (s *ReviewService) ListUserReviews(ctx context.Context, userID string) ([]models.ReviewView, error) {
	reviews, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.buildViews(ctx, reviews)
}

// buildViews composes reviews with reviewer display names and product name
// snapshots at read time. A deleted product renders with a placeholder name
// and an unknown reviewer falls back to the anonymous display name.
func (s *ReviewService) buildViews(ctx context.Context, reviews []models.Review) ([]models.ReviewView, error) {
	userIDs := make([]string, 0, len(reviews))
	productIDs := make([]uuid.UUID, 0, len(reviews))
	for _, review := range reviews {
		userIDs = append(userIDs, review.UserID)
		productIDs = append(productIDs, review.ProductID)
	}

	customerMap, err := s.customers.BatchGetByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	productMap, err := s.products.BatchGetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	views := make([]models.ReviewView, 0, len(reviews))
	for _, review := range reviews {
		view := models.ReviewView{
			Review:       review,
			ReviewerName: models.AnonymousDisplayName,
			ProductName:  UnavailableProductName,
		}
		if customer, ok := customerMap[review.UserID]; ok {
			view.ReviewerName = customer.DisplayName()
		}
		if product, ok := productMap[review.ProductID]; ok {
			view.ProductName = product.Name
		}
		views = append(views, view)
	}
	return views, nil
}

package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"commerce-service/internal/clients"
	"commerce-service/internal/models"
	"commerce-service/internal/repository"
)

// WishlistService owns the mapping (user, product) -> wishlist entry.
// Mutations are silent no-ops for unauthenticated callers; the calling
// layer decides whether to require auth.
type WishlistService struct {
	repo     repository.WishlistRepositoryInterface
	products repository.ProductsRepositoryInterface
	storage  clients.StorageClient
	logger   *logrus.Entry
}

// NewWishlistService creates a new WishlistService
func NewWishlistService(repo repository.WishlistRepositoryInterface, products repository.ProductsRepositoryInterface, storage clients.StorageClient, logger *logrus.Logger) *WishlistService {
	return &WishlistService{
		repo:     repo,
		products: products,
		storage:  storage,
		logger:   logger.WithField("component", "wishlist"),
	}
}

// AddToWishlist saves a product for the user. Re-adding is a no-op, and so
// is an unauthenticated call.
func (s *WishlistService) AddToWishlist(ctx context.Context, userID string, productID uuid.UUID) error {
	if userID == "" {
		return nil
	}

	if _, err := s.products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	return s.repo.Add(ctx, &models.WishlistEntry{
		UserID:    userID,
		ProductID: productID,
	})
}

// RemoveFromWishlist drops the user's entry for a product. Unauthenticated
// calls are a no-op; removing an absent entry reports NotInWishlist.
func (s *WishlistService) RemoveFromWishlist(ctx context.Context, userID string, productID uuid.UUID) error {
	if userID == "" {
		return nil
	}

	removed, err := s.repo.Remove(ctx, userID, productID)
	if err != nil {
		return err
	}
	if removed == 0 {
		return ErrNotInWishlist
	}
	return nil
}

// IsInWishlist reports membership over the current snapshot
func (s *WishlistService) IsInWishlist(ctx context.Context, userID string, productID uuid.UUID) (bool, error) {
	if userID == "" {
		return false, nil
	}
	return s.repo.Exists(ctx, userID, productID)
}

// ClearWishlist deletes all entries for the user. Idempotent.
func (s *WishlistService) ClearWishlist(ctx context.Context, userID string) error {
	if userID == "" {
		return nil
	}
	return s.repo.DeleteAll(ctx, userID)
}

// GetWishlist returns the user's entries joined with product snapshots.
// Entries whose product was deleted are dropped, same policy as the cart.
func (s *WishlistService) GetWishlist(ctx context.Context, userID string) ([]models.WishlistItemView, error) {
	entries, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	productIDs := make([]uuid.UUID, 0, len(entries))
	for _, entry := range entries {
		productIDs = append(productIDs, entry.ProductID)
	}
	productMap, err := s.products.BatchGetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	items := make([]models.WishlistItemView, 0, len(entries))
	for _, entry := range entries {
		product, ok := productMap[entry.ProductID]
		if !ok {
			continue
		}
		items = append(items, models.WishlistItemView{
			Entry:   entry,
			Product: buildProductView(ctx, s.storage, s.logger, product),
		})
	}
	return items, nil
}

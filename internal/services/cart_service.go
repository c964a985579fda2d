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

// CartService owns the mapping (user, product) -> cart line. One line per
// pair; repeat adds accumulate quantity instead of replacing it.
type CartService struct {
	repo     repository.CartRepositoryInterface
	products repository.ProductsRepositoryInterface
	storage  clients.StorageClient
	logger   *logrus.Entry
}

// NewCartService creates a new CartService
func NewCartService(repo repository.CartRepositoryInterface, products repository.ProductsRepositoryInterface, storage clients.StorageClient, logger *logrus.Logger) *CartService {
	return &CartService{
		repo:     repo,
		products: products,
		storage:  storage,
		logger:   logger.WithField("component", "cart"),
	}
}

// AddToCart adds quantity of a product to the user's cart. On first add the
// line is created with size/color defaulting to the product's first
// available variant; on repeat adds the quantity accumulates, a supplied
// size/color switches the selection, and an omitted one keeps whatever the
// line already stores.
func (s *CartService) AddToCart(ctx context.Context, userID string, productID uuid.UUID, quantity int, size, color *string) (*models.CartLine, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	line := &models.CartLine{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if size != nil && *size != "" {
		line.SelectedSize = *size
	}
	if color != nil && *color != "" {
		line.SelectedColor = *color
	}

	return s.repo.AddOrIncrement(ctx, line, product.FirstSize(), product.FirstColor())
}

// SetQuantity replaces a line's quantity. Only the owner may do this.
func (s *CartService) SetQuantity(ctx context.Context, userID string, lineID uuid.UUID, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	line, err := s.repo.GetLineByID(ctx, lineID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if line.UserID != userID {
		return ErrUnauthorized
	}

	return s.repo.SetQuantity(ctx, lineID, quantity)
}

// RemoveLine deletes a cart line by id. Only the owner may do this.
func (s *CartService) RemoveLine(ctx context.Context, userID string, lineID uuid.UUID) error {
	line, err := s.repo.GetLineByID(ctx, lineID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if line.UserID != userID {
		return ErrUnauthorized
	}

	return s.repo.DeleteLine(ctx, lineID)
}

// RemoveByProduct deletes the user's line for a product
func (s *CartService) RemoveByProduct(ctx context.Context, userID string, productID uuid.UUID) error {
	removed, err := s.repo.DeleteByProduct(ctx, userID, productID)
	if err != nil {
		return err
	}
	if removed == 0 {
		return ErrNotInCart
	}
	return nil
}

// ClearCart deletes all lines for the user. No-op on an empty cart.
func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	return s.repo.DeleteAll(ctx, userID)
}

// GetCart returns the user's lines joined with current product snapshots.
// A line whose product was deleted is dropped from the result; the item is
// no longer purchasable, which is not an error.
func (s *CartService) GetCart(ctx context.Context, userID string) (*models.CartView, error) {
	lines, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	productIDs := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		productIDs = append(productIDs, line.ProductID)
	}
	productMap, err := s.products.BatchGetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	view := &models.CartView{Items: make([]models.CartItemView, 0, len(lines))}
	for _, line := range lines {
		product, ok := productMap[line.ProductID]
		if !ok {
			continue
		}
		productView := buildProductView(ctx, s.storage, s.logger, product)
		view.Items = append(view.Items, models.CartItemView{
			Line:    line,
			Product: productView,
		})
		view.Count += int64(line.Quantity)
		view.Subtotal += productView.DiscountedPrice * float64(line.Quantity)
	}
	return view, nil
}

// GetCartCount returns the sum of quantities across the user's lines. An
// unauthenticated caller or a failed lookup reads as an empty cart.
func (s *CartService) GetCartCount(ctx context.Context, userID string) int64 {
	if userID == "" {
		return 0
	}
	total, err := s.repo.SumQuantities(ctx, userID)
	if err != nil {
		s.logger.WithError(err).WithField("userId", userID).Warn("Failed to count cart items")
		return 0
	}
	return total
}

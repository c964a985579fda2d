package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"commerce-service/internal/clients"
	"commerce-service/internal/events"
	"commerce-service/internal/models"
	"commerce-service/internal/repository"
)

// CatalogService owns product records and derives canonical display
// pricing from size variants.
type CatalogService struct {
	repo      repository.ProductsRepositoryInterface
	storage   clients.StorageClient
	publisher *events.Publisher
	logger    *logrus.Entry
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(repo repository.ProductsRepositoryInterface, storage clients.StorageClient, publisher *events.Publisher, logger *logrus.Logger) *CatalogService {
	return &CatalogService{
		repo:      repo,
		storage:   storage,
		publisher: publisher,
		logger:    logger.WithField("component", "catalog"),
	}
}

// UpsertProduct validates and creates or updates a product. Sizes are
// stored in canonical taxonomy order and the base price is derived from the
// first sorted size when sizes are present.
func (s *CatalogService) UpsertProduct(ctx context.Context, req models.UpsertProductRequest, existingID *uuid.UUID) (*models.Product, error) {
	if req.DiscountPercentage < 0 || req.DiscountPercentage > 100 {
		return nil, ErrInvalidDiscount
	}
	if req.StockQuantity < 0 {
		return nil, ErrInvalidStock
	}

	sizes := models.SortSizes(req.Sizes)

	product := &models.Product{
		Name:               req.Name,
		Description:        req.Description,
		Price:              models.BasePrice(sizes, req.Price),
		DiscountPercentage: req.DiscountPercentage,
		StockQuantity:      req.StockQuantity,
		Sizes:              sizes,
		Colors:             req.Colors,
		CategoryID:         req.CategoryID,
		Badges:             req.Badges,
		MainImageID:        req.MainImageID,
		GalleryImageIDs:    req.GalleryImageIDs,
	}

	if existingID == nil {
		if err := s.repo.Create(ctx, product); err != nil {
			return nil, err
		}
		s.publisher.PublishProductUpserted(ctx, product.ID.String(), product.Name, true)
		return product, nil
	}

	existing, err := s.repo.GetByID(ctx, *existingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	product.ID = existing.ID
	product.CreatedAt = existing.CreatedAt
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	s.publisher.PublishProductUpserted(ctx, product.ID.String(), product.Name, false)
	return product, nil
}

// GetProduct retrieves a product with resolved image URLs
func (s *CatalogService) GetProduct(ctx context.Context, productID uuid.UUID) (*models.ProductView, error) {
	product, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	view := s.buildView(ctx, product)
	return &view, nil
}

// ListProducts retrieves products with an optional category filter
func (s *CatalogService) ListProducts(ctx context.Context, categoryID string, limit, offset int) ([]models.ProductView, int64, error) {
	products, total, err := s.repo.List(ctx, categoryID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	views := make([]models.ProductView, 0, len(products))
	for i := range products {
		views = append(views, s.buildView(ctx, &products[i]))
	}
	return views, total, nil
}

// DeleteProduct releases the product's image resources, then removes the
// record. The steps are sequential and best-effort: if the record delete
// fails after images were released, a retry of the delete recovers; the
// released images are never resurrected.
func (s *CatalogService) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	product, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.storage.Delete(ctx, product.MainImageID); err != nil {
		s.logger.WithError(err).WithField("imageId", product.MainImageID).Warn("Failed to release main image")
	}
	for _, imageID := range product.GalleryImageIDs {
		if err := s.storage.Delete(ctx, imageID); err != nil {
			s.logger.WithError(err).WithField("imageId", imageID).Warn("Failed to release gallery image")
		}
	}

	if err := s.repo.Delete(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.publisher.PublishProductDeleted(ctx, productID.String())
	return nil
}

// buildView joins a product with resolved image URLs and the
// presentation-time discounted price. URL resolution failures degrade to
// missing URLs rather than failing the read.
func (s *CatalogService) buildView(ctx context.Context, product *models.Product) models.ProductView {
	return buildProductView(ctx, s.storage, s.logger, product)
}

func buildProductView(ctx context.Context, storage clients.StorageClient, logger *logrus.Entry, product *models.Product) models.ProductView {
	view := models.ProductView{
		Product:         *product,
		DiscountedPrice: models.DiscountedPrice(product.Price, product.DiscountPercentage),
	}

	if storage == nil {
		return view
	}

	url, err := storage.GetURL(ctx, product.MainImageID)
	if err != nil {
		logger.WithError(err).WithField("productId", product.ID).Debug("Failed to resolve main image URL")
	}
	view.MainImageURL = url

	for _, imageID := range product.GalleryImageIDs {
		galleryURL, err := storage.GetURL(ctx, imageID)
		if err != nil || galleryURL == "" {
			continue
		}
		view.GalleryURLs = append(view.GalleryURLs, galleryURL)
	}
	return view
}

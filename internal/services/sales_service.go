package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"commerce-service/internal/clients"
	"commerce-service/internal/models"
	"commerce-service/internal/repository"
)

const (
	defaultTopSellersLimit = 4

	// The ranking scans the whole ledger, so results are cached briefly.
	topSellersCacheTTL = 2 * time.Minute
)

func topSellersCacheKey(limit int) string {
	return fmt.Sprintf("commerce:top-sellers:%d", limit)
}

// SalesService derives best-seller rankings from the order ledger.
type SalesService struct {
	orders  repository.OrdersRepositoryInterface
	catalog repository.ProductsRepositoryInterface
	storage clients.StorageClient
	redis   *redis.Client
	logger  *logrus.Entry
}

// NewSalesService creates a new SalesService
func NewSalesService(orders repository.OrdersRepositoryInterface, catalog repository.ProductsRepositoryInterface, storage clients.StorageClient, redisClient *redis.Client, logger *logrus.Logger) *SalesService {
	return &SalesService{
		orders:  orders,
		catalog: catalog,
		storage: storage,
		redis:   redisClient,
		logger:  logger.WithField("component", "sales"),
	}
}

// GetTopSellingProducts ranks products by total quantity sold across the
// whole order ledger, highest first. Ties break on product id so the
// ranking is stable between calls. Products that have since been deleted
// from the catalog are skipped rather than shown as gaps.
func (s *SalesService) GetTopSellingProducts(ctx context.Context, limit int) ([]models.TopSellingProduct, error) {
	if limit < 1 {
		limit = defaultTopSellersLimit
	}

	if s.redis != nil {
		val, err := s.redis.Get(ctx, topSellersCacheKey(limit)).Result()
		if err == nil {
			var cached []models.TopSellingProduct
			if json.Unmarshal([]byte(val), &cached) == nil {
				return cached, nil
			}
		}
	}

	items, err := s.orders.ListAllItems(ctx)
	if err != nil {
		return nil, err
	}

	type tally struct {
		quantity int
		revenue  float64
	}
	totals := make(map[uuid.UUID]*tally)
	for _, item := range items {
		t, ok := totals[item.ProductID]
		if !ok {
			t = &tally{}
			totals[item.ProductID] = t
		}
		t.quantity += item.Quantity
		t.revenue += item.UnitPrice * float64(item.Quantity)
	}

	ids := make([]uuid.UUID, 0, len(totals))
	for id := range totals {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := totals[ids[i]], totals[ids[j]]
		if a.quantity != b.quantity {
			return a.quantity > b.quantity
		}
		return ids[i].String() < ids[j].String()
	})

	products, err := s.catalog.BatchGetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	top := make([]models.TopSellingProduct, 0, limit)
	for _, id := range ids {
		if len(top) == limit {
			break
		}
		product, ok := products[id]
		if !ok {
			s.logger.WithField("product_id", id).Debug("Skipping sold product no longer in catalog")
			continue
		}
		t := totals[id]
		top = append(top, models.TopSellingProduct{
			Product:       buildProductView(ctx, s.storage, s.logger, product),
			TotalQuantity: t.quantity,
			TotalRevenue:  t.revenue,
		})
	}

	if s.redis != nil {
		if data, err := json.Marshal(top); err == nil {
			if err := s.redis.Set(ctx, topSellersCacheKey(limit), data, topSellersCacheTTL).Err(); err != nil {
				s.logger.WithError(err).Warn("Failed to cache top sellers")
			}
		}
	}
	return top, nil
}

package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"commerce-service/internal/models"
)

// CustomersRepositoryInterface defines customer read/sync operations
type CustomersRepositoryInterface interface {
	GetByID(ctx context.Context, userID string) (*models.Customer, error)
	BatchGetByIDs(ctx context.Context, userIDs []string) (map[string]*models.Customer, error)
	Upsert(ctx context.Context, customer *models.Customer) error
}

type CustomersRepository struct {
	db *gorm.DB
}

var _ CustomersRepositoryInterface = (*CustomersRepository)(nil)

func NewCustomersRepository(db *gorm.DB) *CustomersRepository {
	return &CustomersRepository{db: db}
}

// GetByID retrieves a customer by the identity provider's subject
func (r *CustomersRepository) GetByID(ctx context.Context, userID string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).Where("id = ?", userID).First(&customer).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &customer, nil
}

// BatchGetByIDs retrieves multiple customers in one query, keyed by id.
// Unknown ids are absent from the map, not an error.
func (r *CustomersRepository) BatchGetByIDs(ctx context.Context, userIDs []string) (map[string]*models.Customer, error) {
	result := make(map[string]*models.Customer, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	var customers []*models.Customer
	if err := r.db.WithContext(ctx).Where("id IN ?", userIDs).Find(&customers).Error; err != nil {
		return nil, err
	}
	for _, c := range customers {
		result[c.ID] = c
	}
	return result, nil
}

// Upsert mirrors the identity provider's record locally, refreshing name
// and email on every authenticated request that carries them.
func (r *CustomersRepository) Upsert(ctx context.Context, customer *models.Customer) error {
	customer.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"first_name", "last_name", "email", "updated_at"}),
		}).
		Create(customer).Error
}

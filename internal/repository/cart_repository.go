package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"commerce-service/internal/models"
)

// CartRepositoryInterface defines cart persistence operations. Mutations on
// a single (user, product) line are atomic: AddOrIncrement runs the whole
// read-modify-write inside one transaction with a row lock, so two
// concurrent adds both land.
type CartRepositoryInterface interface {
	AddOrIncrement(ctx context.Context, line *models.CartLine, defaultSize, defaultColor string) (*models.CartLine, error)
	GetLineByID(ctx context.Context, lineID uuid.UUID) (*models.CartLine, error)
	SetQuantity(ctx context.Context, lineID uuid.UUID, quantity int) error
	DeleteLine(ctx context.Context, lineID uuid.UUID) error
	DeleteByProduct(ctx context.Context, userID string, productID uuid.UUID) (int64, error)
	DeleteAll(ctx context.Context, userID string) error
	ListByUser(ctx context.Context, userID string) ([]models.CartLine, error)
	SumQuantities(ctx context.Context, userID string) (int64, error)
}

type CartRepository struct {
	db *gorm.DB
}

var _ CartRepositoryInterface = (*CartRepository)(nil)

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

// AddOrIncrement creates the line for (user, product) or adds the quantity
// to the existing one. A supplied size/color on the incoming line overwrites
// the stored selection; empty values keep it. The defaults fill omitted
// selections on the create branch only. Returns the resulting line.
func (r *CartRepository) AddOrIncrement(ctx context.Context, line *models.CartLine, defaultSize, defaultColor string) (*models.CartLine, error) {
	var result models.CartLine

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.CartLine
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND product_id = ?", line.UserID, line.ProductID).
			First(&existing).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			if line.ID == uuid.Nil {
				line.ID = uuid.New()
			}
			if line.SelectedSize == "" {
				line.SelectedSize = defaultSize
			}
			if line.SelectedColor == "" {
				line.SelectedColor = defaultColor
			}
			line.AddedAt = time.Now()
			line.UpdatedAt = time.Now()
			if err := tx.Create(line).Error; err != nil {
				return err
			}
			result = *line
			return nil
		}
		if err != nil {
			return err
		}

		updates := map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", line.Quantity),
			"updated_at": time.Now(),
		}
		if line.SelectedSize != "" {
			updates["selected_size"] = line.SelectedSize
		}
		if line.SelectedColor != "" {
			updates["selected_color"] = line.SelectedColor
		}
		if err := tx.Model(&models.CartLine{}).Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", existing.ID).First(&result).Error
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GetLineByID retrieves a single cart line
func (r *CartRepository) GetLineByID(ctx context.Context, lineID uuid.UUID) (*models.CartLine, error) {
	var line models.CartLine
	if err := r.db.WithContext(ctx).Where("id = ?", lineID).First(&line).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &line, nil
}

// SetQuantity replaces a line's quantity
func (r *CartRepository) SetQuantity(ctx context.Context, lineID uuid.UUID, quantity int) error {
	result := r.db.WithContext(ctx).Model(&models.CartLine{}).
		Where("id = ?", lineID).
		Updates(map[string]interface{}{
			"quantity":   quantity,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteLine removes a single cart line
func (r *CartRepository) DeleteLine(ctx context.Context, lineID uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", lineID).Delete(&models.CartLine{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByProduct removes the user's line for a product, reporting how many
// rows were removed so callers can distinguish "was not in cart".
func (r *CartRepository) DeleteByProduct(ctx context.Context, userID string, productID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartLine{})
	return result.RowsAffected, result.Error
}

// DeleteAll clears the user's cart. Deleting nothing is not an error.
func (r *CartRepository) DeleteAll(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartLine{}).Error
}

// ListByUser retrieves all of the user's cart lines, oldest first
func (r *CartRepository) ListByUser(ctx context.Context, userID string) ([]models.CartLine, error) {
	var lines []models.CartLine
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("added_at ASC").
		Find(&lines).Error
	return lines, err
}

// SumQuantities totals the quantities across the user's lines
func (r *CartRepository) SumQuantities(ctx context.Context, userID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.CartLine{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	return total, err
}

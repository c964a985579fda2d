package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"commerce-service/internal/models"
)

// AnalyticsRepositoryInterface defines visitor-analytics persistence.
// TouchSession and IncrementDay are each a single atomic upsert, so
// concurrent views never lose a count and never double-classify a visitor
// as unique on the same day.
type AnalyticsRepositoryInterface interface {
	GetSession(ctx context.Context, visitorID string) (*models.VisitorSession, error)
	TouchSession(ctx context.Context, session *models.VisitorSession) (bool, error)
	IncrementDay(ctx context.Context, day string, unique bool) error
	GetCounter(ctx context.Context, day string) (*models.DailyViewCounter, error)
	ListCounters(ctx context.Context, fromDay, toDay string) ([]models.DailyViewCounter, error)
	ListRecentCounters(ctx context.Context, limit int) ([]models.DailyViewCounter, error)
	SumCounters(ctx context.Context) (*models.ViewTotals, error)
}

type AnalyticsRepository struct {
	db *gorm.DB
}

var _ AnalyticsRepositoryInterface = (*AnalyticsRepository)(nil)

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// GetSession retrieves a visitor session by its client-held token
func (r *AnalyticsRepository) GetSession(ctx context.Context, visitorID string) (*models.VisitorSession, error) {
	var session models.VisitorSession
	if err := r.db.WithContext(ctx).Where("visitor_id = ?", visitorID).First(&session).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &session, nil
}

// TouchSession upserts the visitor session and reports whether this is the
// visitor's first recorded view on session.LastVisitDate. The insert and
// the date comparison run as one statement, so two concurrent first views
// of a day classify as unique exactly once.
func (r *AnalyticsRepository) TouchSession(ctx context.Context, session *models.VisitorSession) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "visitor_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"last_visit_date", "last_visit_at", "is_authenticated", "user_id"}),
			Where: clause.Where{Exprs: []clause.Expression{
				gorm.Expr("visitor_sessions.last_visit_date <> excluded.last_visit_date"),
			}},
		}).
		Create(session)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return true, nil
	}

	// Same-day repeat: the guarded upsert left the row alone, so refresh
	// the non-classifying fields separately.
	err := r.db.WithContext(ctx).Model(&models.VisitorSession{}).
		Where("visitor_id = ?", session.VisitorID).
		Updates(map[string]interface{}{
			"last_visit_at":    session.LastVisitAt,
			"is_authenticated": session.IsAuthenticated,
			"user_id":          session.UserID,
		}).Error
	return false, err
}

// IncrementDay creates the day's counter on its first view, otherwise bumps
// the totals in place. The unique flag adds to uniqueCount as well.
func (r *AnalyticsRepository) IncrementDay(ctx context.Context, day string, unique bool) error {
	uniqueIncrement := int64(0)
	if unique {
		uniqueIncrement = 1
	}

	counter := models.DailyViewCounter{
		Date:        day,
		Count:       1,
		UniqueCount: uniqueIncrement,
		UpdatedAt:   time.Now(),
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"count":        gorm.Expr("daily_view_counters.count + 1"),
				"unique_count": gorm.Expr("daily_view_counters.unique_count + ?", uniqueIncrement),
				"updated_at":   time.Now(),
			}),
		}).
		Create(&counter).Error
}

// GetCounter retrieves a single day's counter
func (r *AnalyticsRepository) GetCounter(ctx context.Context, day string) (*models.DailyViewCounter, error) {
	var counter models.DailyViewCounter
	if err := r.db.WithContext(ctx).Where("date = ?", day).First(&counter).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &counter, nil
}

// ListCounters retrieves counters between two days inclusive, oldest first
func (r *AnalyticsRepository) ListCounters(ctx context.Context, fromDay, toDay string) ([]models.DailyViewCounter, error) {
	var counters []models.DailyViewCounter
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", fromDay, toDay).
		Order("date ASC").
		Find(&counters).Error
	return counters, err
}

// ListRecentCounters retrieves the most recent N day counters, newest first
func (r *AnalyticsRepository) ListRecentCounters(ctx context.Context, limit int) ([]models.DailyViewCounter, error) {
	var counters []models.DailyViewCounter
	err := r.db.WithContext(ctx).
		Order("date DESC").
		Limit(limit).
		Find(&counters).Error
	return counters, err
}

// SumCounters totals all day counters
func (r *AnalyticsRepository) SumCounters(ctx context.Context) (*models.ViewTotals, error) {
	var totals models.ViewTotals
	err := r.db.WithContext(ctx).Model(&models.DailyViewCounter{}).
		Select("COALESCE(SUM(count), 0) AS total_views, COALESCE(SUM(unique_count), 0) AS unique_views, COUNT(*) AS days").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return &totals, nil
}

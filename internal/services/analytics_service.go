package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"commerce-service/internal/models"
	"commerce-service/internal/repository"
)

// AnalyticsService counts daily views with per-day unique-visitor
// deduplication. Uniqueness is keyed on a client-held visitor token, so a
// visitor who clears the token is recounted as new.
type AnalyticsService struct {
	repo   repository.AnalyticsRepositoryInterface
	now    func() time.Time
	logger *logrus.Entry
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(repo repository.AnalyticsRepositoryInterface, logger *logrus.Logger) *AnalyticsService {
	return &AnalyticsService{
		repo:   repo,
		now:    time.Now,
		logger: logger.WithField("component", "analytics"),
	}
}

// RecordView registers one view from a visitor. The view is unique for
// today when it is the visitor's first-ever view or their first view on
// this calendar day; today's counter always gains a view either way. The
// repository classifies uniqueness inside the session upsert itself, so
// concurrent first views of a day count the visitor once.
func (s *AnalyticsService) RecordView(ctx context.Context, visitorID string, userID *string) error {
	now := s.now()
	session := &models.VisitorSession{
		VisitorID:       visitorID,
		LastVisitDate:   now.Format(models.DayFormat),
		LastVisitAt:     now,
		IsAuthenticated: userID != nil && *userID != "",
		UserID:          userID,
		CreatedAt:       now,
	}

	unique, err := s.repo.TouchSession(ctx, session)
	if err != nil {
		return err
	}
	return s.repo.IncrementDay(ctx, session.LastVisitDate, unique)
}

// GetTotalViews totals all recorded day counters
func (s *AnalyticsService) GetTotalViews(ctx context.Context) (*models.ViewTotals, error) {
	return s.repo.SumCounters(ctx)
}

// GetRecentViews returns the most recent N day counters, newest first
func (s *AnalyticsService) GetRecentViews(ctx context.Context, days int) ([]models.DailyViewCounter, error) {
	if days < 1 {
		days = 7
	}
	return s.repo.ListRecentCounters(ctx, days)
}

// GetViewsByDateRange returns counters between two days inclusive
func (s *AnalyticsService) GetViewsByDateRange(ctx context.Context, from, to time.Time) ([]models.DailyViewCounter, error) {
	return s.repo.ListCounters(ctx, from.Format(models.DayFormat), to.Format(models.DayFormat))
}

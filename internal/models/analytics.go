package models

import "time"

// DayFormat is the calendar-day key used by the analytics tables.
const DayFormat = "2006-01-02"

// VisitorSession tracks one anonymous visitor token. The token is client
// generated, so a visitor who clears it is recounted as new.
type VisitorSession struct {
	VisitorID       string    `json:"visitorId" gorm:"primary_key"`
	LastVisitDate   string    `json:"lastVisitDate" gorm:"size:10;not null;index"`
	LastVisitAt     time.Time `json:"lastVisitAt"`
	IsAuthenticated bool      `json:"isAuthenticated"`
	UserID          *string   `json:"userId,omitempty" gorm:"index"`
	CreatedAt       time.Time `json:"createdAt"`
}

// TableName returns the table name for the VisitorSession model
func (VisitorSession) TableName() string {
	return "visitor_sessions"
}

// DailyViewCounter aggregates views per calendar day. UniqueCount counts
// visitors on their first view of that day, at most once per visitor.
type DailyViewCounter struct {
	Date        string    `json:"date" gorm:"size:10;primary_key"`
	Count       int64     `json:"count" gorm:"not null;default:0"`
	UniqueCount int64     `json:"uniqueCount" gorm:"not null;default:0"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName returns the table name for the DailyViewCounter model
func (DailyViewCounter) TableName() string {
	return "daily_view_counters"
}

// RecordViewRequest carries the client-held visitor token.
type RecordViewRequest struct {
	VisitorID string `json:"visitorId" binding:"required"`
}

// ViewTotals summarizes aggregate view counts over a period.
type ViewTotals struct {
	TotalViews  int64 `json:"totalViews"`
	UniqueViews int64 `json:"uniqueViews"`
	Days        int   `json:"days"`
}

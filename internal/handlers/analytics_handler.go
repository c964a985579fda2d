package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"commerce-service/internal/models"
	"commerce-service/internal/services"
)

type AnalyticsHandler struct {
	service *services.AnalyticsService
	logger  *logrus.Entry
}

func NewAnalyticsHandler(service *services.AnalyticsService, logger *logrus.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: service,
		logger:  logger.WithField("component", "analytics_handler"),
	}
}

// RecordView registers a storefront page view. Always answers 200: a lost
// view must never surface as an error in the storefront.
// @Summary Record view
// @Description Record a storefront visit for the daily view counters
// @Tags Analytics
// @Accept json
// @Produce json
// @Param view body models.RecordViewRequest true "Visitor token"
// @Success 200 {object} models.SuccessResponse
// @Router /analytics/views [post]
func (h *AnalyticsHandler) RecordView(c *gin.Context) {
	var req models.RecordViewRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.VisitorID == "" {
		c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
		return
	}

	var userID *string
	if id := currentUserID(c); id != "" {
		userID = &id
	}

	if err := h.service.RecordView(c.Request.Context(), req.VisitorID, userID); err != nil {
		h.logger.WithError(err).Warn("Failed to record view")
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}

// GetTotals returns all-time view totals
// @Summary Get view totals
// @Description Get all-time total and unique view counts
// @Tags Analytics
// @Produce json
// @Success 200 {object} models.SuccessResponse
// @Router /admin/analytics/views/total [get]
func (h *AnalyticsHandler) GetTotals(c *gin.Context) {
	totals, err := h.service.GetTotalViews(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: totals})
}

// GetRecent returns the last N daily counters
// @Summary Get recent views
// @Description Get per-day view counters for the most recent days
// @Tags Analytics
// @Produce json
// @Param days query int false "Number of days" default(7)
// @Success 200 {object} models.SuccessResponse
// @Router /admin/analytics/views/recent [get]
func (h *AnalyticsHandler) GetRecent(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))
	if days < 1 || days > 365 {
		days = 7
	}

	counters, err := h.service.GetRecentViews(c.Request.Context(), days)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: counters})
}

// GetRange returns daily counters between two dates inclusive
// @Summary Get views by date range
// @Description Get per-day view counters between two dates
// @Tags Analytics
// @Produce json
// @Param from query string true "Start date (YYYY-MM-DD)"
// @Param to query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/analytics/views/range [get]
func (h *AnalyticsHandler) GetRange(c *gin.Context) {
	from, errFrom := time.Parse(models.DayFormat, c.Query("from"))
	to, errTo := time.Parse(models.DayFormat, c.Query("to"))
	if errFrom != nil || errTo != nil || to.Before(from) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: "from and to must be YYYY-MM-DD with from <= to"},
		})
		return
	}

	counters, err := h.service.GetViewsByDateRange(c.Request.Context(), from, to)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: counters})
}

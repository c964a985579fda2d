package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"commerce-service/internal/models"
	"commerce-service/internal/services"
)

type SalesHandler struct {
	service *services.SalesService
}

func NewSalesHandler(service *services.SalesService) *SalesHandler {
	return &SalesHandler{service: service}
}

// GetTopSelling ranks products by total quantity sold
// @Summary Get top selling products
// @Description Get the best-selling products from the order ledger
// @Tags Sales
// @Produce json
// @Param limit query int false "Number of products" default(4)
// @Success 200 {object} models.SuccessResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /products/top-selling [get]
func (h *SalesHandler) GetTopSelling(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "4"))
	if limit < 1 || limit > 50 {
		limit = 4
	}

	top, err := h.service.GetTopSellingProducts(c.Request.Context(), limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: top})
}

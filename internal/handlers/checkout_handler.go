package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"commerce-service/internal/models"
	"commerce-service/internal/services"
)

type CheckoutHandler struct {
	service *services.CheckoutService
}

func NewCheckoutHandler(service *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

// CreateIntent registers the caller's cart total with the payment provider
// @Summary Create payment intent
// @Description Create a payment intent for the caller's current cart
// @Tags Checkout
// @Produce json
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /checkout/intent [post]
func (h *CheckoutHandler) CreateIntent(c *gin.Context) {
	intent, err := h.service.CreateIntent(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: intent})
}

// Confirm finalizes a checkout whose payment succeeded
// @Summary Confirm checkout
// @Description Finalize a succeeded payment intent into a placed order
// @Tags Checkout
// @Accept json
// @Produce json
// @Param confirmation body models.ConfirmCheckoutRequest true "Payment intent to confirm"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /checkout/confirm [post]
func (h *CheckoutHandler) Confirm(c *gin.Context) {
	var req models.ConfirmCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	order, err := h.service.Confirm(c.Request.Context(), currentUserID(c), req.PaymentIntentID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: order})
}

// ListOrders lists the caller's placed orders
// @Summary List my orders
// @Description List the caller's orders, newest first
// @Tags Checkout
// @Produce json
// @Success 200 {object} models.SuccessResponse
// @Router /me/orders [get]
func (h *CheckoutHandler) ListOrders(c *gin.Context) {
	orders, err := h.service.ListOrders(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: orders})
}

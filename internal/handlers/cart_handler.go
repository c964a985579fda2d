package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"commerce-service/internal/models"
	"commerce-service/internal/services"
)

type CartHandler struct {
	service *services.CartService
}

func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{service: service}
}

// AddItem adds a product to the cart, accumulating onto an existing line
// @Summary Add to cart
// @Description Add a product to the caller's cart; repeat adds accumulate quantity
// @Tags Cart
// @Accept json
// @Produce json
// @Param item body models.AddToCartRequest true "Item to add"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: "Invalid productId"},
		})
		return
	}

	line, err := h.service.AddToCart(c.Request.Context(), currentUserID(c), productID, req.Quantity, req.Size, req.Color)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: line})
}

// SetQuantity replaces a cart line's quantity
// @Summary Set cart line quantity
// @Description Replace the quantity of one cart line
// @Tags Cart
// @Accept json
// @Produce json
// @Param id path string true "Cart line ID"
// @Param quantity body models.SetQuantityRequest true "New quantity"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/items/{id} [put]
func (h *CartHandler) SetQuantity(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.service.SetQuantity(c.Request.Context(), currentUserID(c), id, req.Quantity); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: "Quantity updated"})
}

// RemoveItem removes one cart line
// @Summary Remove cart line
// @Description Remove a cart line by its ID
// @Tags Cart
// @Produce json
// @Param id path string true "Cart line ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.RemoveLine(c.Request.Context(), currentUserID(c), id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: "Item removed"})
}

// RemoveProduct removes a product's line from the cart by product id
// @Summary Remove product from cart
// @Description Remove the cart line holding a given product
// @Tags Cart
// @Produce json
// @Param productId path string true "Product ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/products/{productId} [delete]
func (h *CartHandler) RemoveProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}

	if err := h.service.RemoveByProduct(c.Request.Context(), currentUserID(c), productID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: "Item removed"})
}

// Clear empties the cart; clearing an empty cart succeeds
// @Summary Clear cart
// @Description Remove every line from the caller's cart
// @Tags Cart
// @Produce json
// @Success 200 {object} models.SuccessResponse
// @Router /cart [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.service.ClearCart(c.Request.Context(), currentUserID(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: "Cart cleared"})
}

// GetCart returns the cart with product snapshots and derived totals
// @Summary Get cart
// @Description Get the caller's cart with current product data and totals
// @Tags Cart
// @Produce json
// @Success 200 {object} models.SuccessResponse
// @Router /cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	cart, err := h.service.GetCart(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: cart})
}

// GetCount returns the total quantity across the cart, 0 for anonymous
// @Summary Get cart count
// @Description Get the total item quantity in the caller's cart
// @Tags Cart
// @Produce json
// @Success 200 {object} models.SuccessResponse
// @Router /cart/count [get]
func (h *CartHandler) GetCount(c *gin.Context) {
	count := h.service.GetCartCount(c.Request.Context(), currentUserID(c))
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: gin.H{"count": count}})
}

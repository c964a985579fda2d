package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"commerce-service/internal/models"
	"commerce-service/internal/services"
)

type WishlistHandler struct {
	service *services.WishlistService
}

func NewWishlistHandler(service *services.WishlistService) *WishlistHandler {
	return &WishlistHandler{service: service}
}

// AddItem saves a product to the wishlist. Anonymous callers get a 200
// with nothing saved, so the storefront can call this unconditionally.
// @Summary Add to wishlist
// @Description Save a product to the caller's wishlist
// @Tags Wishlist
// @Accept json
// @Produce json
// @Param item body models.AddToWishlistRequest true "Product to save"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /wishlist/items [post]
func (h *WishlistHandler) AddItem(c *gin.Context) {
	var req models.AddToWishlistRequest
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

	if err := h.service.AddToWishlist(c.Request.Context(), currentUserID(c), productID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: "Saved"})
}

// RemoveItem removes a product from the wishlist
// @Summary Remove from wishlist
// @Description Remove a product from the caller's wishlist
// @Tags Wishlist
// @Produce json
// @Param productId path string true "Product ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /wishlist/items/{productId} [delete]
func (h *WishlistHandler) RemoveItem(c *gin.Context) {
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}

	if err := h.service.RemoveFromWishlist(c.Request.Context(), currentUserID(c), productID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: "Removed"})
}

// Contains reports whether a product is in the caller's wishlist
// @Summary Check wishlist membership
// @Description Report whether a product is saved in the caller's wishlist
// @Tags Wishlist
// @Produce json
// @Param productId path string true "Product ID"
// @Success 200 {object} models.SuccessResponse
// @Router /wishlist/contains/{productId} [get]
func (h *WishlistHandler) Contains(c *gin.Context) {
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}

	saved, err := h.service.IsInWishlist(c.Request.Context(), currentUserID(c), productID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: gin.H{"saved": saved}})
}

// Clear empties the wishlist
// @Summary Clear wishlist
// @Description Remove every entry from the caller's wishlist
// @Tags Wishlist
// @Produce json
// @Success 200 {object} models.SuccessResponse
// @Router /wishlist [delete]
func (h *WishlistHandler) Clear(c *gin.Context) {
	if err := h.service.ClearWishlist(c.Request.Context(), currentUserID(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: "Wishlist cleared"})
}

// GetWishlist returns the wishlist with product snapshots
// @Summary Get wishlist
// @Description Get the caller's wishlist with current product data
// @Tags Wishlist
// @Produce json
// @Success 200 {object} models.SuccessResponse
// @Router /wishlist [get]
func (h *WishlistHandler) GetWishlist(c *gin.Context) {
	items, err := h.service.GetWishlist(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: items})
}

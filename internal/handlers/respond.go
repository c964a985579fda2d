package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"commerce-service/internal/models"
	"commerce-service/internal/services"
)

// currentUserID reads the identity set by the auth middleware. Empty means
// anonymous, which the optional-auth routes treat as a valid caller.
func currentUserID(c *gin.Context) string {
	return c.GetString("userId")
}

// parseIDParam parses a UUID path parameter and writes the 400 itself
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "VALIDATION_ERROR",
				Message: "Invalid " + name + " parameter",
			},
		})
		return uuid.Nil, false
	}
	return id, true
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Success: false,
		Error: models.Error{
			Code:    "VALIDATION_ERROR",
			Message: err.Error(),
		},
	})
}

// respondServiceError maps the service error taxonomy to HTTP statuses.
// Anything unrecognized is a 500 with the cause hidden from the client.
func respondServiceError(c *gin.Context, err error) {
	var status int
	var code, message string

	switch {
	case errors.Is(err, services.ErrNotFound):
		status, code, message = http.StatusNotFound, "NOT_FOUND", "Resource not found"
	case errors.Is(err, services.ErrNotInCart):
		status, code, message = http.StatusNotFound, "NOT_IN_CART", "Product is not in the cart"
	case errors.Is(err, services.ErrNotInWishlist):
		status, code, message = http.StatusNotFound, "NOT_IN_WISHLIST", "Product is not in the wishlist"
	case errors.Is(err, services.ErrUnauthorized):
		status, code, message = http.StatusForbidden, "FORBIDDEN", "Not allowed to perform this operation"
	case errors.Is(err, services.ErrInvalidRating):
		status, code, message = http.StatusBadRequest, "INVALID_RATING", "Rating must be between 1 and 5"
	case errors.Is(err, services.ErrInvalidDiscount):
		status, code, message = http.StatusBadRequest, "INVALID_DISCOUNT", "Discount percentage must be between 0 and 100"
	case errors.Is(err, services.ErrInvalidStock):
		status, code, message = http.StatusBadRequest, "INVALID_STOCK", "Stock quantity cannot be negative"
	case errors.Is(err, services.ErrInvalidQuantity):
		status, code, message = http.StatusBadRequest, "INVALID_QUANTITY", "Quantity must be at least 1"
	case errors.Is(err, services.ErrEmptyCart):
		status, code, message = http.StatusBadRequest, "EMPTY_CART", "Cart is empty"
	case errors.Is(err, services.ErrPaymentPending):
		status, code, message = http.StatusConflict, "PAYMENT_PENDING", "Payment has not succeeded yet"
	default:
		status, code, message = http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred"
	}

	c.JSON(status, models.ErrorResponse{
		Success: false,
		Error:   models.Error{Code: code, Message: message},
	})
}

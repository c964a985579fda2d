package services

import "errors"

// Error taxonomy shared by the engine services. Handlers map these to HTTP
// statuses; nothing below the handlers inspects strings.
var (
	ErrNotFound        = errors.New("referenced entity not found")
	ErrUnauthorized    = errors.New("caller is not authorized for this entity")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrInvalidDiscount = errors.New("discount percentage must be between 0 and 100")
	ErrInvalidStock    = errors.New("stock quantity cannot be negative")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrNotInCart       = errors.New("product is not in the cart")
	ErrNotInWishlist   = errors.New("product is not in the wishlist")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrPaymentPending  = errors.New("payment has not succeeded")
)

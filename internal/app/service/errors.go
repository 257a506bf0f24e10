package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidQuantity       = errors.New("invalid quantity")
	ErrQuantityRequired      = errors.New("quantity is required")
	ErrInvalidProductID      = errors.New("invalid productId: must be a non-empty string")
	ErrQuantityLimitExceeded = fmt.Errorf("cannot add more items, maximum quantity is %d", MaxCartQuantity)
	ErrProductNotFound       = errors.New("product not found")
	ErrCatalogUnavailable    = errors.New("product catalog temporarily unavailable")
	ErrCartItemNotFound      = errors.New("cart item not found")
	ErrCartItemConflict      = errors.New("cart item was modified concurrently, please retry")
	ErrInvalidPagination     = errors.New("invalid pagination parameters")
	ErrInvalidCheckout       = errors.New("invalid checkout request")
)

// CheckoutValidationError names the first checkout field that failed validation.
type CheckoutValidationError struct {
	Field   string
	Message string
}

func (e *CheckoutValidationError) Error() string {
	return e.Message
}

func (e *CheckoutValidationError) Unwrap() error {
	return ErrInvalidCheckout
}

func invalidCheckout(field, format string, args ...interface{}) error {
	return &CheckoutValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

package errors

import (
	"errors"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ikkim/vibecommerce-backend/internal/app/repository"
	"github.com/ikkim/vibecommerce-backend/internal/app/service"
	"gorm.io/gorm"
)

// ErrorInfo is the client-facing form of an error.
type ErrorInfo struct {
	Status  int
	Code    string
	Message string
}

// ParseError translates err into a status, code and message. Messages for
// unrecognised errors never include the error text; context names the
// operation that failed, e.g. "retrieve cart items".
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Status:  http.StatusInternalServerError,
			Code:    InternalServerError,
			Message: getDefaultErrorMessage(context),
		}
	}

	// 1. Checkout validation
	var checkoutErr *service.CheckoutValidationError
	if errors.As(err, &checkoutErr) {
		return ErrorInfo{Status: http.StatusBadRequest, Code: CartCheckoutInvalid, Message: checkoutErr.Message}
	}

	// 2. Caller mistakes
	switch {
	case errors.Is(err, service.ErrInvalidQuantity):
		return ErrorInfo{Status: http.StatusBadRequest, Code: ValidationInvalidRange, Message: capitalize(err.Error())}
	case errors.Is(err, service.ErrQuantityRequired):
		return ErrorInfo{Status: http.StatusBadRequest, Code: ValidationRequired, Message: "Quantity is required"}
	case errors.Is(err, service.ErrInvalidProductID):
		return ErrorInfo{Status: http.StatusBadRequest, Code: ValidationInvalidInput, Message: capitalize(err.Error())}
	case errors.Is(err, service.ErrInvalidPagination):
		return ErrorInfo{Status: http.StatusBadRequest, Code: ValidationInvalidRange, Message: "Invalid pagination parameters"}
	case errors.Is(err, service.ErrQuantityLimitExceeded):
		return ErrorInfo{
			Status:  http.StatusBadRequest,
			Code:    CartQuantityLimit,
			Message: "Cannot add more items. Maximum quantity is 999.",
		}
	case errors.Is(err, repository.ErrDuplicateCartItem):
		return ErrorInfo{
			Status:  http.StatusBadRequest,
			Code:    CartDuplicateLine,
			Message: "Item already exists in cart, use update instead",
		}
	case errors.Is(err, repository.ErrInvalidCartItem):
		return ErrorInfo{Status: http.StatusBadRequest, Code: ValidationInvalidInput, Message: "Invalid cart item"}
	}

	// 3. Missing resources
	switch {
	case errors.Is(err, service.ErrProductNotFound), errors.Is(err, repository.ErrProductNotFound):
		return ErrorInfo{Status: http.StatusNotFound, Code: CatalogProductNotFound, Message: "Product not found"}
	case errors.Is(err, service.ErrCartItemNotFound), errors.Is(err, repository.ErrCartItemNotFound):
		return ErrorInfo{Status: http.StatusNotFound, Code: CartItemNotFound, Message: "Cart item not found"}
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrorInfo{Status: http.StatusNotFound, Code: ResourceNotFound, Message: "Requested resource not found"}
	}

	// 4. Retryable
	switch {
	case errors.Is(err, service.ErrCartItemConflict):
		return ErrorInfo{
			Status:  http.StatusConflict,
			Code:    ResourceConflict,
			Message: "Cart was updated by another request. Please try again.",
		}
	case errors.Is(err, service.ErrCatalogUnavailable):
		return ErrorInfo{
			Status:  http.StatusServiceUnavailable,
			Code:    CatalogUnavailable,
			Message: "Service temporarily unavailable. Please try again.",
		}
	}

	// 5. Database constraint errors that slipped past validation
	errLower := strings.ToLower(err.Error())
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(errLower, "duplicate key") ||
		strings.Contains(errLower, "unique constraint") {
		return ErrorInfo{Status: http.StatusConflict, Code: ResourceAlreadyExists, Message: "Resource already exists"}
	}
	if strings.Contains(errLower, "check constraint") {
		return ErrorInfo{Status: http.StatusBadRequest, Code: ValidationInvalidInput, Message: "Invalid input"}
	}

	// 6. Everything else
	return ErrorInfo{
		Status:  http.StatusInternalServerError,
		Code:    InternalServerError,
		Message: getDefaultErrorMessage(context),
	}
}

func getDefaultErrorMessage(context string) string {
	context = strings.TrimSpace(context)
	if context == "" {
		return "Something went wrong. Please try again."
	}
	return "Failed to " + context + ". Please try again."
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// ParseAndRespond writes the parsed form of err as the response.
func ParseAndRespond(c interface{ JSON(int, interface{}) }, err error, context string) ErrorInfo {
	errorInfo := ParseError(err, context)
	c.JSON(errorInfo.Status, ErrorResponse{
		Error: errorInfo.Message,
		Code:  errorInfo.Code,
	})
	return errorInfo
}

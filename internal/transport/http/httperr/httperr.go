package httperr

import (
	"errors"
	"net/http"

	"github.com/ecomlabs/checkout/internal/service/models/order"
)

// Status maps service layer errors onto HTTP status codes. Unrecognized
// errors are reported as internal.
func Status(err error) int {
	var (
		validationErr   *order.ValidationError
		notFoundErr     *order.ProductNotFoundError
		insufficientErr *order.InsufficientStockError
		transitionErr   *order.InvalidTransitionError
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.Is(err, order.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.As(err, &insufficientErr):
		return http.StatusConflict
	case errors.As(err, &transitionErr):
		return http.StatusConflict
	case errors.Is(err, order.ErrTransactionFailed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

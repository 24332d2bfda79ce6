package owners

import (
	"errors"
	"net/http"
)

// Domain errors for product owner operations.
var (
	ErrNotFound    = errors.New("product owner not found")
	ErrDuplicate   = errors.New("product owner email already exists")
	ErrHasProducts = errors.New("product owner has referencing products")
	ErrValidation  = errors.New("invalid product owner payload")
)

// MapHTTPStatus maps domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate), errors.Is(err, ErrHasProducts):
		return http.StatusConflict
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

package products

import (
	"errors"
	"net/http"
)

// Domain errors for product operations.
var (
	ErrNotFound      = errors.New("product not found")
	ErrDuplicate     = errors.New("product sku already exists")
	ErrOwnerNotFound = errors.New("product owner not found")
	ErrValidation    = errors.New("invalid product payload")
)

// Image validation errors. All reject the mutation before any write.
var (
	ErrImageInvalid       = errors.New("image is not valid base64")
	ErrImageEmpty         = errors.New("image data is empty")
	ErrImageTooLarge      = errors.New("image exceeds the maximum allowed size")
	ErrImageUnsupported   = errors.New("image format is not supported")
	ErrImageMimeMismatch  = errors.New("declared image mime type does not match content")
	ErrImagePairViolation = errors.New("image and imageMimeType must be set or cleared together")
)

// MapHTTPStatus maps domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrOwnerNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrImageInvalid),
		errors.Is(err, ErrImageEmpty),
		errors.Is(err, ErrImageTooLarge),
		errors.Is(err, ErrImageUnsupported),
		errors.Is(err, ErrImageMimeMismatch),
		errors.Is(err, ErrImagePairViolation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

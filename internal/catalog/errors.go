package catalog

import (
	"errors"
	"net/http"
)

// Domain errors for catalog operations.
var (
	ErrDataUnavailable = errors.New("catalog data unavailable")
	ErrNotFound        = errors.New("prompt not found")
	ErrInvalidSort     = errors.New("sort must be default, asc, or desc")
)

// MapHTTPStatus maps catalog errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrDataUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidSort):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

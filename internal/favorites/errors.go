package favorites

import (
	"errors"
	"net/http"

	"github.com/Tonn-hash/galeria-de-prompts/internal/catalog"
	"github.com/Tonn-hash/galeria-de-prompts/internal/session"
)

// Domain errors for favorite operations.
var (
	ErrStore     = errors.New("favorites store unavailable")
	ErrPending   = errors.New("favorite toggle already in flight")
	ErrInvalidID = errors.New("prompt id must be a positive integer")
)

// MapHTTPStatus maps favorite domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, session.ErrAuthenticationRequired):
		return http.StatusUnauthorized
	case errors.Is(err, ErrInvalidID):
		return http.StatusBadRequest
	case errors.Is(err, ErrPending):
		return http.StatusConflict
	case errors.Is(err, ErrStore):
		return http.StatusServiceUnavailable
	default:
		return catalog.MapHTTPStatus(err)
	}
}

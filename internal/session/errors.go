package session

import (
	"errors"
	"net/http"
)

// Domain errors for session operations.
var (
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrInvalidToken           = errors.New("invalid token")
)

// MapHTTPStatus maps session errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrAuthenticationRequired) || errors.Is(err, ErrInvalidToken) {
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

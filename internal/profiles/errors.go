package profiles

import (
	"errors"
	"net/http"

	"github.com/Tonn-hash/galeria-de-prompts/internal/session"
)

// Domain errors for profile operations.
var (
	ErrNotFound        = errors.New("profile not found")
	ErrDuplicate       = errors.New("activation code already exists")
	ErrUsernameTaken   = errors.New("username is already taken")
	ErrInvalidUsername = errors.New("username must be at most 64 characters")
	ErrInvalidGender   = errors.New("gender must be masculino, feminino, outro, or nao_informar")
	ErrInvalidDate     = errors.New("date_of_birth must be a past date in YYYY-MM-DD format")
	ErrInvalidCode     = errors.New("invalid activation code")
	ErrCodeRedeemed    = errors.New("activation code already redeemed")
)

// MapHTTPStatus maps profile domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, session.ErrAuthenticationRequired):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate),
		errors.Is(err, ErrUsernameTaken),
		errors.Is(err, ErrCodeRedeemed):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidUsername),
		errors.Is(err, ErrInvalidGender),
		errors.Is(err, ErrInvalidDate),
		errors.Is(err, ErrInvalidCode):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

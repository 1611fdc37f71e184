package gallery

import (
	"errors"
	"net/http"

	"github.com/Tonn-hash/galeria-de-prompts/internal/favorites"
)

// ErrClosed is returned by View operations after Close.
var ErrClosed = errors.New("view closed")

// MapHTTPStatus maps gallery errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrClosed) {
		return http.StatusGone
	}
	return favorites.MapHTTPStatus(err)
}

package photos

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/photo-fixer/internal/profiles"
	"github.com/JaimeStill/photo-fixer/internal/transcode"
)

var (
	ErrMissingFile   = errors.New("photo file required")
	ErrMissingTarget = errors.New("profile or width, height and max_kb required")
	ErrTooLarge      = errors.New("photo exceeds upload limit")
)

// MapHTTPStatus maps photo, profile, and transcode errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrMissingFile), errors.Is(err, ErrMissingTarget):
		return http.StatusBadRequest
	case errors.Is(err, ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, profiles.ErrNotFound):
		return http.StatusNotFound
	}
	return transcode.MapHTTPStatus(err)
}

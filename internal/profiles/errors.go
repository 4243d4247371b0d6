package profiles

import (
	"errors"
	"net/http"
)

// Domain errors for profile operations.
var (
	ErrNotFound       = errors.New("profile not found")
	ErrDuplicate      = errors.New("profile name already exists")
	ErrInvalidProfile = errors.New("invalid profile")
	ErrReadOnly       = errors.New("profile catalog is read-only")
)

// MapHTTPStatus maps domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidProfile):
		return http.StatusBadRequest
	case errors.Is(err, ErrReadOnly):
		return http.StatusMethodNotAllowed
	}
	return http.StatusInternalServerError
}

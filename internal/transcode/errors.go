package transcode

import (
	"errors"
	"net/http"
)

var (
	ErrDecode            = errors.New("source is not a decodable image")
	ErrInvalidDimensions = errors.New("target width and height must be positive")
	ErrInvalidTarget     = errors.New("invalid target")
	ErrEncode            = errors.New("jpeg encode failed")
	ErrSourceTooLarge    = errors.New("source image exceeds the pixel limit")
)

// MapHTTPStatus maps transcode errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrDecode):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrSourceTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrInvalidDimensions), errors.Is(err, ErrInvalidTarget):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

package announcements

import (
	"errors"
	"net/http"

	"github.com/mwhitfield/placard/internal/signatories"
)

// Domain errors for announcement operations.
var (
	ErrNotFound       = errors.New("announcement not found")
	ErrInvalidRequest = errors.New("invalid announcement request")
	ErrFileTooLarge   = errors.New("image exceeds maximum upload size")
)

// MapHTTPStatus maps announcement domain errors to HTTP status codes. A
// missing signatory reported during resolution surfaces as a 404 naming
// the unresolved identity.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) || errors.Is(err, signatories.ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalidRequest) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusInternalServerError
}

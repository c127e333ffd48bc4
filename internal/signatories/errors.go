package signatories

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// Domain errors for signatory operations.
var (
	ErrNotFound       = errors.New("signatory not found")
	ErrInvalidRequest = errors.New("invalid signatory request")
)

// NotFoundError returns an ErrNotFound naming the missing identity.
func NotFoundError(id uuid.UUID) error {
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

// MapHTTPStatus maps signatory domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalidRequest) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

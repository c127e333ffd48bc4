package users

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// System defines the public contract for user accounts and authentication.
type System interface {
	Handler() *Handler

	Register(ctx context.Context, cmd RegisterCommand) (*User, error)
	Login(ctx context.Context, cmd LoginCommand) (*Session, error)
	Get(ctx context.Context, id uuid.UUID) (*User, error)

	// Guard wraps a handler with bearer-token authentication, loading the
	// account into the request context on success.
	Guard(next http.HandlerFunc) http.HandlerFunc
}

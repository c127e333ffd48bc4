package users

import (
	"context"
	"net/http"
	"strings"

	"github.com/mwhitfield/placard/pkg/handlers"
)

type contextKey struct{}

var userKey contextKey

// FromContext returns the authenticated account loaded by the guard, if any.
func FromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(userKey).(*User)
	return user, ok
}

// Guard authenticates the request's bearer token, loads the account, and
// injects it into the request context before invoking next.
func (r *repo) Guard(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		token, ok := bearerToken(req.Header.Get("Authorization"))
		if !ok {
			handlers.RespondError(w, r.logger, http.StatusUnauthorized, ErrUnauthorized)
			return
		}

		id, err := r.tokens.Verify(token)
		if err != nil {
			handlers.RespondError(w, r.logger, http.StatusUnauthorized, ErrUnauthorized)
			return
		}

		user, err := r.Get(req.Context(), id)
		if err != nil {
			// A valid token for a deleted account is still unauthorized.
			handlers.RespondError(w, r.logger, http.StatusUnauthorized, ErrUnauthorized)
			return
		}

		ctx := context.WithValue(req.Context(), userKey, user)
		next(w, req.WithContext(ctx))
	}
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(prefix):]), true
}

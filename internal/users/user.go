// Package users implements registration, login, and the bearer-token guard
// applied to mutating endpoints. Passwords are stored as bcrypt hashes and
// never serialized.
package users

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account. Password holds the bcrypt hash.
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RegisterCommand carries the data needed to create a new account.
type RegisterCommand struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginCommand carries a credential pair for token issuance.
type LoginCommand struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Session is the login response payload: the issued token and its owner.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

package users

import (
	"github.com/google/uuid"

	"github.com/mwhitfield/placard/pkg/query"
	"github.com/mwhitfield/placard/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "users", "u").
	Project("id", "ID").
	Project("username", "Username").
	Project("email", "Email").
	Project("password", "Password").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

func schema() repository.Schema[User] {
	return repository.Schema[User]{
		Projection: projection,
		Columns:    []string{"username", "email", "password"},
		Returning: []string{
			"id", "username", "email", "password",
			"created_at", "updated_at",
		},
		Values: func(u User) []any {
			return []any{u.Username, u.Email, u.Password}
		},
		ID:          func(u User) uuid.UUID { return u.ID },
		Scan:        scanUser,
		DefaultSort: []query.SortField{{Field: "Username"}},
	}
}

func scanUser(s repository.Scanner) (User, error) {
	var u User
	err := s.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.Password,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

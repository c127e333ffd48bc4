package users

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mwhitfield/placard/pkg/repository"
)

type repo struct {
	store  *repository.Store[User]
	tokens *Tokens
	logger *slog.Logger
}

// New creates a user repository implementing the System interface.
func New(db *sql.DB, tokens *Tokens, logger *slog.Logger) System {
	return &repo{
		store:  repository.NewStore(db, schema()),
		tokens: tokens,
		logger: logger.With("system", "users"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Register(ctx context.Context, cmd RegisterCommand) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	entity := User{
		Username: cmd.Username,
		Email:    cmd.Email,
		Password: string(hash),
	}

	created, err := r.store.Create(ctx, entity)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("user registered", "id", created.ID, "username", created.Username)
	return &created, nil
}

func (r *repo) Login(ctx context.Context, cmd LoginCommand) (*Session, error) {
	q, args := r.store.Query().WhereEquals("Username", cmd.Username).Build()

	user, err := repository.QueryOne(ctx, r.store.DB(), q, args, scanUser)
	if err != nil {
		// A missing account and a wrong password are indistinguishable to
		// the caller.
		if repository.MapError(err, ErrNotFound, ErrDuplicate) == ErrNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load user %q: %w", cmd.Username, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(cmd.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := r.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token for %s: %w", user.ID, err)
	}

	r.logger.Info("user logged in", "id", user.ID, "username", user.Username)
	return &Session{Token: token, User: user}, nil
}

func (r *repo) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	user, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load user %s: %w", id, err)
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

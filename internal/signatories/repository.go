package signatories

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mwhitfield/placard/pkg/repository"
)

type repo struct {
	store  *repository.Store[Signatory]
	logger *slog.Logger
}

// New creates a signatory repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		store:  repository.NewStore(db, Schema()),
		logger: logger.With("system", "signatories"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Signatory, error) {
	entity := Signatory{
		Name:    cmd.Name,
		Alias:   cmd.Alias,
		Role:    cmd.Role,
		Contact: cmd.Contact,
	}

	created, err := r.store.Create(ctx, entity)
	if err != nil {
		return nil, fmt.Errorf("create signatory %q: %w", cmd.Name, err)
	}

	r.logger.Info("signatory created", "id", created.ID, "name", created.Name)
	return &created, nil
}

func (r *repo) GetAll(ctx context.Context) ([]Signatory, error) {
	sigs, err := r.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("query signatories: %w", err)
	}
	return sigs, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Signatory, error) {
	current, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load signatory %s: %w", id, err)
	}
	if current == nil {
		return nil, NotFoundError(id)
	}

	cmd.ApplyTo(current)

	updated, err := r.store.Update(ctx, *current)
	if err != nil {
		return nil, fmt.Errorf("update signatory %s: %w", id, err)
	}
	if updated == nil {
		return nil, NotFoundError(id)
	}

	r.logger.Info("signatory updated", "id", updated.ID, "name", updated.Name)
	return updated, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	current, err := r.store.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("load signatory %s: %w", id, err)
	}
	if current == nil {
		return NotFoundError(id)
	}

	removed, err := r.store.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete signatory %s: %w", id, err)
	}
	if !removed {
		return NotFoundError(id)
	}

	r.logger.Info("signatory deleted", "id", id)
	return nil
}

func (r *repo) Resolve(ctx context.Context, ids []uuid.UUID) ([]Signatory, error) {
	if len(ids) == 0 {
		return []Signatory{}, nil
	}

	values := make([]any, len(ids))
	for i, id := range ids {
		values[i] = id
	}

	q, args := r.store.Query().WhereIn("ID", values).Build()
	found, err := repository.QueryMany(ctx, r.store.DB(), q, args, Scan)
	if err != nil {
		return nil, fmt.Errorf("resolve signatories: %w", err)
	}

	byID := make(map[uuid.UUID]Signatory, len(found))
	for _, sig := range found {
		byID[sig.ID] = sig
	}

	resolved := make([]Signatory, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		sig, ok := byID[id]
		if !ok {
			return nil, NotFoundError(id)
		}
		resolved = append(resolved, sig)
	}

	return resolved, nil
}

package signatories

import (
	"context"

	"github.com/google/uuid"
)

// System defines the public contract for signatory domain operations.
type System interface {
	Handler() *Handler

	Create(ctx context.Context, cmd CreateCommand) (*Signatory, error)
	GetAll(ctx context.Context) ([]Signatory, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Signatory, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Resolve looks up every ID and fails on the first one that does not
	// exist, naming it. Duplicate IDs are collapsed. Used by the announcement
	// workflow before anything is persisted.
	Resolve(ctx context.Context, ids []uuid.UUID) ([]Signatory, error)
}

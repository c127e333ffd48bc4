package announcements

import (
	"context"

	"github.com/google/uuid"

	"github.com/mwhitfield/placard/pkg/pagination"
)

// System defines the public contract for announcement domain operations.
type System interface {
	Handler(maxUploadSize int64, guard Guard) *Handler

	Create(ctx context.Context, cmd CreateCommand) (*Announcement, error)
	List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[Announcement], error)
	Get(ctx context.Context, id uuid.UUID) (*Announcement, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Announcement, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

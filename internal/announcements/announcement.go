// Package announcements implements the announcement domain: published
// notices with an optional stored image and a set of signatories. Image
// bytes live in object storage; the row only carries the public URL.
// Database writes and storage calls are not transactional with each other,
// so a failure between steps leaves observable intermediate states.
package announcements

import (
	"time"

	"github.com/google/uuid"

	"github.com/mwhitfield/placard/internal/signatories"
	"github.com/mwhitfield/placard/pkg/patch"
)

// Announcement represents a published notice. Signatories is populated from
// the link table and is not a column of the announcement row.
type Announcement struct {
	ID          uuid.UUID               `json:"id"`
	Title       string                  `json:"title"`
	ImageURL    *string                 `json:"image_url"`
	Category    string                  `json:"category"`
	Body        string                  `json:"body"`
	Session     string                  `json:"session"`
	PublishedAt time.Time               `json:"published_at"`
	Signatories []signatories.Signatory `json:"signatories"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

// ImagePayload carries an uploaded image's bytes and metadata.
type ImagePayload struct {
	Data        []byte
	Filename    string
	ContentType string
}

// CreateCommand carries the data needed to create a new announcement.
// Every signatory ID must resolve before anything is persisted.
type CreateCommand struct {
	Title        string
	Category     string
	Body         string
	Session      string
	PublishedAt  time.Time
	SignatoryIDs []uuid.UUID
	Image        ImagePayload
}

// UpdateCommand carries a partial update. A nil SignatoryIDs leaves the
// association set untouched; a non-nil empty slice clears it. A nil Image
// keeps the stored object.
type UpdateCommand struct {
	Title        patch.Field[string]
	Category     patch.Field[string]
	Body         patch.Field[string]
	Session      patch.Field[string]
	PublishedAt  patch.Field[time.Time]
	SignatoryIDs *[]uuid.UUID
	Image        *ImagePayload
}

// ApplyTo merges the supplied scalar fields onto a loaded announcement.
// Signatories and the image are handled by the workflow, not here.
func (cmd UpdateCommand) ApplyTo(a *Announcement) {
	cmd.Title.Apply(&a.Title)
	cmd.Category.Apply(&a.Category)
	cmd.Body.Apply(&a.Body)
	cmd.Session.Apply(&a.Session)
	cmd.PublishedAt.Apply(&a.PublishedAt)
}

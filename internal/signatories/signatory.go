// Package signatories implements the signatory domain: the people who sign
// announcements. Signatories are independently owned and may be referenced by
// any number of announcements through a link table.
package signatories

import (
	"time"

	"github.com/google/uuid"

	"github.com/mwhitfield/placard/pkg/patch"
)

// Signatory represents a person who can sign announcements.
type Signatory struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Alias     *string   `json:"alias"`
	Role      string    `json:"role"`
	Contact   *string   `json:"contact"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCommand carries the data needed to create a new signatory.
type CreateCommand struct {
	Name    string  `json:"name"`
	Alias   *string `json:"alias"`
	Role    string  `json:"role"`
	Contact *string `json:"contact"`
}

// UpdateCommand carries a partial update. Fields absent from the request body
// leave the stored value unchanged; Alias and Contact may be cleared with an
// explicit null.
type UpdateCommand struct {
	Name    patch.Field[string] `json:"name"`
	Alias   patch.Field[string] `json:"alias"`
	Role    patch.Field[string] `json:"role"`
	Contact patch.Field[string] `json:"contact"`
}

// ApplyTo merges the supplied fields onto a loaded signatory.
func (cmd UpdateCommand) ApplyTo(s *Signatory) {
	cmd.Name.Apply(&s.Name)
	cmd.Alias.ApplyPtr(&s.Alias)
	cmd.Role.Apply(&s.Role)
	cmd.Contact.ApplyPtr(&s.Contact)
}

package signatories

import (
	"github.com/google/uuid"

	"github.com/mwhitfield/placard/pkg/query"
	"github.com/mwhitfield/placard/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "signatories", "s").
	Project("id", "ID").
	Project("name", "Name").
	Project("alias", "Alias").
	Project("role", "Role").
	Project("contact", "Contact").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

// Schema returns the repository schema for signatories. Exported so the
// announcement domain can scan signatory rows from its link-table joins.
func Schema() repository.Schema[Signatory] {
	return repository.Schema[Signatory]{
		Projection: projection,
		Columns:    []string{"name", "alias", "role", "contact"},
		Returning: []string{
			"id", "name", "alias", "role",
			"contact", "created_at", "updated_at",
		},
		Values: func(s Signatory) []any {
			return []any{s.Name, s.Alias, s.Role, s.Contact}
		},
		ID:          func(s Signatory) uuid.UUID { return s.ID },
		Scan:        Scan,
		DefaultSort: []query.SortField{{Field: "Name"}},
	}
}

// Scan reads a signatory from a row in Returning column order.
func Scan(s repository.Scanner) (Signatory, error) {
	var sig Signatory
	err := s.Scan(
		&sig.ID,
		&sig.Name,
		&sig.Alias,
		&sig.Role,
		&sig.Contact,
		&sig.CreatedAt,
		&sig.UpdatedAt,
	)
	return sig, err
}

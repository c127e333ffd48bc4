package signatories_test

import (
	"encoding/json"
	"testing"

	"github.com/mwhitfield/placard/internal/signatories"
)

func strptr(s string) *string { return &s }

func TestUpdateCommandApplyTo(t *testing.T) {
	base := func() signatories.Signatory {
		return signatories.Signatory{
			Name:    "Dana Whitfield",
			Alias:   strptr("DW"),
			Role:    "Director",
			Contact: strptr("dana@example.com"),
		}
	}

	tests := []struct {
		name string
		body string
		want signatories.Signatory
	}{
		{
			name: "empty body preserves everything",
			body: `{}`,
			want: base(),
		},
		{
			name: "supplied fields overwrite",
			body: `{"name": "Dana W. Whitfield", "role": "Chair"}`,
			want: signatories.Signatory{
				Name:    "Dana W. Whitfield",
				Alias:   strptr("DW"),
				Role:    "Chair",
				Contact: strptr("dana@example.com"),
			},
		},
		{
			name: "null clears optional fields",
			body: `{"alias": null, "contact": null}`,
			want: signatories.Signatory{
				Name: "Dana Whitfield",
				Role: "Director",
			},
		},
		{
			name: "null on required field is ignored",
			body: `{"name": null}`,
			want: base(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cmd signatories.UpdateCommand
			if err := json.Unmarshal([]byte(tt.body), &cmd); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}

			got := base()
			cmd.ApplyTo(&got)

			if got.Name != tt.want.Name || got.Role != tt.want.Role {
				t.Errorf("got name=%q role=%q, want name=%q role=%q",
					got.Name, got.Role, tt.want.Name, tt.want.Role)
			}
			if !ptrEqual(got.Alias, tt.want.Alias) {
				t.Errorf("alias = %v, want %v", deref(got.Alias), deref(tt.want.Alias))
			}
			if !ptrEqual(got.Contact, tt.want.Contact) {
				t.Errorf("contact = %v, want %v", deref(got.Contact), deref(tt.want.Contact))
			}
		})
	}
}

func ptrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func deref(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return *s
}

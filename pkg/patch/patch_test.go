package patch_test

import (
	"encoding/json"
	"testing"

	"github.com/mwhitfield/placard/pkg/patch"
)

type request struct {
	Name  patch.Field[string] `json:"name"`
	Alias patch.Field[string] `json:"alias"`
}

func TestUnmarshalOmitted(t *testing.T) {
	var req request
	if err := json.Unmarshal([]byte(`{}`), &req); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if req.Name.Set {
		t.Error("omitted field should not be Set")
	}
}

func TestUnmarshalValue(t *testing.T) {
	var req request
	if err := json.Unmarshal([]byte(`{"name":"Jane Doe"}`), &req); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if !req.Name.Set || !req.Name.Valid {
		t.Errorf("field = %+v, want Set and Valid", req.Name)
	}
	if req.Name.Value != "Jane Doe" {
		t.Errorf("Value = %q, want Jane Doe", req.Name.Value)
	}
	if req.Alias.Set {
		t.Error("alias was omitted and should not be Set")
	}
}

func TestUnmarshalNull(t *testing.T) {
	var req request
	if err := json.Unmarshal([]byte(`{"alias":null}`), &req); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if !req.Alias.Set {
		t.Error("null field should be Set")
	}
	if req.Alias.Valid {
		t.Error("null field should not be Valid")
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name  string
		field patch.Field[string]
		want  string
	}{
		{"omitted leaves target", patch.Field[string]{}, "original"},
		{"value overwrites", patch.Field[string]{Value: "new", Set: true, Valid: true}, "new"},
		{"null zeroes", patch.Field[string]{Set: true}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := "original"
			tt.field.Apply(&target)
			if target != tt.want {
				t.Errorf("target = %q, want %q", target, tt.want)
			}
		})
	}
}

func TestApplyPtr(t *testing.T) {
	original := "original"

	t.Run("omitted leaves target", func(t *testing.T) {
		target := &original
		patch.Field[string]{}.ApplyPtr(&target)
		if target == nil || *target != "original" {
			t.Errorf("target = %v, want original", target)
		}
	})

	t.Run("value overwrites", func(t *testing.T) {
		target := &original
		patch.Field[string]{Value: "new", Set: true, Valid: true}.ApplyPtr(&target)
		if target == nil || *target != "new" {
			t.Errorf("target = %v, want new", target)
		}
	})

	t.Run("null clears to nil", func(t *testing.T) {
		target := &original
		patch.Field[string]{Set: true}.ApplyPtr(&target)
		if target != nil {
			t.Errorf("target = %v, want nil", target)
		}
	})
}

func TestMarshalRoundTrip(t *testing.T) {
	field := patch.Field[string]{Value: "hello", Set: true, Valid: true}
	data, err := json.Marshal(field)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `"hello"` {
		t.Errorf("marshal = %s, want %q", data, `"hello"`)
	}

	cleared := patch.Field[string]{Set: true}
	data, err = json.Marshal(cleared)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != "null" {
		t.Errorf("marshal = %s, want null", data)
	}
}

// Package patch provides a tri-state JSON field for partial update requests,
// distinguishing a field that was omitted from one explicitly set to null.
package patch

import "encoding/json"

// Field wraps a value in a partial update request. Set reports whether the
// field appeared in the request body at all; Valid reports whether it carried
// a non-null value. An omitted field leaves the stored value untouched; an
// explicit null clears it.
type Field[T any] struct {
	Value T
	Set   bool
	Valid bool
}

// UnmarshalJSON is only invoked for keys present in the body, which is what
// makes the omitted/null distinction observable.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true

	if string(data) == "null" {
		f.Valid = false
		var zero T
		f.Value = zero
		return nil
	}

	if err := json.Unmarshal(data, &f.Value); err != nil {
		return err
	}
	f.Valid = true
	return nil
}

// MarshalJSON round-trips the field as its value, or null when cleared.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// Apply overwrites target with the field's value when it was supplied.
// A null field resets target to the zero value.
func (f Field[T]) Apply(target *T) {
	if !f.Set {
		return
	}
	*target = f.Value
}

// ApplyPtr overwrites a nullable target when the field was supplied: a value
// assigns it, a null clears it to nil, and an omitted field is a no-op.
func (f Field[T]) ApplyPtr(target **T) {
	if !f.Set {
		return
	}
	if !f.Valid {
		*target = nil
		return
	}
	v := f.Value
	*target = &v
}

package api

import (
	"bytes"
	"encoding/json"
)

// Optional holds a value that may be absent from a request body.
// Absent and explicitly provided values are kept apart so that absent fields can be
// omitted from the body forwarded to the store.
type Optional[T any] struct {
	value   T
	present bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, present: true}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.present
}

// Present reports whether a value was provided.
func (o Optional[T]) Present() bool {
	return o.present
}

// UnmarshalJSON marks the Optional present. It is only called when the key appears in the document.
// A JSON null leaves the Optional absent.
func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		var zero T
		o.value, o.present = zero, false
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&o.value); err != nil {
		return err
	}
	o.present = true
	return nil
}

// MarshalJSON encodes an absent Optional as null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.present {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

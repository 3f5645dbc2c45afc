package domain

import (
	"bytes"
	"encoding/json"
)

// Optional is a tri-state field for partial updates: absent, explicit null,
// or a value. A JSON key that is missing leaves the field unset; "null" sets
// it with a nil value; anything else sets it with the decoded value. Update
// operations fold only set fields into the mutation.
type Optional[T any] struct {
	set   bool
	value *T
}

// Some returns a set Optional carrying v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{set: true, value: &v}
}

// Null returns a set Optional carrying an explicit null.
func Null[T any]() Optional[T] {
	return Optional[T]{set: true}
}

// Set reports whether the field was present in the payload.
func (o Optional[T]) Set() bool {
	return o.set
}

// Ptr returns the carried value, or nil for null/absent.
func (o Optional[T]) Ptr() *T {
	return o.value
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.set = true
	if bytes.Equal(b, []byte("null")) {
		o.value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	o.value = &v
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.set || o.value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.value)
}

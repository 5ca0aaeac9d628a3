package domain

import (
	"encoding/json"
	"strings"
)

// Optional tells a field that was left out of a PATCH body apart from one
// that was sent. Set is true whenever the key was present; Value is nil
// when the key carried an explicit null.
type Optional[T any] struct {
	Set   bool
	Value *T
}

func Some[T any](v T) Optional[T] { return Optional[T]{Set: true, Value: &v} }

func Null[T any]() Optional[T] { return Optional[T]{Set: true} }

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// Apply writes the supplied value into dst when the field was sent.
func (o Optional[T]) Apply(dst **T) {
	if !o.Set {
		return
	}
	if o.Value == nil {
		*dst = nil
		return
	}
	v := *o.Value
	*dst = &v
}

// ApplyValue is Apply for non-nullable fields: an explicit null is ignored,
// callers reject it before merging.
func (o Optional[T]) ApplyValue(dst *T) {
	if o.Set && o.Value != nil {
		*dst = *o.Value
	}
}

// Blank reports a sent field that is null or, for strings, only whitespace.
func Blank(o Optional[string]) bool {
	return o.Set && (o.Value == nil || strings.TrimSpace(*o.Value) == "")
}

// Package decode provides JSON payload helpers for request decoding.
package decode

import "encoding/json"

// FromMap decodes a generic map into a typed struct via JSON round-trip.
func FromMap[T any](data map[string]any) (T, error) {
	var result T
	b, err := json.Marshal(data)
	if err != nil {
		return result, err
	}
	err = json.Unmarshal(b, &result)
	return result, err
}

// Field is a JSON value that distinguishes three states: absent from
// the payload, present as explicit null, and present with a value.
// Updates use it for fields where null carries meaning (clearing a
// stored value) rather than "leave unchanged".
type Field[T any] struct {
	Present bool
	Valid   bool
	Value   T
}

// Set creates a present, non-null field holding value.
func Set[T any](value T) Field[T] {
	return Field[T]{Present: true, Valid: true, Value: value}
}

// Null creates a present field holding explicit null.
func Null[T any]() Field[T] {
	return Field[T]{Present: true}
}

// UnmarshalJSON records presence; null leaves Valid false.
func (f *Field[T]) UnmarshalJSON(b []byte) error {
	f.Present = true
	if string(b) == "null" {
		f.Valid = false
		return nil
	}
	if err := json.Unmarshal(b, &f.Value); err != nil {
		return err
	}
	f.Valid = true
	return nil
}

// MarshalJSON emits null for absent or null fields.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

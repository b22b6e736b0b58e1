package models

import (
	"encoding/json"
	"fmt"
)

// Tuple is the service's JSON encoding of a typed value: a two element
// array holding the producer's type name followed by the value itself,
// e.g. ["java.util.ArrayList", [...]].
type Tuple[T any] struct {
	Type  string
	Value T
}

// UnmarshalJSON decodes the positional [type, value] form.
func (t *Tuple[T]) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("expected [type, value] array: %w", err)
	}
	if len(raw) != 2 {
		return fmt.Errorf("expected [type, value] array, got %d elements", len(raw))
	}
	if err := json.Unmarshal(raw[0], &t.Type); err != nil {
		return fmt.Errorf("invalid type name: %w", err)
	}
	if err := json.Unmarshal(raw[1], &t.Value); err != nil {
		return fmt.Errorf("invalid %s value: %w", t.Type, err)
	}
	return nil
}

// MarshalJSON encodes t back into the positional [type, value] form.
func (t Tuple[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{t.Type, t.Value})
}

package store

import (
	"encoding/json"
	"errors"
	"fmt"
)

// SchemaVersion is the version written into every envelope.
const SchemaVersion = 1

// ErrUnsupportedSchema is returned when durable data was written by a newer release.
var ErrUnsupportedSchema = errors.New("unsupported schema version")

// envelope wraps every persisted value so future releases can migrate data.
type envelope struct {
	Schema *int            `json:"schema"`
	Data   json.RawMessage `json:"data"`
}

func encode[T any](v T) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal value: %w", err)
	}
	schema := SchemaVersion
	return json.Marshal(envelope{Schema: &schema, Data: data})
}

// Salvager is implemented by collection types that decode element by element.
// Salvage keeps every element that parses and reports one error per dropped
// element; it fails only when data is not a collection at all.
type Salvager[T any] interface {
	Salvage(data []byte) (T, []error, error)
}

func unmarshal[T any](data []byte) (T, []error, error) {
	var zero T
	if s, ok := any(zero).(Salvager[T]); ok {
		return s.Salvage(data)
	}
	var v T
	err := json.Unmarshal(data, &v)
	return v, nil, err
}

// decode accepts an envelope or a bare legacy value (as written by the web client).
// The returned flag reports whether the value came from a legacy payload.
func decode[T any](raw []byte) (v T, legacy bool, dropped []error, err error) {
	var zero T

	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Schema != nil && env.Data != nil {
		if *env.Schema > SchemaVersion {
			return zero, false, nil, fmt.Errorf("%w: %d", ErrUnsupportedSchema, *env.Schema)
		}
		v, dropped, err := unmarshal[T](env.Data)
		if err != nil {
			return zero, false, nil, fmt.Errorf("invalid data: %w", err)
		}
		return v, false, dropped, nil
	}

	v, dropped, err = unmarshal[T](raw)
	if err != nil {
		return zero, true, nil, fmt.Errorf("invalid json: %w", err)
	}
	return v, true, dropped, nil
}

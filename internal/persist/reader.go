package persist

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/KirkDiggler/talis/internal/errors"
)

// Reader pulls typed fields out of an untyped payload and records a field
// error for anything missing or of the wrong type. Range and enum checks
// belong to the decoded type's Validate method.
type Reader struct {
	vb *errors.ValidationBuilder
}

// NewReader creates a reader with an empty error set
func NewReader() *Reader {
	return &Reader{vb: errors.NewValidationBuilder()}
}

// Builder exposes the underlying validation builder
func (r *Reader) Builder() *errors.ValidationBuilder {
	return r.vb
}

// Err returns the collected field errors, if any
func (r *Reader) Err() error {
	return r.vb.Build()
}

// Path joins a parent path and a key
func Path(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

// Index formats an array element path
func Index(parent string, i int) string {
	return fmt.Sprintf("%s[%d]", parent, i)
}

func (r *Reader) field(obj map[string]any, parent, key string) (any, bool) {
	v, ok := obj[key]
	if !ok || v == nil {
		r.vb.RequiredField(Path(parent, key))
		return nil, false
	}
	return v, true
}

// Object reads a required nested object
func (r *Reader) Object(obj map[string]any, parent, key string) map[string]any {
	v, ok := r.field(obj, parent, key)
	if !ok {
		return nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		r.vb.Field(Path(parent, key), "must be an object")
		return nil
	}
	return m
}

// Array reads a required array
func (r *Reader) Array(obj map[string]any, parent, key string) []any {
	v, ok := r.field(obj, parent, key)
	if !ok {
		return nil
	}
	a, ok := v.([]any)
	if !ok {
		r.vb.Field(Path(parent, key), "must be an array")
		return nil
	}
	return a
}

// Bool reads a required boolean
func (r *Reader) Bool(obj map[string]any, parent, key string) bool {
	v, ok := r.field(obj, parent, key)
	if !ok {
		return false
	}
	b, ok := v.(bool)
	if !ok {
		r.vb.Field(Path(parent, key), "must be a boolean")
	}
	return b
}

// String reads a required string
func (r *Reader) String(obj map[string]any, parent, key string) string {
	v, ok := r.field(obj, parent, key)
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		r.vb.Field(Path(parent, key), "must be a string")
	}
	return s
}

// Int reads a required integral number
func (r *Reader) Int(obj map[string]any, parent, key string) int {
	v, ok := r.field(obj, parent, key)
	if !ok {
		return 0
	}
	n, ok := AsInt(v)
	if !ok {
		r.vb.Field(Path(parent, key), "must be an integer")
	}
	return n
}

// AsInt converts a decoded JSON number to int. Fractional or out of range
// values are rejected.
func AsInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) || n > math.MaxInt32 || n < math.MinInt32 {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	default:
		return 0, false
	}
}

// ToMap converts any JSON-encodable value to its untyped form
func ToMap(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal value")
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal value")
	}
	return out, nil
}

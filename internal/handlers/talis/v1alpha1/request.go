package v1alpha1

import (
	"github.com/KirkDiggler/talis/internal/errors"
	"github.com/KirkDiggler/talis/internal/persist"
)

// request reads typed fields from a decoded Struct and collects field errors
type request struct {
	fields map[string]any
	vb     *errors.ValidationBuilder
}

func newRequest(fields map[string]any) *request {
	return &request{fields: fields, vb: errors.NewValidationBuilder()}
}

func (r *request) err() error {
	return r.vb.Build()
}

func (r *request) requiredString(key string) string {
	s := r.optionalString(key)
	if _, ok := r.fields[key]; !ok || s == "" {
		r.vb.RequiredField(key)
	}
	return s
}

func (r *request) optionalString(key string) string {
	v, ok := r.fields[key]
	if !ok || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		r.vb.Field(key, "must be a string")
	}
	return s
}

func (r *request) optionalInt(key string) int {
	v, ok := r.fields[key]
	if !ok || v == nil {
		return 0
	}
	n, ok := persist.AsInt(v)
	if !ok {
		r.vb.Field(key, "must be an integer")
	}
	return n
}

func (r *request) optionalBool(key string) bool {
	v, ok := r.fields[key]
	if !ok || v == nil {
		return false
	}
	b, ok := v.(bool)
	if !ok {
		r.vb.Field(key, "must be a boolean")
	}
	return b
}

func (r *request) requiredObject(key string) map[string]any {
	v, ok := r.fields[key]
	if !ok || v == nil {
		r.vb.RequiredField(key)
		return nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		r.vb.Field(key, "must be an object")
	}
	return m
}

package storage

import (
	"context"

	"github.com/KirkDiggler/talis/internal/errors"
)

// ReadOnly passes reads through and refuses every write
type ReadOnly struct {
	backend KeyValue
}

// NewReadOnly wraps backend
func NewReadOnly(backend KeyValue) *ReadOnly {
	return &ReadOnly{backend: backend}
}

var _ KeyValue = (*ReadOnly)(nil)

// GetItem reads key
func (r *ReadOnly) GetItem(ctx context.Context, key string) (string, bool, error) {
	return r.backend.GetItem(ctx, key)
}

// SetItem always fails
func (r *ReadOnly) SetItem(_ context.Context, key, _ string) error {
	return errors.FailedPreconditionf("storage is read-only, cannot write %s", key)
}

// RemoveItem always fails
func (r *ReadOnly) RemoveItem(_ context.Context, key string) error {
	return errors.FailedPreconditionf("storage is read-only, cannot remove %s", key)
}

// Keys lists keys starting with prefix
func (r *ReadOnly) Keys(ctx context.Context, prefix string) ([]string, error) {
	return r.backend.Keys(ctx, prefix)
}

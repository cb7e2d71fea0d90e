package storage

import (
	"context"
	"strings"
)

// Namespaced prefixes every key of an underlying store. Keys returns names
// with the namespace stripped.
type Namespaced struct {
	backend   KeyValue
	namespace string
}

// NewNamespaced wraps backend so every key lives under namespace
func NewNamespaced(backend KeyValue, namespace string) *Namespaced {
	return &Namespaced{backend: backend, namespace: namespace}
}

var _ KeyValue = (*Namespaced)(nil)

// Namespace returns the key prefix
func (n *Namespaced) Namespace() string {
	return n.namespace
}

// GetItem reads namespace+key
func (n *Namespaced) GetItem(ctx context.Context, key string) (string, bool, error) {
	return n.backend.GetItem(ctx, n.namespace+key)
}

// SetItem writes namespace+key
func (n *Namespaced) SetItem(ctx context.Context, key, value string) error {
	return n.backend.SetItem(ctx, n.namespace+key, value)
}

// RemoveItem deletes namespace+key
func (n *Namespaced) RemoveItem(ctx context.Context, key string) error {
	return n.backend.RemoveItem(ctx, n.namespace+key)
}

// Keys lists the names under the namespace that start with prefix
func (n *Namespaced) Keys(ctx context.Context, prefix string) ([]string, error) {
	full, err := n.backend.Keys(ctx, n.namespace+prefix)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(full))
	for _, k := range full {
		keys = append(keys, strings.TrimPrefix(k, n.namespace))
	}
	return keys, nil
}

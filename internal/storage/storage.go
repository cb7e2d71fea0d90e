// Package storage provides the key/value persistence backends used by the
// roller stores. The interface mirrors a browser's local storage: string
// keys, string values, synchronous-looking calls.
package storage

import (
	"context"
)

//go:generate mockgen -destination=mock/mock_storage.go -package=storagemock github.com/KirkDiggler/talis/internal/storage KeyValue

// DefaultNamespace prefixes every roller key so bulk discovery never sees
// unrelated keys such as preferences.
const DefaultNamespace = "talis:"

// KeyValue is a string key/value store
type KeyValue interface {
	// GetItem returns the stored value and whether the key exists
	GetItem(ctx context.Context, key string) (string, bool, error)

	// SetItem stores value under key, replacing any previous value
	SetItem(ctx context.Context, key, value string) error

	// RemoveItem deletes key; removing a missing key is not an error
	RemoveItem(ctx context.Context, key string) error

	// Keys lists every key starting with prefix
	Keys(ctx context.Context, prefix string) ([]string, error)
}

package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/talis/internal/errors"
	"github.com/KirkDiggler/talis/internal/storage"
)

func TestNamespaced(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemory()
	ns := storage.NewNamespaced(backend, storage.DefaultNamespace)

	require.NoError(t, ns.SetItem(ctx, "d6-storage", "a"))
	require.NoError(t, ns.SetItem(ctx, "coin-storage", "b"))
	require.NoError(t, backend.SetItem(ctx, "language", "de"))

	raw, ok, err := backend.GetItem(ctx, "talis:d6-storage")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "a", raw)

	keys, err := ns.Keys(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"coin-storage", "d6-storage"}, keys)

	require.NoError(t, ns.RemoveItem(ctx, "d6-storage"))
	_, ok, err = ns.GetItem(ctx, "d6-storage")
	require.NoError(t, err)
	assert.False(t, ok)

	// keys outside the namespace are untouched
	_, ok, err = backend.GetItem(ctx, "language")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestReadOnly(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemory()
	require.NoError(t, backend.SetItem(ctx, "d6-storage", "a"))
	ro := storage.NewReadOnly(backend)

	raw, ok, err := ro.GetItem(ctx, "d6-storage")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "a", raw)

	assert.True(t, errors.IsFailedPrecondition(ro.SetItem(ctx, "d6-storage", "b")))
	assert.True(t, errors.IsFailedPrecondition(ro.RemoveItem(ctx, "d6-storage")))

	raw, _, err = backend.GetItem(ctx, "d6-storage")
	require.NoError(t, err)
	assert.Equal(t, "a", raw)

	keys, err := ro.Keys(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"d6-storage"}, keys)
}

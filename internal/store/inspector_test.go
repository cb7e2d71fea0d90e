package store_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/talis/internal/store"
)

func TestNewInspector(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	store.NewInspector(logger, true).Inspect(context.Background(), "d6", "roll", 1)
	assert.Empty(t, buf.String())

	store.NewInspector(logger, false).Inspect(context.Background(), "d6", "roll", 1)
	assert.Contains(t, buf.String(), "store=d6")
	assert.Contains(t, buf.String(), "action=roll")
}

package store

import (
	"context"
	"log/slog"
)

// Inspector observes every state transition of a store. It is the
// development-time hook for looking at state as it changes.
type Inspector interface {
	Inspect(ctx context.Context, store, action string, state any)
}

// NopInspector ignores everything
type NopInspector struct{}

// Inspect does nothing
func (NopInspector) Inspect(context.Context, string, string, any) {}

// LogInspector writes each transition as a debug log line
type LogInspector struct {
	logger *slog.Logger
}

// NewInspector returns a LogInspector outside production and a NopInspector
// in production.
func NewInspector(logger *slog.Logger, production bool) Inspector {
	if production {
		return NopInspector{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LogInspector{logger: logger}
}

// Inspect logs the action and resulting state
func (i *LogInspector) Inspect(ctx context.Context, store, action string, state any) {
	i.logger.DebugContext(ctx, "State changed",
		"store", store,
		"action", action,
		"state", state,
	)
}

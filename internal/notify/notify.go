// Package notify delivers user-facing notices. Messages arrive already
// translated; this package never builds display text itself.
package notify

import (
	"context"
	"log/slog"
	"sync"
)

//go:generate mockgen -destination=mock/mock_notifier.go -package=notifymock github.com/KirkDiggler/talis/internal/notify Notifier

// Options carries the secondary text of a notice
type Options struct {
	Description string
}

// Notifier shows error notices to the user
type Notifier interface {
	Error(ctx context.Context, message string, opts Options)
}

// Notice is one recorded notification
type Notice struct {
	Level       string `json:"level" yaml:"level"`
	Message     string `json:"message" yaml:"message"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// LevelError marks notices raised through Notifier.Error
const LevelError = "error"

// Log writes notices to a structured logger
type Log struct {
	logger *slog.Logger
}

// NewLog creates a notifier that logs at warn level
func NewLog(logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.Default()
	}
	return &Log{logger: logger}
}

// Error logs the notice
func (l *Log) Error(ctx context.Context, message string, opts Options) {
	l.logger.WarnContext(ctx, message, "description", opts.Description)
}

// Recorder keeps notices until they are drained
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Error records the notice
func (r *Recorder) Error(_ context.Context, message string, opts Options) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, Notice{
		Level:       LevelError,
		Message:     message,
		Description: opts.Description,
	})
}

// Drain returns recorded notices in arrival order and forgets them
func (r *Recorder) Drain() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.notices
	r.notices = nil
	return out
}

// Fanout delivers every notice to each notifier in order
type Fanout []Notifier

// Error forwards the notice
func (f Fanout) Error(ctx context.Context, message string, opts Options) {
	for _, n := range f {
		n.Error(ctx, message, opts)
	}
}

// Package store is a small state container. A Store holds one value of S,
// applies transitions atomically, notifies subscribers and, when
// configured, persists a projection of its state through persist.Adapter.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/KirkDiggler/talis/internal/errors"
	"github.com/KirkDiggler/talis/internal/notify"
	"github.com/KirkDiggler/talis/internal/persist"
	"github.com/KirkDiggler/talis/internal/registry"
	"github.com/KirkDiggler/talis/internal/storage"
)

// Status is the lifecycle state of a store
type Status int

const (
	// StatusHydrating means persisted state has not been applied yet
	StatusHydrating Status = iota
	// StatusReady means the store is usable
	StatusReady
)

// String returns the status name
func (s Status) String() string {
	switch s {
	case StatusHydrating:
		return "hydrating"
	case StatusReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Inspector action names emitted by the store itself
const (
	ActionHydrate = "@@hydrate"
	ActionReset   = "@@reset"
)

// PersistConfig describes what part of S survives restarts and how
type PersistConfig[S, P any] struct {
	// Name is the storage key
	Name       string
	Version    int
	Migrations []persist.Migration
	Schema     persist.Schema[P]
	// Label is the translation key naming the store in notices
	Label string
	// Partialize selects the persisted projection of S
	Partialize func(S) P
	// Merge applies a loaded projection on top of the initial state
	Merge func(S, P) S
}

// Config holds the definition and dependencies of a store
type Config[S, P any] struct {
	// Name identifies the store to the inspector
	Name    string
	Initial S
	Persist *PersistConfig[S, P]

	Storage    storage.KeyValue
	Registry   *registry.Registry
	Notifier   notify.Notifier
	Translator persist.Translator
	Inspector  Inspector
	Logger     *slog.Logger
}

// Validate ensures all required dependencies are provided
func (c *Config[S, P]) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Name == "" {
		vb.RequiredField("Name")
	}
	if p := c.Persist; p != nil {
		if p.Name == "" {
			vb.RequiredField("Persist.Name")
		}
		if p.Partialize == nil {
			vb.RequiredField("Persist.Partialize")
		}
		if p.Merge == nil {
			vb.RequiredField("Persist.Merge")
		}
		if c.Registry == nil {
			vb.RequiredField("Registry")
		}
	}

	return vb.Build()
}

// Store holds state of type S. It is safe for concurrent use; transitions
// are serialized.
type Store[S any] struct {
	name      string
	initial   S
	inspector Inspector
	saver     saver[S]

	mu        sync.Mutex
	state     S
	status    Status
	nextSubID int
	subs      map[int]func(S)
}

// New builds a store and rehydrates it from storage when persistence is
// configured. The store is Ready when New returns; a failed load leaves
// the initial state in place.
func New[S, P any](ctx context.Context, cfg *Config[S, P]) (*Store[S], error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	inspector := cfg.Inspector
	if inspector == nil {
		inspector = NopInspector{}
	}

	s := &Store[S]{
		name:      cfg.Name,
		initial:   cfg.Initial,
		inspector: inspector,
		state:     cfg.Initial,
		status:    StatusHydrating,
		subs:      make(map[int]func(S)),
	}

	if p := cfg.Persist; p != nil {
		adapter, err := persist.NewAdapter(&persist.AdapterConfig[P]{
			Storage:    cfg.Storage,
			Schema:     p.Schema,
			Version:    p.Version,
			Migrations: p.Migrations,
			Notifier:   cfg.Notifier,
			Translator: cfg.Translator,
			Label:      p.Label,
			Logger:     cfg.Logger,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to create storage adapter for %s", p.Name)
		}
		cfg.Registry.Add(p.Name)

		ps := &persistedSaver[S, P]{
			key:        p.Name,
			adapter:    adapter,
			partialize: p.Partialize,
		}
		if value, ok := adapter.Load(ctx, p.Name); ok {
			s.state = p.Merge(s.state, value)
			ps.remember(value)
		} else {
			ps.remember(p.Partialize(s.state))
		}
		s.saver = ps
	}

	s.status = StatusReady
	s.inspector.Inspect(ctx, s.name, ActionHydrate, s.state)

	return s, nil
}

// Name returns the store's inspector name
func (s *Store[S]) Name() string {
	return s.name
}

// Status returns the lifecycle state
func (s *Store[S]) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// State returns the current snapshot
func (s *Store[S]) State() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Update applies fn as one transition. If fn fails the state is unchanged
// and the error is returned.
func (s *Store[S]) Update(ctx context.Context, action string, fn func(S) (S, error)) (S, error) {
	s.mu.Lock()
	next, err := fn(s.state)
	if err != nil {
		current := s.state
		s.mu.Unlock()
		return current, err
	}
	s.state = next
	if s.saver != nil {
		s.saver.save(ctx, next)
	}
	subs := s.subscribers()
	s.mu.Unlock()

	s.inspector.Inspect(ctx, s.name, action, next)
	for _, fn := range subs {
		fn(next)
	}
	return next, nil
}

// Set applies fn as one transition
func (s *Store[S]) Set(ctx context.Context, action string, fn func(S) S) S {
	next, _ := s.Update(ctx, action, func(state S) (S, error) {
		return fn(state), nil
	})
	return next
}

// Reset returns the store to its initial state without writing to storage.
// Used after the persisted keys were removed externally.
func (s *Store[S]) Reset(ctx context.Context) {
	s.mu.Lock()
	s.state = s.initial
	if s.saver != nil {
		s.saver.reset(s.initial)
	}
	subs := s.subscribers()
	state := s.state
	s.mu.Unlock()

	s.inspector.Inspect(ctx, s.name, ActionReset, state)
	for _, fn := range subs {
		fn(state)
	}
}

// Verify re-reads the persisted projection without touching state or
// storage. It reports whether a value is stored and the reason it would be
// rejected on load. Stores without persistence report false.
func (s *Store[S]) Verify(ctx context.Context) (bool, error) {
	if s.saver == nil {
		return false, nil
	}
	return s.saver.check(ctx)
}

// Subscribe registers fn to run after every transition. The returned func
// removes the subscription.
func (s *Store[S]) Subscribe(fn func(S)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// subscribers must be called with mu held
func (s *Store[S]) subscribers() []func(S) {
	out := make([]func(S), 0, len(s.subs))
	for i := 0; i < s.nextSubID; i++ {
		if fn, ok := s.subs[i]; ok {
			out = append(out, fn)
		}
	}
	return out
}

type saver[S any] interface {
	save(ctx context.Context, state S)
	check(ctx context.Context) (bool, error)
	reset(state S)
}

// persistedSaver writes the projection only when it differs from what was
// last written or loaded. An absent key counts as holding the defaults.
type persistedSaver[S, P any] struct {
	key        string
	adapter    *persist.Adapter[P]
	partialize func(S) P
	last       []byte
}

func (p *persistedSaver[S, P]) remember(value P) {
	data, err := json.Marshal(value)
	if err != nil {
		p.last = nil
		return
	}
	p.last = data
}

func (p *persistedSaver[S, P]) save(ctx context.Context, state S) {
	projection := p.partialize(state)
	data, err := json.Marshal(projection)
	if err == nil && p.last != nil && bytes.Equal(data, p.last) {
		return
	}
	p.adapter.Save(ctx, p.key, projection)
	p.last = data
}

func (p *persistedSaver[S, P]) check(ctx context.Context) (bool, error) {
	return p.adapter.Check(ctx, p.key)
}

// reset treats the projection of state as already written so defaults are
// not saved back after the key was removed.
func (p *persistedSaver[S, P]) reset(state S) {
	p.remember(p.partialize(state))
}

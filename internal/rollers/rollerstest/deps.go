package rollerstest

import (
	"fmt"
	"time"

	"github.com/KirkDiggler/talis/internal/notify"
	"github.com/KirkDiggler/talis/internal/pkg/clock"
	"github.com/KirkDiggler/talis/internal/pkg/idgen"
	"github.com/KirkDiggler/talis/internal/registry"
	"github.com/KirkDiggler/talis/internal/rollers"
	"github.com/KirkDiggler/talis/internal/storage"
)

// Epoch is the fixed time of the fixture clock
var Epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// Fixture exposes the concrete dependencies behind a Deps
type Fixture struct {
	Deps     *rollers.Deps
	Storage  *storage.Memory
	Registry *registry.Registry
	Notices  *notify.Recorder
	Roller   *ScriptedRoller
	Clock    *clock.Manual
}

// KeyTranslator renders a key with its arguments appended
type KeyTranslator struct{}

// T returns key, followed by args when present
func (KeyTranslator) T(key string, args ...any) string {
	if len(args) == 0 {
		return key
	}
	return fmt.Sprintf("%s%v", key, args)
}

// NewFixture builds in-memory dependencies with a scripted roller
func NewFixture(faces ...int) *Fixture {
	f := &Fixture{
		Storage:  storage.NewMemory(),
		Registry: registry.New(),
		Notices:  notify.NewRecorder(),
		Roller:   NewScriptedRoller(faces...),
		Clock:    clock.NewManual(Epoch),
	}
	f.Deps = &rollers.Deps{
		Storage:     f.Storage,
		Registry:    f.Registry,
		Notifier:    f.Notices,
		Translator:  KeyTranslator{},
		Roller:      f.Roller,
		Clock:       f.Clock,
		IDGenerator: idgen.NewSequential("id"),
	}
	return f
}

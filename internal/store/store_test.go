package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/talis/internal/errors"
	"github.com/KirkDiggler/talis/internal/notify"
	"github.com/KirkDiggler/talis/internal/persist"
	"github.com/KirkDiggler/talis/internal/registry"
	"github.com/KirkDiggler/talis/internal/storage"
	storagemock "github.com/KirkDiggler/talis/internal/storage/mock"
	"github.com/KirkDiggler/talis/internal/store"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type counterConfig struct {
	Step int `json:"step"`
}

type counterState struct {
	Config  counterConfig
	History []int
}

type counterPersisted struct {
	Config counterConfig `json:"config"`
}

func decodeCounter(raw map[string]any) (counterPersisted, error) {
	r := persist.NewReader()
	var out counterPersisted
	if cfg := r.Object(raw, "", "config"); cfg != nil {
		out.Config.Step = r.Int(cfg, "config", "step")
	}
	if err := r.Err(); err != nil {
		return counterPersisted{}, err
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateIntRange("config.step", out.Config.Step, 1, 10, vb)
	return out, vb.Build()
}

type echoTranslator struct{}

func (echoTranslator) T(key string, _ ...any) string { return key }

type recordingInspector struct {
	actions []string
}

func (r *recordingInspector) Inspect(_ context.Context, _, action string, _ any) {
	r.actions = append(r.actions, action)
}

type StoreTestSuite struct {
	suite.Suite
	ctx       context.Context
	kv        *storage.Memory
	registry  *registry.Registry
	notices   *notify.Recorder
	inspector *recordingInspector
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (s *StoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.kv = storage.NewMemory()
	s.registry = registry.New()
	s.notices = notify.NewRecorder()
	s.inspector = &recordingInspector{}
}

func (s *StoreTestSuite) config(kv storage.KeyValue) *store.Config[counterState, counterPersisted] {
	return &store.Config[counterState, counterPersisted]{
		Name:    "counter",
		Initial: counterState{Config: counterConfig{Step: 1}},
		Persist: &store.PersistConfig[counterState, counterPersisted]{
			Name:    "counter-storage",
			Version: 1,
			Schema:  persist.SchemaFunc[counterPersisted](decodeCounter),
			Partialize: func(st counterState) counterPersisted {
				return counterPersisted{Config: st.Config}
			},
			Merge: func(st counterState, p counterPersisted) counterState {
				st.Config = p.Config
				return st
			},
		},
		Storage:    kv,
		Registry:   s.registry,
		Notifier:   s.notices,
		Translator: echoTranslator{},
		Inspector:  s.inspector,
	}
}

func (s *StoreTestSuite) newStore() *store.Store[counterState] {
	st, err := store.New(s.ctx, s.config(s.kv))
	s.Require().NoError(err)
	return st
}

func (s *StoreTestSuite) TestReadyAfterConstruction() {
	st := s.newStore()
	s.Equal(store.StatusReady, st.Status())
	s.Equal(1, st.State().Config.Step)
	s.Equal([]string{"counter-storage"}, s.registry.All())
	s.Equal([]string{store.ActionHydrate}, s.inspector.actions)
}

func (s *StoreTestSuite) TestRehydratesPersistedConfigOnly() {
	st := s.newStore()
	st.Set(s.ctx, "setStep", func(c counterState) counterState {
		c.Config.Step = 4
		return c
	})
	st.Set(s.ctx, "roll", func(c counterState) counterState {
		c.History = append(c.History, 3)
		return c
	})

	reloaded := s.newStore()
	s.Equal(4, reloaded.State().Config.Step)
	s.Empty(reloaded.State().History)
	s.Empty(s.notices.Drain())
}

func (s *StoreTestSuite) TestCorruptedPayloadFallsBackToDefaults() {
	s.Require().NoError(s.kv.SetItem(s.ctx, "counter-storage", `{"state":{"config":{"step":99}},"version":1}`))

	st := s.newStore()
	s.Equal(store.StatusReady, st.Status())
	s.Equal(1, st.State().Config.Step)

	_, ok, err := s.kv.GetItem(s.ctx, "counter-storage")
	s.NoError(err)
	s.False(ok)
	s.Len(s.notices.Drain(), 1)
}

func (s *StoreTestSuite) TestUpdateErrorLeavesStateUntouched() {
	st := s.newStore()
	failure := errors.InvalidArgument("step must be positive")

	got, err := st.Update(s.ctx, "setStep", func(c counterState) (counterState, error) {
		return counterState{}, failure
	})
	s.ErrorIs(err, failure)
	s.Equal(1, got.Config.Step)
	s.Equal(1, st.State().Config.Step)
}

func (s *StoreTestSuite) TestUnchangedProjectionIsNotRewritten() {
	ctrl := gomock.NewController(s.T())
	kv := storagemock.NewMockKeyValue(ctrl)

	kv.EXPECT().GetItem(s.ctx, "counter-storage").Return("", false, nil)
	kv.EXPECT().SetItem(s.ctx, "counter-storage", `{"state":{"config":{"step":2}},"version":1}`).Return(nil).Times(1)

	st, err := store.New(s.ctx, s.config(kv))
	s.Require().NoError(err)

	for i := 0; i < 3; i++ {
		st.Set(s.ctx, "roll", func(c counterState) counterState {
			c.History = append(c.History, i)
			return c
		})
	}
	s.Len(st.State().History, 3)

	for i := 0; i < 2; i++ {
		st.Set(s.ctx, "setStep", func(c counterState) counterState {
			c.Config.Step = 2
			return c
		})
	}
}

func (s *StoreTestSuite) TestResetDoesNotWrite() {
	st := s.newStore()
	st.Set(s.ctx, "setStep", func(c counterState) counterState {
		c.Config.Step = 5
		return c
	})
	s.Require().NoError(s.kv.RemoveItem(s.ctx, "counter-storage"))

	st.Reset(s.ctx)
	s.Equal(1, st.State().Config.Step)
	_, ok, _ := s.kv.GetItem(s.ctx, "counter-storage")
	s.False(ok)

	st.Set(s.ctx, "roll", func(c counterState) counterState {
		c.History = append(c.History, 4)
		return c
	})
	_, ok, _ = s.kv.GetItem(s.ctx, "counter-storage")
	s.False(ok, "defaults are not written back after a reset")

	// the next change writes again even though it matches an older save
	st.Set(s.ctx, "setStep", func(c counterState) counterState {
		c.Config.Step = 5
		return c
	})
	_, ok, _ = s.kv.GetItem(s.ctx, "counter-storage")
	s.True(ok)
}

func (s *StoreTestSuite) TestVerify() {
	st := s.newStore()

	found, err := st.Verify(s.ctx)
	s.NoError(err)
	s.False(found)

	st.Set(s.ctx, "step", func(c counterState) counterState {
		c.Config.Step = 3
		return c
	})
	found, err = st.Verify(s.ctx)
	s.NoError(err)
	s.True(found)

	s.Require().NoError(s.kv.SetItem(s.ctx, "counter-storage", `{"state":{"config":{"step":99}},"version":1}`))
	found, err = st.Verify(s.ctx)
	s.True(found)
	s.Error(err)
	s.Equal(3, st.State().Config.Step)
	s.Empty(s.notices.Drain())
}

func (s *StoreTestSuite) TestSubscribe() {
	st := s.newStore()

	var seen []int
	unsubscribe := st.Subscribe(func(c counterState) {
		seen = append(seen, c.Config.Step)
	})

	st.Set(s.ctx, "setStep", func(c counterState) counterState {
		c.Config.Step = 2
		return c
	})
	unsubscribe()
	st.Set(s.ctx, "setStep", func(c counterState) counterState {
		c.Config.Step = 3
		return c
	})

	s.Equal([]int{2}, seen)
}

func (s *StoreTestSuite) TestMemoryOnlyStore() {
	st, err := store.New(s.ctx, &store.Config[counterState, counterPersisted]{
		Name:    "scratch",
		Initial: counterState{Config: counterConfig{Step: 2}},
	})
	s.Require().NoError(err)

	st.Set(s.ctx, "setStep", func(c counterState) counterState {
		c.Config.Step = 7
		return c
	})
	s.Equal(7, st.State().Config.Step)
	s.Empty(s.registry.All())
}

func (s *StoreTestSuite) TestConfigValidation() {
	_, err := store.New(s.ctx, &store.Config[counterState, counterPersisted]{
		Persist: &store.PersistConfig[counterState, counterPersisted]{},
	})
	s.True(errors.IsInvalidArgument(err))
}

// Package dice implements the orchestrator that owns every roller store,
// the app preferences and the bulk clearing of roller data.
package dice

//go:generate mockgen -destination=mock/mock_service.go -package=dicemock github.com/KirkDiggler/talis/internal/orchestrators/dice Service

import (
	"context"
	"log/slog"
	"slices"

	"github.com/KirkDiggler/talis/internal/entities"
	"github.com/KirkDiggler/talis/internal/errors"
	"github.com/KirkDiggler/talis/internal/preferences"
	"github.com/KirkDiggler/talis/internal/registry"
	"github.com/KirkDiggler/talis/internal/rollers"
	"github.com/KirkDiggler/talis/internal/rollers/pool"
	"github.com/KirkDiggler/talis/internal/storage"
)

// Service defines the interface for roller operations
type Service interface {
	Roll(ctx context.Context, input *RollInput) (*RollOutput, error)
	GetState(ctx context.Context, input *GetStateInput) (*GetStateOutput, error)
	UpdateConfig(ctx context.Context, input *UpdateConfigInput) (*UpdateConfigOutput, error)
	ClearHistory(ctx context.Context, input *ClearHistoryInput) (*ClearHistoryOutput, error)

	// Quick buttons of the pool rollers
	AddQuickButton(ctx context.Context, input *AddQuickButtonInput) (*AddQuickButtonOutput, error)
	UpdateQuickButton(ctx context.Context, input *UpdateQuickButtonInput) (*UpdateQuickButtonOutput, error)
	RemoveQuickButton(ctx context.Context, input *RemoveQuickButtonInput) (*RemoveQuickButtonOutput, error)

	// Selections and custom coins
	SelectDiceType(ctx context.Context, input *SelectDiceTypeInput) (*SelectDiceTypeOutput, error)
	AddCoinType(ctx context.Context, input *AddCoinTypeInput) (*AddCoinTypeOutput, error)
	RemoveCoinType(ctx context.Context, input *RemoveCoinTypeInput) (*RemoveCoinTypeOutput, error)
	SelectCoinType(ctx context.Context, input *SelectCoinTypeInput) (*SelectCoinTypeOutput, error)

	// ClearAllStorage deletes every persisted roller key and resets the stores
	ClearAllStorage(ctx context.Context, input *ClearAllStorageInput) (*ClearAllStorageOutput, error)
	// CheckStorage validates every persisted roller key without loading it
	CheckStorage(ctx context.Context, input *CheckStorageInput) (*CheckStorageOutput, error)

	GetPreferences(ctx context.Context, input *GetPreferencesInput) (*GetPreferencesOutput, error)
	SetPreferences(ctx context.Context, input *SetPreferencesInput) (*SetPreferencesOutput, error)
}

// LanguageSetter switches the display language
type LanguageSetter interface {
	SetLanguage(lang string) error
}

// Config holds the dependencies for the dice orchestrator
type Config struct {
	Rollers     *Rollers
	Preferences *preferences.Store
	// Storage is the namespaced roller storage scanned by ClearAllStorage
	Storage  storage.KeyValue
	Registry *registry.Registry
	Language LanguageSetter
	Logger   *slog.Logger
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Rollers == nil {
		vb.RequiredField("Rollers")
	} else if err := c.Rollers.Validate(); err != nil {
		return err
	}
	if c.Preferences == nil {
		vb.RequiredField("Preferences")
	}
	if c.Storage == nil {
		vb.RequiredField("Storage")
	}
	if c.Registry == nil {
		vb.RequiredField("Registry")
	}

	return vb.Build()
}

type orchestrator struct {
	rollers     *Rollers
	preferences *preferences.Store
	storage     storage.KeyValue
	registry    *registry.Registry
	language    LanguageSetter
	logger      *slog.Logger
}

// NewOrchestrator creates a new dice orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &orchestrator{
		rollers:     cfg.Rollers,
		preferences: cfg.Preferences,
		storage:     cfg.Storage,
		registry:    cfg.Registry,
		language:    cfg.Language,
		logger:      logger,
	}, nil
}

func (o *orchestrator) controller(name string) (rollers.Controller, error) {
	kind, err := rollers.ParseKind(name)
	if err != nil {
		return nil, err
	}
	return o.rollers.Controller(kind), nil
}

// Roll rolls on one roller
func (o *orchestrator) Roll(ctx context.Context, input *RollInput) (*RollOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	ctrl, err := o.controller(input.Roller)
	if err != nil {
		return nil, err
	}

	var result any
	switch ctrl.Kind() {
	case rollers.KindShadowrun:
		result, err = rollPool(ctx, o.rollers.Shadowrun, input)
	case rollers.KindD6:
		result, err = rollPool(ctx, o.rollers.D6, input)
	case rollers.KindPolyhedral:
		result, err = o.rollPolyhedral(ctx, input)
	case rollers.KindDaggerheart:
		if err = requireSingle(input); err == nil {
			result, err = o.rollers.Daggerheart.Roll(ctx)
		}
	case rollers.KindCoin:
		if err = requireSingle(input); err == nil {
			result, err = o.rollers.Coin.Flip(ctx)
		}
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to roll %s", ctrl.Kind())
	}

	return &RollOutput{
		Roller: string(ctrl.Kind()),
		Result: result,
		State:  ctrl.Snapshot(),
	}, nil
}

func rollPool[R any](ctx context.Context, s *pool.Store[R], input *RollInput) (any, error) {
	if input.DiceType != 0 {
		return nil, errors.InvalidArgument("dice type is only valid for the polyhedral roller")
	}
	switch {
	case input.QuickButtonID != "":
		r, err := s.PressQuickButton(ctx, input.QuickButtonID)
		if err != nil || r == nil {
			return nil, err
		}
		return *r, nil
	case input.Count == 0:
		return s.RollPending(ctx)
	default:
		return s.Roll(ctx, input.Count)
	}
}

func (o *orchestrator) rollPolyhedral(ctx context.Context, input *RollInput) (any, error) {
	if input.QuickButtonID != "" {
		return nil, errors.InvalidArgument("the polyhedral roller has no quick buttons")
	}
	s := o.rollers.Polyhedral
	if input.DiceType == 0 && input.Count == 0 {
		return s.RollSelected(ctx)
	}

	st := s.State()
	sides := input.DiceType
	if sides == 0 {
		sides = st.SelectedDiceType
	}
	count := input.Count
	if count == 0 {
		count = st.Quantities[sides]
	}
	return s.Roll(ctx, sides, count)
}

func requireSingle(input *RollInput) error {
	if input.Count < 0 || input.Count > 1 {
		return errors.InvalidArgumentf("roller %s rolls once, got count %d", input.Roller, input.Count)
	}
	if input.DiceType != 0 || input.QuickButtonID != "" {
		return errors.InvalidArgumentf("roller %s takes no dice type or quick button", input.Roller)
	}
	return nil
}

// GetState returns one or every roller snapshot
func (o *orchestrator) GetState(_ context.Context, input *GetStateInput) (*GetStateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	ctrls := o.rollers.Controllers()
	if input.Roller != "" {
		ctrl, err := o.controller(input.Roller)
		if err != nil {
			return nil, err
		}
		ctrls = []rollers.Controller{ctrl}
	}

	out := &GetStateOutput{States: make([]RollerState, 0, len(ctrls))}
	for _, ctrl := range ctrls {
		out.States = append(out.States, RollerState{
			Roller: string(ctrl.Kind()),
			Status: ctrl.Status().String(),
			State:  ctrl.Snapshot(),
		})
	}
	return out, nil
}

// UpdateConfig applies an untyped config patch to one roller
func (o *orchestrator) UpdateConfig(ctx context.Context, input *UpdateConfigInput) (*UpdateConfigOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if len(input.Patch) == 0 {
		return nil, errors.InvalidArgument("patch is required")
	}
	ctrl, err := o.controller(input.Roller)
	if err != nil {
		return nil, err
	}

	if err := ctrl.PatchConfig(ctx, input.Patch); err != nil {
		return nil, errors.Wrapf(err, "failed to update %s config", ctrl.Kind())
	}

	o.logger.InfoContext(ctx, "Roller config updated",
		"roller", ctrl.Kind(),
		"fields", len(input.Patch),
	)
	return &UpdateConfigOutput{State: ctrl.Snapshot()}, nil
}

// ClearHistory empties one or every roll history
func (o *orchestrator) ClearHistory(ctx context.Context, input *ClearHistoryInput) (*ClearHistoryOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	ctrls := o.rollers.Controllers()
	if input.Roller != "" {
		ctrl, err := o.controller(input.Roller)
		if err != nil {
			return nil, err
		}
		ctrls = []rollers.Controller{ctrl}
	}

	cleared := 0
	for _, ctrl := range ctrls {
		cleared += ctrl.ClearHistory(ctx)
	}
	return &ClearHistoryOutput{RollsCleared: cleared}, nil
}

func (o *orchestrator) quickButtons(name string) (func() []entities.QuickButton, quickButtonEditor, error) {
	kind, err := rollers.ParseKind(name)
	if err != nil {
		return nil, nil, err
	}
	switch kind {
	case rollers.KindShadowrun:
		s := o.rollers.Shadowrun
		return func() []entities.QuickButton { return s.State().Config.QuickButtons }, s, nil
	case rollers.KindD6:
		s := o.rollers.D6
		return func() []entities.QuickButton { return s.State().Config.QuickButtons }, s, nil
	default:
		return nil, nil, errors.InvalidArgumentf("roller %s has no quick buttons", kind)
	}
}

type quickButtonEditor interface {
	AddQuickButton(ctx context.Context, amount int, typ entities.QuickButtonType) (entities.QuickButton, error)
	UpdateQuickButton(ctx context.Context, id string, patch entities.QuickButtonPatch) error
	RemoveQuickButton(ctx context.Context, id string) error
}

// AddQuickButton adds a quick button to a pool roller
func (o *orchestrator) AddQuickButton(ctx context.Context, input *AddQuickButtonInput) (*AddQuickButtonOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	_, editor, err := o.quickButtons(input.Roller)
	if err != nil {
		return nil, err
	}

	b, err := editor.AddQuickButton(ctx, input.Amount, input.Type)
	if err != nil {
		return nil, errors.Wrap(err, "failed to add quick button")
	}
	return &AddQuickButtonOutput{Button: b}, nil
}

// UpdateQuickButton patches a quick button of a pool roller
func (o *orchestrator) UpdateQuickButton(ctx context.Context, input *UpdateQuickButtonInput) (*UpdateQuickButtonOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ID == "" {
		return nil, errors.InvalidArgument("id is required")
	}
	buttons, editor, err := o.quickButtons(input.Roller)
	if err != nil {
		return nil, err
	}

	if err := editor.UpdateQuickButton(ctx, input.ID, input.Patch); err != nil {
		return nil, errors.Wrap(err, "failed to update quick button")
	}
	return &UpdateQuickButtonOutput{Buttons: buttons()}, nil
}

// RemoveQuickButton deletes a quick button of a pool roller
func (o *orchestrator) RemoveQuickButton(ctx context.Context, input *RemoveQuickButtonInput) (*RemoveQuickButtonOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ID == "" {
		return nil, errors.InvalidArgument("id is required")
	}
	buttons, editor, err := o.quickButtons(input.Roller)
	if err != nil {
		return nil, err
	}

	if err := editor.RemoveQuickButton(ctx, input.ID); err != nil {
		return nil, errors.Wrap(err, "failed to remove quick button")
	}
	return &RemoveQuickButtonOutput{Buttons: buttons()}, nil
}

// SelectDiceType selects a polyhedral die and optionally its quantity
func (o *orchestrator) SelectDiceType(ctx context.Context, input *SelectDiceTypeInput) (*SelectDiceTypeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	s := o.rollers.Polyhedral

	if err := s.SelectDiceType(ctx, input.DiceType); err != nil {
		return nil, err
	}
	if input.Quantity != 0 {
		if err := s.SetQuantity(ctx, input.DiceType, input.Quantity); err != nil {
			return nil, err
		}
	}

	st := s.State()
	return &SelectDiceTypeOutput{DiceType: st.SelectedDiceType, Quantity: st.Quantity()}, nil
}

// AddCoinType adds a user-defined coin
func (o *orchestrator) AddCoinType(ctx context.Context, input *AddCoinTypeInput) (*AddCoinTypeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	ct, err := o.rollers.Coin.AddCoinType(ctx, input.Name, input.Heads, input.Tails)
	if err != nil {
		return nil, errors.Wrap(err, "failed to add coin type")
	}
	return &AddCoinTypeOutput{CoinType: ct}, nil
}

// RemoveCoinType deletes a user-defined coin
func (o *orchestrator) RemoveCoinType(ctx context.Context, input *RemoveCoinTypeInput) (*RemoveCoinTypeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ID == "" {
		return nil, errors.InvalidArgument("id is required")
	}

	if err := o.rollers.Coin.RemoveCoinType(ctx, input.ID); err != nil {
		return nil, errors.Wrap(err, "failed to remove coin type")
	}
	return &RemoveCoinTypeOutput{SelectedCoinTypeID: o.rollers.Coin.State().SelectedCoinTypeID}, nil
}

// SelectCoinType selects the coin used by flips
func (o *orchestrator) SelectCoinType(ctx context.Context, input *SelectCoinTypeInput) (*SelectCoinTypeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	s := o.rollers.Coin

	if err := s.SelectCoinType(ctx, input.ID); err != nil {
		return nil, err
	}
	for _, ct := range s.CoinTypes() {
		if ct.ID == input.ID {
			return &SelectCoinTypeOutput{CoinType: ct}, nil
		}
	}
	return nil, errors.NotFoundf("coin type %s not found", input.ID)
}

// ClearAllStorage removes every registered or discovered roller key and
// resets the stores. Preferences are not roller data and stay.
func (o *orchestrator) ClearAllStorage(ctx context.Context, input *ClearAllStorageInput) (*ClearAllStorageOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if !input.Confirm {
		return nil, errors.FailedPrecondition("clearing all roller data requires confirmation")
	}

	discovered, err := o.storage.Keys(ctx, "")
	if err != nil {
		return nil, errors.Wrap(err, "failed to list roller keys")
	}
	keys := append(o.registry.All(), discovered...)
	slices.Sort(keys)
	keys = slices.Compact(keys)

	var firstErr error
	removed := make([]string, 0, len(keys))
	for _, key := range keys {
		if err := o.storage.RemoveItem(ctx, key); err != nil {
			o.logger.ErrorContext(ctx, "Failed to remove roller key",
				"key", key,
				"error", err,
			)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		removed = append(removed, key)
	}

	for _, ctrl := range o.rollers.Controllers() {
		ctrl.Reset(ctx)
	}

	if firstErr != nil {
		return nil, errors.Wrap(firstErr, "failed to clear all roller data")
	}

	o.logger.InfoContext(ctx, "Cleared all roller data",
		"keys_removed", len(removed),
	)
	return &ClearAllStorageOutput{KeysRemoved: removed}, nil
}

// CheckStorage runs every roller's persisted data through decoding,
// migration and validation. With Fix, corrupted keys are removed and their
// stores reset.
func (o *orchestrator) CheckStorage(ctx context.Context, input *CheckStorageInput) (*CheckStorageOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	reports := make([]StorageReport, 0, len(o.rollers.Controllers()))
	for _, ctrl := range o.rollers.Controllers() {
		key := ctrl.Kind().StorageKey()
		report := StorageReport{Roller: string(ctrl.Kind()), Key: key}

		found, err := ctrl.Verify(ctx)
		switch {
		case err != nil && errors.IsUnavailable(err):
			report.Status = StorageUnreadable
			report.Error = err.Error()
		case err != nil:
			report.Status = StorageCorrupted
			report.Error = err.Error()
		case found:
			report.Status = StorageOK
		default:
			report.Status = StorageAbsent
		}

		if report.Status == StorageCorrupted && input.Fix {
			if err := o.storage.RemoveItem(ctx, key); err != nil {
				return nil, errors.Wrapf(err, "failed to remove corrupted key %s", key)
			}
			ctrl.Reset(ctx)
			report.Removed = true
			o.logger.WarnContext(ctx, "Removed corrupted roller data",
				"roller", report.Roller,
				"key", key,
			)
		}
		reports = append(reports, report)
	}

	return &CheckStorageOutput{Reports: reports}, nil
}

// GetPreferences returns the app preferences
func (o *orchestrator) GetPreferences(ctx context.Context, input *GetPreferencesInput) (*GetPreferencesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	return &GetPreferencesOutput{Preferences: o.preferences.Load(ctx)}, nil
}

// SetPreferences changes the app preferences and applies the language
func (o *orchestrator) SetPreferences(ctx context.Context, input *SetPreferencesInput) (*SetPreferencesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	p, err := o.preferences.Set(ctx, input.Patch)
	if err != nil {
		return nil, errors.Wrap(err, "failed to set preferences")
	}
	if o.language != nil && input.Patch.Language != nil {
		if err := o.language.SetLanguage(p.Language); err != nil {
			return nil, errors.Wrap(err, "failed to switch language")
		}
	}
	return &SetPreferencesOutput{Preferences: p}, nil
}

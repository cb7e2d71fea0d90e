package dice

import (
	"github.com/KirkDiggler/talis/internal/entities"
	"github.com/KirkDiggler/talis/internal/preferences"
	"github.com/KirkDiggler/talis/internal/rollers/coin"
)

// RollInput defines the request for a roll. Zero fields fall back to the
// roller's pending selection.
type RollInput struct {
	Roller string
	// Count is the number of dice for pool and polyhedral rollers
	Count int
	// DiceType is the die size for the polyhedral roller
	DiceType int
	// QuickButtonID presses a quick button of a pool roller instead
	QuickButtonID string
}

// RollOutput defines the response for a roll
type RollOutput struct {
	Roller string
	// Result is nil when a set-amount quick button was pressed
	Result any
	State  any
}

// GetStateInput defines the request for roller state. An empty Roller
// returns every roller.
type GetStateInput struct {
	Roller string
}

// RollerState is the snapshot of one roller
type RollerState struct {
	Roller string `json:"roller" yaml:"roller"`
	Status string `json:"status" yaml:"status"`
	State  any    `json:"state" yaml:"state"`
}

// GetStateOutput defines the response for roller state
type GetStateOutput struct {
	States []RollerState
}

// UpdateConfigInput defines the request for a config change
type UpdateConfigInput struct {
	Roller string
	Patch  map[string]any
}

// UpdateConfigOutput defines the response for a config change
type UpdateConfigOutput struct {
	State any
}

// AddQuickButtonInput defines the request for a new quick button
type AddQuickButtonInput struct {
	Roller string
	Amount int
	Type   entities.QuickButtonType
}

// AddQuickButtonOutput defines the response for a new quick button
type AddQuickButtonOutput struct {
	Button entities.QuickButton
}

// UpdateQuickButtonInput defines the request for a quick button change
type UpdateQuickButtonInput struct {
	Roller string
	ID     string
	Patch  entities.QuickButtonPatch
}

// UpdateQuickButtonOutput defines the response for a quick button change
type UpdateQuickButtonOutput struct {
	Buttons []entities.QuickButton
}

// RemoveQuickButtonInput defines the request for removing a quick button
type RemoveQuickButtonInput struct {
	Roller string
	ID     string
}

// RemoveQuickButtonOutput defines the response for removing a quick button
type RemoveQuickButtonOutput struct {
	Buttons []entities.QuickButton
}

// AddCoinTypeInput defines the request for a new coin type
type AddCoinTypeInput struct {
	Name  string
	Heads string
	Tails string
}

// AddCoinTypeOutput defines the response for a new coin type
type AddCoinTypeOutput struct {
	CoinType coin.CoinType
}

// RemoveCoinTypeInput defines the request for removing a coin type
type RemoveCoinTypeInput struct {
	ID string
}

// RemoveCoinTypeOutput defines the response for removing a coin type
type RemoveCoinTypeOutput struct {
	SelectedCoinTypeID string `json:"selectedCoinTypeId" yaml:"selectedCoinTypeId"`
}

// SelectCoinTypeInput defines the request for selecting a coin type
type SelectCoinTypeInput struct {
	ID string
}

// SelectCoinTypeOutput defines the response for selecting a coin type
type SelectCoinTypeOutput struct {
	CoinType coin.CoinType
}

// SelectDiceTypeInput defines the request for selecting a polyhedral die.
// A zero Quantity keeps the remembered one.
type SelectDiceTypeInput struct {
	DiceType int
	Quantity int
}

// SelectDiceTypeOutput defines the response for selecting a polyhedral die
type SelectDiceTypeOutput struct {
	DiceType int `json:"diceType" yaml:"diceType"`
	Quantity int `json:"quantity" yaml:"quantity"`
}

// ClearHistoryInput defines the request for clearing history. An empty
// Roller clears every roller.
type ClearHistoryInput struct {
	Roller string
}

// ClearHistoryOutput defines the response for clearing history
type ClearHistoryOutput struct {
	RollsCleared int `json:"rollsCleared" yaml:"rollsCleared"`
}

// ClearAllStorageInput defines the request for wiping roller data
type ClearAllStorageInput struct {
	// Confirm must be true
	Confirm bool
}

// ClearAllStorageOutput defines the response for wiping roller data
type ClearAllStorageOutput struct {
	KeysRemoved []string `json:"keysRemoved" yaml:"keysRemoved"`
}

// CheckStorageInput defines the request for validating persisted data
type CheckStorageInput struct {
	// Fix removes corrupted keys
	Fix bool
}

// StorageStatus classifies one persisted key
type StorageStatus string

// Storage statuses
const (
	StorageOK         StorageStatus = "ok"
	StorageAbsent     StorageStatus = "absent"
	StorageCorrupted  StorageStatus = "corrupted"
	StorageUnreadable StorageStatus = "unreadable"
)

// StorageReport is the check result for one roller key
type StorageReport struct {
	Roller  string        `json:"roller" yaml:"roller"`
	Key     string        `json:"key" yaml:"key"`
	Status  StorageStatus `json:"status" yaml:"status"`
	Error   string        `json:"error,omitempty" yaml:"error,omitempty"`
	Removed bool          `json:"removed,omitempty" yaml:"removed,omitempty"`
}

// CheckStorageOutput defines the response for validating persisted data
type CheckStorageOutput struct {
	Reports []StorageReport
}

// GetPreferencesInput defines the request for preferences
type GetPreferencesInput struct{}

// GetPreferencesOutput defines the response for preferences
type GetPreferencesOutput struct {
	Preferences preferences.Preferences
}

// SetPreferencesInput defines the request for a preferences change
type SetPreferencesInput struct {
	Patch preferences.Patch
}

// SetPreferencesOutput defines the response for a preferences change
type SetPreferencesOutput struct {
	Preferences preferences.Preferences
}

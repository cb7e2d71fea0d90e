package entities

import (
	"slices"

	"github.com/KirkDiggler/talis/internal/errors"
)

// QuickButtonType says what pressing a quick button does
type QuickButtonType string

const (
	// QuickButtonInstantRoll rolls Amount dice immediately
	QuickButtonInstantRoll QuickButtonType = "instantRoll"
	// QuickButtonSetAmount sets the pending dice count to Amount
	QuickButtonSetAmount QuickButtonType = "setAmount"
)

// QuickButtonTypes lists the valid types
func QuickButtonTypes() []QuickButtonType {
	return []QuickButtonType{QuickButtonInstantRoll, QuickButtonSetAmount}
}

// Quick button amount bounds
const (
	MinQuickButtonAmount = 1
	MaxQuickButtonAmount = 100
)

// QuickButton is a user-defined shortcut owned by one roller's config
type QuickButton struct {
	ID     string          `json:"id" yaml:"id"`
	Amount int             `json:"amount" yaml:"amount"`
	Type   QuickButtonType `json:"type" yaml:"type"`
}

// Validate checks the button's fields, reporting under path
func (b QuickButton) Validate(path string, vb *errors.ValidationBuilder) {
	errors.ValidateRequired(path+".id", b.ID, vb)
	errors.ValidateIntRange(path+".amount", b.Amount, MinQuickButtonAmount, MaxQuickButtonAmount, vb)
	errors.ValidateEnum(path+".type", b.Type, QuickButtonTypes(), vb)
}

// QuickButtonPatch holds the fields to change on an existing button
type QuickButtonPatch struct {
	Amount *int             `json:"amount,omitempty"`
	Type   *QuickButtonType `json:"type,omitempty"`
}

// FindQuickButton returns the button with id
func FindQuickButton(buttons []QuickButton, id string) (QuickButton, bool) {
	i := slices.IndexFunc(buttons, func(b QuickButton) bool { return b.ID == id })
	if i < 0 {
		return QuickButton{}, false
	}
	return buttons[i], true
}

// AddQuickButton returns a new list with b appended
func AddQuickButton(buttons []QuickButton, b QuickButton) ([]QuickButton, error) {
	if _, exists := FindQuickButton(buttons, b.ID); exists {
		return nil, errors.InvalidArgumentf("quick button %s already exists", b.ID)
	}
	return Append(buttons, b), nil
}

// UpdateQuickButton returns a new list with the button id patched in place
func UpdateQuickButton(buttons []QuickButton, id string, patch QuickButtonPatch) ([]QuickButton, error) {
	i := slices.IndexFunc(buttons, func(b QuickButton) bool { return b.ID == id })
	if i < 0 {
		return nil, errors.NotFoundf("quick button %s not found", id)
	}
	out := slices.Clone(buttons)
	if patch.Amount != nil {
		out[i].Amount = *patch.Amount
	}
	if patch.Type != nil {
		out[i].Type = *patch.Type
	}
	return out, nil
}

// RemoveQuickButton returns a new list without the button id
func RemoveQuickButton(buttons []QuickButton, id string) ([]QuickButton, error) {
	i := slices.IndexFunc(buttons, func(b QuickButton) bool { return b.ID == id })
	if i < 0 {
		return nil, errors.NotFoundf("quick button %s not found", id)
	}
	return slices.Delete(slices.Clone(buttons), i, i+1), nil
}

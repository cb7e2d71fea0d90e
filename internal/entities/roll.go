package entities

import (
	"slices"

	"github.com/KirkDiggler/rpg-toolkit/core"
)

// RollResult is the common part of every roll. It is created once by a
// roll action and never modified afterwards.
type RollResult struct {
	ID      string `json:"id" yaml:"id"`
	Type    string `json:"type" yaml:"type"`
	Results []int  `json:"results" yaml:"results"`
	// Timestamp is milliseconds since the Unix epoch
	Timestamp int64 `json:"timestamp" yaml:"timestamp"`
}

var _ core.Entity = RollResult{}

// GetID returns the roll id
func (r RollResult) GetID() string {
	return r.ID
}

// GetType returns the roller type that produced the roll
func (r RollResult) GetType() string {
	return r.Type
}

// Sum adds up all faces
func (r RollResult) Sum() int {
	total := 0
	for _, v := range r.Results {
		total += v
	}
	return total
}

// Append returns history with r added at the end. The input slice is never
// written to, so earlier snapshots stay valid.
func Append[T any](history []T, r T) []T {
	return append(slices.Clip(history), r)
}

// Ordered returns a copy of history, newest first when newestFirst is set
func Ordered[T any](history []T, newestFirst bool) []T {
	out := slices.Clone(history)
	if newestFirst {
		slices.Reverse(out)
	}
	return out
}

// SortedFaces returns the faces in ascending order without touching r
func (r RollResult) SortedFaces() []int {
	out := slices.Clone(r.Results)
	slices.Sort(out)
	return out
}

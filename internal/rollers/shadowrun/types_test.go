package shadowrun_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/talis/internal/rollers/shadowrun"
)

func TestEvaluate(t *testing.T) {
	testCases := []struct {
		name     string
		faces    []int
		hits     int
		glitch   bool
		critical bool
	}{
		{name: "glitch with a hit", faces: []int{1, 1, 1, 2, 6}, hits: 1, glitch: true},
		{name: "critical glitch", faces: []int{1, 1, 1, 1}, hits: 0, glitch: true, critical: true},
		{name: "all hits", faces: []int{6, 6, 5, 5}, hits: 4},
		{name: "exactly half ones", faces: []int{1, 1, 5, 3}, hits: 1, glitch: true},
		{name: "under half ones", faces: []int{1, 1, 2, 3, 4}, hits: 0},
		{name: "single one", faces: []int{1}, glitch: true, critical: true},
		{name: "single four", faces: []int{4}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := shadowrun.Evaluate(tc.faces)
			assert.Equal(t, tc.hits, got.Hits)
			assert.Equal(t, tc.glitch, got.IsGlitch)
			assert.Equal(t, tc.critical, got.IsCriticalGlitch)
		})
	}
}

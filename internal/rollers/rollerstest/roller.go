// Package rollerstest provides deterministic dependencies for roller tests.
package rollerstest

import (
	"sync"

	"github.com/KirkDiggler/talis/internal/errors"
)

// ScriptedRoller replays a fixed sequence of faces. Each RollN call
// consumes count faces from the front of the script.
type ScriptedRoller struct {
	mu    sync.Mutex
	faces []int
}

// NewScriptedRoller creates a roller that returns faces in order
func NewScriptedRoller(faces ...int) *ScriptedRoller {
	return &ScriptedRoller{faces: faces}
}

// Push appends faces to the script
func (r *ScriptedRoller) Push(faces ...int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.faces = append(r.faces, faces...)
}

// Roll returns the next scripted face
func (r *ScriptedRoller) Roll(size int) (int, error) {
	faces, err := r.RollN(1, size)
	if err != nil {
		return 0, err
	}
	return faces[0], nil
}

// RollN returns the next count scripted faces
func (r *ScriptedRoller) RollN(count, size int) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if count > len(r.faces) {
		return nil, errors.FailedPrecondition("scripted roller ran out of faces")
	}
	out := make([]int, count)
	copy(out, r.faces[:count])
	r.faces = r.faces[count:]
	for _, f := range out {
		if f < 1 || f > size {
			return nil, errors.Internalf("scripted face %d is not a d%d face", f, size)
		}
	}
	return out, nil
}

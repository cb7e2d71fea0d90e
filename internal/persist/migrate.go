package persist

import (
	"cmp"
	"maps"
	"slices"

	"github.com/KirkDiggler/talis/internal/errors"
)

// Migration upgrades an untyped payload to TargetVersion
type Migration struct {
	TargetVersion int
	Transform     func(state map[string]any) (map[string]any, error)
}

// Migrate applies, in ascending order, every migration whose target lies in
// (stored, current]. A failing or panicking transform aborts the chain with
// a DataLoss error.
func Migrate(state map[string]any, stored, current int, migrations []Migration) (map[string]any, error) {
	ordered := slices.Clone(migrations)
	slices.SortStableFunc(ordered, func(a, b Migration) int {
		return cmp.Compare(a.TargetVersion, b.TargetVersion)
	})

	out := state
	for _, m := range ordered {
		if m.TargetVersion <= stored || m.TargetVersion > current {
			continue
		}
		next, err := apply(m, out)
		if err != nil {
			return nil, err
		}
		out = next
	}
	return out, nil
}

func apply(m Migration, state map[string]any) (out map[string]any, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = errors.DataLossf("migration to version %d panicked: %v", m.TargetVersion, r)
		}
	}()

	out, err = m.Transform(state)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "migration failed").
			WithMeta("target_version", m.TargetVersion)
	}
	if out == nil {
		return nil, errors.DataLossf("migration to version %d returned no state", m.TargetVersion)
	}
	return out, nil
}

// EditObject returns a shallow copy of state in which the nested object
// under key was copied and passed to fn. state itself is not modified.
func EditObject(state map[string]any, key string, fn func(obj map[string]any) error) (map[string]any, error) {
	inner, ok := state[key].(map[string]any)
	if !ok {
		return nil, errors.DataLossf("%s is not an object", key)
	}
	obj := maps.Clone(inner)
	if err := fn(obj); err != nil {
		return nil, err
	}
	out := maps.Clone(state)
	out[key] = obj
	return out, nil
}

// Rename moves obj[from] to obj[to]. An existing obj[to] wins.
func Rename(obj map[string]any, from, to string) {
	v, ok := obj[from]
	if !ok {
		return
	}
	delete(obj, from)
	if _, exists := obj[to]; !exists {
		obj[to] = v
	}
}

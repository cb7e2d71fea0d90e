package registry_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/talis/internal/registry"
)

func TestRegistry(t *testing.T) {
	r := registry.New()
	assert.Empty(t, r.All())

	r.Add("shadowrun-storage")
	r.Add("coin-storage")
	r.Add("shadowrun-storage")

	assert.Equal(t, []string{"coin-storage", "shadowrun-storage"}, r.All())
	assert.True(t, r.Has("coin-storage"))
	assert.False(t, r.Has("d6-storage"))
}

func TestRegistryConcurrentAdd(t *testing.T) {
	r := registry.New()
	names := []string{"d6-storage", "coin-storage", "polyhedral-storage"}

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(n string) {
			defer wg.Done()
			r.Add(n)
		}(names[i%len(names)])
	}
	wg.Wait()

	assert.Len(t, r.All(), 3)
}

package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/beloved/internal/model"
)

var _ model.IDGenerator = (*SequentialIDs)(nil)

func TestSequentialIDs_Sequence(t *testing.T) {
	gen := NewSequentialIDs("note")

	assert.Equal(t, "note-0001", gen.NewID())
	assert.Equal(t, "note-0002", gen.NewID())
	assert.Equal(t, "note-0003", gen.NewID())
}

func TestSequentialIDs_EmptyPrefixDefault(t *testing.T) {
	gen := NewSequentialIDs("")
	assert.Equal(t, "id-0001", gen.NewID())
}

func TestSequentialIDs_Reset(t *testing.T) {
	gen := NewSequentialIDs("x")
	gen.NewID()
	gen.NewID()
	gen.Reset()
	assert.Equal(t, "x-0001", gen.NewID())
}

func TestSequentialIDs_ThreadSafe(t *testing.T) {
	gen := NewSequentialIDs("t")
	const numGoroutines = 10
	const callsPerGoroutine = 100

	var mu sync.Mutex
	seen := make(map[string]bool)

	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < callsPerGoroutine; j++ {
				id := gen.NewID()
				mu.Lock()
				assert.False(t, seen[id], "duplicate id %s", id)
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, numGoroutines*callsPerGoroutine)
}

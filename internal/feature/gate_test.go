package feature

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/beloved/internal/model"
)

func TestGate_CorrectPIN(t *testing.T) {
	f := newFixture(t)
	g := NewGate(f.store, f.clock)

	assert.False(t, g.Unlocked())
	assert.True(t, g.Enter(model.DefaultPIN))
	assert.True(t, g.Unlocked())
	assert.False(t, g.ErrorVisible())
}

func TestGate_WrongPINRaisesTransientError(t *testing.T) {
	f := newFixture(t)
	g := NewGate(f.store, f.clock)

	g.Type("12")
	g.Type("34")
	assert.Equal(t, "1234", g.Entered())

	assert.False(t, g.Submit())
	assert.False(t, g.Unlocked())
	assert.Equal(t, "", g.Entered(), "input is cleared on mismatch")
	assert.True(t, g.ErrorVisible())

	f.clock.Advance(GateErrorDuration - time.Millisecond)
	assert.True(t, g.ErrorVisible())

	f.clock.Advance(time.Millisecond)
	assert.False(t, g.ErrorVisible(), "flag clears after the interval")
}

func TestGate_Unlock(t *testing.T) {
	f := newFixture(t)
	g := NewGate(f.store, f.clock)

	assert.ErrorIs(t, g.Unlock("0000"), ErrLocked)
	require.NoError(t, g.Unlock(model.DefaultPIN))
}

func TestGate_ReadsCurrentPIN(t *testing.T) {
	f := newFixture(t)
	g := NewGate(f.store, f.clock)
	require.NoError(t, f.svc.ChangePIN(f.ctx, model.DefaultPIN, "1357", "1357"))

	assert.False(t, g.Enter(model.DefaultPIN))
	assert.True(t, g.Enter("1357"))
}

func TestGate_ThreadSafe(t *testing.T) {
	f := newFixture(t)
	g := NewGate(f.store, f.clock)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				g.Enter("0000")
			} else {
				g.Enter(model.DefaultPIN)
			}
			_ = g.ErrorVisible()
		}(i)
	}
	wg.Wait()
	assert.True(t, g.Unlocked())
}

package feature

import (
	"sync"
	"time"

	"github.com/roach88/beloved/internal/model"
	"github.com/roach88/beloved/internal/store"
)

// GateErrorDuration is how long the wrong-PIN flag stays raised.
const GateErrorDuration = 3 * time.Second

// Gate guards access behind the stored PIN.
//
// A wrong attempt clears the entered value and raises an error flag that
// lowers itself GateErrorDuration later. The gate only reads settings.pin.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type Gate struct {
	store *store.Store
	clock model.Clock

	mu         sync.Mutex
	entered    string
	unlocked   bool
	errorUntil time.Time
}

// NewGate creates a locked gate.
func NewGate(st *store.Store, clock model.Clock) *Gate {
	if clock == nil {
		clock = model.SystemClock{}
	}
	return &Gate{store: st, clock: clock}
}

// Enter submits a PIN attempt and reports whether it unlocked the gate.
func (g *Gate) Enter(pin string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if pin == g.store.Read().Settings.PIN {
		g.unlocked = true
		g.entered = ""
		g.errorUntil = time.Time{}
		return true
	}
	g.entered = ""
	g.errorUntil = g.clock.Now().Add(GateErrorDuration)
	return false
}

// Unlock is Enter returning ErrLocked on a wrong PIN.
func (g *Gate) Unlock(pin string) error {
	if !g.Enter(pin) {
		return ErrLocked
	}
	return nil
}

// Unlocked reports whether a correct PIN has been entered.
func (g *Gate) Unlocked() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.unlocked
}

// Entered returns the pending input. Always "" after an attempt.
func (g *Gate) Entered() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.entered
}

// Type appends digits to the pending input.
func (g *Gate) Type(digits string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.entered += digits
}

// Submit enters the pending input.
func (g *Gate) Submit() bool {
	g.mu.Lock()
	pin := g.entered
	g.mu.Unlock()
	return g.Enter(pin)
}

// ErrorVisible reports whether the wrong-PIN flag is raised.
func (g *Gate) ErrorVisible() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.clock.Now().Before(g.errorUntil)
}

package slot

import (
	"context"
	"sync"
)

// Memory is a map-backed Slots implementation.
//
// FailPuts makes every subsequent Put fail, which lets tests exercise the
// store's best-effort durability path.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type Memory struct {
	mu      sync.Mutex
	values  map[string]string
	failErr *PersistenceError
	puts    int
}

// NewMemory creates an empty in-memory slot store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get returns the value stored under key.
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Put stores value under key, unless FailPuts is active.
func (m *Memory) Put(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return &PersistenceError{Reason: m.failErr.Reason, Key: key, Err: m.failErr.Err}
	}
	m.values[key] = value
	m.puts++
	return nil
}

// Close is a no-op.
func (m *Memory) Close() error {
	return nil
}

// FailPuts makes subsequent Puts fail with reason. Pass "" to recover.
func (m *Memory) FailPuts(reason PersistenceReason, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if reason == "" {
		m.failErr = nil
		return
	}
	m.failErr = &PersistenceError{Reason: reason, Err: err}
}

// Puts returns how many Puts succeeded.
func (m *Memory) Puts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.puts
}

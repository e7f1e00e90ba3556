package slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Slots is a flat key-value store of opaque string values.
type Slots interface {
	// Get returns the value under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Put replaces the value under key.
	Put(ctx context.Context, key, value string) error

	// Close releases the backend.
	Close() error
}

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
	BackendMemory = "memory"
)

// Backends lists every backend name.
var Backends = []string{BackendSQLite, BackendBadger, BackendMemory}

// Open opens the named backend at path.
// path is a database file for sqlite, a directory for badger and ignored for
// memory. log receives the badger backend's internal log lines; nil drops
// them.
func Open(backend, path string, log logrus.FieldLogger) (Slots, error) {
	switch backend {
	case BackendSQLite, "":
		return OpenSQLite(path)
	case BackendBadger:
		cfg := BadgerConfig{Path: path, SyncWrites: true}
		if log != nil {
			cfg.Logger = BadgerLogger(log)
		}
		return OpenBadger(cfg)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q: must be one of %v", backend, Backends)
	}
}

// PersistenceReason categorizes write failures.
type PersistenceReason string

const (
	// ReasonUnavailable indicates the backend could not be reached or written.
	ReasonUnavailable PersistenceReason = "unavailable"

	// ReasonQuotaExceeded indicates the backend is out of space.
	ReasonQuotaExceeded PersistenceReason = "quota-exceeded"
)

// PersistenceError is returned when a slot cannot be written.
type PersistenceError struct {
	Reason PersistenceReason
	Key    string
	Err    error
}

func (e *PersistenceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("persist %s: %s: %v", e.Key, e.Reason, e.Err)
	}
	return fmt.Sprintf("persist %s: %s", e.Key, e.Reason)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsPersistenceError returns true if err is or wraps a *PersistenceError.
func IsPersistenceError(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}

// IsQuotaExceeded returns true if err is a quota-exceeded *PersistenceError.
func IsQuotaExceeded(err error) bool {
	var pe *PersistenceError
	if errors.As(err, &pe) {
		return pe.Reason == ReasonQuotaExceeded
	}
	return false
}

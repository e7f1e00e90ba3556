package slot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"
)

// BadgerConfig holds configuration for a Badger-backed slot store.
type BadgerConfig struct {
	// Path is the directory for Badger files. Ignored when InMemory is true.
	Path string

	// InMemory enables in-memory mode (no disk persistence). Used by tests.
	InMemory bool

	// SyncWrites makes every Put durable before it returns.
	SyncWrites bool

	// Logger receives Badger's internal log lines. Wrap a logrus logger
	// with BadgerLogger. nil disables Badger logging.
	Logger badger.Logger
}

// BadgerLogger adapts log to badger.Logger. Lines carry component=badger,
// and Badger's info lines are logged at debug.
func BadgerLogger(log logrus.FieldLogger) badger.Logger {
	return badgerLogger{log: log.WithField("component", "badger")}
}

type badgerLogger struct {
	log *logrus.Entry
}

func (l badgerLogger) Errorf(format string, args ...any) {
	l.log.Error(badgerLine(format, args))
}

func (l badgerLogger) Warningf(format string, args ...any) {
	l.log.Warn(badgerLine(format, args))
}

func (l badgerLogger) Infof(format string, args ...any) {
	l.log.Debug(badgerLine(format, args))
}

func (l badgerLogger) Debugf(format string, args ...any) {
	l.log.Debug(badgerLine(format, args))
}

func badgerLine(format string, args []any) string {
	return strings.TrimRight(fmt.Sprintf(format, args...), "\n")
}

// Badger stores slots in an embedded Badger database.
//
// Thread Safety: Badger is safe for concurrent use.
type Badger struct {
	db *badger.DB
}

// OpenBadger opens a Badger database with the given configuration.
// Creates the directory if it doesn't exist.
func OpenBadger(cfg BadgerConfig) (*Badger, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for persistent database")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}

	// Slots hold one current value each; history is not kept.
	opts = opts.WithSyncWrites(cfg.SyncWrites).
		WithNumVersionsToKeep(1).
		WithLogger(cfg.Logger)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	return &Badger{db: db}, nil
}

// Close closes the database.
func (b *Badger) Close() error {
	if b.db == nil {
		return nil
	}
	return b.db.Close()
}

// Get returns the value stored under key.
func (b *Badger) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	var value []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get slot %s: %w", key, err)
	}
	return string(value), true, nil
}

// Put replaces the value stored under key.
func (b *Badger) Put(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return &PersistenceError{Reason: ReasonUnavailable, Key: key, Err: err}
	}

	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
	if err != nil {
		return &PersistenceError{Reason: badgerReason(err), Key: key, Err: err}
	}
	return nil
}

// badgerReason maps oversized transactions and a full disk to
// quota-exceeded.
func badgerReason(err error) PersistenceReason {
	if errors.Is(err, badger.ErrTxnTooBig) || errors.Is(err, syscall.ENOSPC) {
		return ReasonQuotaExceeded
	}
	return ReasonUnavailable
}

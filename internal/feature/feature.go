// Package feature implements the user-facing operations of beloved on top
// of the store: daily and cycle suggestions, gift ideas, important events,
// partner notes, settings and the PIN gate.
//
// Every mutating operation is a read-modify-write of the whole aggregate
// through store.Update. Read-only helpers take a model.State snapshot and
// are pure.
//
// A mutating operation that returns a *slot.PersistenceError has still
// applied its change in memory, and its result value is valid. Any other
// error means nothing changed.
package feature

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/beloved/internal/catalog"
	"github.com/roach88/beloved/internal/logging"
	"github.com/roach88/beloved/internal/model"
	"github.com/roach88/beloved/internal/slot"
	"github.com/roach88/beloved/internal/store"
)

// Service runs feature operations against one store.
type Service struct {
	store   *store.Store
	catalog *catalog.Catalog
	ids     model.IDGenerator
	clock   model.Clock
	rng     *rand.Rand
	logger  logrus.FieldLogger
}

// Option configures a Service.
type Option func(*Service)

// WithCatalog sets the flavor-text catalog. Defaults to the embedded one.
func WithCatalog(c *catalog.Catalog) Option {
	return func(s *Service) { s.catalog = c }
}

// WithIDs sets the id generator. Defaults to UUIDv7.
func WithIDs(g model.IDGenerator) Option {
	return func(s *Service) { s.ids = g }
}

// WithClock sets the clock that defines "today".
func WithClock(c model.Clock) Option {
	return func(s *Service) { s.clock = c }
}

// WithRand sets the source of random picks. Tests pass a seeded source.
func WithRand(src rand.Source) Option {
	return func(s *Service) { s.rng = rand.New(src) }
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Service) { s.logger = l }
}

// New creates a Service over st.
func New(st *store.Store, opts ...Option) *Service {
	s := &Service{
		store:  st,
		ids:    model.UUIDv7Generator{},
		clock:  model.SystemClock{},
		rng:    rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.catalog == nil {
		s.catalog = catalog.Default()
	}
	return s
}

// Store returns the underlying store.
func (s *Service) Store() *store.Store {
	return s.store
}

// Catalog returns the flavor-text catalog in use.
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

// Today returns the current calendar date.
func (s *Service) Today() model.Date {
	return model.Today(s.clock)
}

// Snapshot returns the store's current state.
func (s *Service) Snapshot() model.State {
	return s.store.Read()
}

// pick returns a random element of items. items must be non-empty.
func (s *Service) pick(items []string) string {
	return items[s.rng.IntN(len(items))]
}

// keep returns v unless err means the operation did not apply.
func keep[T any](v T, err error) (T, error) {
	if err != nil && !slot.IsPersistenceError(err) {
		var zero T
		return zero, err
	}
	return v, err
}

// cleanText trims and NFC-normalizes user-entered text so the same words
// typed on different keyboards compare equal.
func cleanText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

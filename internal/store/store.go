package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/roach88/beloved/internal/codec"
	"github.com/roach88/beloved/internal/logging"
	"github.com/roach88/beloved/internal/migrate"
	"github.com/roach88/beloved/internal/model"
	"github.com/roach88/beloved/internal/slot"
)

// DefaultKey is the slot the state blob is stored under.
const DefaultKey = "beloved-data"

// Source says where the loaded state came from.
type Source string

const (
	// SourceNotLoaded means Load has not run yet.
	SourceNotLoaded Source = ""

	// SourcePersisted means the blob was decoded (and possibly migrated).
	SourcePersisted Source = "persisted"

	// SourceDefaultAbsent means no blob existed.
	SourceDefaultAbsent Source = "default-absent"

	// SourceDefaultUndecodable means the blob could not be decoded.
	SourceDefaultUndecodable Source = "default-undecodable"

	// SourceDefaultUnreadable means the slot itself could not be read.
	SourceDefaultUnreadable Source = "default-unreadable"
)

// LoadReport describes the outcome of Load.
type LoadReport struct {
	Source Source

	// Err is the decode or read failure behind a default fallback.
	Err error

	// Migration is what the migration pass did to a persisted document.
	Migration migrate.Result

	// Violations lists invariants the persisted state breaks, if any.
	Violations *model.ValidationError
}

// Store is the single owner of the ApplicationState aggregate.
type Store struct {
	slots  slot.Slots
	codec  *codec.Codec
	clock  model.Clock
	logger logrus.FieldLogger
	key    string

	// writeMu serializes Write and Update.
	writeMu sync.Mutex

	mu     sync.RWMutex
	state  model.State
	report LoadReport

	// unknown holds top-level fields of the loaded document that
	// model.State has no field for. They are written back unchanged.
	unknown migrate.Document
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used to build the default state.
func WithClock(c model.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Store) { s.logger = l }
}

// WithKey overrides the slot key.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// New creates a store over slots. Until Load runs, Read returns the default
// state for today.
func New(slots slot.Slots, c *codec.Codec, opts ...Option) *Store {
	s := &Store{
		slots:  slots,
		codec:  c,
		clock:  model.SystemClock{},
		logger: logging.Discard(),
		key:    DefaultKey,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state = model.Default(model.Today(s.clock))
	return s
}

// Key returns the slot key the store reads and writes.
func (s *Store) Key() string {
	return s.key
}

// Load reads, migrates and decodes the persisted state, replacing the
// in-memory state. It never fails: every problem degrades to the default
// state and is recorded in Report(). Nothing is written.
func (s *Store) Load(ctx context.Context) model.State {
	d, report := s.load(ctx)

	s.mu.Lock()
	s.state = d.state
	s.report = report
	s.unknown = d.unknown
	s.mu.Unlock()

	return d.state.Clone()
}

// decoded is a persisted document split into what the model knows and what
// it does not.
type decoded struct {
	state     model.State
	migration migrate.Result
	unknown   migrate.Document
}

func (s *Store) load(ctx context.Context) (decoded, LoadReport) {
	log := s.logger.WithField("key", s.key)
	fallback := func(src Source, err error) (decoded, LoadReport) {
		return decoded{state: model.Default(model.Today(s.clock))}, LoadReport{Source: src, Err: err}
	}

	blob, ok, err := s.slots.Get(ctx, s.key)
	if err != nil {
		log.WithError(err).Warn("state slot unreadable, using default state")
		return fallback(SourceDefaultUnreadable, err)
	}
	if !ok {
		log.Debug("no persisted state, using default state")
		return fallback(SourceDefaultAbsent, nil)
	}

	d, err := s.decode(blob)
	if err != nil {
		log.WithError(err).WithField("reason", codec.ReasonOf(err)).
			Warn("persisted state undecodable, using default state; blob left in place")
		return fallback(SourceDefaultUndecodable, err)
	}

	res := d.migration
	report := LoadReport{Source: SourcePersisted, Migration: res}
	if res.Changed() {
		log.WithFields(logrus.Fields{
			"from":    res.From,
			"to":      res.To,
			"applied": res.Applied,
		}).Info("migrated persisted state")
	}
	if len(d.unknown) > 0 {
		log.WithField("fields", sortedKeys(d.unknown)).Debug("keeping fields unknown to this build")
	}
	if err := model.Validate(d.state); err != nil {
		var ve *model.ValidationError
		if errors.As(err, &ve) {
			report.Violations = ve
		}
		log.WithError(err).Warn("persisted state breaks invariants, keeping it as is")
	}
	return d, report
}

// decode opens the blob, migrates the raw document and decodes the result.
// Every error is a *codec.DecodeError.
func (s *Store) decode(blob string) (decoded, error) {
	plaintext, err := s.codec.Open(blob)
	if err != nil {
		return decoded{}, err
	}

	doc, err := migrate.Parse(plaintext)
	if err != nil {
		return decoded{}, &codec.DecodeError{
			Reason: codec.ReasonMalformedJSON, Message: "document is not a JSON object", Err: err,
		}
	}
	res, err := migrate.Apply(doc)
	if err != nil {
		return decoded{migration: res}, &codec.DecodeError{
			Reason: codec.ReasonMalformedJSON, Message: "document cannot be migrated", Err: err,
		}
	}
	migrated, err := doc.Marshal()
	if err != nil {
		return decoded{migration: res}, &codec.DecodeError{
			Reason: codec.ReasonMalformedJSON, Message: "re-encode migrated document", Err: err,
		}
	}

	var state model.State
	if err := codec.Unmarshal(migrated, &state); err != nil {
		return decoded{migration: res}, err
	}
	normalize(&state)
	return decoded{state: state, migration: res, unknown: unknownFields(doc)}, nil
}

// knownFields is the set of top-level JSON fields model.State encodes.
var knownFields = sync.OnceValue(func() map[string]bool {
	raw, err := codec.MarshalCanonical(model.State{})
	if err != nil {
		panic(err)
	}
	doc, err := migrate.Parse(raw)
	if err != nil {
		panic(err)
	}
	known := make(map[string]bool, len(doc))
	for k := range doc {
		known[k] = true
	}
	return known
})

// unknownFields returns the non-null fields of doc that model.State has no
// field for, or nil when there are none.
func unknownFields(doc migrate.Document) migrate.Document {
	var out migrate.Document
	for k, v := range doc {
		if knownFields()[k] || !doc.Has(k) {
			continue
		}
		if out == nil {
			out = migrate.Document{}
		}
		out[k] = v
	}
	return out
}

// appendFields adds extra fields, sorted by name, after the last field of
// the JSON object obj.
func appendFields(obj []byte, extra migrate.Document) ([]byte, error) {
	end := bytes.LastIndexByte(obj, '}')
	if end < 0 {
		return nil, fmt.Errorf("not a JSON object")
	}
	out := append([]byte{}, obj[:end]...)
	for _, k := range sortedKeys(extra) {
		name, err := codec.MarshalCanonical(k)
		if err != nil {
			return nil, err
		}
		if len(bytes.TrimSpace(out)) > 1 {
			out = append(out, ',')
		}
		out = append(out, name...)
		out = append(out, ':')
		out = append(out, bytes.TrimSpace(extra[k])...)
	}
	return append(out, obj[end:]...), nil
}

func sortedKeys(doc migrate.Document) []string {
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// normalize replaces collections a document left null with empty ones.
func normalize(s *model.State) {
	if s.Cycle.History == nil {
		s.Cycle.History = []model.Date{}
	}
	if s.Preferences == nil {
		s.Preferences = model.Preferences{}
	}
	if s.ImportantEvents == nil {
		s.ImportantEvents = []model.ImportantEvent{}
	}
	if s.DailySuggestions == nil {
		s.DailySuggestions = []model.DailySuggestion{}
	}
	if s.CycleSuggestions == nil {
		s.CycleSuggestions = []model.CycleSuggestion{}
	}
	if s.PartnerNotes == nil {
		s.PartnerNotes = []model.PartnerNote{}
	}
}

// Report returns the outcome of the last Load.
func (s *Store) Report() LoadReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.report
}

// Read returns a snapshot of the current state. The snapshot is a deep copy;
// mutating it does not affect the store.
func (s *Store) Read() model.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Write replaces the whole state with next and persists it.
//
// Returns *model.ValidationError if next breaks an invariant; the state is
// then unchanged. Returns *slot.PersistenceError if the blob could not be
// stored; the in-memory state is next regardless.
func (s *Store) Write(ctx context.Context, next model.State) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.write(ctx, next)
}

// Update applies fn to a snapshot and writes the result. If fn returns an
// error nothing is written and the error is returned as is.
func (s *Store) Update(ctx context.Context, fn func(*model.State) error) (model.State, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	next := s.Read()
	if err := fn(&next); err != nil {
		return s.Read(), err
	}
	if err := s.write(ctx, next); err != nil {
		return s.Read(), err
	}
	return next.Clone(), nil
}

func (s *Store) write(ctx context.Context, next model.State) error {
	if err := model.Validate(next); err != nil {
		return err
	}
	next = next.Clone()

	s.mu.Lock()
	s.state = next
	unknown := s.unknown
	s.mu.Unlock()

	blob, err := s.encode(next, unknown)
	if err != nil {
		return s.persistFailed(&slot.PersistenceError{
			Reason: slot.ReasonUnavailable,
			Key:    s.key,
			Err:    fmt.Errorf("encode state: %w", err),
		})
	}
	if err := s.slots.Put(ctx, s.key, blob); err != nil {
		return s.persistFailed(err)
	}
	return nil
}

// encode seals the canonical JSON of state with the unknown fields appended.
func (s *Store) encode(state model.State, unknown migrate.Document) (string, error) {
	if len(unknown) == 0 {
		return s.codec.Encode(state)
	}
	plaintext, err := codec.MarshalCanonical(state)
	if err != nil {
		return "", err
	}
	plaintext, err = appendFields(plaintext, unknown)
	if err != nil {
		return "", err
	}
	return s.codec.Seal(plaintext)
}

func (s *Store) persistFailed(err error) error {
	s.logger.WithError(err).WithField("key", s.key).
		Warn("state not persisted; in-memory state kept for this session")
	var pe *slot.PersistenceError
	if errors.As(err, &pe) {
		return pe
	}
	return &slot.PersistenceError{Reason: slot.ReasonUnavailable, Key: s.key, Err: err}
}

// Close closes the underlying slots.
func (s *Store) Close() error {
	return s.slots.Close()
}

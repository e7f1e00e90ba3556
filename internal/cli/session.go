package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/roach88/beloved/internal/catalog"
	"github.com/roach88/beloved/internal/codec"
	"github.com/roach88/beloved/internal/config"
	"github.com/roach88/beloved/internal/feature"
	"github.com/roach88/beloved/internal/logging"
	"github.com/roach88/beloved/internal/model"
	"github.com/roach88/beloved/internal/predict"
	"github.com/roach88/beloved/internal/slot"
	"github.com/roach88/beloved/internal/store"
)

// session is everything one command invocation works with: a loaded store,
// the feature service over it and the PIN gate.
type session struct {
	ctx   context.Context
	cfg   *config.AppConfig
	out   *OutputFormatter
	log   *logrus.Logger
	codec *codec.Codec
	slots slot.Slots
	owned bool
	store *store.Store
	svc   *feature.Service
	gate  *feature.Gate

	// unsaved is the first persistence failure of the command, if any.
	unsaved error
}

// commandError is a failure to set up the command itself.
type commandError struct {
	Code string
	Err  error
}

func (e *commandError) Error() string { return e.Err.Error() }
func (e *commandError) Unwrap() error { return e.Err }

// gated selects whether a command needs the PIN.
type gated bool

const (
	requirePIN gated = true
	openAccess gated = false
)

// run opens a session, checks the PIN when required, runs fn and reports
// its outcome. A persistence failure is a notice, not an error.
func (o *RootOptions) run(cmd *cobra.Command, access gated, fn func(s *session) error) error {
	out := o.formatter(cmd)

	s, err := o.open(cmd, out)
	if err != nil {
		return report(out, err)
	}
	defer s.close()

	if access == requirePIN {
		if err := s.gate.Unlock(o.PIN); err != nil {
			s.log.Debug("PIN rejected")
			return report(out, err)
		}
	}

	if err := fn(s); err != nil {
		return report(out, err)
	}

	if s.unsaved != nil {
		reason := slot.ReasonUnavailable
		var pe *slot.PersistenceError
		if errors.As(s.unsaved, &pe) {
			reason = pe.Reason
		}
		out.Notice("the change could not be saved (%s); it is lost when this command exits", reason)
	}
	return nil
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Notices go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
	}
}

// open builds the configuration, logger, storage, store and service.
func (o *RootOptions) open(cmd *cobra.Command, out *OutputFormatter) (*session, error) {
	d := o.deps

	cfg := d.Config
	if cfg == nil {
		loaded, err := config.Load()
		if err != nil {
			return nil, &commandError{Code: ErrCodeConfig, Err: err}
		}
		cfg = loaded
	}
	if err := cfg.Override(o.Backend, o.DB); err != nil {
		return nil, &commandError{Code: ErrCodeConfig, Err: err}
	}

	logOut := d.LogOutput
	if logOut == nil {
		logOut = cmd.ErrOrStderr()
	}
	log := logging.New(logging.Options{
		Level:       cfg.LogLevel,
		Environment: cfg.Environment,
		Verbose:     o.Verbose,
		Output:      logOut,
	})

	s := &session{
		ctx:   cmd.Context(),
		cfg:   cfg,
		out:   out,
		log:   log,
		codec: codec.Default(),
		slots: d.Slots,
	}
	if s.ctx == nil {
		s.ctx = context.Background()
	}

	if s.slots == nil {
		if err := cfg.EnsureDir(); err != nil {
			return nil, &commandError{Code: ErrCodeStorage, Err: err}
		}
		slots, err := slot.Open(cfg.Backend, cfg.DBPath, log)
		if err != nil {
			return nil, &commandError{Code: ErrCodeStorage, Err: err}
		}
		s.slots = slots
		s.owned = true
	}

	cat := d.Catalog
	if cat == nil && cfg.CatalogPath != "" {
		loaded, err := catalog.Load(cfg.CatalogPath)
		if err != nil {
			s.close()
			return nil, &commandError{Code: ErrCodeConfig, Err: err}
		}
		cat = loaded
	}

	clock := d.Clock
	if clock == nil {
		clock = model.SystemClock{}
	}

	s.store = store.New(s.slots, s.codec, store.WithClock(clock), store.WithLogger(log))
	s.store.Load(s.ctx)
	rep := s.store.Report()
	out.VerboseLog("loaded %s from %s %s (%s)", s.store.Key(), cfg.Backend, cfg.DBPath, rep.Source)

	opts := []feature.Option{feature.WithClock(clock), feature.WithLogger(log)}
	if cat != nil {
		opts = append(opts, feature.WithCatalog(cat))
	}
	if d.IDs != nil {
		opts = append(opts, feature.WithIDs(d.IDs))
	}
	if d.Rand != nil {
		opts = append(opts, feature.WithRand(d.Rand))
	}
	s.svc = feature.New(s.store, opts...)
	s.gate = feature.NewGate(s.store, clock)
	return s, nil
}

func (s *session) close() {
	if !s.owned {
		return
	}
	if err := s.slots.Close(); err != nil {
		s.log.WithError(err).Warn("close storage")
	}
}

// saved records a persistence failure and lets it through as success.
// Every other error is returned unchanged.
func (s *session) saved(err error) error {
	if slot.IsPersistenceError(err) {
		if s.unsaved == nil {
			s.unsaved = err
		}
		return nil
	}
	return err
}

// report prints err in the configured format and converts it to an
// ExitError. ExitErrors are assumed to be reported already.
func report(out *OutputFormatter, err error) error {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	code, exit, details := classify(err)
	_ = out.Error(code, err.Error(), details)
	return WrapExitError(exit, code, err)
}

// classify maps an error to its CLI error code and exit code.
func classify(err error) (code string, exit int, details any) {
	var cmdErr *commandError
	var ve *model.ValidationError
	switch {
	case errors.As(err, &cmdErr):
		return cmdErr.Code, ExitCommandError, nil
	case errors.Is(err, feature.ErrLocked):
		return ErrCodeLocked, ExitFailure, nil
	case errors.Is(err, feature.ErrNotFound):
		return ErrCodeNotFound, ExitFailure, nil
	case errors.Is(err, feature.ErrNoPreferences):
		return ErrCodeNoPreferences, ExitFailure, nil
	case errors.As(err, &ve):
		return ErrCodeInvalidInput, ExitFailure, ve.Violations
	case feature.IsInputError(err),
		predict.IsInvalidDate(err),
		errors.Is(err, feature.ErrInvalidRating),
		errors.Is(err, feature.ErrUnknownCategory),
		errors.Is(err, feature.ErrWrongPIN),
		errors.Is(err, feature.ErrPINFormat),
		errors.Is(err, feature.ErrPINMismatch):
		return ErrCodeInvalidInput, ExitFailure, nil
	default:
		return ErrCodeGeneric, ExitFailure, nil
	}
}

// usageError reports a malformed argument.
func usageError(format string, args ...any) error {
	return &commandError{Code: ErrCodeConfig, Err: fmt.Errorf(format, args...)}
}

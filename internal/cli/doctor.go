package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/beloved/internal/codec"
	"github.com/roach88/beloved/internal/migrate"
	"github.com/roach88/beloved/internal/schema"
	"github.com/roach88/beloved/internal/store"
)

// MigrationView describes one migration step.
type MigrationView struct {
	Version     int    `json:"version"`
	Description string `json:"description"`
}

// DoctorView is the health report of the stored record.
type DoctorView struct {
	Key           string          `json:"key"`
	Backend       string          `json:"backend"`
	Path          string          `json:"path"`
	Stored        bool            `json:"stored"`
	Source        store.Source    `json:"source"`
	SchemaVersion int             `json:"schemaVersion"`
	LatestVersion int             `json:"latestVersion"`
	Pending       []MigrationView `json:"pendingMigrations"`
	DecodeError   string          `json:"decodeError,omitempty"`
	DecodeReason  string          `json:"decodeReason,omitempty"`
	SchemaIssues  []string        `json:"schemaIssues"`
	Violations    []string        `json:"violations"`
	Healthy       bool            `json:"healthy"`
}

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the stored record without changing it",
		Long: `Check the stored record without changing it.

Decrypts the record, lists the migrations it still needs, checks the
migrated document against the schema and reports broken invariants.
Exits 1 when a problem is found. Does not need the PIN.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, openAccess, runDoctor)
		},
	}
}

func runDoctor(s *session) error {
	view := DoctorView{
		Key:           s.store.Key(),
		Backend:       s.cfg.Backend,
		Path:          s.cfg.DBPath,
		Source:        s.store.Report().Source,
		LatestVersion: migrate.Latest(),
		Pending:       []MigrationView{},
		SchemaIssues:  []string{},
		Violations:    []string{},
	}

	if err := inspectRecord(s, &view); err != nil {
		return err
	}
	if ve := s.store.Report().Violations; ve != nil {
		for _, v := range ve.Violations {
			view.Violations = append(view.Violations, v.Error())
		}
	}
	view.Healthy = view.DecodeError == "" && len(view.SchemaIssues) == 0 && len(view.Violations) == 0

	if err := s.out.Render(view, func(w io.Writer) { writeDoctor(w, view) }); err != nil {
		return err
	}
	if !view.Healthy {
		return NewExitError(ExitFailure, fmt.Sprintf("%s: stored record has problems", ErrCodeDoctor))
	}
	return nil
}

// inspectRecord fills the decode, migration and schema parts of view from
// the raw stored blob. Only a failing slot read is returned as an error.
func inspectRecord(s *session, view *DoctorView) error {
	blob, ok, err := s.slots.Get(s.ctx, s.store.Key())
	if err != nil {
		return fmt.Errorf("read %s: %w", s.store.Key(), err)
	}
	view.Stored = ok
	if !ok {
		view.SchemaVersion = migrate.Latest()
		return nil
	}

	fail := func(err error) error {
		view.DecodeError = err.Error()
		view.DecodeReason = string(codec.ReasonOf(err))
		return nil
	}

	plaintext, err := s.codec.Open(blob)
	if err != nil {
		return fail(err)
	}
	doc, err := migrate.Parse(plaintext)
	if err != nil {
		return fail(err)
	}
	from, err := doc.Version()
	if err != nil {
		return fail(err)
	}
	view.SchemaVersion = from
	for _, step := range migrate.Steps {
		if step.Version > from {
			view.Pending = append(view.Pending, MigrationView{Version: step.Version, Description: step.Description})
		}
	}

	if _, err := migrate.Apply(doc); err != nil {
		return fail(err)
	}
	migrated, err := doc.Marshal()
	if err != nil {
		return fail(err)
	}

	checker, err := schema.New()
	if err != nil {
		return err
	}
	if err := checker.Check(migrated); err != nil {
		var se *schema.Error
		if !errors.As(err, &se) {
			return fail(err)
		}
		for _, issue := range se.Issues {
			view.SchemaIssues = append(view.SchemaIssues, issue.String())
		}
	}
	return nil
}

func writeDoctor(w io.Writer, v DoctorView) {
	fmt.Fprintf(w, "Record:   %s in %s %s\n", v.Key, v.Backend, v.Path)
	if !v.Stored {
		fmt.Fprintln(w, "Stored:   no (defaults are used until the first change)")
	} else {
		fmt.Fprintf(w, "Schema:   v%d (latest v%d)\n", v.SchemaVersion, v.LatestVersion)
	}
	fmt.Fprintf(w, "Loaded:   %s\n", v.Source)

	for _, m := range v.Pending {
		fmt.Fprintf(w, "Pending:  v%d %s\n", m.Version, m.Description)
	}
	if v.DecodeError != "" {
		fmt.Fprintf(w, "✗ cannot decode record: %s\n", v.DecodeError)
	}
	for _, issue := range v.SchemaIssues {
		fmt.Fprintf(w, "✗ schema: %s\n", issue)
	}
	for _, violation := range v.Violations {
		fmt.Fprintf(w, "✗ invariant: %s\n", violation)
	}
	if v.Healthy {
		fmt.Fprintln(w, "✓ record is healthy")
	}
}

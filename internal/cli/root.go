package cli

import (
	"fmt"
	"io"
	"math/rand/v2"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/beloved/internal/catalog"
	"github.com/roach88/beloved/internal/config"
	"github.com/roach88/beloved/internal/model"
	"github.com/roach88/beloved/internal/slot"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	DB      string
	Backend string
	PIN     string

	deps Deps
}

// Deps replaces the collaborators a command builds for itself. Zero fields
// mean the production default; tests set them for deterministic output.
type Deps struct {
	// Config skips reading the environment when set.
	Config *config.AppConfig
	// Slots is used instead of opening the configured backend, and is not
	// closed when the command ends.
	Slots   slot.Slots
	Clock   model.Clock
	IDs     model.IDGenerator
	Rand    rand.Source
	Catalog *catalog.Catalog
	// LogOutput receives log lines. Defaults to the command's stderr.
	LogOutput io.Writer
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the beloved CLI.
func NewRootCommand(deps Deps) *cobra.Command {
	opts := &RootOptions{deps: deps}

	cmd := &cobra.Command{
		Use:   "beloved",
		Short: "beloved - a private partner-care companion",
		Long: `Tracks a partner's cycle, issues daily care suggestions, remembers
important dates, gift preferences and notes. All data stays in one
encrypted local record.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.DB, "db", "", "database path (overrides "+config.EnvDB+")")
	cmd.PersistentFlags().StringVar(&opts.Backend, "backend", "", "storage backend (sqlite|badger|memory, overrides "+config.EnvBackend+")")
	cmd.PersistentFlags().StringVar(&opts.PIN, "pin", "", "access PIN")

	// Add subcommands
	cmd.AddCommand(NewStatusCommand(opts))
	cmd.AddCommand(NewCycleCommand(opts))
	cmd.AddCommand(NewSuggestCommand(opts))
	cmd.AddCommand(NewGiftCommand(opts))
	cmd.AddCommand(NewEventsCommand(opts))
	cmd.AddCommand(NewNotesCommand(opts))
	cmd.AddCommand(NewSettingsCommand(opts))
	cmd.AddCommand(NewUnlockCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewDoctorCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/beloved/internal/feature"
)

// NewCycleCommand creates the cycle command group.
func NewCycleCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cycle",
		Short: "Record and inspect cycle dates",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "record <YYYY-MM-DD>",
		Short: "Record the start date of a period",
		Long: `Record the start date of a period.

The date must not be in the future. The history keeps the 12 most recent
dates; the average length, next expected date and phase are recomputed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, requirePIN, func(s *session) error {
				_, err := s.svc.RecordPeriod(s.ctx, args[0])
				if err := s.saved(err); err != nil {
					return err
				}
				view := newCycleView(feature.Status(s.svc.Snapshot(), s.svc.Today()))
				return s.out.Render(view, func(w io.Writer) {
					fmt.Fprintf(w, "Recorded %s.\n", args[0])
					writeCycle(w, view)
				})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the cycle status and recorded history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, requirePIN, func(s *session) error {
				view := newCycleView(feature.Status(s.svc.Snapshot(), s.svc.Today()))
				return s.out.Render(view, func(w io.Writer) {
					writeCycle(w, view)
					fmt.Fprintln(w)
					if len(view.History) == 0 {
						fmt.Fprintln(w, "No dates recorded.")
						return
					}
					fmt.Fprintln(w, "History:")
					for _, d := range view.History {
						fmt.Fprintf(w, "  %s\n", d)
					}
				})
			})
		},
	})

	return cmd
}

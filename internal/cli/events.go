package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/beloved/internal/feature"
	"github.com/roach88/beloved/internal/model"
)

// NewEventsCommand creates the events command group.
func NewEventsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Remember birthdays, anniversaries and other dates",
	}

	cmd.AddCommand(newEventsAddCommand(rootOpts))
	cmd.AddCommand(newEventsListCommand(rootOpts))
	cmd.AddCommand(newEventsDeleteCommand(rootOpts))

	return cmd
}

func newEventsAddCommand(rootOpts *RootOptions) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "add <label> <YYYY-MM-DD>",
		Short: "Add an important date",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, requirePIN, func(s *session) error {
				e, err := s.svc.AddEvent(s.ctx, args[0], args[1], model.EventKind(kind))
				if err := s.saved(err); err != nil {
					return err
				}
				return s.out.Render(e, func(w io.Writer) {
					fmt.Fprintf(w, "Added %s on %s (%s, id %s)\n", e.Label, e.Date, e.Kind, e.ID)
				})
			})
		},
	}

	cmd.Flags().StringVar(&kind, "kind", string(model.KindCustom),
		fmt.Sprintf("event kind %v", model.EventKinds))

	return cmd
}

// EventsView is the output of `events list`.
type EventsView struct {
	Upcoming []model.ImportantEvent `json:"upcoming"`
	Past     []model.ImportantEvent `json:"past,omitempty"`
}

func newEventsListCommand(rootOpts *RootOptions) *cobra.Command {
	var past bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the next important dates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, requirePIN, func(s *session) error {
				st := s.svc.Snapshot()
				today := s.svc.Today()
				view := EventsView{Upcoming: orEmpty(feature.UpcomingEvents(st, today))}
				if past {
					view.Past = orEmpty(feature.PastEvents(st, today))
				}
				return s.out.Render(view, func(w io.Writer) {
					writeEvents(w, "Upcoming", view.Upcoming)
					if past {
						fmt.Fprintln(w)
						writeEvents(w, "Past", view.Past)
					}
				})
			})
		},
	}

	cmd.Flags().BoolVar(&past, "past", false, "also list past dates")

	return cmd
}

func newEventsDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an important date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, requirePIN, func(s *session) error {
				if err := s.saved(s.svc.DeleteEvent(s.ctx, args[0])); err != nil {
					return err
				}
				return s.out.Render(map[string]string{"deleted": args[0]}, func(w io.Writer) {
					fmt.Fprintf(w, "Deleted event %s\n", args[0])
				})
			})
		},
	}
}

func writeEvents(w io.Writer, title string, events []model.ImportantEvent) {
	if len(events) == 0 {
		fmt.Fprintf(w, "%s: none\n", title)
		return
	}
	fmt.Fprintf(w, "%s:\n", title)
	for _, e := range events {
		fmt.Fprintf(w, "  %s  %-12s %s (id %s)\n", e.Date, e.Kind, e.Label, e.ID)
	}
}

// orEmpty returns an empty slice for nil so JSON shows [] instead of null.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/beloved/internal/feature"
)

// NewNotesCommand creates the notes command group.
func NewNotesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Keep notes about wishes and things to remember",
	}

	var content, category string
	add := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, requirePIN, func(s *session) error {
				n, err := s.svc.AddNote(s.ctx, args[0], content, category)
				if err := s.saved(err); err != nil {
					return err
				}
				return s.out.Render(n, func(w io.Writer) {
					fmt.Fprintf(w, "Added note %q (id %s)\n", n.Title, n.ID)
				})
			})
		},
	}
	add.Flags().StringVar(&content, "content", "", "note body")
	add.Flags().StringVar(&category, "category", "", "free-form category")

	var filter string
	list := &cobra.Command{
		Use:   "list",
		Short: "List notes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, requirePIN, func(s *session) error {
				notes := orEmpty(feature.Notes(s.svc.Snapshot(), filter))
				return s.out.Render(notes, func(w io.Writer) {
					if len(notes) == 0 {
						fmt.Fprintln(w, "No notes.")
						return
					}
					for _, n := range notes {
						fmt.Fprintf(w, "%s  %s", n.DateAdded, n.Title)
						if n.Category != "" {
							fmt.Fprintf(w, " [%s]", n.Category)
						}
						fmt.Fprintf(w, " (id %s)\n", n.ID)
						if n.Content != "" {
							fmt.Fprintf(w, "    %s\n", n.Content)
						}
					}
				})
			})
		},
	}
	list.Flags().StringVar(&filter, "category", "", "only notes in this category")

	remove := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, requirePIN, func(s *session) error {
				if err := s.saved(s.svc.DeleteNote(s.ctx, args[0])); err != nil {
					return err
				}
				return s.out.Render(map[string]string{"deleted": args[0]}, func(w io.Writer) {
					fmt.Fprintf(w, "Deleted note %s\n", args[0])
				})
			})
		},
	}

	cmd.AddCommand(add, list, remove)
	return cmd
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/beloved/internal/codec"
)

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the decrypted state as canonical JSON",
		Long: `Print the decrypted state as canonical JSON.

The output is the exact document that is encrypted into the stored record,
regardless of --format.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, requirePIN, func(s *session) error {
				doc, err := codec.MarshalCanonical(s.svc.Snapshot())
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(s.out.Writer, "%s\n", doc)
				return err
			})
		},
	}
}

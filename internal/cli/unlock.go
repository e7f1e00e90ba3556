package cli

import (
	"github.com/spf13/cobra"
)

// NewUnlockCommand creates the unlock command.
func NewUnlockCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "unlock",
		Short: "Check a PIN against the stored one",
		Long: `Check a PIN against the stored one.

Exits 0 when --pin matches and 1 otherwise. The first-run PIN is 5566;
change it with 'beloved settings pin'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, openAccess, func(s *session) error {
				if err := s.gate.Unlock(rootOpts.PIN); err != nil {
					return err
				}
				return s.out.Success("unlocked")
			})
		},
	}
}

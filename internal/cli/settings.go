package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/beloved/internal/model"
)

// SettingsView is the output of the settings commands. The PIN is never
// printed.
type SettingsView struct {
	Language string      `json:"language"`
	Theme    model.Theme `json:"theme"`
}

func newSettingsView(set model.Settings) SettingsView {
	return SettingsView{Language: set.Language, Theme: set.Theme}
}

func writeSettings(w io.Writer, v SettingsView) {
	fmt.Fprintf(w, "Language: %s\n", v.Language)
	fmt.Fprintf(w, "Theme:    %s\n", v.Theme)
}

// NewSettingsCommand creates the settings command group.
func NewSettingsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Language, theme and PIN",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, requirePIN, func(s *session) error {
				view := newSettingsView(s.svc.Snapshot().Settings)
				return s.out.Render(view, func(w io.Writer) { writeSettings(w, view) })
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "language <tag>",
		Short: fmt.Sprintf("Set the display language %v", model.SupportedLanguages),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, requirePIN, func(s *session) error {
				set, err := s.svc.SetLanguage(s.ctx, args[0])
				if err := s.saved(err); err != nil {
					return err
				}
				view := newSettingsView(set)
				return s.out.Render(view, func(w io.Writer) { writeSettings(w, view) })
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "theme <light|dark|colorblind>",
		Short: "Set the display theme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, requirePIN, func(s *session) error {
				set, err := s.svc.SetTheme(s.ctx, model.Theme(strings.ToLower(args[0])))
				if err := s.saved(err); err != nil {
					return err
				}
				view := newSettingsView(set)
				return s.out.Render(view, func(w io.Writer) { writeSettings(w, view) })
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "pin <current> <new> <confirm>",
		Short: "Change the PIN",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, requirePIN, func(s *session) error {
				if err := s.saved(s.svc.ChangePIN(s.ctx, args[0], args[1], args[2])); err != nil {
					return err
				}
				return s.out.Success("PIN changed")
			})
		},
	})

	return cmd
}

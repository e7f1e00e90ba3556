package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/beloved/internal/model"
)

// GiftIdeaView is the output of `gift idea`.
type GiftIdeaView struct {
	Category model.GiftCategory `json:"category"`
	Idea     string             `json:"idea"`
}

// PreferenceView is one row of `gift prefs`.
type PreferenceView struct {
	Category model.GiftCategory `json:"category"`
	Enabled  bool               `json:"enabled"`
}

// NewGiftCommand creates the gift command group.
func NewGiftCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gift",
		Short: "Gift ideas from enabled preference categories",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "idea",
		Short: "Suggest a gift from a random enabled category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, requirePIN, func(s *session) error {
				idea, err := s.svc.SuggestGift(s.svc.Snapshot())
				if err != nil {
					return err
				}
				view := GiftIdeaView{Category: idea.Category, Idea: idea.Idea}
				return s.out.Render(view, func(w io.Writer) {
					fmt.Fprintf(w, "%s (%s)\n", view.Idea, view.Category)
				})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "prefs",
		Short: "List gift categories and whether each is enabled",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, requirePIN, func(s *session) error {
				prefs := s.svc.Snapshot().Preferences
				view := make([]PreferenceView, 0, len(model.GiftCategories))
				for _, c := range model.GiftCategories {
					view = append(view, PreferenceView{Category: c, Enabled: prefs[c]})
				}
				return s.out.Render(view, func(w io.Writer) {
					for _, p := range view {
						mark := "[ ]"
						if p.Enabled {
							mark = "[x]"
						}
						fmt.Fprintf(w, "%s %s\n", mark, p.Category)
					}
				})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle <category>",
		Short: "Enable or disable a gift category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, requirePIN, func(s *session) error {
				category := model.GiftCategory(strings.ToLower(strings.TrimSpace(args[0])))
				enabled, err := s.svc.TogglePreference(s.ctx, category)
				if err := s.saved(err); err != nil {
					return err
				}
				view := PreferenceView{Category: category, Enabled: enabled}
				return s.out.Render(view, func(w io.Writer) {
					state := "disabled"
					if enabled {
						state = "enabled"
					}
					fmt.Fprintf(w, "%s %s\n", category, state)
				})
			})
		},
	})

	return cmd
}

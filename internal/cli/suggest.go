package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/beloved/internal/feature"
	"github.com/roach88/beloved/internal/model"
)

// SuggestionListView is the output of `suggest list`.
type SuggestionListView struct {
	Filter      feature.Filter          `json:"filter"`
	Query       string                  `json:"query,omitempty"`
	Suggestions []model.DailySuggestion `json:"suggestions"`
	Stats       StatsView               `json:"stats"`
}

// StatsView is the JSON form of feature.DailyStats.
type StatsView struct {
	Total     int     `json:"total"`
	Rated     int     `json:"rated"`
	Favorites int     `json:"favorites"`
	Average   float64 `json:"average"`
}

// CycleSuggestionsView is the output of `suggest cycle`.
type CycleSuggestionsView struct {
	Phase       model.SuggestionPhase   `json:"phase"`
	Index       int                     `json:"index"`
	NextIndex   int                     `json:"nextIndex"`
	Suggestions []string                `json:"suggestions"`
	Rated       []model.CycleSuggestion `json:"rated"`
}

// NewSuggestCommand creates the suggest command group.
func NewSuggestCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Daily and cycle-aware care suggestions",
	}

	cmd.AddCommand(newSuggestDailyCommand(rootOpts))
	cmd.AddCommand(newSuggestListCommand(rootOpts))
	cmd.AddCommand(newSuggestRateCommand(rootOpts))
	cmd.AddCommand(newSuggestFavoriteCommand(rootOpts))
	cmd.AddCommand(newSuggestCycleCommand(rootOpts))
	cmd.AddCommand(newSuggestRateCycleCommand(rootOpts))

	return cmd
}

func newSuggestDailyCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "daily",
		Short: "Issue a new daily suggestion",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, requirePIN, func(s *session) error {
				d, err := s.svc.IssueDaily(s.ctx)
				if err := s.saved(err); err != nil {
					return err
				}
				return s.out.Render(d, func(w io.Writer) {
					fmt.Fprintln(w, d.Text)
					fmt.Fprintf(w, "(id %s)\n", d.ID)
				})
			})
		},
	}
}

func newSuggestListCommand(rootOpts *RootOptions) *cobra.Command {
	var filter, query string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List issued daily suggestions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := feature.Filter(filter)
			if !f.Valid() {
				return report(rootOpts.formatter(cmd), usageError("invalid filter %q: must be one of %v", filter, feature.Filters))
			}
			return rootOpts.run(cmd, requirePIN, func(s *session) error {
				st := s.svc.Snapshot()
				stats := feature.Stats(st)
				view := SuggestionListView{
					Filter:      f,
					Query:       query,
					Suggestions: feature.ListDaily(st, f, query),
					Stats: StatsView{
						Total:     stats.Total,
						Rated:     stats.Rated,
						Favorites: stats.Favorites,
						Average:   stats.Average,
					},
				}
				return s.out.Render(view, func(w io.Writer) {
					if len(view.Suggestions) == 0 {
						fmt.Fprintln(w, "No suggestions.")
					}
					for _, d := range view.Suggestions {
						fmt.Fprintf(w, "%s  %s  %s  %s\n", d.ID, d.DateIssued, ratingMark(d.Rating, d.IsFavorite), d.Text)
					}
					fmt.Fprintf(w, "\n%d total, %d rated (average %.1f), %d favorites\n",
						stats.Total, stats.Rated, stats.Average, stats.Favorites)
				})
			})
		},
	}

	cmd.Flags().StringVar(&filter, "filter", string(feature.FilterAll), "filter (all|topRated|unrated|lowRated|favorites)")
	cmd.Flags().StringVarP(&query, "query", "q", "", "only suggestions containing this text")

	return cmd
}

func newSuggestRateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rate <id> <1-5>",
		Short: "Rate a daily suggestion",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, requirePIN, func(s *session) error {
				rating, err := parseRating(args[1])
				if err != nil {
					return err
				}
				d, err := s.svc.RateDaily(s.ctx, args[0], rating)
				if err := s.saved(err); err != nil {
					return err
				}
				return s.out.Render(d, func(w io.Writer) {
					fmt.Fprintf(w, "Rated %s: %s\n", ratingMark(d.Rating, d.IsFavorite), d.Text)
				})
			})
		},
	}
}

func newSuggestFavoriteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "favorite <id>",
		Short: "Toggle the favorite flag of a daily suggestion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, requirePIN, func(s *session) error {
				d, err := s.svc.ToggleFavorite(s.ctx, args[0])
				if err := s.saved(err); err != nil {
					return err
				}
				return s.out.Render(d, func(w io.Writer) {
					if d.IsFavorite {
						fmt.Fprintf(w, "Added to favorites: %s\n", d.Text)
					} else {
						fmt.Fprintf(w, "Removed from favorites: %s\n", d.Text)
					}
				})
			})
		},
	}
}

func newSuggestCycleCommand(rootOpts *RootOptions) *cobra.Command {
	var index int

	cmd := &cobra.Command{
		Use:   "cycle",
		Short: "Show suggestions for the current cycle phase",
		Long: `Show suggestions for the current cycle phase.

Two suggestions are shown at a time. Pass the printed next index with
--index to see the following pair.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, requirePIN, func(s *session) error {
				st := s.svc.Snapshot()
				phase, texts := s.svc.CycleSuggestions(st, index)
				total := len(s.svc.Catalog().Cycle(st.Settings.Language, phase))
				view := CycleSuggestionsView{
					Phase:       phase,
					Index:       index,
					NextIndex:   feature.NextCycleIndex(index, total),
					Suggestions: texts,
					Rated:       feature.RatedCycleSuggestions(st, phase),
				}
				if view.Rated == nil {
					view.Rated = []model.CycleSuggestion{}
				}
				return s.out.Render(view, func(w io.Writer) {
					fmt.Fprintf(w, "Phase: %s\n", view.Phase)
					for _, t := range view.Suggestions {
						fmt.Fprintf(w, "  - %s\n", t)
					}
					fmt.Fprintf(w, "More: --index %d\n", view.NextIndex)
					if len(view.Rated) > 0 {
						fmt.Fprintln(w, "\nRated for this phase:")
						for _, c := range view.Rated {
							fmt.Fprintf(w, "  %s  %s\n", ratingMark(c.Rating, c.IsFavorite), c.Text)
						}
					}
				})
			})
		},
	}

	cmd.Flags().IntVar(&index, "index", 0, "rotation index")

	return cmd
}

func newSuggestRateCycleCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rate-cycle <text> <1-5>",
		Short: "Rate a cycle suggestion for the current phase",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, requirePIN, func(s *session) error {
				rating, err := parseRating(args[1])
				if err != nil {
					return err
				}
				c, err := s.svc.RateCycleSuggestion(s.ctx, args[0], rating)
				if err := s.saved(err); err != nil {
					return err
				}
				return s.out.Render(c, func(w io.Writer) {
					fmt.Fprintf(w, "Rated %s for %s: %s\n", ratingMark(c.Rating, c.IsFavorite), c.Phase, c.Text)
				})
			})
		},
	}
}

func parseRating(arg string) (int, error) {
	rating, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, &feature.InputError{Field: "rating", Message: fmt.Sprintf("%q is not a number", arg)}
	}
	return rating, nil
}

// ratingMark renders a rating as five stars, "*" for favorites.
func ratingMark(rating int, favorite bool) string {
	stars := strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
	if rating == 0 {
		stars = "-----"
	}
	if favorite {
		return "*" + stars
	}
	return " " + stars
}

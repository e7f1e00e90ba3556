package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/beloved/internal/feature"
	"github.com/roach88/beloved/internal/model"
)

// StatusView is the dashboard: cycle status, today's suggestion and the next
// important dates.
type StatusView struct {
	Cycle          CycleView              `json:"cycle"`
	Suggestion     *model.DailySuggestion `json:"suggestion,omitempty"`
	UpcomingEvents []model.ImportantEvent `json:"upcomingEvents"`
}

// CycleView is the JSON form of feature.CycleStatus.
type CycleView struct {
	Today                  model.Date   `json:"today"`
	NextEventDate          model.Date   `json:"nextEventDate"`
	DaysUntil              int          `json:"daysUntil"`
	DayInCycle             int          `json:"dayInCycle"`
	Phase                  string       `json:"phase"`
	Mood                   string       `json:"mood"`
	SuggestionPhase        string       `json:"suggestionPhase"`
	Progress               float64      `json:"progress"`
	AverageCycleLengthDays int          `json:"averageCycleLengthDays"`
	History                []model.Date `json:"history"`
}

func newCycleView(c feature.CycleStatus) CycleView {
	history := c.History
	if history == nil {
		history = []model.Date{}
	}
	return CycleView{
		Today:                  c.Today,
		NextEventDate:          c.NextEventDate,
		DaysUntil:              c.DaysUntil,
		DayInCycle:             c.DayInCycle,
		Phase:                  string(c.Phase),
		Mood:                   string(c.Mood),
		SuggestionPhase:        string(c.SuggestionPhase),
		Progress:               c.Progress,
		AverageCycleLengthDays: c.AverageLength,
		History:                history,
	}
}

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the cycle status, today's suggestion and upcoming dates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, requirePIN, runStatus)
		},
	}
}

func runStatus(s *session) error {
	st := s.svc.Snapshot()
	today := s.svc.Today()

	view := StatusView{
		Cycle:          newCycleView(feature.Status(st, today)),
		UpcomingEvents: orEmpty(feature.UpcomingEvents(st, today)),
	}
	if latest, ok := feature.Latest(st); ok {
		view.Suggestion = &latest
	}

	return s.out.Render(view, func(w io.Writer) {
		writeCycle(w, view.Cycle)
		fmt.Fprintln(w)
		if view.Suggestion != nil {
			fmt.Fprintf(w, "Latest suggestion (%s): %s\n", view.Suggestion.DateIssued, view.Suggestion.Text)
		} else {
			fmt.Fprintln(w, "No suggestion yet. Run `beloved suggest daily`.")
		}
		fmt.Fprintln(w)
		writeEvents(w, "Upcoming", view.UpcomingEvents)
	})
}

func writeCycle(w io.Writer, c CycleView) {
	fmt.Fprintf(w, "Today:          %s (day %d of cycle)\n", c.Today, c.DayInCycle)
	fmt.Fprintf(w, "Phase:          %s\n", c.Phase)
	fmt.Fprintf(w, "Mood:           %s\n", c.Mood)
	fmt.Fprintf(w, "Next expected:  %s (in %d days)\n", c.NextEventDate, c.DaysUntil)
	fmt.Fprintf(w, "Average length: %d days\n", c.AverageCycleLengthDays)
	fmt.Fprintf(w, "Progress:       %.0f%%\n", c.Progress)
}

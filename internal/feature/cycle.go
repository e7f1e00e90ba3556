package feature

import (
	"context"
	"slices"

	"github.com/roach88/beloved/internal/model"
	"github.com/roach88/beloved/internal/predict"
)

// CycleSuggestionsShown is how many cycle suggestions are shown at once.
const CycleSuggestionsShown = 2

// CycleStatus is the derived view of the cycle for one day.
type CycleStatus struct {
	Today           model.Date
	NextEventDate   model.Date
	DaysUntil       int
	DayInCycle      int
	Phase           model.Phase
	Mood            predict.Mood
	SuggestionPhase model.SuggestionPhase
	Progress        float64
	AverageLength   int
	History         []model.Date
}

// Status derives the cycle status for today from a snapshot.
func Status(st model.State, today model.Date) CycleStatus {
	c := st.Cycle
	days := predict.DaysUntilNext(c, today)
	return CycleStatus{
		Today:           today,
		NextEventDate:   c.NextEventDate,
		DaysUntil:       days,
		DayInCycle:      predict.DayInCycle(c, today),
		Phase:           predict.CurrentPhase(c, today),
		Mood:            predict.MoodWindow(days),
		SuggestionPhase: predict.SuggestionPhase(c, today),
		Progress:        predict.Progress(c, today),
		AverageLength:   c.AverageCycleLengthDays,
		History:         append([]model.Date(nil), c.History...),
	}
}

// RecordPeriod records a cycle start date and re-derives the cycle values.
// Returns *predict.InvalidDateError for a malformed or future date.
func (s *Service) RecordPeriod(ctx context.Context, date string) (model.CycleData, error) {
	today := s.Today()
	var next model.CycleData
	_, err := s.store.Update(ctx, func(st *model.State) error {
		c, err := predict.RecordNewHistoryEntry(st.Cycle, cleanText(date), today)
		if err != nil {
			return err
		}
		st.Cycle = c
		next = c
		return nil
	})
	return keep(next, err)
}

// CycleSuggestions returns the suggestions shown at rotation index for the
// phase today falls in. Advance the index with NextCycleIndex.
func (s *Service) CycleSuggestions(st model.State, index int) (model.SuggestionPhase, []string) {
	phase := predict.SuggestionPhase(st.Cycle, s.Today())
	texts := s.catalog.Cycle(st.Settings.Language, phase)
	return phase, rotate(texts, index, CycleSuggestionsShown)
}

// NextCycleIndex advances a rotation index past the suggestions just shown.
func NextCycleIndex(index, total int) int {
	if total <= 0 {
		return 0
	}
	return (index + CycleSuggestionsShown) % total
}

// rotate returns n items starting at index, wrapping around.
func rotate(items []string, index, n int) []string {
	if len(items) == 0 {
		return nil
	}
	index = ((index % len(items)) + len(items)) % len(items)
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, items[(index+i)%len(items)])
	}
	return out
}

// RateCycleSuggestion records a rated cycle suggestion tagged with the
// phase today falls in (pms overrides the phase).
func (s *Service) RateCycleSuggestion(ctx context.Context, text string, rating int) (model.CycleSuggestion, error) {
	if err := checkRating(rating); err != nil {
		return model.CycleSuggestion{}, err
	}
	text = cleanText(text)
	if text == "" {
		return model.CycleSuggestion{}, &InputError{Field: "text", Message: "suggestion text is required"}
	}

	today := s.Today()
	var rated model.CycleSuggestion
	_, err := s.store.Update(ctx, func(st *model.State) error {
		rated = model.CycleSuggestion{
			ID:     s.ids.NewID(),
			Text:   text,
			Phase:  predict.SuggestionPhase(st.Cycle, today),
			Rating: rating,
		}
		st.CycleSuggestions = append(st.CycleSuggestions, rated)
		return nil
	})
	return keep(rated, err)
}

// RatedCycleSuggestions returns the rated cycle suggestions for phase, best
// first. An empty phase returns all of them.
func RatedCycleSuggestions(st model.State, phase model.SuggestionPhase) []model.CycleSuggestion {
	var out []model.CycleSuggestion
	for _, c := range st.CycleSuggestions {
		if phase == "" || c.Phase == phase {
			out = append(out, c)
		}
	}
	slices.SortStableFunc(out, func(a, b model.CycleSuggestion) int {
		return b.Rating - a.Rating
	})
	return out
}

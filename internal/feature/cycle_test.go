package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/beloved/internal/model"
	"github.com/roach88/beloved/internal/predict"
)

func TestRecordPeriod(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.RecordPeriod(f.ctx, "2024-02-01")
	require.NoError(t, err)
	c, err := f.svc.RecordPeriod(f.ctx, " 2024-03-01 ")
	require.NoError(t, err)

	assert.Equal(t, 29, c.AverageCycleLengthDays)
	assert.Equal(t, "2024-03-30", c.NextEventDate.String())
	assert.Equal(t, c, f.store.Read().Cycle)
	assert.Equal(t, 2, f.slots.Puts())
}

func TestRecordPeriod_RejectsInvalidDate(t *testing.T) {
	f := newFixture(t)
	before := f.store.Read()

	_, err := f.svc.RecordPeriod(f.ctx, "2024-03-11")
	require.Error(t, err)
	assert.True(t, predict.IsInvalidDate(err))

	_, err = f.svc.RecordPeriod(f.ctx, "not a date")
	assert.True(t, predict.IsInvalidDate(err))

	assert.Equal(t, before, f.store.Read())
	assert.Equal(t, 0, f.slots.Puts())
}

func TestStatus(t *testing.T) {
	st := model.Default(model.MustParseDate(today))
	st.Cycle.NextEventDate = model.MustParseDate("2024-03-13") // 3 days out

	s := Status(st, model.MustParseDate(today))
	assert.Equal(t, 3, s.DaysUntil)
	assert.Equal(t, 25, s.DayInCycle)
	assert.Equal(t, model.PhaseLuteal, s.Phase)
	assert.Equal(t, predict.MoodPMS, s.Mood)
	assert.Equal(t, model.SuggestionPMS, s.SuggestionPhase)
	assert.InDelta(t, 89.2857, s.Progress, 0.001)
	assert.Equal(t, 28, s.AverageLength)
}

func TestCycleSuggestions_Rotation(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.SetLanguage(f.ctx, "en")
	require.NoError(t, err)
	st := f.store.Read()

	// Default state: next event 28 days out, so day 0 of the cycle.
	phase, first := f.svc.CycleSuggestions(st, 0)
	assert.Equal(t, model.SuggestionMenstrual, phase)
	texts := f.svc.Catalog().Cycle("en", phase)
	assert.Equal(t, texts[:2], first)

	next := NextCycleIndex(0, len(texts))
	assert.Equal(t, 2, next)
	_, second := f.svc.CycleSuggestions(st, next)
	assert.Equal(t, texts[2:4], second)

	// Index 4 of 5 wraps around.
	_, last := f.svc.CycleSuggestions(st, 4)
	assert.Equal(t, []string{texts[4], texts[0]}, last)

	assert.Equal(t, 1, NextCycleIndex(4, len(texts)))
	assert.Equal(t, 0, NextCycleIndex(3, 0))
}

func TestRotate(t *testing.T) {
	items := []string{"a", "b", "c"}
	assert.Equal(t, []string{"c", "a"}, rotate(items, -1, 2))
	assert.Equal(t, []string{"b", "c"}, rotate(items, 4, 2))
	assert.Nil(t, rotate(nil, 0, 2))
}

func TestRateCycleSuggestion(t *testing.T) {
	f := newFixture(t)

	// Move the next event three days out: pms window.
	_, err := f.store.Update(f.ctx, func(st *model.State) error {
		st.Cycle.NextEventDate = model.MustParseDate("2024-03-13")
		return nil
	})
	require.NoError(t, err)

	rated, err := f.svc.RateCycleSuggestion(f.ctx, "Bring chocolate", 5)
	require.NoError(t, err)
	assert.Equal(t, model.SuggestionPMS, rated.Phase)
	assert.Equal(t, 5, rated.Rating)

	_, err = f.svc.RateCycleSuggestion(f.ctx, "Bring chocolate", 3)
	require.NoError(t, err)
	assert.Len(t, f.store.Read().CycleSuggestions, 2, "rated suggestions accumulate")

	_, err = f.svc.RateCycleSuggestion(f.ctx, "x", 9)
	assert.ErrorIs(t, err, ErrInvalidRating)
	_, err = f.svc.RateCycleSuggestion(f.ctx, "   ", 3)
	assert.True(t, IsInputError(err))
}

func TestRatedCycleSuggestions(t *testing.T) {
	st := model.Default(model.MustParseDate(today))
	st.CycleSuggestions = []model.CycleSuggestion{
		{ID: "1", Text: "a", Phase: model.SuggestionPMS, Rating: 3},
		{ID: "2", Text: "b", Phase: model.SuggestionLuteal, Rating: 5},
		{ID: "3", Text: "c", Phase: model.SuggestionPMS, Rating: 5},
		{ID: "4", Text: "d", Phase: model.SuggestionPMS, Rating: 3},
	}

	pms := RatedCycleSuggestions(st, model.SuggestionPMS)
	require.Len(t, pms, 3)
	assert.Equal(t, []string{"3", "1", "4"}, []string{pms[0].ID, pms[1].ID, pms[2].ID})
	assert.Len(t, RatedCycleSuggestions(st, ""), 4)
}

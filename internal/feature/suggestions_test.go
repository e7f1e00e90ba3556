package feature

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/beloved/internal/model"
	"github.com/roach88/beloved/internal/slot"
)

func TestIssueDaily_UsesConfiguredLanguage(t *testing.T) {
	f := newFixture(t)

	d, err := f.svc.IssueDaily(f.ctx)
	require.NoError(t, err)

	assert.Equal(t, "id-0001", d.ID)
	assert.Equal(t, today, d.DateIssued.String())
	assert.Equal(t, CategoryDaily, d.Category)
	assert.Contains(t, f.svc.Catalog().Daily("pl"), d.Text, "default language is pl")

	st := f.store.Read()
	require.Len(t, st.DailySuggestions, 1)
	assert.Equal(t, d, st.DailySuggestions[0])
	assert.Equal(t, 1, f.slots.Puts())
}

func TestIssueDaily_UnknownLanguageFallsBackToEnglish(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.SetLanguage(f.ctx, "de")
	require.NoError(t, err)

	d, err := f.svc.IssueDaily(f.ctx)
	require.NoError(t, err)
	assert.Contains(t, f.svc.Catalog().Daily("en"), d.Text)
}

func TestIssueDaily_PrefersUnusedTexts(t *testing.T) {
	f := newFixture(t)
	texts := f.svc.Catalog().Daily("pl")

	seen := map[string]bool{}
	for range texts {
		d, err := f.svc.IssueDaily(f.ctx)
		require.NoError(t, err)
		assert.False(t, seen[d.Text], "text %q repeated before the table was exhausted", d.Text)
		seen[d.Text] = true
	}
	assert.Len(t, seen, len(texts))

	// Exhausted: any text may be issued again.
	d, err := f.svc.IssueDaily(f.ctx)
	require.NoError(t, err)
	assert.Contains(t, texts, d.Text)
}

func TestIssueDaily_CapDropsOldest(t *testing.T) {
	f := newFixture(t)

	var ids []string
	for i := 0; i < model.MaxDailySuggestions+7; i++ {
		d, err := f.svc.IssueDaily(f.ctx)
		require.NoError(t, err)
		ids = append(ids, d.ID)
	}

	st := f.store.Read()
	require.Len(t, st.DailySuggestions, model.MaxDailySuggestions)
	for i, d := range st.DailySuggestions {
		// Newest first: position i holds the (len-1-i)th issued id.
		assert.Equal(t, ids[len(ids)-1-i], d.ID)
	}
}

func TestPrependDaily(t *testing.T) {
	var list []model.DailySuggestion
	for i := 0; i < model.MaxDailySuggestions; i++ {
		list = append(list, model.DailySuggestion{ID: fmt.Sprintf("old-%02d", i)})
	}

	out := PrependDaily(list, model.DailySuggestion{ID: "new"})
	require.Len(t, out, model.MaxDailySuggestions)
	assert.Equal(t, "new", out[0].ID)
	assert.Equal(t, "old-00", out[1].ID)
	assert.Equal(t, fmt.Sprintf("old-%02d", model.MaxDailySuggestions-2), out[len(out)-1].ID)
	assert.Equal(t, "old-00", list[0].ID, "input must not be modified")

	assert.Len(t, PrependDaily(nil, model.DailySuggestion{ID: "only"}), 1)
}

func TestRateDaily(t *testing.T) {
	f := newFixture(t)
	d, err := f.svc.IssueDaily(f.ctx)
	require.NoError(t, err)

	rated, err := f.svc.RateDaily(f.ctx, d.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, rated.Rating)
	assert.Equal(t, 4, f.store.Read().DailySuggestions[0].Rating)

	_, err = f.svc.RateDaily(f.ctx, d.ID, 6)
	assert.ErrorIs(t, err, ErrInvalidRating)
	_, err = f.svc.RateDaily(f.ctx, d.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = f.svc.RateDaily(f.ctx, "missing", 3)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 2, f.slots.Puts(), "rejected ratings must not write")
}

func TestToggleFavorite(t *testing.T) {
	f := newFixture(t)
	d, err := f.svc.IssueDaily(f.ctx)
	require.NoError(t, err)

	on, err := f.svc.ToggleFavorite(f.ctx, d.ID)
	require.NoError(t, err)
	assert.True(t, on.IsFavorite)

	off, err := f.svc.ToggleFavorite(f.ctx, d.ID)
	require.NoError(t, err)
	assert.False(t, off.IsFavorite)
}

func TestMutation_PersistenceFailureStillApplies(t *testing.T) {
	f := newFixture(t)
	f.slots.FailPuts(slot.ReasonUnavailable, errors.New("read-only filesystem"))

	d, err := f.svc.IssueDaily(f.ctx)
	require.Error(t, err)
	assert.True(t, slot.IsPersistenceError(err))
	assert.NotEmpty(t, d.ID, "result is valid despite the persistence warning")
	assert.Len(t, f.store.Read().DailySuggestions, 1)
}

func TestListDaily(t *testing.T) {
	d := model.MustParseDate
	st := model.Default(d(today))
	st.DailySuggestions = []model.DailySuggestion{
		{ID: "a", Text: "Buy flowers", DateIssued: d("2024-03-09"), Rating: 2},
		{ID: "b", Text: "Write a note", DateIssued: d("2024-03-08")},
		{ID: "c", Text: "Cook dinner", DateIssued: d("2024-03-07"), Rating: 5},
		{ID: "d", Text: "Sunset walk", DateIssued: d("2024-03-06"), Rating: 4, IsFavorite: true},
		{ID: "e", Text: "Buy chocolate", DateIssued: d("2024-03-05"), Rating: 5},
		{ID: "f", Text: "Plan a date", DateIssued: d("2024-03-04"), IsFavorite: true},
	}

	ids := func(list []model.DailySuggestion) []string {
		var out []string
		for _, s := range list {
			out = append(out, s.ID)
		}
		return out
	}

	assert.Equal(t, []string{"d", "f", "c", "e", "a", "b"}, ids(ListDaily(st, FilterAll, "")))
	assert.Equal(t, []string{"d", "c", "e"}, ids(ListDaily(st, FilterTopRated, "")))
	assert.Equal(t, []string{"f", "b"}, ids(ListDaily(st, FilterUnrated, "")))
	assert.Equal(t, []string{"a"}, ids(ListDaily(st, FilterLowRated, "")))
	assert.Equal(t, []string{"d", "f"}, ids(ListDaily(st, FilterFavorites, "")))
	assert.Equal(t, []string{"e", "a"}, ids(ListDaily(st, FilterAll, "  BUY ")))
	assert.Empty(t, ListDaily(st, FilterFavorites, "buy"))
}

func TestFilter_Valid(t *testing.T) {
	for _, f := range Filters {
		assert.True(t, f.Valid(), f)
	}
	assert.False(t, Filter("best").Valid())
}

func TestStats(t *testing.T) {
	st := model.Default(model.MustParseDate(today))
	st.DailySuggestions = []model.DailySuggestion{
		{ID: "a", Rating: 5, IsFavorite: true},
		{ID: "b", Rating: 2},
		{ID: "c"},
	}
	stats := Stats(st)
	assert.Equal(t, DailyStats{Total: 3, Rated: 2, Favorites: 1, Average: 3.5}, stats)
	assert.Equal(t, DailyStats{}, Stats(model.Default(model.MustParseDate(today))))
}

func TestLatest(t *testing.T) {
	f := newFixture(t)
	_, ok := Latest(f.store.Read())
	assert.False(t, ok)

	d, err := f.svc.IssueDaily(f.ctx)
	require.NoError(t, err)
	latest, ok := Latest(f.store.Read())
	assert.True(t, ok)
	assert.Equal(t, d, latest)
}

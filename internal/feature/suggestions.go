package feature

import (
	"context"
	"slices"
	"strings"

	"github.com/roach88/beloved/internal/model"
)

// CategoryDaily is the category stamped on issued daily suggestions.
const CategoryDaily = "daily"

// Filter selects daily suggestions for listing.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterTopRated  Filter = "topRated"
	FilterUnrated   Filter = "unrated"
	FilterLowRated  Filter = "lowRated"
	FilterFavorites Filter = "favorites"
)

// Filters lists every Filter.
var Filters = []Filter{FilterAll, FilterTopRated, FilterUnrated, FilterLowRated, FilterFavorites}

// Valid reports whether f is a known filter.
func (f Filter) Valid() bool {
	return slices.Contains(Filters, f)
}

// match reports whether d passes the filter.
func (f Filter) match(d model.DailySuggestion) bool {
	switch f {
	case FilterTopRated:
		return d.Rating >= 4
	case FilterUnrated:
		return d.Rating == 0
	case FilterLowRated:
		return d.Rating > 0 && d.Rating <= 2
	case FilterFavorites:
		return d.IsFavorite
	default:
		return true
	}
}

// IssueDaily picks a suggestion text not issued before, in the configured
// language, and records it as today's suggestion. Once every text has been
// used, any text may repeat. The list keeps the newest model.MaxDailySuggestions
// entries.
func (s *Service) IssueDaily(ctx context.Context) (model.DailySuggestion, error) {
	var issued model.DailySuggestion
	_, err := s.store.Update(ctx, func(st *model.State) error {
		texts := s.catalog.Daily(st.Settings.Language)
		used := make(map[string]bool, len(st.DailySuggestions))
		for _, d := range st.DailySuggestions {
			used[d.Text] = true
		}
		available := make([]string, 0, len(texts))
		for _, text := range texts {
			if !used[text] {
				available = append(available, text)
			}
		}
		if len(available) == 0 {
			available = texts
		}

		issued = model.DailySuggestion{
			ID:         s.ids.NewID(),
			Text:       s.pick(available),
			DateIssued: s.Today(),
			Category:   CategoryDaily,
		}
		st.DailySuggestions = PrependDaily(st.DailySuggestions, issued)
		return nil
	})
	return keep(issued, err)
}

// PrependDaily puts d first and drops the oldest entries beyond
// model.MaxDailySuggestions. The order of kept entries is preserved.
func PrependDaily(list []model.DailySuggestion, d model.DailySuggestion) []model.DailySuggestion {
	n := min(len(list), model.MaxDailySuggestions-1)
	out := make([]model.DailySuggestion, 0, n+1)
	out = append(out, d)
	return append(out, list[:n]...)
}

// Latest returns the most recently issued daily suggestion.
func Latest(st model.State) (model.DailySuggestion, bool) {
	if len(st.DailySuggestions) == 0 {
		return model.DailySuggestion{}, false
	}
	return st.DailySuggestions[0], true
}

// RateDaily sets the rating of a daily suggestion.
func (s *Service) RateDaily(ctx context.Context, id string, rating int) (model.DailySuggestion, error) {
	if err := checkRating(rating); err != nil {
		return model.DailySuggestion{}, err
	}
	return s.updateDaily(ctx, id, func(d *model.DailySuggestion) {
		d.Rating = rating
	})
}

// ToggleFavorite flips the favorite flag of a daily suggestion.
func (s *Service) ToggleFavorite(ctx context.Context, id string) (model.DailySuggestion, error) {
	return s.updateDaily(ctx, id, func(d *model.DailySuggestion) {
		d.IsFavorite = !d.IsFavorite
	})
}

func (s *Service) updateDaily(ctx context.Context, id string, fn func(*model.DailySuggestion)) (model.DailySuggestion, error) {
	var updated model.DailySuggestion
	_, err := s.store.Update(ctx, func(st *model.State) error {
		i := slices.IndexFunc(st.DailySuggestions, func(d model.DailySuggestion) bool { return d.ID == id })
		if i < 0 {
			return notFound("suggestion", id)
		}
		fn(&st.DailySuggestions[i])
		updated = st.DailySuggestions[i]
		return nil
	})
	return keep(updated, err)
}

// ListDaily returns the suggestions passing filter whose text contains query
// (case-insensitive), sorted favorites first, then rated before unrated,
// then by rating descending, then newest first.
func ListDaily(st model.State, filter Filter, query string) []model.DailySuggestion {
	query = strings.ToLower(cleanText(query))
	out := make([]model.DailySuggestion, 0, len(st.DailySuggestions))
	for _, d := range st.DailySuggestions {
		if !filter.match(d) {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(d.Text), query) {
			continue
		}
		out = append(out, d)
	}

	slices.SortStableFunc(out, func(a, b model.DailySuggestion) int {
		if a.IsFavorite != b.IsFavorite {
			if a.IsFavorite {
				return -1
			}
			return 1
		}
		if a.Rating != b.Rating {
			// Unrated (0) sorts after every rating.
			return b.Rating - a.Rating
		}
		return b.DateIssued.Compare(a.DateIssued)
	})
	return out
}

// DailyStats summarizes the suggestion history.
type DailyStats struct {
	Total     int
	Rated     int
	Favorites int
	// Average is the mean rating of rated suggestions, 0 if none.
	Average float64
}

// Stats computes DailyStats.
func Stats(st model.State) DailyStats {
	var stats DailyStats
	sum := 0
	for _, d := range st.DailySuggestions {
		stats.Total++
		if d.Rating > 0 {
			stats.Rated++
			sum += d.Rating
		}
		if d.IsFavorite {
			stats.Favorites++
		}
	}
	if stats.Rated > 0 {
		stats.Average = float64(sum) / float64(stats.Rated)
	}
	return stats
}

package feature

import (
	"context"
	"fmt"

	"github.com/roach88/beloved/internal/model"
)

// GiftIdea is a generated gift suggestion.
type GiftIdea struct {
	Category model.GiftCategory
	Idea     string
}

// SuggestGift picks a random enabled category and a random idea from it, in
// the configured language. Returns ErrNoPreferences when nothing is enabled.
func (s *Service) SuggestGift(st model.State) (GiftIdea, error) {
	enabled := st.Preferences.Enabled()
	if len(enabled) == 0 {
		return GiftIdea{}, ErrNoPreferences
	}
	category := enabled[s.rng.IntN(len(enabled))]
	ideas := s.catalog.Gifts(st.Settings.Language, category)
	if len(ideas) == 0 {
		return GiftIdea{}, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	return GiftIdea{Category: category, Idea: s.pick(ideas)}, nil
}

// SetPreference enables or disables a gift category.
func (s *Service) SetPreference(ctx context.Context, category model.GiftCategory, enabled bool) (model.Preferences, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	var prefs model.Preferences
	_, err := s.store.Update(ctx, func(st *model.State) error {
		if st.Preferences == nil {
			st.Preferences = model.Preferences{}
		}
		st.Preferences[category] = enabled
		prefs = st.Preferences
		return nil
	})
	return keep(prefs, err)
}

// TogglePreference flips a gift category and returns its new value.
func (s *Service) TogglePreference(ctx context.Context, category model.GiftCategory) (bool, error) {
	current := s.store.Read().Preferences[category]
	prefs, err := s.SetPreference(ctx, category, !current)
	if prefs == nil {
		return false, err
	}
	return prefs[category], err
}

package feature

import (
	"context"
	"fmt"

	"github.com/roach88/beloved/internal/model"
)

// SetLanguage changes the display language. The tag must be one of
// model.SupportedLanguages; matching is case-insensitive.
func (s *Service) SetLanguage(ctx context.Context, tag string) (model.Settings, error) {
	lang, err := model.ParseLanguage(tag)
	if err != nil {
		return model.Settings{}, &InputError{Field: "language", Message: err.Error()}
	}
	return s.updateSettings(ctx, func(set *model.Settings) error {
		set.Language = lang
		return nil
	})
}

// SetTheme changes the display theme.
func (s *Service) SetTheme(ctx context.Context, theme model.Theme) (model.Settings, error) {
	if !theme.Valid() {
		return model.Settings{}, &InputError{
			Field:   "theme",
			Message: fmt.Sprintf("unknown theme %q: must be one of %v", theme, model.Themes),
		}
	}
	return s.updateSettings(ctx, func(set *model.Settings) error {
		set.Theme = theme
		return nil
	})
}

// ChangePIN replaces the PIN. current must match the stored PIN, next must be
// four digits and confirm must equal next, checked in that order.
func (s *Service) ChangePIN(ctx context.Context, current, next, confirm string) error {
	_, err := s.updateSettings(ctx, func(set *model.Settings) error {
		if current != set.PIN {
			return ErrWrongPIN
		}
		if !model.ValidPIN(next) {
			return ErrPINFormat
		}
		if next != confirm {
			return ErrPINMismatch
		}
		set.PIN = next
		return nil
	})
	return err
}

func (s *Service) updateSettings(ctx context.Context, fn func(*model.Settings) error) (model.Settings, error) {
	var updated model.Settings
	_, err := s.store.Update(ctx, func(st *model.State) error {
		if err := fn(&st.Settings); err != nil {
			return err
		}
		updated = st.Settings
		return nil
	})
	return keep(updated, err)
}

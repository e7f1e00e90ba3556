package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/beloved/internal/model"
)

func TestSetLanguage(t *testing.T) {
	f := newFixture(t)

	set, err := f.svc.SetLanguage(f.ctx, "EN")
	require.NoError(t, err)
	assert.Equal(t, "en", set.Language)

	set, err = f.svc.SetLanguage(f.ctx, "tw")
	require.NoError(t, err)
	assert.Equal(t, "tw", set.Language)

	_, err = f.svc.SetLanguage(f.ctx, "fr")
	assert.True(t, IsInputError(err))
	assert.Equal(t, "tw", f.store.Read().Settings.Language)
}

func TestSetTheme(t *testing.T) {
	f := newFixture(t)

	set, err := f.svc.SetTheme(f.ctx, model.ThemeColorblind)
	require.NoError(t, err)
	assert.Equal(t, model.ThemeColorblind, set.Theme)

	_, err = f.svc.SetTheme(f.ctx, "neon")
	assert.True(t, IsInputError(err))
}

func TestChangePIN(t *testing.T) {
	tests := []struct {
		name                   string
		current, next, confirm string
		want                   error
	}{
		{"wrong current", "0000", "1234", "1234", ErrWrongPIN},
		{"too short", model.DefaultPIN, "123", "123", ErrPINFormat},
		{"not digits", model.DefaultPIN, "12a4", "12a4", ErrPINFormat},
		{"mismatch", model.DefaultPIN, "1234", "1243", ErrPINMismatch},
		{"wrong current wins over format", "0000", "x", "y", ErrWrongPIN},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			err := f.svc.ChangePIN(f.ctx, tt.current, tt.next, tt.confirm)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, model.DefaultPIN, f.store.Read().Settings.PIN)
			assert.Equal(t, 0, f.slots.Puts())
		})
	}

	f := newFixture(t)
	require.NoError(t, f.svc.ChangePIN(f.ctx, model.DefaultPIN, "2468", "2468"))
	assert.Equal(t, "2468", f.store.Read().Settings.PIN)
}

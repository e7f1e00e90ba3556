package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/beloved/internal/model"
)

func TestSuggestGift_NoPreferences(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.SuggestGift(f.store.Read())
	assert.ErrorIs(t, err, ErrNoPreferences)
}

func TestSuggestGift_OnlyEnabledCategories(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.SetPreference(f.ctx, model.GiftBooks, true)
	require.NoError(t, err)
	_, err = f.svc.SetPreference(f.ctx, model.GiftArt, true)
	require.NoError(t, err)

	st := f.store.Read()
	for i := 0; i < 50; i++ {
		idea, err := f.svc.SuggestGift(st)
		require.NoError(t, err)
		assert.Contains(t, []model.GiftCategory{model.GiftBooks, model.GiftArt}, idea.Category)
		assert.Contains(t, f.svc.Catalog().Gifts("pl", idea.Category), idea.Idea)
	}
}

func TestSetPreference(t *testing.T) {
	f := newFixture(t)

	prefs, err := f.svc.SetPreference(f.ctx, model.GiftMusic, true)
	require.NoError(t, err)
	assert.True(t, prefs[model.GiftMusic])
	assert.True(t, f.store.Read().Preferences[model.GiftMusic])

	_, err = f.svc.SetPreference(f.ctx, "pets", true)
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestTogglePreference(t *testing.T) {
	f := newFixture(t)

	on, err := f.svc.TogglePreference(f.ctx, model.GiftFood)
	require.NoError(t, err)
	assert.True(t, on)

	off, err := f.svc.TogglePreference(f.ctx, model.GiftFood)
	require.NoError(t, err)
	assert.False(t, off)

	_, err = f.svc.TogglePreference(f.ctx, "pets")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/admanager/admanager-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePreferenceRepo struct {
	stored  *models.UserPreferences
	findErr error
	saveErr error
}

func (f *fakePreferenceRepo) FindByUserID(ctx context.Context, userID string) (*models.UserPreferences, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if f.stored == nil {
		return nil, errors.New("not found")
	}
	return f.stored, nil
}

func (f *fakePreferenceRepo) Replace(ctx context.Context, prefs *models.UserPreferences) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.stored = prefs
	return nil
}

func TestPreferencesGet(t *testing.T) {
	t.Run("missing record yields neutral defaults", func(t *testing.T) {
		svc := NewPreferencesService(&fakePreferenceRepo{})

		prefs := svc.Get(context.Background(), "user-1")
		require.NotNil(t, prefs)
		assert.Equal(t, "user-1", prefs.UserID)
		assert.Equal(t, models.DefaultAvgMessageLength, prefs.AvgMessageLength)
		assert.Equal(t, 0, prefs.TotalSavedMessages)
		assert.NotNil(t, prefs.PreferredTones)
	})

	t.Run("repo failure yields neutral defaults", func(t *testing.T) {
		svc := NewPreferencesService(&fakePreferenceRepo{findErr: errors.New("db down")})

		prefs := svc.Get(context.Background(), "user-1")
		require.NotNil(t, prefs)
		assert.Equal(t, 0, prefs.TotalSavedMessages)
	})

	t.Run("nil tone map is healed", func(t *testing.T) {
		repo := &fakePreferenceRepo{stored: &models.UserPreferences{UserID: "user-1"}}
		svc := NewPreferencesService(repo)

		prefs := svc.Get(context.Background(), "user-1")
		require.NotNil(t, prefs.PreferredTones)
	})
}

func TestRecordSavedDraft(t *testing.T) {
	t.Run("first save seeds the profile", func(t *testing.T) {
		repo := &fakePreferenceRepo{}
		svc := NewPreferencesService(repo)

		err := svc.RecordSavedDraft(context.Background(), "user-1", "Save 20% today! 🎉", models.ToneUrgent)
		require.NoError(t, err)

		require.NotNil(t, repo.stored)
		assert.Equal(t, 1, repo.stored.TotalSavedMessages)
		assert.Equal(t, 17, repo.stored.AvgMessageLength, "length counted in runes, not bytes")
		assert.Equal(t, 1.0, repo.stored.EmojiUsageRate)
		assert.InDelta(t, 0.05, repo.stored.PreferredTones[models.ToneUrgent], 1e-9)
	})

	t.Run("averages update incrementally", func(t *testing.T) {
		repo := &fakePreferenceRepo{stored: &models.UserPreferences{
			UserID:             "user-1",
			PreferredTones:     map[models.Tone]float64{models.ToneShort: 0.10},
			AvgMessageLength:   100,
			EmojiUsageRate:     1.0,
			TotalSavedMessages: 1,
		}}
		svc := NewPreferencesService(repo)

		err := svc.RecordSavedDraft(context.Background(), "user-1", strings.Repeat("a", 200), models.ToneShort)
		require.NoError(t, err)

		assert.Equal(t, 2, repo.stored.TotalSavedMessages)
		assert.Equal(t, 150, repo.stored.AvgMessageLength)
		assert.InDelta(t, 0.5, repo.stored.EmojiUsageRate, 1e-9)
		assert.InDelta(t, 0.15, repo.stored.PreferredTones[models.ToneShort], 1e-9)
	})

	t.Run("tone affinity caps at one", func(t *testing.T) {
		repo := &fakePreferenceRepo{stored: &models.UserPreferences{
			UserID:             "user-1",
			PreferredTones:     map[models.Tone]float64{models.ToneBold: 0.98},
			AvgMessageLength:   100,
			TotalSavedMessages: 20,
		}}
		svc := NewPreferencesService(repo)

		err := svc.RecordSavedDraft(context.Background(), "user-1", "Bold move.", models.ToneBold)
		require.NoError(t, err)
		assert.Equal(t, 1.0, repo.stored.PreferredTones[models.ToneBold])
	})

	t.Run("save failure surfaces", func(t *testing.T) {
		svc := NewPreferencesService(&fakePreferenceRepo{saveErr: errors.New("db down")})

		err := svc.RecordSavedDraft(context.Background(), "user-1", "content", models.ToneShort)
		require.Error(t, err)
	})
}

func TestContainsEmoji(t *testing.T) {
	assert.True(t, containsEmoji("Great deal! 🎉"))
	assert.True(t, containsEmoji("☀ sunny savings"))
	assert.False(t, containsEmoji("Plain text, no pictures."))
	assert.False(t, containsEmoji(""))
}

package services

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/admanager/admanager-backend/internal/models"
	"github.com/admanager/admanager-backend/internal/repositories"
)

// toneAffinityStep is how much a tone's weight grows each time the user
// saves a draft in that tone. Weights cap at 1.0 and never decay.
const toneAffinityStep = 0.05

// PreferencesService maintains the per-user style profile that biases
// future generation prompts.
type PreferencesService struct {
	preferenceRepo repositories.PreferenceRepository
}

// NewPreferencesService creates a new PreferencesService
func NewPreferencesService(preferenceRepo repositories.PreferenceRepository) *PreferencesService {
	return &PreferencesService{
		preferenceRepo: preferenceRepo,
	}
}

// Get returns the user's preference record, or a fresh neutral record
// if none exists yet. Reads never fail and have no side effects.
func (s *PreferencesService) Get(ctx context.Context, userID string) *models.UserPreferences {
	prefs, err := s.preferenceRepo.FindByUserID(ctx, userID)
	if err != nil {
		return models.DefaultPreferences(userID)
	}
	if prefs.PreferredTones == nil {
		prefs.PreferredTones = map[models.Tone]float64{}
	}
	return prefs
}

// RecordSavedDraft folds one saved draft into the user's rolling
// profile: message length and emoji presence update via incremental
// means, the chosen tone's affinity grows by a fixed step, and the
// whole record is written back as a single replace. Concurrent saves
// are last-writer-wins; this is a best-effort personalization signal.
func (s *PreferencesService) RecordSavedDraft(ctx context.Context, userID, content string, tone models.Tone) error {
	prefs := s.Get(ctx, userID)

	n := prefs.TotalSavedMessages
	newCount := n + 1

	length := utf8.RuneCountInString(content)
	prefs.AvgMessageLength = (prefs.AvgMessageLength*n + length) / newCount

	emojiScore := 0.0
	if containsEmoji(content) {
		emojiScore = 1.0
	}
	prefs.EmojiUsageRate = (prefs.EmojiUsageRate*float64(n) + emojiScore) / float64(newCount)

	weight := prefs.PreferredTones[tone] + toneAffinityStep
	if weight > 1.0 {
		weight = 1.0
	}
	prefs.PreferredTones[tone] = weight

	prefs.TotalSavedMessages = newCount
	prefs.UpdatedAt = time.Now()

	if err := s.preferenceRepo.Replace(ctx, prefs); err != nil {
		return fmt.Errorf("save preferences for user %s: %w", userID, err)
	}
	return nil
}

// containsEmoji reports whether any character falls in the common
// emoticon or pictographic code point ranges.
func containsEmoji(text string) bool {
	for _, r := range text {
		switch {
		case r >= 0x1F300 && r <= 0x1F5FF, // symbols and pictographs
			r >= 0x1F600 && r <= 0x1F64F, // emoticons
			r >= 0x1F680 && r <= 0x1F6FF, // transport and map symbols
			r >= 0x1F900 && r <= 0x1F9FF, // supplemental pictographs
			r >= 0x2600 && r <= 0x27BF: // misc symbols and dingbats
			return true
		}
	}
	return false
}

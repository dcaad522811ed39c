package models

import "time"

// DefaultAvgMessageLength is the neutral starting point for the rolling
// message-length average before any drafts have been saved.
const DefaultAvgMessageLength = 150

// UserPreferences is the per-user style profile built up from saved
// drafts. Tone weights and the emoji rate always stay within [0, 1] and
// TotalSavedMessages only ever increases.
type UserPreferences struct {
	UserID             string           `bson:"_id" json:"userId"`
	PreferredTones     map[Tone]float64 `bson:"preferredTones" json:"preferredTones"`
	AvgMessageLength   int              `bson:"avgMessageLength" json:"avgMessageLength"`
	EmojiUsageRate     float64          `bson:"emojiUsageRate" json:"emojiUsageRate"`
	TotalSavedMessages int              `bson:"totalSavedMessages" json:"totalSavedMessages"`
	UpdatedAt          time.Time        `bson:"updatedAt" json:"updatedAt"`
}

// DefaultPreferences returns the neutral profile used before a user has
// saved any drafts.
func DefaultPreferences(userID string) *UserPreferences {
	return &UserPreferences{
		UserID:           userID,
		PreferredTones:   map[Tone]float64{},
		AvgMessageLength: DefaultAvgMessageLength,
		UpdatedAt:        time.Now(),
	}
}

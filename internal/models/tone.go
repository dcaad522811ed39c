package models

import "strings"

// Tone is one of the fixed stylistic categories an SMS draft can be
// generated in. The declared order below is the order tones are assigned
// to prompt blocks, so it must stay stable.
type Tone string

const (
	ToneShort        Tone = "Short"
	ToneUrgent       Tone = "Urgent"
	ToneFriendly     Tone = "Friendly"
	ToneProfessional Tone = "Professional"
	TonePlayful      Tone = "Playful"
	ToneLuxury       Tone = "Luxury"
	ToneMinimalist   Tone = "Minimalist"
	ToneStorytelling Tone = "Storytelling"
	ToneEmotional    Tone = "Emotional"
	ToneBold         Tone = "Bold"
)

// Labels outside the fixed vocabulary, used for drafts that did not
// come out of a normal tone block.
const (
	// ToneRaw marks the fallback draft produced when a reply could not
	// be parsed into tone blocks.
	ToneRaw Tone = "Raw"
	// ToneRefined marks a draft produced by rewriting existing content.
	ToneRefined Tone = "Refined"
)

// AllTones lists the tone vocabulary in declared order.
var AllTones = []Tone{
	ToneShort,
	ToneUrgent,
	ToneFriendly,
	ToneProfessional,
	TonePlayful,
	ToneLuxury,
	ToneMinimalist,
	ToneStorytelling,
	ToneEmotional,
	ToneBold,
}

// ParseTone matches a label against the vocabulary, ignoring case and
// surrounding whitespace. The second return value reports whether the
// label is part of the vocabulary.
func ParseTone(label string) (Tone, bool) {
	normalized := strings.ToLower(strings.TrimSpace(label))
	for _, t := range AllTones {
		if strings.ToLower(string(t)) == normalized {
			return t, true
		}
	}
	return "", false
}

// Label returns the uppercase form used in prompt block delimiters.
func (t Tone) Label() string {
	return strings.ToUpper(string(t))
}

// Hint returns the style instruction embedded in the generation prompt
// for this tone.
func (t Tone) Hint() string {
	switch t {
	case ToneShort:
		return "Concise and punchy, ideally under 160 characters."
	case ToneUrgent:
		return "Focus on FOMO: limited time, limited stock, act now."
	case ToneFriendly:
		return "Conversational and warm, like a message from a friend."
	case ToneProfessional:
		return "Polished and trustworthy, suitable for a corporate audience."
	case TonePlayful:
		return "Light, witty and fun, a joke or wordplay is welcome."
	case ToneLuxury:
		return "Exclusive and premium, emphasize quality over price."
	case ToneMinimalist:
		return "Bare essentials only: offer, dates, link."
	case ToneStorytelling:
		return "Open with a one-sentence mini story that leads into the offer."
	case ToneEmotional:
		return "Appeal to feelings and personal benefit, not product specs."
	case ToneBold:
		return "High-impact statements, strong verbs, confident claims."
	default:
		return ""
	}
}

package services

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/admanager/admanager-backend/internal/models"
)

// blockDelimiter separates tone blocks in the generated reply, matching
// the framing requested by the prompt: ---TONE--- followed by a
// bracketed score marker and the draft content.
const blockDelimiter = "---"

var scoreMarker = regexp.MustCompile(`(?i)\[\s*score\s*:?\s*(\d{1,3})\s*\]`)

// ParseDrafts parses the free-text reply of the generative service into
// typed, scored drafts. Segments that cannot be matched to a tone in
// the batch vocabulary, or that carry no content after cleanup, are
// discarded. If nothing parses, the whole reply is returned as a single
// raw draft with score 0 so the caller always gets at least one result.
// The highest-scoring draft is flagged as recommended (first occurrence
// wins on ties).
func ParseDrafts(text string, vocabulary []models.Tone) []models.SMSDraft {
	drafts := []models.SMSDraft{}

	var pending models.Tone
	havePending := false

	for _, segment := range strings.Split(text, blockDelimiter) {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		// A segment that is exactly a tone label opens the next block.
		if tone, ok := matchVocabulary(segment, vocabulary); ok {
			pending = tone
			havePending = true
			continue
		}

		tone := pending
		body := segment
		if !havePending {
			// Some replies fuse the label and content into one segment;
			// the first line decides the tone then.
			firstLine, rest, _ := strings.Cut(segment, "\n")
			matched, ok := matchVocabulary(firstLine, vocabulary)
			if !ok {
				continue
			}
			tone = matched
			body = rest
		}
		havePending = false

		score, content := extractScore(body)
		content = strings.TrimSpace(content)
		if content == "" {
			continue
		}

		drafts = append(drafts, models.SMSDraft{
			Tone:    tone,
			Content: content,
			Score:   score,
		})
	}

	if len(drafts) == 0 {
		drafts = append(drafts, models.SMSDraft{
			Tone:    models.ToneRaw,
			Content: text,
			Score:   0,
		})
	}

	markRecommended(drafts)
	return drafts
}

func matchVocabulary(label string, vocabulary []models.Tone) (models.Tone, bool) {
	normalized := strings.ToLower(strings.TrimSpace(label))
	for _, t := range vocabulary {
		if strings.ToLower(string(t)) == normalized {
			return t, true
		}
	}
	return "", false
}

// extractScore pulls the first bracketed score marker out of the body
// and strips it from the content. Scores are clamped to [0, 100]; a
// missing marker yields 0.
func extractScore(body string) (int, string) {
	match := scoreMarker.FindStringSubmatchIndex(body)
	if match == nil {
		return 0, body
	}

	score, err := strconv.Atoi(body[match[2]:match[3]])
	if err != nil {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	content := body[:match[0]] + body[match[1]:]
	return score, content
}

// markRecommended flags the single highest-scoring draft in the batch.
func markRecommended(drafts []models.SMSDraft) {
	if len(drafts) == 0 {
		return
	}
	best := 0
	for i, d := range drafts {
		if d.Score > drafts[best].Score {
			best = i
		}
	}
	drafts[best].IsRecommended = true
}

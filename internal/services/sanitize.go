package services

import (
	"regexp"
	"strings"
)

// Externally-sourced text (site content, product names, audience, URLs)
// is embedded into generation prompts, so a malicious page could try to
// steer the model through its own content. Sanitization neutralizes the
// common instruction-injection markers and any characters that collide
// with the structural delimiters of the requested reply format.
var (
	injectionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)ignore\s+(?:all\s+|any\s+)?(?:previous|prior|above|earlier)\s+(?:instructions?|prompts?|rules?|directions?)`),
		regexp.MustCompile(`(?i)disregard\s+(?:all\s+|any\s+)?(?:previous|prior|above|earlier)\s+(?:instructions?|prompts?|rules?|directions?)`),
		regexp.MustCompile(`(?i)forget\s+(?:all\s+|everything\s+|your\s+)?(?:previous\s+|prior\s+)?(?:instructions?|prompts?|rules?)`),
		regexp.MustCompile(`(?i)you\s+are\s+now\s+(?:a|an|the)\s`),
		regexp.MustCompile(`(?i)new\s+(?:system\s+)?instructions?\s*:`),
	}

	roleMarker   = regexp.MustCompile(`(?im)^\s*(?:system|assistant|developer|user)\s*:`)
	delimiterRun = regexp.MustCompile(`-{3,}`)
	bracketChars = strings.NewReplacer("[", "(", "]", ")")
)

// sanitizeExternalText neutralizes instruction-injection markers and
// structural delimiter characters in untrusted text before it is
// embedded in a prompt.
func sanitizeExternalText(text string) string {
	out := text
	for _, p := range injectionPatterns {
		out = p.ReplaceAllString(out, "")
	}
	out = roleMarker.ReplaceAllString(out, "note:")
	out = delimiterRun.ReplaceAllString(out, "–")
	out = bracketChars.Replace(out)
	return strings.TrimSpace(out)
}

// sanitizeExternalList sanitizes each element of a list of untrusted
// strings, dropping entries that sanitize to nothing.
func sanitizeExternalList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if cleaned := sanitizeExternalText(item); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}

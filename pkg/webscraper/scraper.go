package webscraper

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/admanager/admanager-backend/pkg/gemini"
)

// ErrNoCandidates indicates a page yielded no phone-number candidates at
// all, as opposed to candidates that the resolver judged unsuitable.
var ErrNoCandidates = errors.New("webscraper: no phone candidates found")

const (
	// FallbackInfoText is the degraded signal used when a site cannot be
	// fetched. The pipeline keeps going with it.
	FallbackInfoText = "Website content unavailable."

	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	maxBodyChars       = 5000
	maxResolverContext = 3000
	minPhoneDigits     = 7
)

var phonePattern = regexp.MustCompile(`\+?\(?\d[\d\s().\-]{5,}\d`)

// SiteSignal is what a page yields for the draft pipeline: a bounded
// info text and the deduplicated set of phone-number candidates.
type SiteSignal struct {
	InfoText   string
	Candidates []string
}

// Scraper fetches pages and resolves contact numbers from them.
type Scraper struct {
	httpClient *http.Client
	generator  gemini.Generator
}

// NewScraper creates a new Scraper
func NewScraper(generator gemini.Generator, timeout time.Duration) *Scraper {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Scraper{
		httpClient: &http.Client{Timeout: timeout},
		generator:  generator,
	}
}

// ScrapeSiteInfo fetches a page and extracts the site signal. Fetch or
// parse failures are never fatal: the fallback signal is returned and
// the pipeline continues without site context.
func (s *Scraper) ScrapeSiteInfo(ctx context.Context, url string) SiteSignal {
	fallback := SiteSignal{InfoText: FallbackInfoText, Candidates: []string{}}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Printf("webscraper: invalid URL %q: %v", url, err)
		return fallback
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Printf("webscraper: fetch %q failed: %v", url, err)
		return fallback
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("webscraper: fetch %q returned status %d", url, resp.StatusCode)
		return fallback
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		log.Printf("webscraper: parse %q failed: %v", url, err)
		return fallback
	}

	candidates := collectCandidates(doc)

	title := strings.TrimSpace(doc.Find("title").First().Text())
	metaDesc, _ := doc.Find(`meta[name="description"]`).First().Attr("content")

	doc.Find("script, style, noscript").Remove()
	bodyText := normalizeWhitespace(doc.Find("body").Text())
	bodyText = truncateRunes(bodyText, maxBodyChars)

	infoText := fmt.Sprintf("Title: %s\nDescription: %s\nContent: %s",
		title, strings.TrimSpace(metaDesc), bodyText)

	return SiteSignal{InfoText: infoText, Candidates: candidates}
}

// collectCandidates gathers phone-number candidates from tel: links and
// from a pattern scan of the visible text, deduplicated as a set.
func collectCandidates(doc *goquery.Document) []string {
	seen := map[string]bool{}
	candidates := []string{}

	add := func(raw string) {
		num := strings.TrimSpace(raw)
		if num == "" || seen[num] {
			return
		}
		seen[num] = true
		candidates = append(candidates, num)
	}

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if strings.HasPrefix(href, "tel:") {
			add(strings.TrimPrefix(href, "tel:"))
		}
	})

	for _, match := range phonePattern.FindAllString(doc.Text(), -1) {
		// Reject short numeric runs (prices, years, postcodes).
		if len(digitsOf(match)) >= minPhoneDigits {
			add(match)
		}
	}

	return candidates
}

// IdentifyBestPhone asks the generative service to pick the single most
// plausible general contact number out of the candidates. A null reply
// means no candidate qualifies and is returned as an empty string; the
// resolver never substitutes a guess.
func (s *Scraper) IdentifyBestPhone(ctx context.Context, url, infoText string, candidates []string) (string, error) {
	if len(candidates) == 0 {
		return "", ErrNoCandidates
	}

	prompt := buildResolverPrompt(url, infoText, candidates)

	result, err := s.generator.GenerateJSON(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("webscraper: resolve phone: %w", err)
	}

	phone, ok := result["phone"].(string)
	if !ok || strings.TrimSpace(phone) == "" {
		return "", nil
	}

	// The service must choose from the candidate list, never invent.
	// Anything whose digits don't match a candidate is treated as null.
	if !matchesCandidate(phone, candidates) {
		log.Printf("webscraper: discarding resolver reply %q not in candidate set", phone)
		return "", nil
	}

	return strings.TrimSpace(phone), nil
}

func buildResolverPrompt(url, infoText string, candidates []string) string {
	var b strings.Builder
	b.WriteString("You are working inside a real backend service.\n")
	b.WriteString("Identify the most reliable GENERAL contact phone number for a business website.\n\n")
	b.WriteString("Website URL: " + url + "\n\n")
	b.WriteString("Extracted website text (truncated):\n")
	b.WriteString(truncateRunes(infoText, maxResolverContext))
	b.WriteString("\n\nPhone number candidates:\n")
	b.WriteString(strings.Join(candidates, ", "))
	b.WriteString("\n\nRules:\n")
	b.WriteString("- DO NOT guess or invent a phone number.\n")
	b.WriteString("- DO NOT generate example or placeholder numbers.\n")
	b.WriteString("- DO NOT infer a number from the domain or country alone.\n")
	b.WriteString("- Choose a number ONLY if the text clearly presents it as a general customer contact number.\n")
	b.WriteString("- Prefer a general contact number over personal, branch or messaging-only numbers.\n")
	b.WriteString("- Respond with ONLY a JSON object of this exact shape: {\"phone\": \"<number>\"} or {\"phone\": null}.\n")
	return b.String()
}

// matchesCandidate reports whether the reply is derived from a member of
// the candidate set, compared digit-for-digit.
func matchesCandidate(phone string, candidates []string) bool {
	phoneDigits := digitsOf(phone)
	if phoneDigits == "" {
		return false
	}
	for _, c := range candidates {
		candidateDigits := digitsOf(c)
		if candidateDigits == phoneDigits ||
			strings.HasSuffix(candidateDigits, phoneDigits) ||
			strings.HasSuffix(phoneDigits, candidateDigits) {
			return true
		}
	}
	return false
}

func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

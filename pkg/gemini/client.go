package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"
)

// ErrRateLimited indicates the generative service rejected the request
// because of quota. The client retries once before surfacing it.
var ErrRateLimited = errors.New("gemini: rate limited")

const (
	defaultModel = "gemini-2.0-flash"

	// maxAttempts is the total request budget per call, including the
	// first attempt.
	maxAttempts = 2
	retryDelay  = 2 * time.Second
)

// Generator is the generative text capability the draft pipeline
// depends on.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateJSON(ctx context.Context, prompt string) (map[string]interface{}, error)
}

// Client calls the Gemini API for free-text and JSON generation.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient creates a new Gemini client
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: API key is required")
	}
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	return &Client{
		client: client,
		model:  model,
	}, nil
}

// GenerateText generates free text from a prompt. Rate-limit responses
// are retried up to the attempt budget with a fixed delay; any other
// failure propagates immediately.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, prompt, nil)
}

// GenerateJSON generates a JSON object from a prompt that declares a
// JSON-only contract. A reply that cannot be parsed as a JSON object
// yields an empty result rather than an error.
func (c *Client) GenerateJSON(ctx context.Context, prompt string) (map[string]interface{}, error) {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}

	text, err := c.generate(ctx, prompt, config)
	if err != nil {
		return nil, err
	}

	return parseJSONObject(text), nil
}

func (c *Client) generate(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			time.Sleep(retryDelay)
		}

		resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
		if err != nil {
			if !isRateLimited(err) {
				return "", fmt.Errorf("gemini: generate content: %w", err)
			}
			lastErr = err
			continue
		}

		return resp.Text(), nil
	}

	return "", fmt.Errorf("%w: %v", ErrRateLimited, lastErr)
}

func isRateLimited(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests
	}
	return false
}

// parseJSONObject extracts a JSON object from model output, tolerating
// markdown code fences around the payload. Unparsable replies map to an
// empty object.
func parseJSONObject(text string) map[string]interface{} {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var result map[string]interface{}
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return map[string]interface{}{}
	}
	return result
}

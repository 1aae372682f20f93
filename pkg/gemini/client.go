// Package gemini provides the assistant's generative AI collaborator:
// a client for the Gemini generateContent REST API used for the chat
// fallback and for Tamil to Hindi translation.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jayamurugan-31/zara/internal/httpc"
)

// DefaultModel is the Gemini model used for chat and translation.
const DefaultModel = "gemini-2.0-flash"

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// ErrMissingAPIKey indicates no Gemini API key was configured.
var ErrMissingAPIKey = errors.New("gemini: API key is required")

// Client calls the Gemini generateContent API.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithModel overrides the default model.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithBaseURL overrides the API base URL (used in tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// NewClient creates a Gemini client.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	c := &Client{
		apiKey:  apiKey,
		model:   DefaultModel,
		baseURL: defaultBaseURL,
		http:    httpc.Client,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// GetResponse answers a free-form prompt. Leading bullet markers are
// stripped from each line of the reply so the spoken output doesn't
// enumerate asterisks.
func (c *Client) GetResponse(ctx context.Context, prompt string) (string, error) {
	text, err := c.generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return CleanResponse(text), nil
}

// TranslateTamilToHindi translates a Tamil sentence to Hindi.
func (c *Client) TranslateTamilToHindi(ctx context.Context, text string) (string, error) {
	prompt := fmt.Sprintf("Translate this Tamil sentence to Hindi without explanation: '%s'", text)
	out, err := c.generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// generate makes one generateContent call and returns the first
// candidate's text.
func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	payload := map[string]any{
		"contents": []map[string]any{
			{
				"parts": []map[string]any{
					{"text": prompt},
				},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("gemini: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("gemini: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("gemini: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini: API error (status %d): %s", resp.StatusCode, truncate(string(raw), 200))
	}

	var result generateResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", fmt.Errorf("gemini: parse response: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("gemini: %s", result.Error.Message)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini: empty response")
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}

// generateResponse is the generateContent response shape.
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// CleanResponse strips leading bullet markers (*, -, •) from each
// line. Only markers followed by whitespace count, so "-5 degrees"
// stays intact.
func CleanResponse(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		for _, marker := range []string{"* ", "- ", "• "} {
			if strings.HasPrefix(trimmed, marker) {
				lines[i] = strings.TrimLeft(trimmed[len(marker):], " ")
				break
			}
		}
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

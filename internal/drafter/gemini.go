// Package drafter turns a free-form customer query into a formal email body
// using the Gemini generateContent API.
package drafter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultModel    = "gemini-2.5-flash"
	defaultEndpoint = "https://generativelanguage.googleapis.com/v1beta/models"
)

// GeminiDrafter is a direct HTTP client for the Gemini API.
type GeminiDrafter struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewGemini creates a Gemini drafter. Empty model or endpoint select the
// defaults.
func NewGemini(apiKey, model, endpoint string) *GeminiDrafter {
	if model == "" {
		model = defaultModel
	}
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &GeminiDrafter{
		apiKey:   apiKey,
		model:    model,
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   &http.Client{Timeout: 120 * time.Second},
	}
}

// Draft asks the model for a formal email body covering the query, signed
// with the sender's display name. Any transport failure, non-200 status or
// structural mismatch in the response surfaces as an error; there is no
// fallback body.
func (g *GeminiDrafter) Draft(ctx context.Context, queryText, senderName string) (string, error) {
	body := map[string]any{
		"contents": []map[string]any{
			{
				"role": "user",
				"parts": []map[string]string{
					{"text": buildPrompt(queryText, senderName)},
				},
			},
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/%s:generateContent?key=%s", g.endpoint, g.model, url.QueryEscape(g.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, strings.NewReader(string(payload)))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling gemini: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini API error (%d): %s", resp.StatusCode, string(raw))
	}

	return DecodeDraft(string(raw))
}

func buildPrompt(queryText, senderName string) string {
	return fmt.Sprintf(`You are a professional assistant that converts a user's informal query into a formal query email.
Return ONLY a single-line JSON object with one key:
  - "body": full formal email body. Include a formal greeting (use recipient placeholder 'Dear Sir/Madam,' if no recipient given), a concise description of the query, any clarifying questions, a call to action, and a closing with the sender name.

Do NOT include any commentary, explanation, or extra fields.

User-supplied details:
Sender name: "%s"
Query details: "%s"
`, escapeForPrompt(senderName), escapeForPrompt(queryText))
}

// escapeForPrompt flattens quotes and line breaks so the user text cannot
// break out of the quoted prompt sections.
func escapeForPrompt(s string) string {
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}

// Package whatsapp sends outbound messages through the Meta Graph API.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/samchinmaya/querydesk/internal/domain"
)

const defaultBaseURL = "https://graph.facebook.com/v21.0"

// Client is an outbound WhatsApp Cloud API client bound to one business
// phone number.
type Client struct {
	baseURL       string
	accessToken   string
	phoneNumberID string
	client        *http.Client
}

// NewClient creates a WhatsApp client. An empty baseURL selects the Graph
// API default.
func NewClient(accessToken, phoneNumberID, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		accessToken:   accessToken,
		phoneNumberID: phoneNumberID,
		client:        &http.Client{Timeout: 10 * time.Second},
	}
}

type textBody struct {
	Body string `json:"body"`
}

type sendRequest struct {
	MessagingProduct string    `json:"messaging_product"`
	To               string    `json:"to"`
	Type             string    `json:"type"`
	Text             *textBody `json:"text,omitempty"`
	Template         any       `json:"template,omitempty"`
}

// SendText sends a plain text message.
func (c *Client) SendText(ctx context.Context, to, text string) (domain.SendResult, error) {
	return c.send(ctx, sendRequest{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
		Text:             &textBody{Body: text},
	})
}

// SendTemplate sends a pre-approved template message.
func (c *Client) SendTemplate(ctx context.Context, to string, template any) (domain.SendResult, error) {
	return c.send(ctx, sendRequest{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "template",
		Template:         template,
	})
}

// send posts to the phone-number message endpoint. A non-200 status is
// reported through the result, not as an error; errors are reserved for
// transport failures.
func (c *Client) send(ctx context.Context, payload sendRequest) (domain.SendResult, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return domain.SendResult{}, fmt.Errorf("marshaling message: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", c.baseURL, c.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return domain.SendResult{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.SendResult{}, fmt.Errorf("sending to %s: %w", payload.To, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	return domain.SendResult{StatusCode: resp.StatusCode, Body: string(respBody)}, nil
}

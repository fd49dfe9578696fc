// Package mailer delivers escalation emails through the Gmail API.
package mailer

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/samchinmaya/querydesk/internal/logging"
)

// Gmail sends mail as the authenticated account via Users.Messages.Send.
type Gmail struct {
	svc *gmail.Service
	log *logging.Logger
}

// NewGmail builds a Gmail mailer from OAuth client credentials and a
// previously obtained token file.
func NewGmail(ctx context.Context, credentialsPath, tokenPath string, log *logging.Logger) (*Gmail, error) {
	b, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("reading gmail credentials: %w", err)
	}

	config, err := google.ConfigFromJSON(b, gmail.GmailSendScope)
	if err != nil {
		return nil, fmt.Errorf("parsing gmail credentials: %w", err)
	}

	token, err := tokenFromFile(tokenPath)
	if err != nil {
		return nil, fmt.Errorf("no gmail token at %s, authenticate first: %w", tokenPath, err)
	}

	svc, err := gmail.NewService(ctx, option.WithHTTPClient(config.Client(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("creating gmail service: %w", err)
	}

	return &Gmail{svc: svc, log: log.Sub("mailer")}, nil
}

// Send delivers a plain-text email.
func (g *Gmail) Send(ctx context.Context, subject, toEmail, body string) error {
	var msg strings.Builder
	msg.WriteString("To: " + toEmail + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	raw := base64.URLEncoding.EncodeToString([]byte(msg.String()))

	_, err := g.svc.Users.Messages.Send("me", &gmail.Message{Raw: raw}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sending mail to %s: %w", toEmail, err)
	}

	g.log.Info().Str("to", toEmail).Str("subject", subject).Msg("escalation email sent")
	return nil
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, err
	}
	return token, nil
}

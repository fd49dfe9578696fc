package pipeline

import (
	"context"

	"github.com/samchinmaya/querydesk/internal/domain"
)

// ConversationStore is the append-only message log.
type ConversationStore interface {
	Append(ctx context.Context, rec domain.MessageRecord) error
	Conversation(ctx context.Context, partyA, partyB string) ([]domain.MessageRecord, error)
}

// MessageSender delivers a reply to a recipient on the messaging platform.
type MessageSender interface {
	SendText(ctx context.Context, to, text string) (domain.SendResult, error)
}

// EmailDrafter converts a free-text query and a sender display name into a
// formal email body.
type EmailDrafter interface {
	Draft(ctx context.Context, queryText, senderName string) (string, error)
}

// Mailer delivers an escalation email.
type Mailer interface {
	Send(ctx context.Context, subject, toEmail, body string) error
}

// ClientDirectory resolves customer ids to client records. Absence is a
// normal outcome, reported through the boolean.
type ClientDirectory interface {
	Lookup(customerID string) (domain.ClientRecord, bool)
}

// Package classify maps raw inbound message text to a conversational intent.
//
// Classification is rule-based and looks only at the current message.
// Conversation history is deliberately not consulted.
package classify

import (
	"regexp"
	"strings"
)

// Kind is the classification outcome for one message.
type Kind int

const (
	// Unrecognized means the text matched neither rule.
	Unrecognized Kind = iota
	// Greeting means the text contains a greeting word and the sender
	// should be prompted for the ticket format.
	Greeting
	// Ticket means the text matched the "<customer id>: <query>" grammar.
	Ticket
)

func (k Kind) String() string {
	switch k {
	case Greeting:
		return "greeting"
	case Ticket:
		return "ticket"
	default:
		return "unrecognized"
	}
}

// ParsedTicket is the result of extracting the ticket grammar from a message.
type ParsedTicket struct {
	CustomerID string
	QueryText  string
}

// Result is a tagged classification outcome. Ticket is set only when
// Kind == Ticket.
type Result struct {
	Kind   Kind
	Ticket ParsedTicket
}

var (
	greetingRe = regexp.MustCompile(`(?i)\b(hi|hello|hey|get started|start|good morning|good afternoon)\b`)
	ticketRe   = regexp.MustCompile(`^(\d{1,6})\s*:\s*(.+)$`)
)

// Classify assigns an intent to raw message text. Pure and total: every
// input yields a result, never an error.
//
// The greeting rule wins over the ticket grammar and matches whole words
// case-insensitively anywhere in the text. The ticket grammar requires a
// 1-6 digit customer id, a colon with optional surrounding whitespace, and
// a non-empty remainder; longer digit prefixes fall through to Unrecognized.
func Classify(text string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{Kind: Unrecognized}
	}

	if greetingRe.MatchString(text) {
		return Result{Kind: Greeting}
	}

	if m := ticketRe.FindStringSubmatch(text); m != nil {
		return Result{
			Kind: Ticket,
			Ticket: ParsedTicket{
				CustomerID: m[1],
				QueryText:  m[2],
			},
		}
	}

	return Result{Kind: Unrecognized}
}

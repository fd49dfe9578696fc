package webhook

import "github.com/samchinmaya/querydesk/internal/domain"

// Payload is the WhatsApp Cloud API webhook delivery shape. One delivery
// can carry multiple entries, each with multiple change notifications.
type Payload struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

// Entry is one account-level notification.
type Entry struct {
	ID      string   `json:"id"`
	Changes []Change `json:"changes"`
}

// Change is one field change inside an entry.
type Change struct {
	Field string `json:"field"`
	Value Value  `json:"value"`
}

// Value carries the messages and contact profiles of a change.
type Value struct {
	MessagingProduct string    `json:"messaging_product"`
	Contacts         []Contact `json:"contacts"`
	Messages         []Message `json:"messages"`
}

// Contact pairs a WhatsApp id with the sender's profile.
type Contact struct {
	WaID    string  `json:"wa_id"`
	Profile Profile `json:"profile"`
}

// Profile is the sender's display profile.
type Profile struct {
	Name string `json:"name"`
}

// Message is one inbound message object.
type Message struct {
	From      string `json:"from"`
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`
	Text      *Text  `json:"text,omitempty"`
}

// Text is the body of a text-type message.
type Text struct {
	Body string `json:"body"`
}

// InboundMessages flattens the delivery into the batch the pipeline
// consumes, in arrival order. Profile names are resolved per sender so the
// drafter can fall back to them.
func (p Payload) InboundMessages() []domain.InboundMessage {
	var out []domain.InboundMessage
	for _, entry := range p.Entry {
		for _, change := range entry.Changes {
			names := make(map[string]string, len(change.Value.Contacts))
			for _, c := range change.Value.Contacts {
				names[c.WaID] = c.Profile.Name
			}
			for _, m := range change.Value.Messages {
				msg := domain.InboundMessage{
					ID:       m.ID,
					From:     m.From,
					FromName: names[m.From],
					Type:     m.Type,
				}
				if m.Text != nil {
					msg.Body = m.Text.Body
				}
				out = append(out, msg)
			}
		}
	}
	return out
}

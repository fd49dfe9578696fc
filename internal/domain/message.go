package domain

import "time"

// MessageRecord is a persisted conversational event. Records are immutable
// once written; ReceivedAt drives conversation ordering.
type MessageRecord struct {
	ID         string    `json:"id"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	Body       string    `json:"body"`
	Incoming   bool      `json:"incoming"`
	ReceivedAt time.Time `json:"receivedAt"`
}

// InboundMessage is one message object from a webhook delivery. Only
// Type == "text" messages carry a Body and are processed; other types are
// captured and ignored downstream.
type InboundMessage struct {
	ID       string `json:"id"`
	From     string `json:"from"`
	FromName string `json:"fromName,omitempty"`
	Type     string `json:"type"`
	Body     string `json:"body,omitempty"`
}

// SendResult is the delivery outcome of an outbound platform send.
type SendResult struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body,omitempty"`
}

// OK reports whether the platform accepted the message.
func (r SendResult) OK() bool {
	return r.StatusCode == 200
}

// Package pipeline drives the per-message processing of inbound webhook
// batches: classification, directory lookup, drafting, reply, escalation
// and persistence.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/samchinmaya/querydesk/internal/classify"
	"github.com/samchinmaya/querydesk/internal/domain"
	"github.com/samchinmaya/querydesk/internal/logging"
)

// Reply texts sent back over the messaging platform.
const (
	greetingReply   = `Hi, Please mention Your Query in this format "<CustID> :<Query>"`
	registeredReply = "Query has been registered successfully."
)

func unknownCustomerReply(customerID string) string {
	return fmt.Sprintf("Sorry there is no one with the CustomerId: %s with us.", customerID)
}

func escalationSubject(customerID string) string {
	return fmt.Sprintf("Query Raised from Customer: %s", customerID)
}

// Orchestrator consumes parsed webhook batches and runs each text message
// through the processing pipeline. Safe for concurrent batches: all shared
// state is read-only.
type Orchestrator struct {
	store          ConversationStore
	sender         MessageSender
	drafter        EmailDrafter
	mailer         Mailer
	directory      ClientDirectory
	businessNumber string
	fallbackEmail  string
	log            *logging.Logger
	now            func() time.Time
}

// New creates an orchestrator. businessNumber is the support desk's own
// number, recorded as the counterparty on every message. fallbackEmail
// receives escalations for clients without a contact address.
func New(
	store ConversationStore,
	sender MessageSender,
	drafter EmailDrafter,
	mailer Mailer,
	directory ClientDirectory,
	businessNumber string,
	fallbackEmail string,
	log *logging.Logger,
) *Orchestrator {
	return &Orchestrator{
		store:          store,
		sender:         sender,
		drafter:        drafter,
		mailer:         mailer,
		directory:      directory,
		businessNumber: businessNumber,
		fallbackEmail:  fallbackEmail,
		log:            log.Sub("pipeline"),
		now:            time.Now,
	}
}

// ProcessBatch processes the messages of one webhook delivery sequentially
// and in order. A failure in one message never prevents processing of the
// remaining messages; per-message errors are joined into the return value.
func (o *Orchestrator) ProcessBatch(ctx context.Context, msgs []domain.InboundMessage) error {
	var errs []error
	for _, msg := range msgs {
		if msg.Type != "text" {
			o.log.Debug().Str("id", msg.ID).Str("type", msg.Type).Msg("ignoring non-text message")
			continue
		}
		if err := o.processMessage(ctx, msg); err != nil {
			o.log.Error().Err(err).Str("id", msg.ID).Str("from", msg.From).Msg("message processing failed")
			errs = append(errs, fmt.Errorf("message %s: %w", msg.ID, err))
		}
	}
	return errors.Join(errs...)
}

// Conversation returns the ordered message history between a party and the
// business number.
func (o *Orchestrator) Conversation(ctx context.Context, party string) ([]domain.MessageRecord, error) {
	return o.store.Conversation(ctx, party, o.businessNumber)
}

func (o *Orchestrator) processMessage(ctx context.Context, msg domain.InboundMessage) error {
	result := classify.Classify(msg.Body)

	o.log.Info().
		Str("id", msg.ID).
		Str("from", msg.From).
		Str("intent", result.Kind.String()).
		Msg("processing message")

	var (
		reply       string
		draftedBody string
		customerID  string
		clientEmail string
		suppress    bool
	)

	switch result.Kind {
	case classify.Greeting:
		reply = greetingReply

	case classify.Ticket:
		customerID = result.Ticket.CustomerID
		rec, ok := o.directory.Lookup(customerID)
		if !ok {
			reply = unknownCustomerReply(customerID)
			break
		}

		body, err := o.drafter.Draft(ctx, result.Ticket.QueryText, o.displayName(rec, msg))
		if err != nil {
			// Drafting failure aborts this message before anything was
			// sent or persisted; the batch moves on.
			return fmt.Errorf("drafting escalation for customer %s: %w", customerID, err)
		}
		draftedBody = body
		clientEmail = rec.Email
		reply = registeredReply

	default:
		// No reply rule for unrecognized text. The platform rejects
		// empty message bodies, so the send is suppressed; the inbound
		// record is still persisted below.
		suppress = true
	}

	inbound := domain.MessageRecord{
		ID:         recordID(msg.ID),
		From:       msg.From,
		To:         o.businessNumber,
		Body:       msg.Body,
		Incoming:   true,
		ReceivedAt: o.now(),
	}

	var sendErr error
	if !suppress {
		sendErr = o.sendReply(ctx, msg, reply, draftedBody, customerID, clientEmail)
	}

	if err := o.store.Append(ctx, inbound); err != nil {
		return errors.Join(sendErr, fmt.Errorf("persisting inbound message: %w", err))
	}
	return sendErr
}

// sendReply delivers the reply and, on success, runs the post-send steps:
// best-effort escalation email and outbound-record persistence.
func (o *Orchestrator) sendReply(ctx context.Context, msg domain.InboundMessage, reply, draftedBody, customerID, clientEmail string) error {
	res, err := o.sender.SendText(ctx, msg.From, reply)
	if err != nil {
		return fmt.Errorf("sending reply: %w", err)
	}
	if !res.OK() {
		return fmt.Errorf("platform rejected reply (status %d): %s", res.StatusCode, res.Body)
	}

	if draftedBody != "" {
		to := clientEmail
		if to == "" {
			to = o.fallbackEmail
		}
		// Escalation failure is isolated: logged, never propagated, and
		// never blocks persistence of the reply already sent.
		if err := o.mailer.Send(ctx, escalationSubject(customerID), to, draftedBody); err != nil {
			o.log.Error().Err(err).Str("customerId", customerID).Str("to", to).Msg("escalation email failed")
		}
	}

	outbound := domain.MessageRecord{
		ID:         uuid.NewString(),
		From:       o.businessNumber,
		To:         msg.From,
		Body:       reply,
		Incoming:   false,
		ReceivedAt: o.now(),
	}
	if err := o.store.Append(ctx, outbound); err != nil {
		return fmt.Errorf("persisting outbound reply: %w", err)
	}
	return nil
}

// displayName picks the name used to sign the drafted email: the directory
// record, the WhatsApp profile name, then the bare number.
func (o *Orchestrator) displayName(rec domain.ClientRecord, msg domain.InboundMessage) string {
	if rec.Name != "" {
		return rec.Name
	}
	if msg.FromName != "" {
		return msg.FromName
	}
	return msg.From
}

func recordID(msgID string) string {
	if msgID != "" {
		return msgID
	}
	return uuid.NewString()
}

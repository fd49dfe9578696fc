package store

import (
	"context"
	"fmt"
	"time"

	"github.com/samchinmaya/querydesk/internal/domain"
)

// timeLayout orders lexicographically, so received_at can be compared
// directly in SQL.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ConversationStore is an append-only message log with time-ordered
// retrieval per conversation pair.
type ConversationStore struct {
	db *DB
}

// NewConversationStore creates a conversation store on the given database.
func NewConversationStore(db *DB) *ConversationStore {
	return &ConversationStore{db: db}
}

// Append persists one message record. Records are independent appends;
// there is no read-modify-write.
func (s *ConversationStore) Append(ctx context.Context, rec domain.MessageRecord) error {
	incoming := 0
	if rec.Incoming {
		incoming = 1
	}

	_, err := s.db.sql.ExecContext(ctx,
		`INSERT INTO messages (msg_id, from_number, to_number, body, incoming, received_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.From, rec.To, rec.Body, incoming, rec.ReceivedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("appending message: %w", err)
	}
	return nil
}

// Conversation returns every record exchanged between the two parties, in
// either direction, ascending by receipt time. Symmetric in its arguments.
func (s *ConversationStore) Conversation(ctx context.Context, partyA, partyB string) ([]domain.MessageRecord, error) {
	rows, err := s.db.sql.QueryContext(ctx,
		`SELECT msg_id, from_number, to_number, body, incoming, received_at
		 FROM messages
		 WHERE (from_number = ? AND to_number = ?) OR (from_number = ? AND to_number = ?)
		 ORDER BY received_at ASC, id ASC`,
		partyA, partyB, partyB, partyA,
	)
	if err != nil {
		return nil, fmt.Errorf("querying conversation: %w", err)
	}
	defer rows.Close()

	var out []domain.MessageRecord
	for rows.Next() {
		var rec domain.MessageRecord
		var incoming int
		var receivedAt string
		if err := rows.Scan(&rec.ID, &rec.From, &rec.To, &rec.Body, &incoming, &receivedAt); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		rec.Incoming = incoming != 0
		rec.ReceivedAt, _ = time.Parse(timeLayout, receivedAt)
		out = append(out, rec)
	}
	return out, rows.Err()
}

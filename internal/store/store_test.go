package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samchinmaya/querydesk/internal/domain"
	"github.com/samchinmaya/querydesk/internal/logging"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	log := logging.New(nil, "silent")
	db, err := Open(":memory:", log)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpen_InMemory(t *testing.T) {
	db := testDB(t)
	assert.NotNil(t, db)
}

func TestMigrations_Idempotent(t *testing.T) {
	db := testDB(t)

	require.NoError(t, db.migrate())

	var count int
	err := db.sql.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, len(migrations), count)
}

func TestAppendAndConversation(t *testing.T) {
	db := testDB(t)
	cs := NewConversationStore(db)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	records := []domain.MessageRecord{
		{ID: "m1", From: "491700001", To: "49890000", Body: "hello", Incoming: true, ReceivedAt: base},
		{ID: "m2", From: "49890000", To: "491700001", Body: "hi, please use the ticket format", Incoming: false, ReceivedAt: base.Add(time.Second)},
		{ID: "m3", From: "491700001", To: "49890000", Body: "42: invoice wrong", Incoming: true, ReceivedAt: base.Add(2 * time.Second)},
	}
	for _, rec := range records {
		require.NoError(t, cs.Append(ctx, rec))
	}

	got, err := cs.Conversation(ctx, "491700001", "49890000")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "m1", got[0].ID)
	assert.Equal(t, "m2", got[1].ID)
	assert.Equal(t, "m3", got[2].ID)
	assert.True(t, got[0].Incoming)
	assert.False(t, got[1].Incoming)
	assert.True(t, got[0].ReceivedAt.Equal(base))
}

func TestConversation_Symmetric(t *testing.T) {
	db := testDB(t)
	cs := NewConversationStore(db)
	ctx := context.Background()

	require.NoError(t, cs.Append(ctx, domain.MessageRecord{
		ID: "m1", From: "a", To: "b", Body: "x", Incoming: true, ReceivedAt: time.Now().UTC(),
	}))

	ab, err := cs.Conversation(ctx, "a", "b")
	require.NoError(t, err)
	ba, err := cs.Conversation(ctx, "b", "a")
	require.NoError(t, err)
	assert.Equal(t, ab, ba)
}

func TestConversation_ExcludesOtherPairs(t *testing.T) {
	db := testDB(t)
	cs := NewConversationStore(db)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, cs.Append(ctx, domain.MessageRecord{ID: "m1", From: "a", To: "b", Body: "x", ReceivedAt: now}))
	require.NoError(t, cs.Append(ctx, domain.MessageRecord{ID: "m2", From: "a", To: "c", Body: "y", ReceivedAt: now}))

	got, err := cs.Conversation(ctx, "a", "b")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "m1", got[0].ID)
}

func TestConversation_Empty(t *testing.T) {
	db := testDB(t)
	cs := NewConversationStore(db)

	got, err := cs.Conversation(context.Background(), "nobody", "noone")
	require.NoError(t, err)
	assert.Empty(t, got)
}

package store

type migration struct {
	Version int
	Name    string
	SQL     string
}

var migrations = []migration{
	{
		Version: 1,
		Name:    "create_messages",
		SQL: `
			CREATE TABLE messages (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				msg_id TEXT NOT NULL,
				from_number TEXT NOT NULL,
				to_number TEXT NOT NULL,
				body TEXT NOT NULL,
				incoming INTEGER NOT NULL,
				received_at TEXT NOT NULL
			);
			CREATE INDEX idx_messages_from_to ON messages(from_number, to_number, received_at);
		`,
	},
}

package index

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS conversations (
    conv_key      TEXT PRIMARY KEY,
    title         TEXT NOT NULL DEFAULT '',
    created_at    TEXT NOT NULL DEFAULT '',
    updated_at    TEXT NOT NULL DEFAULT '',
    message_count INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS messages (
    conv_key  TEXT NOT NULL,
    seq       INTEGER NOT NULL,
    node_id   TEXT NOT NULL,
    ts        TEXT NOT NULL DEFAULT '',
    role      TEXT NOT NULL,
    recipient TEXT NOT NULL DEFAULT '',
    model     TEXT NOT NULL DEFAULT '',
    text      TEXT NOT NULL,
    PRIMARY KEY (conv_key, seq)
);

CREATE VIRTUAL TABLE IF NOT EXISTS messages_fts USING fts5(
    text,
    content=messages,
    content_rowid=rowid,
    tokenize='unicode61'
);

-- triggers to keep FTS in sync
CREATE TRIGGER IF NOT EXISTS messages_ai AFTER INSERT ON messages BEGIN
    INSERT INTO messages_fts(rowid, text) VALUES (new.rowid, new.text);
END;

CREATE TRIGGER IF NOT EXISTS messages_ad AFTER DELETE ON messages BEGIN
    INSERT INTO messages_fts(messages_fts, rowid, text) VALUES('delete', old.rowid, old.text);
END;

CREATE TRIGGER IF NOT EXISTS messages_au AFTER UPDATE ON messages BEGIN
    INSERT INTO messages_fts(messages_fts, rowid, text) VALUES('delete', old.rowid, old.text);
    INSERT INTO messages_fts(rowid, text) VALUES (new.rowid, new.text);
END;
`

// DB is a session-scoped index. It lives in memory and is gone after Close.
type DB struct {
	db *sql.DB
}

func OpenMemory() (*DB, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// every new connection would get its own empty :memory: database
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &DB{db: db}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) Raw() *sql.DB {
	return d.db
}

func (d *DB) DeleteConversation(convKey string) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM messages WHERE conv_key = ?", convKey); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM conversations WHERE conv_key = ?", convKey); err != nil {
		return err
	}
	return tx.Commit()
}

func (d *DB) ConversationCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM conversations").Scan(&n)
	return n, err
}

func (d *DB) MessageCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM messages").Scan(&n)
	return n, err
}

func (d *DB) FTSCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM messages_fts").Scan(&n)
	return n, err
}

type ConversationRow struct {
	ConvKey      string
	Title        string
	CreatedAt    string
	UpdatedAt    string
	MessageCount int
}

func (d *DB) GetConversation(convKey string) (*ConversationRow, error) {
	var c ConversationRow
	err := d.db.QueryRow(
		"SELECT conv_key, title, created_at, updated_at, message_count FROM conversations WHERE conv_key = ?",
		convKey,
	).Scan(&c.ConvKey, &c.Title, &c.CreatedAt, &c.UpdatedAt, &c.MessageCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListConversations returns every conversation, newest first.
func (d *DB) ListConversations() ([]ConversationRow, error) {
	rows, err := d.db.Query(
		"SELECT conv_key, title, created_at, updated_at, message_count FROM conversations ORDER BY created_at DESC, conv_key",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ConversationRow
	for rows.Next() {
		var c ConversationRow
		if err := rows.Scan(&c.ConvKey, &c.Title, &c.CreatedAt, &c.UpdatedAt, &c.MessageCount); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

type MessageRow struct {
	ConvKey   string
	Seq       int
	NodeID    string
	Ts        string
	Role      string
	Recipient string
	Model     string
	Text      string
}

const messageColumns = "conv_key, seq, node_id, ts, role, recipient, model, text"

func scanMessages(rows *sql.Rows) ([]MessageRow, error) {
	var out []MessageRow
	for rows.Next() {
		var m MessageRow
		if err := rows.Scan(&m.ConvKey, &m.Seq, &m.NodeID, &m.Ts, &m.Role, &m.Recipient, &m.Model, &m.Text); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (d *DB) GetMessages(convKey string) ([]MessageRow, error) {
	rows, err := d.db.Query(
		"SELECT "+messageColumns+" FROM messages WHERE conv_key = ? ORDER BY seq",
		convKey,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMessages(rows)
}

// GetMessagesWindow returns up to context messages either side of hitSeq.
// hitIdx is the hit's position in the returned slice (-1 when hitSeq is
// negative or absent), startPos the number of messages before the window.
func (d *DB) GetMessagesWindow(convKey string, hitSeq, context int) (msgs []MessageRow, hitIdx int, startPos int, totalCount int, err error) {
	err = d.db.QueryRow(
		"SELECT COUNT(*) FROM messages WHERE conv_key = ?", convKey,
	).Scan(&totalCount)
	if err != nil {
		return nil, -1, 0, 0, err
	}

	// seq is dense from 0, so the hit's position is its seq
	hitPos := -1
	if hitSeq >= 0 && hitSeq < totalCount {
		hitPos = hitSeq
	}

	startPos = 0
	limit := totalCount
	if hitPos >= 0 {
		startPos = max(hitPos-context, 0)
		endPos := min(hitPos+context+1, totalCount)
		limit = endPos - startPos
	}

	rows, err := d.db.Query(
		"SELECT "+messageColumns+" FROM messages WHERE conv_key = ? ORDER BY seq LIMIT ? OFFSET ?",
		convKey, limit, startPos,
	)
	if err != nil {
		return nil, -1, 0, 0, err
	}
	defer rows.Close()

	msgs, err = scanMessages(rows)
	if err != nil {
		return nil, -1, 0, 0, err
	}
	hitIdx = -1
	for i, m := range msgs {
		if m.Seq == hitSeq {
			hitIdx = i
			break
		}
	}
	return msgs, hitIdx, startPos, totalCount, nil
}

package index

import (
	"fmt"
	"time"

	"github.com/Zuo-Peng/chat-wrapped/internal/parse"
	"go.uber.org/zap"
)

const tsLayout = "2006-01-02T15:04:05Z07:00"

type Stats struct {
	Conversations int
	Messages      int
	Skipped       int
	Errors        int
}

func (s Stats) String() string {
	return fmt.Sprintf("conversations=%d messages=%d skipped=%d errors=%d",
		s.Conversations, s.Messages, s.Skipped, s.Errors)
}

// Key is the index key of the i-th conversation: its id, or a positional
// key when the export carries none.
func Key(c parse.Conversation, i int) string {
	if c.ID != "" {
		return c.ID
	}
	return fmt.Sprintf("#%d", i+1)
}

// Build indexes the walked, non-empty messages of convs. A conversation
// already present under the same key is replaced.
func Build(db *DB, convs []parse.Conversation, loc *time.Location, log *zap.Logger) (Stats, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if loc == nil {
		loc = time.Local
	}
	var stats Stats

	for i, c := range convs {
		key := Key(c, i)
		n, err := indexConversation(db, key, c, loc)
		if err != nil {
			stats.Errors++
			log.Warn("index conversation failed", zap.String("conversation", key), zap.Error(err))
			continue
		}
		if n == 0 {
			stats.Skipped++
			continue
		}
		stats.Conversations++
		stats.Messages += n
	}

	fts, err := db.FTSCount()
	if err != nil {
		return stats, fmt.Errorf("count fts: %w", err)
	}
	log.Debug("index built", zap.Stringer("stats", stats), zap.Int("fts", fts))
	return stats, nil
}

func indexConversation(db *DB, key string, c parse.Conversation, loc *time.Location) (int, error) {
	var msgs []parse.MessageDescriptor
	for _, m := range parse.Walk(c.Mapping) {
		if m.Text != "" {
			msgs = append(msgs, m)
		}
	}
	if len(msgs) == 0 {
		return 0, nil
	}

	if err := db.DeleteConversation(key); err != nil {
		return 0, err
	}

	tx, err := db.Raw().Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	created := c.Created(loc)
	updated := created
	if c.UpdateTime > 0 {
		updated = parse.EpochTime(c.UpdateTime, loc)
	}
	_, err = tx.Exec(
		`INSERT INTO conversations (conv_key, title, created_at, updated_at, message_count)
		 VALUES (?, ?, ?, ?, ?)`,
		key, c.Title, created.Format(tsLayout), updated.Format(tsLayout), len(msgs),
	)
	if err != nil {
		return 0, err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO messages (conv_key, seq, node_id, ts, role, recipient, model, text)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for seq, m := range msgs {
		ts := created
		if m.CreateTime > 0 {
			ts = parse.EpochTime(m.CreateTime, loc)
		}
		if _, err := stmt.Exec(key, seq, m.NodeID, ts.Format(tsLayout), m.Role, m.Recipient, m.ModelSlug, m.Text); err != nil {
			return 0, err
		}
	}

	return len(msgs), tx.Commit()
}

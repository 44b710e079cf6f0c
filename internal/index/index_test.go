package index

import (
	"strings"
	"testing"
	"time"

	"github.com/Zuo-Peng/chat-wrapped/internal/parse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exportJSON = `[
 {"id": "c1", "title": "Italy trip", "create_time": 1748772000, "update_time": 1748775600,
  "mapping": {
   "root": {"children": ["u1"]},
   "u1": {"parent": "root", "children": ["a1"], "message": {"author": {"role": "user"}, "create_time": 1748772001, "content": {"content_type": "text", "parts": ["Plan my Italy trip"]}}},
   "a1": {"parent": "u1", "children": ["h1"], "message": {"author": {"role": "assistant"}, "create_time": 1748772002, "recipient": "web.run", "metadata": {"model_slug": "gpt-4o"}, "content": {"content_type": "text", "parts": ["Rome, Florence and Venice"]}}},
   "h1": {"parent": "a1", "children": [], "message": {"author": {"role": "system"}, "metadata": {"is_visually_hidden_from_conversation": true}, "content": {"content_type": "text", "parts": ["hidden"]}}}
  }},
 {"title": "Empty", "create_time": 1748780000, "mapping": {"root": {"children": []}}},
 {"title": "No id", "create_time": 1748790000,
  "mapping": {
   "root": {"children": ["u"]},
   "u": {"parent": "root", "message": {"author": {"role": "user"}, "content": "ラーメンの作り方"}}
  }}
]`

func decode(t *testing.T) []parse.Conversation {
	t.Helper()
	convs, err := parse.DecodeConversations(strings.NewReader(exportJSON))
	require.NoError(t, err)
	return convs
}

func openBuilt(t *testing.T) *DB {
	t.Helper()
	db, err := OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	stats, err := Build(db, decode(t), time.UTC, nil)
	require.NoError(t, err)
	assert.Equal(t, Stats{Conversations: 2, Messages: 3, Skipped: 1}, stats)
	return db
}

func TestBuild(t *testing.T) {
	db := openBuilt(t)

	n, err := db.ConversationCount()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	msgs, err := db.MessageCount()
	require.NoError(t, err)
	fts, err := db.FTSCount()
	require.NoError(t, err)
	assert.Equal(t, msgs, fts)

	conv, err := db.GetConversation("c1")
	require.NoError(t, err)
	require.NotNil(t, conv)
	assert.Equal(t, "Italy trip", conv.Title)
	assert.Equal(t, "2025-06-01T10:00:00Z", conv.CreatedAt)
	assert.Equal(t, "2025-06-01T11:00:00Z", conv.UpdatedAt)
	assert.Equal(t, 2, conv.MessageCount)

	rows, err := db.GetMessages("c1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, MessageRow{
		ConvKey: "c1", Seq: 1, NodeID: "a1", Ts: "2025-06-01T10:00:02Z",
		Role: "assistant", Recipient: "web.run", Model: "gpt-4o", Text: "Rome, Florence and Venice",
	}, rows[1])

	// positional key for the conversation without an id
	noID, err := db.GetConversation("#3")
	require.NoError(t, err)
	require.NotNil(t, noID)
	assert.Equal(t, "No id", noID.Title)

	missing, err := db.GetConversation("nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestBuildReplaces(t *testing.T) {
	db := openBuilt(t)
	_, err := Build(db, decode(t), time.UTC, nil)
	require.NoError(t, err)

	n, err := db.MessageCount()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	fts, err := db.FTSCount()
	require.NoError(t, err)
	assert.Equal(t, 3, fts)
}

func TestListConversations(t *testing.T) {
	db := openBuilt(t)
	list, err := db.ListConversations()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "#3", list[0].ConvKey)
	assert.Equal(t, "c1", list[1].ConvKey)
}

func TestGetMessagesWindow(t *testing.T) {
	db, err := OpenMemory()
	require.NoError(t, err)
	defer db.Close()

	var b strings.Builder
	b.WriteString(`[{"id":"long","create_time":1748772000,"mapping":{"root":{"children":["m0"]}`)
	for i := 0; i < 10; i++ {
		next := ""
		if i < 9 {
			next = `"m` + string(rune('0'+i+1)) + `"`
		}
		b.WriteString(`,"m` + string(rune('0'+i)) + `":{"children":[` + next + `],"message":{"author":{"role":"user"},"content":"msg"}}`)
	}
	b.WriteString(`}}]`)
	convs, err := parse.DecodeConversations(strings.NewReader(b.String()))
	require.NoError(t, err)
	_, err = Build(db, convs, time.UTC, nil)
	require.NoError(t, err)

	msgs, hitIdx, start, total, err := db.GetMessagesWindow("long", 5, 2)
	require.NoError(t, err)
	assert.Equal(t, 10, total)
	assert.Equal(t, 3, start)
	require.Len(t, msgs, 5)
	assert.Equal(t, 2, hitIdx)
	assert.Equal(t, 5, msgs[hitIdx].Seq)

	msgs, hitIdx, start, _, err = db.GetMessagesWindow("long", -1, 2)
	require.NoError(t, err)
	assert.Len(t, msgs, 10)
	assert.Equal(t, -1, hitIdx)
	assert.Zero(t, start)

	msgs, hitIdx, _, _, err = db.GetMessagesWindow("long", 9, 3)
	require.NoError(t, err)
	assert.Len(t, msgs, 4)
	assert.Equal(t, 3, hitIdx)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "abc", Key(parse.Conversation{ID: "abc"}, 4))
	assert.Equal(t, "#5", Key(parse.Conversation{}, 4))
}

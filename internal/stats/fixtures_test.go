package stats

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/Zuo-Peng/chat-wrapped/internal/archive"
	"github.com/Zuo-Peng/chat-wrapped/internal/parse"
	"github.com/stretchr/testify/require"
)

type msg struct {
	role      string
	text      string
	ts        float64
	recipient string
	slug      string
	reasoning string
	hidden    bool
	convID    string
}

func user(text string) msg      { return msg{role: "user", text: text} }
func assistant(text string) msg { return msg{role: "assistant", text: text} }

// chain builds a conversation whose messages hang off "root" one after
// another: root -> m0 -> m1 -> ...
func chain(id, title string, created time.Time, msgs ...msg) map[string]any {
	mapping := map[string]any{}
	prev := "root"
	root := map[string]any{"id": "root", "parent": nil, "children": []string{}}
	mapping["root"] = root
	parentNode := root
	for i, m := range msgs {
		nodeID := fmt.Sprintf("m%02d", i)
		parentNode["children"] = []string{nodeID}
		meta := map[string]any{}
		if m.hidden {
			meta["is_visually_hidden_from_conversation"] = true
		}
		if m.slug != "" {
			meta["model_slug"] = m.slug
		}
		if m.reasoning != "" {
			meta["reasoning_status"] = m.reasoning
		}
		if m.convID != "" {
			meta["conversation_id"] = m.convID
		}
		ts := m.ts
		if ts == 0 {
			ts = float64(created.Unix() + int64(i))
		}
		node := map[string]any{
			"id":       nodeID,
			"parent":   prev,
			"children": []string{},
			"message": map[string]any{
				"id":          nodeID,
				"author":      map[string]any{"role": m.role},
				"create_time": ts,
				"content":     map[string]any{"content_type": "text", "parts": []string{m.text}},
				"recipient":   m.recipient,
				"metadata":    meta,
			},
		}
		mapping[nodeID] = node
		parentNode = node
		prev = nodeID
	}
	conv := map[string]any{
		"title":       title,
		"create_time": float64(created.Unix()),
		"update_time": float64(created.Unix()),
		"mapping":     mapping,
	}
	if id != "" {
		conv["id"] = id
	}
	return conv
}

func marshal(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func exportOf(t *testing.T, convs ...map[string]any) *archive.Collection {
	t.Helper()
	if convs == nil {
		convs = []map[string]any{}
	}
	return archive.FromEntries(archive.Entry{Path: "export/conversations.json", Data: marshal(t, convs)})
}

func at(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
}

func utcOptions() Options {
	return Options{Year: 2025, Location: time.UTC}
}

func decodeAll(t *testing.T, convs ...map[string]any) []parse.Conversation {
	t.Helper()
	if convs == nil {
		convs = []map[string]any{}
	}
	out, err := parse.DecodeConversations(bytes.NewReader(marshal(t, convs)))
	require.NoError(t, err)
	return out
}

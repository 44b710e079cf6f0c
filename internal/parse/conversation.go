package parse

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// ClientCreatedRoot is the sentinel id some exports use for the root node.
const ClientCreatedRoot = "client-created-root"

// Conversation is one entry of conversations.json. Times are epoch seconds,
// possibly fractional.
type Conversation struct {
	ID         string  `json:"id,omitempty"`
	Title      string  `json:"title"`
	CreateTime float64 `json:"create_time"`
	UpdateTime float64 `json:"update_time"`
	Mapping    Mapping `json:"mapping"`
}

// Created returns the creation instant in loc.
func (c Conversation) Created(loc *time.Location) time.Time {
	return EpochTime(c.CreateTime, loc)
}

// EpochTime converts epoch seconds to a time with millisecond precision.
func EpochTime(sec float64, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.UnixMilli(int64(sec * 1000)).In(loc)
}

type Node struct {
	ID       string   `json:"id,omitempty"`
	Message  *Message `json:"message,omitempty"`
	Parent   string   `json:"parent,omitempty"` // empty for the root
	Children []string `json:"children,omitempty"`
}

type Message struct {
	ID         string   `json:"id,omitempty"`
	Author     Author   `json:"author"`
	CreateTime float64  `json:"create_time,omitempty"`
	Content    Content  `json:"content"`
	Recipient  string   `json:"recipient,omitempty"`
	Metadata   Metadata `json:"metadata"`
}

type Author struct {
	Role string `json:"role"`
	Name string `json:"name,omitempty"`
}

type Metadata struct {
	ConversationID  string `json:"conversation_id,omitempty"`
	TurnExchangeID  string `json:"turn_exchange_id,omitempty"`
	ParentID        string `json:"parent_id,omitempty"`
	VisuallyHidden  bool   `json:"is_visually_hidden_from_conversation,omitempty"`
	ModelSlug       string `json:"model_slug,omitempty"`
	ReasoningStatus string `json:"reasoning_status,omitempty"`
}

// Hidden reports whether the message must be left out of every statistic.
func (m *Message) Hidden() bool {
	return m.Metadata.VisuallyHidden
}

// Content is either a plain string or an object carrying parts.
type Content struct {
	ContentType string
	Text        string // set when the payload is a plain string
	Parts       []json.RawMessage
	isString    bool
}

func (c *Content) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = Content{}
		return nil
	}

	// try string first
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = Content{Text: s, isString: true}
		return nil
	}

	var obj struct {
		ContentType string            `json:"content_type"`
		Parts       []json.RawMessage `json:"parts"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		// unknown shapes carry no text
		*c = Content{}
		return nil
	}
	*c = Content{ContentType: obj.ContentType, Parts: obj.Parts}
	return nil
}

// String returns the textual content: the plain string, else the first part
// when it is a string, else "".
func (c Content) String() string {
	if c.isString {
		return c.Text
	}
	if len(c.Parts) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(c.Parts[0], &s); err != nil {
		return ""
	}
	return s
}

// Mapping is a conversation's node arena. Nodes are stored once by id and
// the JSON key order is kept, so lookups that scan "the first node such
// that ..." are deterministic.
type Mapping struct {
	keys  []string
	nodes map[string]*Node
}

func (m *Mapping) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*m = Mapping{}
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("mapping: expected object, got %v", tok)
	}

	m.keys = nil
	m.nodes = make(map[string]*Node)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		id, _ := tok.(string)
		n := &Node{}
		if err := dec.Decode(n); err != nil {
			return fmt.Errorf("mapping node %q: %w", id, err)
		}
		if _, dup := m.nodes[id]; !dup {
			m.keys = append(m.keys, id)
		}
		m.nodes[id] = n
	}
	_, err = dec.Token()
	return err
}

func (m Mapping) Len() int {
	return len(m.keys)
}

// Keys returns node ids in document order.
func (m Mapping) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

func (m Mapping) Node(id string) (*Node, bool) {
	n, ok := m.nodes[id]
	return n, ok
}

// Root returns the sentinel root when present, else the first node without
// a parent.
func (m Mapping) Root() (string, bool) {
	if _, ok := m.nodes[ClientCreatedRoot]; ok {
		return ClientCreatedRoot, true
	}
	for _, id := range m.keys {
		if m.nodes[id].Parent == "" {
			return id, true
		}
	}
	return "", false
}

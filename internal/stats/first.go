package stats

import (
	"sort"
	"strings"

	"github.com/Zuo-Peng/chat-wrapped/internal/parse"
)

// FirstConversation describes the earliest conversation of convs, which
// must already be year-filtered.
func FirstConversation(convs []parse.Conversation, opts Options) *FirstConversationData {
	if len(convs) == 0 {
		return nil
	}
	opts = opts.normalized()

	sorted := make([]parse.Conversation, len(convs))
	copy(sorted, convs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreateTime < sorted[j].CreateTime
	})
	first := sorted[0]

	opening := extractOpening(first.Mapping)

	title := first.Title
	if strings.TrimSpace(title) == "" {
		title = UntitledConversation
	}
	id := first.ID
	if id == "" {
		id = opening.conversationID
	}

	return &FirstConversationData{
		Date:                  first.Created(opts.Location),
		Title:                 title,
		FirstUserMessage:      opening.user,
		FirstAssistantMessage: opening.assistant,
		ConversationID:        id,
	}
}

type opening struct {
	conversationID string
	user           string
	assistant      string
}

func extractOpening(m parse.Mapping) opening {
	var out opening

	var msgs []parse.MessageDescriptor
	for _, d := range parse.Walk(m) {
		if d.Text == "" {
			continue
		}
		msgs = append(msgs, d)
		if out.conversationID == "" {
			out.conversationID = firstNonEmpty(d.Metadata.ConversationID, d.Metadata.TurnExchangeID, d.Metadata.ParentID)
		}
	}

	// last resort: the first user-authored node in document order
	if root, ok := m.Root(); ok && out.conversationID == "" && root != parse.ClientCreatedRoot && len(msgs) > 0 {
		for _, id := range m.Keys() {
			n, _ := m.Node(id)
			if n.Message != nil && n.Message.Author.Role == "user" {
				out.conversationID = id
				break
			}
		}
	}

	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].CreateTime < msgs[j].CreateTime
	})
	for _, d := range msgs {
		switch {
		case d.Role == "user" && out.user == "":
			out.user = d.Text
		case d.Role == "assistant" && out.assistant == "":
			out.assistant = d.Text
		}
	}
	return out
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

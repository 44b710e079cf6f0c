package stats

import (
	"strings"

	"github.com/Zuo-Peng/chat-wrapped/internal/parse"
)

// ChatsAndMessages counts chats, user-authored messages and title words.
func ChatsAndMessages(convs []parse.Conversation, opts Options) *ChatsAndMessagesData {
	if len(convs) == 0 {
		return nil
	}

	messages := 0
	titles := make([]string, 0, len(convs))
	for _, c := range convs {
		for _, m := range parse.Walk(c.Mapping) {
			if m.Role == "user" {
				messages++
			}
		}
		if strings.TrimSpace(c.Title) != "" {
			titles = append(titles, c.Title)
		}
	}

	return &ChatsAndMessagesData{
		TotalChats:      len(convs),
		TotalMessages:   messages,
		WordFrequencies: WordFrequencies(titles, opts.StopWords),
	}
}

package tui

import (
	"fmt"

	"github.com/Zuo-Peng/chat-wrapped/internal/index"
	"github.com/Zuo-Peng/chat-wrapped/internal/render"
	"github.com/Zuo-Peng/chat-wrapped/internal/search"
	tea "github.com/charmbracelet/bubbletea"
)

type previewRenderedMsg struct {
	convKey string
	seq     int
	content string
	hitLine int
	err     error
}

// loadPreviewCmd renders the whole conversation in the background, headed
// by the link Enter would copy.
func loadPreviewCmd(db *index.DB, r search.Result, query string, width int) tea.Cmd {
	return func() tea.Msg {
		content, hitLine, err := render.RenderConversation(db, r.ConvKey, render.Options{
			HitSeq:  r.Seq,
			Context: -1,
			Width:   width,
			Query:   query,
		})
		if err == nil {
			content = styleLink.Render(ConversationLink(r)) + "\n" + content
			if hitLine >= 0 {
				hitLine++
			}
		}
		return previewRenderedMsg{
			convKey: r.ConvKey,
			seq:     r.Seq,
			content: content,
			hitLine: hitLine,
			err:     err,
		}
	}
}

func previewCacheKey(convKey string, seq int) string {
	return fmt.Sprintf("%s:%d", convKey, seq)
}

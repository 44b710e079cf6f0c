package tui

import (
	"fmt"
	"strings"

	"github.com/Zuo-Peng/chat-wrapped/internal/search"
	"github.com/Zuo-Peng/chat-wrapped/internal/stats"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// rowHeight is how many terminal lines one result takes in the list.
const rowHeight = 2

var roleLabels = map[string]string{
	"user":      "you ",
	"assistant": "gpt ",
	"tool":      "tool",
}

var snippetCleaner = strings.NewReplacer("\n", " ", "\t", " ", ">>>", "", "<<<", "")

func (m model) renderList(width, height int) string {
	if len(m.results) == 0 {
		msg := "No conversations"
		if m.mode == browseSearch && strings.TrimSpace(m.query) == "" {
			msg = "Type to search"
		}
		return styleDim.Width(width).Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render(msg)
	}

	rows := make([]string, 0, height)
	for i := m.listOffset; i < len(m.results) && len(rows)+rowHeight <= height; i++ {
		rows = append(rows, formatResultLine(m.results[i], width, i == m.cursor)...)
	}
	blank := strings.Repeat(" ", width)
	for len(rows) < height {
		rows = append(rows, blank)
	}
	return strings.Join(rows, "\n")
}

// resultTag names what handled the hit: the tool a message was sent to,
// else the model that wrote it.
func resultTag(r search.Result) string {
	if name := stats.ToolName(r.Recipient); name != "" {
		return name
	}
	return r.Model
}

func roleLabel(role string) string {
	label, ok := roleLabels[role]
	if !ok {
		label = runewidth.FillRight(runewidth.Truncate(role, 4, ""), 4)
	}
	return roleStyle(role).Render(label)
}

// formatResultLine lays a result out on two lines:
//
//	> you  06-01 Italy trip
//	    [gpt-4o] snippet
func formatResultLine(r search.Result, width int, selected bool) []string {
	date := r.Ts
	if len(date) >= 10 {
		date = date[5:10]
	}
	title := strings.ReplaceAll(r.Title, "\n", " ")
	if strings.TrimSpace(title) == "" {
		title = stats.UntitledConversation
	}
	title = runewidth.Truncate(title, max(width-15, 0), "")

	head := fmt.Sprintf("%s %s %s", roleLabel(r.Role), date, title)
	if selected {
		head = styleCursor.Render("> ") + head
	} else {
		head = "  " + styleRow.Render(head)
	}

	prefix := "    "
	room := width - 4
	if tag := resultTag(r); tag != "" {
		label := "[" + tag + "] "
		room -= runewidth.StringWidth(label)
		prefix += styleTag.Render(label)
	}
	body := runewidth.Truncate(snippetCleaner.Replace(r.Snippet), max(room, 0), "")

	return []string{head, prefix + styleDim.Render(body)}
}

// scrollToCursor moves the list window so the cursor row is visible.
func (m *model) scrollToCursor() {
	visible := max(m.layout().panelH/rowHeight, 1)
	switch {
	case m.cursor < m.listOffset:
		m.listOffset = m.cursor
	case m.cursor >= m.listOffset+visible:
		m.listOffset = m.cursor - visible + 1
	}
}

func (m model) maxOffset() int {
	return max(len(m.results)-m.layout().panelH/rowHeight, 0)
}

package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Zuo-Peng/chat-wrapped/internal/index"
	"github.com/Zuo-Peng/chat-wrapped/internal/stats"
	"github.com/mattn/go-runewidth"
)

const (
	colorReset   = "\033[0m"
	colorUser    = "\033[1;34m" // bold blue
	colorAssist  = "\033[1;32m" // bold green
	colorTool    = "\033[2;35m" // dim magenta for tool output
	colorDim     = "\033[2m"
	colorHit     = "\033[43m"   // yellow background
	colorBoldRed = "\033[1;31m" // bold red for keyword highlights
)

type Options struct {
	HitSeq  int
	Context int    // messages before/after hit to show
	Width   int    // wrap width (0 = no wrap)
	Query   string // search query for keyword highlighting
}

// fts5Operators are FTS5 operators that should not be highlighted as keywords.
var fts5Operators = map[string]bool{
	"AND": true, "OR": true, "NOT": true, "NEAR": true,
	"and": true, "or": true, "not": true, "near": true,
}

// highlightKeywords wraps case-insensitive matches of query terms in bold red ANSI codes.
func highlightKeywords(text, query string) string {
	if query == "" {
		return text
	}
	terms := strings.Fields(query)
	var filtered []string
	for _, t := range terms {
		if !fts5Operators[t] {
			filtered = append(filtered, t)
		}
	}
	if len(filtered) == 0 {
		return text
	}
	for _, term := range filtered {
		term = strings.Trim(term, `"`)
		if term == "" {
			continue
		}
		// ASCII lowering keeps byte offsets aligned with text
		lower := asciiLower(term)
		i := 0
		for i < len(text) {
			idx := strings.Index(asciiLower(text[i:]), lower)
			if idx < 0 {
				break
			}
			pos := i + idx
			orig := text[pos : pos+len(term)]
			replacement := colorBoldRed + orig + colorReset
			text = text[:pos] + replacement + text[pos+len(term):]
			i = pos + len(replacement)
		}
	}
	return text
}

func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}

// indentLines prepends each line of text with the given prefix.
func indentLines(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

// wrapLine breaks a single line into multiple lines that fit within maxWidth
// visible columns, correctly skipping ANSI escape sequences when measuring width.
func wrapLine(line string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{line}
	}

	var result []string
	var cur strings.Builder
	visW := 0

	i := 0
	for i < len(line) {
		// check for ANSI escape sequence: ESC[ ... m
		if i+1 < len(line) && line[i] == '\033' && line[i+1] == '[' {
			j := i + 2
			for j < len(line) && line[j] != 'm' {
				j++
			}
			if j < len(line) {
				j++ // include 'm'
			}
			cur.WriteString(line[i:j])
			i = j
			continue
		}

		r, size := utf8.DecodeRuneInString(line[i:])
		rw := runewidth.RuneWidth(r)

		if visW+rw > maxWidth {
			result = append(result, cur.String())
			cur.Reset()
			visW = 0
		}

		cur.WriteRune(r)
		visW += rw
		i += size
	}

	if cur.Len() > 0 {
		result = append(result, cur.String())
	}

	if len(result) == 0 {
		return []string{""}
	}
	return result
}

// RenderConversation renders an indexed conversation and returns the
// content, the 0-based line number of the hit message header (-1 if no
// hit), and any error.
func RenderConversation(db *index.DB, convKey string, opts Options) (string, int, error) {
	if opts.Context == 0 {
		opts.Context = 10
	}
	if opts.Context < 0 {
		opts.Context = 1000000 // no limit
	}

	conv, err := db.GetConversation(convKey)
	if err != nil {
		return "", -1, fmt.Errorf("get conversation: %w", err)
	}
	if conv == nil {
		return "", -1, fmt.Errorf("conversation not found: %s", convKey)
	}

	msgs, hitIdx, startPos, totalCount, err := db.GetMessagesWindow(convKey, opts.HitSeq, opts.Context)
	if err != nil {
		return "", -1, fmt.Errorf("get messages: %w", err)
	}

	if totalCount == 0 {
		return "(empty conversation)", -1, nil
	}

	skipAfter := totalCount - startPos - len(msgs)

	var b strings.Builder
	hitLine := -1
	lineCount := 0
	separator := colorDim + "--------------------------------------------------" + colorReset
	wrapW := opts.Width

	writeLine := func(s string) {
		wrapped := wrapLine(s, wrapW)
		for _, wl := range wrapped {
			b.WriteString(wl)
			b.WriteString("\n")
			lineCount++
		}
	}

	title := conv.Title
	if strings.TrimSpace(title) == "" {
		title = stats.UntitledConversation
	}
	writeLine(fmt.Sprintf("%s--- %s [%s] %s ---%s", colorDim, convKey, conv.CreatedAt, title, colorReset))

	if startPos > 0 {
		writeLine(fmt.Sprintf("%s... (%d messages before) ...%s", colorDim, startPos, colorReset))
	}

	for i, m := range msgs {
		isHit := (i == hitIdx)

		if i > 0 {
			writeLine(separator)
		}

		if isHit {
			hitLine = lineCount
		}

		roleColor, roleLabel := roleStyle(m.Role)
		label := roleLabel
		if tool := stats.ToolName(m.Recipient); tool != "" {
			label += " -> " + tool
		}
		meta := m.Ts
		if m.Model != "" {
			meta += " " + m.Model
		}

		if isHit {
			writeLine(fmt.Sprintf("%s>> %s > %s <<%s", colorHit, label, meta, colorReset))
		} else {
			writeLine(fmt.Sprintf("%s%s >%s %s%s%s", roleColor, label, colorReset, colorDim, meta, colorReset))
		}

		text := m.Text
		if m.Role == "tool" {
			text = colorDim + text + colorReset
		}
		text = highlightKeywords(text, opts.Query)
		text = indentLines(text, "  ")

		for _, tl := range strings.Split(text, "\n") {
			writeLine(tl)
		}
		writeLine("")
	}

	if skipAfter > 0 {
		writeLine(fmt.Sprintf("%s... (%d messages after) ...%s", colorDim, skipAfter, colorReset))
	}

	return b.String(), hitLine, nil
}

func roleStyle(role string) (color, label string) {
	switch role {
	case "user":
		return colorUser, "USER"
	case "assistant":
		return colorAssist, "ASST"
	case "tool":
		return colorTool, "TOOL"
	default:
		return colorDim, strings.ToUpper(role)
	}
}

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/Zuo-Peng/chat-wrapped/internal/index"
	"github.com/Zuo-Peng/chat-wrapped/internal/search"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const queryDelay = 200 * time.Millisecond

type browseMode int

const (
	browseSearch browseMode = iota
	browseList
)

// resultsMsg carries the query and filter it was fetched for, so answers
// to superseded requests can be dropped.
type resultsMsg struct {
	query   string
	filter  filter
	results []search.Result
	err     error
}

type queryTickMsg struct {
	query string
}

// model is the two-panel browser: results on the left, the selected
// conversation on the right.
type model struct {
	db         *index.DB
	base       search.Options
	filter     filter
	mode       browseMode
	query      string
	results    []search.Result
	cursor     int
	listOffset int
	input      textinput.Model
	preview    viewport.Model
	shown      string // previewCacheKey of the rendered preview
	help       help.Model
	width      int
	height     int
	ready      bool
	quitting   bool
	chosen     *search.Result
}

func newModel(db *index.DB, mode browseMode, query string, base search.Options, year int) model {
	in := textinput.New()
	in.Prompt = "> "
	in.PromptStyle = stylePrompt
	in.TextStyle = stylePrompt
	in.CharLimit = 256
	in.Placeholder = "Search..."
	if mode == browseList {
		in.Placeholder = "Type to search, empty lists everything"
	}
	in.SetValue(query)
	in.Focus()

	h := help.New()
	h.ShortSeparator = " | "

	return model{
		db:      db,
		base:    base,
		filter:  newFilter(year, base.Role),
		mode:    mode,
		query:   query,
		input:   in,
		preview: viewport.New(0, 0),
		help:    h,
	}
}

// Run opens the browser on full-text results for query. If the user picks
// a result, its conversation link is copied.
func Run(db *index.DB, query string, opts search.Options, year int) error {
	return runProgram(newModel(db, browseSearch, query, opts, year))
}

// RunList opens the browser on every conversation, newest first.
func RunList(db *index.DB, opts search.Options, year int) error {
	return runProgram(newModel(db, browseList, "", opts, year))
}

func runProgram(m model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	if fm := final.(model); fm.chosen != nil {
		return copyLink(*fm.chosen)
	}
	return nil
}

// conversationURL is where chatgpt.com serves a conversation by id.
const conversationURL = "https://chatgpt.com/c/"

// ConversationLink returns the chatgpt.com link for a result, or its title
// when the export carried no id.
func ConversationLink(r search.Result) string {
	if strings.HasPrefix(r.ConvKey, "#") {
		return r.Title
	}
	return conversationURL + r.ConvKey
}

func copyLink(r search.Result) error {
	link := ConversationLink(r)
	if err := clipboard.WriteAll(link); err != nil {
		fmt.Println(link)
		return nil
	}
	fmt.Printf("Copied to clipboard: %s\n", link)
	return nil
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.fetch())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height, m.ready = msg.Width, msg.Height, true
		l := m.layout()
		m.preview = viewport.New(l.previewW, l.panelH)
		m.shown = ""
		return m, m.loadPreview()
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case queryTickMsg:
		if msg.query != m.query {
			return m, nil
		}
		return m, m.fetch()
	case resultsMsg:
		return m.applyResults(msg)
	case previewRenderedMsg:
		return m.applyPreview(msg), nil
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	panelH := m.layout().panelH
	switch {
	case key.Matches(msg, browseKeys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, browseKeys.Copy):
		r, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.chosen = &r
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, browseKeys.Up):
		return m.moveCursor(-1)
	case key.Matches(msg, browseKeys.Down):
		return m.moveCursor(1)
	case key.Matches(msg, browseKeys.ScrollUp):
		m.preview.LineUp(panelH / 2)
		return m, nil
	case key.Matches(msg, browseKeys.ScrollDown):
		m.preview.LineDown(panelH / 2)
		return m, nil
	case key.Matches(msg, browseKeys.PageUp):
		m.preview.LineUp(panelH)
		return m, nil
	case key.Matches(msg, browseKeys.PageDown):
		m.preview.LineDown(panelH)
		return m, nil
	case key.Matches(msg, browseKeys.Role):
		m.filter = m.filter.nextRole()
		return m, m.fetch()
	case key.Matches(msg, browseKeys.PrevMonth):
		m.filter = m.filter.shiftMonth(-1)
		return m, m.fetch()
	case key.Matches(msg, browseKeys.NextMonth):
		m.filter = m.filter.shiftMonth(1)
		return m, m.fetch()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if q := m.input.Value(); q != m.query {
		m.query = q
		return m, tea.Batch(cmd, delayQuery(q))
	}
	return m, cmd
}

func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.ready || len(m.results) == 0 {
		return m, nil
	}
	wheelUp := msg.Button == tea.MouseButtonWheelUp
	wheelDown := msg.Button == tea.MouseButtonWheelDown

	region, idx := m.hitTest(msg.X, msg.Y)
	switch region {
	case regionList:
		switch {
		case wheelUp:
			m.listOffset = max(m.listOffset-1, 0)
		case wheelDown:
			m.listOffset = min(m.listOffset+1, m.maxOffset())
		case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
			if idx < len(m.results) && idx != m.cursor {
				m.cursor = idx
				m.scrollToCursor()
				return m, m.loadPreview()
			}
		}
	case regionPreview:
		if wheelUp || wheelDown {
			var cmd tea.Cmd
			m.preview, cmd = m.preview.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m model) moveCursor(delta int) (tea.Model, tea.Cmd) {
	next := m.cursor + delta
	if next < 0 || next >= len(m.results) {
		return m, nil
	}
	m.cursor = next
	m.scrollToCursor()
	return m, m.loadPreview()
}

func (m model) applyResults(msg resultsMsg) (tea.Model, tea.Cmd) {
	if msg.query != m.query || msg.filter != m.filter {
		return m, nil
	}
	m.cursor, m.listOffset, m.shown = 0, 0, ""
	if msg.err != nil {
		m.results = nil
		m.preview.SetContent("Error: " + msg.err.Error())
		return m, nil
	}
	m.results = msg.results
	if len(m.results) == 0 {
		m.preview.SetContent("")
		return m, nil
	}
	return m, m.loadPreview()
}

func (m model) applyPreview(msg previewRenderedMsg) model {
	r, ok := m.selected()
	k := previewCacheKey(msg.convKey, msg.seq)
	if !ok || k != previewCacheKey(r.ConvKey, r.Seq) || k == m.shown {
		return m
	}
	switch {
	case msg.err != nil:
		m.preview.SetContent("Preview error: " + msg.err.Error())
	case msg.seq == 0 || msg.hitLine < 0:
		// opening message: keep the link and header in view
		m.preview.SetContent(msg.content)
		m.preview.GotoTop()
	default:
		m.preview.SetContent(msg.content)
		m.preview.SetYOffset(msg.hitLine)
	}
	m.shown = k
	return m
}

func (m model) View() string {
	if m.quitting || !m.ready {
		return ""
	}
	l := m.layout()
	list := styleListBorder.Width(l.listW).Height(l.panelH).
		Render(m.renderList(l.listW, l.panelH))
	m.preview.Width, m.preview.Height = l.previewW, l.panelH
	preview := styleActiveBorder.Width(l.previewW).Height(l.panelH).
		Render(m.preview.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		m.input.View(),
		lipgloss.JoinHorizontal(lipgloss.Top, list, preview),
		m.statusBar(),
	)
}

func (m model) statusBar() string {
	noun := "hits"
	if m.mode == browseList && strings.TrimSpace(m.query) == "" {
		noun = "conversations"
	}
	return styleStatusBar.Render(fmt.Sprintf("%d %s | %s | %s",
		len(m.results), noun,
		styleFilter.Render(m.filter.String()),
		m.help.View(browseKeys),
	))
}

type layout struct {
	listW    int
	previewW int
	panelH   int
}

// layout splits the width 40/60 between list and preview. Each panel
// border takes two columns; input row, status bar and borders take six rows.
func (m model) layout() layout {
	if m.width <= 0 || m.height <= 0 {
		return layout{listW: 40, previewW: 60, panelH: 20}
	}
	return layout{
		listW:    max(m.width*2/5-4, 20),
		previewW: max(m.width*3/5-4, 20),
		panelH:   max(m.height-6, 5),
	}
}

type mouseRegion int

const (
	regionNone mouseRegion = iota
	regionList
	regionPreview
)

// hitTest maps a mouse position to a panel and, for the list, a result index.
func (m model) hitTest(x, y int) (mouseRegion, int) {
	l := m.layout()
	row := y - 2 // input row, then the top border
	if row < 0 || row >= l.panelH {
		return regionNone, -1
	}
	switch {
	case x >= 1 && x <= l.listW:
		return regionList, m.listOffset + row/rowHeight
	case x > l.listW+2:
		return regionPreview, -1
	}
	return regionNone, -1
}

// fetch loads results for the current query and filter. In list mode an
// empty query lists conversations; in search mode it clears the results.
func (m model) fetch() tea.Cmd {
	db, query, f := m.db, m.query, m.filter
	opts := f.apply(m.base)
	opts.Query = query
	listing := m.mode == browseList && strings.TrimSpace(query) == ""
	return func() tea.Msg {
		msg := resultsMsg{query: query, filter: f}
		if listing {
			msg.results, msg.err = search.ListAll(db, opts)
		} else {
			msg.results, msg.err = search.Search(db, opts)
		}
		return msg
	}
}

func delayQuery(q string) tea.Cmd {
	return tea.Tick(queryDelay, func(time.Time) tea.Msg {
		return queryTickMsg{query: q}
	})
}

func (m model) selected() (search.Result, bool) {
	if m.cursor < 0 || m.cursor >= len(m.results) {
		return search.Result{}, false
	}
	return m.results[m.cursor], true
}

func (m model) loadPreview() tea.Cmd {
	r, ok := m.selected()
	if !ok || previewCacheKey(r.ConvKey, r.Seq) == m.shown {
		return nil
	}
	return loadPreviewCmd(m.db, r, m.query, m.layout().previewW)
}

package tui

import (
	"fmt"
	"strings"

	"github.com/Zuo-Peng/chat-wrapped/internal/render"
	"github.com/Zuo-Peng/chat-wrapped/internal/stats"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// slideModel steps through the wrapped slides one screen at a time.
type slideModel struct {
	report *stats.Report
	slides []render.Slide
	idx    int
	view   viewport.Model
	width  int
	height int
	ready  bool
	notice string
	copyFn func(string) error
}

func newSlideModel(r *stats.Report) slideModel {
	m := slideModel{
		report: r,
		view:   viewport.New(0, 0),
		copyFn: clipboard.WriteAll,
	}
	m.slides = render.Slides(r, 0)
	return m
}

// RunSlides shows the report as a full-screen slideshow.
func RunSlides(r *stats.Report) error {
	m := newSlideModel(r)
	if len(m.slides) == 0 {
		return fmt.Errorf("no data for %d", r.Year)
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func (m slideModel) Init() tea.Cmd {
	return nil
}

func (m slideModel) onFinale() bool {
	return m.report.Finale != nil && m.idx == len(m.slides)-1
}

func (m slideModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.slides = render.Slides(m.report, m.bodyWidth())
		m.view = viewport.New(m.bodyWidth(), m.bodyHeight())
		m.view.Style = styleActiveBorder
		m.setContent()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, slideKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, slideKeys.Next):
			if m.idx < len(m.slides)-1 {
				m.idx++
				m.notice = ""
				m.setContent()
			}
			return m, nil

		case key.Matches(msg, slideKeys.Prev):
			if m.idx > 0 {
				m.idx--
				m.notice = ""
				m.setContent()
			}
			return m, nil

		case key.Matches(msg, slideKeys.Copy):
			if !m.onFinale() {
				return m, nil
			}
			if err := m.copyFn(m.report.Finale.ShareText(m.report.Year)); err != nil {
				m.notice = "clipboard unavailable: " + err.Error()
			} else {
				m.notice = "Copied share text"
			}
			return m, nil
		}

		// arrows up/down, pgup/pgdn scroll long slides
		var cmd tea.Cmd
		m.view, cmd = m.view.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *slideModel) setContent() {
	if len(m.slides) == 0 {
		m.view.SetContent("")
		return
	}
	m.view.SetContent(m.slides[m.idx].Body)
	m.view.GotoTop()
}

func (m slideModel) View() string {
	if !m.ready || len(m.slides) == 0 {
		return ""
	}
	s := m.slides[m.idx]
	header := styleTitle.Render(fmt.Sprintf("%s  (%d/%d)", s.Title, m.idx+1, len(m.slides)))

	parts := []string{"<-/-> navigate", "up/dn scroll"}
	if m.onFinale() {
		parts = append(parts, "c copy share text")
	}
	parts = append(parts, "q quit")
	status := styleStatusBar.Render(strings.Join(parts, " | "))
	if m.notice != "" {
		status = lipgloss.JoinHorizontal(lipgloss.Top, styleNotice.Render(m.notice), status)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, m.view.View(), status)
}

func (m slideModel) bodyWidth() int {
	if m.width <= 0 {
		return 80
	}
	return max(m.width-4, 20)
}

func (m slideModel) bodyHeight() int {
	if m.height <= 0 {
		return 20
	}
	// header (1) + status (1) + borders (2)
	return max(m.height-4, 5)
}

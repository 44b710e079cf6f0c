package tui

import "github.com/charmbracelet/lipgloss"

// Role colors match the transcript renderer: blue user, green assistant,
// magenta tool.
var roleColors = map[string]lipgloss.Color{
	"user":      lipgloss.Color("12"),
	"assistant": lipgloss.Color("10"),
	"tool":      lipgloss.Color("13"),
}

var (
	accent = lipgloss.Color("12")
	muted  = lipgloss.Color("240")
	hilite = lipgloss.Color("11")
	frame  = lipgloss.Color("238")

	styleTitle     = lipgloss.NewStyle().Bold(true).Foreground(accent).Padding(0, 1)
	styleNotice    = lipgloss.NewStyle().Foreground(roleColors["assistant"]).Padding(0, 1)
	styleStatusBar = lipgloss.NewStyle().Foreground(muted).Padding(0, 1)
	stylePrompt    = lipgloss.NewStyle().Bold(true).Foreground(accent)

	styleActiveBorder = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent)
	styleListBorder   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(frame)

	styleCursor = lipgloss.NewStyle().Bold(true).Foreground(hilite)
	styleRow    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	styleDim    = lipgloss.NewStyle().Foreground(muted)
	styleTag    = lipgloss.NewStyle().Foreground(roleColors["tool"])
	styleFilter = lipgloss.NewStyle().Bold(true).Foreground(hilite)
	styleLink   = lipgloss.NewStyle().Underline(true).Foreground(accent)
)

func roleStyle(role string) lipgloss.Style {
	if c, ok := roleColors[role]; ok {
		return lipgloss.NewStyle().Foreground(c)
	}
	return styleDim
}

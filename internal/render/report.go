package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/Zuo-Peng/chat-wrapped/internal/stats"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
)

const (
	defaultWidth  = 80
	quoteMaxWidth = 280
	topWordsShown = 10
)

var (
	styleSlideTitle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Bold(true)

	styleBig = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Bold(true)

	styleDim = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	styleQuote = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Italic(true).
			PaddingLeft(2)

	styleBar = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	// GitHub-like greens, level 0..4
	levelStyles = [5]lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("237")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("22")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
	}
)

// Slide is one screen of the wrapped presentation.
type Slide struct {
	Title string
	Body  string
}

// Slides lays the report out as slides, skipping views with no data.
func Slides(r *stats.Report, width int) []Slide {
	if width <= 0 {
		width = defaultWidth
	}
	var out []Slide
	if d := r.FirstConvo; d != nil {
		out = append(out, Slide{"Your first conversation", firstBody(d, width)})
	}
	if d := r.DaysActive; d != nil {
		out = append(out, Slide{"Days active", daysBody(d, r.Year)})
	}
	if d := r.TimeOfDay; d != nil {
		out = append(out, Slide{"When you chat", timeBody(d)})
	}
	if d := r.ToolsAndModels; d != nil && (len(d.Tools) > 0 || len(d.Models) > 0 || d.ThinkingModeCount > 0) {
		out = append(out, Slide{"Tools and models", toolsBody(d, width)})
	}
	if d := r.Generations; d != nil && (d.ImageCount > 0 || d.SoraVideoCount > 0) {
		out = append(out, Slide{"Generations", gensBody(d)})
	}
	if d := r.ChatsAndMessages; d != nil {
		out = append(out, Slide{"Chats and messages", chatsBody(d, width)})
	}
	if d := r.Finale; d != nil {
		out = append(out, Slide{fmt.Sprintf("Your %d, wrapped", r.Year), finaleBody(d, r.Year, width)})
	}
	return out
}

// Text renders every slide one after another.
func Text(r *stats.Report, width int) string {
	slides := Slides(r, width)
	if len(slides) == 0 {
		return fmt.Sprintf("No conversations found for %d.\n", r.Year)
	}
	var b strings.Builder
	for i, s := range slides {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(styleSlideTitle.Render(s.Title))
		b.WriteString("\n\n")
		b.WriteString(s.Body)
		b.WriteString("\n")
	}
	return b.String()
}

func firstBody(d *stats.FirstConversationData, width int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", styleDim.Render(d.Date.Format("Monday, January 2, 2006 at 3:04 PM")))
	fmt.Fprintf(&b, "%s\n", styleBig.Render(d.Title))
	if d.FirstUserMessage != "" {
		fmt.Fprintf(&b, "\nYou asked:\n%s\n", quote(d.FirstUserMessage, width))
	}
	if d.FirstAssistantMessage != "" {
		fmt.Fprintf(&b, "\nChatGPT said:\n%s\n", quote(d.FirstAssistantMessage, width))
	}
	return strings.TrimRight(b.String(), "\n")
}

func quote(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	if runewidth.StringWidth(s) > quoteMaxWidth {
		s = runewidth.Truncate(s, quoteMaxWidth, "...")
	}
	return styleQuote.Width(max(width-2, 20)).Render(s)
}

func daysBody(d *stats.DaysActiveData, year int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s days active", styleBig.Render(humanize.Comma(int64(d.TotalDays))))
	if d.TotalDays != d.ActiveDaysInYear {
		fmt.Fprintf(&b, " (%d in %d)", d.ActiveDaysInYear, year)
	}
	fmt.Fprintf(&b, "\nLongest streak: %s\n\n", styleBig.Render(plural(d.LongestStreak, "day")))
	b.WriteString(Heatmap(d.Contributions))
	return b.String()
}

// Heatmap draws the contribution calendar as seven weekday rows, one
// column per week.
func Heatmap(days []stats.Contribution) string {
	if len(days) == 0 {
		return ""
	}
	first, err := time.Parse("2006-01-02", days[0].Date)
	if err != nil {
		return ""
	}
	offset := int(first.Weekday())
	weeks := (offset + len(days) + 6) / 7

	var rows [7][]string
	for wd := range rows {
		rows[wd] = make([]string, weeks)
		for w := range rows[wd] {
			rows[wd][w] = " "
		}
	}
	for i, c := range days {
		pos := offset + i
		level := min(max(c.Level, 0), 4)
		cell := "■"
		if level == 0 {
			cell = "·"
		}
		rows[pos%7][pos/7] = levelStyles[level].Render(cell)
	}

	lines := make([]string, 7)
	for wd, row := range rows {
		lines[wd] = strings.Join(row, "")
	}
	return strings.Join(lines, "\n")
}

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

func timeBody(d *stats.TimeOfDayData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You're %s.\n", styleBig.Render(d.PersonalityType.Article()))
	if top := d.MostActiveHour(); top.Count > 0 {
		fmt.Fprintf(&b, "Most active around %s (%s).\n", top.Label, plural(top.Count, "conversation"))
	}
	fmt.Fprintf(&b, "Weekdays %d%%  Weekends %d%%\n\n", d.WeekdayPercentage, d.WeekendPercentage)
	b.WriteString(Sparkline(d.HourlyData))
	b.WriteString("\n")
	b.WriteString(styleDim.Render(fmt.Sprintf("%-12s%-12s%-12s%-12s", "12am", "6am", "12pm", "6pm")))
	return b.String()
}

// Sparkline draws one two-column bar per hour.
func Sparkline(hours []stats.HourBucket) string {
	peak := 0
	for _, h := range hours {
		peak = max(peak, h.Count)
	}
	var b strings.Builder
	for _, h := range hours {
		if peak == 0 || h.Count == 0 {
			b.WriteString("  ")
			continue
		}
		idx := (h.Count*len(sparkBlocks) - 1) / peak
		block := string(sparkBlocks[idx])
		b.WriteString(styleBar.Render(block + block))
	}
	return b.String()
}

func toolsBody(d *stats.ToolsAndModelsData, width int) string {
	var b strings.Builder
	if len(d.Tools) > 0 {
		b.WriteString("Tools\n")
		b.WriteString(barChart(d.Tools, width))
	}
	if len(d.Models) > 0 {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("Models\n")
		b.WriteString(barChart(d.Models, width))
	}
	if d.ThinkingModeCount > 0 {
		fmt.Fprintf(&b, "\n%s with thinking mode\n", styleBig.Render(plural(d.ThinkingModeCount, "response")))
	}
	return strings.TrimRight(b.String(), "\n")
}

func barChart(items []stats.NameCount, width int) string {
	labelW, peak := 0, 0
	for _, it := range items {
		labelW = max(labelW, runewidth.StringWidth(it.Name))
		peak = max(peak, it.Count)
	}
	labelW = min(labelW, 24)
	barMax := max(width-labelW-12, 10)

	var b strings.Builder
	for _, it := range items {
		name := runewidth.FillRight(runewidth.Truncate(it.Name, labelW, "…"), labelW)
		n := max(it.Count*barMax/max(peak, 1), 1)
		fmt.Fprintf(&b, "  %s %s %s\n", name, styleBar.Render(strings.Repeat("█", n)), humanize.Comma(int64(it.Count)))
	}
	return b.String()
}

func gensBody(d *stats.GenerationsData) string {
	var lines []string
	if d.ImageCount > 0 {
		lines = append(lines, fmt.Sprintf("%s generated", styleBig.Render(plural(d.ImageCount, "image"))))
	}
	if d.SoraVideoCount > 0 {
		lines = append(lines, fmt.Sprintf("%s made with Sora", styleBig.Render(plural(d.SoraVideoCount, "video"))))
	}
	return strings.Join(lines, "\n")
}

func chatsBody(d *stats.ChatsAndMessagesData, width int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s sent\n",
		styleBig.Render(plural(d.TotalChats, "chat")),
		styleBig.Render(plural(d.TotalMessages, "message")))
	if words := d.TopWords(topWordsShown); len(words) > 0 {
		b.WriteString("\nWhat you talked about\n")
		items := make([]stats.NameCount, len(words))
		for i, w := range words {
			items[i] = stats.NameCount{Name: w.Word, Count: w.Count}
		}
		b.WriteString(barChart(items, width))
	}
	return strings.TrimRight(b.String(), "\n")
}

func finaleBody(d *stats.FinaleSlideData, year, width int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s  %s\n\n",
		styleBig.Render(plural(d.TotalChats, "chat")),
		styleBig.Render(plural(d.DaysUsed, "day")),
		styleBig.Render(string(d.PersonalityType)))
	if n := len(d.ImagePaths); n > 0 {
		fmt.Fprintf(&b, "%s\n\n", styleDim.Render(plural(n, "image")+" in your archive"))
	}
	b.WriteString(styleQuote.Width(max(width-2, 20)).Render(d.ShareText(year)))
	return b.String()
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return humanize.Comma(int64(n)) + " " + unit + "s"
}

// Markdown renders the report as a markdown document.
func Markdown(r *stats.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Your %d, wrapped\n\n", r.Year)
	if r.Empty() {
		fmt.Fprintf(&b, "No conversations found for %d.\n", r.Year)
	}

	if d := r.FirstConvo; d != nil {
		b.WriteString("## Your first conversation\n\n")
		fmt.Fprintf(&b, "**%s** on %s\n\n", d.Title, d.Date.Format("January 2, 2006"))
		if d.FirstUserMessage != "" {
			fmt.Fprintf(&b, "> %s\n\n", oneLine(d.FirstUserMessage))
		}
	}
	if d := r.DaysActive; d != nil {
		b.WriteString("## Days active\n\n")
		fmt.Fprintf(&b, "- Days active: **%s**\n", humanize.Comma(int64(d.TotalDays)))
		fmt.Fprintf(&b, "- Longest streak: **%s**\n\n", plural(d.LongestStreak, "day"))
	}
	if d := r.TimeOfDay; d != nil {
		b.WriteString("## When you chat\n\n")
		fmt.Fprintf(&b, "You're **%s**. ", d.PersonalityType.Article())
		fmt.Fprintf(&b, "Most active around %s. ", d.MostActiveHour().Label)
		fmt.Fprintf(&b, "Weekdays %d%%, weekends %d%%.\n\n", d.WeekdayPercentage, d.WeekendPercentage)
	}
	if d := r.ToolsAndModels; d != nil {
		b.WriteString("## Tools and models\n\n")
		writeTable(&b, "Tool", d.Tools)
		writeTable(&b, "Model", d.Models)
		fmt.Fprintf(&b, "Thinking mode responses: **%s**\n\n", humanize.Comma(int64(d.ThinkingModeCount)))
	}
	if d := r.Generations; d != nil {
		b.WriteString("## Generations\n\n")
		fmt.Fprintf(&b, "- Images: **%s**\n", humanize.Comma(int64(d.ImageCount)))
		fmt.Fprintf(&b, "- Sora videos: **%s**\n\n", humanize.Comma(int64(d.SoraVideoCount)))
	}
	if d := r.ChatsAndMessages; d != nil {
		b.WriteString("## Chats and messages\n\n")
		fmt.Fprintf(&b, "%s, %s sent.\n\n", plural(d.TotalChats, "chat"), plural(d.TotalMessages, "message"))
		words := d.TopWords(topWordsShown)
		items := make([]stats.NameCount, len(words))
		for i, w := range words {
			items[i] = stats.NameCount{Name: w.Word, Count: w.Count}
		}
		writeTable(&b, "Word", items)
	}
	if d := r.Finale; d != nil {
		b.WriteString("---\n\n")
		fmt.Fprintf(&b, "%s\n", d.ShareText(r.Year))
	}
	return b.String()
}

func writeTable(b *strings.Builder, heading string, items []stats.NameCount) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "| %s | Count |\n|---|---:|\n", heading)
	for _, it := range items {
		fmt.Fprintf(b, "| %s | %s |\n", strings.ReplaceAll(it.Name, "|", `\|`), humanize.Comma(int64(it.Count)))
	}
	b.WriteString("\n")
}

func oneLine(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return runewidth.Truncate(s, quoteMaxWidth, "...")
}

// Glamour renders markdown for the terminal.
func Glamour(md string, width int) (string, error) {
	if width <= 0 {
		width = defaultWidth
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}

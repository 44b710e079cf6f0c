package render

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/Zuo-Peng/chat-wrapped/internal/index"
	"github.com/Zuo-Peng/chat-wrapped/internal/parse"
	"github.com/Zuo-Peng/chat-wrapped/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiRe = regexp.MustCompile("\x1b\\[[0-9;]*m")

func stripANSI(s string) string {
	return ansiRe.ReplaceAllString(s, "")
}

func TestHighlightKeywords(t *testing.T) {
	got := highlightKeywords("Pasta and more PASTA", "pasta OR pizza")
	assert.Equal(t, colorBoldRed+"Pasta"+colorReset+" and more "+colorBoldRed+"PASTA"+colorReset, got)
	assert.Equal(t, "plain", highlightKeywords("plain", ""))
	assert.Equal(t, "a AND b", highlightKeywords("a AND b", "AND"))
	assert.Equal(t, "x "+colorBoldRed+"c++"+colorReset, highlightKeywords("x c++", `"c++"`))
}

func TestWrapLine(t *testing.T) {
	assert.Equal(t, []string{"abcd", "ef"}, wrapLine("abcdef", 4))
	assert.Equal(t, []string{"日本", "語"}, wrapLine("日本語", 4))
	assert.Equal(t, []string{"\033[1mab", "cd\033[0m"}, wrapLine("\033[1mabcd\033[0m", 2))
	assert.Equal(t, []string{""}, wrapLine("", 5))
	assert.Equal(t, []string{"no wrap"}, wrapLine("no wrap", 0))
}

func TestIndentLines(t *testing.T) {
	assert.Equal(t, "  a\n  b", indentLines("a\nb", "  "))
}

func TestRenderConversation(t *testing.T) {
	db, err := index.OpenMemory()
	require.NoError(t, err)
	defer db.Close()

	convs, err := parse.DecodeConversations(strings.NewReader(`[{"id":"c1","title":"","create_time":1748772000,"mapping":{
		"r":{"children":["u"]},
		"u":{"parent":"r","children":["a"],"message":{"author":{"role":"user"},"content":"find pasta"}},
		"a":{"parent":"u","children":["t"],"message":{"author":{"role":"assistant"},"recipient":"web.run","metadata":{"model_slug":"gpt-4o"},"content":"searching"}},
		"t":{"parent":"a","message":{"author":{"role":"tool"},"content":"Pasta results"}}
	}}]`))
	require.NoError(t, err)
	_, err = index.Build(db, convs, time.UTC, nil)
	require.NoError(t, err)

	out, hitLine, err := RenderConversation(db, "c1", Options{HitSeq: 2, Query: "pasta"})
	require.NoError(t, err)
	plain := stripANSI(out)
	assert.Contains(t, plain, "--- c1 [2025-06-01T10:00:00Z] Untitled Conversation ---")
	assert.Contains(t, plain, "ASST -> Web Search > 2025-06-01T10:00:00Z gpt-4o")
	assert.Contains(t, plain, ">> TOOL > 2025-06-01T10:00:00Z <<")
	assert.Contains(t, plain, "  Pasta results")

	lines := strings.Split(plain, "\n")
	require.Greater(t, len(lines), hitLine)
	assert.True(t, strings.HasPrefix(lines[hitLine], ">> TOOL"))

	_, _, err = RenderConversation(db, "missing", Options{})
	assert.Error(t, err)
}

func sampleReport() *stats.Report {
	days := make([]stats.Contribution, 365)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range days {
		days[i] = stats.Contribution{Date: start.AddDate(0, 0, i).Format("2006-01-02")}
	}
	days[0] = stats.Contribution{Date: "2025-01-01", Count: 2, Level: 4}
	hours := make([]stats.HourBucket, 24)
	for h := range hours {
		hours[h] = stats.HourBucket{Hour: h, Label: stats.HourLabel(h)}
	}
	hours[23].Count = 2

	chats := &stats.ChatsAndMessagesData{
		TotalChats:      1234,
		TotalMessages:   1,
		WordFrequencies: []stats.WordCount{{Word: "italy", Count: 3}, {Word: "pasta", Count: 1}},
	}
	daysActive := &stats.DaysActiveData{TotalDays: 1, LongestStreak: 1, ActiveDaysInYear: 1, Contributions: days}
	tod := &stats.TimeOfDayData{HourlyData: hours, WeekdayCount: 2, WeekdayPercentage: 100, PersonalityType: stats.NightOwl}
	gens := &stats.GenerationsData{ImagePaths: []string{"user-1/a.png"}, ImageCount: 1, SoraVideoCount: 2}
	return &stats.Report{
		Year: 2025,
		FirstConvo: &stats.FirstConversationData{
			Date:             time.Date(2025, 1, 1, 23, 5, 0, 0, time.UTC),
			Title:            "Italy trip",
			FirstUserMessage: "Plan my   Italy\ntrip",
		},
		DaysActive: daysActive,
		TimeOfDay:  tod,
		ToolsAndModels: &stats.ToolsAndModelsData{
			Tools:             []stats.NameCount{{Name: "Web Search", Count: 4}},
			Models:            []stats.NameCount{{Name: "gpt-4o", Count: 10}},
			ThinkingModeCount: 1,
		},
		Generations:      gens,
		ChatsAndMessages: chats,
		Finale:           stats.Finale(chats, daysActive, tod, gens),
	}
}

func TestSlides(t *testing.T) {
	slides := Slides(sampleReport(), 80)
	var titles []string
	for _, s := range slides {
		titles = append(titles, s.Title)
	}
	assert.Equal(t, []string{
		"Your first conversation",
		"Days active",
		"When you chat",
		"Tools and models",
		"Generations",
		"Chats and messages",
		"Your 2025, wrapped",
	}, titles)

	r := sampleReport()
	r.ToolsAndModels = &stats.ToolsAndModelsData{}
	r.Generations = &stats.GenerationsData{}
	assert.Len(t, Slides(r, 80), 5)
}

func TestText(t *testing.T) {
	out := stripANSI(Text(sampleReport(), 80))
	assert.Contains(t, out, "Wednesday, January 1, 2025 at 11:05 PM")
	assert.Contains(t, out, "Plan my Italy trip")
	assert.Contains(t, out, "You're a night owl.")
	assert.Contains(t, out, "Most active around 11pm (2 conversations).")
	assert.Contains(t, out, "1 response with thinking mode")
	assert.Contains(t, out, "2 videos made with Sora")
	assert.Contains(t, out, "1,234 chats")
	assert.Contains(t, out, "My 2025 in ChatGPT: 1,234 chats across 1 days. I'm a night owl.")

	empty := Text(&stats.Report{Year: 2024}, 80)
	assert.Equal(t, "No conversations found for 2024.\n", empty)
}

func TestHeatmap(t *testing.T) {
	out := stripANSI(Heatmap(sampleReport().DaysActive.Contributions))
	rows := strings.Split(out, "\n")
	require.Len(t, rows, 7)
	// 2025-01-01 is a Wednesday: the first column is blank until row 3
	assert.True(t, strings.HasPrefix(rows[0], " "))
	assert.True(t, strings.HasPrefix(rows[3], "■"))
	assert.True(t, strings.HasPrefix(rows[4], "·"))
	assert.Equal(t, "", Heatmap(nil))
}

func TestSparkline(t *testing.T) {
	hours := make([]stats.HourBucket, 24)
	hours[0].Count = 1
	hours[1].Count = 8
	out := stripANSI(Sparkline(hours))
	assert.True(t, strings.HasPrefix(out, "▁▁██"))
	assert.Equal(t, 48, len([]rune(out)))
}

func TestMarkdown(t *testing.T) {
	md := Markdown(sampleReport())
	assert.Contains(t, md, "# Your 2025, wrapped")
	assert.Contains(t, md, "| Tool | Count |")
	assert.Contains(t, md, "| Web Search | 4 |")
	assert.Contains(t, md, "| italy | 3 |")
	assert.Contains(t, md, "> Plan my Italy trip")

	out, err := Glamour(md, 60)
	require.NoError(t, err)
	assert.Contains(t, stripANSI(out), "Web Search")
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "1 day", plural(1, "day"))
	assert.Equal(t, "0 days", plural(0, "day"))
	assert.Equal(t, "12,000 chats", plural(12000, "chat"))
}

package stats

import (
	"fmt"
	"strings"
	"time"

	"github.com/Zuo-Peng/chat-wrapped/internal/archive"
	"github.com/dustin/go-humanize"
)

// UntitledConversation replaces a blank title.
const UntitledConversation = "Untitled Conversation"

type FirstConversationData struct {
	Date                  time.Time `json:"date" yaml:"date"`
	Title                 string    `json:"title" yaml:"title"`
	FirstUserMessage      string    `json:"firstUserMessage,omitempty" yaml:"firstUserMessage,omitempty"`
	FirstAssistantMessage string    `json:"firstAssistantMessage,omitempty" yaml:"firstAssistantMessage,omitempty"`
	ConversationID        string    `json:"conversationId,omitempty" yaml:"conversationId,omitempty"`
}

// Contribution is one day of the activity calendar.
type Contribution struct {
	Date  string `json:"date" yaml:"date"` // YYYY-MM-DD, local
	Count int    `json:"count" yaml:"count"`
	Level int    `json:"level" yaml:"level"` // 0..4
}

type DaysActiveData struct {
	TotalDays        int            `json:"totalDays" yaml:"totalDays"`
	LongestStreak    int            `json:"longestStreak" yaml:"longestStreak"`
	ActiveDaysInYear int            `json:"activeDaysInYear" yaml:"activeDaysInYear"`
	Contributions    []Contribution `json:"contributions" yaml:"contributions"`
}

type HourBucket struct {
	Hour  int    `json:"hour" yaml:"hour"`
	Label string `json:"label" yaml:"label"`
	Count int    `json:"count" yaml:"count"`
}

type PersonalityType string

const (
	NightOwl      PersonalityType = "night owl"
	EarlyBird     PersonalityType = "early bird"
	AllDayChatter PersonalityType = "all-day chatter"
)

// Article returns the type with its indefinite article, e.g. "an early bird".
func (p PersonalityType) Article() string {
	if p == "" {
		return ""
	}
	if strings.ContainsRune("aeiou", rune(p[0])) {
		return "an " + string(p)
	}
	return "a " + string(p)
}

type TimeOfDayData struct {
	HourlyData        []HourBucket    `json:"hourlyData" yaml:"hourlyData"`
	WeekdayCount      int             `json:"weekdayCount" yaml:"weekdayCount"`
	WeekendCount      int             `json:"weekendCount" yaml:"weekendCount"`
	WeekdayPercentage int             `json:"weekdayPercentage" yaml:"weekdayPercentage"`
	WeekendPercentage int             `json:"weekendPercentage" yaml:"weekendPercentage"`
	PersonalityType   PersonalityType `json:"personalityType" yaml:"personalityType"`
}

// MostActiveHour returns the busiest bucket; the earliest hour wins ties.
func (d *TimeOfDayData) MostActiveHour() HourBucket {
	var best HourBucket
	for i, b := range d.HourlyData {
		if i == 0 || b.Count > best.Count {
			best = b
		}
	}
	return best
}

type NameCount struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

type ToolsAndModelsData struct {
	Tools             []NameCount `json:"tools" yaml:"tools"`
	Models            []NameCount `json:"models" yaml:"models"`
	ThinkingModeCount int         `json:"thinkingModeCount" yaml:"thinkingModeCount"`
}

// GenerationsData owns the selected image files; callers release any view
// handles they derive from them.
type GenerationsData struct {
	ImageFiles     []archive.File `json:"-" yaml:"-"`
	ImagePaths     []string       `json:"imagePaths" yaml:"imagePaths"`
	ImageCount     int            `json:"imageCount" yaml:"imageCount"`
	SoraVideoCount int            `json:"soraVideoCount" yaml:"soraVideoCount"`
}

type WordCount struct {
	Word  string `json:"word" yaml:"word"`
	Count int    `json:"count" yaml:"count"`
}

type ChatsAndMessagesData struct {
	TotalChats      int         `json:"totalChats" yaml:"totalChats"`
	TotalMessages   int         `json:"totalMessages" yaml:"totalMessages"`
	WordFrequencies []WordCount `json:"wordFrequencies" yaml:"wordFrequencies"`
}

// TopWords returns at most n ranked words.
func (d *ChatsAndMessagesData) TopWords(n int) []WordCount {
	if n < 0 || n >= len(d.WordFrequencies) {
		return d.WordFrequencies
	}
	return d.WordFrequencies[:n]
}

type FinaleSlideData struct {
	TotalChats      int             `json:"totalChats" yaml:"totalChats"`
	DaysUsed        int             `json:"daysUsed" yaml:"daysUsed"`
	PersonalityType PersonalityType `json:"personalityType" yaml:"personalityType"`
	ImageFiles      []archive.File  `json:"-" yaml:"-"`
	ImagePaths      []string        `json:"imagePaths" yaml:"imagePaths"`
}

// ShareText is the one-line summary offered for copying.
func (d *FinaleSlideData) ShareText(year int) string {
	return fmt.Sprintf("My %d in ChatGPT: %s chats across %s days. I'm %s.",
		year, humanize.Comma(int64(d.TotalChats)), humanize.Comma(int64(d.DaysUsed)), d.PersonalityType.Article())
}

func imagePaths(files []archive.File) []string {
	paths := make([]string, 0, len(files))
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	return paths
}

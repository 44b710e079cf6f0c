package stats

import (
	"sort"
	"time"

	"github.com/Zuo-Peng/chat-wrapped/internal/parse"
)

const dateLayout = "2006-01-02"

// DaysActive buckets conversations by local calendar date and builds the
// Jan 1 - Dec 31 contribution calendar.
func DaysActive(convs []parse.Conversation, opts Options) *DaysActiveData {
	if len(convs) == 0 {
		return nil
	}
	opts = opts.normalized()

	dayCounts := make(map[string]int)
	for _, c := range convs {
		dayCounts[c.Created(opts.Location).Format(dateLayout)]++
	}

	dates := make([]string, 0, len(dayCounts))
	maxCount := 1
	for d, n := range dayCounts {
		dates = append(dates, d)
		if n > maxCount {
			maxCount = n
		}
	}
	sort.Strings(dates)

	total := len(dayCounts)
	return &DaysActiveData{
		TotalDays:        total,
		LongestStreak:    longestStreak(dates),
		ActiveDaysInYear: total,
		Contributions:    calendar(opts.Year, dayCounts, maxCount),
	}
}

// longestStreak counts the longest run of consecutive dates in a sorted
// list. Dates are compared as calendar days, so DST shifts do not break a run.
func longestStreak(sorted []string) int {
	longest, current := 0, 0
	var prev time.Time
	for i, s := range sorted {
		day, err := time.Parse(dateLayout, s)
		if err != nil {
			continue
		}
		if i > 0 && day.Sub(prev) == 24*time.Hour {
			current++
		} else {
			current = 1
		}
		if current > longest {
			longest = current
		}
		prev = day
	}
	return longest
}

func calendar(year int, dayCounts map[string]int, maxCount int) []Contribution {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC)

	var out []Contribution
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(dateLayout)
		count := dayCounts[key]
		out = append(out, Contribution{
			Date:  key,
			Count: count,
			Level: contributionLevel(count, maxCount),
		})
	}
	return out
}

func contributionLevel(count, maxCount int) int {
	if count <= 0 {
		return 0
	}
	if maxCount == 1 {
		return 1
	}
	ratio := float64(count) / float64(maxCount)
	switch {
	case ratio >= 0.8:
		return 4
	case ratio >= 0.6:
		return 3
	case ratio >= 0.4:
		return 2
	default:
		return 1
	}
}

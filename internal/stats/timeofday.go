package stats

import (
	"fmt"
	"math"
	"time"

	"github.com/Zuo-Peng/chat-wrapped/internal/parse"
)

// nightOwlThreshold is the share of conversations (percent) that makes a
// slot win outright.
const nightOwlThreshold = 30

// TimeOfDay builds the hourly histogram, the weekday/weekend split and the
// personality type.
func TimeOfDay(convs []parse.Conversation, opts Options) *TimeOfDayData {
	if len(convs) == 0 {
		return nil
	}
	opts = opts.normalized()

	var hours [24]int
	var weekday, weekend int
	for _, c := range convs {
		t := c.Created(opts.Location)
		hours[t.Hour()]++
		if wd := t.Weekday(); wd == time.Saturday || wd == time.Sunday {
			weekend++
		} else {
			weekday++
		}
	}

	total := float64(len(convs))
	// weekend takes the remainder so the pair always sums to 100
	weekdayPct := int(math.Round(float64(weekday) / total * 100))
	buckets := make([]HourBucket, 24)
	for h := range hours {
		buckets[h] = HourBucket{Hour: h, Label: HourLabel(h), Count: hours[h]}
	}

	return &TimeOfDayData{
		HourlyData:        buckets,
		WeekdayCount:      weekday,
		WeekendCount:      weekend,
		WeekdayPercentage: weekdayPct,
		WeekendPercentage: 100 - weekdayPct,
		PersonalityType:   classify(hours, total),
	}
}

// HourLabel renders 0..23 as 12am, 1am ... 12pm ... 11pm.
func HourLabel(h int) string {
	switch {
	case h == 0:
		return "12am"
	case h < 12:
		return fmt.Sprintf("%dam", h)
	case h == 12:
		return "12pm"
	default:
		return fmt.Sprintf("%dpm", h-12)
	}
}

func classify(hours [24]int, total float64) PersonalityType {
	sum := func(hs ...int) float64 {
		n := 0
		for _, h := range hs {
			n += hours[h]
		}
		return float64(n) / total * 100
	}
	night := sum(22, 23, 0, 1, 2, 3, 4, 5)
	morning := sum(6, 7, 8, 9, 10, 11)
	afternoon := sum(12, 13, 14, 15, 16, 17)
	evening := sum(18, 19, 20, 21)
	top := math.Max(math.Max(night, morning), math.Max(afternoon, evening))

	wins := func(p float64) bool {
		return p > nightOwlThreshold || (p == top && p > 0)
	}
	switch {
	case wins(night):
		return NightOwl
	case wins(morning):
		return EarlyBird
	default:
		return AllDayChatter
	}
}

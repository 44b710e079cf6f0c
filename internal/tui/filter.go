package tui

import (
	"fmt"
	"time"

	"github.com/Zuo-Peng/chat-wrapped/internal/search"
)

// roleCycle is the order the role key steps through; "" shows every role.
var roleCycle = []string{"", "user", "assistant", "tool"}

// filter narrows the browser to one author role and one month of the year.
type filter struct {
	year  int
	role  int        // index into roleCycle
	month time.Month // 0 = whole year
}

func newFilter(year int, role string) filter {
	f := filter{year: year}
	for i, r := range roleCycle {
		if r == role {
			f.role = i
		}
	}
	return f
}

func (f filter) Role() string {
	return roleCycle[f.role]
}

func (f filter) nextRole() filter {
	f.role = (f.role + 1) % len(roleCycle)
	return f
}

// shiftMonth steps through whole year, January ... December, whole year.
func (f filter) shiftMonth(delta int) filter {
	if f.year == 0 {
		return f
	}
	m := (int(f.month) + delta) % 13
	if m < 0 {
		m += 13
	}
	f.month = time.Month(m)
	return f
}

// apply layers the filter over the command-line options. With no month
// picked, the base Since/Until stay as given.
func (f filter) apply(base search.Options) search.Options {
	opts := base
	opts.Role = f.Role()
	if f.month != 0 {
		start := time.Date(f.year, f.month, 1, 0, 0, 0, 0, time.UTC)
		opts.Since = start.Format(time.DateOnly)
		opts.Until = start.AddDate(0, 1, 0).Format(time.DateOnly)
	}
	return opts
}

func (f filter) String() string {
	role := "all roles"
	if r := f.Role(); r != "" {
		role = r
	}
	month := "whole year"
	if f.month != 0 {
		month = fmt.Sprintf("%s %d", f.month.String()[:3], f.year)
	}
	return role + ", " + month
}

package stats

import (
	"time"

	"github.com/Zuo-Peng/chat-wrapped/internal/parse"
)

const DefaultYear = 2025

// Options selects the target year and the zone used for local dates.
type Options struct {
	Year       int
	Location   *time.Location
	StrictYear bool // also drop conversations created after the year
	StopWords  []string
}

func DefaultOptions() Options {
	return Options{Year: DefaultYear, Location: time.Local}
}

func (o Options) normalized() Options {
	if o.Year == 0 {
		o.Year = DefaultYear
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	return o
}

func (o Options) Window() parse.Window {
	o = o.normalized()
	return parse.YearWindow(o.Year, o.Location, o.StrictYear)
}

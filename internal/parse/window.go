package parse

import "time"

// Window is the year filter. The lower bound is inclusive. Without Strict
// there is no upper bound, so conversations from later years pass.
type Window struct {
	Year   int
	Start  int64 // epoch seconds of Jan 1 00:00 local
	End    int64 // epoch seconds of the next Jan 1, used only when Strict
	Strict bool
	Loc    *time.Location
}

func YearWindow(year int, loc *time.Location, strict bool) Window {
	if loc == nil {
		loc = time.Local
	}
	return Window{
		Year:   year,
		Start:  time.Date(year, time.January, 1, 0, 0, 0, 0, loc).Unix(),
		End:    time.Date(year+1, time.January, 1, 0, 0, 0, 0, loc).Unix(),
		Strict: strict,
		Loc:    loc,
	}
}

func (w Window) Contains(createTime float64) bool {
	if createTime < float64(w.Start) {
		return false
	}
	return !w.Strict || createTime < float64(w.End)
}

// Filter returns the conversations inside the window, in input order.
func (w Window) Filter(convs []Conversation) []Conversation {
	var out []Conversation
	for _, c := range convs {
		if w.Contains(c.CreateTime) {
			out = append(out, c)
		}
	}
	return out
}

// FilterSince keeps conversations created at or after start.
func FilterSince(convs []Conversation, start int64) []Conversation {
	return Window{Start: start}.Filter(convs)
}

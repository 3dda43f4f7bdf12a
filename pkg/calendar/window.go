package calendar

import (
	"fmt"
	"strings"
)

// View identifies a planner calendar view.
type View string

const (
	ViewDay   View = "day"
	ViewWeek  View = "week"
	ViewMonth View = "month"
	ViewYear  View = "year"
)

// AllViews returns the supported views from narrowest to widest.
func AllViews() []View {
	return []View{ViewDay, ViewWeek, ViewMonth, ViewYear}
}

// ParseView converts a string to a View. Empty input means the day view.
func ParseView(raw string) (View, error) {
	v := View(strings.ToLower(strings.TrimSpace(raw)))
	if v == "" {
		return ViewDay, nil
	}
	for _, candidate := range AllViews() {
		if candidate == v {
			return candidate, nil
		}
	}
	return ViewDay, fmt.Errorf("calendar: unknown view %q", raw)
}

// Window is an inclusive range of calendar days.
type Window struct {
	Start Day `json:"start"`
	End   Day `json:"end"`
}

// Contains reports whether Start <= d <= End.
func (w Window) Contains(d Day) bool {
	return !d.Before(w.Start) && !d.After(w.End)
}

// Days lists every day of the window in order.
func (w Window) Days() []Day {
	if w.End.Before(w.Start) {
		return nil
	}
	var out []Day
	for d := w.Start; !d.After(w.End); d = d.AddDays(1) {
		out = append(out, d)
	}
	return out
}

func (w Window) String() string {
	if w.Start.Equal(w.End) {
		return w.Start.String()
	}
	return w.Start.String() + ".." + w.End.String()
}

// Resolve computes the inclusive window a view covers around anchor. Weeks
// start on Sunday.
func Resolve(view View, anchor Day) Window {
	switch view {
	case ViewWeek:
		start := anchor.AddDays(-int(anchor.Weekday()))
		return Window{Start: start, End: start.AddDays(6)}
	case ViewMonth:
		return Window{
			Start: Day{Year: anchor.Year, Month: anchor.Month, Day: 1},
			End:   Day{Year: anchor.Year, Month: anchor.Month, Day: DaysIn(anchor.Year, anchor.Month)},
		}
	case ViewYear:
		return Window{
			Start: Day{Year: anchor.Year, Month: 1, Day: 1},
			End:   Day{Year: anchor.Year, Month: 12, Day: 31},
		}
	default:
		return Window{Start: anchor, End: anchor}
	}
}

// Shift moves anchor by n whole views, used for previous/next navigation.
func Shift(view View, anchor Day, n int) Day {
	switch view {
	case ViewWeek:
		return anchor.AddDays(7 * n)
	case ViewMonth:
		return anchor.AddMonths(n)
	case ViewYear:
		return anchor.AddMonths(12 * n)
	default:
		return anchor.AddDays(n)
	}
}

// Title is a human heading for the window of view around anchor.
func Title(view View, anchor Day) string {
	w := Resolve(view, anchor)
	switch view {
	case ViewWeek:
		return fmt.Sprintf("Week of %s – %s", w.Start.Format("January 2"), w.End.Format("January 2, 2006"))
	case ViewMonth:
		return anchor.Format("January 2006")
	case ViewYear:
		return anchor.Format("2006")
	default:
		return anchor.Format("Monday, January 2, 2006")
	}
}

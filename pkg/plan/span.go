package plan

import "tableflip.dev/planner/pkg/calendar"

// SpanType tags how an entity is placed on the calendar.
type SpanType int

const (
	// SpanAlways entities carry no dates and show in every window.
	SpanAlways SpanType = iota
	// SpanRange entities have optional start and end days.
	SpanRange
	// SpanPoint entities sit on a single optional day.
	SpanPoint
)

// Span is the calendar placement of an entity. Start and End are used by
// SpanRange, On by SpanPoint. Nil means the date is absent.
type Span struct {
	Type  SpanType
	Start *calendar.Day
	End   *calendar.Day
	On    *calendar.Day
}

// RangeSpan places an entity between two optional days.
func RangeSpan(start, end *calendar.Day) Span {
	return Span{Type: SpanRange, Start: present(start), End: present(end)}
}

// PointSpan places an entity on one optional day.
func PointSpan(on *calendar.Day) Span {
	return Span{Type: SpanPoint, On: present(on)}
}

func present(d *calendar.Day) *calendar.Day {
	if d == nil || d.IsZero() {
		return nil
	}
	return d
}

// Active reports whether the span shows in the window.
//
// A range with no dates is always active. A range with one date is open on
// the other side and only its present bound is checked against the opposite
// window edge, so a start long in the past still matches any later window.
// A point with no date is never active.
func (s Span) Active(w calendar.Window) bool {
	switch s.Type {
	case SpanRange:
		start, end := present(s.Start), present(s.End)
		switch {
		case start == nil && end == nil:
			return true
		case start != nil && end != nil:
			return !start.After(w.End) && !end.Before(w.Start)
		case start != nil:
			return !start.After(w.End)
		default:
			return !end.Before(w.Start)
		}
	case SpanPoint:
		on := present(s.On)
		if on == nil {
			return false
		}
		return w.Contains(*on)
	default:
		return true
	}
}

// IsActive reports whether e belongs in the window.
func IsActive(e Entity, w calendar.Window) bool {
	if e == nil {
		return false
	}
	return e.Span().Active(w)
}

// Filter keeps the entities active in the window, preserving order.
func Filter[E Entity](entities []E, w calendar.Window) []E {
	out := make([]E, 0, len(entities))
	for _, e := range entities {
		if IsActive(e, w) {
			out = append(out, e)
		}
	}
	return out
}

// Package calendar holds the calendar-day arithmetic shared by every planner
// view: civil days, view kinds and the inclusive windows they resolve to.
package calendar

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	layoutISO      = "2006-01-02"
	layoutISOShort = "2006-1-2"
)

// Day is a calendar day without time-of-day or zone. The zero Day means unset.
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

// Date builds a normalized Day, so Date(2024, 2, 30) is March 1, 2024.
func Date(year int, month time.Month, day int) Day {
	return DayOf(time.Date(year, month, day, 12, 0, 0, 0, time.UTC))
}

// DayOf returns the calendar day of t in t's own location.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day{Year: y, Month: m, Day: d}
}

// Today returns the local calendar day.
func Today() Day {
	return DayOf(time.Now())
}

// ParseDay accepts "2006-01-02", "2006-1-2" or an RFC3339 timestamp. Timestamps
// are reduced to their local date. An empty string yields the zero Day.
func ParseDay(v string) (Day, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return Day{}, nil
	}
	if t, err := time.Parse(layoutISO, v); err == nil {
		return DayOf(t), nil
	}
	if t, err := time.Parse(layoutISOShort, v); err == nil {
		return DayOf(t), nil
	}
	if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
		return DayOf(t.Local()), nil
	}
	return Day{}, fmt.Errorf("calendar: invalid date %q", v)
}

// MustParseDay is ParseDay that panics. Intended for tests and constants.
func MustParseDay(v string) Day {
	d, err := ParseDay(v)
	if err != nil {
		panic(err)
	}
	return d
}

// IsZero reports whether d is unset.
func (d Day) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Compare returns -1, 0 or +1.
func (d Day) Compare(o Day) int {
	switch {
	case d.Year != o.Year:
		return sign(d.Year - o.Year)
	case d.Month != o.Month:
		return sign(int(d.Month) - int(o.Month))
	default:
		return sign(d.Day - o.Day)
	}
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

func (d Day) Before(o Day) bool { return d.Compare(o) < 0 }
func (d Day) After(o Day) bool  { return d.Compare(o) > 0 }
func (d Day) Equal(o Day) bool  { return d.Compare(o) == 0 }

// Time returns midnight of d in loc.
func (d Day) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// noon in UTC keeps AddDate clear of DST edges.
func (d Day) noon() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, time.UTC)
}

// AddDays returns d shifted by n days.
func (d Day) AddDays(n int) Day {
	return DayOf(d.noon().AddDate(0, 0, n))
}

// AddMonths returns the same day-of-month n months away, clamped to the last
// day of the target month.
func (d Day) AddMonths(n int) Day {
	first := time.Date(d.Year, d.Month, 1, 12, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	last := DaysIn(first.Year(), first.Month())
	day := d.Day
	if day > last {
		day = last
	}
	return Day{Year: first.Year(), Month: first.Month(), Day: day}
}

// Weekday of d.
func (d Day) Weekday() time.Weekday {
	return d.noon().Weekday()
}

func (d Day) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Format renders d with a time layout.
func (d Day) Format(layout string) string {
	return d.noon().Format(layout)
}

func (d Day) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Day) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Day{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("calendar: date must be a string: %w", err)
	}
	parsed, err := ParseDay(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DaysIn returns the number of days in the month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

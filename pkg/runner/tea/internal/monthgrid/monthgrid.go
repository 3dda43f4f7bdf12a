// Package monthgrid renders Sunday-first month grids for the planner UI.
package monthgrid

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/planner/pkg/calendar"
)

// Options controls grid styling.
type Options struct {
	HeaderStyle lipgloss.Style
	EmptyStyle  lipgloss.Style
	BusyStyle   lipgloss.Style
	TodayStyle  lipgloss.Style
	ShowHeader  bool
}

// Render produces a multi-line grid for the month containing month.
// Days present in busy are highlighted.
func Render(month calendar.Day, busy map[calendar.Day]bool, today calendar.Day, opts Options) string {
	if month.IsZero() {
		return ""
	}

	first := calendar.Date(month.Year, month.Month, 1)
	daysInMonth := calendar.DaysIn(month.Year, month.Month)

	var lines []string
	if opts.ShowHeader {
		lines = append(lines, opts.HeaderStyle.Render(first.Format("January 2006")))
		lines = append(lines, opts.HeaderStyle.Render("Su Mo Tu We Th Fr Sa"))
	}

	startOffset := int(first.Weekday())
	rows := (startOffset + daysInMonth + 6) / 7

	for row := 0; row < rows; row++ {
		cells := make([]string, 0, 7)
		for col := 0; col < 7; col++ {
			day := row*7 + col - startOffset + 1
			if day < 1 || day > daysInMonth {
				cells = append(cells, opts.EmptyStyle.Render("  "))
				continue
			}
			d := calendar.Date(month.Year, month.Month, day)
			cells = append(cells, renderDay(d, busy[d], d.Equal(today), opts))
		}
		lines = append(lines, strings.Join(cells, " "))
	}

	return strings.Join(lines, "\n")
}

func renderDay(d calendar.Day, busy, today bool, opts Options) string {
	style := opts.EmptyStyle
	if busy {
		style = opts.BusyStyle
	}
	if today {
		style = style.Inherit(opts.TodayStyle)
	}
	return style.Render(fmt.Sprintf("%2d", d.Day))
}

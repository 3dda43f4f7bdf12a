package options

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/calendar"
)

// LogOptions
type LogOptions struct {
	Day   bool
	Week  bool
	Month bool
	Year  bool
	On    string
	Prev  int
	Next  int
}

func AddLogArgs(cmd *cobra.Command, o *LogOptions) {
	cmd.Flags().BoolVarP(&o.Day, "day", "d", false,
		"Show day log.")
	cmd.Flags().BoolVarP(&o.Week, "week", "w", false,
		"Show week log, Sunday first. The default.")
	cmd.Flags().BoolVarP(&o.Month, "month", "m", false,
		"Show month log.")
	cmd.Flags().BoolVarP(&o.Year, "year", "y", false,
		"Show year log.")
	cmd.Flags().StringVar(&o.On, "on", "",
		`Any day inside the period to show, example: --on="2024-03-13". Defaults to today.`)
	cmd.Flags().IntVar(&o.Prev, "prev", 0,
		"Go back this many periods.")
	cmd.Flags().IntVar(&o.Next, "next", 0,
		"Go forward this many periods.")
}

// View returns the single view selected by the flags.
func (o *LogOptions) View() (calendar.View, error) {
	var views []calendar.View
	for v, set := range map[calendar.View]bool{
		calendar.ViewDay:   o.Day,
		calendar.ViewWeek:  o.Week,
		calendar.ViewMonth: o.Month,
		calendar.ViewYear:  o.Year,
	} {
		if set {
			views = append(views, v)
		}
	}
	switch len(views) {
	case 0:
		return calendar.ViewWeek, nil
	case 1:
		return views[0], nil
	default:
		return "", errors.New("choose one of --day, --week, --month or --year")
	}
}

// Anchor parses --on; zero means today.
func (o *LogOptions) Anchor() (calendar.Day, error) {
	d, err := calendar.ParseDay(o.On)
	if err != nil {
		return d, fmt.Errorf("--on: %w", err)
	}
	return d, nil
}

// Offset is the number of periods to move, negative for earlier.
func (o *LogOptions) Offset() int {
	return o.Next - o.Prev
}

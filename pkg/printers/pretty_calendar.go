package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/calendar"
	"tableflip.dev/planner/pkg/plan"
)

// Plan prints a composed view: affirmations, visions, goals by vision and
// then the dated entities day by day.
func (pp *PrettyPrint) Plan(p app.Plan) {
	pp.TitleWithCount(p.Title, p.Total())
	pp.NewLine()

	warn := color.New(color.FgRed, color.Faint)
	for _, kind := range p.Failed {
		_, _ = warn.Fprintf(pp.out(), "could not load %s\n", kind.Plural())
	}
	if len(p.Failed) > 0 {
		pp.NewLine()
	}

	if len(p.Affirmations) > 0 {
		a := color.New(color.Italic, color.FgHiMagenta)
		for _, e := range p.Affirmations {
			_, _ = a.Fprintf(pp.out(), "  “%s”\n", e.Text)
		}
		pp.NewLine()
	}

	pp.section("Visions")
	Entities(pp, p.Visions)

	pp.section("Goals")
	if len(p.GoalsByVision) == 0 {
		pp.none()
	}
	sub := color.New(color.Italic)
	for _, g := range p.GoalsByVision {
		name := g.Vision
		if name == "" {
			name = "No vision"
		}
		_, _ = sub.Fprintln(pp.out(), name)
		Entities(pp, g.Goals)
	}

	switch p.View {
	case calendar.ViewMonth, calendar.ViewYear:
		pp.months(p)
	}

	pp.section("Days")
	if len(p.Days) == 0 {
		pp.none()
	}
	for _, d := range p.Days {
		pp.day(d)
	}
}

func (pp *PrettyPrint) section(name string) {
	_, _ = color.New(color.Bold).Fprintln(pp.out(), name)
}

func (pp *PrettyPrint) day(d app.DayPlan) {
	heading := color.New(color.Underline)
	if d.Day.Equal(calendar.Today()) {
		heading = color.New(color.Underline, color.Bold)
	}
	_, _ = heading.Fprintln(pp.out(), d.Day.Format("Mon Jan 2"))
	if d.Empty() {
		pp.none()
		return
	}
	for _, e := range d.Tasks {
		pp.Entity(e)
	}
	for _, e := range d.Todos {
		pp.Entity(e)
	}
	for _, e := range d.Words {
		pp.Entity(e)
	}
	pp.NewLine()
}

// months prints a grid per month of the window with busy days highlighted.
func (pp *PrettyPrint) months(p app.Plan) {
	busy := make(map[calendar.Day]int, len(p.Days))
	for _, d := range p.Days {
		busy[d.Day] = len(d.Tasks) + len(d.Todos) + len(d.Words)
	}
	for m := p.Window.Start; !m.After(p.Window.End); m = m.AddMonths(1) {
		count := make([]int, calendar.DaysIn(m.Year, m.Month))
		for i := range count {
			count[i] = busy[calendar.Date(m.Year, m.Month, i+1)]
		}
		pp.PrintMonthCount(m, count)
	}
}

const width = len("11 12 13 14 15 16 17") // an example week

// PrintMonthCount prints the month of then as a Sunday-first grid; days with
// a non-zero count are bold.
func (pp *PrettyPrint) PrintMonthCount(then calendar.Day, count []int) {
	d := calendar.Date(then.Year, then.Month, 1).Weekday()

	tf := color.New(color.FgWhite, color.Italic)

	m := then.Month.String()
	mid := (width - len(m)) / 2
	_, _ = tf.Fprintf(pp.out(), "%s%s%s\n", strings.Repeat(" ", mid), m, strings.Repeat(" ", width-mid-len(m)))

	// Pad out the start of the month.
	_, _ = fmt.Fprint(pp.out(), strings.Repeat("   ", int(d)))

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)

	days := calendar.DaysIn(then.Year, then.Month)
	for i := 0; i < days; i++ {
		if i < len(count) && count[i] > 0 {
			_, _ = l2.Fprintf(pp.out(), "%2d ", i+1)
		} else {
			_, _ = l1.Fprintf(pp.out(), "%2d ", i+1)
		}

		d++
		if d > time.Saturday {
			d = time.Sunday
			_, _ = fmt.Fprint(pp.out(), "\n")
		}
	}
	_, _ = fmt.Fprint(pp.out(), "\n\n")
}

// Kinds prints the known kinds with their plural route names.
func (pp *PrettyPrint) Kinds() {
	for _, k := range plan.AllKinds() {
		_, _ = fmt.Fprintf(pp.out(), "%-12s %s\n", k, k.Plural())
	}
}

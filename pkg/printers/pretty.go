package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/planner/pkg/glyph"
	"tableflip.dev/planner/pkg/plan"
)

type PrettyPrint struct {
	ShowID bool
	// Width wraps long labels; zero means 80.
	Width int
	// Out defaults to color.Output.
	Out io.Writer
}

var (
	spacing = strings.Repeat(" ", len("c0ffee00-aaaa-bbbb-cccc-0123456789ab  "))
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) width() int {
	if pp.Width > 0 {
		return pp.Width
	}
	return 80
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " entry")
	default:
		_, _ = c.Fprintln(pp.out(), " entries")
	}
}

// Entities prints one line per entity with its bullet, label and dates.
func Entities[E plan.Entity](pp *PrettyPrint, entities []E) {
	if len(entities) == 0 {
		pp.none()
		return
	}
	for _, e := range entities {
		pp.Entity(e)
	}
	pp.NewLine()
}

// Entity prints a single line for e.
func (pp *PrettyPrint) Entity(e plan.Entity) {
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	f := color.New(color.Faint)
	t := color.New()

	if pp.ShowID {
		id := e.Base().ID
		_, _ = y.Fprint(pp.out(), id)
		if pad := len(spacing) - len(id); pad > 0 {
			_, _ = y.Fprint(pp.out(), strings.Repeat(" ", pad))
		}
	}

	prefix := fmt.Sprintf("%s %s ", glyph.SignifierFor(e), glyph.BulletFor(e))
	label := e.Label()
	if clock := clockOf(e); clock != "" {
		label = clock + " " + label
	}
	lines := strings.Split(wordwrap.String(label, pp.width()-len(spacing)-len(prefix)), "\n")
	if glyph.BulletFor(e) == glyph.Completed && !color.NoColor {
		for i := range lines {
			lines[i] = glyph.Strike(lines[i])
		}
	}
	_, _ = t.Fprint(pp.out(), prefix+lines[0])
	if dates := DescribeSpan(e.Span()); dates != "" {
		_, _ = f.Fprintf(pp.out(), "  %s", dates)
	}
	_, _ = t.Fprintln(pp.out())
	indent := strings.Repeat(" ", len([]rune(prefix)))
	if pp.ShowID {
		indent = spacing + indent
	}
	for _, l := range lines[1:] {
		_, _ = t.Fprintln(pp.out(), indent+l)
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = f.Fprint(pp.out(), spacing)
	}
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

// Table prints entities as aligned columns.
func Table[E plan.Entity](pp *PrettyPrint, entities []E) {
	tbl := uitable.New()
	tbl.MaxColWidth = uint(pp.width() / 2)
	tbl.Wrap = true
	tbl.AddRow("ID", "KIND", "", "LABEL", "DATES")
	for _, e := range entities {
		tbl.AddRow(e.Base().ID, e.Kind(), glyph.BulletFor(e).String(), e.Label(), DescribeSpan(e.Span()))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// DescribeSpan renders the dates of a span for humans.
func DescribeSpan(s plan.Span) string {
	switch s.Type {
	case plan.SpanPoint:
		if s.On == nil {
			return "undated"
		}
		return s.On.String()
	case plan.SpanRange:
		switch {
		case s.Start != nil && s.End != nil:
			return s.Start.String() + " → " + s.End.String()
		case s.Start != nil:
			return "from " + s.Start.String()
		case s.End != nil:
			return "until " + s.End.String()
		}
	}
	return ""
}

func clockOf(e plan.Entity) string {
	switch v := e.(type) {
	case *plan.Task:
		return v.Time
	case *plan.Goal:
		if v.StartTime != "" && v.EndTime != "" {
			return v.StartTime + "-" + v.EndTime
		}
		return v.StartTime
	}
	return ""
}

// JSON writes v as indented JSON.
func (pp *PrettyPrint) JSON(v any) error {
	enc := json.NewEncoder(pp.out())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

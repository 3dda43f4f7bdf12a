// Package key prints the legend of planner bullets and signifiers.
package key

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/planner/pkg/glyph"
)

// Key prints a glyph legend describing bullets and signifiers.
type Key struct{}

func (k *Key) Do(ctx context.Context) error {
	k.Key(ctx, glyph.DefaultGlyphs(), false)
	k.Key(ctx, glyph.DefaultGlyphs(), true)
	return nil
}

// Key renders a glyph table; when sig is true, signifiers are shown.
func (k *Key) Key(_ context.Context, glyfs []glyph.Glyph, sig bool) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	if sig {
		tbl.AddRow(bold.Sprint("Signifier"), bold.Sprint("Meaning"))
	} else {
		tbl.AddRow(bold.Sprint("   Bullet"), bold.Sprint("Meaning"))
	}
	for _, v := range glyfs {
		if sig == v.Signifier {
			tbl.AddRow(v.Symbol, v.Meaning)
		}
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(color.Output, "")
	_, _ = fmt.Fprintln(color.Output, tbl)
}

// Package log provides the runner that prints a composed calendar view.
package log

import (
	"context"
	"errors"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/calendar"
	"tableflip.dev/planner/pkg/printers"
)

type Log struct {
	View calendar.View
	// On anchors the view; zero means today.
	On calendar.Day
	// Offset moves the view by whole periods, negative for earlier.
	Offset int
	ShowID bool
	JSON   bool

	Service *app.Service
}

func (n *Log) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not log, no persistence")
	}

	on := n.On
	if on.IsZero() {
		on = calendar.Today()
	}
	if n.Offset != 0 {
		on = calendar.Shift(n.View, on, n.Offset)
	}

	p, err := n.Service.Compose(ctx, n.View, on)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	if n.JSON {
		return pp.JSON(p)
	}
	pp.NewLine()
	pp.Plan(p)
	return nil
}

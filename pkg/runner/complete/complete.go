// Package complete provides the runner logic for marking entities done.
package complete

import (
	"context"
	"errors"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/plan"
	"tableflip.dev/planner/pkg/printers"
)

// Complete marks a goal, task or todo completed, or a word kept.
type Complete struct {
	Kind plan.Kind
	ID   string
	JSON bool

	Service *app.Service
}

func (n *Complete) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not complete, no persistence")
	}

	e, err := n.Service.Complete(ctx, n.Kind, n.ID)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: true}
	if n.JSON {
		return pp.JSON(e)
	}
	pp.NewLine()
	pp.Title(n.Kind.Plural())
	pp.Entity(e)
	pp.NewLine()
	return nil
}

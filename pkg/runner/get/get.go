// Package get provides the runner that lists entities of one kind.
package get

import (
	"context"
	"errors"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/calendar"
	"tableflip.dev/planner/pkg/plan"
	"tableflip.dev/planner/pkg/printers"
)

type Get struct {
	Kind plan.Kind
	// ID fetches a single entity when set.
	ID string
	// From and To restrict the list to entities active in the window.
	From, To calendar.Day
	ShowID   bool
	Table    bool
	JSON     bool

	Service *app.Service
}

func (n *Get) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not get, no persistence")
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID}

	if n.ID != "" {
		e, err := n.Service.Get(ctx, n.Kind, n.ID)
		if err != nil {
			return err
		}
		if n.JSON {
			return pp.JSON(e)
		}
		pp.Entity(e)
		return nil
	}

	var (
		all []plan.Entity
		err error
	)
	switch {
	case n.From.IsZero() && n.To.IsZero():
		all, err = n.Service.List(ctx, n.Kind)
	case n.From.IsZero() || n.To.IsZero():
		return errors.New("--from and --to must be given together")
	default:
		all, err = n.Service.ListRange(ctx, n.Kind, calendar.Window{Start: n.From, End: n.To})
	}
	if err != nil {
		return err
	}

	if n.JSON {
		return pp.JSON(all)
	}
	if n.Table {
		printers.Table(&pp, all)
		return nil
	}
	pp.NewLine()
	pp.TitleWithCount(n.Kind.Plural(), len(all))
	printers.Entities(&pp, all)
	return nil
}

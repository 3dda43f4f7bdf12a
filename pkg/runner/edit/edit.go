// Package edit provides the runner that patches stored entities.
package edit

import (
	"context"
	"encoding/json"
	"errors"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/plan"
	"tableflip.dev/planner/pkg/printers"
)

type Edit struct {
	Kind plan.Kind
	ID   string
	// Fields holds only the fields to change; a nil value clears the field.
	Fields map[string]any
	JSON   bool

	Service *app.Service
}

func (n *Edit) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not edit, no persistence")
	}
	if len(n.Fields) == 0 {
		return errors.New("nothing to change, set at least one field flag")
	}

	body, err := json.Marshal(n.Fields)
	if err != nil {
		return err
	}
	e, err := n.Service.UpdateFields(ctx, n.Kind, n.ID, body)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: true}
	if n.JSON {
		return pp.JSON(e)
	}
	pp.Title(n.Kind.Plural())
	pp.Entity(e)
	pp.NewLine()
	return nil
}

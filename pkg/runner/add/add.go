// Package add provides the runner that creates planner entities.
package add

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/plan"
	"tableflip.dev/planner/pkg/printers"
)

type Add struct {
	Kind plan.Kind
	// Label becomes the title, text or commitment depending on Kind.
	Label string
	// Fields holds the other JSON fields set on the command line.
	Fields map[string]any
	JSON   bool

	Service *app.Service
}

func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add, no persistence")
	}

	fields := make(map[string]any, len(n.Fields)+1)
	for k, v := range n.Fields {
		fields[k] = v
	}
	if label := strings.TrimSpace(n.Label); label != "" {
		fields[plan.LabelField(n.Kind)] = label
	}
	body, err := json.Marshal(fields)
	if err != nil {
		return err
	}

	e, err := n.Service.Create(ctx, n.Kind, body)
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

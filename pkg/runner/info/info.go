// Package info prints where the planner keeps its data and what it holds.
package info

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/plan"
	"tableflip.dev/planner/pkg/store"
)

type Info struct {
	Config  store.Config
	Service *app.Service
}

func (n *Info) Do(ctx context.Context) error {
	out := color.Output

	if override := os.Getenv("PLANNER_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(out, "PLANNER_CONFIG_PATH found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(out, "PLANNER_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintln(out, "Config.backend:", n.Config.Backend())
	switch n.Config.Backend() {
	case store.BackendPostgres:
		_, _ = fmt.Fprintln(out, "Config.dsn: (set)")
	default:
		_, _ = fmt.Fprintln(out, "Config.path:", n.Config.BasePath())
	}

	if n.Service == nil {
		return errors.New("failed to create persistence object")
	}

	_, _ = fmt.Fprintln(out, "Entities:")
	for _, kind := range plan.AllKinds() {
		all, err := n.Service.List(ctx, kind)
		if err != nil {
			_, _ = fmt.Fprintf(out, "  %-13s %v\n", kind.Plural(), err)
			continue
		}
		_, _ = fmt.Fprintf(out, "  %-13s %d\n", kind.Plural(), len(all))
	}
	return nil
}

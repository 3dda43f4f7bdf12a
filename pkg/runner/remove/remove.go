// Package remove provides the runner that deletes an entity after
// confirmation.
package remove

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/plan"
)

// ErrNotInteractive is returned when confirmation is needed but stdin is
// not a terminal.
var ErrNotInteractive = errors.New("stdin is not a terminal, pass --yes to delete without confirmation")

type Remove struct {
	Kind plan.Kind
	ID   string
	// Yes skips the confirmation prompt.
	Yes bool

	Service *app.Service
	// Confirm asks the user; defaults to a promptui prompt on the terminal.
	Confirm func(question string) (bool, error)
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not remove, no persistence")
	}

	e, err := n.Service.Get(ctx, n.Kind, n.ID)
	if err != nil {
		return err
	}

	if !n.Yes {
		confirm := n.Confirm
		if confirm == nil {
			confirm = promptConfirm
		}
		ok, err := confirm(fmt.Sprintf("Delete %s %q", n.Kind, e.Label()))
		if err != nil {
			return err
		}
		if !ok {
			_, _ = fmt.Fprintln(color.Output, "kept.")
			return nil
		}
	}

	if err := n.Service.Delete(ctx, n.Kind, n.ID); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(color.Output, "deleted %s %s\n", n.Kind, n.ID)
	return nil
}

func promptConfirm(question string) (bool, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return false, ErrNotInteractive
	}
	prompt := promptui.Prompt{
		Label:     question,
		IsConfirm: true,
	}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

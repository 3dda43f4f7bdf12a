package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/plan"
	"tableflip.dev/planner/pkg/runner/remove"
)

func addRemove(topLevel *cobra.Command) {
	co := &options.ConfirmOptions{}
	var kind plan.Kind

	cmd := &cobra.Command{
		Use:     "remove <kind> <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an entry, after confirmation.",
		Example: `
planner remove todo 0b6c...
planner rm task 9f1e... --yes
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			var err error
			if kind, err = kindArg(args); err != nil {
				return err
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		ValidArgsFunction: kindCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, release, err := openService()
			if err != nil {
				return err
			}
			defer release()

			s := remove.Remove{
				Kind:    kind,
				ID:      args[1],
				Yes:     co.Yes,
				Service: svc,
			}
			return s.Do(context.Background())
		},
	}

	options.AddConfirmArgs(cmd, co)
	topLevel.AddCommand(cmd)
}

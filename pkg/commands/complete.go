package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/plan"
	"tableflip.dev/planner/pkg/runner/complete"
)

func addComplete(topLevel *cobra.Command) {
	var kind plan.Kind

	cmd := &cobra.Command{
		Use:   "complete <kind> <id>",
		Short: "Mark a goal, task or todo completed, or a word kept.",
		Example: `
planner complete task 0b6c...
planner complete word 9f1e...
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
				return output.HandleError(err)
			}
			defer release()

			s := complete.Complete{
				Kind:    kind,
				ID:      args[1],
				JSON:    output.JSON,
				Service: svc,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

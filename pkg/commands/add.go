package commands

import (
	"context"
	"errors"
	"strings"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/plan"
	"tableflip.dev/planner/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	fo := &options.FieldOptions{}
	var (
		kind  plan.Kind
		label string
	)

	cmd := &cobra.Command{
		Use:   "add <kind> <text...>",
		Short: base.Wrap80("Add a vision, goal, task, todo, word or affirmation."),
		Example: `
planner add vision Health --start 2024-01-01 --end 2024-12-31 --category health
planner add goal Run a 10k --vision Health --start 2024-03-01 --end 2024-06-30
planner add task Standup --on 2024-03-13 --time 09:00
planner add todo Buy shoes --on 2024-03-14 --priority high
planner add word Call mom --on 2024-03-13 --timeframe evening
planner add affirmation I am steady
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			var err error
			if kind, err = kindArg(args); err != nil {
				return err
			}
			if len(args) < 2 {
				return errors.New("requires the " + plan.LabelField(kind))
			}
			label = strings.Join(args[1:], " ")
			return nil
		},
		ValidArgsFunction: kindCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fields, err := fo.Fields(cmd, kind, false)
			if err != nil {
				return output.HandleError(err)
			}
			svc, release, err := openService()
			if err != nil {
				return output.HandleError(err)
			}
			defer release()

			s := add.Add{
				Kind:    kind,
				Label:   label,
				Fields:  fields,
				JSON:    output.JSON,
				Service: svc,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddFieldArgs(cmd, fo)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

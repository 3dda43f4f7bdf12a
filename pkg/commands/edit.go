package commands

import (
	"context"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/plan"
	"tableflip.dev/planner/pkg/runner/edit"
)

func addEdit(topLevel *cobra.Command) {
	fo := &options.FieldOptions{}
	var kind plan.Kind

	cmd := &cobra.Command{
		Use:   "edit <kind> <id>",
		Short: base.Wrap80("Change fields of an entry. Only the flags given are changed; an empty value clears the field."),
		Example: `
planner edit goal 0b6c... --end 2024-09-30
planner edit todo 9f1e... --on ""
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
			fields, err := fo.Fields(cmd, kind, true)
			if err != nil {
				return output.HandleError(err)
			}
			svc, release, err := openService()
			if err != nil {
				return output.HandleError(err)
			}
			defer release()

			s := edit.Edit{
				Kind:    kind,
				ID:      args[1],
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

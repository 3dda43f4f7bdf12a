package commands

import (
	"context"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/runner/log"
)

func addLog(topLevel *cobra.Command) {
	lo := &options.LogOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "log",
		Short: base.Wrap80("Show everything planned for a day, week, month or year."),
		Example: `
planner log
planner log --day --on 2024-03-13
planner log --month --prev 1
planner log --year --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			view, err := lo.View()
			if err != nil {
				return output.HandleError(err)
			}
			on, err := lo.Anchor()
			if err != nil {
				return output.HandleError(err)
			}
			svc, release, err := openService()
			if err != nil {
				return output.HandleError(err)
			}
			defer release()

			s := log.Log{
				View:    view,
				On:      on,
				Offset:  lo.Offset(),
				ShowID:  io.ShowID,
				JSON:    output.JSON,
				Service: svc,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddLogArgs(cmd, lo)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

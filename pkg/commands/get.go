package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/plan"
	"tableflip.dev/planner/pkg/runner/get"
)

func addGet(topLevel *cobra.Command) {
	ro := &options.RangeOptions{}
	io := &options.IDOptions{}
	var kind plan.Kind

	long := strings.Builder{}
	long.WriteString("Get all entries of a kind, one entry by id, or the entries active between two days.\n\n")
	long.WriteString("Kinds:\n")
	for _, k := range plan.AllKinds() {
		long.WriteString(fmt.Sprintf("%s (%s)\n", k, k.Plural()))
	}

	cmd := &cobra.Command{
		Use:   "get <kind> [id]",
		Short: "get entries",
		Long:  long.String(),
		Example: `
planner get visions
planner get tasks --from 2024-03-10 --to 2024-03-16
planner get goal 0b6c... --json
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			var err error
			if kind, err = kindArg(args); err != nil {
				return err
			}
			if len(args) > 2 {
				return errors.New("too many arguments, expected a kind and an optional id")
			}
			return nil
		},
		ValidArgsFunction: kindCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := ro.Window()
			if err != nil {
				return output.HandleError(err)
			}
			svc, release, err := openService()
			if err != nil {
				return output.HandleError(err)
			}
			defer release()

			s := get.Get{
				Kind:    kind,
				From:    from,
				To:      to,
				ShowID:  io.ShowID,
				Table:   io.Table,
				JSON:    output.JSON,
				Service: svc,
			}
			if len(args) == 2 {
				s.ID = args[1]
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddRangeArgs(cmd, ro)
	options.AddShowIDArgs(cmd, io)
	options.AddTableArgs(cmd, io)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

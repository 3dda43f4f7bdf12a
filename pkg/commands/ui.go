package commands

import (
	"github.com/spf13/cobra"

	teaui "tableflip.dev/planner/pkg/runner/tea"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the interactive planner",
		Example: `
planner ui
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, release, err := openService()
			if err != nil {
				return err
			}
			defer release()
			return teaui.Run(svc)
		},
	}

	topLevel.AddCommand(cmd)
}

package options

import (
	"github.com/spf13/cobra"
)

// IDOptions
type IDOptions struct {
	ShowID bool
	Table  bool
}

func AddShowIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().BoolVarP(&o.ShowID, "show-id", "k", false,
		"Show the ID of each entry.")
}

func AddTableArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().BoolVarP(&o.Table, "table", "t", false,
		"Print entries as a table.")
}

package options

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/calendar"
)

// RangeOptions limits a listing to the entities active between two days.
type RangeOptions struct {
	From string
	To   string
}

func AddRangeArgs(cmd *cobra.Command, o *RangeOptions) {
	cmd.Flags().StringVar(&o.From, "from", "",
		`First day of the window, example: --from="2024-03-01".`)
	cmd.Flags().StringVar(&o.To, "to", "",
		`Last day of the window, example: --to="2024-03-31".`)
}

// Window parses the flags. Both must be given or neither; zero days mean
// no window.
func (o *RangeOptions) Window() (from, to calendar.Day, err error) {
	if (o.From == "") != (o.To == "") {
		return from, to, errors.New("--from and --to must be given together")
	}
	if from, err = calendar.ParseDay(o.From); err != nil {
		return from, to, fmt.Errorf("--from: %w", err)
	}
	if to, err = calendar.ParseDay(o.To); err != nil {
		return from, to, fmt.Errorf("--to: %w", err)
	}
	return from, to, nil
}

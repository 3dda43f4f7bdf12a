package options

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/calendar"
	"tableflip.dev/planner/pkg/plan"
)

// FieldOptions holds the entity field flags shared by add and edit.
type FieldOptions struct {
	values map[string]*string
}

type fieldFlag struct {
	flag  string
	usage string
	date  bool

	// json field per kind; kinds missing here reject the flag.
	fields map[plan.Kind]string
}

var fieldFlags = []fieldFlag{
	{flag: "start", usage: `First day, example: --start="2024-03-01".`, date: true,
		fields: map[plan.Kind]string{plan.KindVision: "startDate", plan.KindGoal: "startDate"}},
	{flag: "end", usage: `Last day, example: --end="2024-12-31".`, date: true,
		fields: map[plan.Kind]string{plan.KindVision: "endDate", plan.KindGoal: "endDate"}},
	{flag: "on", usage: `The day of a task or word, or the due day of a todo, example: --on="2024-03-13".`, date: true,
		fields: map[plan.Kind]string{plan.KindTask: "date", plan.KindWord: "date", plan.KindTodo: "dueDate"}},
	{flag: "time", usage: "Time of day of a task, HH:MM.",
		fields: map[plan.Kind]string{plan.KindTask: "time"}},
	{flag: "start-time", usage: "Start time of a goal, HH:MM.",
		fields: map[plan.Kind]string{plan.KindGoal: "startTime"}},
	{flag: "end-time", usage: "End time of a goal, HH:MM.",
		fields: map[plan.Kind]string{plan.KindGoal: "endTime"}},
	{flag: "category", usage: "Life area, for example health or career.",
		fields: map[plan.Kind]string{plan.KindVision: "category", plan.KindTask: "category", plan.KindTodo: "category", plan.KindAffirmation: "category"}},
	{flag: "priority", usage: "Todo priority: low, medium or high.",
		fields: map[plan.Kind]string{plan.KindTodo: "priority"}},
	{flag: "timeframe", usage: "When a word is due within its day, for example morning.",
		fields: map[plan.Kind]string{plan.KindWord: "timeframe"}},
	{flag: "description", usage: "Longer description.",
		fields: map[plan.Kind]string{plan.KindVision: "description", plan.KindGoal: "description", plan.KindTask: "description"}},
	{flag: "vision", usage: "Title of the vision a goal or task serves.",
		fields: map[plan.Kind]string{plan.KindGoal: "visionTitle", plan.KindTask: "visionTitle"}},
	{flag: "image", usage: "Image URL of a vision.",
		fields: map[plan.Kind]string{plan.KindVision: "imageUrl"}},
	{flag: "repeat", usage: "Repeat rule of a task, for example weekly.",
		fields: map[plan.Kind]string{plan.KindTask: "repeat"}},
	{flag: "reminder", usage: "Reminder of a task, for example 15m.",
		fields: map[plan.Kind]string{plan.KindTask: "reminder"}},
}

func AddFieldArgs(cmd *cobra.Command, o *FieldOptions) {
	o.values = make(map[string]*string, len(fieldFlags))
	for _, f := range fieldFlags {
		v := new(string)
		o.values[f.flag] = v
		cmd.Flags().StringVar(v, f.flag, "", Wrap80(f.usage))
	}
}

// Fields returns the JSON fields for kind built from the flags set on cmd.
// Unset flags are left out. With clear, a flag set to "" maps to nil so the
// field is removed.
func (o *FieldOptions) Fields(cmd *cobra.Command, kind plan.Kind, clear bool) (map[string]any, error) {
	out := map[string]any{}
	for _, f := range fieldFlags {
		if !cmd.Flags().Changed(f.flag) {
			continue
		}
		name, ok := f.fields[kind]
		if !ok {
			return nil, fmt.Errorf("--%s does not apply to %s", f.flag, kind.Plural())
		}
		raw := strings.TrimSpace(*o.values[f.flag])
		if raw == "" {
			if clear {
				out[name] = nil
			}
			continue
		}
		if f.date {
			d, err := calendar.ParseDay(raw)
			if err != nil {
				return nil, fmt.Errorf("--%s: %w", f.flag, err)
			}
			out[name] = d.String()
			continue
		}
		out[name] = raw
	}
	return out, nil
}

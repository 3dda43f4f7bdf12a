package commands

import (
	"fmt"
	"os"
	"strings"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/plan"
	"tableflip.dev/planner/pkg/server"
	"tableflip.dev/planner/pkg/store"
)

var (
	output = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "planner",
		Short: base.Wrap80("Plan visions, goals, tasks, todos and words on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addKey(topLevel)
	addAdd(topLevel)
	addGet(topLevel)
	addEdit(topLevel)
	addRemove(topLevel)
	addComplete(topLevel)
	addLog(topLevel)
	addServe(topLevel)
	addMCP(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
	addUpgrade(topLevel)
	addCompletions(topLevel)
}

// openService loads the configured store. The returned func releases it.
func openService() (*app.Service, func(), error) {
	p, err := store.Load(nil)
	if err != nil {
		return nil, nil, err
	}
	release := func() {
		if c, ok := p.(store.Closer); ok {
			_ = c.Close()
		}
	}
	level := os.Getenv("PLANNER_LOG_LEVEL")
	if level == "" {
		level = "WARN"
	}
	return &app.Service{Persistence: p, Log: server.MakeLogger(level)}, release, nil
}

// kindArg parses the first argument as an entity kind.
func kindArg(args []string) (plan.Kind, error) {
	if len(args) < 1 {
		return "", fmt.Errorf("requires a kind, one of %s", kindList())
	}
	return plan.ParseKind(args[0])
}

func kindList() string {
	names := make([]string, 0, len(plan.AllKinds()))
	for _, k := range plan.AllKinds() {
		names = append(names, string(k))
	}
	return strings.Join(names, ", ")
}

func kindCompletions(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	names := make([]string, 0, len(plan.AllKinds()))
	for _, k := range plan.AllKinds() {
		names = append(names, string(k))
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

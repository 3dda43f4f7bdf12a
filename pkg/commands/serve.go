package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/server"
	"tableflip.dev/planner/pkg/server/config"
)

func addServe(topLevel *cobra.Command) {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: base.Wrap80("Serve the planner over a JSON REST API."),
		Example: `
planner serve
planner serve --config ./config/local.yaml
PLANNER_HTTP_ADDRESS=:9090 planner serve
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			if configPath == "" {
				configPath = os.Getenv("PLANNER_SERVER_CONFIG")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			log := server.MakeLogger(cfg.LogLevel)

			svc, release, err := openService()
			if err != nil {
				return err
			}
			defer release()
			svc.Log = log

			deps := server.Deps{Planner: svc, Pingers: map[string]server.Pinger{}}
			if p, ok := svc.Persistence.(server.Pinger); ok {
				deps.Pingers["store"] = p
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.Run(ctx, cfg, log, deps)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "",
		"Server config file (yaml). Falls back to PLANNER_* environment variables.")
	topLevel.AddCommand(cmd)
}

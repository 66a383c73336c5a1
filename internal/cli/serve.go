package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/runoshun/workforce/internal/app"
	"github.com/runoshun/workforce/internal/httpapi"
	"github.com/spf13/cobra"
)

// runServerFunc is a function variable for running the HTTP server, allowing it to be mocked in tests.
var runServerFunc = func(ctx context.Context, c *app.Container, addr string) error {
	return httpapi.NewServer(c, c.Config.Server.Mode).Run(ctx, addr)
}

// newServeCommand creates the serve command.
func newServeCommand(c *app.Container) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the task management HTTP API.

Routes are mounted under /task-mgmt. The server stops gracefully on
SIGINT or SIGTERM.

Examples:
  # Listen on the configured address ([server] addr, default :8080)
  workforce serve

  # Override the listen address
  workforce serve --addr 127.0.0.1:9090`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = c.Config.Server.Addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			c.Logger.Info("starting server", "addr", addr, "mode", c.Config.Server.Mode)
			return runServerFunc(ctx, c, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides [server] addr)")

	return cmd
}

// Package cli provides the command-line interface for workforce.
package cli

import (
	"fmt"

	"github.com/runoshun/workforce/internal/app"
	"github.com/spf13/cobra"
)

// Command group IDs.
const (
	groupSetup   = "setup"
	groupService = "service"
	groupTools   = "tools"
)

// NewRootCommand creates the root command for workforce.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "workforce",
		Short: "Task management backend for orders and entities",
		Long: `workforce tracks operational tasks attached to orders and entities.

Each reference type has a fixed set of applicable task kinds. Tasks are
created, reassigned and cancelled through the HTTP API, and every change is
recorded as an append-only activity.

Use "workforce serve" to run the API and "workforce replay" to apply a
YAML script against a fresh in-memory store and check its consistency.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "init" || c == nil || c.Config == nil {
				return nil
			}
			for _, w := range c.Config.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
	}

	// Read by main before the container is built; declared here so cobra accepts it.
	root.PersistentFlags().String("config", "", "Path to the local config file (default ./workforce.toml)")

	root.AddGroup(
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
		&cobra.Group{ID: groupService, Title: "Service Commands:"},
		&cobra.Group{ID: groupTools, Title: "Tools:"},
	)

	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	serveCmd := newServeCommand(c)
	serveCmd.GroupID = groupService

	logsCmd := newLogsCommand(c)
	logsCmd.GroupID = groupService

	replayCmd := newReplayCommand(c)
	replayCmd.GroupID = groupTools

	kindsCmd := newKindsCommand()
	kindsCmd.GroupID = groupTools

	root.AddCommand(
		configCmd,
		serveCmd,
		logsCmd,
		replayCmd,
		kindsCmd,
	)

	return root
}

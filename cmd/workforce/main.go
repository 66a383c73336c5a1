// Package main is the entry point for the workforce CLI.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/runoshun/workforce/internal/app"
	"github.com/runoshun/workforce/internal/cli"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	container, err := app.New(app.Options{ConfigPath: configPathFromArgs(args)})
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer func() { _ = container.Close() }()

	rootCmd := cli.NewRootCommand(container, version)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

// configPathFromArgs finds the --config value before cobra parses the
// command line, since the container must exist to build the commands.
func configPathFromArgs(args []string) string {
	for i, arg := range args {
		if arg == "--" {
			break
		}
		if value, ok := strings.CutPrefix(arg, "--config="); ok {
			return value
		}
		if arg == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

package cli

import (
	"fmt"
	"strconv"

	"github.com/runoshun/workforce/internal/app"
	"github.com/runoshun/workforce/internal/usecase"
	"github.com/spf13/cobra"
)

// newLogsCommand creates the logs command.
func newLogsCommand(c *app.Container) *cobra.Command {
	var lines int

	cmd := &cobra.Command{
		Use:   "logs [task-id]",
		Short: "Show operational logs",
		Long: `Show the operational log files written under [log] dir.

Without an argument the global log (workforce.log) is shown; with a task id
the per-task log (task-<id>.log) is shown.

Examples:
  # Show the global log
  workforce logs

  # Show the last 20 lines for task #3
  workforce logs 3 -n 20`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var taskID int64
			if len(args) == 1 {
				id, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil || id <= 0 {
					return fmt.Errorf("invalid task ID: %s", args[0])
				}
				taskID = id
			}

			out, err := c.ShowLogsUseCase().Execute(cmd.Context(), usecase.ShowLogsInput{
				TaskID: taskID,
				Lines:  lines,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprint(cmd.OutOrStdout(), out.Content)
			return nil
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 0, "Number of lines to show from the end (0 = all)")

	return cmd
}

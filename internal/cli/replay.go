package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/runoshun/workforce/internal/app"
	"github.com/runoshun/workforce/internal/domain"
	"github.com/runoshun/workforce/internal/infra/memstore"
	"github.com/runoshun/workforce/internal/infra/script"
	"github.com/runoshun/workforce/internal/usecase"
	"github.com/spf13/cobra"
)

// errConsistency is returned when a replayed store fails the consistency check.
var errConsistency = errors.New("consistency check failed")

// newReplayCommand creates the replay command.
func newReplayCommand(c *app.Container) *cobra.Command {
	var opts struct {
		JSON bool
	}

	cmd := &cobra.Command{
		Use:   "replay <script.yaml>",
		Short: "Apply a YAML script to a fresh store and check consistency",
		Long: `Apply the operations of a YAML script, in order, to a fresh in-memory
store, then print the resulting tasks and the consistency report.

The store clock starts at the script's "start" time (now if omitted) and
moves forward by "step" after each operation. Use "-" to read the script
from stdin.

The command exits with an error when the report has violations. Duplicate
active tasks are listed but do not fail the run.

Example script:
  start: 2024-03-01T09:00:00Z
  step: 1m
  operations:
    - op: create
      tasks:
        - {reference_id: 100, reference_type: ORDER, task: ARRANGE_PICKUP, assignee_id: 5}
    - op: assign
      reference_id: 100
      reference_type: ORDER
      assignee_id: 7`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := readScript(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			start := s.Start
			if start.IsZero() {
				start = c.Clock.Now()
			}
			clock := script.NewStepClock(start)
			rc := app.NewWithDeps(
				c.Config,
				memstore.NewTaskStore(clock),
				memstore.NewActivityStore(clock),
				memstore.NewCommentStore(clock),
				clock,
				c.Logger,
			)
			rc.OpLogger = c.OpLogger

			out, err := rc.ReplayScriptUseCase().Execute(cmd.Context(), usecase.ReplayScriptInput{Script: s})
			if err != nil {
				return err
			}

			if opts.JSON {
				if err := printReplayJSON(cmd.OutOrStdout(), s, out); err != nil {
					return err
				}
			} else {
				printReplay(cmd.OutOrStdout(), s, out)
			}

			if !out.Report.OK() {
				return fmt.Errorf("%w: %d violation(s)", errConsistency, len(out.Report.Violations))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output in JSON format")

	return cmd
}

func readScript(stdin io.Reader, path string) (*domain.Script, error) {
	if path == "-" {
		return script.Parse(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open script: %w", err)
	}
	defer func() { _ = f.Close() }()
	return script.Parse(f)
}

// printReplay prints the steps, the final tasks and the report.
func printReplay(w io.Writer, s *domain.Script, out *usecase.ReplayScriptOutput) {
	st := defaultStyles()

	if s.Name != "" {
		_, _ = fmt.Fprintf(w, "%s\n\n", st.Header.Render(s.Name))
	}

	_, _ = fmt.Fprintln(w, st.Header.Render("[Steps]"))
	for i, step := range out.Steps {
		_, _ = fmt.Fprintf(w, "%2d. %-8s %s %s\n", i+1, step.Op, step.Summary, st.Muted.Render(formatIDs(step.TaskIDs)))
	}
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, st.Header.Render("[Tasks]"))
	printTaskTable(w, out.Tasks)
	_, _ = fmt.Fprintln(w)

	printReport(w, st, out.Report)
}

// printTaskTable prints tasks in aligned columns.
func printTaskTable(w io.Writer, tasks []*domain.Task) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	_, _ = fmt.Fprintln(tw, "ID\tREFERENCE\tKIND\tSTATUS\tASSIGNEE\tPRIORITY\tSTART")
	for _, t := range tasks {
		start := time.UnixMilli(t.EffectiveStart()).UTC().Format(time.RFC3339)
		_, _ = fmt.Fprintf(tw, "%d\t%s:%d\t%s\t%s\t%d\t%s\t%s\n",
			t.ID,
			t.ReferenceType,
			t.ReferenceID,
			t.Kind,
			renderStatus(t.Status),
			t.AssigneeID,
			renderPriority(t.Priority),
			start,
		)
	}
}

func printReport(w io.Writer, st styles, report *usecase.CheckConsistencyOutput) {
	_, _ = fmt.Fprintln(w, st.Header.Render("[Consistency]"))
	if report.OK() {
		_, _ = fmt.Fprintf(w, "%s %d task(s) checked\n", st.OK.Render("OK"), report.Checked)
	} else {
		_, _ = fmt.Fprintf(w, "%s %d violation(s) in %d task(s)\n",
			st.Violation.Render("FAIL"), len(report.Violations), report.Checked)
		for _, v := range report.Violations {
			_, _ = fmt.Fprintf(w, "- task %d [%s] %s\n", v.TaskID, v.Rule, v.Message)
		}
	}
	for _, d := range report.Duplicates {
		_, _ = fmt.Fprintf(w, "%s %s:%d %s has %d active tasks %s\n",
			st.Muted.Render("duplicate"), d.ReferenceType, d.ReferenceID, d.Kind, len(d.TaskIDs), formatIDs(d.TaskIDs))
	}
}

func formatIDs(ids []int64) string {
	if len(ids) == 0 {
		return ""
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("#%d", id)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

type jsonReplay struct {
	Name       string          `json:"name,omitempty"`
	Steps      []jsonStep      `json:"steps"`
	Tasks      []jsonTask      `json:"tasks"`
	Violations []jsonViolation `json:"violations"`
	Duplicates []jsonDuplicate `json:"duplicates"`
	Checked    int             `json:"checked"`
	OK         bool            `json:"ok"`
}

type jsonStep struct {
	Op      string  `json:"op"`
	Summary string  `json:"summary"`
	TaskIDs []int64 `json:"task_ids"`
	Line    int     `json:"line"`
}

type jsonTask struct {
	Deadline      *int64 `json:"deadline,omitempty"`
	StartDate     *int64 `json:"start_date,omitempty"`
	ReferenceType string `json:"reference_type"`
	Kind          string `json:"task"`
	Status        string `json:"status"`
	Priority      string `json:"priority"`
	Description   string `json:"description"`
	ID            int64  `json:"id"`
	ReferenceID   int64  `json:"reference_id"`
	AssigneeID    int64  `json:"assignee_id"`
}

type jsonViolation struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
	TaskID  int64  `json:"task_id"`
}

type jsonDuplicate struct {
	ReferenceType string  `json:"reference_type"`
	Kind          string  `json:"task"`
	TaskIDs       []int64 `json:"task_ids"`
	ReferenceID   int64   `json:"reference_id"`
}

func printReplayJSON(w io.Writer, s *domain.Script, out *usecase.ReplayScriptOutput) error {
	jr := jsonReplay{
		Name:       s.Name,
		Steps:      make([]jsonStep, 0, len(out.Steps)),
		Tasks:      make([]jsonTask, 0, len(out.Tasks)),
		Violations: make([]jsonViolation, 0, len(out.Report.Violations)),
		Duplicates: make([]jsonDuplicate, 0, len(out.Report.Duplicates)),
		Checked:    out.Report.Checked,
		OK:         out.Report.OK(),
	}
	for _, step := range out.Steps {
		jr.Steps = append(jr.Steps, jsonStep{
			Op:      string(step.Op),
			Summary: step.Summary,
			TaskIDs: step.TaskIDs,
			Line:    step.Line,
		})
	}
	for _, t := range out.Tasks {
		jr.Tasks = append(jr.Tasks, jsonTask{
			ID:            t.ID,
			ReferenceID:   t.ReferenceID,
			ReferenceType: string(t.ReferenceType),
			Kind:          string(t.Kind),
			Status:        string(t.Status),
			AssigneeID:    t.AssigneeID,
			Priority:      string(t.Priority),
			Description:   t.Description,
			Deadline:      t.Deadline,
			StartDate:     t.StartDate,
		})
	}
	for _, v := range out.Report.Violations {
		jr.Violations = append(jr.Violations, jsonViolation{Rule: v.Rule, Message: v.Message, TaskID: v.TaskID})
	}
	for _, d := range out.Report.Duplicates {
		jr.Duplicates = append(jr.Duplicates, jsonDuplicate{
			ReferenceType: string(d.ReferenceType),
			Kind:          string(d.Kind),
			TaskIDs:       d.TaskIDs,
			ReferenceID:   d.ReferenceID,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jr)
}

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/runoshun/workforce/internal/app"
	"github.com/runoshun/workforce/internal/domain"
	"github.com/runoshun/workforce/internal/infra/memstore"
	"github.com/runoshun/workforce/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContainer(t *testing.T) *app.Container {
	t.Helper()

	clock := &testutil.MockClock{NowTime: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	c := app.NewWithDeps(
		nil,
		memstore.NewTaskStore(clock),
		memstore.NewActivityStore(clock),
		memstore.NewCommentStore(clock),
		clock,
		nil,
	)
	c.ConfigLoader = testutil.NewMockConfigLoader()
	c.ConfigManager = testutil.NewMockConfigManager()
	return c
}

func execute(t *testing.T, c *app.Container, args ...string) (string, string, error) {
	t.Helper()

	root := NewRootCommand(c, "test-version")
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeScript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const pickupScript = `name: reassign pickup
start: 2024-03-01T09:00:00Z
step: 1m
operations:
  - op: create
    tasks:
      - {reference_id: 100, reference_type: ORDER, task: ARRANGE_PICKUP, assignee_id: 5}
      - {reference_id: 100, reference_type: ORDER, task: ARRANGE_PICKUP, assignee_id: 5}
  - op: comment
    task_id: 1
    user_id: 5
    comment: call before noon
  - op: assign
    reference_id: 100
    reference_type: ORDER
    assignee_id: 7
`

func TestRootCommand_Help(t *testing.T) {
	out, _, err := execute(t, newTestContainer(t), "--help")

	require.NoError(t, err)
	assert.Contains(t, out, "Setup Commands:")
	assert.Contains(t, out, "serve")
	assert.Contains(t, out, "replay")
	assert.Contains(t, out, "kinds")
	assert.Contains(t, out, "--config")
}

func TestRootCommand_PrintsConfigWarnings(t *testing.T) {
	c := newTestContainer(t)
	c.Config.Warnings = []string{"unknown key in [server]: port"}

	_, stderr, err := execute(t, c, "kinds")

	require.NoError(t, err)
	assert.Contains(t, stderr, "Warning: unknown key in [server]: port")
}

func TestKindsCommand(t *testing.T) {
	out, _, err := execute(t, newTestContainer(t), "kinds")

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "REFERENCE TYPE")
	assert.Contains(t, lines[1], "ORDER")
	assert.Contains(t, lines[1], "CREATE_INVOICE, ARRANGE_PICKUP, COLLECT_PAYMENT")
	assert.Contains(t, lines[2], "ENTITY")
	assert.Contains(t, lines[2], "ASSIGN_CUSTOMER_TO_SALES_PERSON")
}

func TestConfigCommand_NoSubcommand_ShowsHelp(t *testing.T) {
	out, _, err := execute(t, newTestContainer(t), "config")

	require.NoError(t, err)
	assert.Contains(t, out, "Available Commands:")
	assert.Contains(t, out, "show")
	assert.Contains(t, out, "init")
}

func TestConfigShowCommand(t *testing.T) {
	c := newTestContainer(t)
	manager := testutil.NewMockConfigManager()
	manager.Global = domain.ConfigInfo{Path: "/home/u/.config/workforce/workforce.toml"}
	manager.Local = domain.ConfigInfo{Path: "/srv/workforce.toml", Exists: true}
	c.ConfigManager = manager
	loader := testutil.NewMockConfigLoader()
	loader.Config.Server.Addr = ":9090"
	c.ConfigLoader = loader

	out, _, err := execute(t, c, "config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "[Loaded from]")
	assert.Contains(t, out, "- /home/u/.config/workforce/workforce.toml (not found)")
	assert.Contains(t, out, "- /srv/workforce.toml\n")
	assert.Contains(t, out, "[Effective Config]")
	assert.Contains(t, out, "[server]")
	assert.Contains(t, out, "addr = ':9090'")
	assert.Contains(t, out, "system_user_id = 1")
}

func TestConfigInitCommand(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantPath   string
		wantGlobal bool
	}{
		{name: "local", args: []string{"config", "init"}, wantPath: "/srv/workforce.toml"},
		{name: "global", args: []string{"config", "init", "--global"}, wantPath: "/home/u/.config/workforce/workforce.toml", wantGlobal: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestContainer(t)
			manager := testutil.NewMockConfigManager()
			manager.Global = domain.ConfigInfo{Path: "/home/u/.config/workforce/workforce.toml"}
			manager.Local = domain.ConfigInfo{Path: "/srv/workforce.toml"}
			c.ConfigManager = manager

			out, _, err := execute(t, c, tt.args...)

			require.NoError(t, err)
			assert.Equal(t, "Created config file: "+tt.wantPath+"\n", out)
			assert.Equal(t, tt.wantGlobal, manager.GlobalInitialized)
			assert.Equal(t, !tt.wantGlobal, manager.LocalInitialized)
		})
	}
}

func TestConfigInitCommand_Exists(t *testing.T) {
	c := newTestContainer(t)
	manager := testutil.NewMockConfigManager()
	manager.InitErr = domain.ErrConfigExists
	c.ConfigManager = manager

	_, _, err := execute(t, c, "config", "init")

	assert.ErrorIs(t, err, domain.ErrConfigExists)
}

func TestServeCommand(t *testing.T) {
	original := runServerFunc
	defer func() { runServerFunc = original }()

	tests := []struct {
		name     string
		args     []string
		wantAddr string
	}{
		{name: "configured address", args: []string{"serve"}, wantAddr: domain.DefaultServerAddr},
		{name: "flag overrides config", args: []string{"serve", "--addr", "127.0.0.1:9090"}, wantAddr: "127.0.0.1:9090"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotAddr string
			runServerFunc = func(ctx context.Context, _ *app.Container, addr string) error {
				require.NotNil(t, ctx)
				gotAddr = addr
				return nil
			}

			_, _, err := execute(t, newTestContainer(t), tt.args...)

			require.NoError(t, err)
			assert.Equal(t, tt.wantAddr, gotAddr)
		})
	}
}

func TestReplayCommand(t *testing.T) {
	c := newTestContainer(t)

	out, _, err := execute(t, c, "replay", writeScript(t, pickupScript))

	require.NoError(t, err)
	assert.Contains(t, out, "reassign pickup")
	assert.Contains(t, out, "[Steps]")
	assert.Contains(t, out, "created 2 task(s)")
	assert.Contains(t, out, "Tasks assigned successfully for reference 100 (kept 1, cancelled 1, created 2)")
	assert.Contains(t, out, "[Tasks]")
	assert.Contains(t, out, "ORDER:100")
	assert.Contains(t, out, "CANCELLED")
	assert.Contains(t, out, "COLLECT_PAYMENT")
	assert.Contains(t, out, "OK 4 task(s) checked")

	// The replay runs against its own store.
	tasks, err := c.Tasks.List()
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestReplayCommand_JSON(t *testing.T) {
	out, _, err := execute(t, newTestContainer(t), "replay", "--json", writeScript(t, pickupScript))
	require.NoError(t, err)

	var got jsonReplay
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "reassign pickup", got.Name)
	assert.True(t, got.OK)
	assert.Equal(t, 4, got.Checked)
	require.Len(t, got.Steps, 3)
	assert.Equal(t, "assign", got.Steps[2].Op)
	require.Len(t, got.Tasks, 4)

	byID := make(map[int64]jsonTask)
	for _, task := range got.Tasks {
		byID[task.ID] = task
	}
	assert.Equal(t, "ASSIGNED", byID[1].Status)
	assert.Equal(t, int64(7), byID[1].AssigneeID)
	assert.Equal(t, "CANCELLED", byID[2].Status)
	assert.Empty(t, got.Duplicates)
}

func TestReplayCommand_Stdin(t *testing.T) {
	root := NewRootCommand(newTestContainer(t), "test-version")
	var stdout bytes.Buffer
	root.SetOut(&stdout)
	root.SetIn(strings.NewReader(pickupScript))
	root.SetArgs([]string{"replay", "-"})

	require.NoError(t, root.Execute())
	assert.Contains(t, stdout.String(), "OK 4 task(s) checked")
}

func TestReplayCommand_ReportsDuplicates(t *testing.T) {
	script := `operations:
  - op: create
    tasks:
      - {reference_id: 7, reference_type: ENTITY, task: ASSIGN_CUSTOMER_TO_SALES_PERSON, assignee_id: 1}
      - {reference_id: 7, reference_type: ENTITY, task: ASSIGN_CUSTOMER_TO_SALES_PERSON, assignee_id: 2}
`
	out, _, err := execute(t, newTestContainer(t), "replay", writeScript(t, script))

	require.NoError(t, err)
	assert.Contains(t, out, "duplicate ENTITY:7 ASSIGN_CUSTOMER_TO_SALES_PERSON has 2 active tasks [#1,#2]")
}

func TestReplayCommand_Errors(t *testing.T) {
	tests := []struct {
		name    string
		script  string
		wantErr error
		wantMsg string
	}{
		{
			name:    "empty script",
			script:  "name: nothing\n",
			wantErr: domain.ErrEmptyScript,
		},
		{
			name:    "unknown operation",
			script:  "operations:\n  - op: delete\n    task_id: 1\n",
			wantErr: domain.ErrUnknownOperation,
		},
		{
			name:    "missing task",
			script:  "operations:\n  - op: comment\n    task_id: 42\n    user_id: 1\n    comment: hi\n",
			wantErr: domain.ErrTaskNotFound,
			wantMsg: "operation 1 (line 2)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, newTestContainer(t), "replay", writeScript(t, tt.script))

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestReplayCommand_MissingFile(t *testing.T) {
	_, _, err := execute(t, newTestContainer(t), "replay", filepath.Join(t.TempDir(), "nope.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "open script")
}

func TestLogsCommand(t *testing.T) {
	c := newTestContainer(t)
	c.Config.Log.Dir = t.TempDir()
	require.NoError(t, os.WriteFile(domain.TaskLogPath(c.Config.Log.Dir, 2), []byte("a\nb\nc\n"), 0o644))

	out, _, err := execute(t, c, "logs", "2", "-n", "1")

	require.NoError(t, err)
	assert.Equal(t, "c\n", out)
}

func TestLogsCommand_Errors(t *testing.T) {
	c := newTestContainer(t)

	_, _, err := execute(t, c, "logs", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid task ID")

	_, _, err = execute(t, c, "logs", "1")
	assert.ErrorIs(t, err, domain.ErrLogDirNotSet)
}

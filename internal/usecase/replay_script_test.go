package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/runoshun/workforce/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReplay(d *testDeps) *ReplayScript {
	return NewReplayScript(
		d.tasks,
		d.clock,
		NewCreateTasks(d.tasks, d.logger, d.clock, testSystemUser),
		NewUpdateTasks(d.tasks, d.logger, testSystemUser),
		NewAssignByReference(d.tasks, d.logger, d.clock, testSystemUser),
		NewUpdatePriority(d.tasks, d.logger),
		NewAddComment(d.tasks, d.comments, d.logger, d.clock),
		NewCheckConsistency(d.tasks, d.activities),
	)
}

func TestReplayScript_Execute(t *testing.T) {
	d := newTestDeps()
	start := d.clock.NowTime
	started := domain.StatusStarted
	pickup := domain.ScriptTask{ReferenceID: 100, ReferenceType: domain.ReferenceOrder, Kind: domain.KindArrangePickup, AssigneeID: 5}

	script := &domain.Script{
		Step: time.Minute,
		Operations: []domain.ScriptOp{
			{Op: domain.ScriptOpCreate, Line: 3, Tasks: []domain.ScriptTask{pickup, pickup}},
			{Op: domain.ScriptOpUpdate, Line: 6, Tasks: []domain.ScriptTask{{TaskID: 2, Status: &started}}},
			{Op: domain.ScriptOpPriority, Line: 8, TaskID: 1, Priority: domain.PriorityHigh, UserID: 4},
			{Op: domain.ScriptOpComment, Line: 10, TaskID: 1, Comment: "dock 3", UserID: 4},
			{Op: domain.ScriptOpAssign, Line: 12, ReferenceID: 100, ReferenceType: domain.ReferenceOrder, AssigneeID: 9},
		},
	}

	out, err := newTestReplay(d).Execute(context.Background(), ReplayScriptInput{Script: script})

	require.NoError(t, err)
	require.Len(t, out.Steps, 5)
	assert.Equal(t, []int64{1, 2}, out.Steps[0].TaskIDs)
	assert.Equal(t, "created 2 task(s)", out.Steps[0].Summary)
	assert.Equal(t, domain.ScriptOpAssign, out.Steps[4].Op)
	assert.Contains(t, out.Steps[4].Summary, "kept 1, cancelled 1, created 2")

	assert.Equal(t, start.Add(5*time.Minute), d.clock.NowTime)
	assert.Len(t, out.Tasks, 4)
	assert.Equal(t, domain.StatusCancelled, d.tasks.Tasks[2].Status)
	require.NotNil(t, out.Report)
	assert.True(t, out.Report.OK(), "violations: %+v", out.Report.Violations)
}

func TestReplayScript_Execute_StopsOnError(t *testing.T) {
	d := newTestDeps()
	script := &domain.Script{Operations: []domain.ScriptOp{
		{Op: domain.ScriptOpComment, Line: 4, TaskID: 99, Comment: "hi"},
		{Op: domain.ScriptOpAssign, Line: 7, ReferenceID: 1, ReferenceType: domain.ReferenceEntity, AssigneeID: 2},
	}}

	_, err := newTestReplay(d).Execute(context.Background(), ReplayScriptInput{Script: script})

	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	assert.ErrorContains(t, err, "operation 1 (line 4)")
	assert.Empty(t, d.tasks.Tasks)
}

func TestReplayScript_Execute_Empty(t *testing.T) {
	d := newTestDeps()

	_, err := newTestReplay(d).Execute(context.Background(), ReplayScriptInput{Script: &domain.Script{}})

	assert.ErrorIs(t, err, domain.ErrEmptyScript)
}

func TestReplayScript_Execute_UnknownOperation(t *testing.T) {
	d := newTestDeps()
	script := &domain.Script{Operations: []domain.ScriptOp{{Op: "delete", Line: 2}}}

	_, err := newTestReplay(d).Execute(context.Background(), ReplayScriptInput{Script: script})

	assert.ErrorIs(t, err, domain.ErrUnknownOperation)
}

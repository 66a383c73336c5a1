package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/runoshun/workforce/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchTasksByDate_Execute(t *testing.T) {
	const (
		dayStart int64 = 1_700_000_000_000
		dayEnd         = dayStart + 86_400_000 - 1
	)
	d := newTestDeps()

	seed := func(assignee int64, start int64, status domain.Status) *domain.Task {
		task := pickupTask(100, assignee)
		task.StartDate = domain.Millis(start)
		task.Status = status
		return d.seed(task)
	}
	inWindow := seed(5, dayStart+1000, domain.StatusCompleted)
	overdue := seed(5, dayStart-1000, domain.StatusStarted)
	seed(5, dayStart-1000, domain.StatusCompleted)
	seed(5, dayStart+1000, domain.StatusCancelled)
	seed(5, dayEnd+1, domain.StatusAssigned)
	onBoundary := seed(6, dayEnd, domain.StatusAssigned)
	seed(7, dayStart, domain.StatusAssigned)

	uc := NewFetchTasksByDate(d.tasks)
	out, err := uc.Execute(context.Background(), FetchTasksByDateInput{
		AssigneeIDs: []int64{5, 6},
		StartDate:   dayStart,
		EndDate:     dayEnd,
	})

	require.NoError(t, err)
	var ids []int64
	for _, task := range out.Tasks {
		assert.NotEqual(t, domain.StatusCancelled, task.Status)
		ids = append(ids, task.ID)
	}
	assert.Equal(t, []int64{inWindow.ID, overdue.ID, onBoundary.ID}, ids)
}

func TestFetchTasksByDate_Execute_FallsBackToCreated(t *testing.T) {
	d := newTestDeps()
	task := pickupTask(100, 5)
	task.Created = d.clock.NowTime
	d.seed(task)

	uc := NewFetchTasksByDate(d.tasks)
	now := d.clock.NowTime.UnixMilli()
	out, err := uc.Execute(context.Background(), FetchTasksByDateInput{
		AssigneeIDs: []int64{5},
		StartDate:   now,
		EndDate:     now,
	})

	require.NoError(t, err)
	assert.Len(t, out.Tasks, 1)
}

func TestFetchTasksByDate_Execute_InvalidRange(t *testing.T) {
	d := newTestDeps()
	uc := NewFetchTasksByDate(d.tasks)

	_, err := uc.Execute(context.Background(), FetchTasksByDateInput{StartDate: 10, EndDate: 5})

	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
}

func TestFetchTasksByDate_Execute_ListError(t *testing.T) {
	d := newTestDeps()
	d.tasks.ListErr = errors.New("boom")
	uc := NewFetchTasksByDate(d.tasks)

	_, err := uc.Execute(context.Background(), FetchTasksByDateInput{StartDate: 1, EndDate: 2})

	assert.ErrorContains(t, err, "list tasks by assignees")
}

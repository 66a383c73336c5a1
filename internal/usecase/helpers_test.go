package usecase

import (
	"time"

	"github.com/runoshun/workforce/internal/domain"
	"github.com/runoshun/workforce/internal/testutil"
	"github.com/runoshun/workforce/internal/usecase/shared"
)

const testSystemUser int64 = 1

type testDeps struct {
	tasks      *testutil.MockTaskRepository
	activities *testutil.MockActivityRepository
	comments   *testutil.MockCommentRepository
	clock      *testutil.MockClock
	logger     *shared.ActivityLogger
}

func newTestDeps() *testDeps {
	clock := &testutil.MockClock{NowTime: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	activities := testutil.NewMockActivityRepository()
	return &testDeps{
		tasks:      testutil.NewMockTaskRepository(),
		activities: activities,
		comments:   testutil.NewMockCommentRepository(),
		clock:      clock,
		logger:     shared.NewActivityLogger(activities, clock, nil),
	}
}

// seed saves a task directly, bypassing the use cases.
func (d *testDeps) seed(task *domain.Task) *domain.Task {
	if task.Priority == "" {
		task.Priority = domain.PriorityMedium
	}
	if task.Status == "" {
		task.Status = domain.StatusAssigned
	}
	_ = d.tasks.Save(task)
	return task
}

func pickupTask(refID, assignee int64) *domain.Task {
	return &domain.Task{
		ReferenceID:   refID,
		ReferenceType: domain.ReferenceOrder,
		Kind:          domain.KindArrangePickup,
		AssigneeID:    assignee,
	}
}

func sharedEntry(taskID int64, typ domain.ActivityType) shared.ActivityEntry {
	return shared.ActivityEntry{TaskID: taskID, Type: typ, UserID: testSystemUser}
}

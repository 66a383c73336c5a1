package memstore

import (
	"sync"
	"testing"
	"time"

	"github.com/runoshun/workforce/internal/domain"
	"github.com/runoshun/workforce/internal/testutil"
)

func newTestClock() *testutil.MockClock {
	return &testutil.MockClock{NowTime: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
}

func TestTaskStore_SaveAssignsIDAndSeq(t *testing.T) {
	store := NewTaskStore(newTestClock())

	t1 := &domain.Task{ReferenceID: 100, ReferenceType: domain.ReferenceOrder, Kind: domain.KindArrangePickup}
	t2 := &domain.Task{ReferenceID: 100, ReferenceType: domain.ReferenceOrder, Kind: domain.KindArrangePickup}
	if err := store.Save(t1); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Save(t2); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if t1.ID != 1 || t2.ID != 2 {
		t.Errorf("IDs = %d, %d, want 1, 2", t1.ID, t2.ID)
	}
	if t1.Seq >= t2.Seq {
		t.Errorf("Seq not increasing: %d, %d", t1.Seq, t2.Seq)
	}
	if t1.Created.IsZero() || t1.Updated.IsZero() {
		t.Error("Created/Updated not stamped")
	}
}

func TestTaskStore_GetReturnsCopy(t *testing.T) {
	store := NewTaskStore(newTestClock())
	task := &domain.Task{Status: domain.StatusAssigned}
	_ = store.Save(task)

	got, err := store.Get(task.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	got.Status = domain.StatusCancelled

	again, _ := store.Get(task.ID)
	if again.Status != domain.StatusAssigned {
		t.Errorf("stored task mutated through returned copy: %s", again.Status)
	}
}

func TestTaskStore_GetMissing(t *testing.T) {
	store := NewTaskStore(newTestClock())

	got, err := store.Get(999)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != nil {
		t.Errorf("Get() = %+v, want nil", got)
	}
}

func TestTaskStore_UpdateKeepsSeqAndCreated(t *testing.T) {
	clock := newTestClock()
	store := NewTaskStore(clock)
	task := &domain.Task{Status: domain.StatusAssigned}
	_ = store.Save(task)
	created, seq := task.Created, task.Seq

	clock.NowTime = clock.NowTime.Add(time.Hour)
	update := &domain.Task{ID: task.ID, Status: domain.StatusStarted}
	_ = store.Save(update)

	got, _ := store.Get(task.ID)
	if !got.Created.Equal(created) {
		t.Errorf("Created = %v, want %v", got.Created, created)
	}
	if got.Seq != seq {
		t.Errorf("Seq = %d, want %d", got.Seq, seq)
	}
	if !got.Updated.Equal(clock.NowTime) {
		t.Errorf("Updated = %v, want %v", got.Updated, clock.NowTime)
	}
}

func TestTaskStore_SaveDropsHydratedHistory(t *testing.T) {
	store := NewTaskStore(newTestClock())
	task := &domain.Task{
		Activities: []domain.Activity{{ID: 1}},
		Comments:   []domain.Comment{{ID: 1}},
	}
	_ = store.Save(task)

	got, _ := store.Get(task.ID)
	if got.Activities != nil || got.Comments != nil {
		t.Error("hydrated history was persisted on the task")
	}
}

func TestTaskStore_ListQueriesInCreationOrder(t *testing.T) {
	store := NewTaskStore(newTestClock())
	for i := 0; i < 20; i++ {
		task := &domain.Task{
			ReferenceID:   int64(100 + i%2),
			ReferenceType: domain.ReferenceOrder,
			AssigneeID:    int64(i % 3),
			Priority:      domain.PriorityMedium,
		}
		if i%4 == 0 {
			task.Priority = domain.PriorityHigh
		}
		_ = store.Save(task)
	}

	byRef, _ := store.ListByReference(100, domain.ReferenceOrder)
	if len(byRef) != 10 {
		t.Fatalf("ListByReference() len = %d, want 10", len(byRef))
	}
	assertAscending(t, byRef)

	byAssignee, _ := store.ListByAssignees([]int64{1, 2})
	for _, task := range byAssignee {
		if task.AssigneeID == 0 {
			t.Errorf("ListByAssignees() returned task for assignee 0")
		}
	}
	assertAscending(t, byAssignee)

	high, _ := store.ListByPriority(domain.PriorityHigh)
	if len(high) != 5 {
		t.Errorf("ListByPriority() len = %d, want 5", len(high))
	}
	assertAscending(t, high)

	none, _ := store.ListByReference(100, domain.ReferenceEntity)
	if len(none) != 0 {
		t.Errorf("ListByReference() for other type len = %d, want 0", len(none))
	}
}

func assertAscending(t *testing.T, tasks []*domain.Task) {
	t.Helper()
	for i := 1; i < len(tasks); i++ {
		if tasks[i-1].Seq >= tasks[i].Seq {
			t.Fatalf("tasks not in creation order at %d: %d >= %d", i, tasks[i-1].Seq, tasks[i].Seq)
		}
	}
}

func TestTaskStore_ConcurrentSaves(t *testing.T) {
	store := NewTaskStore(domain.RealClock{})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Save(&domain.Task{Status: domain.StatusAssigned})
		}()
	}
	wg.Wait()

	tasks, _ := store.List()
	if len(tasks) != 50 {
		t.Fatalf("List() len = %d, want 50", len(tasks))
	}
	seen := make(map[int64]bool)
	for _, task := range tasks {
		if seen[task.ID] {
			t.Fatalf("duplicate task ID %d", task.ID)
		}
		seen[task.ID] = true
	}
}

func TestActivityStore_AppendAndList(t *testing.T) {
	clock := newTestClock()
	store := NewActivityStore(clock)

	later := &domain.Activity{TaskID: 1, Type: domain.ActivityTaskAssigned, Timestamp: clock.NowTime.Add(time.Minute)}
	earlier := &domain.Activity{TaskID: 1, Type: domain.ActivityTaskCreated}
	other := &domain.Activity{TaskID: 2, Type: domain.ActivityTaskCreated}
	for _, a := range []*domain.Activity{later, earlier, other} {
		if err := store.Append(a); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	if later.ID != 1 || earlier.ID != 2 || other.ID != 3 {
		t.Errorf("IDs = %d, %d, %d, want 1, 2, 3", later.ID, earlier.ID, other.ID)
	}
	if !earlier.Timestamp.Equal(clock.NowTime) {
		t.Errorf("Timestamp = %v, want clock time", earlier.Timestamp)
	}

	got, err := store.ListByTask(1)
	if err != nil {
		t.Fatalf("ListByTask() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListByTask() len = %d, want 2", len(got))
	}
	if got[0].Type != domain.ActivityTaskCreated || got[1].Type != domain.ActivityTaskAssigned {
		t.Errorf("ListByTask() not ordered by timestamp: %s, %s", got[0].Type, got[1].Type)
	}

	all, _ := store.List()
	if len(all) != 3 {
		t.Errorf("List() len = %d, want 3", len(all))
	}

	empty, _ := store.ListByTask(42)
	if empty == nil || len(empty) != 0 {
		t.Errorf("ListByTask() for unknown task = %v, want empty slice", empty)
	}
}

func TestActivityStore_KeepsCallerTimestamp(t *testing.T) {
	store := NewActivityStore(newTestClock())
	ts := time.Date(2020, 5, 5, 0, 0, 0, 0, time.UTC)

	a := &domain.Activity{TaskID: 1, Timestamp: ts}
	_ = store.Append(a)

	if !a.Timestamp.Equal(ts) {
		t.Errorf("Timestamp = %v, want %v", a.Timestamp, ts)
	}
}

func TestCommentStore_AddAndList(t *testing.T) {
	clock := newTestClock()
	store := NewCommentStore(clock)

	c1 := &domain.Comment{TaskID: 1, Text: "first", UserID: 5}
	c2 := &domain.Comment{TaskID: 1, Text: "second", UserID: 6, Time: clock.NowTime.Add(time.Second)}
	_ = store.Add(c1)
	_ = store.Add(c2)

	if c1.ID != 1 || c2.ID != 2 {
		t.Errorf("IDs = %d, %d, want 1, 2", c1.ID, c2.ID)
	}

	got, err := store.ListByTask(1)
	if err != nil {
		t.Fatalf("ListByTask() error = %v", err)
	}
	if len(got) != 2 || got[0].Text != "first" || got[1].Text != "second" {
		t.Errorf("ListByTask() = %+v", got)
	}
}

func TestStores_IndependentCounters(t *testing.T) {
	clock := newTestClock()
	tasks := NewTaskStore(clock)
	activities := NewActivityStore(clock)
	comments := NewCommentStore(clock)

	task := &domain.Task{}
	_ = tasks.Save(task)
	a := &domain.Activity{TaskID: task.ID}
	_ = activities.Append(a)
	c := &domain.Comment{TaskID: task.ID}
	_ = comments.Add(c)

	if task.ID != 1 || a.ID != 1 || c.ID != 1 {
		t.Errorf("IDs = %d, %d, %d, want 1 each", task.ID, a.ID, c.ID)
	}
}

// Package memstore provides in-memory, concurrency-safe implementations of the repository ports.
//
// Each entity type has its own map, lock and id counter. Nothing is persisted
// beyond process lifetime.
package memstore

import (
	"cmp"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/runoshun/workforce/internal/domain"
)

// Ensure stores implement the domain ports.
var (
	_ domain.TaskRepository     = (*TaskStore)(nil)
	_ domain.ActivityRepository = (*ActivityStore)(nil)
	_ domain.CommentRepository  = (*CommentStore)(nil)
)

// TaskStore implements domain.TaskRepository.
// Tasks are copied on the way in and out so callers never share store state.
type TaskStore struct {
	tasks map[int64]*domain.Task
	clock domain.Clock
	ids   atomic.Int64
	seq   atomic.Int64
	mu    sync.RWMutex
}

// NewTaskStore creates an empty TaskStore.
func NewTaskStore(clock domain.Clock) *TaskStore {
	return &TaskStore{
		tasks: make(map[int64]*domain.Task),
		clock: clock,
	}
}

// Get retrieves a task by ID.
func (s *TaskStore) Get(id int64) (*domain.Task, error) {
	var task *domain.Task
	s.withLock(func() {
		task = s.tasks[id].Clone()
	})
	return task, nil
}

// Save creates or updates a task.
// A zero ID allocates a new ID and creation sequence; Created is stamped if zero.
func (s *TaskStore) Save(task *domain.Task) error {
	now := s.clock.Now()
	s.withLockWrite(func() {
		if task.ID == 0 {
			task.ID = s.ids.Add(1)
		}
		if existing, ok := s.tasks[task.ID]; ok {
			task.Seq = existing.Seq
			if task.Created.IsZero() {
				task.Created = existing.Created
			}
		} else {
			task.Seq = s.seq.Add(1)
		}
		if task.Created.IsZero() {
			task.Created = now
		}
		task.Updated = now

		stored := task.Clone()
		// History is kept in its own stores; never persist hydrated copies.
		stored.Activities = nil
		stored.Comments = nil
		s.tasks[task.ID] = stored
	})
	return nil
}

// List retrieves every task in creation order.
func (s *TaskStore) List() ([]*domain.Task, error) {
	return s.filter(func(*domain.Task) bool { return true }), nil
}

// ListByReference retrieves tasks attached to the reference in creation order.
func (s *TaskStore) ListByReference(refID int64, refType domain.ReferenceType) ([]*domain.Task, error) {
	return s.filter(func(t *domain.Task) bool {
		return t.ReferenceID == refID && t.ReferenceType == refType
	}), nil
}

// ListByAssignees retrieves tasks assigned to any of the users in creation order.
func (s *TaskStore) ListByAssignees(assigneeIDs []int64) ([]*domain.Task, error) {
	return s.filter(func(t *domain.Task) bool {
		return slices.Contains(assigneeIDs, t.AssigneeID)
	}), nil
}

// ListByPriority retrieves tasks with the priority in creation order.
func (s *TaskStore) ListByPriority(p domain.Priority) ([]*domain.Task, error) {
	return s.filter(func(t *domain.Task) bool {
		return t.Priority == p
	}), nil
}

func (s *TaskStore) filter(keep func(*domain.Task) bool) []*domain.Task {
	var tasks []*domain.Task
	s.withLock(func() {
		for _, t := range s.tasks {
			if keep(t) {
				tasks = append(tasks, t.Clone())
			}
		}
	})

	// Map iteration order is random; creation sequence is the stable order.
	slices.SortFunc(tasks, func(a, b *domain.Task) int {
		return cmp.Compare(a.Seq, b.Seq)
	})
	return tasks
}

// withLock executes fn with a shared (read) lock.
func (s *TaskStore) withLock(fn func()) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn()
}

// withLockWrite executes fn with an exclusive (write) lock.
func (s *TaskStore) withLockWrite(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

// ActivityStore implements domain.ActivityRepository.
// It is append-only: there is no update or delete.
type ActivityStore struct {
	byTask map[int64][]domain.Activity
	all    []domain.Activity
	clock  domain.Clock
	ids    atomic.Int64
	mu     sync.RWMutex
}

// NewActivityStore creates an empty ActivityStore.
func NewActivityStore(clock domain.Clock) *ActivityStore {
	return &ActivityStore{
		byTask: make(map[int64][]domain.Activity),
		clock:  clock,
	}
}

// Append stores an activity, assigning its ID and, if zero, its timestamp.
func (s *ActivityStore) Append(activity *domain.Activity) error {
	if activity.Timestamp.IsZero() {
		activity.Timestamp = s.clock.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if activity.ID == 0 {
		activity.ID = s.ids.Add(1)
	}
	entry := *activity
	s.byTask[entry.TaskID] = append(s.byTask[entry.TaskID], entry)
	s.all = append(s.all, entry)
	return nil
}

// ListByTask retrieves a task's activities ordered by timestamp, then ID.
func (s *ActivityStore) ListByTask(taskID int64) ([]domain.Activity, error) {
	s.mu.RLock()
	activities := slices.Clone(s.byTask[taskID])
	s.mu.RUnlock()

	if activities == nil {
		return []domain.Activity{}, nil
	}
	slices.SortStableFunc(activities, func(a, b domain.Activity) int {
		if c := a.Timestamp.Compare(b.Timestamp); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return activities, nil
}

// List retrieves all activities in ID order.
func (s *ActivityStore) List() ([]domain.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	activities := slices.Clone(s.all)
	slices.SortFunc(activities, func(a, b domain.Activity) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return activities, nil
}

// CommentStore implements domain.CommentRepository.
type CommentStore struct {
	byTask map[int64][]domain.Comment
	clock  domain.Clock
	ids    atomic.Int64
	mu     sync.RWMutex
}

// NewCommentStore creates an empty CommentStore.
func NewCommentStore(clock domain.Clock) *CommentStore {
	return &CommentStore{
		byTask: make(map[int64][]domain.Comment),
		clock:  clock,
	}
}

// Add stores a comment, assigning its ID and, if zero, its time.
func (s *CommentStore) Add(comment *domain.Comment) error {
	if comment.Time.IsZero() {
		comment.Time = s.clock.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if comment.ID == 0 {
		comment.ID = s.ids.Add(1)
	}
	s.byTask[comment.TaskID] = append(s.byTask[comment.TaskID], *comment)
	return nil
}

// ListByTask retrieves a task's comments ordered by time, then ID.
func (s *CommentStore) ListByTask(taskID int64) ([]domain.Comment, error) {
	s.mu.RLock()
	comments := slices.Clone(s.byTask[taskID])
	s.mu.RUnlock()

	if comments == nil {
		return []domain.Comment{}, nil // Return empty slice, not nil
	}
	slices.SortStableFunc(comments, func(a, b domain.Comment) int {
		if c := a.Time.Compare(b.Time); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return comments, nil
}

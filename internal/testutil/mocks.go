// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/runoshun/workforce/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// Advance moves the clock forward by d.
func (m *MockClock) Advance(d time.Duration) {
	m.NowTime = m.NowTime.Add(d)
}

// MockTaskRepository is a test double for domain.TaskRepository.
// Saved tasks are stored by pointer so tests can inspect them directly.
// Fields are ordered to minimize memory padding.
type MockTaskRepository struct {
	Tasks   map[int64]*domain.Task
	SaveErr error
	GetErr  error
	ListErr error
	NextIDN int64
	mu      sync.Mutex
}

// NewMockTaskRepository creates a new MockTaskRepository with initialized maps.
func NewMockTaskRepository() *MockTaskRepository {
	return &MockTaskRepository{
		Tasks:   make(map[int64]*domain.Task),
		NextIDN: 1,
	}
}

// Get retrieves a task by ID.
func (m *MockTaskRepository) Get(id int64) (*domain.Task, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.Tasks[id]
	if !ok {
		return nil, nil
	}
	return task, nil
}

// Save saves a task, assigning ID and Seq when missing.
func (m *MockTaskRepository) Save(task *domain.Task) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if task.ID == 0 {
		task.ID = m.NextIDN
		m.NextIDN++
	}
	if task.Seq == 0 {
		task.Seq = task.ID
	}
	m.Tasks[task.ID] = task
	return nil
}

// List returns all tasks ordered by Seq.
func (m *MockTaskRepository) List() ([]*domain.Task, error) {
	return m.filter(func(*domain.Task) bool { return true })
}

// ListByReference returns tasks attached to the reference.
func (m *MockTaskRepository) ListByReference(refID int64, refType domain.ReferenceType) ([]*domain.Task, error) {
	return m.filter(func(t *domain.Task) bool {
		return t.ReferenceID == refID && t.ReferenceType == refType
	})
}

// ListByAssignees returns tasks assigned to any of the users.
func (m *MockTaskRepository) ListByAssignees(ids []int64) ([]*domain.Task, error) {
	return m.filter(func(t *domain.Task) bool {
		return slices.Contains(ids, t.AssigneeID)
	})
}

// ListByPriority returns tasks with the priority.
func (m *MockTaskRepository) ListByPriority(p domain.Priority) ([]*domain.Task, error) {
	return m.filter(func(t *domain.Task) bool {
		return t.Priority == p
	})
}

func (m *MockTaskRepository) filter(keep func(*domain.Task) bool) ([]*domain.Task, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var tasks []*domain.Task
	for _, t := range m.Tasks {
		if keep(t) {
			tasks = append(tasks, t)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].Seq < tasks[j].Seq })
	return tasks, nil
}

// MockActivityRepository is a test double for domain.ActivityRepository.
type MockActivityRepository struct {
	Activities []domain.Activity
	AppendErr  error
	ListErr    error
	mu         sync.Mutex
}

// NewMockActivityRepository creates a new MockActivityRepository.
func NewMockActivityRepository() *MockActivityRepository {
	return &MockActivityRepository{}
}

// Append records an activity, assigning the next ID.
func (m *MockActivityRepository) Append(a *domain.Activity) error {
	if m.AppendErr != nil {
		return m.AppendErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.ID == 0 {
		a.ID = int64(len(m.Activities) + 1)
	}
	m.Activities = append(m.Activities, *a)
	return nil
}

// ListByTask returns a task's activities in append order.
func (m *MockActivityRepository) ListByTask(taskID int64) ([]domain.Activity, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	result := []domain.Activity{}
	for _, a := range m.Activities {
		if a.TaskID == taskID {
			result = append(result, a)
		}
	}
	return result, nil
}

// List returns all activities in append order.
func (m *MockActivityRepository) List() ([]domain.Activity, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.Activities), nil
}

// OfType returns the recorded activities of the given type for a task.
func (m *MockActivityRepository) OfType(taskID int64, typ domain.ActivityType) []domain.Activity {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []domain.Activity
	for _, a := range m.Activities {
		if a.TaskID == taskID && a.Type == typ {
			result = append(result, a)
		}
	}
	return result
}

// MockCommentRepository is a test double for domain.CommentRepository.
type MockCommentRepository struct {
	Comments map[int64][]domain.Comment
	AddErr   error
	ListErr  error
	nextID   int64
}

// NewMockCommentRepository creates a new MockCommentRepository.
func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{
		Comments: make(map[int64][]domain.Comment),
	}
}

// Add records a comment, assigning the next ID.
func (m *MockCommentRepository) Add(c *domain.Comment) error {
	if m.AddErr != nil {
		return m.AddErr
	}
	if c.ID == 0 {
		m.nextID++
		c.ID = m.nextID
	}
	m.Comments[c.TaskID] = append(m.Comments[c.TaskID], *c)
	return nil
}

// ListByTask returns a task's comments in insertion order.
func (m *MockCommentRepository) ListByTask(taskID int64) ([]domain.Comment, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	if c, ok := m.Comments[taskID]; ok {
		return c, nil
	}
	return []domain.Comment{}, nil
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config  *domain.Config
	LoadErr error
}

// NewMockConfigLoader creates a new MockConfigLoader returning the default config.
func NewMockConfigLoader() *MockConfigLoader {
	return &MockConfigLoader{Config: domain.NewDefaultConfig()}
}

// Load returns the configured config.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Config, nil
}

// MockConfigManager is a test double for domain.ConfigManager.
// Fields are ordered to minimize memory padding.
type MockConfigManager struct {
	InitConfig        *domain.Config // Config passed to the last Init call
	InitErr           error
	Local             domain.ConfigInfo
	Global            domain.ConfigInfo
	LocalInitialized  bool
	GlobalInitialized bool
}

// NewMockConfigManager creates a new MockConfigManager.
func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{}
}

// LocalConfigInfo returns the configured local info.
func (m *MockConfigManager) LocalConfigInfo() domain.ConfigInfo {
	return m.Local
}

// GlobalConfigInfo returns the configured global info.
func (m *MockConfigManager) GlobalConfigInfo() domain.ConfigInfo {
	return m.Global
}

// InitLocalConfig records the call.
func (m *MockConfigManager) InitLocalConfig(cfg *domain.Config) error {
	if m.InitErr != nil {
		return m.InitErr
	}
	m.InitConfig = cfg
	m.LocalInitialized = true
	return nil
}

// InitGlobalConfig records the call.
func (m *MockConfigManager) InitGlobalConfig(cfg *domain.Config) error {
	if m.InitErr != nil {
		return m.InitErr
	}
	m.InitConfig = cfg
	m.GlobalInitialized = true
	return nil
}

// Ensure mocks implement the domain ports.
var (
	_ domain.TaskRepository     = (*MockTaskRepository)(nil)
	_ domain.ActivityRepository = (*MockActivityRepository)(nil)
	_ domain.CommentRepository  = (*MockCommentRepository)(nil)
	_ domain.ConfigLoader       = (*MockConfigLoader)(nil)
	_ domain.ConfigManager      = (*MockConfigManager)(nil)
)

// Package app provides the dependency injection container for the application.
package app

import (
	"io"
	"log/slog"
	"os"

	"github.com/runoshun/workforce/internal/domain"
	"github.com/runoshun/workforce/internal/infra/config"
	"github.com/runoshun/workforce/internal/infra/logging"
	"github.com/runoshun/workforce/internal/infra/memstore"
	"github.com/runoshun/workforce/internal/usecase"
	"github.com/runoshun/workforce/internal/usecase/shared"
)

// Options controls how New builds the container.
type Options struct {
	LogOutput  io.Writer // Destination for operational logs (default os.Stderr)
	ConfigPath string    // Local config file (empty = ./workforce.toml)
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Tasks         domain.TaskRepository
	Activities    domain.ActivityRepository
	Comments      domain.CommentRepository
	Clock         domain.Clock
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager
	OpLogger      domain.Logger

	// Pointer fields
	Logger *slog.Logger
	Config *domain.Config
}

// New creates a Container backed by fresh in-memory stores.
// Config loading errors are returned; unknown keys only produce warnings on Config.
func New(opts Options) (*Container, error) {
	loader := config.NewLoader(opts.ConfigPath)
	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}

	out := opts.LogOutput
	if out == nil {
		out = os.Stderr
	}
	level := logging.ParseLevel(cfg.Log.Level)

	clock := domain.RealClock{}
	c := NewWithDeps(
		cfg,
		memstore.NewTaskStore(clock),
		memstore.NewActivityStore(clock),
		memstore.NewCommentStore(clock),
		clock,
		logging.NewSlog(out, level),
	)
	c.ConfigLoader = loader
	c.ConfigManager = config.NewManager(opts.ConfigPath)
	c.OpLogger = logging.New(out, cfg.Log.Dir, level)
	return c, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg *domain.Config, tasks domain.TaskRepository, activities domain.ActivityRepository, comments domain.CommentRepository, clock domain.Clock, logger *slog.Logger) *Container {
	if cfg == nil {
		cfg = domain.NewDefaultConfig()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Container{
		Tasks:      tasks,
		Activities: activities,
		Comments:   comments,
		Clock:      clock,
		OpLogger:   domain.NopLogger{},
		Logger:     logger,
		Config:     cfg,
	}
}

// Close releases log files held by the operational logger.
func (c *Container) Close() error {
	if closer, ok := c.OpLogger.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (c *Container) systemUserID() int64 {
	if c.Config.Activity.SystemUserID != 0 {
		return c.Config.Activity.SystemUserID
	}
	return domain.DefaultSystemUserID
}

// ActivityLogger returns the shared activity logger.
func (c *Container) ActivityLogger() *shared.ActivityLogger {
	return shared.NewActivityLogger(c.Activities, c.Clock, c.OpLogger)
}

// UseCase factory methods

// GetTaskUseCase returns a new GetTask use case.
func (c *Container) GetTaskUseCase() *usecase.GetTask {
	return usecase.NewGetTask(c.Tasks, c.Activities, c.Comments)
}

// CreateTasksUseCase returns a new CreateTasks use case.
func (c *Container) CreateTasksUseCase() *usecase.CreateTasks {
	return usecase.NewCreateTasks(c.Tasks, c.ActivityLogger(), c.Clock, c.systemUserID())
}

// UpdateTasksUseCase returns a new UpdateTasks use case.
func (c *Container) UpdateTasksUseCase() *usecase.UpdateTasks {
	return usecase.NewUpdateTasks(c.Tasks, c.ActivityLogger(), c.systemUserID())
}

// AssignByReferenceUseCase returns a new AssignByReference use case.
func (c *Container) AssignByReferenceUseCase() *usecase.AssignByReference {
	return usecase.NewAssignByReference(c.Tasks, c.ActivityLogger(), c.Clock, c.systemUserID())
}

// FetchTasksByDateUseCase returns a new FetchTasksByDate use case.
func (c *Container) FetchTasksByDateUseCase() *usecase.FetchTasksByDate {
	return usecase.NewFetchTasksByDate(c.Tasks)
}

// UpdatePriorityUseCase returns a new UpdatePriority use case.
func (c *Container) UpdatePriorityUseCase() *usecase.UpdatePriority {
	return usecase.NewUpdatePriority(c.Tasks, c.ActivityLogger())
}

// ListByPriorityUseCase returns a new ListByPriority use case.
func (c *Container) ListByPriorityUseCase() *usecase.ListByPriority {
	return usecase.NewListByPriority(c.Tasks)
}

// AddCommentUseCase returns a new AddComment use case.
func (c *Container) AddCommentUseCase() *usecase.AddComment {
	return usecase.NewAddComment(c.Tasks, c.Comments, c.ActivityLogger(), c.Clock)
}

// CheckConsistencyUseCase returns a new CheckConsistency use case.
func (c *Container) CheckConsistencyUseCase() *usecase.CheckConsistency {
	return usecase.NewCheckConsistency(c.Tasks, c.Activities)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}

// ReplayScriptUseCase returns a new ReplayScript use case wired to this container's stores.
func (c *Container) ReplayScriptUseCase() *usecase.ReplayScript {
	return usecase.NewReplayScript(
		c.Tasks,
		c.Clock,
		c.CreateTasksUseCase(),
		c.UpdateTasksUseCase(),
		c.AssignByReferenceUseCase(),
		c.UpdatePriorityUseCase(),
		c.AddCommentUseCase(),
		c.CheckConsistencyUseCase(),
	)
}

// ShowLogsUseCase returns a new ShowLogs use case reading the configured log directory.
func (c *Container) ShowLogsUseCase() *usecase.ShowLogs {
	return usecase.NewShowLogs(c.Config.Log.Dir)
}

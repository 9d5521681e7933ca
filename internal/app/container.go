// Package app provides the dependency injection container for the application.
package app

import (
	"github.com/orchestra-automation/orchestra/internal/domain"
	"github.com/orchestra-automation/orchestra/internal/executor"
	"github.com/orchestra-automation/orchestra/internal/infra/activity"
	"github.com/orchestra-automation/orchestra/internal/infra/assistant"
	"github.com/orchestra-automation/orchestra/internal/infra/config"
	"github.com/orchestra-automation/orchestra/internal/infra/github"
	"github.com/orchestra-automation/orchestra/internal/infra/logging"
	"github.com/orchestra-automation/orchestra/internal/infra/taskstore"
	"github.com/orchestra-automation/orchestra/internal/scheduler"
	"github.com/orchestra-automation/orchestra/internal/session"
	"github.com/orchestra-automation/orchestra/internal/usecase"
)

// Container holds all port implementations and provides factory methods
// for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Store     domain.TaskStore
	Session   domain.SessionMonitor
	Gateways  domain.GatewayFactory
	Assistant domain.Assistant
	Clock     domain.Clock

	// Concrete collaborators
	Scheduler *scheduler.Scheduler
	Logger    *logging.Logger

	// Configuration
	ConfigDir string
	Config    *domain.Config
}

// New creates a Container rooted at the given config directory. An empty
// dir resolves to the default (~/.config/orchestra). Config problems
// degrade to defaults; they are reported in Config.Warnings, not errors.
func New(configDir string) *Container {
	if configDir == "" {
		configDir = domain.DefaultConfigDir()
	}

	cfg := config.NewLoader(configDir).Load()
	logger := logging.New(configDir, logging.ParseLevel(cfg.Settings.LogLevel))
	for _, warning := range cfg.Warnings {
		logger.Warn("", "config", warning)
	}

	clock := domain.RealClock{}
	store := taskstore.New(domain.TasksPath(configDir))
	scanner := activity.NewScanner(cfg.Settings.ActivityDir)
	tracker := session.NewTracker(scanner, clock)

	return &Container{
		Store:     store,
		Session:   tracker,
		Gateways:  github.NewFactory(logger),
		Assistant: assistant.New(cfg.Settings.AssistantCommand),
		Clock:     clock,
		Scheduler: scheduler.New(store, clock),
		Logger:    logger,
		ConfigDir: configDir,
		Config:    cfg,
	}
}

// Close releases the container's open resources.
func (c *Container) Close() error {
	return c.Logger.Close()
}

func (c *Container) executorDeps() executor.Deps {
	return executor.Deps{
		Gateways:  c.Gateways,
		Session:   c.Session,
		Scheduler: c.Scheduler,
		Log:       c.Logger,
		Clock:     c.Clock,
		Settings:  c.Config.Settings,
	}
}

// UseCase factory methods

// RunCycleUseCase returns a new RunCycle use case.
func (c *Container) RunCycleUseCase() *usecase.RunCycle {
	return usecase.NewRunCycle(c.Config, c.executorDeps(), c.Assistant, c.Logger)
}

// AddTaskUseCase returns a new AddTask use case.
func (c *Container) AddTaskUseCase() *usecase.AddTask {
	return usecase.NewAddTask(c.Scheduler)
}

// ListTasksUseCase returns a new ListTasks use case.
func (c *Container) ListTasksUseCase() *usecase.ListTasks {
	return usecase.NewListTasks(c.Scheduler)
}

// UpdateTaskUseCase returns a new UpdateTask use case.
func (c *Container) UpdateTaskUseCase() *usecase.UpdateTask {
	return usecase.NewUpdateTask(c.Scheduler)
}

// PruneTasksUseCase returns a new PruneTasks use case.
func (c *Container) PruneTasksUseCase() *usecase.PruneTasks {
	return usecase.NewPruneTasks(c.Scheduler)
}

// TaskSummaryUseCase returns a new TaskSummary use case.
func (c *Container) TaskSummaryUseCase() *usecase.TaskSummary {
	return usecase.NewTaskSummary(c.Scheduler)
}

// SessionStatusUseCase returns a new SessionStatus use case.
func (c *Container) SessionStatusUseCase() *usecase.SessionStatus {
	return usecase.NewSessionStatus(c.Session, c.Clock)
}

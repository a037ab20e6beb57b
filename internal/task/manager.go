// Package task schedules periodic background maintenance jobs.
package task

import (
	"github.com/safedocs/doc-audit-service/internal/app"
	"github.com/safedocs/doc-audit-service/pkg/safe_close"

	"go.uber.org/zap"
)

// Manager creates and drives all registered tasks.
type Manager struct {
	scheduler *Scheduler
	logger    *zap.Logger
}

// NewManager creates a task manager.
func NewManager(logger *zap.Logger, sc *safe_close.SafeClose, appContainer *app.App) *Manager {
	return &Manager{
		scheduler: NewScheduler(logger, sc, appContainer.WorkerPool()),
		logger:    logger,
	}
}

// RegisterTasks builds every registered task from the container.
func (m *Manager) RegisterTasks(appContainer *app.App) error {
	for _, factory := range GetFactories() {
		t, err := factory(appContainer)
		if err != nil {
			m.logger.Warn("failed to create task", zap.Error(err))
			return err
		}
		if t == nil {
			continue
		}
		m.scheduler.AddTask(t)
	}
	return nil
}

// Start launches all registered tasks.
func (m *Manager) Start() {
	m.scheduler.Start()
}

package task

import (
	"sync"

	"github.com/safedocs/doc-audit-service/internal/app"
)

// AppTaskFactory builds a task from the application container. A nil
// task with a nil error means the task is disabled.
type AppTaskFactory func(appContainer *app.App) (Task, error)

var (
	taskRegistry  []AppTaskFactory
	registryMutex sync.RWMutex
)

// RegisterWithApp registers a task factory, typically from an init()
// in the task's own file.
func RegisterWithApp(factory AppTaskFactory) {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	taskRegistry = append(taskRegistry, factory)
}

// GetFactories returns a copy of all registered factories.
func GetFactories() []AppTaskFactory {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	factories := make([]AppTaskFactory, len(taskRegistry))
	copy(factories, taskRegistry)
	return factories
}

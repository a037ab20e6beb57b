package task

import (
	"context"
	"time"

	"github.com/safedocs/doc-audit-service/pkg/safe_close"
	"github.com/safedocs/doc-audit-service/pkg/workerpool"

	"go.uber.org/zap"
)

// Task is one periodic maintenance job.
type Task interface {
	Name() string                  // task name
	Run(ctx context.Context) error // execute the task
	LoopInterval() time.Duration   // run interval
	IsStartupRun() bool            // run once immediately on start
}

// Scheduler drives registered tasks on their intervals. Task bodies run
// on the shared worker pool so background work stays bounded.
type Scheduler struct {
	logger *zap.Logger
	tasks  []Task
	sc     *safe_close.SafeClose
	pool   *workerpool.Pool
}

// NewScheduler creates a task scheduler.
func NewScheduler(logger *zap.Logger, sc *safe_close.SafeClose, pool *workerpool.Pool) *Scheduler {
	return &Scheduler{
		logger: logger,
		tasks:  make([]Task, 0),
		sc:     sc,
		pool:   pool,
	}
}

// AddTask registers a task with the scheduler.
func (s *Scheduler) AddTask(task Task) {
	s.tasks = append(s.tasks, task)
}

// Start launches all registered tasks.
func (s *Scheduler) Start() {
	if len(s.tasks) == 0 {
		s.logger.Info("no tasks to schedule")
		return
	}

	s.logger.Info("tasks starting", zap.Int("count", len(s.tasks)))

	for _, task := range s.tasks {
		s.startTask(task)
	}
}

// runTask executes one task iteration on the worker pool.
func (s *Scheduler) runTask(task Task, startupRun bool) {
	s.logger.Info("task running", zap.String("name", task.Name()), zap.Bool("startupRun", startupRun))

	err := s.pool.Submit(context.Background(), func(ctx context.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("task panic",
					zap.String("name", task.Name()),
					zap.Any("panic", r),
					zap.Stack("stack"))
			}
		}()
		return task.Run(ctx)
	})
	if err != nil {
		s.logger.Error("task running error",
			zap.String("name", task.Name()),
			zap.Bool("startupRun", startupRun),
			zap.Error(err))
	}
}

func (s *Scheduler) startTask(task Task) {

	s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()

		if task.IsStartupRun() {
			go s.runTask(task, true)
		}

		if task.LoopInterval() <= 0 {
			return
		}

		ticker := time.NewTicker(task.LoopInterval())
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.runTask(task, false)
			case <-closeSignal:
				s.logger.Info("task stopped", zap.String("name", task.Name()))
				return
			}
		}
	})
}

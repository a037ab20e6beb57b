package task

import (
	"context"
	"time"

	"github.com/safedocs/doc-audit-service/global"
	"github.com/safedocs/doc-audit-service/internal/app"

	"go.uber.org/zap"
)

// DbOptimizeTask runs periodic storage maintenance. Revisions are
// append-only and never deleted, so this is purely index/statistics
// upkeep.
type DbOptimizeTask struct {
	app *app.App
}

// Name returns the task name.
func (t *DbOptimizeTask) Name() string {
	return "DbOptimize"
}

// LoopInterval returns the run interval.
func (t *DbOptimizeTask) LoopInterval() time.Duration {
	return time.Hour
}

// IsStartupRun reports whether the task runs once on start.
func (t *DbOptimizeTask) IsStartupRun() bool {
	return false
}

// Run executes the maintenance statements for the configured engine.
func (t *DbOptimizeTask) Run(ctx context.Context) error {
	db := t.app.DB.WithContext(ctx)

	var stmts []string
	switch t.app.Config().Database.Type {
	case "sqlite":
		stmts = []string{"PRAGMA wal_checkpoint(TRUNCATE)", "PRAGMA optimize"}
	default:
		stmts = []string{"ANALYZE"}
	}

	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			global.Log().Error("task log",
				zap.String("task", t.Name()),
				zap.String("stmt", stmt),
				zap.Error(err))
			return err
		}
	}

	global.Log().Info("task log",
		zap.String("task", t.Name()),
		zap.String("type", "loopRun"),
		zap.String("msg", "success"))

	return nil
}

// NewDbOptimizeTask creates the maintenance task.
func NewDbOptimizeTask(appContainer *app.App) (Task, error) {
	return &DbOptimizeTask{app: appContainer}, nil
}

func init() {
	RegisterWithApp(func(appContainer *app.App) (Task, error) {
		return NewDbOptimizeTask(appContainer)
	})
}

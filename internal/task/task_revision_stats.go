package task

import (
	"context"
	"time"

	"github.com/safedocs/doc-audit-service/global"
	"github.com/safedocs/doc-audit-service/internal/app"
	"github.com/safedocs/doc-audit-service/internal/model"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var (
	documentsGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "doc_audit",
		Name:      "documents",
		Help:      "Number of tracked documents.",
	})
	revisionsGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "doc_audit",
		Name:      "revisions",
		Help:      "Number of stored revisions.",
	})
)

// RevisionStatsTask refreshes the document and revision count gauges.
type RevisionStatsTask struct {
	app *app.App
}

// Name returns the task name.
func (t *RevisionStatsTask) Name() string {
	return "RevisionStats"
}

// LoopInterval returns the run interval.
func (t *RevisionStatsTask) LoopInterval() time.Duration {
	return time.Minute
}

// IsStartupRun reports whether the task runs once on start.
func (t *RevisionStatsTask) IsStartupRun() bool {
	return true
}

// Run queries the current counts and updates the gauges.
func (t *RevisionStatsTask) Run(ctx context.Context) error {
	var revisions int64
	if err := t.app.DB.WithContext(ctx).Model(&model.Revision{}).Count(&revisions).Error; err != nil {
		global.Log().Error("task log",
			zap.String("task", t.Name()),
			zap.Error(err))
		return err
	}

	var documents int64
	if err := t.app.DB.WithContext(ctx).Model(&model.Revision{}).Distinct("doc_id").Count(&documents).Error; err != nil {
		global.Log().Error("task log",
			zap.String("task", t.Name()),
			zap.Error(err))
		return err
	}

	revisionsGauge.Set(float64(revisions))
	documentsGauge.Set(float64(documents))

	return nil
}

// NewRevisionStatsTask creates the stats task.
func NewRevisionStatsTask(appContainer *app.App) (Task, error) {
	return &RevisionStatsTask{app: appContainer}, nil
}

func init() {
	RegisterWithApp(func(appContainer *app.App) (Task, error) {
		return NewRevisionStatsTask(appContainer)
	})
}

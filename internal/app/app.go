// Package app provides the application container that wires all
// dependencies and services.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/safedocs/doc-audit-service/global"
	"github.com/safedocs/doc-audit-service/internal/dao"
	"github.com/safedocs/doc-audit-service/internal/domain"
	"github.com/safedocs/doc-audit-service/internal/service"
	pkgapp "github.com/safedocs/doc-audit-service/pkg/app"
	"github.com/safedocs/doc-audit-service/pkg/textscan"
	"github.com/safedocs/doc-audit-service/pkg/workerpool"
	"github.com/safedocs/doc-audit-service/pkg/writequeue"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App is the application container holding all dependencies and
// services.
type App struct {
	// injected infrastructure
	config *AppConfig
	logger *zap.Logger
	DB     *gorm.DB
	Dao    *dao.Dao

	// concurrency components
	workerPool    *workerpool.Pool
	writeQueueMgr *writequeue.Manager

	// repository layer
	RevisionRepo domain.RevisionRepository

	// service layer
	AuditService service.AuditService

	// shutdown control
	shutdownCh chan struct{}
	wg         sync.WaitGroup

	// StartTime is when the container was created.
	StartTime time.Time
}

// NewApp creates the application container and performs all dependency
// injection. cfg, logger and db are required.
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	a := &App{
		config:     cfg,
		logger:     logger,
		DB:         db,
		shutdownCh: make(chan struct{}),
		StartTime:  time.Now(),
	}

	wpConfig := cfg.GetWorkerPoolConfig()
	a.workerPool = workerpool.New(&wpConfig, logger)

	wqConfig := cfg.GetWriteQueueConfig()
	a.writeQueueMgr = writequeue.New(&wqConfig, logger)

	a.Dao = dao.New(db,
		dao.WithLogger(logger),
		dao.WithWriteQueueManager(a.writeQueueMgr),
	)

	a.RevisionRepo = dao.NewRevisionRepository(a.Dao)

	a.AuditService = service.NewAuditService(a.RevisionRepo, textscan.NewDefaultAnalyzer(), logger)

	logger.Info("App container initialized successfully",
		zap.Int("workerPoolMaxWorkers", wpConfig.MaxWorkers),
		zap.Int("writeQueueCapacity", wqConfig.QueueCapacity))

	return a, nil
}

// Close releases resources held by the container.
func (a *App) Close() error {
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		a.logger.Info("Database connection closed")
	}
	return nil
}

// Config returns the application configuration.
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger returns the zap logger.
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Version returns the build version information.
func (a *App) Version() pkgapp.VersionInfo {
	return pkgapp.VersionInfo{
		Version:   global.Version,
		GitTag:    global.GitTag,
		BuildTime: global.BuildTime,
	}
}

// WorkerPool returns the worker pool.
func (a *App) WorkerPool() *workerpool.Pool {
	return a.workerPool
}

// IsProductionMode reports whether JSON logging is enabled.
func (a *App) IsProductionMode() bool {
	return a.config.Log.Production
}

// DefaultShutdownTimeout bounds Shutdown when no context is given.
const DefaultShutdownTimeout = 30 * time.Second

// Shutdown gracefully closes the container: worker pool, write queue
// manager, then the database.
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("App container shutting down...")

	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
	}

	select {
	case <-a.shutdownCh:
		// already shut down
		return nil
	default:
		close(a.shutdownCh)
	}

	var errs []error

	if a.workerPool != nil {
		a.logger.Info("Shutting down worker pool...")
		if err := a.workerPool.Shutdown(ctx); err != nil {
			a.logger.Warn("Worker pool shutdown error", zap.Error(err))
			errs = append(errs, fmt.Errorf("worker pool shutdown: %w", err))
		}
	}

	if a.writeQueueMgr != nil {
		a.logger.Info("Shutting down write queue manager...")
		if err := a.writeQueueMgr.Shutdown(ctx); err != nil {
			a.logger.Warn("Write queue manager shutdown error", zap.Error(err))
			errs = append(errs, fmt.Errorf("write queue manager shutdown: %w", err))
		}
	}

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		a.logger.Info("All background operations completed")
	case <-ctx.Done():
		a.logger.Warn("Shutdown timeout waiting for background operations")
		errs = append(errs, fmt.Errorf("background operations timeout: %w", ctx.Err()))
	}

	if err := a.Close(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		a.logger.Warn("App container shutdown completed with errors",
			zap.Int("errorCount", len(errs)))
		return fmt.Errorf("shutdown completed with %d errors: %v", len(errs), errs)
	}

	a.logger.Info("App container shutdown completed successfully")
	return nil
}

// IsShuttingDown reports whether shutdown has started.
func (a *App) IsShuttingDown() bool {
	select {
	case <-a.shutdownCh:
		return true
	default:
		return false
	}
}

// TrackOperation registers a background operation for graceful
// shutdown; call the returned function when it completes.
func (a *App) TrackOperation() func() {
	a.wg.Add(1)
	return func() {
		a.wg.Done()
	}
}

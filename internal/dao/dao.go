// Package dao implements the data access layer.
package dao

import (
	"fmt"
	"os"
	"time"

	"github.com/safedocs/doc-audit-service/internal/model"
	"github.com/safedocs/doc-audit-service/pkg/fileurl"
	"github.com/safedocs/doc-audit-service/pkg/writequeue"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// DatabaseConfig carries the engine settings the dao needs.
type DatabaseConfig struct {
	Type            string
	Path            string
	UserName        string
	Password        string
	Host            string
	Name            string
	TablePrefix     string
	AutoMigrate     bool
	Charset         string
	ParseTime       bool
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime string
	RunMode         string
}

// Dao bundles the database handle with the shared infrastructure the
// repositories need.
type Dao struct {
	db     *gorm.DB
	logger *zap.Logger
	wq     *writequeue.Manager
}

// Option configures a Dao.
type Option func(*Dao)

// WithLogger injects the zap logger.
func WithLogger(lg *zap.Logger) Option {
	return func(d *Dao) { d.logger = lg }
}

// WithWriteQueueManager injects the per-document write serializer.
func WithWriteQueueManager(wq *writequeue.Manager) Option {
	return func(d *Dao) { d.wq = wq }
}

// New creates a Dao.
func New(db *gorm.DB, opts ...Option) *Dao {
	d := &Dao{db: db}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = zap.NewNop()
	}
	return d
}

// DB returns the underlying gorm handle.
func (d *Dao) DB() *gorm.DB {
	return d.db
}

// Logger returns the dao logger.
func (d *Dao) Logger() *zap.Logger {
	return d.logger
}

// NewDBEngineWithConfig opens the database described by c.
func NewDBEngineWithConfig(c DatabaseConfig, lg *zap.Logger) (*gorm.DB, error) {
	dialector := dialectorFor(c)
	if dialector == nil {
		return nil, fmt.Errorf("unsupported database type %q", c.Type)
	}

	logMode := logger.Default.LogMode(logger.Silent)
	if c.RunMode == "debug" {
		logMode = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logMode,
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   c.TablePrefix,
			SingularTable: true,
		},
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	sqlDB.SetMaxOpenConns(c.MaxOpenConns)

	lifetime := 10 * time.Minute
	if c.ConnMaxLifetime != "" {
		if parsed, err := time.ParseDuration(c.ConnMaxLifetime); err == nil {
			lifetime = parsed
		}
	}
	sqlDB.SetConnMaxLifetime(lifetime)

	if c.AutoMigrate {
		if err := model.AutoMigrate(db, ""); err != nil {
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
	}

	if lg != nil {
		lg.Info("database engine initialized", zap.String("type", c.Type))
	}

	return db, nil
}

func dialectorFor(c DatabaseConfig) gorm.Dialector {
	switch c.Type {
	case "mysql":
		return mysql.Open(fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=%s&parseTime=%t&loc=Local",
			c.UserName,
			c.Password,
			c.Host,
			c.Name,
			c.Charset,
			c.ParseTime,
		))
	case "postgres":
		return postgres.Open(fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=disable",
			c.Host,
			c.UserName,
			c.Password,
			c.Name,
		))
	case "sqlite":
		if !fileurl.IsExist(c.Path) {
			_ = fileurl.CreatePath(c.Path, os.ModePerm)
		}
		return sqlite.Open(c.Path)
	}
	return nil
}

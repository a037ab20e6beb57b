package app

import (
	"os"
	"path/filepath"

	"github.com/safedocs/doc-audit-service/pkg/util"
	"github.com/safedocs/doc-audit-service/pkg/workerpool"
	"github.com/safedocs/doc-audit-service/pkg/writequeue"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// AppConfig is the full application configuration.
type AppConfig struct {
	File     string         `yaml:"-"` // config file path, never serialized
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	App      AppSettings    `yaml:"app"`
	Tracer   TracerConfig   `yaml:"tracer"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is the log level, see zapcore.ParseLevel.
	Level string `yaml:"level" default:"warn"`
	// File is the log file path.
	File string `yaml:"file" default:"storage/logs/log.log"`
	// Production enables JSON output.
	Production bool `yaml:"production" default:"true"`
}

// ServerConfig configures the HTTP listeners.
type ServerConfig struct {
	// RunMode is "release" or "debug".
	RunMode string `yaml:"run-mode" default:"release"`
	// HttpPort is the public API listen address.
	HttpPort string `yaml:"http-port" default:":9000"`
	// ReadTimeout in seconds.
	ReadTimeout int `yaml:"read-timeout" default:"60"`
	// WriteTimeout in seconds.
	WriteTimeout int `yaml:"write-timeout" default:"60"`
	// PrivateHttpListen is the metrics/debug listen address.
	PrivateHttpListen string `yaml:"private-http-listen" default:":9001"`
}

// DatabaseConfig configures the revision store engine.
type DatabaseConfig struct {
	// Type is the database type: sqlite, mysql or postgres.
	Type string `yaml:"type" default:"sqlite"`
	// Path is the sqlite database file path.
	Path string `yaml:"path" default:"storage/database/db.sqlite3"`
	// UserName for mysql/postgres.
	UserName string `yaml:"username"`
	// Password for mysql/postgres.
	Password string `yaml:"password"`
	// Host for mysql/postgres.
	Host string `yaml:"host"`
	// Name is the database name.
	Name string `yaml:"name"`
	// TablePrefix is prepended to every table name.
	TablePrefix string `yaml:"table-prefix"`
	// AutoMigrate runs schema migration on start.
	AutoMigrate bool `yaml:"auto-migrate" default:"true"`
	// Charset for mysql.
	Charset string `yaml:"charset"`
	// ParseTime for mysql.
	ParseTime bool `yaml:"parse-time"`
	// MaxIdleConns, default 10.
	MaxIdleConns int `yaml:"max-idle-conns" default:"10"`
	// MaxOpenConns, default 100.
	MaxOpenConns int `yaml:"max-open-conns" default:"100"`
	// ConnMaxLifetime supports formats like 30m or 1h, default 30m.
	ConnMaxLifetime string `yaml:"conn-max-lifetime" default:"30m"`
}

// AppSettings holds application level settings.
type AppSettings struct {
	// DefaultContextTimeout bounds request handling, in seconds.
	DefaultContextTimeout int `yaml:"default-context-timeout" default:"60"`
	// MaxDocumentSize caps uploaded document content, in bytes.
	MaxDocumentSize int `yaml:"max-document-size" default:"16777216"`

	// Worker pool settings.
	WorkerPoolMaxWorkers int `yaml:"worker-pool-max-workers" default:"100"`
	WorkerPoolQueueSize  int `yaml:"worker-pool-queue-size" default:"1000"`

	// Write queue settings.
	WriteQueueCapacity int    `yaml:"write-queue-capacity" default:"100"`
	WriteQueueTimeout  string `yaml:"write-queue-timeout" default:"30s"`
	WriteQueueIdleTime string `yaml:"write-queue-idle-time" default:"10m"`
}

// TracerConfig configures request tracing.
type TracerConfig struct {
	// Enabled turns the trace id middleware on.
	Enabled bool `yaml:"enabled" default:"true"`
	// Header is the trace id header name, default X-Trace-ID.
	Header string `yaml:"header" default:"X-Trace-ID"`
}

// LoadConfig loads the configuration from a file and returns it with
// the file's absolute path.
func LoadConfig(f string) (*AppConfig, string, error) {
	realpath, err := filepath.Abs(f)
	if err != nil {
		return nil, "", err
	}
	realpath = filepath.Clean(realpath)

	c := new(AppConfig)
	c.File = realpath

	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "set default config failed")
	}

	file, err := os.ReadFile(realpath)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "read config file failed")
	}

	err = yaml.Unmarshal(file, c)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "parse config file failed")
	}

	// Set defaults again to fill fields present but empty in the YAML.
	// defaults.Set only fills zero values.
	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "re-set default config failed")
	}

	return c, realpath, nil
}

// GetWorkerPoolConfig maps settings to a worker pool config.
func (c *AppConfig) GetWorkerPoolConfig() workerpool.Config {
	cfg := workerpool.DefaultConfig()

	if c.App.WorkerPoolMaxWorkers > 0 {
		cfg.MaxWorkers = c.App.WorkerPoolMaxWorkers
	}
	if c.App.WorkerPoolQueueSize > 0 {
		cfg.QueueSize = c.App.WorkerPoolQueueSize
	}

	return cfg
}

// GetWriteQueueConfig maps settings to a write queue config.
func (c *AppConfig) GetWriteQueueConfig() writequeue.Config {
	cfg := writequeue.DefaultConfig()

	if c.App.WriteQueueCapacity > 0 {
		cfg.QueueCapacity = c.App.WriteQueueCapacity
	}
	if c.App.WriteQueueTimeout != "" {
		if timeout, err := util.ParseDuration(c.App.WriteQueueTimeout); err == nil {
			cfg.WriteTimeout = timeout
		}
	}
	if c.App.WriteQueueIdleTime != "" {
		if idleTime, err := util.ParseDuration(c.App.WriteQueueIdleTime); err == nil {
			cfg.IdleTimeout = idleTime
		}
	}

	return cfg
}

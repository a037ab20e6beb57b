package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	path := writeConfigFile(t, "server:\n  run-mode: debug\n")

	cfg, realpath, err := LoadConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, path, realpath)

	assert.Equal(t, "debug", cfg.Server.RunMode)
	assert.Equal(t, ":9000", cfg.Server.HttpPort)
	assert.Equal(t, ":9001", cfg.Server.PrivateHttpListen)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 16777216, cfg.App.MaxDocumentSize)
	assert.True(t, cfg.Tracer.Enabled)
	assert.Equal(t, "X-Trace-ID", cfg.Tracer.Header)
}

func TestLoadConfig_OverridesKeepExplicitValues(t *testing.T) {
	path := writeConfigFile(t, `
server:
  http-port: ":8080"
database:
  type: mysql
  host: db:3306
  username: audit
  name: auditdb
app:
  max-document-size: 1024
  write-queue-timeout: 5s
`)

	cfg, _, err := LoadConfig(path)
	assert.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.HttpPort)
	assert.Equal(t, "mysql", cfg.Database.Type)
	assert.Equal(t, "auditdb", cfg.Database.Name)
	assert.Equal(t, 1024, cfg.App.MaxDocumentSize)

	wq := cfg.GetWriteQueueConfig()
	assert.Equal(t, 5*time.Second, wq.WriteTimeout)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestGetWorkerPoolConfig_ZeroValuesFallBack(t *testing.T) {
	cfg := &AppConfig{}

	wp := cfg.GetWorkerPoolConfig()
	assert.Equal(t, 100, wp.MaxWorkers)
	assert.Equal(t, 1000, wp.QueueSize)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PDVD_CONFIG", "")
	t.Setenv("ARANGO_HOST", "db.internal")
	t.Setenv("ARANGO_PORT", "8529")
	t.Setenv("ARANGO_URL", "")
	t.Setenv("CHANGELOG_WORKERS", "")
	t.Setenv("CHANGELOG_REQUEST_TIMEOUT_SECONDS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.Arango.Host)
	assert.Equal(t, "http://db.internal:8529", cfg.Arango.URL)
	assert.Equal(t, 10, cfg.Changelog.Workers)
	assert.Equal(t, 120, cfg.Changelog.RequestTimeoutSeconds)
	assert.Equal(t, "changelog.requested", cfg.Kafka.RequestTopic)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pdvd.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
arango:
  url: http://arango:8529
  database: changelog
changelog:
  workers: 4
  time_zone: Europe/Berlin
kafka:
  brokers: [k1:9092, k2:9092]
`), 0o600))
	t.Setenv("PDVD_CONFIG", path)
	t.Setenv("CHANGELOG_WORKERS", "6")
	t.Setenv("KAFKA_GROUP_ID", "reports")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://arango:8529", cfg.Arango.URL)
	assert.Equal(t, "changelog", cfg.Arango.Database)
	assert.Equal(t, 6, cfg.Changelog.Workers)
	assert.Equal(t, "Europe/Berlin", cfg.Changelog.TimeZone)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "reports", cfg.Kafka.GroupID)
}

func TestLoadRejectsBadWorkers(t *testing.T) {
	t.Setenv("PDVD_CONFIG", "")
	t.Setenv("CHANGELOG_WORKERS", "zero")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	t.Setenv("PDVD_CONFIG", "")
	t.Setenv("CHANGELOG_WORKERS", "")
	t.Setenv("CHANGELOG_REQUEST_TIMEOUT_SECONDS", "-5")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("PDVD_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := Load()
	assert.Error(t, err)
}

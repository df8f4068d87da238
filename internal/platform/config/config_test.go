package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "fs", cfg.Blob.Backend)
	assert.Equal(t, "feder.records", cfg.Kafka.RecordsTopic)
	assert.Equal(t, 24*time.Hour, cfg.Webhook.DedupTTL)
	assert.Empty(t, cfg.Database.URL)
	assert.False(t, cfg.IsProduction())
}

func TestLoadLayers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "feder.yaml")
	yaml := "server:\n  addr: \":9090\"\ncases:\n  email_domain: file.example.org\nwebhook:\n  secret: from-file\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("FEDER_WEBHOOK__SECRET", "from-env")
	t.Setenv("FEDER_KAFKA__BROKERS", "localhost:9092, localhost:9093")
	t.Setenv("FEDER_WEBHOOK__DEDUP_TTL", "2h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr, "file overrides defaults")
	assert.Equal(t, "file.example.org", cfg.Cases.EmailDomain)
	assert.Equal(t, "from-env", cfg.Webhook.Secret, "env overrides file")
	assert.Equal(t, []string{"localhost:9092", "localhost:9093"}, cfg.Kafka.Brokers)
	assert.Equal(t, 2*time.Hour, cfg.Webhook.DedupTTL)
}

func TestValidate(t *testing.T) {
	t.Run("s3 backend needs a bucket", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.Blob.Backend = "s3"
		assert.Error(t, cfg.Validate())
	})

	t.Run("production needs real secrets", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.Environment = "production"
		assert.Error(t, cfg.Validate())

		cfg.Webhook.Secret = "hook"
		cfg.Auth.JWTSigningKey = "a-production-signing-key"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("rejects unknown log level", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.Log.Level = "verbose"
		assert.Error(t, cfg.Validate())
	})
}

func TestEnvTransform(t *testing.T) {
	assert.Equal(t, "database.url", envTransform("FEDER_DATABASE__URL"))
	assert.Equal(t, "webhook.max_body_bytes", envTransform("FEDER_WEBHOOK__MAX_BODY_BYTES"))
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.True(t, cfg.DBEnabled)
	assert.Equal(t, "hr_admin", cfg.Database.Database)
	assert.Equal(t, EventsNone, cfg.Events.Backend)
	assert.Equal(t, "hr:entity-events", cfg.Events.Stream)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, []string{"http://localhost:9000"}, cfg.HTTP.CORSOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("DB_ENABLED", "false")
	t.Setenv("DB_HOST", "pg")
	t.Setenv("EVENTS_BACKEND", "redis")
	t.Setenv("HTTP_CORS_ORIGINS", "http://a,http://b")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.HTTP.Addr)
	assert.False(t, cfg.DBEnabled)
	assert.Equal(t, "pg", cfg.Database.Host)
	assert.Equal(t, EventsRedis, cfg.Events.Backend)
	assert.Equal(t, []string{"http://a", "http://b"}, cfg.HTTP.CORSOrigins)
}

func TestLoad_DotEnvFile(t *testing.T) {
	f := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(f, []byte("LOG_LEVEL=debug\nREDIS_ADDR=cache:6390\n"), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv("LOG_LEVEL")
		_ = os.Unsetenv("REDIS_ADDR")
	})

	cfg, err := Load(f)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "cache:6390", cfg.Redis.Addr)
}

func TestLoad_UnknownEventsBackend(t *testing.T) {
	t.Setenv("EVENTS_BACKEND", "kafka")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

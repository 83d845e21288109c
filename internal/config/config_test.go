package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("MEMORY_BACKEND", "redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("ENGINE_BIO_ENABLED", "false")
	t.Setenv("STRESS_RATE_LIMIT", "250.5")
	t.Setenv("APP_TIMEZONE", "Local")

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, "redis", cfg.Memory.Backend)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.False(t, cfg.Engine.BioEnabled)
	assert.True(t, cfg.Engine.QuantumEnabled)
	assert.Equal(t, 250.5, cfg.Stress.RateLimit)
	assert.Equal(t, "Local", cfg.Location.String())
}

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"MEMORY_BACKEND", "ENGINE_DEFAULT_LANGUAGE", "STRESS_WORKERS", "STRESS_MAX_WORKERS", "STRESS_MAX_DURATION_SEC", "APP_TIMEZONE"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "inmemory", cfg.Memory.Backend)
	assert.Equal(t, "en", cfg.Engine.DefaultLanguage)
	assert.Equal(t, 10, cfg.Stress.Workers)
	assert.Equal(t, 50, cfg.Stress.MaxWorkers)
	assert.Equal(t, 60, cfg.Stress.MaxDurationSec)
	assert.Equal(t, time.UTC, cfg.Location)
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}

func TestGetEnvFloat(t *testing.T) {
	key := "TEST_FLOAT_VAR"

	os.Setenv(key, "0.25")
	assert.Equal(t, 0.25, getEnvFloat(key, 1))

	os.Setenv(key, "x")
	assert.Equal(t, 1.0, getEnvFloat(key, 1))

	os.Unsetenv(key)
}

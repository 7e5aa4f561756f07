package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logica.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
store:
  driver: redis
  redis:
    addr: redis:6379
    ttl: 1h
server:
  metrics: true
editor:
  showTitles: true
kinds:
  - name: question_readonly
    displayName: Make question read-only
    owner: question
    property: enableIf
    text: "Make question {owner} read-only"
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DriverRedis, cfg.Store.Driver)
	assert.Equal(t, "redis:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, time.Hour, cfg.Store.Redis.TTL)
	assert.Equal(t, "logica:document:", cfg.Store.Redis.Prefix, "defaults survive partial files")
	assert.True(t, cfg.Server.Metrics)
	assert.True(t, cfg.Editor.ShowTitles)
	assert.Equal(t, ":8080", cfg.Server.Addr)

	reg, err := cfg.Registry()
	require.NoError(t, err)
	_, ok := reg.ByName("question_readonly")
	assert.True(t, ok)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  driver: s3\n"), 0644))
	_, err := Load(path)
	assert.ErrorContains(t, err, `unknown store driver "s3"`)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"LOGICA_STORE":       "memory",
		"LOGICA_REDIS_DB":    "3",
		"LOGICA_REDIS_TTL":   "30s",
		"LOGICA_READ_ONLY":   "true",
		"LOGICA_LOG_LEVEL":   "debug",
		"LOGICA_SHOW_TITLES": "1",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	require.NoError(t, cfg.applyEnv(lookup))
	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.Equal(t, 3, cfg.Store.Redis.DB)
	assert.Equal(t, 30*time.Second, cfg.Store.Redis.TTL)
	assert.True(t, cfg.Editor.ReadOnly)
	assert.True(t, cfg.Editor.ShowTitles)
	assert.Equal(t, "debug", cfg.Log.Level)

	env["LOGICA_METRICS"] = "maybe"
	assert.Error(t, Default().applyEnv(lookup))
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("LOGICA_ADDR", ":9999")
	path := filepath.Join(t.TempDir(), "logica.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: \":7000\"\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.Addr)
}

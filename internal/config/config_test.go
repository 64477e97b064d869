package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	content := `
machines: ./defs
max_steps: 42
log:
  level: debug
store:
  backend: redis
  redis:
    addr: redis:6379
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "./defs", cfg.Machines)
	assert.Equal(t, 42, cfg.MaxSteps)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, StoreRedis, cfg.Store.Backend)
	assert.Equal(t, "redis:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, "turing:run:", cfg.Store.Redis.Prefix, "unset keys keep their default")
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
}

func TestLoad_MissingDefaultFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_steps: 0\nplaceholder: __\nstore:\n  backend: tape\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_steps")
	assert.Contains(t, err.Error(), `"tape"`)
	assert.Contains(t, err.Error(), "placeholder")
}

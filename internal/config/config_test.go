package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailytask/internal/config"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv(config.EnvBackend, "")
	t.Setenv(config.EnvServerURL, "")
	dir := t.TempDir()

	cfg, err := config.New(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Dir)
	assert.Equal(t, config.BackendHTTP, cfg.Backend)
	assert.Equal(t, config.DefaultServerURL, cfg.ServerURL)
	assert.Zero(t, cfg.RequestTimeout)
	assert.Equal(t, filepath.Join(dir, "session.json"), cfg.Session().Path())
}

func TestNew_FromFile(t *testing.T) {
	t.Setenv(config.EnvBackend, "")
	t.Setenv(config.EnvServerURL, "")
	dir := t.TempDir()
	yml := "backend: google\nserver_url: https://todo.example.com/\nrequest_timeout: 7s\nlog_level: info\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yml), 0600))

	cfg, err := config.New(dir)
	require.NoError(t, err)

	assert.Equal(t, config.BackendGoogle, cfg.Backend)
	assert.Equal(t, "https://todo.example.com", cfg.ServerURL)
	assert.Equal(t, 7*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, filepath.Join(dir, "token.json"), cfg.Session().Path())
}

func TestNew_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server_url: http://file:1\n"), 0600))
	t.Setenv(config.EnvServerURL, "http://env:2")
	t.Setenv(config.EnvBackend, "HTTP")

	cfg, err := config.New(dir)
	require.NoError(t, err)

	assert.Equal(t, "http://env:2", cfg.ServerURL)
	assert.Equal(t, config.BackendHTTP, cfg.Backend)
}

func TestNew_UnknownBackend(t *testing.T) {
	t.Setenv(config.EnvBackend, "carrier-pigeon")

	_, err := config.New(t.TempDir())
	assert.EqualError(t, err, "unknown backend: carrier-pigeon")
}

func TestNew_BadYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("backend: [\n"), 0600))

	_, err := config.New(dir)
	assert.Error(t, err)
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", "dailytask"), config.DefaultConfigDir())
}

func TestEnsureDir(t *testing.T) {
	cfg := &config.Config{Dir: filepath.Join(t.TempDir(), "a", "b")}
	require.NoError(t, cfg.EnsureDir())

	info, err := os.Stat(cfg.Dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.False(t, cfg.HasOAuthClient())
}

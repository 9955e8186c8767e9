package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vamsirusheel01/sentinel-ai/agent/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Collectors.ProcessPollInterval)
	assert.Equal(t, 2, cfg.Collectors.NetworkPollInterval)
	assert.Equal(t, 30*time.Second, cfg.ContextTimeout())
	assert.Equal(t, 10*time.Second, cfg.SendInterval())
	assert.Equal(t, 10, cfg.Sender.MaxBatchSize)
	assert.Equal(t, "http://127.0.0.1:5000/api/logs", cfg.Backend.APIURL)
	assert.Equal(t, 5*time.Second, cfg.BackendTimeout())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agent.yaml")
	body := `
collectors:
  process_poll_interval: 4
context:
  context_timeout: 60
backend:
  api_url: "http://backend.internal:5000/api/logs"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Collectors.ProcessPollInterval)
	assert.Equal(t, 2, cfg.Collectors.NetworkPollInterval, "unset keys keep defaults")
	assert.Equal(t, 60*time.Second, cfg.ContextTimeout())
	assert.Equal(t, "http://backend.internal:5000/api/logs", cfg.Backend.APIURL)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agent.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`backend: {api_url: "http://from-file:5000"}`), 0o644))

	t.Setenv("SENTINEL_BACKEND_URL", "http://from-env:5000/api/logs")
	t.Setenv("SENTINEL_BACKEND_TIMEOUT", "12")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://from-env:5000/api/logs", cfg.Backend.APIURL)
	assert.Equal(t, 12*time.Second, cfg.BackendTimeout())
}

func TestLoad_BadTimeoutEnvIgnored(t *testing.T) {
	t.Setenv("SENTINEL_BACKEND_TIMEOUT", "not-a-number")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.BackendTimeout())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agent.yaml")
	require.NoError(t, os.WriteFile(path, []byte("collectors: ["), 0o644))

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestInterval_ClampsNonPositive(t *testing.T) {
	assert.Equal(t, time.Second, config.Interval(0))
	assert.Equal(t, time.Second, config.Interval(-3))
	assert.Equal(t, 7*time.Second, config.Interval(7))
}

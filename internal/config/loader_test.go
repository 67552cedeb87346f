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
	// Point the loader at a config path that does not exist.
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.Store.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 24*time.Hour, cfg.Decay.Interval.Duration())
	assert.Equal(t, 30, cfg.Decay.ThresholdDays)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
store:
  path: /tmp/instincts-test.json
logging:
  level: debug
  format: console
decay:
  interval: 1h
  threshold_days: 14
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/instincts-test.json", cfg.Store.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, time.Hour, cfg.Decay.Interval.Duration())
	assert.Equal(t, 14, cfg.Decay.ThresholdDays)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
logging:
  level: debug
decay:
  threshold_days: 14
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0600))

	t.Setenv("LOGGING_LEVEL", "warn")
	t.Setenv("DECAY_THRESHOLD_DAYS", "7")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Logging.Level, "environment overrides the file")
	assert.Equal(t, 7, cfg.Decay.ThresholdDays)
}

func TestLoad_StorePathFromEnv(t *testing.T) {
	t.Setenv("STORE_PATH", "/tmp/env-instincts.json")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/env-instincts.json", cfg.Store.Path)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n  - ]["), 0600))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_ValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad level", "logging:\n  level: loud\n"},
		{"bad format", "logging:\n  format: xml\n"},
		{"bad threshold", "decay:\n  threshold_days: -3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0600))

			_, err := Load(path)
			require.Error(t, err)
		})
	}
}

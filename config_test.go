package tether_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xraph/tether"
)

func TestDefaultConfig(t *testing.T) {
	cfg := tether.DefaultConfig()

	assert.False(t, cfg.DisableBuildRequired)
	assert.False(t, cfg.DisableDefaultStrategies)
	assert.Empty(t, cfg.Logging.Level)
	assert.Equal(t, "tether", cfg.Metrics.Namespace)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tether.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
disable_build_required: true
container_token: ioc
logging:
  level: debug
`), 0o600))

	cfg, err := tether.LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.DisableBuildRequired)
	assert.Equal(t, "ioc", cfg.ContainerToken)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Encoding, "unset fields keep defaults")
	assert.Equal(t, "tether", cfg.Metrics.Namespace)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := tether.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging: ["), 0o600))

	_, err = tether.LoadConfig(path)
	assert.ErrorContains(t, err, "failed to parse config file")
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://localhost:5000/api", c.ServerBaseURL)
	assert.Equal(t, ".warrantyreminder", c.DataDir)
	assert.Equal(t, 15*time.Second, c.RequestTimeout)
	assert.Equal(t, "text", c.LogFormat)
	assert.Equal(t, "info", c.LogLevel)
	assert.Empty(t, c.GoogleClientID)
}

func TestLoad_NoSources(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(defaults(), cfg))
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"server_base_url": "http://json:1/api",
		"log_level": "warn",
		"request_timeout": "7s"
	}`), 0o600))

	t.Setenv(EnvServerURL, "http://env:1/api")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvDataDir, "/tmp/env-data")

	cfg, err := Load([]string{"-c", path, "-a", "http://flag:1/api"})
	require.NoError(t, err)

	// flag beats json beats env
	assert.Equal(t, "http://flag:1/api", cfg.ServerBaseURL)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "/tmp/env-data", cfg.DataDir)
	assert.Equal(t, 7*time.Second, cfg.RequestTimeout)
}

func TestLoad_BadJSONPath(t *testing.T) {
	_, err := Load([]string{"-config", filepath.Join(t.TempDir(), "missing.json")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

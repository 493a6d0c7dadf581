package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gambit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Empty(t, cfg.Host)
	assert.Equal(t, time.Duration(0), cfg.Timeout)
	assert.Equal(t, 60*time.Second, cfg.IdleTimeout)
	assert.False(t, cfg.Debug)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 60*time.Second, cfg.IdleTimeout)
}

func TestLoadValidYAML(t *testing.T) {
	path := writeConfig(t, `
host: api.example.com
access_key: access-1
secret_key: 00ff
timeout: 5s
idle_timeout: 2m
debug: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "api.example.com", cfg.Host)
	assert.Equal(t, "access-1", cfg.AccessKey)
	assert.Equal(t, "00ff", cfg.SecretKey)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 2*time.Minute, cfg.IdleTimeout)
	assert.True(t, cfg.Debug)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "host: [unclosed\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	path := writeConfig(t, "host: file.example.com\naccess_key: file-key\n")

	t.Setenv("GAMBIT_HOST", "env.example.com")
	t.Setenv("GAMBIT_SECRET_KEY", "abcd")
	t.Setenv("GAMBIT_TIMEOUT", "750ms")
	t.Setenv("GAMBIT_DEBUG", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env.example.com", cfg.Host)
	assert.Equal(t, "file-key", cfg.AccessKey)
	assert.Equal(t, "abcd", cfg.SecretKey)
	assert.Equal(t, 750*time.Millisecond, cfg.Timeout)
	assert.True(t, cfg.Debug)
}

func TestEnvOverridesInvalid(t *testing.T) {
	t.Run("timeout", func(t *testing.T) {
		t.Setenv("GAMBIT_TIMEOUT", "soon")
		_, err := Load("")
		assert.ErrorContains(t, err, "GAMBIT_TIMEOUT")
	})
	t.Run("debug", func(t *testing.T) {
		t.Setenv("GAMBIT_DEBUG", "maybe")
		_, err := Load("")
		assert.ErrorContains(t, err, "GAMBIT_DEBUG")
	})
}

func TestValidate(t *testing.T) {
	valid := Config{Host: "h", AccessKey: "a", SecretKey: "00"}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"host", func(c *Config) { c.Host = "" }, "host"},
		{"access key", func(c *Config) { c.AccessKey = "" }, "access key"},
		{"secret key", func(c *Config) { c.SecretKey = "" }, "secret key"},
		{"timeout", func(c *Config) { c.Timeout = -time.Second }, "timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}

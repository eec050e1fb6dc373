package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "HS256", cfg.JWT.Algorithm)
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessTokenDuration)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadEnvOverridesFile(t *testing.T) {
	chdir(t, t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")
	yamlBody := `
server:
  port: "9000"
database:
  driver: mysql
  name: fromfile
jwt:
  access_token_duration: 45m
`
	require.NoError(t, os.WriteFile(path, []byte(yamlBody), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("DB_NAME", "fromenv")
	t.Setenv("JWT_ACCESS_TOKEN_EXPIRE_MINUTES", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "fromenv", cfg.Database.Name)
	assert.Equal(t, 45*time.Minute, cfg.JWT.AccessTokenDuration)
}

func TestValidate(t *testing.T) {
	cfg := defaults()
	cfg.Database.Driver = "oracle"
	assert.Error(t, cfg.Validate())

	cfg = defaults()
	cfg.Server.Environment = "production"
	assert.Error(t, cfg.Validate(), "production requires a secret")

	cfg = defaults()
	require.NoError(t, cfg.Validate())
	assert.NotEmpty(t, cfg.JWT.Secret, "development falls back to a dev secret")
}

func TestGetEnvAsDurationSeconds(t *testing.T) {
	t.Setenv("REQ_TIMEOUT", "15")
	assert.Equal(t, 15*time.Second, getEnvAsDuration("REQ_TIMEOUT", time.Second))
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

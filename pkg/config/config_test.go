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
	t.Setenv("CORIDE_CONFIG_PATH", t.TempDir()) // no file there
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("TOKEN_SECRET", "")
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "0.0.0.0", cfg.BindAddress)
	assert.Equal(t, DefaultTokenTTL, cfg.TokenTTL)
	assert.Equal(t, "coride", cfg.CacheKeyPrefix)
	assert.Equal(t, "default", cfg.Source("port"))
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte("database_url: postgres://coride@db/coride\nport: \"8080\"\ntoken_ttl: 600\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), content, 0o600))

	t.Setenv("CORIDE_CONFIG_PATH", dir)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://coride@db/coride", cfg.DatabaseURL)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 600, cfg.TokenTTL)
	assert.Equal(t, "file", cfg.Source("database_url"))
	assert.Equal(t, 10*time.Minute, cfg.TokenTTLDuration())
}

func TestEnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte("port: \"8080\"\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), content, 0o600))

	t.Setenv("CORIDE_CONFIG_PATH", dir)
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("TOKEN_TTL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "environment", cfg.Source("port"))
}

func TestLoadBadYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(":\tnope"), 0o600))
	t.Setenv("CORIDE_CONFIG_PATH", dir)

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing database url",
			mutate:  func(c *Config) { c.DatabaseURL = "" },
			wantErr: "database_url",
		},
		{
			name:    "missing token secret",
			mutate:  func(c *Config) { c.TokenSecret = "" },
			wantErr: "token_secret",
		},
		{
			name:    "non-positive ttl",
			mutate:  func(c *Config) { c.TokenTTL = 0 },
			wantErr: "token_ttl",
		},
		{
			name:    "bad port",
			mutate:  func(c *Config) { c.Port = "http" },
			wantErr: "port",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newDefault()
			cfg.DatabaseURL = "postgres://coride@localhost/coride"
			cfg.TokenSecret = "s3cret"
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestRedisAddrs(t *testing.T) {
	cfg := newDefault()
	assert.Nil(t, cfg.RedisAddrs())

	cfg.RedisURL = "cache1:6379, cache2:6379"
	assert.Equal(t, []string{"cache1:6379", "cache2:6379"}, cfg.RedisAddrs())
}

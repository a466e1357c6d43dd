package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfigFile(t, "jwt_secret: testing-secret\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 3000, cfg.Port)
	require.Equal(t, "development", cfg.Env)
	require.True(t, cfg.IsDev())
	require.Contains(t, cfg.DSN, "tcp(127.0.0.1:3306)/giftloom")
	require.Contains(t, cfg.DSN, "parseTime=true")
	require.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := writeConfigFile(t, "port: 8080\nnot_a_field: true\n")

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	path := writeConfigFile(t, "port: 70000\n")

	_, err := Load(path)
	require.Error(t, err)
}

func TestDatabaseDSNPrefersExplicitValue(t *testing.T) {
	cfg := DatabaseRuntimeConfig{DSN: "user:pw@tcp(db:3306)/gifts?parseTime=true"}
	require.Equal(t, "user:pw@tcp(db:3306)/gifts?parseTime=true", cfg.DSNValue())
}

func TestRedisURLBuilder(t *testing.T) {
	cfg := normalizeRedisConfig(RedisRuntimeConfig{Host: "cache", Port: 6380, Password: "pw", DB: 2, TLS: true})
	require.Equal(t, "rediss://:pw@cache:6380/2", cfg.URLValue())
}

func TestLoadNormalizesOriginsAndRedisURL(t *testing.T) {
	path := writeConfigFile(t, `
env: Production
redis_url: cache.internal:6379
allowed_origins:
  - " https://giftloom.app "
  - ""
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.False(t, cfg.IsDev())
	require.Equal(t, []string{"https://giftloom.app"}, cfg.AllowedOrigins)
	require.Equal(t, "redis://cache.internal:6379", cfg.RedisURL)
}

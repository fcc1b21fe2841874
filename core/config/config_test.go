package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// unsetenv removes key for the duration of the test.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoadEnvOnlyDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("ADMIN_ID", "42")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.Telegram.Token)
	assert.Equal(t, int64(42), cfg.Telegram.OperatorID)
	assert.Equal(t, RunModeLongpoll, cfg.Telegram.RunMode)
	assert.Equal(t, defaultHTTPPort, cfg.HTTP.Port)
	assert.Equal(t, defaultHealthBody, cfg.HTTP.Body)
	assert.Equal(t, SessionMemory, cfg.Session.Backend)
	assert.Equal(t, defaultKeyPrefix, cfg.Session.KeyPrefix)
}

func TestLoadMissingSecrets(t *testing.T) {
	t.Run("token", func(t *testing.T) {
		t.Setenv("TELEGRAM_TOKEN", " ")
		t.Setenv("ADMIN_ID", "42")
		_, err := Load("")
		require.ErrorIs(t, err, ErrMissingToken)
	})
	t.Run("operator", func(t *testing.T) {
		t.Setenv("TELEGRAM_TOKEN", "123:abc")
		unsetenv(t, "ADMIN_ID")
		_, err := Load("")
		require.ErrorIs(t, err, ErrMissingOperator)
	})
}

func TestLoadYAMLWithEnvOverlay(t *testing.T) {
	path := writeFile(t, "config.yaml", `
telegram:
  token: from-file
  operator_id: 7
http:
  port: 8080
session:
  backend: Redis
  ttl: 30m
redis:
  addresses: [" localhost:6379 ", ""]
logging:
  level: debug
`)
	t.Setenv("TELEGRAM_TOKEN", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Telegram.Token)
	assert.Equal(t, int64(7), cfg.Telegram.OperatorID)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, SessionRedis, cfg.Session.Backend)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, []string{"localhost:6379"}, cfg.Redis.Addresses)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "config.toml", `
[telegram]
token = "toml-token"
operator_id = 99
run_mode = "polling"

[session]
backend = "sqlite"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "toml-token", cfg.Telegram.Token)
	assert.Equal(t, int64(99), cfg.Telegram.OperatorID)
	assert.Equal(t, RunModeLongpoll, cfg.Telegram.RunMode)
	assert.Equal(t, SessionSQLite, cfg.Session.Backend)
}

func TestNormalizeRejectsInvalidValues(t *testing.T) {
	base := func() *Config {
		return &Config{Telegram: TelegramConfig{Token: "t", OperatorID: 1}}
	}

	cases := map[string]func(*Config){
		"run mode":        func(c *Config) { c.Telegram.RunMode = "carrier-pigeon" },
		"webhook url":     func(c *Config) { c.Telegram.RunMode = RunModeWebhook },
		"backend":         func(c *Config) { c.Session.Backend = "etcd" },
		"redis addresses": func(c *Config) { c.Session.Backend = SessionRedis },
		"negative ttl":    func(c *Config) { c.Session.TTL = -time.Second },
		"port":            func(c *Config) { c.HTTP.Port = 70000 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := base()
			mutate(cfg)
			assert.Error(t, Normalize(cfg))
		})
	}
}

func TestLoadBrokenYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", "telegram: [unterminated")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YAML")
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

var (
	// ErrMissingToken is returned when no Telegram bot token is configured.
	ErrMissingToken = errors.New("telegram token is required (TELEGRAM_TOKEN)")
	// ErrMissingOperator is returned when no operator chat id is configured.
	ErrMissingOperator = errors.New("operator chat id is required (ADMIN_ID)")
)

// TelegramConfig holds Telegram bot related settings.
type TelegramConfig struct {
	Token string `yaml:"token" toml:"token" envconfig:"TELEGRAM_TOKEN"`
	// OperatorID is the chat that receives submissions and forwarded questions.
	OperatorID int64  `yaml:"operator_id" toml:"operator_id" envconfig:"ADMIN_ID"`
	RunMode    string `yaml:"run_mode" toml:"run_mode" envconfig:"TELEGRAM_RUN_MODE"`
	// LongPollTimeoutSeconds defines long polling timeout; 0 -> default
	LongPollTimeoutSeconds int `yaml:"longpoll_timeout_seconds" toml:"longpoll_timeout_seconds" envconfig:"TELEGRAM_LONGPOLL_TIMEOUT_SECONDS"`
}

// WebhookConfig specifies webhook settings.
type WebhookConfig struct {
	URL    string `yaml:"url" toml:"url" envconfig:"WEBHOOK_URL"`
	Listen string `yaml:"listen" toml:"listen" envconfig:"WEBHOOK_LISTEN"`
	Port   int    `yaml:"port" toml:"port" envconfig:"WEBHOOK_PORT"`
}

// HTTPConfig configures the health-check listener.
type HTTPConfig struct {
	Port int    `yaml:"port" toml:"port" envconfig:"PORT"`
	Body string `yaml:"body" toml:"body" envconfig:"HEALTH_BODY"`
}

// SessionConfig selects where conversation state lives.
type SessionConfig struct {
	Backend   string        `yaml:"backend" toml:"backend" envconfig:"SESSION_BACKEND"`
	TTL       time.Duration `yaml:"ttl" toml:"ttl" envconfig:"SESSION_TTL"`
	KeyPrefix string        `yaml:"key_prefix" toml:"key_prefix" envconfig:"SESSION_KEY_PREFIX"`
}

// RedisConfig holds connection settings for the redis session backend.
// MasterName switches the client into sentinel mode.
type RedisConfig struct {
	Addresses  []string `yaml:"addresses" toml:"addresses" envconfig:"REDIS_ADDRESSES"`
	Password   string   `yaml:"password" toml:"password" envconfig:"REDIS_PASSWORD"`
	DB         int      `yaml:"db" toml:"db" envconfig:"REDIS_DB"`
	MasterName string   `yaml:"master_name" toml:"master_name" envconfig:"REDIS_MASTER_NAME"`
}

// LoggingConfig defines logging related configuration.
type LoggingConfig struct {
	Level       string `yaml:"level" toml:"level" envconfig:"LOG_LEVEL"`
	Format      string `yaml:"format" toml:"format" envconfig:"LOG_FORMAT"`
	KeysOrder   string `yaml:"keys_order" toml:"keys_order"`
	DebugSample string `yaml:"debug_sample" toml:"debug_sample"`
	Dir         string `yaml:"dir" toml:"dir" envconfig:"LOG_DIR"`
	BotFile     string `yaml:"bot_file" toml:"bot_file"`
	// Profile indicates environment profile such as "debug" or "prod".
	Profile string `yaml:"profile" toml:"profile" envconfig:"LOG_PROFILE"`
}

const (
	// RunModeWebhook selects webhook mode for Telegram updates.
	RunModeWebhook = "webhook"
	// RunModeLongpoll selects long-polling mode for Telegram updates.
	RunModeLongpoll = "longpoll"
)

const (
	// SessionMemory keeps conversations in process memory.
	SessionMemory = "memory"
	// SessionRedis keeps conversations in redis.
	SessionRedis = "redis"
	// SessionPostgres keeps conversations in a postgres table.
	SessionPostgres = "postgres"
	// SessionSQLite keeps conversations in a sqlite file.
	SessionSQLite = "sqlite"
)

const (
	defaultHTTPPort   = 3000
	defaultHealthBody = "Portfolio Bot — running"
	defaultKeyPrefix  = "intake:session:"
)

// Config aggregates the configuration that belongs to the reusable core.
type Config struct {
	Telegram TelegramConfig `yaml:"telegram" toml:"telegram"`
	Webhook  WebhookConfig  `yaml:"webhook" toml:"webhook"`
	HTTP     HTTPConfig     `yaml:"http" toml:"http"`
	Session  SessionConfig  `yaml:"session" toml:"session"`
	Redis    RedisConfig    `yaml:"redis" toml:"redis"`
	Logging  LoggingConfig  `yaml:"logging" toml:"logging"`
}

// Load reads configuration from an optional YAML/TOML file and environment variables.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := Decode(path, &cfg); err != nil {
		return nil, err
	}
	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Decode fills out from the file at path (when it exists) and then from the environment.
// The file format is chosen by extension: .toml is TOML, anything else is YAML.
func Decode(path string, out any) error {
	if err := decodeFile(path, out); err != nil {
		return err
	}
	if err := envconfig.Process("", out); err != nil {
		return fmt.Errorf("failed to process env: %w", err)
	}
	return nil
}

func decodeFile(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), out); err != nil {
			return fmt.Errorf("failed to parse TOML config: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse YAML config: %w", err)
		}
	}
	return nil
}

// Normalize performs basic validation of required configuration fields and adjusts defaults.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}

	cfg.Telegram.Token = strings.TrimSpace(cfg.Telegram.Token)
	if cfg.Telegram.Token == "" {
		return ErrMissingToken
	}
	if cfg.Telegram.OperatorID == 0 {
		return ErrMissingOperator
	}

	rm := strings.ToLower(strings.TrimSpace(cfg.Telegram.RunMode))
	if rm == "" || rm == "polling" {
		rm = RunModeLongpoll
	}
	switch rm {
	case RunModeWebhook:
		if strings.TrimSpace(cfg.Webhook.URL) == "" {
			return fmt.Errorf("webhook.url is required when telegram.run_mode is 'webhook'")
		}
		if strings.TrimSpace(cfg.Webhook.Listen) == "" {
			return fmt.Errorf("webhook.listen is required when telegram.run_mode is 'webhook'")
		}
		if cfg.Webhook.Port <= 0 {
			return fmt.Errorf("webhook.port must be > 0 when telegram.run_mode is 'webhook'")
		}
	case RunModeLongpoll:
		if cfg.Telegram.LongPollTimeoutSeconds < 0 {
			return fmt.Errorf("telegram.longpoll_timeout_seconds must be >= 0")
		}
	default:
		return fmt.Errorf("invalid telegram.run_mode %q; allowed: webhook, longpoll", cfg.Telegram.RunMode)
	}
	cfg.Telegram.RunMode = rm

	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = defaultHTTPPort
	}
	if cfg.HTTP.Port < 0 || cfg.HTTP.Port > 65535 {
		return fmt.Errorf("invalid http.port %d", cfg.HTTP.Port)
	}
	if strings.TrimSpace(cfg.HTTP.Body) == "" {
		cfg.HTTP.Body = defaultHealthBody
	}

	return normalizeSession(cfg)
}

func normalizeSession(cfg *Config) error {
	backend := strings.ToLower(strings.TrimSpace(cfg.Session.Backend))
	if backend == "" {
		backend = SessionMemory
	}
	switch backend {
	case SessionMemory, SessionPostgres, SessionSQLite:
	case SessionRedis:
		addrs := make([]string, 0, len(cfg.Redis.Addresses))
		for _, a := range cfg.Redis.Addresses {
			if a = strings.TrimSpace(a); a != "" {
				addrs = append(addrs, a)
			}
		}
		if len(addrs) == 0 {
			return fmt.Errorf("redis.addresses is required when session.backend is 'redis'")
		}
		cfg.Redis.Addresses = addrs
	default:
		return fmt.Errorf("invalid session.backend %q; allowed: memory, redis, postgres, sqlite", cfg.Session.Backend)
	}
	cfg.Session.Backend = backend

	if cfg.Session.TTL < 0 {
		return fmt.Errorf("session.ttl must be >= 0")
	}
	if strings.TrimSpace(cfg.Session.KeyPrefix) == "" {
		cfg.Session.KeyPrefix = defaultKeyPrefix
	}
	return nil
}

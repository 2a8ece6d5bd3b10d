package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Kiosk KioskConfig
	Mongo MongoConfig
	Redis RedisConfig
}

// KioskConfig points the control plane at the kiosk server.
type KioskConfig struct {
	APIBaseURL      string        `env:"KIOSK_API_BASE_URL,      default=http://localhost:8000/api/kiosk"`
	APITimeout      time.Duration `env:"KIOSK_API_TIMEOUT,       default=10s"`
	RefreshInterval time.Duration `env:"KIOSK_REFRESH_INTERVAL,  default=15s"`
	UITokenSecret   string        `env:"KIOSK_UI_TOKEN_SECRET"`
	SkuPrefix       string        `env:"KIOSK_SKU_PREFIX,        default=PREFIX"`
	JournalWorkers  int           `env:"KIOSK_JOURNAL_WORKERS,   default=2"`
	TerminalName    string        `env:"KIOSK_TERMINAL_NAME,     default=kiosk"`
}

// MongoConfig enables the session journal when URI is set.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=kiosk_control"`
}

// RedisConfig enables the catalog cache when Addr is set.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Kiosk.UITokenSecret == "" && !cfg.IsDevelopment() {
		return nil, fmt.Errorf("config: KIOSK_UI_TOKEN_SECRET is required outside development")
	}
	return &cfg, nil
}

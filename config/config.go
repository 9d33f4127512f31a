package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Store    StoreConfig
	NATS     NATSConfig
	Metrics  MetricsConfig
}

type AppConfig struct {
	Name        string `env:"APP_NAME" envDefault:"fundbridge"`
	Environment string `env:"APP_ENV" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

type ServerConfig struct {
	Port            string        `env:"SERVER_PORT" envDefault:"8080"`
	AllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	RateLimit       int           `env:"RATE_LIMIT_PER_MINUTE" envDefault:"100"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type DatabaseConfig struct {
	Driver          string        `env:"DB_DRIVER" envDefault:"postgres"`
	Host            string        `env:"DB_HOST" envDefault:"localhost"`
	Port            int           `env:"DB_PORT" envDefault:"5432"`
	User            string        `env:"DB_USER" envDefault:"postgres"`
	Password        string        `env:"DB_PASSWORD"`
	DBName          string        `env:"DB_NAME" envDefault:"fundbridge"`
	SSLMode         string        `env:"DB_SSLMODE" envDefault:"disable"`
	SQLitePath      string        `env:"DB_SQLITE_PATH" envDefault:"fundbridge.db"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"5m"`

	// DSN e montado em Load a partir dos campos acima.
	DSN string
}

// StoreConfig escolhe o backend do chat: "gorm" ou "memory".
type StoreConfig struct {
	MessagingDriver string `env:"MESSAGING_STORE" envDefault:"gorm"`
}

type NATSConfig struct {
	URL           string `env:"NATS_URL"`
	SubjectPrefix string `env:"NATS_SUBJECT_PREFIX" envDefault:"fundbridge"`
}

type MetricsConfig struct {
	Enabled bool   `env:"METRICS_ENABLED" envDefault:"true"`
	Path    string `env:"METRICS_PATH" envDefault:"/metrics"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))
	switch cfg.Database.Driver {
	case "postgres":
		cfg.Database.DSN = fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Database.Host,
			cfg.Database.Port,
			cfg.Database.User,
			cfg.Database.Password,
			cfg.Database.DBName,
			cfg.Database.SSLMode,
		)
	case "sqlite":
		cfg.Database.DSN = cfg.Database.SQLitePath
	default:
		return nil, fmt.Errorf("DB_DRIVER invalido: %q", cfg.Database.Driver)
	}

	switch cfg.Store.MessagingDriver {
	case "gorm", "memory":
	default:
		return nil, fmt.Errorf("MESSAGING_STORE invalido: %q", cfg.Store.MessagingDriver)
	}

	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

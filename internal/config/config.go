package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every setting the service reads from the environment.
type Config struct {
	Port string `mapstructure:"PORT"`

	DatabaseDriver    string        `mapstructure:"DATABASE_DRIVER"`
	DatabaseDSN       string        `mapstructure:"DATABASE_DSN"`
	DBMaxOpenConns    int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns    int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBConnMaxLifetime time.Duration `mapstructure:"DB_CONN_MAX_LIFETIME"`

	TokenSecret    string        `mapstructure:"TOKEN_SECRET"`
	TokenTTL       time.Duration `mapstructure:"TOKEN_TTL"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`

	RabbitMQURL string `mapstructure:"RABBITMQ_URL"`

	RedisAddr       string        `mapstructure:"REDIS_ADDR"`
	RateLimit       int           `mapstructure:"RATE_LIMIT"`
	RateLimitWindow time.Duration `mapstructure:"RATE_LIMIT_WINDOW"`

	CORSOrigins string `mapstructure:"CORS_ORIGINS"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogPretty bool   `mapstructure:"LOG_PRETTY"`
}

var defaults = map[string]any{
	"PORT":                 "4000",
	"DATABASE_DRIVER":      "postgres",
	"DATABASE_DSN":         "host=127.0.0.1 user=postgres password=postgres dbname=ducks port=5432 sslmode=disable",
	"DB_MAX_OPEN_CONNS":    25,
	"DB_MAX_IDLE_CONNS":    5,
	"DB_CONN_MAX_LIFETIME": "30m",
	"TOKEN_SECRET":         "",
	"TOKEN_TTL":            "2h",
	"REQUEST_TIMEOUT":      "10s",
	"RABBITMQ_URL":         "",
	"REDIS_ADDR":           "",
	"RATE_LIMIT":           20,
	"RATE_LIMIT_WINDOW":    "1m",
	"CORS_ORIGINS":         "*",
	"LOG_LEVEL":            "info",
	"LOG_PRETTY":           false,
}

// Load reads the configuration from the process environment.
func Load() (*Config, error) {
	return LoadFrom(viper.New())
}

// LoadFrom reads the configuration through the given viper instance, so tests
// can preset values without touching the environment.
func LoadFrom(v *viper.Viper) (*Config, error) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	if c.TokenSecret == "" {
		return fmt.Errorf("TOKEN_SECRET must be set")
	}
	switch c.DatabaseDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}
	return nil
}

// ListenAddr returns the address Fiber should listen on.
func (c *Config) ListenAddr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

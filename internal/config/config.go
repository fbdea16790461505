package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Security SecurityConfig `yaml:"security" envconfig:"SECURITY"`
	Auth     AuthConfig     `yaml:"auth" envconfig:"AUTH"`
	Database DatabaseConfig `yaml:"database" envconfig:"DATABASE"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"5000"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173"`
	EnableCORS     bool            `yaml:"enable_cors" envconfig:"ENABLE_CORS" default:"true"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"false"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50"`
}

// AuthConfig contains token signing and cookie configuration.
// SigningKey has no default: the service refuses to start without one.
type AuthConfig struct {
	SigningKey string        `yaml:"signing_key" envconfig:"SIGNING_KEY"`
	TokenTTL   time.Duration `yaml:"token_ttl" envconfig:"TOKEN_TTL" default:"1h"`
	Issuer     string        `yaml:"issuer" envconfig:"ISSUER" default:"travlog"`
	Production bool          `yaml:"production" envconfig:"PRODUCTION" default:"false"`
}

// DatabaseConfig contains MongoDB connection configuration
type DatabaseConfig struct {
	URI                string        `yaml:"uri" envconfig:"URI" default:"mongodb://localhost:27017"`
	Name               string        `yaml:"name" envconfig:"NAME" default:"travlogDB"`
	ServiceCollection  string        `yaml:"service_collection" envconfig:"SERVICE_COLLECTION" default:"serviceCollection"`
	BookingCollection  string        `yaml:"booking_collection" envconfig:"BOOKING_COLLECTION" default:"bookingCollection"`
	ConnectTimeout     time.Duration `yaml:"connect_timeout" envconfig:"CONNECT_TIMEOUT" default:"10s"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format string `yaml:"format" envconfig:"FORMAT" default:"json"`
}

// Load loads configuration from environment variables and an optional
// config.yaml next to the binary. Fields present in the file override
// environment values; everything else falls back to tagged defaults.
func Load() (*Config, error) {
	return LoadFrom("config.yaml")
}

// LoadFrom loads configuration using the given config file path.
func LoadFrom(configFile string) (*Config, error) {
	var cfg Config

	if err := envconfig.Process("TRAVLOG", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if _, err := os.Stat(configFile); err == nil {
		if err := overlayFromFile(configFile, &cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// overlayFromFile unmarshals the YAML file over cfg; only fields present
// in the file are touched.
func overlayFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// validate checks configuration invariants
func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Auth.SigningKey == "" {
		return fmt.Errorf("auth signing key is required (set TRAVLOG_AUTH_SIGNING_KEY)")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("token TTL must be positive, got %s", c.Auth.TokenTTL)
	}
	if c.Database.URI == "" {
		return fmt.Errorf("database URI is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database name is required")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	return nil
}

// ListenAddr returns the address the HTTP server binds to
func (c *Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

package config

import (
	"errors"  // Validation error aggregation
	"fmt"     // Error formatting
	"strconv" // Port validation
	"time"    // Durations

	"github.com/caarlos0/env/v8" // Struct-tag environment parsing
	"github.com/joho/godotenv"   // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort     string        `env:"APP_PORT" envDefault:"8080"`                  // Application port
	DBDriver    string        `env:"DB_DRIVER" envDefault:"mysql"`                // mysql or sqlite
	DBUser      string        `env:"DB_USER"`                                     // Database user
	DBPassword  string        `env:"DB_PASSWORD"`                                 // Database password
	DBHost      string        `env:"DB_HOST" envDefault:"127.0.0.1"`              // Database host
	DBPort      string        `env:"DB_PORT" envDefault:"3306"`                   // Database port
	DBName      string        `env:"DB_NAME" envDefault:"finance_tracker"`        // Database name
	SQLitePath  string        `env:"SQLITE_PATH" envDefault:"finance_tracker.db"` // SQLite file when DB_DRIVER=sqlite
	JWTSecret   string        `env:"JWT_SECRET"`                                  // JWT secret key
	TokenTTL    time.Duration `env:"TOKEN_TTL" envDefault:"24h"`                  // Access token lifetime
	RedisAddr   string        `env:"REDIS_ADDR"`                                  // Redis server address, empty disables caching
	RedisPass   string        `env:"REDIS_PASS"`                                  // Redis password
	RedisDB     int           `env:"REDIS_DB" envDefault:"0"`                     // Redis database number
	CacheTTL    time.Duration `env:"CACHE_TTL" envDefault:"60s"`                  // Lifetime of cached list responses
	IsProd      bool          `env:"IS_PROD" envDefault:"false"`                  // Is production environment
	LogLevel    string        `env:"LOG_LEVEL" envDefault:"info"`                 // logrus level
	AutoMigrate bool          `env:"AUTO_MIGRATE" envDefault:"false"`             // Run schema migration on server start
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	_ = godotenv.Load() // Load .env file if present
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration and reports every problem found
func (c *Config) Validate() error {
	var errs []error
	if port, err := strconv.Atoi(c.AppPort); err != nil {
		errs = append(errs, fmt.Errorf("invalid port '%s': must be a number", c.AppPort))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %d: must be between 1 and 65535", port))
	}
	switch c.DBDriver {
	case "mysql":
		if c.DBName == "" {
			errs = append(errs, errors.New("DB_NAME is required for mysql"))
		}
	case "sqlite":
		if c.SQLitePath == "" {
			errs = append(errs, errors.New("SQLITE_PATH is required for sqlite"))
		}
	default:
		errs = append(errs, fmt.Errorf("invalid DB_DRIVER '%s': must be mysql or sqlite", c.DBDriver))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("invalid TOKEN_TTL %s: must be positive", c.TokenTTL))
	}
	if c.CacheTTL <= 0 {
		errs = append(errs, fmt.Errorf("invalid CACHE_TTL %s: must be positive", c.CacheTTL))
	}
	return errors.Join(errs...)
}

// MySQLDSN builds the Data Source Name for the MySQL driver
func (c *Config) MySQLDSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true&charset=utf8mb4&loc=UTC"
}

package config

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const PROD_STRING = "prod"

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all application configuration loaded from environment.
type Config struct {
	AppEnv      string `envconfig:"APP_ENV" default:"dev"`
	ProdOrigins string `envconfig:"PROD_ORIGINS" default:""`
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":8080"`

	// Store
	StoreDriver string `envconfig:"STORE_DRIVER" default:"postgres"`
	DBDSN       string `envconfig:"DB_DSN"`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"terrain-booking.db"`
	AutoMigrate bool   `envconfig:"AUTO_MIGRATE" default:"true"`

	// Bcrypt cost for password hashing
	BcryptCost int `envconfig:"BCRYPT_COST" default:"12"`

	// Logging
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`

	// Booking window, inclusive on both ends
	BookingOpenHour        int `envconfig:"BOOKING_OPEN_HOUR" default:"10"`
	BookingCloseHour       int `envconfig:"BOOKING_CLOSE_HOUR" default:"22"`
	BookingDefaultDuration int `envconfig:"BOOKING_DEFAULT_DURATION" default:"45"`
}

// IsProduction reports whether APP_ENV selects the production profile.
func (c *Config) IsProduction() bool {
	return c.AppEnv == PROD_STRING
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values that envconfig cannot express with tags.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverPostgres:
		// Database DSN is required
		if c.DBDSN == "" {
			return errors.New("DB_DSN is required when STORE_DRIVER is postgres")
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required when STORE_DRIVER is sqlite")
		}
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.StoreDriver)
	}

	// bcrypt rejects costs outside [4, 31]
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("invalid BCRYPT_COST %d: must be between 4 and 31", c.BcryptCost)
	}

	if c.BookingOpenHour < 0 || c.BookingCloseHour > 23 || c.BookingOpenHour > c.BookingCloseHour {
		return fmt.Errorf("invalid booking window [%d, %d]", c.BookingOpenHour, c.BookingCloseHour)
	}

	if c.BookingDefaultDuration <= 0 {
		return fmt.Errorf("invalid BOOKING_DEFAULT_DURATION %d: must be positive", c.BookingDefaultDuration)
	}

	return nil
}

// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds every setting the service reads at startup.
type Config struct {
	AppPort          string
	DatabaseDriver   string
	DatabaseURL      string
	FrontendURL      string
	RabbitMQURL      string
	RabbitMQExchange string
	LogSQL           bool
	ShutdownTimeout  time.Duration
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("APP_PORT", ":4000")
	v.SetDefault("DATABASE_DRIVER", DriverPostgres)
	v.SetDefault("DATABASE_URL", "host=127.0.0.1 user=postgres password=postgres dbname=catalog port=5432 sslmode=disable")
	v.SetDefault("FRONTEND_URL", "")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_EXCHANGE", "products")
	v.SetDefault("LOG_SQL", false)
	v.SetDefault("SHUTDOWN_TIMEOUT", 10*time.Second)
	v.AutomaticEnv()
	return v
}

// Load reads envFile (if it exists) into v and returns the resulting Config.
// Environment variables take precedence over values from the file.
func Load(v *viper.Viper, envFile string) (Config, error) {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			v.SetConfigFile(envFile)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return Config{}, fmt.Errorf("read %s: %w", envFile, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("stat %s: %w", envFile, err)
		}
	}

	cfg := Config{
		AppPort:          v.GetString("APP_PORT"),
		DatabaseDriver:   strings.ToLower(v.GetString("DATABASE_DRIVER")),
		DatabaseURL:      v.GetString("DATABASE_URL"),
		FrontendURL:      strings.TrimRight(v.GetString("FRONTEND_URL"), "/"),
		RabbitMQURL:      v.GetString("RABBITMQ_URL"),
		RabbitMQExchange: v.GetString("RABBITMQ_EXCHANGE"),
		LogSQL:           v.GetBool("LOG_SQL"),
		ShutdownTimeout:  v.GetDuration("SHUTDOWN_TIMEOUT"),
	}
	return cfg, cfg.Validate()
}

// Validate reports settings the service cannot start with.
func (c Config) Validate() error {
	switch c.DatabaseDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.AppPort == "" {
		return errors.New("APP_PORT is required")
	}
	if !strings.Contains(c.AppPort, ":") {
		return fmt.Errorf("APP_PORT %q must be a listen address such as :4000", c.AppPort)
	}
	if c.RabbitMQURL != "" && c.RabbitMQExchange == "" {
		return errors.New("RABBITMQ_EXCHANGE is required when RABBITMQ_URL is set")
	}
	return nil
}

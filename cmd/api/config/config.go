// Package config reads the service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	HTTPPort               int
	Store                  string
	DatabaseURL            string
	DatabaseMigrationsPath string
	RequestTimeout         time.Duration
	RateLimitRPS           float64
	RateLimitBurst         int
	NotificationsEnabled   bool
	NotificationsBaseURL   string
	NotificationsTimeout   time.Duration
	APIURL                 string
}

func Default() Config {
	return Config{
		HTTPPort:               8080,
		Store:                  StorePostgres,
		DatabaseMigrationsPath: "migrations",
		RequestTimeout:         5 * time.Second,
		RateLimitRPS:           10,
		RateLimitBurst:         20,
		NotificationsBaseURL:   "https://ntfy.sh",
		NotificationsTimeout:   2 * time.Second,
		APIURL:                 "http://localhost:8080",
	}
}

/*
Load starts from Default and overrides every field whose variable is set.
Durations must carry a unit suffix, like "5s".
*/
func Load(getenv func(string) string) (Config, error) {
	cfg := Default()
	var errs []error

	str := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	parse := func(key string, set func(string) error) {
		if v := getenv(key); v != "" {
			if err := set(v); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
			}
		}
	}

	parse("HTTP_PORT", func(v string) (err error) { cfg.HTTPPort, err = strconv.Atoi(v); return })
	str("STORE", &cfg.Store)
	str("DATABASE_URL", &cfg.DatabaseURL)
	str("DATABASE_MIGRATIONS_PATH", &cfg.DatabaseMigrationsPath)
	parse("HTTP_REQUEST_TIMEOUT", func(v string) (err error) { cfg.RequestTimeout, err = time.ParseDuration(v); return })
	parse("RATE_LIMIT_RPS", func(v string) (err error) { cfg.RateLimitRPS, err = strconv.ParseFloat(v, 64); return })
	parse("RATE_LIMIT_BURST", func(v string) (err error) { cfg.RateLimitBurst, err = strconv.Atoi(v); return })
	parse("NOTIFICATIONS_ENABLED", func(v string) (err error) { cfg.NotificationsEnabled, err = strconv.ParseBool(v); return })
	str("NOTIFICATIONS_BASE_URL", &cfg.NotificationsBaseURL)
	parse("NOTIFICATIONS_TIMEOUT", func(v string) (err error) { cfg.NotificationsTimeout, err = time.ParseDuration(v); return })
	str("LIBRARY_API_URL", &cfg.APIURL)

	if err := errors.Join(errs...); err != nil {
		return Config{}, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

/* Validate checks the settings the server needs before it starts. */
func (c Config) Validate() error {
	var errs []error
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("HTTP_PORT %d out of range", c.HTTPPort))
	}
	switch c.Store {
	case StoreMemory:
	case StorePostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required with the postgres store"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORE must be %s or %s, got %q", StorePostgres, StoreMemory, c.Store))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("HTTP_REQUEST_TIMEOUT must be positive"))
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		errs = append(errs, errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must not be negative"))
	}
	if c.NotificationsEnabled {
		if _, err := url.ParseRequestURI(c.NotificationsBaseURL); err != nil {
			errs = append(errs, fmt.Errorf("NOTIFICATIONS_BASE_URL: %w", err))
		}
		if c.NotificationsTimeout <= 0 {
			errs = append(errs, errors.New("NOTIFICATIONS_TIMEOUT must be positive"))
		}
	}
	return errors.Join(errs...)
}

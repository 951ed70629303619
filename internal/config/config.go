// Package config is the engine's explicit configuration object. It replaces
// the source system's global mode toggles: everything tunable is read once
// at startup and passed down.
package config

import (
	"fmt"
	"os"
	"strconv"

	"obligation-engine/internal/gateway"
	"obligation-engine/internal/rate"
)

// Config holds everything the engine's binaries need.
type Config struct {
	Postgres gateway.PostgresConfig

	// RatePolicy selects the rate rule set for legacy obligations without a
	// stamped rate.
	RatePolicy rate.Policy

	// HTTPAddr is the confirmation receiver's listen address.
	HTTPAddr string

	// SweepConcurrency bounds parallel reconciles in a batch sweep.
	SweepConcurrency int

	// MetricsNamespace prefixes all Prometheus metric names.
	MetricsNamespace string
}

// Default returns the local development configuration.
func Default() Config {
	return Config{
		Postgres:         gateway.DefaultPostgresConfig(),
		RatePolicy:       rate.PolicyFixedTable,
		HTTPAddr:         ":8080",
		SweepConcurrency: 8,
		MetricsNamespace: "obligation_engine",
	}
}

// FromEnv loads configuration from the environment on top of the defaults.
func FromEnv() (Config, error) {
	cfg := Default()

	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Postgres.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid DB_PORT %q: %w", v, err)
		}
		cfg.Postgres.Port = port
	}
	if v := os.Getenv("DB_USER"); v != "" {
		cfg.Postgres.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Postgres.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		cfg.Postgres.Database = v
	}
	if v := os.Getenv("DB_SSLMODE"); v != "" {
		cfg.Postgres.SSLMode = v
	}

	if v := os.Getenv("RATE_POLICY"); v != "" {
		switch rate.Policy(v) {
		case rate.PolicyFixedTable, rate.PolicyPrincipalTiered:
			cfg.RatePolicy = rate.Policy(v)
		default:
			return Config{}, fmt.Errorf("unknown RATE_POLICY %q", v)
		}
	}

	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}

	if v := os.Getenv("SWEEP_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid SWEEP_CONCURRENCY %q", v)
		}
		cfg.SweepConcurrency = n
	}

	return cfg, nil
}

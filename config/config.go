package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the configuration settings for the data layer.
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	Levels        LevelsConfig        `yaml:"levels"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// LevelsConfig holds the XP award policy.
type LevelsConfig struct {
	// Cooldown is the minimum interval between XP awards per (guild, user).
	Cooldown time.Duration `yaml:"cooldown"`
	// FloodRate and FloodBurst bound the process-wide award attempt rate
	// before any database round trip. Zero values disable the guard.
	FloodRate  float64 `yaml:"flood_rate"`
	FloodBurst int     `yaml:"flood_burst"`
}

// ObservabilityConfig holds configuration for observability components.
type ObservabilityConfig struct {
	MetricsAddress string  `yaml:"metrics_address"`
	OTLPEndpoint   string  `yaml:"otlp_endpoint"`
	Environment    string  `yaml:"environment"`
	SampleRate     float64 `yaml:"sample_rate"`
}

const defaultLevelsCooldown = 60 * time.Second

// LoadConfig loads the configuration from a YAML file, falling back to
// environment variables when the file is absent. Environment variables
// override file values either way.
func LoadConfig(filename string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(filename)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("LEVELS_COOLDOWN"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Levels.Cooldown = d
		}
	}
	if v := os.Getenv("LEVELS_FLOOD_RATE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Levels.FloodRate = f
		}
	}
	if v := os.Getenv("LEVELS_FLOOD_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Levels.FloodBurst = n
		}
	}
	if v := os.Getenv("METRICS_ADDRESS"); v != "" {
		cfg.Observability.MetricsAddress = v
	}
	if v := os.Getenv("OTLP_ENDPOINT"); v != "" {
		cfg.Observability.OTLPEndpoint = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	if v := os.Getenv("SAMPLE_RATE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Observability.SampleRate = f
		}
	}

	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("postgres DSN not set (config file or DATABASE_URL)")
	}
	if cfg.Levels.Cooldown <= 0 {
		cfg.Levels.Cooldown = defaultLevelsCooldown
	}

	return &cfg, nil
}

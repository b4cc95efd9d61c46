package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the driver's on-disk configuration, loaded once at
// startup. Every field has a workable zero value so an empty or
// missing config file still runs.
type Config struct {
	// StorePath is the badger database directory used for checkpoints.
	// Empty disables durable checkpointing; the run keeps its table
	// in memory only.
	StorePath string `yaml:"store_path"`

	// CheckpointCron is a 5-field cron expression controlling how
	// often the in-progress table is flushed to the store while a
	// solve is running. Empty uses "@every 5m".
	CheckpointCron string `yaml:"checkpoint_cron"`

	// MetricsAddr, if non-empty, serves Prometheus metrics at
	// /metrics on this address (e.g. ":9090").
	MetricsAddr string `yaml:"metrics_addr"`

	// TableCapacity sizes the transposition table. Zero uses the
	// solver's own built-in default.
	TableCapacity int `yaml:"table_capacity"`

	// SolveBudget bounds a single Solve call to this much wall-clock
	// time, after which it stops as if cancelled (the table stays
	// consistent and resumable). Zero means no budget.
	SolveBudget yamlDuration `yaml:"solve_budget"`
}

// yamlDuration is a time.Duration that unmarshals from a YAML scalar
// like "90s" or "5m" via time.ParseDuration, since yaml.v3 has no
// built-in duration support.
type yamlDuration time.Duration

func (d *yamlDuration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	if s == "" {
		*d = 0
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parsing solve_budget %q: %w", s, err)
	}
	*d = yamlDuration(parsed)
	return nil
}

// DefaultConfig returns the zero-value configuration: in-memory table,
// checkpoint requests every 5 minutes, no metrics endpoint.
func DefaultConfig() Config {
	return Config{}
}

// LoadConfig reads and parses a YAML config file at path. A missing
// path is not an error: it returns DefaultConfig().
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Nilao18/matter-ophelia4/pkg/humidity"
	"gopkg.in/yaml.v3"
)

// Config holds the device configuration.
type Config struct {
	LogLevel             string        `yaml:"log_level"`
	TraceLog             string        `yaml:"trace_log"`
	StateFile            string        `yaml:"state_file"`
	Simulate             bool          `yaml:"simulate"`
	SimulationInterval   time.Duration `yaml:"simulation_interval"`
	InitialHumidity      uint16        `yaml:"initial_humidity"`
	DynamicEndpointSlots int           `yaml:"dynamic_endpoint_slots"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		LogLevel:             "info",
		Simulate:             true,
		SimulationInterval:   5 * time.Second,
		InitialHumidity:      5000,
		DynamicEndpointSlots: 4,
	}
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.SimulationInterval <= 0 {
		return fmt.Errorf("simulation interval must be positive, got %s", c.SimulationInterval)
	}
	if c.InitialHumidity > humidity.DefaultMaxMeasuredValue && c.InitialHumidity != humidity.MeasuredValueNull {
		return fmt.Errorf("initial humidity must be 0-%d or null, got %d", humidity.DefaultMaxMeasuredValue, c.InitialHumidity)
	}
	if c.DynamicEndpointSlots < 1 {
		return fmt.Errorf("dynamic endpoint slots must be at least 1, got %d", c.DynamicEndpointSlots)
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level: %s", s)
}

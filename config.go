package taskexec

import (
	"fmt"
	"os"

	yaml "github.com/goccy/go-yaml"
)

// Config sizes the executor and its event sources.
type Config struct {
	QueueCapacity  int `yaml:"queue_capacity"`  // 100 (by default), per priority ring
	StreamCapacity int `yaml:"stream_capacity"` // 100 (by default)
	TickMS         int `yaml:"tick_ms"`          // 10 (by default)
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		QueueCapacity:  DefaultQueueCapacity,
		StreamCapacity: DefaultStreamCapacity,
		TickMS:         10,
	}
}

// LoadConfig reads YAML from path over the defaults. An empty path
// yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	// sanity clamps
	if cfg.QueueCapacity <= 0 {
		cfg.QueueCapacity = DefaultQueueCapacity
	}
	if cfg.StreamCapacity <= 0 {
		cfg.StreamCapacity = DefaultStreamCapacity
	}
	if cfg.TickMS <= 0 {
		cfg.TickMS = 10
	}

	return cfg, nil
}

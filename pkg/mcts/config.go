package mcts

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Engine settings loadable from a YAML file, so applications can tune the
// search without recompiling
type Config struct {
	// Random playouts per freshly expanded node
	Playouts uint32 `yaml:"playouts"`

	// Rollout generator seed, 0 picks a time-based seed
	Seed uint64 `yaml:"seed"`

	Limits LimitsConfig `yaml:"limits"`
}

type LimitsConfig struct {
	Cycles     uint32 `yaml:"cycles"`
	MovetimeMs int    `yaml:"movetime_ms"`
}

func DefaultConfig() *Config {
	return &Config{
		Playouts: DefaultPlayouts,
	}
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if config.Playouts == 0 {
		config.Playouts = DefaultPlayouts
	}
	return config, nil
}

// Tree options matching the configuration
func (c *Config) TreeOptions() []Option {
	opts := []Option{WithPlayouts(c.Playouts)}
	if c.Seed != 0 {
		opts = append(opts, WithSeed(c.Seed))
	}
	return opts
}

// Search limits matching the configuration, infinite when nothing is bounded
func (c *Config) SearchLimits() *Limits {
	limits := DefaultLimits()
	if c.Limits.Cycles > 0 {
		limits.SetCycles(c.Limits.Cycles)
	}
	if c.Limits.MovetimeMs > 0 {
		limits.SetMovetime(c.Limits.MovetimeMs)
	}
	return limits
}

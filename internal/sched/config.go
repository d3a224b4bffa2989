package sched

import (
	"fmt"
	"os"

	yaml "github.com/goccy/go-yaml"
)

// Config mirrors config.yml
type Config struct {
	Algorithm        Algorithm `yaml:"algorithm"`          // FCFS (by default)
	Quantum          int       `yaml:"quantum"`            // 2 (by default)
	Cores            int       `yaml:"cores"`              // 1 (by default)
	MLFQLevels       []int     `yaml:"mlfq_levels"`        // [q, 2q, 4q] when empty
	SandboxTimeoutMS int       `yaml:"sandbox_timeout_ms"` // 2000 (by default)
}

// DefaultConfig is used when no config file is given.
func DefaultConfig() Config {
	return Config{
		Algorithm:        FCFS,
		Quantum:          2,
		Cores:            1,
		SandboxTimeoutMS: 2000,
	}
}

// Load reads YAML and overrides defaults; empty path = defaults only.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects values the engine cannot run with.
func (c Config) Validate() error {
	if c.Algorithm < FCFS || c.Algorithm > Custom {
		return invalidConfig("algorithm", "unknown value %d", int(c.Algorithm))
	}
	if c.Quantum <= 0 {
		return invalidConfig("quantum", "must be > 0, got %d", c.Quantum)
	}
	if c.Cores < 1 {
		return invalidConfig("cores", "must be >= 1, got %d", c.Cores)
	}
	if c.SandboxTimeoutMS <= 0 {
		return invalidConfig("sandbox_timeout_ms", "must be > 0, got %d", c.SandboxTimeoutMS)
	}
	return validateLevels(c.MLFQLevels)
}

// Levels returns the MLFQ quanta in effect.
func (c Config) Levels() []int {
	if len(c.MLFQLevels) > 0 {
		return c.MLFQLevels
	}
	return DefaultLevels(c.Quantum)
}

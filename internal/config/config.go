// Package config loads the YAML configuration of the cpkernel CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/cpkernel/search"
	"github.com/katalvlaran/cpkernel/state"
)

// Strategy names accepted in configuration.
const (
	StrategyTrail = "trail"
	StrategyCopy  = "copy"
)

var (
	// ErrInvalidStrategy is returned for an unknown state strategy name.
	ErrInvalidStrategy = errors.New("config: invalid strategy")

	// ErrInvalidSize is returned for a board size or worker count below one.
	ErrInvalidSize = errors.New("config: invalid size")
)

// Config is the root configuration document.
type Config struct {
	Strategy    string        `yaml:"strategy"`
	Discrepancy int           `yaml:"discrepancy"` // -1 disables the limit
	Queens      QueensConfig  `yaml:"queens"`
	Limits      LimitsConfig  `yaml:"limits"`
	LNS         LNSConfig     `yaml:"lns"`
	Logging     LoggingConfig `yaml:"logging"`
}

// QueensConfig sizes the N-Queens workload.
type QueensConfig struct {
	N int `yaml:"n"`
}

// LimitsConfig bounds a single search; zero values disable a bound.
type LimitsConfig struct {
	Nodes     int           `yaml:"nodes"`
	Failures  int           `yaml:"failures"`
	Solutions int           `yaml:"solutions"`
	Time      time.Duration `yaml:"time"`
}

// LNSConfig drives the lns subcommand.
type LNSConfig struct {
	Workers      int    `yaml:"workers"`
	Iterations   int    `yaml:"iterations"`
	FailureLimit int    `yaml:"failure_limit"`
	Relax        int    `yaml:"relax"`
	Seed         uint64 `yaml:"seed"`
}

// LoggingConfig selects the log level ("debug", "info", "warn", "error").
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Strategy:    StrategyTrail,
		Discrepancy: -1,
		Queens:      QueensConfig{N: 8},
		LNS: LNSConfig{
			Workers:      2,
			Iterations:   100,
			FailureLimit: 50,
			Relax:        3,
			Seed:         1,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	if _, err := NewManager(c.Strategy); err != nil {
		return err
	}
	if c.Queens.N < 1 {
		return fmt.Errorf("%w: queens.n=%d", ErrInvalidSize, c.Queens.N)
	}
	if c.LNS.Workers < 1 {
		return fmt.Errorf("%w: lns.workers=%d", ErrInvalidSize, c.LNS.Workers)
	}
	if c.LNS.Relax < 1 {
		return fmt.Errorf("%w: lns.relax=%d", ErrInvalidSize, c.LNS.Relax)
	}

	return nil
}

// NewManager returns a fresh manager for the named strategy.
func NewManager(strategy string) (state.Manager, error) {
	switch strategy {
	case StrategyTrail:
		return state.NewTrail(), nil
	case StrategyCopy:
		return state.NewCopy(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidStrategy, strategy)
	}
}

// Limit combines the configured bounds; nil when none is set.
// A time bound starts counting when Limit is called.
func (l LimitsConfig) Limit() search.Limit {
	var limits []search.Limit
	if l.Nodes > 0 {
		limits = append(limits, search.NodeLimit(l.Nodes))
	}
	if l.Failures > 0 {
		limits = append(limits, search.FailureLimit(l.Failures))
	}
	if l.Solutions > 0 {
		limits = append(limits, search.SolutionLimit(l.Solutions))
	}
	if l.Time > 0 {
		limits = append(limits, search.TimeLimit(l.Time))
	}
	if len(limits) == 0 {
		return nil
	}

	return search.AnyLimit(limits...)
}

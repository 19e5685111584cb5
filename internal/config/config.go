// Package config loads taskweave configuration from YAML with sane defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/omarkhaled-auto/Super-Duper-Agent-sub000/internal/scheduler"
)

// DefaultPath is the conventional project config location.
const DefaultPath = "taskweave.yaml"

// Config is the top-level taskweave configuration.
type Config struct {
	// TasksFile is the task document the CLI reads by default.
	TasksFile string `yaml:"tasks_file"`

	// Scheduler settings, mapped onto scheduler.Config.
	MaxParallelTasks     int    `yaml:"max_parallel_tasks"`
	ConflictStrategy     string `yaml:"conflict_strategy"`
	EnableCriticalPath   *bool  `yaml:"enable_critical_path"`
	EnableContextScoping *bool  `yaml:"enable_context_scoping"`

	// CodebaseRoot, when set, is scanned to classify task files as
	// create vs modify. IgnoreGlobs are doublestar patterns excluded
	// from the scan.
	CodebaseRoot string   `yaml:"codebase_root"`
	IgnoreGlobs  []string `yaml:"ignore_globs"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		TasksFile:        "TASKS.md",
		MaxParallelTasks: 4,
		ConflictStrategy: scheduler.StrategyArtificialDependency,
		IgnoreGlobs:      []string{".git/**", "**/node_modules/**", ".taskweave/**"},
	}
}

// Load reads the YAML config at path, merged over defaults. A missing file is
// not an error; malformed YAML is.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.ConflictStrategy {
	case "", scheduler.StrategyArtificialDependency, scheduler.StrategyIntegrationAgent:
	default:
		return fmt.Errorf("unknown conflict_strategy %q (want %q or %q)",
			c.ConflictStrategy, scheduler.StrategyArtificialDependency, scheduler.StrategyIntegrationAgent)
	}
	if c.MaxParallelTasks < 0 {
		return fmt.Errorf("max_parallel_tasks must be >= 0, got %d", c.MaxParallelTasks)
	}
	return nil
}

// SchedulerConfig maps the file settings onto the scheduler's config type.
// Unset booleans default to enabled.
func (c *Config) SchedulerConfig() *scheduler.Config {
	out := scheduler.DefaultConfig()
	out.MaxParallelTasks = c.MaxParallelTasks
	if c.ConflictStrategy != "" {
		out.ConflictStrategy = c.ConflictStrategy
	}
	if c.EnableCriticalPath != nil {
		out.EnableCriticalPath = *c.EnableCriticalPath
	}
	if c.EnableContextScoping != nil {
		out.EnableContextScoping = *c.EnableContextScoping
	}
	return out
}

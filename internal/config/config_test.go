package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/omarkhaled-auto/Super-Duper-Agent-sub000/internal/scheduler"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TasksFile != "TASKS.md" {
		t.Errorf("expected default tasks file, got %q", cfg.TasksFile)
	}
	if cfg.MaxParallelTasks != 4 {
		t.Errorf("expected default max parallel 4, got %d", cfg.MaxParallelTasks)
	}
	if cfg.ConflictStrategy != scheduler.StrategyArtificialDependency {
		t.Errorf("expected default strategy, got %q", cfg.ConflictStrategy)
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskweave.yaml")
	doc := `tasks_file: docs/TASKS.md
max_parallel_tasks: 2
conflict_strategy: integration-agent
enable_critical_path: false
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TasksFile != "docs/TASKS.md" {
		t.Errorf("tasks_file not applied: %q", cfg.TasksFile)
	}

	sc := cfg.SchedulerConfig()
	if sc.MaxParallelTasks != 2 {
		t.Errorf("expected max parallel 2, got %d", sc.MaxParallelTasks)
	}
	if sc.ConflictStrategy != scheduler.StrategyIntegrationAgent {
		t.Errorf("expected integration-agent, got %q", sc.ConflictStrategy)
	}
	if sc.EnableCriticalPath {
		t.Error("expected critical path disabled")
	}
	if !sc.EnableContextScoping {
		t.Error("unset context scoping should default to enabled")
	}
}

func TestLoad_RejectsUnknownStrategy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskweave.yaml")
	if err := os.WriteFile(path, []byte("conflict_strategy: merge-later\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown strategy")
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskweave.yaml")
	if err := os.WriteFile(path, []byte("tasks_file: [unclosed\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

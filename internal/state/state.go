// Package state persists the most recent schedule so status and viz commands
// can render it without recomputing.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/omarkhaled-auto/Super-Duper-Agent-sub000/internal/scheduler"
)

const stateDir = ".taskweave"
const stateFile = "schedule.json"

// Saved is a schedule result plus run metadata, as written to disk.
type Saved struct {
	RunID      string            `json:"run_id"`
	ComputedAt time.Time         `json:"computed_at"`
	TasksFile  string            `json:"tasks_file"`
	Schedule   *scheduler.Result `json:"schedule"`
}

// Save writes the schedule under .taskweave/, creating the directory if
// needed. The result's own ID doubles as the run ID.
func Save(result *scheduler.Result, tasksFile string) (*Saved, error) {
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}

	s := &Saved{
		RunID:      result.ID,
		ComputedAt: time.Now(),
		TasksFile:  tasksFile,
		Schedule:   result,
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schedule: %w", err)
	}
	if err := os.WriteFile(filepath.Join(stateDir, stateFile), data, 0644); err != nil {
		return nil, fmt.Errorf("write schedule: %w", err)
	}
	return s, nil
}

// Load reads the persisted schedule from disk.
func Load() (*Saved, error) {
	data, err := os.ReadFile(filepath.Join(stateDir, stateFile))
	if err != nil {
		return nil, fmt.Errorf("read schedule: %w", err)
	}
	var s Saved
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse schedule: %w", err)
	}
	return &s, nil
}

// Exists checks if a persisted schedule is present.
func Exists() bool {
	_, err := os.Stat(filepath.Join(stateDir, stateFile))
	return err == nil
}

// Clean removes the state directory.
func Clean() error {
	return os.RemoveAll(stateDir)
}

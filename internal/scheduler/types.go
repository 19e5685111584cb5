package scheduler

import (
	"github.com/omarkhaled-auto/Super-Duper-Agent-sub000/internal/task"
)

// Conflict strategies.
const (
	StrategyArtificialDependency = "artificial-dependency"
	StrategyIntegrationAgent     = "integration-agent"
)

// ConflictWriteWrite is the only conflict type detected today: every file
// mention is treated as a mutation because the upstream task source cannot
// distinguish read-only references from edits.
const ConflictWriteWrite = "write-write"

// FileConflict describes a same-wave collision on one file.
type FileConflict struct {
	File       string   `json:"file"`
	TaskIDs    []string `json:"task_ids"` // sorted
	Type       string   `json:"type"`
	Resolution string   `json:"resolution,omitempty"` // strategy applied
}

// Wave is an ordered group of tasks eligible to run in parallel. Conflicts
// holds collisions detected within the wave; after resolution the final
// waves are expected to carry none.
type Wave struct {
	Index     int            `json:"index"`
	TaskIDs   []string       `json:"task_ids"`
	Conflicts []FileConflict `json:"conflicts,omitempty"`
}

// CriticalPathInfo reports the zero-slack chain through the graph.
// Bottlenecks repeats Path for consumers that want the set by that name.
type CriticalPathInfo struct {
	Path        []string `json:"path"`
	Length      int      `json:"length"`
	Bottlenecks []string `json:"bottlenecks"`
}

// Result is the full scheduling output. Tasks is the authoritative
// post-resolution task list: it may carry synthesized integration tasks and
// added dependencies that the caller's input list does not.
type Result struct {
	ID              string         `json:"id"`
	Waves           []Wave         `json:"waves"`
	WaveCount       int            `json:"wave_count"`
	ConflictSummary map[string]int `json:"conflict_summary,omitempty"`

	// ResolvedConflicts records the collisions found before resolution,
	// stamped with the strategy that handled them.
	ResolvedConflicts []FileConflict `json:"resolved_conflicts,omitempty"`

	IntegrationTasks []string         `json:"integration_tasks,omitempty"`
	CriticalPath     CriticalPathInfo `json:"critical_path"`
	Tasks            []*task.Task     `json:"tasks"`
}

// TaskByID returns the task with the given ID from the result's final list,
// or nil.
func (r *Result) TaskByID(id string) *task.Task {
	for _, t := range r.Tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// Config controls a scheduling run. A nil Config behaves like
// DefaultConfig().
type Config struct {
	// MaxParallelTasks caps wave width; 0 means unbounded.
	MaxParallelTasks int
	// ConflictStrategy selects how same-wave file conflicts are resolved.
	ConflictStrategy string
	// EnableCriticalPath toggles the critical path pass.
	EnableCriticalPath bool
	// EnableContextScoping toggles per-task context packages in downstream
	// consumers; the scheduling algorithms ignore it.
	EnableContextScoping bool
}

// DefaultConfig returns the standard configuration: unbounded wave width,
// artificial-dependency resolution, critical path and context scoping on.
func DefaultConfig() *Config {
	return &Config{
		ConflictStrategy:     StrategyArtificialDependency,
		EnableCriticalPath:   true,
		EnableContextScoping: true,
	}
}

func (c *Config) strategy() string {
	if c == nil || c.ConflictStrategy == "" {
		return StrategyArtificialDependency
	}
	return c.ConflictStrategy
}

func (c *Config) maxParallel() int {
	if c == nil {
		return 0
	}
	return c.MaxParallelTasks
}

func (c *Config) criticalPathEnabled() bool {
	return c == nil || c.EnableCriticalPath
}

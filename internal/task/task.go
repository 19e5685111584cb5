package task

import (
	"fmt"
	"sort"
	"strings"
)

// Status is the lifecycle state of a task.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusComplete   Status = "COMPLETE"
	StatusFailed     Status = "FAILED"
)

// IntegrationAgent is the AssignedAgent label given to synthesized
// conflict-merge tasks.
const IntegrationAgent = "integration"

// Task is the atomic schedulable unit. The scheduler assumes IDs are unique;
// callers must guarantee it.
type Task struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Files       []string `json:"files,omitempty"`
	DependsOn   []string `json:"depends_on,omitempty"`
	Status      Status   `json:"status"`

	// AssignedAgent names which kind of worker should execute the task.
	AssignedAgent string `json:"assigned_agent,omitempty"`

	// IntegrationDeclares maps a shared file to the change this task intends
	// for it, to be merged later by an integration step. A non-empty map
	// marks the task as an integration task in summaries.
	IntegrationDeclares map[string]string `json:"integration_declares,omitempty"`

	// MilestoneID is an optional grouping tag used by milestone-scoped
	// scheduling. Cross-milestone dependencies are written "milestone@task".
	MilestoneID string `json:"milestone_id,omitempty"`
}

// IsIntegration reports whether the task is an integration task, either by
// declaration or by assigned agent.
func (t *Task) IsIntegration() bool {
	return len(t.IntegrationDeclares) > 0 || t.AssignedAgent == IntegrationAgent
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	c.Files = append([]string(nil), t.Files...)
	c.DependsOn = append([]string(nil), t.DependsOn...)
	if t.IntegrationDeclares != nil {
		c.IntegrationDeclares = make(map[string]string, len(t.IntegrationDeclares))
		for k, v := range t.IntegrationDeclares {
			c.IntegrationDeclares[k] = v
		}
	}
	return &c
}

// CloneAll deep-copies a task list. The scheduler takes ownership of a working
// copy at the top of each run so the caller's slice is never mutated.
func CloneAll(tasks []*Task) []*Task {
	out := make([]*Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}

// NormalizePath converts a file path to forward-slash form for comparison.
// Paths are compared case-sensitively and never checked against the
// filesystem.
func NormalizePath(path string) string {
	return strings.ReplaceAll(strings.TrimSpace(path), "\\", "/")
}

// NextID returns the next free TASK-NNN identifier given the tasks already in
// play.
func NextID(tasks []*Task) string {
	max := 0
	for _, t := range tasks {
		var n int
		if _, err := fmt.Sscanf(t.ID, "TASK-%d", &n); err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("TASK-%03d", max+1)
}

// SortIDs returns the IDs of the given tasks in lexical order.
func SortIDs(tasks []*Task) []string {
	ids := make([]string, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	sort.Strings(ids)
	return ids
}

// CrossMilestoneRef splits a "milestone@task" dependency reference. ok is
// false for plain same-milestone references.
func CrossMilestoneRef(dep string) (milestone, taskID string, ok bool) {
	i := strings.Index(dep, "@")
	if i <= 0 || i == len(dep)-1 {
		return "", "", false
	}
	return dep[:i], dep[i+1:], true
}

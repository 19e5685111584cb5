// Package scope builds compact per-task context packages for downstream
// prompt construction. It is a read-only view over scheduling results and
// never influences scheduling decisions.
package scope

import (
	"fmt"
	"sort"

	"github.com/omarkhaled-auto/Super-Duper-Agent-sub000/internal/task"
)

// CodebaseMap is the structural source the helpers may consult to tell
// whether a file already exists. Pass nil when no map is available.
type CodebaseMap interface {
	FileExists(path string) bool
	Sections(path string) []string
}

// File actions.
const (
	ActionCreate = "create"
	ActionModify = "modify"
)

// FileContext classifies one file a task touches.
type FileContext struct {
	Path     string   `json:"path"`
	Action   string   `json:"action"`
	Sections []string `json:"sections,omitempty"`
}

// TaskContext is the bundled context package for one task.
type TaskContext struct {
	TaskID           string        `json:"task_id"`
	Title            string        `json:"title"`
	Files            []FileContext `json:"files"`
	Contracts        []string      `json:"contracts,omitempty"`
	IntegrationNotes []string      `json:"integration_notes,omitempty"`
}

// ComputeFileContext classifies each of the task's files as create or
// modify. Without a codebase map everything is assumed to be a modification;
// with one, files the map does not know are creations, and known files pick
// up their section listing.
func ComputeFileContext(t *task.Task, m CodebaseMap) []FileContext {
	out := make([]FileContext, 0, len(t.Files))
	for _, f := range t.Files {
		p := task.NormalizePath(f)
		if p == "" {
			continue
		}
		fc := FileContext{Path: p, Action: ActionModify}
		if m != nil {
			if !m.FileExists(p) {
				fc.Action = ActionCreate
			} else {
				fc.Sections = m.Sections(p)
			}
		}
		out = append(out, fc)
	}
	return out
}

// BuildTaskContext bundles file context, supplied interface contracts, and
// integration notes for one task. The task's own integration declarations
// are folded into the notes.
func BuildTaskContext(t *task.Task, m CodebaseMap, contracts, notes []string) *TaskContext {
	tc := &TaskContext{
		TaskID:           t.ID,
		Title:            t.Title,
		Files:            ComputeFileContext(t, m),
		Contracts:        append([]string(nil), contracts...),
		IntegrationNotes: append([]string(nil), notes...),
	}

	var declared []string
	for file := range t.IntegrationDeclares {
		declared = append(declared, file)
	}
	sort.Strings(declared)
	for _, file := range declared {
		tc.IntegrationNotes = append(tc.IntegrationNotes,
			fmt.Sprintf("%s: %s", task.NormalizePath(file), t.IntegrationDeclares[file]))
	}

	return tc
}

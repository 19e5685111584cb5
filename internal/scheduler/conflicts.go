package scheduler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/omarkhaled-auto/Super-Duper-Agent-sub000/internal/task"
)

// DetectFileConflicts finds tasks within one wave that declare overlapping
// file targets. All file mentions are treated as writes, so any file touched
// by two or more tasks in the wave is a write-write conflict. Results are
// sorted by file path.
func DetectFileConflicts(w Wave, tasks map[string]*task.Task) []FileConflict {
	touchers := make(map[string][]string)
	for _, id := range w.TaskIDs {
		t, ok := tasks[id]
		if !ok {
			continue
		}
		seen := make(map[string]bool)
		for _, f := range t.Files {
			p := task.NormalizePath(f)
			if p == "" || seen[p] {
				continue
			}
			seen[p] = true
			touchers[p] = append(touchers[p], id)
		}
	}

	var files []string
	for f, ids := range touchers {
		if len(ids) >= 2 {
			files = append(files, f)
		}
	}
	sort.Strings(files)

	conflicts := make([]FileConflict, 0, len(files))
	for _, f := range files {
		ids := append([]string(nil), touchers[f]...)
		sort.Strings(ids)
		conflicts = append(conflicts, FileConflict{
			File:    f,
			TaskIDs: ids,
			Type:    ConflictWriteWrite,
		})
	}
	return conflicts
}

// resolveArtificialDependency serializes access to each conflicted file by
// chaining the conflicting tasks in lexical ID order: task i gains a
// dependency on task i-1. DependsOn lists are mutated in place on the
// scheduler's working copy.
func resolveArtificialDependency(conflicts []FileConflict, tasks map[string]*task.Task) {
	for _, c := range conflicts {
		for i := 1; i < len(c.TaskIDs); i++ {
			t := tasks[c.TaskIDs[i]]
			if t == nil {
				continue
			}
			dep := c.TaskIDs[i-1]
			if !contains(t.DependsOn, dep) {
				t.DependsOn = append(t.DependsOn, dep)
			}
		}
	}
}

// resolveIntegrationAgent synthesizes one merge task per conflicted file. The
// new task depends on every task touching the file, owns just that file, and
// is assigned to the integration agent. The conflicting tasks themselves stay
// independent of each other. Returns the task list with the new tasks
// appended.
func resolveIntegrationAgent(conflicts []FileConflict, tasks []*task.Task) []*task.Task {
	// The same file can surface in more than one wave; one merge task per
	// file, depending on the union of touchers.
	byFile := make(map[string]map[string]bool)
	var files []string
	for _, c := range conflicts {
		if byFile[c.File] == nil {
			byFile[c.File] = make(map[string]bool)
			files = append(files, c.File)
		}
		for _, id := range c.TaskIDs {
			byFile[c.File][id] = true
		}
	}
	sort.Strings(files)

	for _, f := range files {
		var deps []string
		for id := range byFile[f] {
			deps = append(deps, id)
		}
		sort.Strings(deps)

		id := task.NextID(tasks)
		tasks = append(tasks, &task.Task{
			ID:    id,
			Title: fmt.Sprintf("Integrate changes to %s", f),
			Description: fmt.Sprintf(
				"Merge the changes that tasks %s made to %s into one coherent version.",
				strings.Join(deps, ", "), f),
			Files:         []string{f},
			DependsOn:     deps,
			Status:        task.StatusPending,
			AssignedAgent: task.IntegrationAgent,
		})
	}
	return tasks
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

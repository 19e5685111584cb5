// Package scheduler turns a flat task list into an executable plan: waves of
// mutually independent tasks, file-conflict resolution, and critical path
// analysis. It never touches the filesystem or the network; callers feed it
// parsed tasks and read the Result.
package scheduler

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/omarkhaled-auto/Super-Duper-Agent-sub000/internal/cpm"
	"github.com/omarkhaled-auto/Super-Duper-Agent-sub000/internal/graph"
	"github.com/omarkhaled-auto/Super-Duper-Agent-sub000/internal/task"
)

// Compute runs the full pipeline: validate, wave, detect conflicts, resolve,
// re-wave, critical path. The input slice is cloned up front and never
// mutated; Result.Tasks is the authoritative post-resolution list. The only
// error returned is a validation failure (dangling dependency reference or
// cycle) whose message joins every hard finding.
func Compute(input []*task.Task, cfg *Config) (*Result, error) {
	return compute(task.CloneAll(input), cfg)
}

// ComputeMilestone schedules only the tasks of one milestone. Cross-milestone
// references ("milestone@task") to a milestone in the completed set are
// considered satisfied and dropped; references to any other milestone are a
// hard error, same class as a dangling in-graph reference.
func ComputeMilestone(input []*task.Task, milestone string, completed map[string]bool, cfg *Config) (*Result, error) {
	var scoped []*task.Task
	for _, t := range input {
		if t.MilestoneID == milestone {
			scoped = append(scoped, t.Clone())
		}
	}

	var unmet []string
	for _, t := range scoped {
		kept := t.DependsOn[:0]
		for _, dep := range t.DependsOn {
			m, id, ok := task.CrossMilestoneRef(dep)
			if !ok {
				kept = append(kept, dep)
				continue
			}
			switch {
			case m == milestone:
				// Self-qualified reference; treat as the plain task ID.
				kept = append(kept, id)
			case completed[m]:
				// Referenced milestone is fully complete: satisfied.
			default:
				unmet = append(unmet, fmt.Sprintf("Task %s depends on incomplete milestone %s (%s)", t.ID, m, dep))
			}
		}
		t.DependsOn = kept
	}
	if len(unmet) > 0 {
		return nil, fmt.Errorf("invalid task graph: %s", strings.Join(unmet, "; "))
	}

	return compute(scoped, cfg)
}

// compute owns its task slice and may mutate and extend it.
func compute(tasks []*task.Task, cfg *Config) (*Result, error) {
	// Tasks built without an explicit status count as unstarted; normalizing
	// here keeps progress tallies and JSON consumers on the four known states.
	for _, t := range tasks {
		if t.Status == "" {
			t.Status = task.StatusPending
		}
	}

	result := &Result{
		ID:              uuid.NewString(),
		ConflictSummary: make(map[string]int),
		Tasks:           tasks,
	}
	if len(tasks) == 0 {
		return result, nil
	}

	g := graph.Build(tasks)
	issues := g.Validate()
	if msg := graph.JoinErrors(issues); msg != "" {
		return nil, fmt.Errorf("invalid task graph: %s", msg)
	}
	for _, issue := range issues {
		log.Printf("%s", issue)
	}

	waves := ComputeWaves(g, cfg.maxParallel())

	byID := g.Tasks
	var detected []FileConflict
	for i := range waves {
		cs := DetectFileConflicts(waves[i], byID)
		waves[i].Conflicts = cs
		detected = append(detected, cs...)
	}

	if len(detected) > 0 {
		strategy := cfg.strategy()
		switch strategy {
		case StrategyIntegrationAgent:
			tasks = resolveIntegrationAgent(detected, tasks)
		default:
			resolveArtificialDependency(detected, byID)
		}

		// Wave membership must reflect the new dependency structure, so the
		// graph and waves are recomputed from scratch. The residual check
		// stays attached to the final waves; with full serialization it is
		// expected to come back empty.
		g = graph.Build(tasks)
		waves = ComputeWaves(g, cfg.maxParallel())
		for i := range waves {
			waves[i].Conflicts = DetectFileConflicts(waves[i], g.Tasks)
		}

		for i := range detected {
			detected[i].Resolution = strategy
			result.ConflictSummary[detected[i].Type]++
		}
		result.ResolvedConflicts = detected
	}

	result.Tasks = tasks
	result.Waves = waves
	result.WaveCount = len(waves)

	if cfg.criticalPathEnabled() {
		analysis, err := cpm.Analyze(g)
		if err != nil {
			return nil, fmt.Errorf("critical path analysis: %w", err)
		}
		result.CriticalPath = CriticalPathInfo{
			Path:        analysis.CriticalPath,
			Length:      len(analysis.CriticalPath),
			Bottlenecks: analysis.CriticalPath,
		}
	}

	var integration []string
	for _, t := range tasks {
		if t.IsIntegration() {
			integration = append(integration, t.ID)
		}
	}
	sort.Strings(integration)
	result.IntegrationTasks = integration

	return result, nil
}

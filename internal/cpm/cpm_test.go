package cpm

import (
	"testing"

	"github.com/omarkhaled-auto/Super-Duper-Agent-sub000/internal/graph"
	"github.com/omarkhaled-auto/Super-Duper-Agent-sub000/internal/task"
)

func buildTestGraph(t *testing.T, tasks []*task.Task) *graph.Graph {
	t.Helper()
	g := graph.Build(tasks)
	if cycle := g.DetectCycle(); cycle != nil {
		t.Fatalf("fixture has a cycle: %v", cycle)
	}
	return g
}

func TestAnalyze_LinearChain(t *testing.T) {
	// TASK-001 -> TASK-002 -> TASK-003
	g := buildTestGraph(t, []*task.Task{
		{ID: "TASK-001"},
		{ID: "TASK-002", DependsOn: []string{"TASK-001"}},
		{ID: "TASK-003", DependsOn: []string{"TASK-002"}},
	})

	result, err := Analyze(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.TotalDuration != 3 {
		t.Errorf("expected total duration 3, got %d", result.TotalDuration)
	}
	if len(result.CriticalPath) != 3 {
		t.Errorf("expected 3 tasks on critical path, got %v", result.CriticalPath)
	}

	assertSchedule(t, result.Tasks["TASK-001"], 0, 1, 0, 1, 0, true)
	assertSchedule(t, result.Tasks["TASK-002"], 1, 2, 1, 2, 0, true)
	assertSchedule(t, result.Tasks["TASK-003"], 2, 3, 2, 3, 0, true)
}

func TestAnalyze_DiamondDAG(t *testing.T) {
	// TASK-001 -> TASK-002 -> TASK-004
	// TASK-001 -> TASK-003 -> TASK-004
	g := buildTestGraph(t, []*task.Task{
		{ID: "TASK-001"},
		{ID: "TASK-002", DependsOn: []string{"TASK-001"}},
		{ID: "TASK-003", DependsOn: []string{"TASK-001"}},
		{ID: "TASK-004", DependsOn: []string{"TASK-002", "TASK-003"}},
	})

	result, err := Analyze(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.TotalDuration != 3 {
		t.Errorf("expected total duration 3, got %d", result.TotalDuration)
	}

	// Both middle branches carry the same length, so every task is critical
	if len(result.CriticalPath) != 4 {
		t.Errorf("expected all 4 tasks critical, got %v", result.CriticalPath)
	}
}

func TestAnalyze_SlackOnShortBranch(t *testing.T) {
	// TASK-001 -> TASK-002 -> TASK-003 -> TASK-005
	// TASK-001 -> TASK-004 ----------------^
	g := buildTestGraph(t, []*task.Task{
		{ID: "TASK-001"},
		{ID: "TASK-002", DependsOn: []string{"TASK-001"}},
		{ID: "TASK-003", DependsOn: []string{"TASK-002"}},
		{ID: "TASK-004", DependsOn: []string{"TASK-001"}},
		{ID: "TASK-005", DependsOn: []string{"TASK-003", "TASK-004"}},
	})

	result, err := Analyze(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.TotalDuration != 4 {
		t.Errorf("expected total duration 4, got %d", result.TotalDuration)
	}

	short := result.Tasks["TASK-004"]
	if short.IsCritical {
		t.Error("expected TASK-004 to have slack")
	}
	if short.Slack != 1 {
		t.Errorf("expected TASK-004 slack=1, got %d", short.Slack)
	}

	want := []string{"TASK-001", "TASK-002", "TASK-003", "TASK-005"}
	if len(result.CriticalPath) != len(want) {
		t.Fatalf("expected critical path %v, got %v", want, result.CriticalPath)
	}
	for i, id := range want {
		if result.CriticalPath[i] != id {
			t.Fatalf("expected critical path %v, got %v", want, result.CriticalPath)
		}
	}
}

func TestAnalyze_ParallelIndependent(t *testing.T) {
	g := buildTestGraph(t, []*task.Task{
		{ID: "TASK-001"},
		{ID: "TASK-002"},
		{ID: "TASK-003"},
	})

	result, err := Analyze(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.TotalDuration != 1 {
		t.Errorf("expected total duration 1, got %d", result.TotalDuration)
	}
	// With no ordering constraints every task is zero-slack
	if len(result.CriticalPath) != 3 {
		t.Errorf("expected 3 critical tasks, got %v", result.CriticalPath)
	}
}

func TestAnalyze_Empty(t *testing.T) {
	result, err := Analyze(graph.Build(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TotalDuration != 0 {
		t.Errorf("expected total duration 0, got %d", result.TotalDuration)
	}
	if len(result.CriticalPath) != 0 {
		t.Errorf("expected empty critical path, got %v", result.CriticalPath)
	}
}

func TestAnalyze_CriticalPathIsChain(t *testing.T) {
	g := buildTestGraph(t, []*task.Task{
		{ID: "TASK-001"},
		{ID: "TASK-002", DependsOn: []string{"TASK-001"}},
		{ID: "TASK-003", DependsOn: []string{"TASK-001"}},
		{ID: "TASK-004", DependsOn: []string{"TASK-002"}},
		{ID: "TASK-005", DependsOn: []string{"TASK-004"}},
	})

	result, err := Analyze(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Path predecessors must appear earlier than their dependents
	pos := make(map[string]int)
	for i, id := range result.CriticalPath {
		pos[id] = i
	}
	for _, id := range result.CriticalPath {
		for _, pred := range g.RevAdj[id] {
			if j, on := pos[pred]; on && j >= pos[id] {
				t.Errorf("critical path out of order: %s before %s", id, pred)
			}
		}
	}

	for _, id := range result.CriticalPath {
		if result.Tasks[id].Slack != 0 {
			t.Errorf("task %s on critical path has slack %d", id, result.Tasks[id].Slack)
		}
	}
}

func assertSchedule(t *testing.T, ts *TaskSchedule, es, ef, ls, lf, slack int, critical bool) {
	t.Helper()
	if ts.ES != es {
		t.Errorf("task %s: expected ES=%d, got %d", ts.TaskID, es, ts.ES)
	}
	if ts.EF != ef {
		t.Errorf("task %s: expected EF=%d, got %d", ts.TaskID, ef, ts.EF)
	}
	if ts.LS != ls {
		t.Errorf("task %s: expected LS=%d, got %d", ts.TaskID, ls, ts.LS)
	}
	if ts.LF != lf {
		t.Errorf("task %s: expected LF=%d, got %d", ts.TaskID, lf, ts.LF)
	}
	if ts.Slack != slack {
		t.Errorf("task %s: expected slack=%d, got %d", ts.TaskID, slack, ts.Slack)
	}
	if ts.IsCritical != critical {
		t.Errorf("task %s: expected critical=%v, got %v", ts.TaskID, critical, ts.IsCritical)
	}
}

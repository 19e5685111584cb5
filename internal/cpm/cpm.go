package cpm

import (
	"github.com/omarkhaled-auto/Super-Duper-Agent-sub000/internal/graph"
)

// Analyze performs critical path analysis on a task graph. Every task is
// assumed to take one unit of time: EF = ES + 1 and LS = LF - 1. Tasks with
// zero slack form the critical path.
func Analyze(g *graph.Graph) (*Result, error) {
	order, err := g.TopoSort()
	if err != nil {
		return nil, err
	}

	result := &Result{
		Tasks:     make(map[string]*TaskSchedule, len(order)),
		TopoOrder: order,
	}
	for _, id := range order {
		result.Tasks[id] = &TaskSchedule{TaskID: id}
	}

	// Forward pass: ES = max(EF of predecessors), 0 at roots
	for _, id := range order {
		ts := result.Tasks[id]
		es := 0
		for _, pred := range g.RevAdj[id] {
			if ef := result.Tasks[pred].EF; ef > es {
				es = ef
			}
		}
		ts.ES = es
		ts.EF = es + 1
	}

	maxFinish := 0
	for _, ts := range result.Tasks {
		if ts.EF > maxFinish {
			maxFinish = ts.EF
		}
	}
	result.TotalDuration = maxFinish

	// Backward pass in reverse topological order: LF = min(LS of successors),
	// maxFinish at leaves
	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]
		ts := result.Tasks[id]

		lf := maxFinish
		for _, succ := range g.Adj[id] {
			if ls := result.Tasks[succ].LS; ls < lf {
				lf = ls
			}
		}
		ts.LF = lf
		ts.LS = lf - 1

		ts.Slack = ts.LS - ts.ES
		ts.IsCritical = ts.Slack == 0
	}

	// Critical path: zero-slack tasks in topological order
	for _, id := range order {
		if result.Tasks[id].IsCritical {
			result.CriticalPath = append(result.CriticalPath, id)
		}
	}

	return result, nil
}

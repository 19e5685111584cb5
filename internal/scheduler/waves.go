package scheduler

import (
	"sort"

	"github.com/omarkhaled-auto/Super-Duper-Agent-sub000/internal/graph"
)

// ComputeWaves groups tasks into levels of mutual independence by repeatedly
// peeling the zero-in-degree frontier. Every task in wave k has all its
// dependencies in waves < k, and no two tasks in one wave depend on each
// other. When maxParallel > 0, a frontier wider than the cap is split into
// consecutive sub-waves of at most that size; the split bounds worker-pool
// width and adds no dependency meaning.
func ComputeWaves(g *graph.Graph, maxParallel int) []Wave {
	inDegree := g.InDegrees()
	remaining := g.TaskCount()

	var waves []Wave
	for remaining > 0 {
		var ready []string
		for id, deg := range inDegree {
			if deg == 0 {
				ready = append(ready, id)
			}
		}
		if len(ready) == 0 {
			// Nothing ready but tasks remain: an undetected cycle. Validate
			// is the authoritative cycle reporter; stop rather than spin.
			break
		}
		sort.Strings(ready)

		for _, id := range ready {
			delete(inDegree, id)
			remaining--
			for _, succ := range g.Adj[id] {
				if _, ok := inDegree[succ]; ok {
					inDegree[succ]--
				}
			}
		}

		for _, batch := range splitBatch(ready, maxParallel) {
			waves = append(waves, Wave{Index: len(waves), TaskIDs: batch})
		}
	}

	return waves
}

// splitBatch chunks a ready frontier into consecutive groups of at most max
// tasks. max <= 0 means no cap.
func splitBatch(ready []string, max int) [][]string {
	if max <= 0 || len(ready) <= max {
		return [][]string{ready}
	}
	var out [][]string
	for len(ready) > 0 {
		n := max
		if n > len(ready) {
			n = len(ready)
		}
		out = append(out, ready[:n])
		ready = ready[n:]
	}
	return out
}

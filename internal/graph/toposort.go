package graph

import (
	"fmt"
	"sort"
)

// TopoSort returns the task IDs in topological order using Kahn's algorithm.
// Ties among simultaneously-ready tasks are broken by sorting IDs ascending,
// so the ordering is reproducible for identical inputs. Returns an error when
// fewer tasks than the graph holds can be ordered, which means a cycle;
// Validate is the authoritative cycle reporter, this is the backstop.
func (g *Graph) TopoSort() ([]string, error) {
	inDegree := g.InDegrees()

	var queue []string
	for id, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, id)
		}
	}
	sort.Strings(queue)

	var order []string
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		order = append(order, node)

		var newReady []string
		for _, succ := range g.Adj[node] {
			inDegree[succ]--
			if inDegree[succ] == 0 {
				newReady = append(newReady, succ)
			}
		}
		sort.Strings(newReady)
		queue = append(queue, newReady...)
	}

	if len(order) != len(g.Tasks) {
		return nil, fmt.Errorf("topological sort failed: graph has a cycle (%d of %d tasks sorted)", len(order), len(g.Tasks))
	}

	return order, nil
}

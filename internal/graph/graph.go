package graph

import (
	"sort"

	"github.com/omarkhaled-auto/Super-Duper-Agent-sub000/internal/task"
)

// Graph is the dependency graph over a task list. An edge A -> B exists iff
// B declares A in DependsOn.
type Graph struct {
	Tasks  map[string]*task.Task
	Adj    map[string][]string // task -> tasks that depend on it
	RevAdj map[string][]string // task -> its declared in-graph dependencies
	Roots  []string            // tasks with no dependencies
	Leaves []string            // tasks nothing depends on
}

// Build constructs a Graph from a task list. Dependency references to IDs
// absent from the list are skipped here; Validate is the authoritative
// reporting path for them. Duplicate declarations produce a single edge.
func Build(tasks []*task.Task) *Graph {
	g := &Graph{
		Tasks:  make(map[string]*task.Task, len(tasks)),
		Adj:    make(map[string][]string),
		RevAdj: make(map[string][]string),
	}

	for _, t := range tasks {
		g.Tasks[t.ID] = t
	}

	edgeSet := make(map[[2]string]bool)
	addEdge := func(from, to string) {
		key := [2]string{from, to}
		if edgeSet[key] {
			return
		}
		edgeSet[key] = true
		g.Adj[from] = append(g.Adj[from], to)
		g.RevAdj[to] = append(g.RevAdj[to], from)
	}

	for _, t := range tasks {
		for _, dep := range t.DependsOn {
			if _, ok := g.Tasks[dep]; ok {
				addEdge(dep, t.ID)
			}
		}
	}

	// Sort adjacency lists for deterministic ordering
	for k := range g.Adj {
		sort.Strings(g.Adj[k])
	}
	for k := range g.RevAdj {
		sort.Strings(g.RevAdj[k])
	}

	for id := range g.Tasks {
		if len(g.RevAdj[id]) == 0 {
			g.Roots = append(g.Roots, id)
		}
		if len(g.Adj[id]) == 0 {
			g.Leaves = append(g.Leaves, id)
		}
	}
	sort.Strings(g.Roots)
	sort.Strings(g.Leaves)

	return g
}

// TaskCount returns the number of tasks in the graph.
func (g *Graph) TaskCount() int {
	return len(g.Tasks)
}

// SortedIDs returns all task IDs in lexical order.
func (g *Graph) SortedIDs() []string {
	ids := make([]string, 0, len(g.Tasks))
	for id := range g.Tasks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// InDegrees returns the number of in-graph dependencies per task.
func (g *Graph) InDegrees() map[string]int {
	in := make(map[string]int, len(g.Tasks))
	for id := range g.Tasks {
		in[id] = len(g.RevAdj[id])
	}
	return in
}

// DetectCycle returns the cycle as an open path in forward order (the edge
// from the last element back to the first closes the loop), or nil if the
// graph is acyclic. Uses DFS with coloring: white (unvisited), gray
// (in progress), black (done). Nodes are visited in sorted order so the same
// graph always reports the same cycle.
func (g *Graph) DetectCycle() []string {
	const (
		white = 0
		gray  = 1
		black = 2
	)

	color := make(map[string]int)
	parent := make(map[string]string)

	var dfs func(node string) []string
	dfs = func(node string) []string {
		color[node] = gray
		for _, next := range g.Adj[node] {
			if color[next] == gray {
				// Back edge to a gray node: walk the parent chain back to it
				// and reverse, giving the open path next -> ... -> node.
				cycle := []string{node}
				for cur := node; cur != next; {
					cur = parent[cur]
					cycle = append(cycle, cur)
				}
				for i, j := 0, len(cycle)-1; i < j; i, j = i+1, j-1 {
					cycle[i], cycle[j] = cycle[j], cycle[i]
				}
				return cycle
			}
			if color[next] == white {
				parent[next] = node
				if cycle := dfs(next); cycle != nil {
					return cycle
				}
			}
		}
		color[node] = black
		return nil
	}

	for _, id := range g.SortedIDs() {
		if color[id] == white {
			if cycle := dfs(id); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}

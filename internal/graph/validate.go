package graph

import (
	"fmt"
	"strings"
)

// Severity classifies a validation issue.
type Severity int

const (
	// SeverityError issues make the graph unschedulable.
	SeverityError Severity = iota
	// SeverityWarning issues are informational; scheduling proceeds.
	SeverityWarning
)

// Issue is a single validation finding.
type Issue struct {
	Severity Severity
	Message  string
}

func (i Issue) String() string {
	if i.Severity == SeverityWarning {
		return "Warning: " + i.Message
	}
	return i.Message
}

// Errors filters issues down to the hard errors.
func Errors(issues []Issue) []Issue {
	var out []Issue
	for _, i := range issues {
		if i.Severity == SeverityError {
			out = append(out, i)
		}
	}
	return out
}

// JoinErrors renders all hard errors as a single message string, or "" when
// there are none.
func JoinErrors(issues []Issue) string {
	var lines []string
	for _, i := range Errors(issues) {
		lines = append(lines, i.Message)
	}
	return strings.Join(lines, "; ")
}

// Validate checks the graph for missing dependency targets, cycles, and
// orphan tasks. Missing targets and cycles are hard errors; orphans are
// warnings. An empty result means the graph is schedulable as-is.
func (g *Graph) Validate() []Issue {
	var issues []Issue

	// Missing dependency targets. Cross-milestone references ("m@id") are
	// resolved or rejected by the milestone scheduling variant before the
	// graph is built, so anything unknown here is a genuine dangling ref.
	for _, id := range g.SortedIDs() {
		t := g.Tasks[id]
		for _, dep := range t.DependsOn {
			if _, ok := g.Tasks[dep]; !ok {
				issues = append(issues, Issue{
					Severity: SeverityError,
					Message:  fmt.Sprintf("Task %s depends on unknown task %s", id, dep),
				})
			}
		}
	}

	if cycle := g.DetectCycle(); cycle != nil {
		// Close the loop for readability: A -> B -> ... -> A
		path := append(append([]string(nil), cycle...), cycle[0])
		issues = append(issues, Issue{
			Severity: SeverityError,
			Message:  "Cycle detected: " + strings.Join(path, " -> "),
		})
	}

	// A task with no edges at all is worth flagging, but only when the graph
	// holds more than one task. A single-task graph trivially has no edges.
	if g.TaskCount() > 1 {
		for _, id := range g.SortedIDs() {
			if len(g.Adj[id]) == 0 && len(g.RevAdj[id]) == 0 {
				issues = append(issues, Issue{
					Severity: SeverityWarning,
					Message:  fmt.Sprintf("Task %s is an orphan: no dependencies and no dependents", id),
				})
			}
		}
	}

	return issues
}

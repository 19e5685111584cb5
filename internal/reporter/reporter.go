// Package reporter renders schedule results for terminals and machines.
package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/omarkhaled-auto/Super-Duper-Agent-sub000/internal/scheduler"
	"github.com/omarkhaled-auto/Super-Duper-Agent-sub000/internal/task"
	"github.com/omarkhaled-auto/Super-Duper-Agent-sub000/internal/ui"
)

// Reporter renders one schedule result.
type Reporter struct {
	Result *scheduler.Result
}

// New creates a Reporter.
func New(result *scheduler.Result) *Reporter {
	return &Reporter{Result: result}
}

// PrintPlan writes the full human-readable plan: header, waves with task
// lines, conflict resolution summary, and the critical path.
func (r *Reporter) PrintPlan(w io.Writer) {
	res := r.Result
	critical := make(map[string]bool, len(res.CriticalPath.Path))
	for _, id := range res.CriticalPath.Path {
		critical[id] = true
	}

	maxWaveWidth := 0
	for _, wave := range res.Waves {
		if len(wave.TaskIDs) > maxWaveWidth {
			maxWaveWidth = len(wave.TaskIDs)
		}
	}

	fmt.Fprintf(w, "🎯 %s\n", ui.BoldCyan("Taskweave Execution Plan"))
	fmt.Fprintln(w, ui.Cyan("════════════════════════════"))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Tasks:     %s (%s integration)\n",
		ui.Bold(len(res.Tasks)), ui.Bold(len(res.IntegrationTasks)))
	fmt.Fprintf(w, "Waves:     %s (%d tasks in widest wave)\n", ui.Bold(res.WaveCount), maxWaveWidth)
	if len(res.CriticalPath.Path) > 0 {
		fmt.Fprintf(w, "⚡ Critical path: %s (%d tasks)\n",
			ui.BoldYellow(strings.Join(res.CriticalPath.Path, " → ")), res.CriticalPath.Length)
	}
	r.printConflictSummary(w)
	fmt.Fprintln(w)

	for _, wave := range res.Waves {
		depStr := ui.Dim("independent")
		if wave.Index > 0 {
			depStr = ui.Dim(fmt.Sprintf("after wave %d", wave.Index))
		}
		fmt.Fprintf(w, "🌊 %s %d (%d tasks, %s):\n", ui.BoldWhite("Wave"), wave.Index+1, len(wave.TaskIDs), depStr)
		for _, id := range wave.TaskIDs {
			r.printTask(w, id, critical[id])
		}
		for _, c := range wave.Conflicts {
			fmt.Fprintf(w, "  %s unresolved conflict on %s (%s)\n",
				ui.Red("!"), ui.Bold(c.File), strings.Join(c.TaskIDs, ", "))
		}
		fmt.Fprintln(w)
	}
}

func (r *Reporter) printConflictSummary(w io.Writer) {
	if len(r.Result.ConflictSummary) == 0 {
		return
	}
	types := make([]string, 0, len(r.Result.ConflictSummary))
	for t := range r.Result.ConflictSummary {
		types = append(types, t)
	}
	sort.Strings(types)

	var parts []string
	for _, t := range types {
		parts = append(parts, fmt.Sprintf("%d %s", r.Result.ConflictSummary[t], t))
	}
	strategy := ""
	if len(r.Result.ResolvedConflicts) > 0 {
		strategy = ui.Dim(" via " + r.Result.ResolvedConflicts[0].Resolution)
	}
	fmt.Fprintf(w, "Conflicts: %s resolved%s\n", ui.Yellow(strings.Join(parts, ", ")), strategy)
}

func (r *Reporter) printTask(w io.Writer, id string, critical bool) {
	t := r.Result.TaskByID(id)
	if t == nil {
		return
	}

	crit := " "
	if critical {
		crit = ui.BoldYellow("⚡")
	}

	title := t.Title
	if len(title) > 40 {
		title = title[:37] + "..."
	}

	files := ""
	if len(t.Files) > 0 {
		files = ui.Dim("(" + strings.Join(t.Files, ", ") + ")")
	}

	fmt.Fprintf(w, "  %s %s %-40s %s %s\n", ui.StatusIcon(t.Status), ui.TaskLabel(t), title, crit, files)
}

// PrintProgress writes a compact per-status tally of the result's tasks.
func (r *Reporter) PrintProgress(w io.Writer) {
	counts := map[task.Status]int{}
	for _, t := range r.Result.Tasks {
		counts[t.Status]++
	}
	fmt.Fprintf(w, "Progress:  %s  %s  %s  %s\n",
		ui.Green(fmt.Sprintf("%d complete", counts[task.StatusComplete])),
		ui.Cyan(fmt.Sprintf("%d in progress", counts[task.StatusInProgress])),
		ui.Dim(fmt.Sprintf("%d pending", counts[task.StatusPending])),
		ui.Red(fmt.Sprintf("%d failed", counts[task.StatusFailed])))
}

// JSON returns the machine-readable schedule.
func (r *Reporter) JSON() ([]byte, error) {
	return json.MarshalIndent(r.Result, "", "  ")
}

// DOT renders the dependency graph in Graphviz format, bolding the critical
// path.
func (r *Reporter) DOT(w io.Writer) {
	res := r.Result
	critical := make(map[string]bool, len(res.CriticalPath.Path))
	for _, id := range res.CriticalPath.Path {
		critical[id] = true
	}

	fmt.Fprintln(w, "digraph taskweave {")
	fmt.Fprintln(w, "  rankdir=LR;")
	fmt.Fprintln(w, "  node [shape=box, style=rounded];")
	fmt.Fprintln(w)

	for _, t := range res.Tasks {
		label := fmt.Sprintf("%s\\n%s", t.ID, t.Title)
		attrs := fmt.Sprintf(`label="%s"`, label)
		if critical[t.ID] {
			attrs += `, style="rounded,bold", color=red`
		}
		fmt.Fprintf(w, "  %q [%s];\n", t.ID, attrs)
	}
	fmt.Fprintln(w)

	for _, t := range res.Tasks {
		for _, dep := range t.DependsOn {
			style := ""
			if critical[dep] && critical[t.ID] {
				style = ` [color=red, penwidth=2]`
			}
			fmt.Fprintf(w, "  %q -> %q%s;\n", dep, t.ID, style)
		}
	}

	fmt.Fprintln(w, "}")
}

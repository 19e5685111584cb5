package scope

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/omarkhaled-auto/Super-Duper-Agent-sub000/internal/scheduler"
)

const contextTemplate = `## Task Context: {{.TaskID}}{{if .Title}}: {{.Title}}{{end}}

### Files
{{- range .Files}}
- {{.Path}} ({{.Action}}){{if .Sections}} sections: {{join .Sections ", "}}{{end}}
{{- else}}
- (none declared)
{{- end}}
{{- if .Contracts}}

### Interface Contracts
{{- range .Contracts}}
- {{.}}
{{- end}}
{{- end}}
{{- if .IntegrationNotes}}

### Integration Notes
{{- range .IntegrationNotes}}
- {{.}}
{{- end}}
{{- end}}
`

var contextTmpl = template.Must(template.New("context").
	Funcs(template.FuncMap{"join": strings.Join}).
	Parse(contextTemplate))

// RenderMarkdown renders a task context as a markdown fragment with Files,
// Interface Contracts, and Integration Notes sections.
func RenderMarkdown(tc *TaskContext) (string, error) {
	var buf bytes.Buffer
	if err := contextTmpl.Execute(&buf, tc); err != nil {
		return "", fmt.Errorf("render task context: %w", err)
	}
	return buf.String(), nil
}

// FormatScheduleForPrompt renders a schedule as capped plain text: the wave
// list, the critical path as an arrow-joined chain, and a one-line conflict
// summary. Output longer than maxChars is cut with a trailing ellipsis.
func FormatScheduleForPrompt(r *scheduler.Result, maxChars int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Execution plan: %d tasks in %d waves\n", len(r.Tasks), r.WaveCount)
	for _, w := range r.Waves {
		fmt.Fprintf(&b, "Wave %d: %s\n", w.Index+1, strings.Join(w.TaskIDs, ", "))
	}

	if len(r.CriticalPath.Path) > 0 {
		fmt.Fprintf(&b, "Critical path: %s\n", strings.Join(r.CriticalPath.Path, " -> "))
	}

	if total := conflictTotal(r.ConflictSummary); total > 0 {
		strategy := ""
		if len(r.ResolvedConflicts) > 0 {
			strategy = " via " + r.ResolvedConflicts[0].Resolution
		}
		fmt.Fprintf(&b, "Conflicts: %d resolved%s\n", total, strategy)
	}

	out := b.String()
	if maxChars > 0 && len(out) > maxChars {
		if maxChars <= 3 {
			return "..."[:maxChars]
		}
		out = out[:maxChars-3] + "..."
	}
	return out
}

func conflictTotal(summary map[string]int) int {
	total := 0
	for _, n := range summary {
		total += n
	}
	return total
}

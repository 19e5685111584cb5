package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/omarkhaled-auto/Super-Duper-Agent-sub000/internal/task"
)

// Sprint color functions for building styled strings.
var (
	Bold        = color.New(color.Bold).SprintFunc()
	Dim         = color.New(color.Faint).SprintFunc()
	Cyan        = color.New(color.FgCyan).SprintFunc()
	Green       = color.New(color.FgGreen).SprintFunc()
	Red         = color.New(color.FgRed).SprintFunc()
	Yellow      = color.New(color.FgYellow).SprintFunc()
	Magenta     = color.New(color.FgMagenta).SprintFunc()
	BoldCyan    = color.New(color.Bold, color.FgCyan).SprintFunc()
	BoldGreen   = color.New(color.Bold, color.FgGreen).SprintFunc()
	BoldRed     = color.New(color.Bold, color.FgRed).SprintFunc()
	BoldYellow  = color.New(color.Bold, color.FgYellow).SprintFunc()
	BoldMagenta = color.New(color.Bold, color.FgMagenta).SprintFunc()
	BoldWhite   = color.New(color.Bold, color.FgWhite).SprintFunc()
)

// PrintLogo renders the colored taskweave logo to stderr.
func PrintLogo() {
	w := os.Stderr
	frame := color.New(color.FgCyan)
	threads := color.New(color.FgCyan, color.Faint)
	brand := color.New(color.Bold, color.FgMagenta)
	tag := color.New(color.Faint)

	fmt.Fprintln(w)
	frame.Fprintln(w, "   +---------------------------+")
	threads.Fprintln(w, "   |  ~  ~  ~  ~  ~  ~  ~  ~   |")
	brand.Fprintln(w, "   |  T A S K W E A V E        |")
	threads.Fprintln(w, "   |  ~  ~  ~  ~  ~  ~  ~  ~   |")
	frame.Fprintln(w, "   +---------------------------+")
	tag.Fprintln(w, "   Dependency-aware wave scheduling")
	fmt.Fprintln(w)
}

// StatusIcon returns a colored icon for a task status.
func StatusIcon(s task.Status) string {
	switch s {
	case task.StatusComplete:
		return Green("✓")
	case task.StatusInProgress:
		return Cyan("●")
	case task.StatusFailed:
		return Red("✗")
	default:
		return Dim("◌")
	}
}

// TaskLabel returns a colored [task-id] label, highlighting integration
// tasks.
func TaskLabel(t *task.Task) string {
	if t.IsIntegration() {
		return Dim("[") + BoldYellow(t.ID) + Dim("]")
	}
	return Dim("[") + BoldMagenta(t.ID) + Dim("]")
}

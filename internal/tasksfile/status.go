package tasksfile

import (
	"regexp"
	"strings"
)

var statusLineRe = regexp.MustCompile(`^(\s*-\s*Status\s*:\s*)PENDING(\s*)$`)

// UpdateStatuses flips "- Status: PENDING" lines to "- Status: COMPLETE"
// inside the named header-block tasks, leaving every other byte of the
// document untouched. A nil completed list flips every block.
func UpdateStatuses(content string, completed []string) string {
	var want map[string]bool
	if completed != nil {
		want = make(map[string]bool, len(completed))
		for _, id := range completed {
			want[id] = true
		}
	}

	lines := strings.Split(content, "\n")
	current := ""
	for i, line := range lines {
		trimmed := strings.TrimRight(line, "\r")
		if m := headerRe.FindStringSubmatch(trimmed); m != nil {
			current = m[1]
			continue
		}
		if current == "" || (want != nil && !want[current]) {
			continue
		}
		if m := statusLineRe.FindStringSubmatch(trimmed); m != nil {
			suffix := ""
			if strings.HasSuffix(line, "\r") {
				suffix = "\r"
			}
			lines[i] = m[1] + "COMPLETE" + m[2] + suffix
		}
	}
	return strings.Join(lines, "\n")
}

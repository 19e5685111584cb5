// Package tasksfile parses TASKS.md-style documents and JSON task exports
// into task records, and rewrites status lines in place. It works on strings
// only; reading and writing files is the caller's job.
package tasksfile

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/omarkhaled-auto/Super-Duper-Agent-sub000/internal/task"
)

// sourceFormat is one recognized task-file layout. Formats are tried in
// priority order; the first one that yields tasks wins.
type sourceFormat interface {
	name() string
	parse(content string) ([]*task.Task, bool)
}

var formats = []sourceFormat{
	jsonFormat{},
	headerBlockFormat{},
	pipeTableFormat{},
	bulletListFormat{},
}

// Parse converts a task document into task records. It returns an error when
// no known format matches or the document yields no tasks.
func Parse(content string) ([]*task.Task, error) {
	for _, f := range formats {
		if tasks, ok := f.parse(content); ok {
			return tasks, nil
		}
	}
	return nil, fmt.Errorf("no tasks found: content matches no known format (header blocks, pipe table, bullets, JSON)")
}

// --- JSON export (gjson) ---

type jsonFormat struct{}

func (jsonFormat) name() string { return "json" }

func (jsonFormat) parse(content string) ([]*task.Task, bool) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" || (trimmed[0] != '[' && trimmed[0] != '{') || !gjson.Valid(trimmed) {
		return nil, false
	}

	list := gjson.Parse(trimmed)
	if list.IsObject() {
		list = list.Get("tasks")
	}
	if !list.IsArray() {
		return nil, false
	}

	var tasks []*task.Task
	list.ForEach(func(_, item gjson.Result) bool {
		id := item.Get("id").String()
		if id == "" {
			return true
		}
		t := &task.Task{
			ID:            id,
			Title:         item.Get("title").String(),
			Description:   item.Get("description").String(),
			Status:        parseStatus(item.Get("status").String()),
			AssignedAgent: item.Get("assigned_agent").String(),
			MilestoneID:   item.Get("milestone_id").String(),
		}
		for _, f := range item.Get("files").Array() {
			t.Files = append(t.Files, task.NormalizePath(f.String()))
		}
		for _, d := range item.Get("depends_on").Array() {
			t.DependsOn = append(t.DependsOn, d.String())
		}
		declares := item.Get("integration_declares")
		if declares.IsObject() {
			t.IntegrationDeclares = make(map[string]string)
			declares.ForEach(func(k, v gjson.Result) bool {
				t.IntegrationDeclares[k.String()] = v.String()
				return true
			})
		}
		tasks = append(tasks, t)
		return true
	})

	return tasks, len(tasks) > 0
}

// --- "### TASK-NNN" header blocks ---

var (
	headerRe    = regexp.MustCompile(`^###\s+(TASK-\d+)\s*:?\s*(.*)$`)
	fieldRe     = regexp.MustCompile(`^-\s*([A-Za-z -]+?)\s*:\s*(.*)$`)
	taskRefRe   = regexp.MustCompile(`[A-Za-z0-9_-]+@TASK-\d+|TASK-\d+`)
	bulletRowRe = regexp.MustCompile(`^[-*]\s+(TASK-\d+)\s*:?\s*(.*)$`)
)

type headerBlockFormat struct{}

func (headerBlockFormat) name() string { return "header-block" }

func (headerBlockFormat) parse(content string) ([]*task.Task, bool) {
	var tasks []*task.Task
	var cur *task.Task

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, "\r")

		if m := headerRe.FindStringSubmatch(line); m != nil {
			cur = &task.Task{ID: m[1], Title: strings.TrimSpace(m[2]), Status: task.StatusPending}
			tasks = append(tasks, cur)
			continue
		}
		if cur == nil {
			continue
		}

		m := fieldRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		value := strings.TrimSpace(m[2])
		switch strings.ToLower(strings.ReplaceAll(m[1], " ", "-")) {
		case "description":
			cur.Description = value
		case "files":
			for _, f := range splitList(value) {
				cur.Files = append(cur.Files, task.NormalizePath(f))
			}
		case "depends-on", "dependencies", "depends":
			cur.DependsOn = append(cur.DependsOn, taskRefRe.FindAllString(value, -1)...)
		case "status":
			cur.Status = parseStatus(value)
		case "agent", "assigned-agent":
			cur.AssignedAgent = value
		case "milestone":
			cur.MilestoneID = value
		}
	}

	return tasks, len(tasks) > 0
}

// --- pipe table ---

type pipeTableFormat struct{}

func (pipeTableFormat) name() string { return "pipe-table" }

func (pipeTableFormat) parse(content string) ([]*task.Task, bool) {
	var header []string
	var tasks []*task.Task

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "|") {
			continue
		}
		cells := splitRow(line)
		if len(cells) == 0 {
			continue
		}

		if header == nil {
			for _, c := range cells {
				header = append(header, strings.ToLower(strings.ReplaceAll(c, " ", "-")))
			}
			continue
		}
		if strings.HasPrefix(strings.ReplaceAll(cells[0], "-", ""), ":") || strings.Trim(cells[0], ":- ") == "" {
			continue // separator row
		}

		t := &task.Task{Status: task.StatusPending}
		for i, c := range cells {
			if i >= len(header) {
				break
			}
			switch header[i] {
			case "id", "task":
				t.ID = c
			case "title":
				t.Title = c
			case "description":
				t.Description = c
			case "files":
				for _, f := range splitList(c) {
					t.Files = append(t.Files, task.NormalizePath(f))
				}
			case "depends-on", "dependencies", "depends":
				t.DependsOn = append(t.DependsOn, taskRefRe.FindAllString(c, -1)...)
			case "status":
				t.Status = parseStatus(c)
			case "agent", "assigned-agent":
				t.AssignedAgent = c
			case "milestone":
				t.MilestoneID = c
			}
		}
		if t.ID != "" {
			tasks = append(tasks, t)
		}
	}

	return tasks, len(tasks) > 0
}

// --- bullet list ---

type bulletListFormat struct{}

func (bulletListFormat) name() string { return "bullet-list" }

func (bulletListFormat) parse(content string) ([]*task.Task, bool) {
	var tasks []*task.Task

	for _, line := range strings.Split(content, "\n") {
		m := bulletRowRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		t := &task.Task{ID: m[1], Status: task.StatusPending}
		rest := m[2]

		if i := strings.Index(rest, "(depends:"); i >= 0 {
			if j := strings.Index(rest[i:], ")"); j >= 0 {
				t.DependsOn = taskRefRe.FindAllString(rest[i:i+j], -1)
				rest = rest[:i] + rest[i+j+1:]
			}
		}
		if i := strings.Index(rest, "[files:"); i >= 0 {
			if j := strings.Index(rest[i:], "]"); j >= 0 {
				for _, f := range splitList(rest[i+len("[files:") : i+j]) {
					t.Files = append(t.Files, task.NormalizePath(f))
				}
				rest = rest[:i] + rest[i+j+1:]
			}
		}
		t.Title = strings.TrimSpace(rest)
		tasks = append(tasks, t)
	}

	return tasks, len(tasks) > 0
}

// --- shared helpers ---

func splitRow(line string) []string {
	line = strings.Trim(line, "|")
	parts := strings.Split(line, "|")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

func splitList(value string) []string {
	var out []string
	for _, p := range strings.FieldsFunc(value, func(r rune) bool { return r == ',' || r == ';' }) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseStatus(s string) task.Status {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(task.StatusInProgress):
		return task.StatusInProgress
	case string(task.StatusComplete):
		return task.StatusComplete
	case string(task.StatusFailed):
		return task.StatusFailed
	default:
		return task.StatusPending
	}
}

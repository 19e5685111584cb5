package scope

import (
	"strings"
	"testing"

	"github.com/omarkhaled-auto/Super-Duper-Agent-sub000/internal/task"
)

type fakeMap struct {
	files    map[string]bool
	sections map[string][]string
}

func (f *fakeMap) FileExists(path string) bool  { return f.files[path] }
func (f *fakeMap) Sections(path string) []string { return f.sections[path] }

func TestComputeFileContext_NoMapDefaultsToModify(t *testing.T) {
	tk := &task.Task{ID: "TASK-001", Files: []string{"src/app.py", `lib\util.py`}}

	ctx := ComputeFileContext(tk, nil)

	if len(ctx) != 2 {
		t.Fatalf("expected 2 entries, got %v", ctx)
	}
	for _, fc := range ctx {
		if fc.Action != ActionModify {
			t.Errorf("expected modify for %s, got %s", fc.Path, fc.Action)
		}
	}
	if ctx[1].Path != "lib/util.py" {
		t.Errorf("expected normalized path, got %s", ctx[1].Path)
	}
}

func TestComputeFileContext_MapDistinguishesCreate(t *testing.T) {
	tk := &task.Task{ID: "TASK-001", Files: []string{"existing.go", "new.go"}}
	m := &fakeMap{
		files:    map[string]bool{"existing.go": true},
		sections: map[string][]string{"existing.go": {"func Run"}},
	}

	ctx := ComputeFileContext(tk, m)

	if ctx[0].Action != ActionModify {
		t.Errorf("expected existing.go to be modify, got %s", ctx[0].Action)
	}
	if len(ctx[0].Sections) != 1 || ctx[0].Sections[0] != "func Run" {
		t.Errorf("expected sections from map, got %v", ctx[0].Sections)
	}
	if ctx[1].Action != ActionCreate {
		t.Errorf("expected new.go to be create, got %s", ctx[1].Action)
	}
}

func TestBuildTaskContext_FoldsDeclarations(t *testing.T) {
	tk := &task.Task{
		ID:    "TASK-001",
		Title: "Add handler",
		Files: []string{"api.go"},
		IntegrationDeclares: map[string]string{
			"shared.go": "register new route",
		},
	}

	tc := BuildTaskContext(tk, nil, []string{"Handler interface stays stable"}, []string{"merge after TASK-002"})

	if tc.TaskID != "TASK-001" {
		t.Errorf("unexpected task id %s", tc.TaskID)
	}
	if len(tc.Contracts) != 1 {
		t.Errorf("expected 1 contract, got %v", tc.Contracts)
	}
	if len(tc.IntegrationNotes) != 2 {
		t.Fatalf("expected supplied note plus declaration, got %v", tc.IntegrationNotes)
	}
	if tc.IntegrationNotes[1] != "shared.go: register new route" {
		t.Errorf("unexpected folded declaration: %q", tc.IntegrationNotes[1])
	}
}

func TestRenderMarkdown(t *testing.T) {
	tc := &TaskContext{
		TaskID: "TASK-001",
		Title:  "Add handler",
		Files: []FileContext{
			{Path: "api.go", Action: ActionModify, Sections: []string{"func Serve"}},
			{Path: "api_test.go", Action: ActionCreate},
		},
		Contracts:        []string{"Handler interface stays stable"},
		IntegrationNotes: []string{"merge after TASK-002"},
	}

	md, err := RenderMarkdown(tc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"## Task Context: TASK-001",
		"### Files",
		"- api.go (modify) sections: func Serve",
		"- api_test.go (create)",
		"### Interface Contracts",
		"### Integration Notes",
		"- merge after TASK-002",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("missing %q in rendered markdown:\n%s", want, md)
		}
	}
}

func TestRenderMarkdown_NoFiles(t *testing.T) {
	md, err := RenderMarkdown(&TaskContext{TaskID: "TASK-001"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(md, "(none declared)") {
		t.Errorf("expected placeholder for empty file list:\n%s", md)
	}
}

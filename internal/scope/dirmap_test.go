package scope

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

func TestScanDir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/app.go", "package app\n\nfunc Run() {}\n\ntype Server struct {}\n")
	writeFile(t, root, "docs/guide.md", "# Guide\n\n## Setup\n")
	writeFile(t, root, "node_modules/pkg/index.js", "x")

	m, err := ScanDir(root, []string{"node_modules/**"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !m.FileExists("src/app.go") {
		t.Error("expected src/app.go to exist")
	}
	if !m.FileExists(`src\app.go`) {
		t.Error("backslash path should normalize to the same file")
	}
	if m.FileExists("node_modules/pkg/index.js") {
		t.Error("ignored path should not be recorded")
	}
	if m.FileExists("missing.go") {
		t.Error("unknown path reported as existing")
	}
}

func TestDirMap_Sections(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/app.go", "package app\n\nfunc Run(ctx int) {}\n\ntype Server struct {\n}\n")
	writeFile(t, root, "docs/guide.md", "# Guide\n\ntext\n\n## Setup\n")

	m, err := ScanDir(root, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	goSections := m.Sections("src/app.go")
	if len(goSections) != 2 {
		t.Fatalf("expected 2 Go sections, got %v", goSections)
	}
	if goSections[0] != "func Run" {
		t.Errorf("expected 'func Run', got %q", goSections[0])
	}

	mdSections := m.Sections("docs/guide.md")
	if len(mdSections) != 2 || mdSections[0] != "Guide" || mdSections[1] != "Setup" {
		t.Errorf("expected markdown headings, got %v", mdSections)
	}

	if s := m.Sections("missing.md"); s != nil {
		t.Errorf("unknown file should have no sections, got %v", s)
	}
}

func TestDirMap_SectionsReadErrorNotCached(t *testing.T) {
	root := t.TempDir()
	// A line beyond bufio's default token limit aborts the scan mid-file.
	long := strings.Repeat("x", 128*1024)
	writeFile(t, root, "docs/huge.md", "# Intro\n"+long+"\n## After\n")

	m, err := ScanDir(root, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := m.Sections("docs/huge.md")
	if len(got) != 1 || got[0] != "Intro" {
		t.Fatalf("expected the partial outline [Intro], got %v", got)
	}
	if _, cached := m.sections["docs/huge.md"]; cached {
		t.Error("truncated outline must not be cached")
	}
}

package scope

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/omarkhaled-auto/Super-Duper-Agent-sub000/internal/task"
)

// DirMap is a CodebaseMap backed by a one-time directory scan. Paths are
// stored slash-normalized and relative to the scanned root. Section listings
// are extracted lazily from markdown headings and Go-style top-level
// declarations; anything else yields none.
type DirMap struct {
	root     string
	files    map[string]bool
	sections map[string][]string
}

// ScanDir walks root and records every regular file not matched by one of
// the doublestar ignore globs (e.g. "**/node_modules/**", ".git/**").
func ScanDir(root string, ignore []string) (*DirMap, error) {
	m := &DirMap{
		root:     root,
		files:    make(map[string]bool),
		sections: make(map[string][]string),
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = task.NormalizePath(rel)
		if rel == "." {
			return nil
		}

		for _, pattern := range ignore {
			ok, err := doublestar.Match(pattern, rel)
			if err != nil {
				return fmt.Errorf("ignore pattern %q: %w", pattern, err)
			}
			if ok {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		if !d.IsDir() {
			m.files[rel] = true
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	return m, nil
}

// FileExists reports whether the scan saw the given (normalized, relative)
// path.
func (m *DirMap) FileExists(path string) bool {
	return m.files[task.NormalizePath(path)]
}

// Sections returns a coarse outline of a known file: markdown headings or
// top-level func/type declarations. Results are cached per path.
func (m *DirMap) Sections(path string) []string {
	p := task.NormalizePath(path)
	if !m.files[p] {
		return nil
	}
	if cached, ok := m.sections[p]; ok {
		return cached
	}

	f, err := os.Open(filepath.Join(m.root, filepath.FromSlash(p)))
	if err != nil {
		return nil
	}
	defer f.Close()

	var out []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "#"):
			out = append(out, strings.TrimSpace(strings.TrimLeft(line, "#")))
		case strings.HasPrefix(line, "func ") || strings.HasPrefix(line, "type "):
			if i := strings.IndexAny(line, "({"); i > 5 {
				out = append(out, strings.TrimSpace(line[:i]))
			}
		}
	}
	if scanner.Err() != nil {
		// Truncated outline; leave it uncached so a later call can retry.
		return out
	}

	m.sections[p] = out
	return out
}

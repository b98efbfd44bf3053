package compiler

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SourceExt is the extension of source files
const SourceExt = ".kt"

// Workspace is the set of source files named on the command line. Files
// are discovered breadth-first from the given paths: a file is taken as is,
// a directory contributes every .kt file below it except Emit output.
type Workspace struct {
	files []string        // absolute paths, sorted
	roots map[string]bool // absolute directories to watch
	seen  map[string]bool // absolute file paths already discovered
}

// NewWorkspace discovers the source files reachable from paths. It fails
// on missing paths and on files without the .kt extension.
func NewWorkspace(paths ...string) (*Workspace, error) {
	w := &Workspace{
		roots: make(map[string]bool),
		seen:  make(map[string]bool),
	}
	queue := make([]string, 0, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve path %s: %w", p, err)
		}
		queue = append(queue, abs)
	}

	for len(queue) > 0 {
		path := queue[0]
		queue = queue[1:]

		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("source not found: %w", err)
		}

		if !info.IsDir() {
			if !strings.HasSuffix(path, SourceExt) {
				return nil, fmt.Errorf("source file must have %s extension: %s", SourceExt, path)
			}
			w.add(path)
			w.roots[filepath.Dir(path)] = true
			continue
		}

		w.roots[path] = true
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory %s: %w", path, err)
		}
		for _, e := range entries {
			child := filepath.Join(path, e.Name())
			if e.IsDir() || isSource(e.Name()) {
				queue = append(queue, child)
			}
		}
	}

	sort.Strings(w.files)
	return w, nil
}

func (w *Workspace) add(path string) {
	if w.seen[path] {
		return
	}
	w.seen[path] = true
	w.files = append(w.files, path)
}

// Files returns the discovered source files in lexical order.
func (w *Workspace) Files() []string {
	return w.files
}

// Dirs returns the directories whose changes affect the workspace, in
// lexical order.
func (w *Workspace) Dirs() []string {
	dirs := make([]string, 0, len(w.roots))
	for d := range w.roots {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)
	return dirs
}

// Contains reports whether path is one of the workspace files, or a new
// .kt file inside a workspace directory.
func (w *Workspace) Contains(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	if w.seen[abs] {
		return true
	}
	return isSource(abs) && w.roots[filepath.Dir(abs)]
}

// isSource reports whether name is a source file that Emit did not write
func isSource(name string) bool {
	return strings.HasSuffix(name, SourceExt) && !strings.HasSuffix(name, LoweredExt)
}

// Display returns path relative to the working directory when possible.
func Display(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	if rel, err := filepath.Rel(wd, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}

package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// TargetFile is the exact file name collected by Discover.
const TargetFile = "Localization.txt"

// Discover walks root and returns every file named exactly TargetFile, in
// walk order (lexical within each directory). Symlinked directories are
// descended into and reported under the link's path; a link back into one of
// its own ancestors, or to a tree already walked, is skipped. Any unreadable
// directory, root included, aborts the walk.
func Discover(root string) ([]string, error) {
	w := &walker{walked: make(map[string]bool)}
	if err := w.walk(root); err != nil {
		return nil, fmt.Errorf("discover %s: %w", root, err)
	}
	return w.files, nil
}

type walker struct {
	files  []string
	walked map[string]bool // Resolved roots already walked.
}

// walk scans dir, which may itself be a symlink. Paths are reported under dir
// even though the walk runs over the resolved directory.
func (w *walker) walk(dir string) error {
	real, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return err
	}
	if w.walked[real] {
		return nil
	}
	w.walked[real] = true

	return filepath.WalkDir(real, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(real, path)
		if err != nil {
			return err
		}
		shown := filepath.Join(dir, rel)

		if d.Type()&fs.ModeSymlink != 0 {
			return w.link(shown, path, d.Name())
		}
		if !d.IsDir() && d.Name() == TargetFile {
			w.files = append(w.files, shown)
		}
		return nil
	})
}

// link handles a symlink found at path (reported as shown). Dangling links
// are skipped.
func (w *walker) link(shown, path, name string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		if name == TargetFile {
			w.files = append(w.files, shown)
		}
		return nil
	}

	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return err
	}
	parent, err := filepath.EvalSymlinks(filepath.Dir(path))
	if err != nil {
		return err
	}
	if within(parent, target) {
		return nil
	}
	return w.walk(shown)
}

// within reports whether path is dir or lies below it.
func within(path, dir string) bool {
	if path == dir {
		return true
	}
	return strings.HasPrefix(path, strings.TrimSuffix(dir, string(filepath.Separator))+string(filepath.Separator))
}

package driver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"flint/internal/processor"
)

// Discovery selects which files a run checks.
type Discovery struct {
	Filename []string // шаблоны имён файлов внутри каталогов
	Exclude  []string // шаблоны по базовому имени или полному пути
}

// Discover expands paths into the list of files to check, in argument
// order; directory contents are walked in lexical order. A path named
// explicitly is kept even when it does not match Filename, and a missing
// path is kept so that reading it reports E902.
func (d Discovery) Discover(paths []string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}
	var out []string
	seen := make(map[string]struct{})
	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		out = append(out, path)
	}
	for _, arg := range paths {
		if processor.IsStdinName(arg) {
			add(arg)
			continue
		}
		if d.Excluded(arg) {
			continue
		}
		info, err := os.Stat(arg)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				add(arg)
				continue
			}
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			add(arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path != arg && d.Excluded(path) {
				if entry.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if !entry.IsDir() && d.matchesFilename(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", arg, err)
		}
	}
	return out, nil
}

// Excluded reports whether path matches an exclude pattern by base name
// or by absolute path.
func (d Discovery) Excluded(path string) bool {
	if len(d.Exclude) == 0 {
		return false
	}
	base := filepath.Base(path)
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	for _, pattern := range d.Exclude {
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, abs); ok {
			return true
		}
	}
	return false
}

func (d Discovery) matchesFilename(path string) bool {
	if len(d.Filename) == 0 {
		return true
	}
	base := filepath.Base(path)
	for _, pattern := range d.Filename {
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
	}
	return false
}

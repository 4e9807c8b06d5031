package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Config file names, in lookup order within one directory.
const (
	FlintToml     = "flint.toml"
	PyprojectToml = "pyproject.toml"
)

// FindConfig walks up from startDir to the first directory holding either
// flint.toml or a pyproject.toml with a [tool.flint] table.
func FindConfig(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FlintToml)
		found, err := exists(candidate)
		if err != nil {
			return "", false, err
		}
		if found {
			return candidate, true, nil
		}

		candidate = filepath.Join(dir, PyprojectToml)
		found, err = exists(candidate)
		if err != nil {
			return "", false, err
		}
		if found {
			has, err := hasToolSection(candidate)
			if err != nil {
				return "", false, err
			}
			if has {
				return candidate, true, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// FindProjectRoot returns the directory containing the config file, if any.
func FindProjectRoot(startDir string) (root string, ok bool, err error) {
	configPath, ok, err := FindConfig(startDir)
	if err != nil || !ok {
		return "", ok, err
	}
	return filepath.Dir(configPath), true, nil
}

func exists(path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %q: %w", path, err)
	}
	return true, nil
}

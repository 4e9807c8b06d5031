package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrInvalidConfig is wrapped by every validation failure from Load.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the settings read from flint.toml or [tool.flint].
type Config struct {
	MaxLineLength int      `toml:"max-line-length"`
	MaxDocLength  int      `toml:"max-doc-length"` // 0 - выключено
	HangClosing   bool     `toml:"hang-closing"`
	IndentSize    int      `toml:"indent-size"`
	ShowSource    bool     `toml:"show-source"`
	Format        string   `toml:"format"`
	OutputFile    string   `toml:"output-file"`
	Jobs          int      `toml:"jobs"` // 0 - GOMAXPROCS
	Exclude       []string `toml:"exclude"`
	Filename      []string `toml:"filename"`
	Cache         bool     `toml:"cache"`
}

// Defaults returns the configuration used when no file sets a value.
func Defaults() Config {
	return Config{
		MaxLineLength: 79,
		IndentSize:    4,
		Format:        "default",
		Exclude:       []string{".svn", "CVS", ".bzr", ".hg", ".git", "__pycache__", ".tox", ".nox", ".eggs", "*.egg"},
		Filename:      []string{"*.py"},
	}
}

// Manifest is a loaded config file.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

type pyproject struct {
	Tool struct {
		Flint Config `toml:"flint"`
	} `toml:"tool"`
}

// Load reads path on top of Defaults. pyproject.toml is read from its
// [tool.flint] table; any other file from its top level.
func Load(path string) (*Manifest, error) {
	cfg := Defaults()
	var (
		meta toml.MetaData
		err  error
	)
	if filepath.Base(path) == PyprojectToml {
		doc := pyproject{}
		doc.Tool.Flint = cfg
		meta, err = toml.DecodeFile(path, &doc)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
		}
		if !meta.IsDefined("tool", "flint") {
			return nil, fmt.Errorf("%w: %s: missing [tool.flint]", ErrInvalidConfig, path)
		}
		cfg = doc.Tool.Flint
	} else {
		meta, err = toml.DecodeFile(path, &cfg)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
		}
	}
	if err := checkUndecoded(path, meta); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, nil
}

// LoadNearest finds the config above startDir and loads it.
// ok is false when there is none; the defaults apply then.
func LoadNearest(startDir string) (m *Manifest, ok bool, err error) {
	path, ok, err := FindConfig(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err = Load(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// checkUndecoded rejects unknown keys; in pyproject.toml only [tool.flint] is ours.
func checkUndecoded(path string, meta toml.MetaData) error {
	var unknown []string
	for _, key := range meta.Undecoded() {
		if filepath.Base(path) == PyprojectToml && (len(key) < 2 || key[0] != "tool" || key[1] != "flint") {
			continue
		}
		unknown = append(unknown, key.String())
	}
	if len(unknown) == 0 {
		return nil
	}
	slices.Sort(unknown)
	return fmt.Errorf("%w: %s: unknown keys: %s", ErrInvalidConfig, path, strings.Join(unknown, ", "))
}

// Validate checks value ranges.
func (c Config) Validate() error {
	switch {
	case c.MaxLineLength <= 0:
		return fmt.Errorf("%w: max-line-length must be positive, got %d", ErrInvalidConfig, c.MaxLineLength)
	case c.MaxDocLength < 0:
		return fmt.Errorf("%w: max-doc-length must not be negative, got %d", ErrInvalidConfig, c.MaxDocLength)
	case c.IndentSize <= 0:
		return fmt.Errorf("%w: indent-size must be positive, got %d", ErrInvalidConfig, c.IndentSize)
	case c.Jobs < 0:
		return fmt.Errorf("%w: jobs must not be negative, got %d", ErrInvalidConfig, c.Jobs)
	}
	for _, pattern := range slices.Concat(c.Exclude, c.Filename) {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("%w: bad pattern %q: %w", ErrInvalidConfig, pattern, err)
		}
	}
	return nil
}

func hasToolSection(path string) (bool, error) {
	var doc map[string]any
	meta, err := toml.DecodeFile(path, &doc)
	if err != nil {
		return false, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return meta.IsDefined("tool", "flint"), nil
}

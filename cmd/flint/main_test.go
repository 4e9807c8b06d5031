package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"flint/internal/checker"
	"flint/internal/diag"
	"flint/internal/driver"
	"flint/internal/project"
)

// newTestRoot builds a fresh command tree so tests do not share flag state.
func newTestRoot() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	root := &cobra.Command{Use: "flint", SilenceErrors: true, SilenceUsage: true}
	addRootFlags(root)

	check := &cobra.Command{Use: "check", RunE: runCheck}
	addCheckFlags(check)
	tokenize := &cobra.Command{Use: "tokenize", Args: cobra.ExactArgs(1), RunE: runTokenize}
	tokenize.Flags().String("format", "pretty", "")
	logical := &cobra.Command{Use: "logical", Args: cobra.ExactArgs(1), RunE: runLogical}
	logical.Flags().String("format", "pretty", "")
	logical.Flags().Bool("mapping", false, "")
	root.AddCommand(check, tokenize, logical)

	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	return root, &stdout, &stderr
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestCheckReportsSyntaxError(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "flint.toml")
	writeFile(t, cfg, "format = \"pylint\"\n")
	writeFile(t, filepath.Join(dir, "bad.py"), "x = (1 +)\n")
	writeFile(t, filepath.Join(dir, "good.py"), "x = 1\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "x = (\n")

	root, stdout, stderr := newTestRoot()
	root.SetArgs([]string{"check", "--config", cfg, "--color", "off", "--ui", "off", "--format", "default", dir})
	err := root.Execute()
	if !errors.Is(err, errFindings) {
		t.Fatalf("expected errFindings, got %v", err)
	}

	want := filepath.ToSlash(filepath.Join(dir, "bad.py")) + ":1:9: E999 SyntaxError: invalid syntax\n"
	if stdout.String() != want {
		t.Fatalf("stdout = %q, want %q", stdout.String(), want)
	}
	if !strings.Contains(stderr.String(), "2 files, 0 skipped") {
		t.Fatalf("summary missing from stderr: %q", stderr.String())
	}
}

func TestCheckExitZeroAndQuiet(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "flint.toml")
	writeFile(t, cfg, "")
	bad := filepath.Join(dir, "bad.py")
	writeFile(t, bad, "x = (1 +)\n")

	root, stdout, stderr := newTestRoot()
	root.SetArgs([]string{"check", "--config", cfg, "--color", "off", "--ui", "off", "--quiet", "--exit-zero", "--format", "quiet-filename", bad})
	if err := root.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout.String() != filepath.ToSlash(bad)+"\n" {
		t.Fatalf("stdout = %q", stdout.String())
	}
	if stderr.Len() != 0 {
		t.Fatalf("quiet run wrote to stderr: %q", stderr.String())
	}
}

func TestCheckRejectsBadConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "flint.toml")
	writeFile(t, cfg, "max-line-lenght = 100\n")

	root, _, _ := newTestRoot()
	root.SetArgs([]string{"check", "--config", cfg, "--ui", "off", dir})
	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "unknown keys: max-line-lenght") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestCheckClearCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := driver.OpenDiskCache("flint")
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	key := project.HashStrings("stale")
	if err := cache.Put(key, &driver.DiskPayload{LogicalLines: 1}); err != nil {
		t.Fatalf("put: %v", err)
	}

	dir := t.TempDir()
	cfg := filepath.Join(dir, "flint.toml")
	writeFile(t, cfg, "")
	good := filepath.Join(dir, "good.py")
	writeFile(t, good, "x = 1\n")

	root, _, _ := newTestRoot()
	root.SetArgs([]string{"check", "--config", cfg, "--color", "off", "--ui", "off", "--quiet", "--clear-cache", good})
	if err := root.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hit, err := cache.Get(key, &driver.DiskPayload{})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if hit {
		t.Fatal("cache entry survived --clear-cache")
	}
}

func TestFlagOverridesConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "flint.toml")
	writeFile(t, cfg, "max-line-length = 100\nindent-size = 2\nexclude = [\"build\"]\n")

	root, _, _ := newTestRoot()
	var got checkConfigSpy
	spy := &cobra.Command{Use: "spy", RunE: got.run}
	addCheckFlags(spy)
	root.AddCommand(spy)
	root.SetArgs([]string{"spy", "--config", cfg, "--max-line-length", "120", "--exclude", "a,b"})
	if err := root.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.maxLineLength != 120 {
		t.Errorf("max-line-length = %d, want 120", got.maxLineLength)
	}
	if got.indentSize != 2 {
		t.Errorf("indent-size = %d, want 2 from the file", got.indentSize)
	}
	if strings.Join(got.exclude, ",") != "a,b" {
		t.Errorf("exclude = %v, want [a b]", got.exclude)
	}
}

type checkConfigSpy struct {
	maxLineLength int
	indentSize    int
	exclude       []string
}

func (p *checkConfigSpy) run(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	p.maxLineLength, p.indentSize, p.exclude = cfg.MaxLineLength, cfg.IndentSize, cfg.Exclude
	return nil
}

func TestTokenizeCommand(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "flint.toml")
	writeFile(t, cfg, "")
	src := filepath.Join(dir, "a.py")
	writeFile(t, src, "x = 1\n")

	root, stdout, _ := newTestRoot()
	root.SetArgs([]string{"tokenize", "--config", cfg, src})
	if err := root.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := stdout.String()
	for _, want := range []string{"NAME", "\"x\"", "NUMBER", "\"1\"", "ENDMARKER"} {
		if !strings.Contains(out, want) {
			t.Errorf("token dump missing %s:\n%s", want, out)
		}
	}
}

func TestLogicalCommand(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "flint.toml")
	writeFile(t, cfg, "")
	src := filepath.Join(dir, "a.py")
	writeFile(t, src, "y = f(1,\n      'ab')  # c\n")

	root, stdout, _ := newTestRoot()
	root.SetArgs([]string{"logical", "--config", cfg, "--format", "json", src})
	if err := root.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout.String(), `"text": "y = f(1, 'xx')"`) {
		t.Fatalf("logical dump = %s", stdout.String())
	}
}

func TestReadUIMode(t *testing.T) {
	cases := map[string]uiMode{"": uiModeAuto, "auto": uiModeAuto, "ON": uiModeOn, " off ": uiModeOff}
	for in, want := range cases {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestPrintStatistics(t *testing.T) {
	results := []checker.FileResult{
		{Diagnostics: []diag.Diagnostic{
			{Code: diag.SyntaxError, Message: "SyntaxError: invalid syntax"},
		}},
		{Diagnostics: []diag.Diagnostic{
			{Code: diag.IOError, Message: "IOError: read a.py: no such file"},
			{Code: diag.SyntaxError, Message: "SyntaxError: unexpected EOF"},
		}},
	}
	var buf bytes.Buffer
	printStatistics(&buf, results)
	want := "1     E902 IOError: read a.py: no such file\n" +
		"2     E999 SyntaxError: invalid syntax\n"
	if buf.String() != want {
		t.Fatalf("statistics = %q, want %q", buf.String(), want)
	}
}

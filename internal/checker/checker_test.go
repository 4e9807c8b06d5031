package checker_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flint/internal/ast"
	"flint/internal/checker"
	"flint/internal/diag"
	"flint/internal/processor"
	"flint/internal/source"
)

var (
	longLine = checker.Check{
		Name:       "long-line",
		Kind:       checker.KindPhysical,
		Parameters: []string{checker.ArgPhysicalLine, processor.ParamMaxLineLength},
		Run: func(args processor.Args) []checker.Result {
			line := source.TrimEOL(args[checker.ArgPhysicalLine].(string))
			limit := args[processor.ParamMaxLineLength].(int)
			if len(line) <= limit {
				return nil
			}
			return []checker.Result{{Column: limit, Code: "E501", Text: "line too long"}}
		},
	}
	firstParen = checker.Check{
		Name:       "first-paren",
		Kind:       checker.KindLogical,
		Parameters: []string{processor.ParamLogicalLine},
		Run: func(args processor.Args) []checker.Result {
			i := strings.Index(args[processor.ParamLogicalLine].(string), "(")
			if i < 0 {
				return nil
			}
			return []checker.Result{{Column: i, Code: "X100", Text: "paren"}}
		},
	}
	thirdLine = checker.Check{
		Name:       "third-line",
		Kind:       checker.KindLogical,
		Parameters: []string{processor.ParamCheckerState},
		Run: func(args processor.Args) []checker.Result {
			state := args[processor.ParamCheckerState].(map[string]any)
			n, _ := state["n"].(int)
			n++
			state["n"] = n
			if n != 3 {
				return nil
			}
			return []checker.Result{{Code: "X300", Text: "third logical line"}}
		},
	}
	functions = checker.Check{
		Name:       "functions",
		Kind:       checker.KindTree,
		Parameters: []string{checker.ArgTree},
		Run: func(args processor.Args) []checker.Result {
			tree := args[checker.ArgTree].(*ast.Tree)
			var out []checker.Result
			tree.Walk(func(_ ast.NodeID, n *ast.Node, _ int) bool {
				if n.Kind == ast.FunctionDef {
					out = append(out, checker.Result{Line: n.Start.Row, Column: n.Start.Col, Code: "X200", Text: "function " + n.Value})
				}
				return true
			})
			return out
		},
	}
)

func registry(t *testing.T) *checker.Registry {
	t.Helper()
	reg := checker.NewRegistry()
	for _, c := range []checker.Check{longLine, firstParen, thirdLine, functions} {
		require.NoError(t, reg.Register(c))
	}
	return reg
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mod.py")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

type finding struct {
	Line, Column int
	Code         diag.Code
}

func findings(res checker.FileResult) []finding {
	out := make([]finding, 0, len(res.Diagnostics))
	for _, d := range res.Diagnostics {
		out = append(out, finding{d.Line, d.Column, d.Code})
	}
	return out
}

func TestCheckPath(t *testing.T) {
	src := "import os\n" +
		"def f(a, b):\n" +
		"    return (a +\n" +
		"            b)\n" +
		"y = '" + strings.Repeat("z", 80) + "'\n"
	path := writeFile(t, src)

	res := checker.CheckPath(context.Background(), registry(t), path, processor.DefaultOptions())
	assert.False(t, res.Skipped)
	assert.Equal(t, []finding{
		{2, 0, "X200"},
		{2, 5, "X100"},
		{3, 4, "X300"},
		{3, 11, "X100"},
		{5, 79, "E501"},
	}, findings(res))
	assert.Equal(t, 4, res.Statistics.LogicalLines)
	assert.Equal(t, "    return (a +\n", res.Diagnostics[3].PhysicalLine)
	assert.Equal(t, diag.SevWarning, res.Diagnostics[0].Severity)
}

func TestSyntaxErrorStillRunsLineChecks(t *testing.T) {
	path := writeFile(t, "x = (1 +)\n")
	res := checker.CheckPath(context.Background(), registry(t), path, processor.DefaultOptions())
	require.Equal(t, []finding{{1, 4, "X100"}, {1, 8, "E999"}}, findings(res))
	assert.Equal(t, "SyntaxError: invalid syntax", res.Diagnostics[1].Message)
	assert.Equal(t, diag.SevError, res.Diagnostics[1].Severity)
}

func TestTokenizerErrorIsE902(t *testing.T) {
	path := writeFile(t, "x = (1,\n")
	res := checker.CheckPath(context.Background(), registry(t), path, processor.DefaultOptions())
	require.Len(t, res.Diagnostics, 1)
	d := res.Diagnostics[0]
	assert.Equal(t, diag.IOError, d.Code)
	assert.Equal(t, 2, d.Line)
	assert.Equal(t, "TokenError: EOF in multi-line statement", d.Message)
}

func TestMissingFileIsE902(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.py")
	res := checker.CheckPath(context.Background(), registry(t), path, processor.DefaultOptions())
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, diag.IOError, res.Diagnostics[0].Code)
	assert.Equal(t, 0, res.Diagnostics[0].Line)
	assert.True(t, strings.HasPrefix(res.Diagnostics[0].Message, "IOError: read "))
}

func TestDirectiveSkipsFile(t *testing.T) {
	path := writeFile(t, "# flint: noqa\ndef f(:\n")
	res := checker.CheckPath(context.Background(), registry(t), path, processor.DefaultOptions())
	assert.True(t, res.Skipped)
	assert.Empty(t, res.Diagnostics)
}

func TestCheckStdin(t *testing.T) {
	opts := processor.DefaultOptions()
	opts.Stdin = func() (string, error) { return "def g():\n    pass\n", nil }
	res := checker.CheckPath(context.Background(), registry(t), "-", opts)
	assert.Equal(t, "stdin", res.Filename)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, "function g", res.Diagnostics[0].Message)
	assert.Equal(t, "stdin", res.Diagnostics[0].Filename)
}

func TestRepeatedFindingsAreKept(t *testing.T) {
	twice := checker.Check{
		Name:       "twice",
		Kind:       checker.KindPhysical,
		Parameters: []string{checker.ArgPhysicalLine},
		Run: func(processor.Args) []checker.Result {
			r := checker.Result{Column: 0, Code: "X900", Text: "same"}
			return []checker.Result{r, r}
		},
	}
	reg := checker.NewRegistry()
	require.NoError(t, reg.Register(twice))
	res := checker.CheckPath(context.Background(), reg, writeFile(t, "x = 1\n"), processor.DefaultOptions())
	assert.Equal(t, []finding{{1, 0, "X900"}, {1, 0, "X900"}}, findings(res))
}

func TestRegisterValidation(t *testing.T) {
	reg := checker.NewRegistry()
	run := func(processor.Args) []checker.Result { return nil }

	err := reg.Register(checker.Check{Name: "bogus", Kind: checker.KindLogical, Parameters: []string{"nope"}, Run: run})
	var unknown *processor.UnknownParameterError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "nope", unknown.Name)

	// "tree" есть только у проверок дерева
	err = reg.Register(checker.Check{Name: "wrong-kind", Kind: checker.KindLogical, Parameters: []string{checker.ArgTree}, Run: run})
	require.ErrorAs(t, err, &unknown)

	require.ErrorIs(t, reg.Register(checker.Check{Name: "", Kind: checker.KindTree, Run: run}), checker.ErrInvalidCheck)
	require.ErrorIs(t, reg.Register(checker.Check{Name: "no-run", Kind: checker.KindTree}), checker.ErrInvalidCheck)
	require.ErrorIs(t, reg.Register(checker.Check{Name: "no-kind", Run: run}), checker.ErrInvalidCheck)

	require.NoError(t, reg.Register(checker.Check{Name: "ok", Kind: checker.KindTree, Parameters: []string{checker.ArgTree, processor.ParamFilename}, Run: run}))
	require.ErrorIs(t, reg.Register(checker.Check{Name: "ok", Kind: checker.KindTree, Run: run}), checker.ErrDuplicateCheck)
	assert.Equal(t, []string{"ok"}, reg.Names())
	assert.Len(t, reg.Checks(checker.KindTree), 1)
	assert.Empty(t, reg.Checks(checker.KindLogical))
}

func TestMustRegisterPanics(t *testing.T) {
	reg := checker.NewRegistry()
	assert.Panics(t, func() {
		reg.MustRegister(checker.Check{Name: "bad", Kind: checker.KindPhysical, Parameters: []string{"nope"},
			Run: func(processor.Args) []checker.Result { return nil }})
	})
	assert.Equal(t, 0, reg.Len())
}

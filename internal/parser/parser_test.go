package parser_test

import (
	"errors"
	"testing"

	"flint/internal/ast"
	"flint/internal/parser"
	"flint/internal/source"
	"flint/internal/testkit"
	"flint/internal/token"
)

func mustParse(t *testing.T, src string) *ast.Tree {
	t.Helper()
	tree, err := parser.ParseString(src, parser.Options{Filename: "m.py"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return tree
}

func TestParseAssignment(t *testing.T) {
	tree := mustParse(t, "a = 1\n")
	body := tree.Body()
	if len(body) != 1 {
		t.Fatalf("body has %d statements", len(body))
	}
	assign := tree.Get(body[0])
	if assign.Kind != ast.Assign || len(assign.Kids) != 2 {
		t.Fatalf("got %s with %d kids", assign.Kind, len(assign.Kids))
	}
	if n := tree.Get(assign.Kids[0]); n.Kind != ast.Name || n.Value != "a" {
		t.Errorf("target = %s %q", n.Kind, n.Value)
	}
	if n := tree.Get(assign.Kids[1]); n.Kind != ast.Constant || n.Value != "1" {
		t.Errorf("value = %s %q", n.Kind, n.Value)
	}
}

func TestParsePositions(t *testing.T) {
	tree := mustParse(t, "x = foo(1)\n")
	assign := tree.Get(tree.Body()[0])
	call := tree.Get(assign.Kids[1])
	if call.Kind != ast.Call {
		t.Fatalf("value kind = %s", call.Kind)
	}
	if call.Start != (token.Pos{Row: 1, Col: 4}) || call.End != (token.Pos{Row: 1, Col: 10}) {
		t.Errorf("call span = %s-%s", call.Start, call.End)
	}
}

const program = `import os, sys as system
from . import (a, b,)
from ..pkg.mod import *

@decorator(arg=1)
class Foo(Base, metaclass=Meta):
    """Doc."""
    x: int = 0

    async def method(self, a, /, b=2, *args, c, d=4, **kw) -> "Foo":
        async with open(p) as f, lock:
            data = [i ** 2 for i in range(10) if i % 2]  # квадраты
        async for item in stream():
            await item
        return {k: v for k, v in data.items()}, {*s}, {**d, 'k': 1}

def gen():
    x = yield
    yield from other()
    y = lambda q, *, r=1: q + r
    z = a[1:2, ::3, ...]
    if (n := len(z)) > 10 and not y:
        pass
    elif x is not None or y not in z:
        del z[0], x
    else:
        raise ValueError("bad") from None
    while True:
        break
    else:
        pass
    for i, *rest in pairs:
        continue
    try:
        pass
    except (A, B) as e:
        pass
    except C:
        pass
    else:
        pass
    finally:
        pass
    with (open(a) as f, open(b) as g):
        pass
    global counter
    assert x, "msg"
    s = f"{x}" "tail"
    t = -x ** 2 if x else ~x
    print(*args, sep="", **kw)
    return (yield)
`

func TestParseProgram(t *testing.T) {
	tree := mustParse(t, program)
	counts := map[ast.Kind]int{
		ast.Import:           1,
		ast.ImportFrom:       2,
		ast.ClassDef:         1,
		ast.AsyncFunctionDef: 1,
		ast.FunctionDef:      1,
		ast.AnnAssign:        1,
		ast.AsyncWith:        1,
		ast.With:             1,
		ast.AsyncFor:         1,
		ast.For:              1,
		ast.While:            1,
		ast.ListComp:         1,
		ast.DictComp:         1,
		ast.Set:              1,
		ast.Lambda:           1,
		ast.NamedExpr:        1,
		ast.Yield:            2,
		ast.YieldFrom:        1,
		ast.Slice:            2,
		ast.Try:              1,
		ast.ExceptHandler:    2,
		ast.JoinedStr:        1,
		ast.IfExp:            1,
		ast.Delete:           1,
		ast.Global:           1,
		ast.Assert:           1,
	}
	for kind, want := range counts {
		if got := tree.Count(kind); got != want {
			t.Errorf("Count(%s) = %d, want %d", kind, got, want)
		}
	}
	if len(tree.Body()) != 5 {
		t.Errorf("top-level statements = %d, want 5", len(tree.Body()))
	}
}

func TestParseIfElifChain(t *testing.T) {
	tree := mustParse(t, "if a:\n    x = 1\nelif b:\n    x = 2\nelse:\n    x = 3\n")
	top := tree.Get(tree.Body()[0])
	if top.Kind != ast.If || len(top.Else) != 1 {
		t.Fatalf("top = %s else=%d", top.Kind, len(top.Else))
	}
	elif := tree.Get(top.Else[0])
	if elif.Kind != ast.If || len(elif.Else) != 1 {
		t.Fatalf("elif = %s else=%d", elif.Kind, len(elif.Else))
	}
	if top.End.Row != 6 {
		t.Errorf("if ends on row %d, want 6", top.End.Row)
	}
}

func TestParseNormalizesNames(t *testing.T) {
	tree := mustParse(t, "\ufb01le = 1\n")
	assign := tree.Get(tree.Body()[0])
	if got := tree.Get(assign.Kids[0]).Value; got != "file" {
		t.Errorf("name = %q, want %q", got, "file")
	}
}

func TestParseSemicolons(t *testing.T) {
	tree := mustParse(t, "a = 1; b = 2;\nif x: pass; pass\n")
	if len(tree.Body()) != 3 {
		t.Fatalf("top-level statements = %d, want 3", len(tree.Body()))
	}
	if body := tree.Get(tree.Body()[2]).Body; len(body) != 2 {
		t.Errorf("inline if body = %d statements", len(body))
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		row  int
		msg  string
	}{
		{"incomplete assignment", "x = \n", 1, "invalid syntax"},
		{"bad parameter", "def f(:\n    pass\n", 1, "invalid syntax"},
		{"assign to literal", "1 = x\n", 1, "cannot assign to literal"},
		{"assign to call", "f() = 1\n", 1, "cannot assign to function call"},
		{"bytes mix", "x = 'a' b'b'\n", 1, "cannot mix bytes and nonbytes literals"},
		{"eof in brackets", "x = (1,\n", 2, "unexpected EOF while parsing"},
		{"eof in string", "x = '''abc\n", 1, "unterminated triple-quoted string literal"},
		{"try without handler", "try:\n    pass\nx = 1\n", 3, "expected 'except' or 'finally' block"},
		{"positional after keyword", "f(a=1, b)\n", 1, "positional argument follows keyword argument"},
		{"non-default after default", "def f(a=1, b):\n    pass\n", 1, "non-default argument follows default argument"},
		{"missing indent", "if x:\npass\n", 2, "expected an indented block"},
		{"unexpected indent", "  x = 1\n", 1, "unexpected indent"},
		{"dangling operator", "x = 1 +\n", 1, "invalid syntax"},
		{"stray else", "else:\n    pass\n", 1, "invalid syntax"},
		{"unknown character", "x = $\n", 1, "invalid character '$'"},
		{"unterminated string", "x = 'abc\n", 1, "unterminated string literal"},
		{"ifexp without else", "x = a if b\n", 1, "expected 'else' after 'if' expression"},
		{"annotate tuple", "a, b: int\n", 1, "only single target (not tuple) can be annotated"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parser.ParseString(tc.src, parser.Options{Filename: "m.py"})
			var se *parser.SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("expected *SyntaxError, got %v", err)
			}
			if se.Msg != tc.msg {
				t.Errorf("msg = %q, want %q", se.Msg, tc.msg)
			}
			if se.Pos.Row != tc.row {
				t.Errorf("row = %d, want %d", se.Pos.Row, tc.row)
			}
			if se.Filename != "m.py" {
				t.Errorf("filename = %q", se.Filename)
			}
		})
	}
}

func TestSyntaxErrorBeforeUnclosedBracket(t *testing.T) {
	_, err := parser.ParseString("def f(:\n", parser.Options{Filename: "m.py"})
	var se *parser.SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("expected *SyntaxError, got %v", err)
	}
	if se.Msg != "invalid syntax" || se.Pos.Row != 1 || se.Pos.Col != 6 {
		t.Fatalf("got %s %q, want 1:6 invalid syntax", se.Pos, se.Msg)
	}
	if err.Error() != "m.py:1:7: invalid syntax" {
		t.Errorf("err = %v", err)
	}

	// до EOF ошибок нет: остаётся ошибка лексера
	_, err = parser.ParseString("x = (1,\n", parser.Options{Filename: "m.py"})
	if !errors.As(err, &se) || se.Msg != "unexpected EOF while parsing" || se.Pos.Row != 2 {
		t.Fatalf("err = %v", err)
	}
}

func TestSyntaxErrorString(t *testing.T) {
	_, err := parser.ParseString("1 = x\n", parser.Options{Filename: "m.py"})
	if err == nil || err.Error() != "m.py:1:1: cannot assign to literal" {
		t.Fatalf("err = %v", err)
	}
}

func TestParseEmpty(t *testing.T) {
	tree := mustParse(t, "")
	if len(tree.Body()) != 0 {
		t.Fatalf("empty module has %d statements", len(tree.Body()))
	}
	tree = mustParse(t, "# только комментарий\n\n")
	if len(tree.Body()) != 0 {
		t.Fatalf("comment-only module has %d statements", len(tree.Body()))
	}
}

func TestStatementInvariants(t *testing.T) {
	sources := []string{
		program,
		"if a:\n    x = 1\nelif b:\n    x = 2\nelse:\n    x = 3\n",
		"x = 1; del x\n",
		"try:\n    pass\nexcept E as e:\n    raise\nelse:\n    y = 1\nfinally:\n    z = 2\n",
		"class C:\n    def m(self):\n        if self:\n            return 1\n        return 2\n",
	}
	for _, src := range sources {
		lines := source.SplitLines(src)
		tree, err := parser.Parse(lines, parser.Options{Filename: "m.py"})
		if err != nil {
			t.Fatalf("parse %q: %v", src, err)
		}
		if err := testkit.CheckStatementInvariants(tree, lines); err != nil {
			t.Errorf("%q: %v", src, err)
		}
	}
}

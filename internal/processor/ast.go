package processor

import (
	"errors"
	"fmt"

	"flint/internal/ast"
	"flint/internal/parser"
	"flint/internal/trace"
)

// ErrCannotBuildAST wraps every parse failure returned by BuildAST.
var ErrCannotBuildAST = errors.New("cannot build syntax tree")

// BuildAST parses the whole file once; later calls return the cached result.
// On a syntax error the returned error wraps both ErrCannotBuildAST and
// the *parser.SyntaxError.
func (p *FileProcessor) BuildAST() (*ast.Tree, error) {
	if p.astBuilt {
		return p.astTree, p.astErr
	}
	span := trace.Begin(p.tracer, trace.ScopePhase, "ast", 0)
	tree, err := parser.Parse(p.lines, parser.Options{Filename: p.Filename})
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrCannotBuildAST, err)
		span.End(err.Error())
	} else {
		span.WithExtra("nodes", fmt.Sprint(tree.Len())).End("")
	}
	p.astBuilt, p.astTree, p.astErr = true, tree, err
	return tree, err
}

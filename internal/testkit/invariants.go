// Package testkit holds structural checks shared by parser tests and fuzzers.
package testkit

import (
	"fmt"

	"flint/internal/ast"
)

// CheckStatementInvariants runs a minimal set of position invariants on a parsed module:
// 1) every statement starts no later than it ends and lies within the file's lines
// 2) statements of one block (Body, Else, Final) are in order and do not overlap
// 3) a compound statement's blocks lie inside its own span
func CheckStatementInvariants(tree *ast.Tree, lines []string) error {
	if tree == nil {
		return fmt.Errorf("nil tree")
	}
	root := tree.Get(tree.Root)
	if root == nil {
		return fmt.Errorf("root node not found")
	}
	last := len(lines)

	var check func(parent *ast.Node, isRoot bool) error
	check = func(parent *ast.Node, isRoot bool) error {
		for _, block := range [][]ast.NodeID{parent.Body, parent.Else, parent.Final} {
			var prev *ast.Node
			for _, id := range block {
				n := tree.Get(id)
				if n == nil {
					return fmt.Errorf("dangling statement id %d under %s", id, parent.Kind)
				}
				if n.End.Less(n.Start) {
					return fmt.Errorf("%s ends before it starts: %s-%s", n.Kind, n.Start, n.End)
				}
				if n.Start.Row < 1 || n.End.Row > last {
					return fmt.Errorf("%s %s-%s outside lines 1..%d", n.Kind, n.Start, n.End, last)
				}
				if prev != nil && n.Start.Less(prev.End) {
					return fmt.Errorf("%s at %s overlaps previous %s ending at %s", n.Kind, n.Start, prev.Kind, prev.End)
				}
				if !isRoot && (n.Start.Less(parent.Start) || parent.End.Less(n.End)) {
					return fmt.Errorf("%s %s-%s escapes parent %s %s-%s",
						n.Kind, n.Start, n.End, parent.Kind, parent.Start, parent.End)
				}
				if err := check(n, false); err != nil {
					return err
				}
				prev = n
			}
		}
		// обработчики except лежат в Kids у Try
		if parent.Kind == ast.Try {
			for _, id := range parent.Kids {
				if h := tree.Get(id); h != nil && h.Kind == ast.ExceptHandler {
					if err := check(h, false); err != nil {
						return err
					}
				}
			}
		}
		return nil
	}
	return check(root, true)
}

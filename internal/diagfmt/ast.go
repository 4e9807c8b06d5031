package diagfmt

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"flint/internal/ast"
)

type ASTNodeOutput struct {
	Kind     string          `json:"kind"`
	Value    string          `json:"value,omitempty"`
	Start    string          `json:"start"`
	End      string          `json:"end"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

// FormatASTPretty печатает дерево с ветками ├─ / └─.
func FormatASTPretty(w io.Writer, tree *ast.Tree) error {
	root := tree.Get(tree.Root)
	if root == nil {
		return errors.New("empty tree")
	}
	if _, err := fmt.Fprintf(w, "%s (%s)\n", tree.Filename, root.Kind); err != nil {
		return err
	}
	body := root.Children()
	for i, id := range body {
		if err := formatNodePretty(w, tree, id, "", i == len(body)-1); err != nil {
			return err
		}
	}
	return nil
}

func formatNodePretty(w io.Writer, tree *ast.Tree, id ast.NodeID, prefix string, isLast bool) error {
	n := tree.Get(id)
	branch, next := "├─ ", "│  "
	if isLast {
		branch, next = "└─ ", "   "
	}
	label := n.Kind.String()
	if n.Value != "" {
		label += fmt.Sprintf(" %q", n.Value)
	}
	if _, err := fmt.Fprintf(w, "%s%s%s %s-%s\n", prefix, branch, label, n.Start, n.End); err != nil {
		return err
	}
	kids := n.Children()
	for i, kid := range kids {
		if err := formatNodePretty(w, tree, kid, prefix+next, i == len(kids)-1); err != nil {
			return err
		}
	}
	return nil
}

func FormatASTJSON(w io.Writer, tree *ast.Tree) error {
	if tree.Get(tree.Root) == nil {
		return errors.New("empty tree")
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(nodeJSON(tree, tree.Root))
}

func nodeJSON(tree *ast.Tree, id ast.NodeID) ASTNodeOutput {
	n := tree.Get(id)
	out := ASTNodeOutput{
		Kind:  n.Kind.String(),
		Value: n.Value,
		Start: n.Start.String(),
		End:   n.End.String(),
	}
	for _, kid := range n.Children() {
		out.Children = append(out.Children, nodeJSON(tree, kid))
	}
	return out
}

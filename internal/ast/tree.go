package ast

import "flint/internal/token"

// Tree owns every node of one parsed module.
type Tree struct {
	Filename string
	Root     NodeID
	nodes    *Arena[Node]
}

// NewTree creates an empty tree; capHint sizes the node arena.
func NewTree(filename string, capHint uint) *Tree {
	return &Tree{Filename: filename, nodes: NewArena[Node](capHint)}
}

// New allocates a node and returns its id.
func (t *Tree) New(kind Kind, start, end token.Pos) NodeID {
	return NodeID(t.nodes.Allocate(Node{Kind: kind, Start: start, End: end}))
}

// Get returns the node for id or nil.
func (t *Tree) Get(id NodeID) *Node {
	return t.nodes.Get(uint32(id))
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int { return t.nodes.Len() }

// Body returns the top-level statements.
func (t *Tree) Body() []NodeID {
	if root := t.Get(t.Root); root != nil {
		return root.Body
	}
	return nil
}

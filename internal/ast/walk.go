package ast

// Visitor is called for every node in depth-first pre-order.
// Returning false skips the node's children.
type Visitor func(id NodeID, n *Node, depth int) bool

// Walk traverses the tree from the root.
func (t *Tree) Walk(v Visitor) {
	t.walk(t.Root, 0, v)
}

func (t *Tree) walk(id NodeID, depth int, v Visitor) {
	n := t.Get(id)
	if n == nil {
		return
	}
	if !v(id, n, depth) {
		return
	}
	for _, child := range n.Children() {
		t.walk(child, depth+1, v)
	}
}

// Count returns how many nodes of kind k the tree holds.
func (t *Tree) Count(k Kind) int {
	count := 0
	t.Walk(func(_ NodeID, n *Node, _ int) bool {
		if n.Kind == k {
			count++
		}
		return true
	})
	return count
}

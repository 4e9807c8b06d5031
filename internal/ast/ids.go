package ast

// NodeID индексирует узел в арене дерева; 0 означает отсутствие узла.
type NodeID uint32

const NoNodeID NodeID = 0

func (id NodeID) IsValid() bool { return id != NoNodeID }

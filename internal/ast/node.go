package ast

import "flint/internal/token"

// Node is a syntax tree node. Field use depends on Kind:
//
//	FunctionDef   Value=name Kids=[arguments, returns?] Body Decorators
//	ClassDef      Value=name Kids=bases+keywords Body Decorators
//	If/While      Kids=[test] Body Else
//	For           Kids=[target, iter] Body Else
//	With          Kids=withitems Body
//	Try           Body Kids=handlers Else Final
//	Assign        Kids=targets..., value (последний)
//	AugAssign     Value=op Kids=[target, value]
//	AnnAssign     Kids=[target, annotation, value?]
//	BinOp/BoolOp/UnaryOp/Compare  Value=op(s) Kids=operands
//	Call          Kids=[func, args..., keywords...]
//	Constant      Value=исходный текст литерала
//	Name/Attribute/Arg/Keyword/Alias  Value=имя
type Node struct {
	Kind       Kind
	Start      token.Pos
	End        token.Pos
	Value      string
	Kids       []NodeID
	Body       []NodeID
	Else       []NodeID
	Final      []NodeID
	Decorators []NodeID
}

// Children returns every child in source order groups: decorators, kids, body, else, final.
func (n *Node) Children() []NodeID {
	out := make([]NodeID, 0, len(n.Decorators)+len(n.Kids)+len(n.Body)+len(n.Else)+len(n.Final))
	for _, group := range [][]NodeID{n.Decorators, n.Kids, n.Body, n.Else, n.Final} {
		for _, id := range group {
			if id.IsValid() {
				out = append(out, id)
			}
		}
	}
	return out
}

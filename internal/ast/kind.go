package ast

// Kind is the syntactic category of a node, named after Python's ast classes.
type Kind uint8

const (
	Invalid Kind = iota

	// модуль и инструкции
	Module
	FunctionDef
	AsyncFunctionDef
	ClassDef
	Return
	Delete
	Assign
	AugAssign
	AnnAssign
	For
	AsyncFor
	While
	If
	With
	AsyncWith
	Raise
	Try
	Assert
	Import
	ImportFrom
	Global
	Nonlocal
	Expr
	Pass
	Break
	Continue

	// выражения
	BoolOp
	NamedExpr
	BinOp
	UnaryOp
	Lambda
	IfExp
	Dict
	Set
	ListComp
	SetComp
	DictComp
	GeneratorExp
	Await
	Yield
	YieldFrom
	Compare
	Call
	Constant
	JoinedStr
	Attribute
	Subscript
	Starred
	Name
	List
	Tuple
	Slice

	// вспомогательные узлы
	Arguments
	Arg
	Keyword
	Alias
	WithItem
	ExceptHandler
	Comprehension
	DictUnpack
)

var kindNames = map[Kind]string{
	Invalid: "Invalid", Module: "Module", FunctionDef: "FunctionDef", AsyncFunctionDef: "AsyncFunctionDef",
	ClassDef: "ClassDef", Return: "Return", Delete: "Delete", Assign: "Assign", AugAssign: "AugAssign",
	AnnAssign: "AnnAssign", For: "For", AsyncFor: "AsyncFor", While: "While", If: "If", With: "With",
	AsyncWith: "AsyncWith", Raise: "Raise", Try: "Try", Assert: "Assert", Import: "Import",
	ImportFrom: "ImportFrom", Global: "Global", Nonlocal: "Nonlocal", Expr: "Expr", Pass: "Pass",
	Break: "Break", Continue: "Continue", BoolOp: "BoolOp", NamedExpr: "NamedExpr", BinOp: "BinOp",
	UnaryOp: "UnaryOp", Lambda: "Lambda", IfExp: "IfExp", Dict: "Dict", Set: "Set", ListComp: "ListComp",
	SetComp: "SetComp", DictComp: "DictComp", GeneratorExp: "GeneratorExp", Await: "Await", Yield: "Yield",
	YieldFrom: "YieldFrom", Compare: "Compare", Call: "Call", Constant: "Constant", JoinedStr: "JoinedStr",
	Attribute: "Attribute", Subscript: "Subscript", Starred: "Starred", Name: "Name", List: "List",
	Tuple: "Tuple", Slice: "Slice", Arguments: "arguments", Arg: "arg", Keyword: "keyword", Alias: "alias",
	WithItem: "withitem", ExceptHandler: "ExceptHandler", Comprehension: "comprehension", DictUnpack: "DictUnpack",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// IsStmt reports whether k is a statement kind.
func (k Kind) IsStmt() bool { return k >= FunctionDef && k <= Continue }

// IsExpr reports whether k is an expression kind.
func (k Kind) IsExpr() bool { return k >= BoolOp && k <= Slice }

// IsAssignable reports whether an expression of kind k may appear as an assignment target.
func (k Kind) IsAssignable() bool {
	switch k {
	case Name, Attribute, Subscript, Starred, Tuple, List:
		return true
	default:
		return false
	}
}

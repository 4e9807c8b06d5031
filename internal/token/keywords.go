package token

var keywords = map[string]struct{}{
	"False": {}, "None": {}, "True": {}, "and": {}, "as": {}, "assert": {},
	"async": {}, "await": {}, "break": {}, "class": {}, "continue": {},
	"def": {}, "del": {}, "elif": {}, "else": {}, "except": {}, "finally": {},
	"for": {}, "from": {}, "global": {}, "if": {}, "import": {}, "in": {},
	"is": {}, "lambda": {}, "nonlocal": {}, "not": {}, "or": {}, "pass": {},
	"raise": {}, "return": {}, "try": {}, "while": {}, "with": {}, "yield": {},
}

// мягкие ключевые слова: обычные имена вне своего контекста
var softKeywords = map[string]struct{}{
	"match": {}, "case": {}, "type": {}, "_": {},
}

// IsKeyword сообщает, является ли идентификатор жёстким ключевым словом.
// Ключевые слова регистрозависимые.
func IsKeyword(ident string) bool {
	_, ok := keywords[ident]
	return ok
}

// IsSoftKeyword reports whether ident is a context-dependent keyword.
func IsSoftKeyword(ident string) bool {
	_, ok := softKeywords[ident]
	return ok
}

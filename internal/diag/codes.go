package diag

// Code is a finding identifier such as "E101".
type Code string

const (
	// UnknownCode используется, когда проверка не вернула код.
	UnknownCode Code = ""
	// IndentMixed: смешанные табы и пробелы; процессор запоминает символ отступа.
	IndentMixed Code = "E101"
	// IOError: файл не прочитан или не разобран на токены.
	IOError Code = "E902"
	// SyntaxError: AST не построен.
	SyntaxError Code = "E999"
)

func (c Code) String() string {
	if c == UnknownCode {
		return "UNKNOWN"
	}
	return string(c)
}

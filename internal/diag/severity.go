package diag

// Severity separates processor failures from style findings.
type Severity uint8

const (
	SevInfo Severity = iota
	// SevWarning: находка проверки.
	SevWarning
	// SevError: файл не прочитан, не разобран на токены или не распарсен.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "info"
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	}
	return "unknown"
}

// SeverityOf returns the severity a finding with code c is reported at.
func SeverityOf(c Code) Severity {
	if c == IOError || c == SyntaxError {
		return SevError
	}
	return SevWarning
}

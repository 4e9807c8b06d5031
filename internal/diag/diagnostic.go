package diag

import "fmt"

// Diagnostic is a single finding.
type Diagnostic struct {
	Severity     Severity
	Code         Code
	Message      string
	Filename     string
	Line         int // 1-based
	Column       int // 0-based
	PhysicalLine string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d:%d: %s %s", d.Filename, d.Line, d.Column+1, d.Code, d.Message)
}

// Less orders diagnostics by file, line, column, then code.
func (d Diagnostic) Less(other Diagnostic) bool {
	if d.Filename != other.Filename {
		return d.Filename < other.Filename
	}
	if d.Line != other.Line {
		return d.Line < other.Line
	}
	if d.Column != other.Column {
		return d.Column < other.Column
	}
	return d.Code < other.Code
}

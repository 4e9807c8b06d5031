package processor

import (
	"fmt"
	"slices"
)

// Args are the keyword arguments handed to a check.
type Args map[string]any

// Parameter names a check may request.
const (
	ParamBlankBefore                   = "blank_before"
	ParamBlankLines                    = "blank_lines"
	ParamCheckerState                  = "checker_state"
	ParamFilename                      = "filename"
	ParamHangClosing                   = "hang_closing"
	ParamIndentChar                    = "indent_char"
	ParamIndentLevel                   = "indent_level"
	ParamIndentSize                    = "indent_size"
	ParamLineNumber                    = "line_number"
	ParamLines                         = "lines"
	ParamLogicalLine                   = "logical_line"
	ParamMaxDocLength                  = "max_doc_length"
	ParamMaxLineLength                 = "max_line_length"
	ParamMultiline                     = "multiline"
	ParamNoqa                          = "noqa"
	ParamPreviousIndentLevel           = "previous_indent_level"
	ParamPreviousLogical               = "previous_logical"
	ParamPreviousUnindentedLogicalLine = "previous_unindented_logical_line"
	ParamTokens                        = "tokens"
	ParamTotalLines                    = "total_lines"
	ParamVerbose                       = "verbose"
)

// parameterTable: закрытый перечень того, что процессор отдаёт проверкам
var parameterTable = map[string]func(*FileProcessor) any{
	ParamBlankBefore:                   func(p *FileProcessor) any { return p.BlankBefore },
	ParamBlankLines:                    func(p *FileProcessor) any { return p.BlankLines },
	ParamCheckerState:                  func(p *FileProcessor) any { return p.CheckerState },
	ParamFilename:                      func(p *FileProcessor) any { return p.Filename },
	ParamHangClosing:                   func(p *FileProcessor) any { return p.HangClosing },
	ParamIndentChar:                    func(p *FileProcessor) any { return p.IndentChar },
	ParamIndentLevel:                   func(p *FileProcessor) any { return p.IndentLevel },
	ParamIndentSize:                    func(p *FileProcessor) any { return p.IndentSize },
	ParamLineNumber:                    func(p *FileProcessor) any { return p.LineNumber },
	ParamLines:                         func(p *FileProcessor) any { return p.lines },
	ParamLogicalLine:                   func(p *FileProcessor) any { return p.LogicalLine },
	ParamMaxDocLength:                  func(p *FileProcessor) any { return p.MaxDocLength },
	ParamMaxLineLength:                 func(p *FileProcessor) any { return p.MaxLineLength },
	ParamMultiline:                     func(p *FileProcessor) any { return p.Multiline },
	ParamNoqa:                          func(p *FileProcessor) any { return p.Noqa },
	ParamPreviousIndentLevel:           func(p *FileProcessor) any { return p.PreviousIndentLevel },
	ParamPreviousLogical:               func(p *FileProcessor) any { return p.PreviousLogical },
	ParamPreviousUnindentedLogicalLine: func(p *FileProcessor) any { return p.PreviousUnindentedLogicalLine },
	ParamTokens:                        func(p *FileProcessor) any { return p.Tokens },
	ParamTotalLines:                    func(p *FileProcessor) any { return p.TotalLines },
	ParamVerbose:                       func(p *FileProcessor) any { return p.Verbose },
}

// UnknownParameterError reports a requested name the processor does not provide.
type UnknownParameterError struct {
	Name string
}

func (e *UnknownParameterError) Error() string {
	return fmt.Sprintf("processor has no parameter %q", e.Name)
}

// KnownParameters returns the names KeywordArgumentsFor can resolve, sorted.
func KnownParameters() []string {
	names := make([]string, 0, len(parameterTable))
	for name := range parameterTable {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsKnownParameter reports whether name is in the parameter table.
func IsKnownParameter(name string) bool {
	_, ok := parameterTable[name]
	return ok
}

// KeywordArgumentsFor resolves params against the processor's current state.
// Values in explicit win. A name that is neither explicit nor known panics
// with *UnknownParameterError: checks are validated at registration, so
// reaching it here is a programming error.
func (p *FileProcessor) KeywordArgumentsFor(params []string, explicit Args) Args {
	out := make(Args, len(params)+len(explicit))
	for k, v := range explicit {
		out[k] = v
	}
	for _, name := range params {
		if _, ok := out[name]; ok {
			continue
		}
		get, ok := parameterTable[name]
		if !ok {
			panic(&UnknownParameterError{Name: name})
		}
		out[name] = get(p)
	}
	return out
}

// ValidateParameters returns *UnknownParameterError for the first name in
// params that is neither known nor listed in provided.
func ValidateParameters(params []string, provided ...string) error {
	for _, name := range params {
		if IsKnownParameter(name) || slices.Contains(provided, name) {
			continue
		}
		return &UnknownParameterError{Name: name}
	}
	return nil
}

// Package processor turns one Python source file into the views checks
// consume: physical lines, the token stream, logical lines and the syntax
// tree. A FileProcessor is owned by a single goroutine and discarded after
// the file is checked.
package processor

import (
	"flint/internal/ast"
	"flint/internal/source"
	"flint/internal/token"
	"flint/internal/trace"
)

// Options are the user settings mirrored on every processor.
type Options struct {
	MaxLineLength int
	MaxDocLength  int // 0 = выключено
	HangClosing   bool
	IndentSize    int
	Verbose       int

	// Stdin подменяет чтение стандартного ввода (тесты); nil = source.ReadStdin.
	Stdin  source.StdinReader
	Tracer trace.Tracer
}

// DefaultOptions returns the settings used when no configuration is found.
func DefaultOptions() Options {
	return Options{MaxLineLength: 79, IndentSize: 4}
}

// Statistics counts what one pass over the file produced.
type Statistics struct {
	Tokens       int
	LogicalLines int
}

// FileProcessor holds the per-file state shared with checks.
// Exported fields are the context checks may request by name (see KeywordArgumentsFor).
type FileProcessor struct {
	Filename string
	File     *source.File

	BlankBefore  int
	BlankLines   int
	CheckerState map[string]any
	HangClosing  bool
	IndentChar   rune // 0 пока не встретили отступ
	IndentLevel  int
	IndentSize   int
	LineNumber   int
	LogicalLine  string
	MaxDocLength int
	// MaxLineLength is the configured physical line limit.
	MaxLineLength                 int
	Multiline                     bool
	Noqa                          bool
	PreviousIndentLevel           int
	PreviousLogical               string
	PreviousUnindentedLogicalLine string
	Tokens                        []token.Token
	TotalLines                    int
	Verbose                       int

	Statistics Statistics

	lines         []string
	checkerStates map[string]map[string]any
	tracer        trace.Tracer

	astBuilt bool
	astTree  *ast.Tree
	astErr   error
}

// IsStdinName reports whether filename asks for standard input.
func IsStdinName(filename string) bool {
	return filename == "-" || filename == ""
}

// New reads filename ("-" or "" for standard input) and returns its processor.
// Standard input is read exactly once and the filename becomes "stdin".
func New(filename string, opts Options) (*FileProcessor, error) {
	var (
		f   *source.File
		err error
	)
	if IsStdinName(filename) {
		f, err = source.FromStdin(opts.Stdin)
	} else {
		f, err = source.Load(filename)
	}
	if err != nil {
		return nil, err
	}
	return NewFromFile(f, opts), nil
}

// NewFromLines builds a processor over lines that were already read.
// The filename is kept as given.
func NewFromLines(filename string, lines []string, opts Options) *FileProcessor {
	return NewFromFile(source.FromLines(filename, lines), opts)
}

// NewFromFile builds a processor over a loaded file.
func NewFromFile(f *source.File, opts Options) *FileProcessor {
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}
	return &FileProcessor{
		Filename:      f.Path,
		File:          f,
		HangClosing:   opts.HangClosing,
		IndentSize:    opts.IndentSize,
		MaxDocLength:  opts.MaxDocLength,
		MaxLineLength: opts.MaxLineLength,
		TotalLines:    len(f.Lines),
		Verbose:       opts.Verbose,
		lines:         f.Lines,
		checkerStates: make(map[string]map[string]any),
		tracer:        tracer,
	}
}

// Lines returns the physical lines, terminators included.
func (p *FileProcessor) Lines() []string { return p.lines }

// LineFor returns physical line n (1-based), or "" when n is out of range.
func (p *FileProcessor) LineFor(n int) string {
	if n < 1 || n > len(p.lines) {
		return ""
	}
	return p.lines[n-1]
}

// NextLine returns the next physical line and advances LineNumber.
// At the end of the file it returns "" without advancing.
// The first line starting with a space or a tab fixes IndentChar.
func (p *FileProcessor) NextLine() string {
	if p.LineNumber >= p.TotalLines {
		return ""
	}
	line := p.lines[p.LineNumber]
	p.LineNumber++
	if p.IndentChar == 0 && line != "" && (line[0] == ' ' || line[0] == '\t') {
		p.IndentChar = rune(line[0])
	}
	return line
}

// VisitedNewBlankLine counts one more blank line before the next logical line.
func (p *FileProcessor) VisitedNewBlankLine() { p.BlankLines++ }

// ResetBlankBefore forgets the blank lines seen before the finished logical line.
func (p *FileProcessor) ResetBlankBefore() { p.BlankBefore = 0 }

// DeleteFirstToken drops the oldest token of the current logical line.
func (p *FileProcessor) DeleteFirstToken() {
	if len(p.Tokens) > 0 {
		p.Tokens = p.Tokens[1:]
	}
}

// UpdateCheckerStateFor selects the private state map of check name
// when the check asks for checker_state.
func (p *FileProcessor) UpdateCheckerStateFor(name string, params []string) {
	for _, param := range params {
		if param != ParamCheckerState {
			continue
		}
		state, ok := p.checkerStates[name]
		if !ok {
			state = make(map[string]any)
			p.checkerStates[name] = state
		}
		p.CheckerState = state
		return
	}
}

package diagfmt

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"flint/internal/diag"
)

// ErrUnknownFormat is returned by New for a format name it does not know.
var ErrUnknownFormat = errors.New("unknown output format")

// Formatter turns diagnostics into output lines.
//
// Start opens the output file when one is configured, Handle formats and
// writes one diagnostic, Stop closes the file. A Formatter is not safe for
// concurrent use; the driver hands it results in order from one goroutine.
type Formatter struct {
	opts    Options
	newline string
	out     io.Writer
	file    *os.File
	format  func(d diag.Diagnostic) string

	path *color.Color
	code *color.Color

	printed map[string]struct{} // quiet-filename: уже выведенные файлы
}

// New returns a formatter for opts.Format ("" means default).
func New(opts Options) (*Formatter, error) {
	if opts.Format == "" {
		opts.Format = FormatDefault
	}
	f := &Formatter{
		opts:    opts,
		newline: "\n",
		path:    color.New(color.Bold),
		code:    color.New(color.FgRed, color.Bold),
	}
	f.setColor(opts.Color && opts.OutputFile == "")
	switch opts.Format {
	case FormatDefault:
		f.format = f.formatDefault
	case FormatPylint:
		f.format = f.formatPylint
	case FormatJSON:
		f.format = formatJSON
		f.opts.ShowSource = false
	case FormatQuietFilename:
		f.printed = make(map[string]struct{})
		f.format = f.formatFilename
		f.opts.ShowSource = false
	case FormatQuietNothing:
		f.format = func(diag.Diagnostic) string { return "" }
		f.opts.ShowSource = false
	default:
		return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownFormat, opts.Format, strings.Join(formats, ", "))
	}
	return f, nil
}

func (f *Formatter) setColor(on bool) {
	for _, c := range []*color.Color{f.path, f.code} {
		if on {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
}

// Start prepares the formatter for output, creating OutputFile if set.
func (f *Formatter) Start() error {
	if f.opts.OutputFile != "" {
		// #nosec G304 -- output path comes from the user
		file, err := os.Create(f.opts.OutputFile)
		if err != nil {
			return fmt.Errorf("open output file: %w", err)
		}
		f.file = file
		f.out = file
		return nil
	}
	f.out = f.opts.Stdout
	if f.out == nil {
		f.out = os.Stdout
	}
	return nil
}

// Handle formats d, its source excerpt, and writes both.
func (f *Formatter) Handle(d diag.Diagnostic) error {
	line := f.Format(d)
	if line == "" {
		return nil
	}
	return f.Write(line, f.FormatSource(d))
}

// HandleAll calls Handle for each diagnostic, stopping at the first write error.
func (f *Formatter) HandleAll(ds []diag.Diagnostic) error {
	for _, d := range ds {
		if err := f.Handle(d); err != nil {
			return err
		}
	}
	return nil
}

// Format renders d as a single line; "" means nothing to print.
func (f *Formatter) Format(d diag.Diagnostic) string {
	return f.format(d)
}

// FormatSource returns the physical line of d followed by a caret under
// its column, or "" when source display is off.
func (f *Formatter) FormatSource(d diag.Diagnostic) string {
	if !f.opts.ShowSource || d.PhysicalLine == "" {
		return ""
	}
	physical := d.PhysicalLine
	if !strings.HasSuffix(physical, "\n") && !strings.HasSuffix(physical, "\r") {
		physical += "\n"
	}
	return physical + Pointer(d.PhysicalLine, d.Column)
}

// Pointer builds the caret line for byte column col of line. Tabs are kept
// so the caret lines up in a terminal; other runes pad by display width.
func Pointer(line string, col int) string {
	var sb strings.Builder
	for i, r := range line {
		if i >= col || r == '\n' || r == '\r' {
			break
		}
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	if col > len(line) {
		sb.WriteString(strings.Repeat(" ", col-len(line)))
	}
	sb.WriteByte('^')
	return sb.String()
}

// Write writes line and, when non-empty, source, each followed by a newline.
func (f *Formatter) Write(line, source string) error {
	if f.out == nil {
		return errors.New("formatter not started")
	}
	if _, err := io.WriteString(f.out, line+f.newline); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if source != "" {
		if _, err := io.WriteString(f.out, source+f.newline); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}

// Stop closes the output file if Start opened one.
func (f *Formatter) Stop() error {
	if f.file == nil {
		return nil
	}
	err := f.file.Close()
	f.file = nil
	f.out = nil
	if err != nil {
		return fmt.Errorf("close output file: %w", err)
	}
	return nil
}

func (f *Formatter) formatDefault(d diag.Diagnostic) string {
	return fmt.Sprintf("%s:%d:%d: %s %s",
		f.path.Sprint(d.Filename), d.Line, d.Column+1, f.code.Sprint(d.Code.String()), d.Message)
}

func (f *Formatter) formatPylint(d diag.Diagnostic) string {
	return fmt.Sprintf("%s:%d: [%s] %s",
		f.path.Sprint(d.Filename), d.Line, f.code.Sprint(d.Code.String()), d.Message)
}

func (f *Formatter) formatFilename(d diag.Diagnostic) string {
	if _, ok := f.printed[d.Filename]; ok {
		return ""
	}
	f.printed[d.Filename] = struct{}{}
	return f.path.Sprint(d.Filename)
}

// DiagnosticJSON is one line of the json format.
type DiagnosticJSON struct {
	Filename string `json:"filename"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Code     string `json:"code"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Physical string `json:"physical_line,omitempty"`
}

func formatJSON(d diag.Diagnostic) string {
	data, err := json.Marshal(DiagnosticJSON{
		Filename: d.Filename,
		Line:     d.Line,
		Column:   d.Column + 1,
		Code:     d.Code.String(),
		Severity: d.Severity.String(),
		Message:  d.Message,
		Physical: strings.TrimRight(d.PhysicalLine, "\r\n"),
	})
	if err != nil {
		// только строки и числа, сбоя быть не может
		panic(fmt.Errorf("marshal diagnostic: %w", err))
	}
	return string(data)
}

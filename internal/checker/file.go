package checker

import (
	"context"
	"errors"
	"fmt"

	"flint/internal/diag"
	"flint/internal/lexer"
	"flint/internal/parser"
	"flint/internal/processor"
	"flint/internal/trace"
)

// FileResult is everything checking one file produced.
type FileResult struct {
	Filename    string
	Diagnostics []diag.Diagnostic
	Statistics  processor.Statistics
	Skipped     bool // файл исключён директивой
}

// FileChecker runs the registered checks over one processor.
// It is the processor's Visitor for the duration of a run.
type FileChecker struct {
	proc     *processor.FileProcessor
	reporter diag.Reporter
	bag      *diag.Bag
	tracer   trace.Tracer

	tree     []Check
	logical  []Check
	physical []Check
}

// CheckPath reads path ("-" for standard input) and checks it.
// A read failure becomes an E902 finding, not an error.
func CheckPath(ctx context.Context, reg *Registry, path string, opts processor.Options) FileResult {
	if opts.Tracer == nil {
		opts.Tracer = trace.FromContext(ctx)
	}
	proc, err := processor.New(path, opts)
	if err != nil {
		name := path
		if processor.IsStdinName(path) {
			name = "stdin"
		}
		return ReadFailure(name, err)
	}
	return CheckFile(ctx, reg, proc)
}

// ReadFailure is the result for a file that could not be read.
func ReadFailure(filename string, err error) FileResult {
	d := diag.ReportError(nil, diag.IOError, filename, 0, 0, "IOError: "+err.Error()).Diagnostic()
	return FileResult{Filename: filename, Diagnostics: []diag.Diagnostic{d}}
}

// CheckFile runs every check in reg over proc.
func CheckFile(ctx context.Context, reg *Registry, proc *processor.FileProcessor) FileResult {
	bag := diag.NewBag(0)
	fc := &FileChecker{
		proc:     proc,
		bag:      bag,
		reporter: diag.BagReporter{Bag: bag},
		tracer:   trace.FromContext(ctx),
		tree:     reg.Checks(KindTree),
		logical:  reg.Checks(KindLogical),
		physical: reg.Checks(KindPhysical),
	}
	res := FileResult{Filename: proc.Filename}
	if proc.ShouldIgnoreFile() {
		trace.Point(fc.tracer, trace.ScopePhase, "skip", proc.Filename)
		res.Skipped = true
		return res
	}
	fc.run()
	bag.Sort()
	if bag.Len() > 0 {
		res.Diagnostics = bag.Items()
	}
	res.Statistics = proc.Statistics
	return res
}

func (fc *FileChecker) run() {
	if err := fc.proc.ProcessTokens(fc); err != nil {
		fc.reportTokenError(err)
		return
	}
	fc.runTreeChecks()
}

func (fc *FileChecker) reportTokenError(err error) {
	var lexErr *lexer.Error
	if !errors.As(err, &lexErr) {
		fc.report(diag.IOError, 0, 0, "TokenError: "+err.Error(), "")
		return
	}
	fc.report(diag.IOError, lexErr.Pos.Row, lexErr.Pos.Col, "TokenError: "+lexErr.Err.Error(), lexErr.Line)
}

func (fc *FileChecker) runTreeChecks() {
	tree, err := fc.proc.BuildAST()
	if err != nil {
		var se *parser.SyntaxError
		if errors.As(err, &se) {
			fc.report(diag.SyntaxError, se.Pos.Row, se.Pos.Col, "SyntaxError: "+se.Msg, se.Line)
		} else {
			fc.report(diag.SyntaxError, 1, 0, "SyntaxError: "+err.Error(), "")
		}
		return
	}
	if len(fc.tree) == 0 {
		return
	}
	span := trace.Begin(fc.tracer, trace.ScopePhase, "tree-checks", 0)
	defer span.End("")
	for _, c := range fc.tree {
		fc.proc.UpdateCheckerStateFor(c.Name, c.Parameters)
		args := fc.proc.KeywordArgumentsFor(c.Parameters, processor.Args{ArgTree: tree})
		for _, r := range c.Run(args) {
			fc.report(diag.Code(r.Code), r.Line, r.Column, r.Text, "")
		}
	}
}

// PhysicalLine runs the physical-line checks; reported codes may update
// processor state through CheckPhysicalError.
func (fc *FileChecker) PhysicalLine(line string) {
	for _, c := range fc.physical {
		fc.proc.UpdateCheckerStateFor(c.Name, c.Parameters)
		args := fc.proc.KeywordArgumentsFor(c.Parameters, processor.Args{ArgPhysicalLine: line})
		for _, r := range c.Run(args) {
			fc.report(diag.Code(r.Code), fc.proc.LineNumber, r.Column, r.Text, line)
			fc.proc.CheckPhysicalError(r.Code, line)
		}
	}
}

// LogicalLine runs the logical-line checks, mapping offsets back to the source.
func (fc *FileChecker) LogicalLine(line processor.LogicalLine) {
	for _, c := range fc.logical {
		fc.proc.UpdateCheckerStateFor(c.Name, c.Parameters)
		args := fc.proc.KeywordArgumentsFor(c.Parameters, processor.Args{processor.ParamLogicalLine: line.Text})
		for _, r := range c.Run(args) {
			if r.Line > 0 {
				fc.report(diag.Code(r.Code), r.Line, r.Column, r.Text, "")
				continue
			}
			pos, ok := line.Mapping.Find(r.Column)
			if !ok {
				trace.Point(fc.tracer, trace.ScopePhase, "out-of-bounds",
					fmt.Sprintf("%s: offset %d past logical line of %d bytes", c.Name, r.Column, len(line.Text)))
			}
			fc.report(diag.Code(r.Code), pos.Row, pos.Col, r.Text, "")
		}
	}
}

// report: physical пустая - берём строку из файла
func (fc *FileChecker) report(code diag.Code, row, col int, text, physical string) {
	if physical == "" {
		physical = fc.proc.LineFor(row)
	}
	diag.NewReportBuilder(fc.reporter, diag.SeverityOf(code), code, fc.proc.Filename, row, col, text).
		WithPhysicalLine(physical).
		Emit()
}

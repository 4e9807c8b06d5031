package diag

// Reporter: минимальный контракт получения диагностик от фаз.
// Реализация: BagReporter (кладёт в Bag).
type Reporter interface {
	Report(d Diagnostic)
}

// ReportBuilder accumulates diagnostic details before emitting to Reporter.
type ReportBuilder struct {
	reporter Reporter
	diag     Diagnostic
	emitted  bool
}

// NewReportBuilder constructs a builder bound to Reporter.
func NewReportBuilder(r Reporter, sev Severity, code Code, filename string, line, col int, msg string) *ReportBuilder {
	return &ReportBuilder{
		reporter: r,
		diag: Diagnostic{
			Severity: sev,
			Code:     code,
			Message:  msg,
			Filename: filename,
			Line:     line,
			Column:   col,
		},
	}
}

// ReportError is a shortcut for SevError diagnostics.
func ReportError(r Reporter, code Code, filename string, line, col int, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevError, code, filename, line, col, msg)
}

// ReportWarning is a shortcut for SevWarning diagnostics.
func ReportWarning(r Reporter, code Code, filename string, line, col int, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevWarning, code, filename, line, col, msg)
}

// WithPhysicalLine attaches the source line used for show-source output.
func (b *ReportBuilder) WithPhysicalLine(line string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag.PhysicalLine = line
	return b
}

// Emit sends diagnostic to underlying reporter exactly once.
func (b *ReportBuilder) Emit() {
	if b == nil || b.emitted {
		return
	}
	if b.reporter != nil {
		b.reporter.Report(b.diag)
	}
	b.emitted = true
}

// Diagnostic returns accumulated diagnostic without emitting.
func (b *ReportBuilder) Diagnostic() Diagnostic {
	if b == nil {
		return Diagnostic{}
	}
	return b.diag
}

// BagReporter: адаптер, который пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(d)
}

package driver

import (
	"context"
	"fmt"
	"runtime"
	"runtime/debug"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"flint/internal/checker"
	"flint/internal/diag"
	"flint/internal/observ"
	"flint/internal/processor"
	"flint/internal/project"
	"flint/internal/trace"
	"flint/internal/version"
)

// Options configures a Manager.
type Options struct {
	Jobs      int // 0 - GOMAXPROCS
	Processor processor.Options
	Cache     *DiskCache    // nil - без кэша
	Progress  ProgressSink  // nil - без событий
	Timer     *observ.Timer // nil - без замеров
}

// Manager checks many files in parallel. Every file gets its own
// FileProcessor on one worker goroutine; results come back in input order.
type Manager struct {
	reg     *checker.Registry
	opts    Options
	optsKey project.Digest
}

// PanicError is returned when a check panics while a file is processed.
type PanicError struct {
	Path  string
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("check %s: panic: %v", e.Path, e.Value)
}

// Unwrap exposes a panic value that is itself an error, such as
// *processor.UnknownParameterError.
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

func NewManager(reg *checker.Registry, opts Options) *Manager {
	if opts.Jobs <= 0 {
		opts.Jobs = runtime.GOMAXPROCS(0)
	}
	p := opts.Processor
	parts := []string{
		version.Version,
		strconv.Itoa(p.MaxLineLength),
		strconv.Itoa(p.MaxDocLength),
		strconv.FormatBool(p.HangClosing),
		strconv.Itoa(p.IndentSize),
		strconv.Itoa(p.Verbose),
	}
	parts = append(parts, reg.Names()...)
	return &Manager{reg: reg, opts: opts, optsKey: project.HashStrings(parts...)}
}

// Run checks files and returns one result per file in the same order.
// A panicking check aborts the run with *PanicError; cancellation of ctx
// aborts it with ctx's error.
func (m *Manager) Run(ctx context.Context, files []string) ([]checker.FileResult, error) {
	results := make([]checker.FileResult, len(files))
	if len(files) == 0 {
		return results, nil
	}
	for _, path := range files {
		emit(m.opts.Progress, Event{File: path, Status: StatusQueued})
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(m.opts.Jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			res, err := m.checkOne(gctx, path)
			if err != nil {
				emit(m.opts.Progress, Event{File: path, Stage: StageCheck, Status: StatusError, Err: err})
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func (m *Manager) checkOne(ctx context.Context, path string) (res checker.FileResult, err error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeFile, "file", trace.SpanFromContext(ctx)).WithExtra("path", path)
	ctx = trace.WithSpan(ctx, span.ID())
	started := time.Now()
	stage := StageCheck
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Path: path, Value: r, Stack: debug.Stack()}
			span.End("panic")
			return
		}
		span.WithExtra("findings", strconv.Itoa(len(res.Diagnostics))).End(string(stage))
		emit(m.opts.Progress, Event{
			File: path, Stage: stage, Status: StatusDone,
			Findings: len(res.Diagnostics), Elapsed: time.Since(started),
		})
	}()

	emit(m.opts.Progress, Event{File: path, Stage: StageRead, Status: StatusWorking})
	opts := m.opts.Processor
	opts.Tracer = tracer
	readStart := time.Now()
	proc, err := processor.New(path, opts)
	m.addTiming("read", time.Since(readStart))
	if err != nil {
		name := path
		if processor.IsStdinName(path) {
			name = "stdin"
		}
		stage = StageRead
		return checker.ReadFailure(name, err), nil
	}

	key, cacheable := m.cacheKey(path, proc)
	if cacheable {
		var payload DiskPayload
		hit, cerr := m.opts.Cache.Get(key, &payload)
		if cerr != nil {
			trace.Point(tracer, trace.ScopeFile, "cache-miss", cerr.Error())
		}
		if hit {
			stage = StageCache
			return payload.result(proc.Filename), nil
		}
	}

	emit(m.opts.Progress, Event{File: path, Stage: StageCheck, Status: StatusWorking})
	checkStart := time.Now()
	res = checker.CheckFile(ctx, m.reg, proc)
	m.addTiming("check", time.Since(checkStart))

	if cacheable {
		if perr := m.opts.Cache.Put(key, payloadFromResult(res)); perr != nil {
			trace.Point(tracer, trace.ScopeFile, "cache-put", perr.Error())
		}
	}
	return res, nil
}

// cacheKey: содержимое, настройки и имя файла (проверки видят filename).
// stdin не кэшируется
func (m *Manager) cacheKey(path string, proc *processor.FileProcessor) (project.Digest, bool) {
	if m.opts.Cache == nil || processor.IsStdinName(path) {
		return project.Digest{}, false
	}
	return project.Combine(project.Digest(proc.File.Hash), m.optsKey, project.HashStrings(proc.Filename)), true
}

func (m *Manager) addTiming(name string, d time.Duration) {
	if m.opts.Timer != nil {
		m.opts.Timer.Add(name, d)
	}
}

// Summary aggregates a run.
type Summary struct {
	Files        int
	Skipped      int
	LogicalLines int
	Tokens       int
	Findings     int
	Errors       int // E902 / E999
}

// Summarize totals results.
func Summarize(results []checker.FileResult) Summary {
	var s Summary
	for _, r := range results {
		s.Files++
		if r.Skipped {
			s.Skipped++
		}
		s.LogicalLines += r.Statistics.LogicalLines
		s.Tokens += r.Statistics.Tokens
		s.Findings += len(r.Diagnostics)
		for _, d := range r.Diagnostics {
			if d.Severity == diag.SevError {
				s.Errors++
			}
		}
	}
	return s
}

// Package trace is flint's levelled event log.
//
// flint has no logging library: everything worth recording while checking
// files is a trace event. Events are emitted at one of four scopes and kept
// or dropped by the configured level:
//
//	off     nothing
//	error   ring buffer only, dumped when a run fails
//	phase   run and per-file spans
//	detail  + per-file phases (tokenize, logical lines, ast, checks)
//	debug   + every token and logical line
//
// Usage:
//
//	flint check --trace=- --trace-level=detail src/
//
// The tracer travels through context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, path, 0)
//	defer span.End("")
package trace

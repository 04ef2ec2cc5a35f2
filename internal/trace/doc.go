// Package trace records what a tsdoc command is doing as nested spans:
// the command itself, its passes (load config, discover files, parse,
// report), each input file and each parsed comment.
//
// A Tracer travels in the context. Code that wants a span calls StartSpan
// and never checks whether tracing is on: a disabled tracer hands out inert
// spans.
//
//	ctx, span := trace.StartSpan(ctx, trace.ScopeFile, path)
//	defer span.End("")
//
// The level decides how deep the record goes: LevelPhase keeps commands and
// passes, LevelDetail adds files, LevelDebug adds comments. LevelError
// streams nothing and keeps file-level events in memory so a failing run can
// print what it was doing.
//
// Sinks: StreamTracer writes each event as it happens (text or NDJSON),
// RingTracer keeps the last N events, MultiTracer feeds both.
package trace

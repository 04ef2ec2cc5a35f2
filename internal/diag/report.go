package diag

import (
	"fmt"

	"tsdoc/internal/source"
)

// Reporter receives diagnostics from the scanner, lexer, parser and config
// loader. A nil Reporter is valid for the helpers below and drops everything.
type Reporter interface {
	Report(d Diagnostic)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(d Diagnostic)

func (f ReporterFunc) Report(d Diagnostic) { f(d) }

// LogReporter appends to Log; a nil Log drops everything.
type LogReporter struct{ Log *Log }

func (r LogReporter) Report(d Diagnostic) {
	if r.Log != nil {
		r.Log.Add(d)
	}
}

// NopReporter drops everything.
type NopReporter struct{}

func (NopReporter) Report(Diagnostic) {}

// Emit sends d to rep unless rep is nil.
func Emit(rep Reporter, d Diagnostic) {
	if rep != nil {
		rep.Report(d)
	}
}

// Errorf reports a formatted SevError diagnostic at r.
func Errorf(rep Reporter, code Code, r source.TextRange, format string, args ...any) {
	Emit(rep, NewError(code, r, fmt.Sprintf(format, args...)))
}

// Warnf reports a formatted SevWarning diagnostic at r.
func Warnf(rep Reporter, code Code, r source.TextRange, format string, args ...any) {
	Emit(rep, NewWarning(code, r, fmt.Sprintf(format, args...)))
}

type dedupKey struct {
	code    Code
	sev     Severity
	primary source.TextRange
	msg     string
}

// Dedup forwards each distinct (code, severity, range, message) once.
// Config files reached through two extends chains would otherwise report
// the same problem twice.
func Dedup(next Reporter) Reporter {
	seen := make(map[dedupKey]bool)
	return ReporterFunc(func(d Diagnostic) {
		key := dedupKey{code: d.Code, sev: d.Severity, primary: d.Primary, msg: d.Message}
		if seen[key] {
			return
		}
		seen[key] = true
		Emit(next, d)
	})
}

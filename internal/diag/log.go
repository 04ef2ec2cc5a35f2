package diag

// Log is the append-only, ordered list of diagnostics produced by one parse
// (or one config load). Order is emission order; it is never re-sorted.
type Log struct {
	items []Diagnostic
	max   int
}

// NewLog creates a Log that keeps at most max entries (0 = unlimited).
func NewLog(max int) *Log {
	return &Log{max: max}
}

// Add appends a diagnostic, honouring the limit.
// Возвращает false, если достигнут лимит.
func (l *Log) Add(d Diagnostic) bool {
	if l.max > 0 && len(l.items) >= l.max {
		return false
	}
	l.items = append(l.items, d)
	return true
}

// HasErrors reports whether any entry has Severity >= Error.
func (l *Log) HasErrors() bool {
	for i := range l.items {
		if l.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

// HasWarnings reports whether any entry has Severity >= Warning.
func (l *Log) HasWarnings() bool {
	for i := range l.items {
		if l.items[i].Severity >= SevWarning {
			return true
		}
	}
	return false
}

// длина
func (l *Log) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// Items returns the entries in emission order.
// ВАЖНО: срез указывает на внутренний массив, не модифицируйте его.
func (l *Log) Items() []Diagnostic {
	if l == nil {
		return nil
	}
	return l.items
}

// Count returns how many entries carry the given code.
func (l *Log) Count(code Code) int {
	n := 0
	for i := range l.items {
		if l.items[i].Code == code {
			n++
		}
	}
	return n
}

// Filter returns the entries carrying the given code.
func (l *Log) Filter(code Code) []Diagnostic {
	var out []Diagnostic
	for _, d := range l.items {
		if d.Code == code {
			out = append(out, d)
		}
	}
	return out
}

// Merge appends every entry of other, growing the limit if needed.
func (l *Log) Merge(other *Log) {
	if other == nil {
		return
	}
	if l.max > 0 && len(l.items)+len(other.items) > l.max {
		l.max = len(l.items) + len(other.items)
	}
	l.items = append(l.items, other.items...)
}

// Escalate raises every entry with the given code to sev. Used by consumers
// that opt into strict handling.
func (l *Log) Escalate(code Code, sev Severity) {
	for i := range l.items {
		if l.items[i].Code == code && l.items[i].Severity < sev {
			l.items[i].Severity = sev
		}
	}
}

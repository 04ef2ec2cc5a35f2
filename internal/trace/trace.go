package trace

import (
	"fmt"
	"strings"
	"time"
)

// Tracer receives events. Implementations must be safe for concurrent use:
// files are parsed on several goroutines at once.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	// Enabled is Level() > LevelOff.
	Enabled() bool
}

// Level controls how much is recorded.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // только кольцевой буфер, печатается при ошибке
	LevelPhase        // commands and passes
	LevelDetail       // + files
	LevelDebug        // + comments
)

// Scope is the granularity of an event; larger values are finer.
type Scope uint8

const (
	ScopeDriver  Scope = iota + 1 // one CLI command
	ScopePass                     // load config, discover files, parse, report
	ScopeFile                     // one input file
	ScopeComment                  // one doc comment
)

// Kind is the type of an event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint     // instant event
	KindHeartbeat // periodic liveness signal
)

var (
	levelNames = []string{LevelOff: "off", LevelError: "error", LevelPhase: "phase", LevelDetail: "detail", LevelDebug: "debug"}
	scopeNames = []string{ScopeDriver: "driver", ScopePass: "pass", ScopeFile: "file", ScopeComment: "comment"}
	kindNames  = []string{KindSpanBegin: "begin", KindSpanEnd: "end", KindPoint: "point", KindHeartbeat: "heartbeat"}

	// ceilings is the finest scope each level streams.
	ceilings = []Scope{LevelPhase: ScopePass, LevelDetail: ScopeFile, LevelDebug: ScopeComment}
)

func nameOf(names []string, i int) string {
	if i >= 0 && i < len(names) && names[i] != "" {
		return names[i]
	}
	return "unknown"
}

func lookupName(names []string, s string) (int, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range names {
		if name != "" && name == s {
			return i, true
		}
	}
	return 0, false
}

func (l Level) String() string { return nameOf(levelNames, int(l)) }
func (s Scope) String() string { return nameOf(scopeNames, int(s)) }
func (k Kind) String() string  { return nameOf(kindNames, int(k)) }

// ParseLevel accepts the Level names, case-insensitively.
func ParseLevel(s string) (Level, error) {
	i, ok := lookupName(levelNames, s)
	if !ok {
		return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames, "|"))
	}
	return Level(i), nil
}

// ShouldEmit reports whether a stream at this level writes events of scope.
func (l Level) ShouldEmit(scope Scope) bool {
	return int(l) < len(ceilings) && scope <= ceilings[l]
}

// Event is one trace record.
type Event struct {
	Time     time.Time
	Seq      uint64 // assigned by the sink that stores the event
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for a root span
	GID      int64  // goroutine of the span
	Name     string // e.g. "parse", "src/a.ts"
	Detail   string
	Extra    map[string]string
}

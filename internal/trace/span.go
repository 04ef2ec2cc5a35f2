package trace

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/petermattis/goid"
)

var (
	globalSpans atomic.Uint64
	openSpans   atomic.Int64
)

// OpenSpans returns the number of recorded spans that have not ended yet.
func OpenSpans() int64 { return openSpans.Load() }

// Span tracks one operation from Begin to End. The zero value and nil are
// inert.
type Span struct {
	tracer   Tracer
	id       uint64
	parentID uint64
	gid      int64
	scope    Scope
	name     string
	started  time.Time
	extra    map[string]string
	ended    atomic.Bool
}

func (s *Span) live() bool {
	return s != nil && s.tracer != nil && s.id != 0
}

// Begin starts a span under parent (0 for a root) and emits its begin
// event. Spans the tracer would drop are inert, except that LevelError keeps
// them for the ring buffer.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if t == nil || !t.Enabled() {
		return &Span{}
	}
	if lvl := t.Level(); lvl != LevelError && !lvl.ShouldEmit(scope) {
		return &Span{}
	}

	s := &Span{
		tracer:   t,
		id:       globalSpans.Add(1),
		parentID: parent,
		gid:      goid.Get(),
		scope:    scope,
		name:     name,
		started:  time.Now(),
	}
	openSpans.Add(1)
	t.Emit(s.event(KindSpanBegin, s.started, ""))
	return s
}

func (s *Span) event(kind Kind, at time.Time, detail string) *Event {
	return &Event{
		Time:     at,
		Kind:     kind,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parentID,
		GID:      s.gid,
		Name:     s.name,
		Detail:   detail,
	}
}

// End emits the end event with detail and returns the span duration. Only
// the first call has an effect.
func (s *Span) End(detail string) time.Duration {
	if !s.live() || !s.ended.CompareAndSwap(false, true) {
		return 0
	}
	openSpans.Add(-1)
	now := time.Now()
	ev := s.event(KindSpanEnd, now, detail)
	ev.Extra = s.extra
	s.tracer.Emit(ev)
	return now.Sub(s.started)
}

// WithExtra attaches a key-value pair to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if !s.live() {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string, 2)
	}
	s.extra[key] = value
	return s
}

// ID returns the span ID; 0 for an inert span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Point emits an instant event under parent.
func Point(t Tracer, scope Scope, name, detail string, parent uint64) {
	if t == nil || !t.Enabled() {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: parent,
		GID:      goid.Get(),
		Name:     name,
		Detail:   detail,
	})
}

type (
	tracerKey struct{}
	spanKey   struct{}
)

// WithTracer attaches t to ctx; nil means Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// FromContext returns the tracer of ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx != nil {
		if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
			return t
		}
	}
	return Nop
}

// CurrentSpanID returns the span stored by StartSpan, or 0.
func CurrentSpanID(ctx context.Context) uint64 {
	if ctx == nil {
		return 0
	}
	id, _ := ctx.Value(spanKey{}).(uint64)
	return id
}

// StartSpan begins a span under the span of ctx. The returned context
// carries the new span unless it is inert.
func StartSpan(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	s := Begin(FromContext(ctx), scope, name, CurrentSpanID(ctx))
	if s.ID() == 0 {
		return ctx, s
	}
	return context.WithValue(ctx, spanKey{}, s.ID()), s
}

package trace

import (
	"bufio"
	"errors"
	"io"
	"sync"
)

// Nop drops everything.
var Nop Tracer = nopTracer{}

type nopTracer struct{}

func (nopTracer) Emit(*Event)   {}
func (nopTracer) Flush() error  { return nil }
func (nopTracer) Close() error  { return nil }
func (nopTracer) Level() Level  { return LevelOff }
func (nopTracer) Enabled() bool { return false }

// StreamTracer writes events to w as they arrive.
type StreamTracer struct {
	mu     sync.Mutex
	bw     *bufio.Writer
	closer io.Closer // nil when w is not ours to close
	level  Level
	format Format
	seq    uint64
	err    error // первая ошибка записи
}

// NewStreamTracer writes events of the given level to w. FormatAuto means
// text.
func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	if format == FormatAuto {
		format = FormatText
	}
	return &StreamTracer{bw: bufio.NewWriter(w), level: level, format: format}
}

func (s *StreamTracer) Emit(ev *Event) {
	if ev == nil || (ev.Kind != KindHeartbeat && !s.level.ShouldEmit(ev.Scope)) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	ev.Seq = s.seq
	// событие сбрасывается сразу, без ожидания Flush
	err := writeEvent(s.bw, ev, s.format)
	if err == nil {
		err = s.bw.Flush()
	}
	if err != nil && s.err == nil {
		s.err = err
	}
}

func (s *StreamTracer) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return errors.Join(s.err, s.bw.Flush())
}

func (s *StreamTracer) Close() error {
	err := s.Flush()
	if s.closer != nil {
		err = errors.Join(err, s.closer.Close())
	}
	return err
}

func (s *StreamTracer) Level() Level  { return s.level }
func (s *StreamTracer) Enabled() bool { return s.level > LevelOff }

// RingTracer keeps the most recent events in a fixed-size buffer.
type RingTracer struct {
	mu    sync.Mutex
	buf   []Event
	next  int // slot for the next event
	full  bool
	level Level
	seq   uint64
}

// NewRingTracer keeps up to capacity events (at least 1).
func NewRingTracer(capacity int, level Level) *RingTracer {
	return &RingTracer{buf: make([]Event, max(capacity, 1)), level: level}
}

// keeps reports whether the ring stores ev. LevelError keeps everything down
// to files so the failure dump names the file being parsed.
func (r *RingTracer) keeps(ev *Event) bool {
	switch {
	case ev.Kind == KindHeartbeat:
		return true
	case r.level == LevelError:
		return ev.Scope <= ScopeFile
	default:
		return r.level.ShouldEmit(ev.Scope)
	}
}

func (r *RingTracer) Emit(ev *Event) {
	if ev == nil || !r.keeps(ev) {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	stored := *ev
	stored.Seq = r.seq
	r.buf[r.next] = stored
	r.next++
	if r.next == len(r.buf) {
		r.next = 0
		r.full = true
	}
}

// Snapshot returns the stored events, oldest first.
func (r *RingTracer) Snapshot() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.full {
		return append([]Event(nil), r.buf[:r.next]...)
	}
	out := make([]Event, 0, len(r.buf))
	out = append(out, r.buf[r.next:]...)
	return append(out, r.buf[:r.next]...)
}

// Dump writes the stored events to w, oldest first.
func (r *RingTracer) Dump(w io.Writer, format Format) error {
	if format == FormatAuto {
		format = FormatText
	}
	bw := bufio.NewWriter(w)
	for _, ev := range r.Snapshot() {
		if err := writeEvent(bw, &ev, format); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func (r *RingTracer) Flush() error  { return nil }
func (r *RingTracer) Close() error  { return nil }
func (r *RingTracer) Level() Level  { return r.level }
func (r *RingTracer) Enabled() bool { return r.level > LevelOff }

// MultiTracer fans events out to several tracers.
type MultiTracer struct {
	tracers []Tracer
	level   Level
}

// NewMultiTracer combines tracers; its level is the most verbose of theirs.
func NewMultiTracer(tracers ...Tracer) *MultiTracer {
	m := &MultiTracer{tracers: tracers}
	for _, t := range tracers {
		m.level = max(m.level, t.Level())
	}
	return m
}

func (m *MultiTracer) Emit(ev *Event) {
	for _, t := range m.tracers {
		// каждому своя копия: sinks проставляют свой Seq
		cp := *ev
		t.Emit(&cp)
	}
}

func (m *MultiTracer) Flush() error {
	var errs []error
	for _, t := range m.tracers {
		errs = append(errs, t.Flush())
	}
	return errors.Join(errs...)
}

func (m *MultiTracer) Close() error {
	var errs []error
	for _, t := range m.tracers {
		errs = append(errs, t.Close())
	}
	return errors.Join(errs...)
}

func (m *MultiTracer) Level() Level  { return m.level }
func (m *MultiTracer) Enabled() bool { return m.level > LevelOff }

// Ring returns the first RingTracer among the combined tracers.
func (m *MultiTracer) Ring() (*RingTracer, bool) {
	for _, t := range m.tracers {
		if r, ok := t.(*RingTracer); ok {
			return r, true
		}
	}
	return nil, false
}

// RingOf returns the ring buffer behind t, or nil when t keeps none.
func RingOf(t Tracer) *RingTracer {
	switch t := t.(type) {
	case *RingTracer:
		return t
	case *MultiTracer:
		r, _ := t.Ring()
		return r
	}
	return nil
}

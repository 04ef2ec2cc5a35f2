package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestLevelFiltersScopes(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)

	ctx := WithTracer(context.Background(), tr)
	ctx, pass := StartSpan(ctx, ScopePass, "parse")
	fctx, file := StartSpan(ctx, ScopeFile, "file:a.ts")
	_, comment := StartSpan(fctx, ScopeComment, "comment:1")
	comment.End("")
	file.End("2 comments")
	pass.End("")

	out := buf.String()
	if !strings.Contains(out, "→ parse") || !strings.Contains(out, "← file:a.ts (2 comments)") {
		t.Fatalf("missing pass or file events:\n%s", out)
	}
	if strings.Contains(out, "comment:1") {
		t.Fatalf("comment scope must be filtered at detail level:\n%s", out)
	}
	if comment.ID() != 0 {
		t.Fatalf("filtered span must be inert")
	}
}

func TestStreamWritesEachEventImmediately(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelError, FormatText)
	tr.Emit(&Event{Time: time.Now(), Kind: KindHeartbeat, Scope: ScopeDriver, Name: "heartbeat", Detail: "#1, 2 open spans"})

	// без Flush: зависший прогон тоже должен быть виден
	if out := buf.String(); !strings.Contains(out, "heartbeat (#1, 2 open spans)") {
		t.Fatalf("heartbeat not written before Flush: %q", out)
	}
	if err := tr.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestStartSpanPropagatesParent(t *testing.T) {
	ring := NewRingTracer(16, LevelDebug)
	ctx := WithTracer(context.Background(), ring)
	ctx, outer := StartSpan(ctx, ScopeDriver, "lint")
	_, inner := StartSpan(ctx, ScopePass, "parse")
	inner.WithExtra("files", "3").End("")
	outer.End("")

	events := ring.Snapshot()
	if len(events) != 4 {
		t.Fatalf("expected 4 events, got %d", len(events))
	}
	if events[1].ParentID != outer.ID() {
		t.Fatalf("inner parent %d, want %d", events[1].ParentID, outer.ID())
	}
	if events[2].Extra["files"] != "3" {
		t.Fatalf("extra lost: %+v", events[2])
	}
	for i := 1; i < len(events); i++ {
		if events[i].Seq <= events[i-1].Seq {
			t.Fatalf("sequence not monotonic: %d then %d", events[i-1].Seq, events[i].Seq)
		}
	}
}

func TestRingWrapsAround(t *testing.T) {
	ring := NewRingTracer(3, LevelPhase)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(ring, ScopePass, name, "", 0)
	}
	var names []string
	for _, ev := range ring.Snapshot() {
		names = append(names, ev.Name)
	}
	if strings.Join(names, "") != "cde" {
		t.Fatalf("unexpected ring content %v", names)
	}
}

func TestErrorLevelRingKeepsFileEvents(t *testing.T) {
	ring := NewRingTracer(8, LevelError)
	Begin(ring, ScopeFile, "file:a.ts", 0).End("")
	Begin(ring, ScopeComment, "comment", 0).End("")
	if got := len(ring.Snapshot()); got != 2 {
		t.Fatalf("expected only the file span, got %d events", got)
	}
}

func TestNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeStream, Output: &buf, Format: FormatNDJSON})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	Begin(tr, ScopeDriver, "gen-config", 0).End("ok")
	if err := tr.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	var ev struct {
		Kind   string `json:"kind"`
		Scope  string `json:"scope"`
		Name   string `json:"name"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal([]byte(lines[1]), &ev); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if ev.Kind != "end" || ev.Scope != "driver" || ev.Name != "gen-config" || ev.Detail != "ok" {
		t.Fatalf("unexpected event %+v", ev)
	}
}

func TestParseHelpers(t *testing.T) {
	if l, err := ParseLevel("DETAIL"); err != nil || l != LevelDetail {
		t.Fatalf("ParseLevel: %v %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
	if f, err := ParseFormat("ndjson"); err != nil || f != FormatNDJSON {
		t.Fatalf("ParseFormat: %v %v", f, err)
	}
	if tr, err := New(Config{Level: LevelOff}); err != nil || tr.Enabled() {
		t.Fatalf("LevelOff must give the nop tracer")
	}
}

func TestHeartbeatReportsOpenSpans(t *testing.T) {
	ring := NewRingTracer(64, LevelPhase)
	span := Begin(ring, ScopePass, "parse", 0)
	hb := StartHeartbeat(ring, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	hb.Stop()
	span.End("")

	var beats int
	for _, ev := range ring.Snapshot() {
		if ev.Kind == KindHeartbeat {
			beats++
			if !strings.Contains(ev.Detail, "open spans") {
				t.Fatalf("unexpected heartbeat detail %q", ev.Detail)
			}
		}
	}
	if beats == 0 {
		t.Fatalf("no heartbeat recorded")
	}
	if StartHeartbeat(Nop, time.Millisecond) != nil {
		t.Fatalf("a disabled tracer must not start a heartbeat")
	}
}

func TestRingOf(t *testing.T) {
	ring := NewRingTracer(4, LevelPhase)
	multi := NewMultiTracer(NewStreamTracer(&bytes.Buffer{}, LevelPhase, FormatText), ring)
	if RingOf(multi) != ring || RingOf(ring) != ring || RingOf(Nop) != nil {
		t.Fatalf("RingOf did not find the ring buffer")
	}
}

package observ

import (
	"strings"
	"testing"
	"time"
)

func fakeClock(step time.Duration) func() time.Time {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(2 * time.Millisecond)

	load := tm.Start("load-config")
	load.Stop("tsdoc.json")
	load.Stop("ignored")
	tm.Track("parse", func() string { return "3 files" })
	var missing *Phase
	missing.Stop("nil phases are ignored")

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(r.Phases))
	}
	if r.Phases[0].DurationMS != 2 || r.Phases[1].DurationMS != 2 || r.TotalMS != 4 {
		t.Fatalf("unexpected durations %+v", r)
	}
	sum := tm.Summary()
	for _, want := range []string{"load-config", "// tsdoc.json", "// 3 files", "total"} {
		if !strings.Contains(sum, want) {
			t.Fatalf("summary lacks %q:\n%s", want, sum)
		}
	}
}

func TestEmptyTimer(t *testing.T) {
	if r := NewTimer().Report(); len(r.Phases) != 0 || r.TotalMS != 0 {
		t.Fatalf("unexpected report %+v", r)
	}
}

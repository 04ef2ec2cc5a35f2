// Package observ measures the phases of a tsdoc run for --timings.
package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Timer collects named phases in the order they start. It is safe for
// concurrent use.
type Timer struct {
	mu     sync.Mutex
	phases []*Phase
	now    func() time.Time
}

// Phase is one running or finished measurement.
type Phase struct {
	timer *Timer
	name  string
	start time.Time
	dur   time.Duration
	note  string
	done  bool
}

func NewTimer() *Timer { return &Timer{now: time.Now} }

// Start opens a phase. Stop it once; later calls are ignored.
func (t *Timer) Start(name string) *Phase {
	t.mu.Lock()
	defer t.mu.Unlock()
	p := &Phase{timer: t, name: name, start: t.now()}
	t.phases = append(t.phases, p)
	return p
}

// Stop closes the phase with an optional note, e.g. "3 files".
func (p *Phase) Stop(note string) {
	if p == nil {
		return
	}
	t := p.timer
	t.mu.Lock()
	defer t.mu.Unlock()
	if p.done {
		return
	}
	p.done = true
	p.dur = t.now().Sub(p.start)
	p.note = note
}

// Track measures fn; the note is whatever fn returns.
func (t *Timer) Track(name string, fn func() string) {
	p := t.Start(name)
	p.Stop(fn())
}

// PhaseReport is the serializable form of a phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report snapshots the phases. Phases still running count as zero.
func (t *Timer) Report() Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	var r Report
	var total time.Duration
	for _, p := range t.phases {
		total += p.dur
		r.Phases = append(r.Phases, PhaseReport{Name: p.name, DurationMS: millis(p.dur), Note: p.note})
	}
	r.TotalMS = millis(total)
	return r
}

// Summary renders the report as the table printed by --timings.
func (t *Timer) Summary() string {
	r := t.Report()
	rows := append(r.Phases, PhaseReport{Name: "total", DurationMS: r.TotalMS})
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range rows {
		line := fmt.Sprintf("  %-20s %9.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			line += "  // " + p.Note
		}
		sb.WriteString(line + "\n")
	}
	return sb.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

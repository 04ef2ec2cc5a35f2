package trace

import (
	"fmt"
	"time"
)

// Heartbeat emits a point event every interval so a stalled run is visible
// in the stream: a long gap between beats means the process is stuck, the
// open span count says how many operations are in flight.
type Heartbeat struct {
	tracer Tracer
	stop   chan struct{}
	done   chan struct{}
}

// StartHeartbeat starts beating on t. It returns nil when t is disabled or
// interval is not positive; Stop on nil is a no-op.
func StartHeartbeat(t Tracer, interval time.Duration) *Heartbeat {
	if t == nil || !t.Enabled() || interval <= 0 {
		return nil
	}
	h := &Heartbeat{tracer: t, stop: make(chan struct{}), done: make(chan struct{})}
	go h.run(interval)
	return h
}

func (h *Heartbeat) run(interval time.Duration) {
	defer close(h.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for n := 1; ; n++ {
		select {
		case <-h.stop:
			return
		case now := <-ticker.C:
			h.tracer.Emit(&Event{
				Time:   now,
				Kind:   KindHeartbeat,
				Scope:  ScopeDriver,
				Name:   "heartbeat",
				Detail: fmt.Sprintf("#%d, %d open spans", n, OpenSpans()),
			})
		}
	}
}

// Stop ends the heartbeat and waits for its goroutine. Call it once.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	close(h.stop)
	<-h.done
}

package ui

import (
	"fmt"
	"strings"
	"testing"

	"tsdoc/internal/driver"
)

func newTestModel(files []string) *progressModel {
	return NewProgressModel("lint", files, make(chan driver.ProgressEvent)).(*progressModel)
}

func TestApplyEventUpdatesStatus(t *testing.T) {
	m := newTestModel([]string{"a.ts", "b.ts", "c.ts"})

	m.apply(driver.ProgressEvent{Path: "a.ts", Status: driver.StatusWorking})
	m.apply(driver.ProgressEvent{Path: "b.ts", Status: driver.StatusDone, Cached: true})
	m.apply(driver.ProgressEvent{Path: "c.ts", Status: driver.StatusError})
	m.apply(driver.ProgressEvent{Path: "unknown.ts", Status: driver.StatusDone})

	got := []fileState{m.rows[0].state, m.rows[1].state, m.rows[2].state}
	want := []fileState{stateParsing, stateCached, stateFailed}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("states = %v, want %v", got, want)
		}
	}

	if m.finished() != 2 || m.tally[stateFailed] != 1 || m.tally[stateQueued] != 0 {
		t.Fatalf("tally = %v", m.tally)
	}
	if f := m.fraction(); f < 0.83 || f > 0.84 {
		t.Fatalf("fraction = %v, want 2.5/3", f)
	}

	view := m.View()
	if !strings.Contains(view, "lint [2/3], 1 with errors") {
		t.Fatalf("unexpected header in view:\n%s", view)
	}
	for _, name := range []string{"a.ts", "b.ts", "c.ts"} {
		if !strings.Contains(view, name) {
			t.Fatalf("view lacks %s:\n%s", name, view)
		}
	}
}

func TestViewCollapsesLongLists(t *testing.T) {
	files := make([]string, 30)
	for i := range files {
		files[i] = fmt.Sprintf("src/file%02d.ts", i)
	}
	m := newTestModel(files)
	m.apply(driver.ProgressEvent{Path: "src/file07.ts", Status: driver.StatusError})
	m.apply(driver.ProgressEvent{Path: "src/file20.ts", Status: driver.StatusWorking})

	vis := m.visible()
	if len(vis) != 2 || vis[0].path != "src/file07.ts" || vis[1].path != "src/file20.ts" || vis[0].state.String() != "error" {
		t.Fatalf("visible = %+v", vis)
	}
	if view := m.View(); !strings.Contains(view, "28 more") {
		t.Fatalf("expected a collapsed counter:\n%s", view)
	}
}

func TestUpdateQuitsWhenEventsClose(t *testing.T) {
	m := newTestModel([]string{"a.ts"})
	model, cmd := m.Update(doneMsg{})
	if !model.(*progressModel).done {
		t.Fatalf("model must be done after doneMsg")
	}
	if cmd == nil {
		t.Fatalf("expected tea.Quit")
	}
	if !strings.HasPrefix(stripped(m.View()), "done: lint") {
		t.Fatalf("unexpected view:\n%s", m.View())
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdefghij", 6); got != "abc..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("abcdef", 2); got != "ab" {
		t.Fatalf("truncate = %q", got)
	}
}

// stripped убирает ANSI-последовательности из вывода lipgloss
func stripped(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'):
			inEsc = false
		case !inEsc:
			b.WriteRune(r)
		}
	}
	return b.String()
}

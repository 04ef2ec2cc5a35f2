// Package ui draws the interactive progress of `tsdoc lint` on a terminal.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"tsdoc/internal/driver"
)

// maxVisible ограничивает число строк с файлами; остальные сворачиваются в счётчик
const maxVisible = 12

// fileState is where a file is in the lint pipeline.
type fileState uint8

const (
	stateQueued fileState = iota
	stateParsing
	stateDone
	stateCached
	stateFailed
	numStates
)

var stateLabels = [numStates]string{"queued", "parsing", "done", "cached", "error"}

var stateStyles = [numStates]lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
}

func (s fileState) String() string { return stateLabels[s] }

// weight is the share of the file's work that is done in this state.
func (s fileState) weight() float64 {
	switch s {
	case stateQueued:
		return 0
	case stateParsing:
		return 0.5
	}
	return 1
}

func stateOf(ev driver.ProgressEvent) fileState {
	switch ev.Status {
	case driver.StatusWorking:
		return stateParsing
	case driver.StatusDone:
		if ev.Cached {
			return stateCached
		}
		return stateDone
	case driver.StatusError:
		return stateFailed
	}
	return stateQueued
}

type fileRow struct {
	path  string
	state fileState
}

type (
	eventMsg driver.ProgressEvent
	doneMsg  struct{}
)

type progressModel struct {
	title   string
	events  <-chan driver.ProgressEvent
	spinner spinner.Model
	bar     progress.Model

	rows   []fileRow
	byPath map[string]int
	tally  [numStates]int // файлов в каждом состоянии
	width  int
	done   bool
}

// NewProgressModel returns a Bubble Tea model that shows the state of each
// file being linted. It quits once events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.ProgressEvent) tea.Model {
	m := &progressModel{
		title:   title,
		events:  events,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(stateStyles[stateParsing])),
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(76)),
		rows:    make([]fileRow, len(files)),
		byPath:  make(map[string]int, len(files)),
		width:   80,
	}
	for i, path := range files {
		m.rows[i] = fileRow{path: path}
		m.byPath[path] = i
	}
	m.tally[stateQueued] = len(files)
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

// next waits for the following driver event.
func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return doneMsg{}
	}
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case eventMsg:
		cmd = tea.Batch(m.apply(driver.ProgressEvent(msg)), m.next())
	case doneMsg:
		m.done = true
		cmd = tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			cmd = tea.Quit
		}
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = msg.Width - 4
		}
	case spinner.TickMsg:
		if !m.done {
			m.spinner, cmd = m.spinner.Update(msg)
		}
	case progress.FrameMsg:
		var bar tea.Model
		bar, cmd = m.bar.Update(msg)
		m.bar = bar.(progress.Model)
	}
	return m, cmd
}

// apply moves a file to the state of ev and animates the bar.
func (m *progressModel) apply(ev driver.ProgressEvent) tea.Cmd {
	i, ok := m.byPath[ev.Path]
	if !ok {
		return nil
	}
	row := &m.rows[i]
	m.tally[row.state]--
	row.state = stateOf(ev)
	m.tally[row.state]++
	return m.bar.SetPercent(m.fraction())
}

func (m *progressModel) fraction() float64 {
	if len(m.rows) == 0 {
		return 1
	}
	var sum float64
	for s, n := range m.tally {
		sum += float64(n) * fileState(s).weight()
	}
	return sum / float64(len(m.rows))
}

func (m *progressModel) finished() int {
	return m.tally[stateDone] + m.tally[stateCached] + m.tally[stateFailed]
}

func (m *progressModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	header := fmt.Sprintf("%s [%d/%d]", m.title, m.finished(), len(m.rows))
	if n := m.tally[stateFailed]; n > 0 {
		header += fmt.Sprintf(", %d with errors", n)
	}
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(header) + "\n\n")

	shown := m.visible()
	nameWidth := max(m.width-12, 20)
	for _, row := range shown {
		label := stateStyles[row.state].Render(fmt.Sprintf("%8s", row.state))
		fmt.Fprintf(&b, "  %s %s\n", label, truncate(row.path, nameWidth))
	}
	if rest := len(m.rows) - len(shown); rest > 0 {
		fmt.Fprintf(&b, "  %8s %d more\n", "", rest)
	}

	bar := m.bar.View()
	if m.done {
		bar = m.bar.ViewAs(1)
	}
	b.WriteString("\n" + bar + "\n")
	return b.String()
}

// visible picks the rows to list. Short runs list every file; long ones
// list failures first, then files being parsed, up to maxVisible.
func (m *progressModel) visible() []fileRow {
	if len(m.rows) <= maxVisible {
		return m.rows
	}
	var out []fileRow
	for _, want := range []fileState{stateFailed, stateParsing} {
		for _, row := range m.rows {
			if len(out) == maxVisible {
				return out
			}
			if row.state == want {
				out = append(out, row)
			}
		}
	}
	return out
}

// truncate shortens value to width display cells, ending in "..." when
// there is room for it.
func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	tail := "..."
	if width <= len(tail) {
		tail = ""
	}
	return runewidth.Truncate(value, width, tail)
}

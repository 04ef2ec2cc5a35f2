package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"tsdoc/internal/driver"
	"tsdoc/internal/parser"
	"tsdoc/internal/source"
	"tsdoc/internal/ui"
)

type lintOutcome struct {
	fileSet *source.FileSet
	results []driver.FileResult
	err     error
}

// runLintWithUI runs driver.ParseDir while a progress model draws on stderr.
// Quitting the UI cancels the run.
func runLintWithUI(ctx context.Context, title string, files []string, dir string, p *parser.Parser, opts driver.Options) (*source.FileSet, []driver.FileResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan driver.ProgressEvent, 256)
	outcomeCh := make(chan lintOutcome, 1)

	go func() {
		o := opts
		o.Progress = func(ev driver.ProgressEvent) { events <- ev }
		fileSet, results, err := driver.ParseDir(ctx, dir, p, o)
		outcomeCh <- lintOutcome{fileSet: fileSet, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()

	// UI мог закрыться раньше: отменяем и вычитываем оставшиеся события
	cancel()
	go func() {
		for range events {
		}
	}()

	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}

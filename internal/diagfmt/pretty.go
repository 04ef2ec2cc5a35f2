package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/mitchellh/go-wordwrap"

	"tsdoc/internal/diag"
	"tsdoc/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info, note, gutter, path *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgGreen),
		gutter: color.New(color.FgBlue),
		path:   color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.gutter, p.path} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Для каждой диагностики печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по диапазону, затем Notes.
// Диагностики без расположения печатаются одной строкой.
func Pretty(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i, d := range diags {
		if i > 0 {
			fmt.Fprintln(w)
		}
		sev := p.severity(d.Severity)
		msg := wrapMessage(d.Message, opts.Width)

		file, start, end, located := locate(fs, d.Primary)
		if !located {
			fmt.Fprintf(w, "%s %s: %s\n", sev.Sprint(d.Severity.String()), d.Code.ID(), msg)
		} else {
			fmt.Fprintf(w, "%s: %s %s: %s\n",
				p.path.Sprintf("%s:%d:%d", formatPath(file, fs, opts.PathMode), start.Line, start.Col),
				sev.Sprint(d.Severity.String()), d.Code.ID(), msg)
			writeSnippet(w, p, sev, file, start, end, int(opts.Context))
		}

		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			nfile, nstart, _, ok := locate(fs, n.Range)
			if !ok {
				fmt.Fprintf(w, "  %s %s\n", p.note.Sprint("note:"), n.Msg)
				continue
			}
			fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", p.note.Sprint("note:"),
				formatPath(nfile, fs, opts.PathMode), nstart.Line, nstart.Col, n.Msg)
		}
	}
}

func locate(fs *source.FileSet, r source.TextRange) (*source.File, source.LineCol, source.LineCol, bool) {
	if fs == nil || r.IsZero() {
		return nil, source.LineCol{}, source.LineCol{}, false
	}
	file, ok := fs.FileOf(r)
	if !ok {
		return nil, source.LineCol{}, source.LineCol{}, false
	}
	start, end, ok := fs.Resolve(r)
	return file, start, end, ok
}

func wrapMessage(msg string, width uint8) string {
	if width == 0 || len(msg) <= int(width) {
		return msg
	}
	return strings.ReplaceAll(wordwrap.WrapString(msg, uint(width)), "\n", "\n    ")
}

// writeSnippet печатает строку диагностики с context строками выше и
// подчёркиванием. Многострочный диапазон подчёркивается до конца первой строки.
func writeSnippet(w io.Writer, p palette, sev *color.Color, file *source.File, start, end source.LineCol, context int) {
	first := max(int(start.Line)-max(context, 0), 1)
	gutterWidth := len(fmt.Sprint(start.Line))
	blank := p.gutter.Sprint(strings.Repeat(" ", gutterWidth) + " |")

	fmt.Fprintln(w, blank)
	for n := first; n <= int(start.Line); n++ {
		line := file.Line(uint32(n)) // #nosec G115 -- n is bounded by start.Line
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", gutterWidth, n), expandTabs(line))
	}

	line := file.Line(start.Line)
	from := int(start.Col) - 1
	to := len(line)
	if end.Line == start.Line {
		to = int(end.Col) - 1
	}
	from = min(max(from, 0), len(line))
	to = min(max(to, from), len(line))

	pad := runewidth.StringWidth(expandTabs(line[:from]))
	width := max(runewidth.StringWidth(expandTabs(line[from:to])), 1)
	marker := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, "%s %s%s\n", blank, strings.Repeat(" ", pad), sev.Sprint(marker))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

package diag

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"tsdoc/internal/source"
)

// goldenLine is one row of FormatGoldenDiagnostics output.
type goldenLine struct {
	label string // severity label or "note"
	code  string
	path  string
	pos   source.LineCol
	msg   string
}

func (g goldenLine) String() string {
	return fmt.Sprintf("%s %s %s:%d:%d %s", g.label, g.code, g.path, g.pos.Line, g.pos.Col, g.msg)
}

// FormatGoldenDiagnostics renders one line per diagnostic, sorted by
// location, with paths relative to the FileSet base directory:
//
//	warning DOC2001 src/a.ts:2:4 the tag "@bogus" is not defined
//
// Diagnostics and notes whose range is not in fs are left out. The output
// is stable across runs and is what `tsdoc lint --format short` prints.
func FormatGoldenDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil {
		return ""
	}
	var lines []goldenLine
	add := func(label string, code Code, r source.TextRange, msg string) {
		if line, ok := goldenAt(fs, r); ok {
			line.label, line.code, line.msg = label, code.ID(), flattenMessage(msg)
			lines = append(lines, line)
		}
	}
	for _, d := range diags {
		add(d.Severity.Label(), d.Code, d.Primary, d.Message)
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			add("note", d.Code, n.Range, n.Msg)
		}
	}

	slices.SortStableFunc(lines, func(a, b goldenLine) int {
		return cmp.Or(
			strings.Compare(a.path, b.path),
			cmp.Compare(a.pos.Line, b.pos.Line),
			cmp.Compare(a.pos.Col, b.pos.Col),
		)
	})

	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = line.String()
	}
	return strings.Join(out, "\n")
}

func goldenAt(fs *source.FileSet, r source.TextRange) (goldenLine, bool) {
	file, ok := fs.FileOf(r)
	if !ok {
		return goldenLine{}, false
	}
	start, _, ok := fs.Resolve(r)
	if !ok {
		return goldenLine{}, false
	}
	path := filepath.ToSlash(file.FormatPath("relative", fs.BaseDir()))
	for strings.HasPrefix(path, "./") {
		path = path[2:]
	}
	return goldenLine{path: path, pos: start}, true
}

// flattenMessage puts a multi-line message on one line.
func flattenMessage(msg string) string {
	return strings.TrimSpace(strings.Join(strings.Fields(strings.ReplaceAll(msg, "\r", "\n")), " "))
}

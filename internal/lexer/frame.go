package lexer

import (
	"strings"

	"tsdoc/internal/diag"
	"tsdoc/internal/source"
)

// Frame is the result of stripping comment delimiters from a range.
type Frame struct {
	// Range is the range that was framed.
	Range source.TextRange
	// Body lies between "/**" and "*/"; for bare text it equals Range.
	Body source.TextRange
	// Lines are the content lines, gutter and surrounding blanks removed.
	// Every line is a view into the original buffer.
	Lines []source.TextRange
	// Framed is false when the range did not start with a comment opener.
	Framed bool
}

// ExtractLines strips the "/**" opener, the "*/" closer and the leading
// "*" gutter of every line. Leading and trailing blank lines are dropped;
// horizontal whitespace around each line is excluded from its range.
//
// A range that does not start with "/*" is treated as bare doc text: every
// line is content and no gutter is removed.
func ExtractLines(r source.TextRange, opts Options) Frame {
	f := Frame{Range: r, Body: r}
	if r.IsEmpty() {
		report(opts, diag.CmtEmptyRange, diag.SevWarning, r, "the comment range is empty")
		return f
	}

	text := r.String()
	switch {
	case strings.HasPrefix(text, "/**") && !strings.HasPrefix(text, "/**/"):
		f.Framed = true
		f.Body = frameBody(r, 3, opts)
	case strings.HasPrefix(text, "/*"):
		// "/* ... */" и "/**/" — обычный блочный комментарий
		f.Framed = true
		report(opts, diag.CmtMissingOpenSlash, diag.SevWarning, r.Sub(0, 2),
			"expecting a leading \"/**\"; a plain block comment is not a doc comment")
		f.Body = frameBody(r, 2, opts)
	}

	f.Lines = splitLines(f.Body, f.Framed)
	return f
}

// frameBody returns the text between an opener of openLen bytes and the
// first "*/".
func frameBody(r source.TextRange, openLen int, opts Options) source.TextRange {
	text := r.String()
	start := r.Pos() + openLen
	idx := strings.Index(text[openLen:], "*/")
	if idx < 0 {
		report(opts, diag.CmtMissingClose, diag.SevError, r.Sub(0, openLen),
			"the doc comment is missing its closing \"*/\" delimiter")
		return r.Slice(start, r.End())
	}
	end := start + idx
	// хвост после "*/" внутри диапазона
	if tail := r.Slice(end+2, r.End()); strings.TrimSpace(tail.String()) != "" {
		report(opts, diag.CmtUnexpectedClose, diag.SevWarning, r.Slice(end, end+2),
			"the doc comment is closed before the end of the range; the remaining text is ignored")
	}
	return r.Slice(start, end)
}

func splitLines(body source.TextRange, framed bool) []source.TextRange {
	var lines []source.TextRange
	text := body.String()
	base := body.Pos()

	lineStart := 0
	for i := 0; i <= len(text); i++ {
		if i < len(text) && text[i] != '\n' {
			continue
		}
		lines = append(lines, trimLine(body, base+lineStart, base+i, framed && len(lines) > 0))
		lineStart = i + 1
	}

	// пустые строки в начале и в конце не нужны
	for len(lines) > 0 && lines[0].IsEmpty() {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1].IsEmpty() {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// trimLine excludes surrounding whitespace and, when gutter is set, a single
// leading '*'.
func trimLine(body source.TextRange, pos, end int, gutter bool) source.TextRange {
	isBlank := func(b byte) bool { return b == ' ' || b == '\t' || b == '\r' }

	for pos < end && isBlank(body.At(pos)) {
		pos++
	}
	if gutter && pos < end && body.At(pos) == '*' {
		pos++
		for pos < end && isBlank(body.At(pos)) {
			pos++
		}
	}
	for end > pos && isBlank(body.At(end-1)) {
		end--
	}
	return body.Slice(pos, end)
}

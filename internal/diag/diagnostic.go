package diag

import (
	"slices"
	"strings"

	"tsdoc/internal/source"
)

// Severity orders diagnostics: SevError fails lint, SevWarning is printed,
// SevInfo carries side data such as timings.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

var severityNames = [...]string{SevInfo: "info", SevWarning: "warning", SevError: "error"}

// Label is the lower-case name used in short and golden output.
func (s Severity) Label() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "unknown"
}

func (s Severity) String() string {
	return strings.ToUpper(s.Label())
}

type Note struct {
	Range source.TextRange
	Msg   string
}

// Diagnostic is one log message tied to the range it complains about.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.TextRange
	Notes    []Note
}

func New(sev Severity, code Code, primary source.TextRange, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Primary: primary, Message: msg}
}

func NewError(code Code, primary source.TextRange, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func NewWarning(code Code, primary source.TextRange, msg string) Diagnostic {
	return New(SevWarning, code, primary, msg)
}

// WithNote returns a copy of d with one more note.
func (d Diagnostic) WithNote(r source.TextRange, msg string) Diagnostic {
	d.Notes = append(slices.Clip(d.Notes), Note{Range: r, Msg: msg})
	return d
}

// String renders the message the way the demo prints it: "CODE: message".
func (d Diagnostic) String() string {
	return d.Code.ID() + ": " + d.Message
}

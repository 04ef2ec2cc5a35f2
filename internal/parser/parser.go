package parser

import (
	"tsdoc/internal/diag"
	"tsdoc/internal/doc"
	"tsdoc/internal/lexer"
	"tsdoc/internal/source"
	"tsdoc/internal/tags"
	"tsdoc/internal/token"
)

type Options struct {
	// MaxDiagnostics ограничивает размер Log одного разбора (0 — без ограничений)
	MaxDiagnostics int
}

// Parser parses doc comments against one tag registry. A Parser holds no
// per-parse state and may be used from many goroutines at once.
type Parser struct {
	reg  *tags.Registry
	opts Options
}

// Result is the outcome of one parse. The caller owns it.
type Result struct {
	Comment *doc.Comment
	Log     *diag.Log
	// Range is the parsed range; Lines are its content lines after framing.
	Range  source.TextRange
	Lines  []source.TextRange
	Tokens []token.Token
}

// New creates a parser for reg and seals it. A nil registry means the
// standard tag set.
func New(reg *tags.Registry) *Parser {
	return NewWithOptions(reg, Options{})
}

// NewWithOptions is New with explicit options.
func NewWithOptions(reg *tags.Registry, opts Options) *Parser {
	if reg == nil {
		reg = tags.NewRegistry(tags.Options{})
	}
	reg.Seal()
	return &Parser{reg: reg, opts: opts}
}

// Registry returns the sealed registry the parser was built with.
func (p *Parser) Registry() *tags.Registry { return p.reg }

// ParseRange parses one comment. Grammar problems are reported in
// Result.Log; an error is returned only for the zero range.
func (p *Parser) ParseRange(r source.TextRange) (*Result, error) {
	if r.IsZero() {
		return nil, source.ErrNilBuffer
	}

	log := diag.NewLog(p.opts.MaxDiagnostics)
	rep := diag.LogReporter{Log: log}

	frame := lexer.ExtractLines(r, lexer.Options{Reporter: rep})
	toks := lexer.Tokenize(frame)

	st := newState(p.reg, toks, rep)
	st.run()

	return &Result{
		Comment: st.comment,
		Log:     log,
		Range:   r,
		Lines:   frame.Lines,
		Tokens:  toks,
	}, nil
}

// ParseBuffer validates [pos, end) against buf and parses it.
func (p *Parser) ParseBuffer(buf *source.Buffer, pos, end int) (*Result, error) {
	r, err := source.NewRange(buf, pos, end)
	if err != nil {
		return nil, err
	}
	return p.ParseRange(r)
}

// ParseString parses a whole string as one comment.
func (p *Parser) ParseString(name, text string) (*Result, error) {
	return p.ParseRange(source.FromString(name, text))
}

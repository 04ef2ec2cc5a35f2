package token

import (
	"tsdoc/internal/source"
)

// Token represents a single doc-comment token with its location.
type Token struct {
	Kind  Kind
	Range source.TextRange
	Text  string
	// Line is the 0-based index of the content line the token belongs to.
	// A Newline token carries the index of the line it terminates.
	Line int
}

// IsSpace reports whether the token is a Spacing token.
func (t Token) IsSpace() bool { return t.Kind == Spacing }

// IsLineBoundary reports whether the token ends a line (Newline or EOF).
func (t Token) IsLineBoundary() bool {
	return t.Kind == Newline || t.Kind == EOF
}

// IsDelimiter reports whether the token has a structural meaning in
// doc syntax.
func (t Token) IsDelimiter() bool {
	switch t.Kind {
	case AtSign, LBrace, RBrace, Backtick, Backslash:
		return true
	default:
		return false
	}
}

// Is reports whether the token is a Punct with exactly the given text.
func (t Token) Is(punct string) bool {
	return t.Kind == Punct && t.Text == punct
}

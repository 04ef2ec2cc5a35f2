package comments

import (
	"tsdoc/internal/lexer"
	"tsdoc/internal/source"
)

// keywordKind says how a keyword is treated when looking for the declared
// name.
type keywordKind uint8

const (
	// notKeyword is an ordinary identifier.
	notKeyword keywordKind = iota
	// hardKeyword is always skipped.
	hardKeyword
	// softKeyword is skipped unless it is itself the member being declared,
	// as in "readonly override: T" or "get(): T".
	softKeyword
)

var keywords = map[string]keywordKind{
	"export": hardKeyword, "const": hardKeyword, "let": hardKeyword, "var": hardKeyword,
	"function": hardKeyword, "class": hardKeyword, "interface": hardKeyword,
	"enum": hardKeyword, "func": hardKeyword, "struct": hardKeyword,

	"default": softKeyword, "declare": softKeyword, "abstract": softKeyword,
	"public": softKeyword, "private": softKeyword, "protected": softKeyword,
	"static": softKeyword, "readonly": softKeyword, "async": softKeyword,
	"type": softKeyword, "namespace": softKeyword, "module": softKeyword,
	"get": softKeyword, "set": softKeyword, "final": softKeyword, "override": softKeyword,
}

// endsName reports whether b can follow a member name: "x:", "x(", "x?",
// "x=", "x;", "x<", "x!", "x,", "x)".
func endsName(b byte) bool {
	switch b {
	case ':', '(', '?', '=', ';', '<', '!', ',', ')':
		return true
	}
	return false
}

// owner scans forward from the cursor (without moving it) for the first
// identifier that is not a modifier. Whitespace and line comments are
// skipped; any other character ends the search.
func (sc *scanner) owner() source.TextRange {
	look := sc.cursor
	for !look.EOF() {
		b := look.Peek()
		switch {
		case b == ' ' || b == '\t' || b == '\n' || b == '\r':
			look.Bump()
		case b == '/':
			if _, b1, ok := look.Peek2(); ok && b1 == '/' {
				for !look.EOF() && look.Peek() != '\n' {
					look.Bump()
				}
				continue
			}
			return source.TextRange{}
		case isIdentStart(b):
			m := look.Mark()
			for !look.EOF() && isIdentPart(look.Peek()) {
				look.Bump()
			}
			word := look.RangeFrom(m)
			switch keywords[word.String()] {
			case notKeyword:
				return word
			case softKeyword:
				if endsName(nextSignificant(look)) {
					return word
				}
			}
		default:
			return source.TextRange{}
		}
	}
	return source.TextRange{}
}

// nextSignificant returns the first byte after spaces and tabs, or 0 at EOF.
func nextSignificant(look lexer.Cursor) byte {
	for !look.EOF() {
		if b := look.Peek(); b != ' ' && b != '\t' {
			return b
		}
		look.Bump()
	}
	return 0
}

func isIdentStart(b byte) bool {
	return b == '_' || b == '$' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b >= 0x80
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

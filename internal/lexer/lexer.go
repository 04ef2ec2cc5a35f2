package lexer

import (
	"strings"

	"tsdoc/internal/source"
	"tsdoc/internal/token"
)

// Lexer turns the content lines of a Frame into doc-comment tokens.
type Lexer struct {
	frame  Frame
	line   int
	cursor Cursor
	look   *token.Token // 1 элементный буфер для токена
	done   bool
}

func New(frame Frame) *Lexer {
	lx := &Lexer{frame: frame}
	if len(frame.Lines) > 0 {
		lx.cursor = NewCursor(frame.Lines[0])
	}
	return lx
}

// Tokenize frames nothing; it lexes the already extracted lines and returns
// the full stream terminated by EOF.
func Tokenize(frame Frame) []token.Token {
	lx := New(frame)
	var out []token.Token
	for {
		t := lx.Next()
		out = append(out, t)
		if t.Kind == token.EOF {
			return out
		}
	}
}

// Next возвращает следующий токен. После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	if lx.done || lx.line >= len(lx.frame.Lines) {
		lx.done = true
		return lx.eof()
	}

	// конец строки: Newline между строками или EOF после последней
	if lx.cursor.EOF() {
		if lx.line == len(lx.frame.Lines)-1 {
			lx.done = true
			return lx.eof()
		}
		tok := lx.newline()
		lx.line++
		lx.cursor = NewCursor(lx.frame.Lines[lx.line])
		return tok
	}

	start := lx.cursor.Mark()
	kind := lx.scan()
	r := lx.cursor.RangeFrom(start)
	return token.Token{Kind: kind, Range: r, Text: r.String(), Line: lx.line}
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

func (lx *Lexer) scan() token.Kind {
	ch := lx.cursor.Peek()
	switch {
	case isSpaceByte(ch):
		for isSpaceByte(lx.cursor.Peek()) && !lx.cursor.EOF() {
			lx.cursor.Bump()
		}
		return token.Spacing
	case ch == '@':
		lx.cursor.Bump()
		return token.AtSign
	case ch == '{':
		lx.cursor.Bump()
		return token.LBrace
	case ch == '}':
		lx.cursor.Bump()
		return token.RBrace
	case ch == '`':
		lx.cursor.Bump()
		return token.Backtick
	case ch == '\\':
		lx.cursor.Bump()
		return token.Backslash
	case isWordByte(ch):
		lx.scanWord()
		return token.Word
	case isPunctByte(ch):
		lx.cursor.Bump()
		return token.Punct
	}

	// не-ASCII: буква/цифра продолжают слово, остальное — Other
	if r, _ := lx.peekRune(); isWordRune(r) {
		lx.scanWord()
		return token.Word
	}
	lx.bumpRune()
	return token.Other
}

func (lx *Lexer) scanWord() {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if isWordByte(b) {
			lx.cursor.Bump()
			continue
		}
		if b < 0x80 {
			return
		}
		r, _ := lx.peekRune()
		if !isWordRune(r) {
			return
		}
		lx.bumpRune()
	}
}

// newline points at the line break between the current line and the next.
func (lx *Lexer) newline() token.Token {
	cur, next := lx.frame.Lines[lx.line], lx.frame.Lines[lx.line+1]
	gap := cur.Cover(next).Slice(cur.End(), next.Pos())
	r := gap.Collapse()
	if i := strings.IndexByte(gap.String(), '\n'); i >= 0 {
		r = gap.Sub(i, i+1)
	}
	return token.Token{Kind: token.Newline, Range: r, Text: r.String(), Line: lx.line}
}

func (lx *Lexer) eof() token.Token {
	var r source.TextRange
	if n := len(lx.frame.Lines); n > 0 {
		last := lx.frame.Lines[n-1]
		r = last.Slice(last.End(), last.End())
	} else {
		r = lx.frame.Body.Collapse()
	}
	line := len(lx.frame.Lines) - 1
	if line < 0 {
		line = 0
	}
	return token.Token{Kind: token.EOF, Range: r, Text: "", Line: line}
}

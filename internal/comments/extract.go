// Package comments finds doc comments in C-family source text (TypeScript,
// JavaScript, Go, Java, C#). It does not parse the host language: it skips
// string, character, template and regular expression literals and line
// comments, and reports every block comment it meets.
package comments

import (
	"tsdoc/internal/diag"
	"tsdoc/internal/lexer"
	"tsdoc/internal/source"
)

// Comment is one block comment found in a buffer.
type Comment struct {
	// Range covers the comment from "/*" through "*/".
	Range source.TextRange
	// Owner is the first declared identifier after the comment, skipping
	// modifiers such as "export" or "static". Zero when none follows.
	Owner source.TextRange
	// Doc is true for "/**" comments.
	Doc bool
}

// OwnerName returns the owner identifier, or "" if there is none.
func (c Comment) OwnerName() string { return c.Owner.String() }

type Options struct {
	// IncludePlain also reports "/* ... */" comments.
	IncludePlain bool
	Reporter     diag.Reporter // может быть nil
}

// Extract returns the comments of r in source order.
func Extract(r source.TextRange, opts Options) []Comment {
	sc := scanner{cursor: lexer.NewCursor(r), opts: opts}
	return sc.run()
}

type scanner struct {
	cursor lexer.Cursor
	opts   Options
	out    []Comment
	prev   byte // последний значимый байт вне комментариев; 0 в начале
}

func (sc *scanner) report(code diag.Code, r source.TextRange, msg string) {
	diag.Emit(sc.opts.Reporter, diag.NewError(code, r, msg))
}

func (sc *scanner) run() []Comment {
	c := &sc.cursor
	for !c.EOF() {
		switch b := c.Peek(); b {
		case '/':
			b0, b1, ok := c.Peek2()
			switch {
			case ok && b0 == '/' && b1 == '/':
				sc.skipLine()
			case ok && b0 == '/' && b1 == '*':
				sc.blockComment()
			case regexAllowedAfter(sc.prev):
				sc.skipRegex()
				sc.prev = 'x'
			default:
				c.Bump()
				sc.prev = '/'
			}
		case '"', '\'':
			sc.skipQuoted(b)
			sc.prev = b
		case '`':
			sc.skipTemplate()
			sc.prev = b
		default:
			c.Bump()
			if b != ' ' && b != '\t' && b != '\n' && b != '\r' {
				sc.prev = b
			}
		}
	}
	return sc.out
}

func (sc *scanner) skipLine() {
	for !sc.cursor.EOF() && sc.cursor.Peek() != '\n' {
		sc.cursor.Bump()
	}
}

// blockComment: "/* ... */" без вложенности; незакрытый — репорт и обрезаем на EOF
func (sc *scanner) blockComment() {
	c := &sc.cursor
	start := c.Mark()
	c.Bump()
	c.Bump()
	doc := false
	if c.Peek() == '*' {
		// "/**/" — пустой обычный комментарий
		if _, b1, ok := c.Peek2(); !ok || b1 != '/' {
			doc = true
		}
	}

	closed := false
	for !c.EOF() {
		if b0, b1, ok := c.Peek2(); ok && b0 == '*' && b1 == '/' {
			c.Bump()
			c.Bump()
			closed = true
			break
		}
		c.Bump()
	}
	r := c.RangeFrom(start)
	if !closed {
		sc.report(diag.CmtMissingClose, r.Sub(0, 2), "unterminated block comment")
	}
	if !doc && !sc.opts.IncludePlain {
		return
	}
	sc.out = append(sc.out, Comment{Range: r, Doc: doc, Owner: sc.owner()})
}

// regexAllowedAfter reports whether a "/" after prev starts a regular
// expression literal rather than a division. Only punctuation is
// considered; "return /x/" is read as a division.
func regexAllowedAfter(prev byte) bool {
	switch prev {
	case 0, '(', ',', '=', ':', '[', '!', '&', '|', '?', '{', '}', ';', '+', '-', '*', '%', '<', '>', '~', '^':
		return true
	}
	return false
}

// skipRegex пропускает /.../flags; классы [...] могут содержать "/".
// Перевод строки обрывает литерал.
func (sc *scanner) skipRegex() {
	c := &sc.cursor
	c.Bump()
	inClass := false
	for !c.EOF() {
		switch c.Peek() {
		case '\\':
			c.Bump()
			if !c.EOF() && c.Peek() != '\n' {
				c.Bump()
			}
		case '[':
			inClass = true
			c.Bump()
		case ']':
			inClass = false
			c.Bump()
		case '/':
			c.Bump()
			if !inClass {
				for !c.EOF() && isIdentPart(c.Peek()) {
					c.Bump()
				}
				return
			}
		case '\n':
			return
		default:
			c.Bump()
		}
	}
}

// skipQuoted пропускает строку или символьный литерал; перевод строки
// завершает незакрытый литерал.
func (sc *scanner) skipQuoted(quote byte) {
	c := &sc.cursor
	c.Bump()
	for !c.EOF() {
		switch c.Bump() {
		case '\\':
			c.Bump()
		case quote, '\n':
			return
		}
	}
}

// skipTemplate пропускает `...`, включая подстановки ${...} с вложенными
// строками.
func (sc *scanner) skipTemplate() {
	c := &sc.cursor
	c.Bump()
	for !c.EOF() {
		switch c.Peek() {
		case '\\':
			c.Bump()
			c.Bump()
		case '`':
			c.Bump()
			return
		case '$':
			c.Bump()
			if c.Eat('{') {
				sc.skipSubstitution()
			}
		default:
			c.Bump()
		}
	}
}

func (sc *scanner) skipSubstitution() {
	c := &sc.cursor
	depth := 1
	for !c.EOF() && depth > 0 {
		switch b := c.Peek(); b {
		case '{':
			depth++
			c.Bump()
		case '}':
			depth--
			c.Bump()
		case '"', '\'':
			sc.skipQuoted(b)
		case '`':
			sc.skipTemplate()
		default:
			c.Bump()
		}
	}
}

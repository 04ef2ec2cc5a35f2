package parser

import (
	"strings"

	"tsdoc/internal/diag"
	"tsdoc/internal/doc"
	"tsdoc/internal/source"
	"tsdoc/internal/tags"
	"tsdoc/internal/token"
)

// state — состояние одного разбора
type state struct {
	reg  *tags.Registry
	toks []token.Token // всегда заканчивается EOF
	i    int
	rep  diag.Reporter

	comment *doc.Comment
	section *doc.Section   // текущая секция (summary или содержимое блока)
	para    *doc.Paragraph // открытый абзац, nil если нет

	// накопленный простой текст
	hasText bool
	text    source.TextRange
	textBuf strings.Builder

	softBreak *token.Token // отложенный перевод строки внутри абзаца

	inlineSeen map[string]struct{}
}

func newState(reg *tags.Registry, toks []token.Token, rep diag.Reporter) *state {
	c := doc.NewComment()
	return &state{
		reg:        reg,
		toks:       toks,
		rep:        rep,
		comment:    c,
		section:    c.SummarySection,
		inlineSeen: make(map[string]struct{}),
	}
}

// ===== навигация по токенам =====

func (s *state) peek() token.Token { return s.toks[s.i] }

// next съедает токен; на EOF стоит на месте
func (s *state) next() token.Token {
	t := s.toks[s.i]
	if s.i < len(s.toks)-1 {
		s.i++
	}
	return t
}

func (s *state) skipSpacing() {
	for s.peek().Kind == token.Spacing {
		s.next()
	}
}

// atTagBoundary — имя тега допустимо только в начале строки или после пробела
func (s *state) atTagBoundary() bool {
	if s.i == 0 {
		return true
	}
	switch s.toks[s.i-1].Kind {
	case token.Spacing, token.Newline:
		return true
	}
	return false
}

// adjacent reports whether b starts exactly where a ends.
func adjacent(a, b token.Token) bool {
	return a.Range.Buffer() == b.Range.Buffer() && a.Range.End() == b.Range.Pos()
}

func (s *state) warn(code diag.Code, r source.TextRange, msg string) {
	diag.Emit(s.rep, diag.NewWarning(code, r, msg))
}

// ===== содержимое секций =====

func (s *state) run() {
	for {
		tok := s.peek()
		switch tok.Kind {
		case token.EOF:
			s.flushText()
			return
		case token.Newline:
			s.next()
			s.newline(tok)
		case token.Spacing:
			s.next()
			if s.para == nil && !s.hasText {
				continue
			}
			s.appendText(tok.Range, tok.Text)
		case token.AtSign:
			s.atSign()
		case token.LBrace:
			s.inlineTag()
		case token.RBrace:
			s.next()
			s.warn(diag.DocUnescapedBrace, tok.Range,
				"the \"}\" character should be escaped using a backslash to avoid confusion with an inline tag")
			s.errorText(tok.Range, "unescaped \"}\"")
		case token.Backtick:
			s.codeSpan()
		case token.Backslash:
			s.backslash()
		default:
			s.next()
			s.appendText(tok.Range, tok.Text)
		}
	}
}

// newline: первый перевод строки откладывается как SoftBreak, второй подряд
// (пустая строка) закрывает абзац.
func (s *state) newline(tok token.Token) {
	s.flushText()
	if s.softBreak != nil {
		s.softBreak = nil
		s.para = nil
		return
	}
	if s.para == nil {
		return
	}
	s.softBreak = &tok
}

// beginInline materializes a pending soft break and opens a paragraph.
func (s *state) beginInline() {
	if s.softBreak != nil {
		if s.para != nil && len(s.para.Nodes) > 0 {
			s.para.Append(&doc.SoftBreak{Excerpt: doc.NewExcerpt(doc.ExcerptSoftBreak, s.softBreak.Range)})
		}
		s.softBreak = nil
	}
	if s.para == nil {
		s.para = &doc.Paragraph{}
		s.section.Append(s.para)
	}
}

// appendText добавляет raw-диапазон к текущему куску текста; decoded — его
// значение после разбора экранирования.
func (s *state) appendText(r source.TextRange, decoded string) {
	if !s.hasText {
		s.beginInline()
		s.hasText = true
		s.text = r
		s.textBuf.Reset()
	} else {
		s.text = s.text.Cover(r)
	}
	s.textBuf.WriteString(decoded)
}

func (s *state) flushText() {
	if !s.hasText {
		return
	}
	s.para.Append(&doc.PlainText{
		Text:    s.textBuf.String(),
		Excerpt: doc.NewExcerpt(doc.ExcerptPlainText, s.text),
	})
	s.hasText = false
}

func (s *state) appendNode(n doc.Node) {
	s.flushText()
	s.beginInline()
	s.para.Append(n)
}

func (s *state) errorText(r source.TextRange, msg string) {
	s.appendNode(&doc.ErrorText{
		Text:    r.String(),
		Message: msg,
		Excerpt: doc.NewExcerpt(doc.ExcerptErrorText, r),
	})
}

// closeParagraph завершает абзац перед новым блоком
func (s *state) closeParagraph() {
	s.flushText()
	s.para = nil
	s.softBreak = nil
}

func (s *state) codeSpan() {
	open := s.next()
	j := s.i
	for j < len(s.toks) && s.toks[j].Kind != token.Backtick && !s.toks[j].IsLineBoundary() {
		j++
	}
	if j >= len(s.toks) || s.toks[j].Kind != token.Backtick {
		s.warn(diag.DocUnclosedCodeSpan, open.Range,
			"the code span is missing its closing backtick")
		s.errorText(open.Range, "unclosed code span")
		return
	}
	closing := s.toks[j]
	body := open.Range.Cover(closing.Range).Slice(open.Range.End(), closing.Range.Pos())
	s.i = j + 1
	s.appendNode(&doc.CodeSpan{
		Code:  body.String(),
		Open:  doc.NewExcerpt(doc.ExcerptCodeOpen, open.Range),
		Body:  doc.NewExcerpt(doc.ExcerptCode, body),
		Close: doc.NewExcerpt(doc.ExcerptCodeClose, closing.Range),
	})
}

// backslash: "\x" для пунктуации даёт литерал x; в остальных случаях
// обратная косая черта остаётся текстом.
func (s *state) backslash() {
	bs := s.next()
	nxt := s.peek()
	if nxt.IsLineBoundary() {
		s.warn(diag.DocBackslashAtEnd, bs.Range,
			"a backslash must be followed by the character it escapes")
		s.appendText(bs.Range, bs.Text)
		return
	}
	if adjacent(bs, nxt) && (nxt.Kind == token.Punct || nxt.IsDelimiter()) {
		s.next()
		s.appendText(bs.Range.Cover(nxt.Range), nxt.Text)
		return
	}
	s.appendText(bs.Range, bs.Text)
}

package parser

import (
	"fmt"
	"strings"

	"tsdoc/internal/diag"
	"tsdoc/internal/doc"
	"tsdoc/internal/source"
	"tsdoc/internal/tags"
	"tsdoc/internal/token"
)

var (
	remarksKey        = tags.NameKey(tags.Remarks)
	privateRemarksKey = tags.NameKey(tags.PrivateRemarks)
	deprecatedKey     = tags.NameKey(tags.Deprecated)
	returnsKey        = tags.NameKey(tags.Returns)
	paramKey          = tags.NameKey(tags.Param)
	typeParamKey      = tags.NameKey(tags.TypeParam)
	seeKey            = tags.NameKey(tags.See)
	inheritDocKey     = tags.NameKey(tags.InheritDoc)
)

type nameStatus uint8

const (
	nameMissing nameStatus = iota // "@" без слова
	nameInvalid                   // слово есть, но имя некорректно
	nameOK
)

// tagName reads "@" + Word starting at token j. The returned range covers
// both tokens when a word follows, otherwise just the "@".
func (s *state) tagName(j int) (string, source.TextRange, nameStatus) {
	at := s.toks[j]
	if j+1 >= len(s.toks) {
		return "", at.Range, nameMissing
	}
	word := s.toks[j+1]
	if word.Kind != token.Word || !adjacent(at, word) {
		return "", at.Range, nameMissing
	}
	name := "@" + word.Text
	r := at.Range.Cover(word.Range)
	if tags.ValidateTagName(name) != nil {
		return name, r, nameInvalid
	}
	return name, r, nameOK
}

func (s *state) checkSupport(def tags.Definition, r source.TextRange) {
	if !s.reg.IsSupported(def.TagName) {
		s.warn(diag.DocTagNotSupported, r,
			fmt.Sprintf("the tag %q is defined but is not enabled in supportForTags", def.TagName))
	}
}

// atSign разбирает "@name" вне фигурных скобок.
func (s *state) atSign() {
	at := s.peek()
	if !s.atTagBoundary() {
		s.next()
		s.appendText(at.Range, at.Text)
		return
	}

	name, r, status := s.tagName(s.i)
	switch status {
	case nameMissing:
		s.next()
		s.warn(diag.DocMalformedTagName, r,
			"the \"@\" character looks like part of a tag; use a backslash to escape it")
		s.appendText(at.Range, at.Text)
		return
	case nameInvalid:
		s.next()
		s.next()
		s.warn(diag.DocMalformedTagName, r,
			fmt.Sprintf("%q is not a valid tag name; tag names start with a letter followed by letters or digits", name))
		s.appendText(r, r.String())
		return
	}

	def, ok := s.reg.TryGetDefinition(name)
	s.next()
	s.next()
	if !ok {
		s.warn(diag.DocUnsupportedTag, r,
			fmt.Sprintf("the tag %q is not defined in this configuration", name))
		s.appendText(r, r.String())
		return
	}
	s.checkSupport(def, r)

	switch def.SyntaxKind {
	case tags.BlockTag:
		s.startBlock(def, name, r)
	case tags.ModifierTag:
		s.modifier(def, name, r)
	case tags.InlineTag:
		s.warn(diag.DocTagSyntaxMismatch, r,
			fmt.Sprintf("the inline tag %q must be enclosed in \"{\" and \"}\"", name))
		s.appendText(r, r.String())
	}
}

// startBlock закрывает текущую секцию и открывает блок.
func (s *state) startBlock(def tags.Definition, name string, r source.TextRange) {
	s.closeParagraph()

	tag := &doc.BlockTag{TagName: name, Excerpt: doc.NewExcerpt(doc.ExcerptBlockTag, r)}
	content := &doc.Section{}
	block := &doc.Block{Tag: tag, Content: content}
	s.section = content

	switch def.Key() {
	case paramKey:
		s.comment.Params = append(s.comment.Params, s.paramBlock(block))
		return
	case typeParamKey:
		s.comment.TypeParams = append(s.comment.TypeParams, s.paramBlock(block))
		return
	case remarksKey:
		s.fixedSlot(&s.comment.RemarksBlock, block, def, r)
	case privateRemarksKey:
		s.fixedSlot(&s.comment.PrivateRemarks, block, def, r)
	case deprecatedKey:
		s.fixedSlot(&s.comment.DeprecatedBlock, block, def, r)
	case returnsKey:
		s.fixedSlot(&s.comment.ReturnsBlock, block, def, r)
	case seeKey:
		s.comment.SeeBlocks = append(s.comment.SeeBlocks, block)
	default:
		s.comment.CustomBlocks = append(s.comment.CustomBlocks, block)
	}
	s.skipSpacing()
}

// fixedSlot: первое вхождение занимает слот, повтор уходит в CustomBlocks,
// чтобы содержимое не потерялось.
func (s *state) fixedSlot(slot **doc.Block, b *doc.Block, def tags.Definition, r source.TextRange) {
	if *slot == nil {
		*slot = b
		return
	}
	if !def.AllowMultiple {
		s.warn(diag.DocDuplicateBlock, r,
			fmt.Sprintf("the block tag %q may only be used once per comment; the repeat is kept as a custom block", b.TagName()))
	}
	s.comment.CustomBlocks = append(s.comment.CustomBlocks, b)
}

// paramBlock reads "name -" after @param / @typeParam.
func (s *state) paramBlock(b *doc.Block) *doc.ParamBlock {
	pb := &doc.ParamBlock{Block: *b}
	s.skipSpacing()

	var nameR source.TextRange
	for {
		t := s.peek()
		if t.Kind == token.Word || t.Kind == token.Other || (t.Kind == token.Punct && t.Text != "-") {
			nameR = nameR.Cover(t.Range)
			s.next()
			continue
		}
		break
	}

	if nameR.IsZero() {
		s.warn(diag.DocMissingParamName, b.Tag.Excerpt.Content,
			fmt.Sprintf("the %s block should be followed by a parameter name", b.TagName()))
	} else {
		pb.ParameterName = nameR.String()
		pb.Name = doc.NewExcerpt(doc.ExcerptParamName, nameR)
	}

	s.skipSpacing()
	if hy := s.peek(); hy.Is("-") {
		s.next()
		pb.Hyphen = doc.NewExcerpt(doc.ExcerptParamHyphen, hy.Range)
		s.skipSpacing()
	} else if !nameR.IsZero() {
		s.warn(diag.DocMissingParamHyphen, nameR,
			fmt.Sprintf("the %s block should be followed by a parameter name and then a hyphen", b.TagName()))
	}
	return pb
}

// modifier кладёт тег в ModifierTagSet; содержимое секции не меняется.
// Повтор без allowMultiple молча отбрасывается.
func (s *state) modifier(def tags.Definition, name string, r source.TextRange) {
	s.flushText()
	s.comment.ModifierTagSet.Add(&doc.ModifierTag{
		TagName: name,
		Excerpt: doc.NewExcerpt(doc.ExcerptModifierTag, r),
	}, def)
	s.skipSpacing()
}

// inlineTag разбирает "{@name content}".
func (s *state) inlineTag() {
	open := s.next()

	at := s.peek()
	if at.Kind != token.AtSign || !adjacent(open, at) {
		s.warn(diag.DocMalformedInlineTag, open.Range,
			"the \"{\" character must be escaped with a backslash when not used as part of an inline tag")
		s.errorText(open.Range, "unescaped \"{\"")
		return
	}

	name, nameR, status := s.tagName(s.i)
	switch status {
	case nameMissing:
		s.next()
		head := open.Range.Cover(at.Range)
		s.warn(diag.DocMalformedInlineTag, head, "expecting a tag name after \"{@\"")
		s.errorText(head, "missing tag name")
		return
	case nameInvalid:
		s.next()
		s.next()
		head := open.Range.Cover(nameR)
		s.warn(diag.DocMalformedTagName, nameR,
			fmt.Sprintf("%q is not a valid tag name; tag names start with a letter followed by letters or digits", name))
		s.errorText(head, "invalid tag name")
		return
	}
	s.next()
	s.next()

	resume := s.i
	spacing, body, content, closing, ok := s.inlineBody()
	if !ok {
		s.i = resume
		head := open.Range.Cover(nameR)
		s.warn(diag.DocMalformedInlineTag, head,
			fmt.Sprintf("the inline tag %q is missing its closing \"}\"", name))
		s.errorText(head, "unterminated inline tag")
		return
	}
	whole := open.Range.Cover(closing.Range)

	node := &doc.InlineTag{
		TagName: name,
		Content: content,
		Open:    doc.NewExcerpt(doc.ExcerptInlineOpen, open.Range),
		Name:    doc.NewExcerpt(doc.ExcerptInlineName, nameR),
		Spacing: doc.NewExcerpt(doc.ExcerptInlineSpacing, spacing),
		Body:    body,
		Close:   doc.NewExcerpt(doc.ExcerptInlineClose, closing.Range),
	}

	def, defined := s.reg.TryGetDefinition(name)
	if !defined {
		// синтаксис корректен: узел остаётся, но без семантики
		s.warn(diag.DocUnsupportedTag, nameR,
			fmt.Sprintf("the tag %q is not defined in this configuration", name))
		s.appendNode(node)
		return
	}
	if def.SyntaxKind != tags.InlineTag {
		s.warn(diag.DocTagSyntaxMismatch, nameR,
			fmt.Sprintf("the %s tag %q cannot be used as an inline tag", def.SyntaxKind, name))
		s.errorText(whole, "not an inline tag")
		return
	}
	s.checkSupport(def, nameR)

	key := def.Key()
	if _, seen := s.inlineSeen[key]; seen && !def.AllowMultiple {
		s.warn(diag.DocDuplicateInlineTag, nameR,
			fmt.Sprintf("the inline tag %q may only be used once per comment", name))
	}
	s.inlineSeen[key] = struct{}{}

	if key == inheritDocKey && s.comment.InheritDocTag == nil {
		s.comment.InheritDocTag = node
	}
	s.appendNode(node)
}

// inlineBody reads up to the closing "}". It returns the whitespace after
// the tag name, one content excerpt per line (surrounding whitespace
// excluded), the content text with escapes resolved and line breaks folded
// to spaces, and the closing token. ok is false when no "}" follows.
func (s *state) inlineBody() (spacing source.TextRange, body []*doc.Excerpt, content string, closing token.Token, ok bool) {
	var (
		b       strings.Builder
		line    source.TextRange // содержимое текущей строки
		started bool
	)
	endLine := func() {
		if e := doc.NewExcerpt(doc.ExcerptInlineContent, line); e != nil {
			body = append(body, e)
		}
		line = source.TextRange{}
	}
	for {
		t := s.peek()
		switch t.Kind {
		case token.EOF, token.LBrace:
			return spacing, nil, "", closing, false
		case token.RBrace:
			s.next()
			endLine()
			return spacing, body, strings.TrimSpace(b.String()), t, true
		case token.Spacing, token.Newline:
			s.next()
			if !started {
				spacing = spacing.Cover(t.Range)
				continue
			}
			if t.Kind == token.Newline {
				endLine()
			}
			b.WriteByte(' ')
		case token.Backslash:
			s.next()
			nxt := s.peek()
			if adjacent(t, nxt) && (nxt.Kind == token.Punct || nxt.IsDelimiter()) {
				s.next()
				b.WriteString(nxt.Text)
				line = line.Cover(t.Range.Cover(nxt.Range))
			} else {
				b.WriteString(t.Text)
				line = line.Cover(t.Range)
			}
			started = true
		default:
			s.next()
			b.WriteString(t.Text)
			line = line.Cover(t.Range)
			started = true
		}
	}
}

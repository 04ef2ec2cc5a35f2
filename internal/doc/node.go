// Package doc is the parsed form of one doc comment: a tagged-variant tree
// rooted at Comment. Only Excerpt leaves carry source ranges; every other
// node is structural.
package doc

import (
	"tsdoc/internal/source"
)

// Kind identifies the variant of a Node.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindComment
	KindSection
	KindParagraph
	KindBlock
	KindBlockTag
	KindParamBlock
	KindInlineTag
	KindModifierTag
	KindPlainText
	KindSoftBreak
	KindCodeSpan
	KindErrorText
	KindExcerpt
)

var kindNames = [...]string{
	KindInvalid:     "Invalid",
	KindComment:     "Comment",
	KindSection:     "Section",
	KindParagraph:   "Paragraph",
	KindBlock:       "Block",
	KindBlockTag:    "BlockTag",
	KindParamBlock:  "ParamBlock",
	KindInlineTag:   "InlineTag",
	KindModifierTag: "ModifierTag",
	KindPlainText:   "PlainText",
	KindSoftBreak:   "SoftBreak",
	KindCodeSpan:    "CodeSpan",
	KindErrorText:   "ErrorText",
	KindExcerpt:     "Excerpt",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Invalid"
}

// Node is implemented by every tree node. Children are in document order.
type Node interface {
	Kind() Kind
	Children() []Node
}

// ExcerptKind tells which piece of syntax an Excerpt covers.
type ExcerptKind uint8

const (
	ExcerptPlainText ExcerptKind = iota
	ExcerptSoftBreak
	ExcerptBlockTag
	ExcerptModifierTag
	ExcerptInlineOpen
	ExcerptInlineName
	ExcerptInlineSpacing
	ExcerptInlineContent
	ExcerptInlineClose
	ExcerptParamName
	ExcerptParamHyphen
	ExcerptCodeOpen
	ExcerptCode
	ExcerptCodeClose
	ExcerptErrorText
)

var excerptNames = [...]string{
	ExcerptPlainText:     "PlainText",
	ExcerptSoftBreak:     "SoftBreak",
	ExcerptBlockTag:      "BlockTag",
	ExcerptModifierTag:   "ModifierTag",
	ExcerptInlineOpen:    "InlineTag_OpeningDelimiter",
	ExcerptInlineName:    "InlineTag_TagName",
	ExcerptInlineSpacing: "InlineTag_Spacing",
	ExcerptInlineContent: "InlineTag_Content",
	ExcerptInlineClose:   "InlineTag_ClosingDelimiter",
	ExcerptParamName:     "ParamBlock_ParameterName",
	ExcerptParamHyphen:   "ParamBlock_Hyphen",
	ExcerptCodeOpen:      "CodeSpan_OpeningDelimiter",
	ExcerptCode:          "CodeSpan_Code",
	ExcerptCodeClose:     "CodeSpan_ClosingDelimiter",
	ExcerptErrorText:     "ErrorText",
}

func (k ExcerptKind) String() string {
	if int(k) < len(excerptNames) {
		return excerptNames[k]
	}
	return "Unknown"
}

// Excerpt is a leaf holding the exact source range of a piece of syntax.
type Excerpt struct {
	ExcerptKind ExcerptKind
	Content     source.TextRange
}

// NewExcerpt returns an excerpt, or nil for the zero range so callers can
// pass optional pieces unconditionally.
func NewExcerpt(kind ExcerptKind, r source.TextRange) *Excerpt {
	if r.IsZero() {
		return nil
	}
	return &Excerpt{ExcerptKind: kind, Content: r}
}

func (*Excerpt) Kind() Kind       { return KindExcerpt }
func (*Excerpt) Children() []Node { return nil }

// Text returns the covered source text.
func (e *Excerpt) Text() string { return e.Content.String() }

// excerpts собирает ненулевые выдержки в порядке следования
func excerpts(list ...*Excerpt) []Node {
	out := make([]Node, 0, len(list))
	for _, e := range list {
		if e != nil {
			out = append(out, e)
		}
	}
	return out
}

// Section holds paragraphs (and, rarely, other nodes) of a summary or block.
type Section struct {
	Nodes []Node
}

func (*Section) Kind() Kind         { return KindSection }
func (s *Section) Children() []Node { return s.Nodes }

// Append adds a node at the end of the section.
func (s *Section) Append(n Node) { s.Nodes = append(s.Nodes, n) }

// Paragraph is a run of inline content separated from others by blank lines.
type Paragraph struct {
	Nodes []Node
}

func (*Paragraph) Kind() Kind         { return KindParagraph }
func (p *Paragraph) Children() []Node { return p.Nodes }

// Append adds a node at the end of the paragraph.
func (p *Paragraph) Append(n Node) { p.Nodes = append(p.Nodes, n) }

// BlockTag is the "@name" that opens a block.
type BlockTag struct {
	TagName string
	Excerpt *Excerpt
}

func (*BlockTag) Kind() Kind         { return KindBlockTag }
func (b *BlockTag) Children() []Node { return excerpts(b.Excerpt) }

// Block is a block tag followed by its content.
type Block struct {
	Tag     *BlockTag
	Content *Section
}

func (*Block) Kind() Kind { return KindBlock }
func (b *Block) Children() []Node {
	return []Node{b.Tag, b.Content}
}

// TagName returns the name of the opening tag.
func (b *Block) TagName() string { return b.Tag.TagName }

// ParamBlock is a @param / @typeParam block: tag, parameter name, optional
// hyphen, then content.
type ParamBlock struct {
	Block
	ParameterName string
	Name          *Excerpt
	Hyphen        *Excerpt
}

func (*ParamBlock) Kind() Kind { return KindParamBlock }
func (p *ParamBlock) Children() []Node {
	out := []Node{p.Tag}
	out = append(out, excerpts(p.Name, p.Hyphen)...)
	return append(out, p.Content)
}

// InlineTag is "{@name content}" embedded in running text.
type InlineTag struct {
	TagName string
	// Content is the text between the name and the closing brace, trimmed.
	Content string

	Open    *Excerpt
	Name    *Excerpt
	Spacing *Excerpt
	// Body has one excerpt per source line of content, so a tag that spans
	// lines never covers the comment gutter.
	Body  []*Excerpt
	Close *Excerpt
}

func (*InlineTag) Kind() Kind { return KindInlineTag }
func (t *InlineTag) Children() []Node {
	list := append([]*Excerpt{t.Open, t.Name, t.Spacing}, t.Body...)
	return excerpts(append(list, t.Close)...)
}

// Source returns the tag as written, braces included.
func (t *InlineTag) Source() string {
	var r source.TextRange
	for _, n := range t.Children() {
		r = r.Cover(n.(*Excerpt).Content)
	}
	return r.String()
}

// ModifierTag is a standalone flag tag.
type ModifierTag struct {
	TagName string
	Excerpt *Excerpt
}

func (*ModifierTag) Kind() Kind         { return KindModifierTag }
func (m *ModifierTag) Children() []Node { return excerpts(m.Excerpt) }

// PlainText is ordinary text. Text has backslash escapes resolved; the
// excerpt keeps the raw source.
type PlainText struct {
	Text    string
	Excerpt *Excerpt
}

func (*PlainText) Kind() Kind         { return KindPlainText }
func (p *PlainText) Children() []Node { return excerpts(p.Excerpt) }

// SoftBreak is a line break inside a paragraph.
type SoftBreak struct {
	Excerpt *Excerpt
}

func (*SoftBreak) Kind() Kind         { return KindSoftBreak }
func (s *SoftBreak) Children() []Node { return excerpts(s.Excerpt) }

// CodeSpan is text between backticks.
type CodeSpan struct {
	Code  string
	Open  *Excerpt
	Body  *Excerpt
	Close *Excerpt
}

func (*CodeSpan) Kind() Kind         { return KindCodeSpan }
func (c *CodeSpan) Children() []Node { return excerpts(c.Open, c.Body, c.Close) }

// ErrorText is source text that could not be parsed; Message says why.
type ErrorText struct {
	Text    string
	Message string
	Excerpt *Excerpt
}

func (*ErrorText) Kind() Kind         { return KindErrorText }
func (e *ErrorText) Children() []Node { return excerpts(e.Excerpt) }

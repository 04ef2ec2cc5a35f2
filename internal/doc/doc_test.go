package doc

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"tsdoc/internal/source"
	"tsdoc/internal/tags"
)

// sample строит дерево для "Use {@link X} `c`\nnext" вручную
func sample() (*Comment, source.TextRange) {
	r := source.FromString("t", "Use {@link X} `c`\nnext @beta")
	c := NewComment()
	p := &Paragraph{}
	p.Append(&PlainText{Text: "Use ", Excerpt: NewExcerpt(ExcerptPlainText, r.Sub(0, 4))})
	p.Append(&InlineTag{
		TagName: "@link",
		Content: "X",
		Open:    NewExcerpt(ExcerptInlineOpen, r.Sub(4, 5)),
		Name:    NewExcerpt(ExcerptInlineName, r.Sub(5, 10)),
		Spacing: NewExcerpt(ExcerptInlineSpacing, r.Sub(10, 11)),
		Body:    []*Excerpt{NewExcerpt(ExcerptInlineContent, r.Sub(11, 12))},
		Close:   NewExcerpt(ExcerptInlineClose, r.Sub(12, 13)),
	})
	p.Append(&PlainText{Text: " ", Excerpt: NewExcerpt(ExcerptPlainText, r.Sub(13, 14))})
	p.Append(&CodeSpan{
		Code:  "c",
		Open:  NewExcerpt(ExcerptCodeOpen, r.Sub(14, 15)),
		Body:  NewExcerpt(ExcerptCode, r.Sub(15, 16)),
		Close: NewExcerpt(ExcerptCodeClose, r.Sub(16, 17)),
	})
	p.Append(&SoftBreak{Excerpt: NewExcerpt(ExcerptSoftBreak, r.Sub(17, 18))})
	p.Append(&PlainText{Text: "next", Excerpt: NewExcerpt(ExcerptPlainText, r.Sub(18, 22))})
	c.SummarySection.Append(p)
	c.ModifierTagSet.Add(&ModifierTag{TagName: "@beta", Excerpt: NewExcerpt(ExcerptModifierTag, r.Sub(23, 28))},
		tags.Definition{TagName: "@beta", SyntaxKind: tags.ModifierTag})
	return c, r
}

func TestWalkOrderAndSkip(t *testing.T) {
	c, _ := sample()
	var kinds []string
	Walk(c, func(n Node, depth int) bool {
		kinds = append(kinds, n.Kind().String())
		return n.Kind() != KindInlineTag && n.Kind() != KindCodeSpan
	})
	want := []string{
		"Comment", "Section", "Paragraph",
		"PlainText", "Excerpt", "InlineTag", "PlainText", "Excerpt", "CodeSpan",
		"SoftBreak", "Excerpt", "PlainText", "Excerpt",
		"ModifierTag", "Excerpt",
	}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("walk order mismatch (-want +got):\n%s", diff)
	}
}

func TestExcerptsAreContiguous(t *testing.T) {
	c, r := sample()
	got := ""
	for _, e := range Excerpts(c.SummarySection) {
		if e.Content.Buffer() != r.Buffer() {
			t.Fatalf("excerpt %q does not share the buffer", e.Text())
		}
		got += e.Text()
	}
	if got != "Use {@link X} `c`\nnext" {
		t.Fatalf("excerpts concatenate to %q", got)
	}
}

func TestExtractText(t *testing.T) {
	c, _ := sample()
	if got := ExtractText(c.SummarySection); got != "Use {@link X} `c` next" {
		t.Fatalf("ExtractText = %q", got)
	}

	two := &Section{Nodes: []Node{
		&Paragraph{Nodes: []Node{&PlainText{Text: "a"}}},
		&Paragraph{Nodes: []Node{&PlainText{Text: "b"}}},
	}}
	if got := ExtractText(two); got != "a\n\nb" {
		t.Fatalf("paragraph separation = %q", got)
	}
}

func TestDump(t *testing.T) {
	c, _ := sample()
	want := `- Comment
  - Section
    - Paragraph
      - PlainText: "Use "
      - InlineTag: "{@link X}"
      - PlainText: " "
      - CodeSpan: "` + "`c`" + `"
      - SoftBreak: "\n"
      - PlainText: "next"
  - ModifierTag: "@beta"
`
	if diff := cmp.Diff(want, DumpString(c, DumpOptions{})); diff != "" {
		t.Fatalf("dump mismatch (-want +got):\n%s", diff)
	}

	withExcerpts := DumpString(c.ModifierTagSet.Nodes()[0], DumpOptions{
		Excerpts: true,
		Content:  func(s string) string { return "<" + s + ">" },
	})
	if withExcerpts != "- ModifierTag\n  - Excerpt(ModifierTag): <\"@beta\">\n" {
		t.Fatalf("excerpt dump = %q", withExcerpts)
	}
}

func TestModifierTagSetDedup(t *testing.T) {
	single := tags.Definition{TagName: "@customModifier", SyntaxKind: tags.ModifierTag}
	multi := tags.Definition{TagName: "@flag", SyntaxKind: tags.ModifierTag, AllowMultiple: true}

	var set ModifierTagSet
	if !set.Add(&ModifierTag{TagName: "@customModifier"}, single) {
		t.Fatalf("first add must succeed")
	}
	if set.Add(&ModifierTag{TagName: "@CUSTOMMODIFIER"}, single) {
		t.Fatalf("duplicate must be rejected")
	}
	set.Add(&ModifierTag{TagName: "@flag"}, multi)
	set.Add(&ModifierTag{TagName: "@flag"}, multi)

	if set.Len() != 3 {
		t.Fatalf("expected 3 nodes, got %d", set.Len())
	}
	if !set.HasTag(single) || !set.HasTagName("@Flag") || set.HasTagName("@other") {
		t.Fatalf("HasTag mismatch")
	}
}

func TestCommentChildrenOrder(t *testing.T) {
	r := source.FromString("t", "@remarks @param @returns @see @custom")
	blk := func(name string, from, to int) *Block {
		return &Block{Tag: &BlockTag{TagName: name, Excerpt: NewExcerpt(ExcerptBlockTag, r.Sub(from, to))}, Content: &Section{}}
	}
	c := NewComment()
	c.SeeBlocks = append(c.SeeBlocks, blk("@see", 25, 29))
	c.CustomBlocks = append(c.CustomBlocks, blk("@custom", 30, 37))
	c.ReturnsBlock = blk("@returns", 16, 24)
	c.Params = append(c.Params, &ParamBlock{Block: *blk("@param", 9, 15), ParameterName: "x"})
	c.RemarksBlock = blk("@remarks", 0, 8)

	var got []string
	for _, n := range c.Children() {
		switch n := n.(type) {
		case *Block:
			got = append(got, n.TagName())
		case *ParamBlock:
			got = append(got, n.TagName()+" "+n.ParameterName)
		default:
			got = append(got, n.Kind().String())
		}
	}
	want := []string{"Section", "@remarks", "@param x", "@returns", "@custom", "@see"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("children order mismatch (-want +got):\n%s", diff)
	}
	if p, ok := c.Param("x"); !ok || p.Kind() != KindParamBlock {
		t.Fatalf("Param lookup failed")
	}
	if len(c.CustomBlocksNamed("@CUSTOM")) != 1 {
		t.Fatalf("CustomBlocksNamed must fold case")
	}
}

package parser

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tsdoc/internal/diag"
	"tsdoc/internal/doc"
	"tsdoc/internal/source"
	"tsdoc/internal/tags"
)

func TestUnknownTagIsNonFatal(t *testing.T) {
	input := "/**\n * Hello @bogusTag world\n */"
	res := mustParse(t, New(nil), input)

	if res.Log.Len() != 1 {
		t.Fatalf("expected exactly one diagnostic, got %s", diagnosticsSummary(res.Log))
	}
	d := res.Log.Items()[0]
	if d.Code != diag.DocUnsupportedTag || d.Severity != diag.SevWarning {
		t.Fatalf("unexpected diagnostic %s", d)
	}
	pos := strings.Index(input, "@bogusTag")
	if d.Primary.Pos() != pos || d.Primary.End() != pos+len("@bogusTag") {
		t.Fatalf("diagnostic range %d-%d, want %d-%d", d.Primary.Pos(), d.Primary.End(), pos, pos+9)
	}
	if d.Primary.String() != "@bogusTag" {
		t.Fatalf("diagnostic covers %q", d.Primary.String())
	}

	got := paragraphNodes(t, res.Comment.SummarySection)
	if diff := cmp.Diff([]string{"PlainText:Hello @bogusTag world"}, got); diff != "" {
		t.Fatalf("surrounding text changed (-want +got):\n%s", diff)
	}
}

func TestModifierDedup(t *testing.T) {
	res := mustParse(t, New(demoRegistry(t)), "@customModifier @customModifier")

	set := res.Comment.ModifierTagSet
	if set.Len() != 1 {
		t.Fatalf("expected one modifier node, got %d", set.Len())
	}
	def, _ := New(demoRegistry(t)).Registry().TryGetDefinition("@customModifier")
	if !set.HasTag(def) {
		t.Fatalf("modifier not found")
	}
	if len(res.Comment.SummarySection.Nodes) != 0 {
		t.Fatalf("modifiers must not add section content")
	}
	if res.Log.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(res.Log))
	}
}

func TestModifierAllowMultiple(t *testing.T) {
	reg, err := tags.NewCustomRegistry(tags.Definition{TagName: "@flag", SyntaxKind: tags.ModifierTag, AllowMultiple: true})
	if err != nil {
		t.Fatal(err)
	}
	res := mustParse(t, New(reg), "@flag @flag text @flag")
	if n := res.Comment.ModifierTagSet.Len(); n != 3 {
		t.Fatalf("expected 3 modifier nodes, got %d", n)
	}
	if got := doc.ExtractText(res.Comment.SummarySection); got != "text" {
		t.Fatalf("summary = %q", got)
	}
}

func TestBlockRouting(t *testing.T) {
	res := mustParse(t, New(demoRegistry(t)), "@customBlock\nHello")

	blocks := res.Comment.CustomBlocks
	if len(blocks) != 1 {
		t.Fatalf("expected one custom block, got %d", len(blocks))
	}
	if blocks[0].TagName() != "@customBlock" {
		t.Fatalf("block named %q", blocks[0].TagName())
	}
	ex := doc.Excerpts(blocks[0].Content)
	if len(ex) != 1 || ex[0].Text() != "Hello" {
		t.Fatalf("block content excerpts = %v", ex)
	}
	if len(res.Comment.SummarySection.Nodes) != 0 {
		t.Fatalf("summary should be empty")
	}
}

func TestRangeExactness(t *testing.T) {
	input := "/** @alpha text */"
	buf := source.NewBuffer("test.ts", input)
	res, err := New(nil).ParseBuffer(buf, 0, len(input))
	if err != nil {
		t.Fatal(err)
	}

	var texts []string
	for _, e := range doc.Excerpts(res.Comment) {
		if e.Content.Buffer() != buf {
			t.Fatalf("excerpt %q is not a view of the input buffer", e.Text())
		}
		if input[e.Content.Pos():e.Content.End()] != e.Text() {
			t.Fatalf("excerpt %q does not match its range", e.Text())
		}
		texts = append(texts, e.Text())
	}
	if diff := cmp.Diff([]string{"text", "@alpha"}, texts); diff != "" {
		t.Fatalf("excerpts mismatch (-want +got):\n%s", diff)
	}
	if !res.Comment.ModifierTagSet.HasTagName("@alpha") {
		t.Fatalf("@alpha should be a modifier")
	}
}

func TestDeterminism(t *testing.T) {
	p := New(demoRegistry(t))
	r := source.FromString("test.ts", "/**\n * A {@link x} @bogus {@customInline}\n * @param y z\n * @returns {@label a} {@label b}\n */")

	first, err := p.ParseRange(r)
	if err != nil {
		t.Fatal(err)
	}
	second, err := p.ParseRange(r)
	if err != nil {
		t.Fatal(err)
	}

	if doc.DumpString(first.Comment, doc.DumpOptions{Excerpts: true}) != doc.DumpString(second.Comment, doc.DumpOptions{Excerpts: true}) {
		t.Fatalf("trees differ between runs")
	}
	a, b := first.Log.Items(), second.Log.Items()
	if len(a) != len(b) || len(a) == 0 {
		t.Fatalf("log lengths %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Code != b[i].Code || a[i].Message != b[i].Message || a[i].Primary != b[i].Primary {
			t.Fatalf("log entry %d differs: %s vs %s", i, a[i], b[i])
		}
	}
}

func TestSharedParserConcurrent(t *testing.T) {
	p := New(demoRegistry(t))
	const input = "/**\n * Summary {@customInline a} text.\n * @customBlock\n * Body\n * @customModifier\n */"
	want := doc.DumpString(mustParse(t, p, input).Comment, doc.DumpOptions{})

	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := p.ParseString("test.ts", input)
			if err != nil {
				errs <- err.Error()
				return
			}
			if got := doc.DumpString(res.Comment, doc.DumpOptions{}); got != want {
				errs <- got
			}
		}()
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Fatalf("concurrent parse diverged: %s", e)
	}
}

func TestPreconditions(t *testing.T) {
	p := New(nil)
	if _, err := p.ParseRange(source.TextRange{}); !errors.Is(err, source.ErrNilBuffer) {
		t.Fatalf("expected ErrNilBuffer, got %v", err)
	}
	if _, err := p.ParseBuffer(nil, 0, 0); !errors.Is(err, source.ErrNilBuffer) {
		t.Fatalf("expected ErrNilBuffer for nil buffer, got %v", err)
	}
	var rangeErr *source.RangeError
	if _, err := p.ParseBuffer(source.NewBuffer("t", "abc"), 2, 1); !errors.As(err, &rangeErr) {
		t.Fatalf("expected RangeError, got %v", err)
	}
	if _, err := p.ParseBuffer(source.NewBuffer("t", "abc"), 0, 4); !errors.As(err, &rangeErr) {
		t.Fatalf("expected RangeError past the end, got %v", err)
	}
}

func TestNewSealsRegistry(t *testing.T) {
	reg := tags.NewRegistry(tags.Options{})
	New(reg)
	if err := reg.AddDefinitions(tags.Definition{TagName: "@late", SyntaxKind: tags.BlockTag}); !errors.Is(err, tags.ErrSealed) {
		t.Fatalf("expected ErrSealed after New, got %v", err)
	}
}

func TestDemoDump(t *testing.T) {
	input := "/**\n * Summary {@customInline x}.\n * @customBlock\n * Hello\n * @customModifier\n */"
	res := mustParse(t, New(demoRegistry(t)), input)
	want := `- Comment
  - Section
    - Paragraph
      - PlainText: "Summary "
      - InlineTag: "{@customInline x}"
      - PlainText: "."
  - Block
    - BlockTag: "@customBlock"
    - Section
      - Paragraph
        - PlainText: "Hello"
  - ModifierTag: "@customModifier"
`
	if diff := cmp.Diff(want, doc.DumpString(res.Comment, doc.DumpOptions{})); diff != "" {
		t.Fatalf("dump mismatch (-want +got):\n%s", diff)
	}
	if res.Log.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(res.Log))
	}
	if len(res.Lines) != 4 || res.Tokens[len(res.Tokens)-1].Kind.String() != "EOF" {
		t.Fatalf("unexpected lines/tokens: %d lines", len(res.Lines))
	}
}

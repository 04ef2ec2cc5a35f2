package parser

import (
	"fmt"
	"strings"
	"testing"

	"tsdoc/internal/diag"
	"tsdoc/internal/doc"
	"tsdoc/internal/tags"
)

// demoRegistry — стандартный набор плюс три демонстрационных тега
func demoRegistry(t *testing.T) *tags.Registry {
	t.Helper()
	reg, err := tags.NewCustomRegistry(
		tags.Definition{TagName: "@customInline", SyntaxKind: tags.InlineTag, AllowMultiple: true},
		tags.Definition{TagName: "@customBlock", SyntaxKind: tags.BlockTag},
		tags.Definition{TagName: "@customModifier", SyntaxKind: tags.ModifierTag},
	)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	return reg
}

func mustParse(t *testing.T, p *Parser, text string) *Result {
	t.Helper()
	res, err := p.ParseString("test.ts", text)
	if err != nil {
		t.Fatalf("ParseString(%q): %v", text, err)
	}
	return res
}

func diagnosticsSummary(log *diag.Log) string {
	if log.Len() == 0 {
		return "<none>"
	}
	lines := make([]string, 0, log.Len())
	for _, d := range log.Items() {
		lines = append(lines, fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message))
	}
	return strings.Join(lines, "; ")
}

func codes(log *diag.Log) []diag.Code {
	var out []diag.Code
	for _, d := range log.Items() {
		out = append(out, d.Code)
	}
	return out
}

// paragraphNodes возвращает "Kind:text" для узлов первого абзаца секции
func paragraphNodes(t *testing.T, s *doc.Section) []string {
	t.Helper()
	if len(s.Nodes) == 0 {
		t.Fatalf("section has no paragraphs")
	}
	p, ok := s.Nodes[0].(*doc.Paragraph)
	if !ok {
		t.Fatalf("expected a paragraph, got %v", s.Nodes[0].Kind())
	}
	var out []string
	for _, n := range p.Nodes {
		switch n := n.(type) {
		case *doc.PlainText:
			out = append(out, "PlainText:"+n.Text)
		case *doc.ErrorText:
			out = append(out, "ErrorText:"+n.Text)
		case *doc.InlineTag:
			out = append(out, "InlineTag:"+n.TagName+"|"+n.Content)
		case *doc.CodeSpan:
			out = append(out, "CodeSpan:"+n.Code)
		default:
			out = append(out, n.Kind().String())
		}
	}
	return out
}

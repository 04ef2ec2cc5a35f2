package lexer_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"tsdoc/internal/diag"
	"tsdoc/internal/lexer"
	"tsdoc/internal/source"
	"tsdoc/internal/token"
)

func frame(t *testing.T, input string) (lexer.Frame, *diag.Log) {
	t.Helper()
	log := diag.NewLog(0)
	f := lexer.ExtractLines(source.FromString("test.ts", input), lexer.Options{Reporter: diag.LogReporter{Log: log}})
	return f, log
}

func lineTexts(f lexer.Frame) []string {
	out := make([]string, 0, len(f.Lines))
	for _, l := range f.Lines {
		out = append(out, l.String())
	}
	return out
}

// dumpTokens — компактное представление "Kind(text)" для сравнения
func dumpTokens(toks []token.Token) []string {
	out := make([]string, 0, len(toks))
	for _, tk := range toks {
		out = append(out, tk.Kind.String()+"("+tk.Text+")")
	}
	return out
}

func TestExtractLines(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		lines  []string
		framed bool
		codes  []diag.Code
	}{
		{
			name:   "single line",
			input:  "/** @alpha text */",
			lines:  []string{"@alpha text"},
			framed: true,
		},
		{
			name:   "gutter and blank edges",
			input:  "/**\n * Summary line.\n *\n * @remarks\n *   More.\n */",
			lines:  []string{"Summary line.", "", "@remarks", "More."},
			framed: true,
		},
		{
			name:   "crlf",
			input:  "/**\r\n * a\r\n * b\r\n */",
			lines:  []string{"a", "b"},
			framed: true,
		},
		{
			name:   "bare text",
			input:  "@customBlock\nHello",
			lines:  []string{"@customBlock", "Hello"},
			framed: false,
		},
		{
			name:   "bare text keeps stars",
			input:  "* not a gutter",
			lines:  []string{"* not a gutter"},
			framed: false,
		},
		{
			name:   "unterminated",
			input:  "/** open\n * more",
			lines:  []string{"open", "more"},
			framed: true,
			codes:  []diag.Code{diag.CmtMissingClose},
		},
		{
			name:   "trailing text after close",
			input:  "/** a */ b",
			lines:  []string{"a"},
			framed: true,
			codes:  []diag.Code{diag.CmtUnexpectedClose},
		},
		{
			name:   "plain block comment",
			input:  "/* a */",
			lines:  []string{"a"},
			framed: true,
			codes:  []diag.Code{diag.CmtMissingOpenSlash},
		},
		{
			name:   "empty doc comment",
			input:  "/**/",
			framed: true,
			codes:  []diag.Code{diag.CmtMissingOpenSlash},
		},
		{
			name:  "empty range",
			input: "",
			codes: []diag.Code{diag.CmtEmptyRange},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, log := frame(t, tt.input)
			if diff := cmp.Diff(tt.lines, lineTexts(f), cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("lines mismatch (-want +got):\n%s", diff)
			}
			if f.Framed != tt.framed {
				t.Fatalf("Framed = %v, want %v", f.Framed, tt.framed)
			}
			var codes []diag.Code
			for _, d := range log.Items() {
				codes = append(codes, d.Code)
			}
			if diff := cmp.Diff(tt.codes, codes); diff != "" {
				t.Fatalf("codes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtractLinesAreBufferViews(t *testing.T) {
	input := "/**\n * first\n * second\n */"
	r := source.FromString("test.ts", input)
	f := lexer.ExtractLines(r, lexer.Options{})

	for _, l := range f.Lines {
		if l.Buffer() != r.Buffer() {
			t.Fatalf("line %q does not share the input buffer", l.String())
		}
		if input[l.Pos():l.End()] != l.String() {
			t.Fatalf("line %q is not a slice of the input", l.String())
		}
	}
	if got := f.Lines[0].Pos(); got != strings.Index(input, "first") {
		t.Fatalf("first line starts at %d", got)
	}
}

func TestTokenize(t *testing.T) {
	f, _ := frame(t, "/**\n * Use {@link Foo.bar} or `x@y`.\n * @param a_1 - héllo → ok\\\n */")
	got := dumpTokens(lexer.Tokenize(f))
	want := []string{
		"Word(Use)", "Spacing( )", "LBrace({)", "AtSign(@)", "Word(link)", "Spacing( )",
		"Word(Foo)", "Punct(.)", "Word(bar)", "RBrace(})", "Spacing( )", "Word(or)", "Spacing( )",
		"Backtick(`)", "Word(x)", "AtSign(@)", "Word(y)", "Backtick(`)", "Punct(.)",
		"Newline(\n)",
		"AtSign(@)", "Word(param)", "Spacing( )", "Word(a_1)", "Spacing( )", "Punct(-)", "Spacing( )",
		"Word(héllo)", "Spacing( )", "Other(→)", "Spacing( )", "Word(ok)", "Backslash(\\)",
		"EOF()",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("token mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenRangesMatchText(t *testing.T) {
	input := "/**\r\n * a {@b}\r\n *\r\n * c\r\n */"
	r := source.FromString("test.ts", input)
	toks := lexer.Tokenize(lexer.ExtractLines(r, lexer.Options{}))

	newlines := 0
	for _, tk := range toks {
		if input[tk.Range.Pos():tk.Range.End()] != tk.Text {
			t.Fatalf("%v text %q does not match its range", tk.Kind, tk.Text)
		}
		if tk.Kind == token.Newline {
			newlines++
			if tk.Text != "\n" {
				t.Fatalf("newline token points at %q", tk.Text)
			}
		}
	}
	// "a {@b}", "", "c" → два перевода строки
	if newlines != 2 {
		t.Fatalf("expected 2 newline tokens, got %d", newlines)
	}
	last := toks[len(toks)-1]
	if last.Kind != token.EOF || last.Line != 2 {
		t.Fatalf("expected EOF on line 2, got %v on line %d", last.Kind, last.Line)
	}
}

func TestLexerPeekAndEOF(t *testing.T) {
	f, _ := frame(t, "ab")
	lx := lexer.New(f)
	if p := lx.Peek(); p.Kind != token.Word || p.Text != "ab" {
		t.Fatalf("Peek = %v(%q)", p.Kind, p.Text)
	}
	if n := lx.Next(); n.Text != "ab" {
		t.Fatalf("Next after Peek = %q", n.Text)
	}
	for range 3 {
		if n := lx.Next(); n.Kind != token.EOF {
			t.Fatalf("expected EOF forever, got %v", n.Kind)
		}
	}

	empty := lexer.Tokenize(lexer.Frame{})
	if len(empty) != 1 || empty[0].Kind != token.EOF {
		t.Fatalf("empty frame must yield a single EOF, got %v", dumpTokens(empty))
	}
}

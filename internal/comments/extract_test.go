package comments_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"tsdoc/internal/comments"
	"tsdoc/internal/diag"
	"tsdoc/internal/source"
)

type found struct {
	Text  string
	Owner string
	Doc   bool
}

func summarize(list []comments.Comment) []found {
	out := make([]found, 0, len(list))
	for _, c := range list {
		out = append(out, found{Text: c.Range.String(), Owner: c.OwnerName(), Doc: c.Doc})
	}
	return out
}

func TestExtractDocComments(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		plain bool
		want  []found
	}{
		{
			name: "function",
			src:  "/** Adds. */\nexport function add(a, b) {}\n",
			want: []found{{Text: "/** Adds. */", Owner: "add", Doc: true}},
		},
		{
			name: "members skip modifiers",
			src:  "class A {\n  /** one */\n  static readonly alpha: T;\n  /** two */\n  private get beta() {}\n}",
			want: []found{
				{Text: "/** one */", Owner: "alpha", Doc: true},
				{Text: "/** two */", Owner: "beta", Doc: true},
			},
		},
		{
			name: "plain comments are skipped by default",
			src:  "/* plain */ let x = 1;\n/**/ let y;\n/** doc */ const z = 2;",
			want: []found{{Text: "/** doc */", Owner: "z", Doc: true}},
		},
		{
			name:  "plain comments on request",
			src:   "/* plain */ let x = 1;",
			plain: true,
			want:  []found{{Text: "/* plain */", Owner: "x", Doc: false}},
		},
		{
			name: "strings and line comments hide openers",
			src:  "const s = \"/** no */\";\nconst c = '/*';\n// /** no */\n/** yes */ f();",
			want: []found{{Text: "/** yes */", Owner: "f", Doc: true}},
		},
		{
			name: "template literal with substitution",
			src:  "const t = `a ${ {k: \"/**\"}.k } /** b */`;\n/** yes */\nvar q;",
			want: []found{{Text: "/** yes */", Owner: "q", Doc: true}},
		},
		{
			name: "no owner before punctuation",
			src:  "/** lonely */\n(function () {})();",
			want: []found{{Text: "/** lonely */", Doc: true}},
		},
		{
			name: "modifier keywords as member names",
			src: "class T {\n  /** a */\n  static readonly override: X;\n  /** b */\n  static readonly readonly: X;\n" +
				"  /** c */\n  public?: string;\n  /** d */\n  get(): void;\n  /** e */\n  export default class Real {}\n}",
			want: []found{
				{Text: "/** a */", Owner: "override", Doc: true},
				{Text: "/** b */", Owner: "readonly", Doc: true},
				{Text: "/** c */", Owner: "public", Doc: true},
				{Text: "/** d */", Owner: "get", Doc: true},
				{Text: "/** e */", Owner: "Real", Doc: true},
			},
		},
		{
			name: "regular expression literals hide openers",
			src:  "const re = /\\/*/g;\nif (x.match(/[/*]+/)) {}\n/** doc */\nfunction f() {}\nconst half = a / 2; /** two */ let z;",
			want: []found{
				{Text: "/** doc */", Owner: "f", Doc: true},
				{Text: "/** two */", Owner: "z", Doc: true},
			},
		},
		{
			name: "owner after line comment",
			src:  "/** doc */\n// note\ninterface Shape {}",
			want: []found{{Text: "/** doc */", Owner: "Shape", Doc: true}},
		},
		{
			name: "comments do not nest",
			src:  "/** outer /** inner */ tail */",
			want: []found{{Text: "/** outer /** inner */", Owner: "tail", Doc: true}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := source.FromString("a.ts", tt.src)
			got := summarize(comments.Extract(r, comments.Options{IncludePlain: tt.plain}))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("comments mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtractRangesPointIntoBuffer(t *testing.T) {
	src := "let a;\n/** first */\nlet b;\n/** second */ let c;"
	r := source.FromString("a.ts", src)
	list := comments.Extract(r, comments.Options{})
	if len(list) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(list))
	}
	for _, c := range list {
		if c.Range.Buffer() != r.Buffer() || c.Owner.Buffer() != r.Buffer() {
			t.Fatalf("range %s does not share the input buffer", c.Range.Debug())
		}
		if got := src[c.Range.Pos():c.Range.End()]; got != c.Range.String() {
			t.Fatalf("range text %q, buffer slice %q", c.Range.String(), got)
		}
	}
	if list[0].Range.Pos() != len("let a;\n") {
		t.Fatalf("first comment starts at %d", list[0].Range.Pos())
	}
}

func TestExtractUnterminated(t *testing.T) {
	log := diag.NewLog(0)
	r := source.FromString("a.ts", "let a;\n/** open to the end")
	list := comments.Extract(r, comments.Options{Reporter: diag.LogReporter{Log: log}})
	if len(list) != 1 || list[0].Range.String() != "/** open to the end" {
		t.Fatalf("unexpected comments: %+v", summarize(list))
	}
	items := log.Items()
	if len(items) != 1 || items[0].Code != diag.CmtMissingClose || items[0].Severity != diag.SevError {
		t.Fatalf("expected one CmtMissingClose error, got %+v", items)
	}
	if items[0].Primary.String() != "/*" {
		t.Fatalf("diagnostic range %q", items[0].Primary.String())
	}
}

func TestExtractSubrange(t *testing.T) {
	src := "/** outside */ let a;\n/** inside */ let b;"
	r := source.FromString("a.ts", src)
	sub := r.Sub(len("/** outside */ let a;\n"), len(src))
	got := summarize(comments.Extract(sub, comments.Options{}))
	want := []found{{Text: "/** inside */", Owner: "b", Doc: true}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("comments mismatch (-want +got):\n%s", diff)
	}
}

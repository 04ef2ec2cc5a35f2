package apidoc_test

import (
	"strings"
	"testing"

	"tsdoc/internal/apidoc"
	"tsdoc/internal/diag"
	"tsdoc/internal/parser"
	"tsdoc/internal/source"
	"tsdoc/internal/tags"
)

func TestStandardDocumentsEveryStandardTag(t *testing.T) {
	m, err := apidoc.Standard()
	if err != nil {
		t.Fatalf("Standard: %v", err)
	}
	std := tags.Standard()
	if m.Len() != len(std) {
		t.Fatalf("expected %d documented tags, got %d", len(std), m.Len())
	}
	for i, def := range std {
		summary, ok := m.Summary(def.TagName)
		if !ok {
			t.Fatalf("%s has no summary", def.TagName)
		}
		if strings.Contains(summary, "\n") {
			t.Fatalf("%s summary spans lines: %q", def.TagName, summary)
		}
		if !strings.HasPrefix(summary, "("+def.Standardization.String()+")") {
			t.Fatalf("%s summary does not start with its standardization: %q", def.TagName, summary)
		}
		if got := m.Items()[i].Name; "@"+got != def.TagName {
			t.Fatalf("item %d is %q, want %q", i, got, def.TagName)
		}
	}
}

func TestStandardDeclarationsParseCleanly(t *testing.T) {
	log := diag.NewLog(0)
	r := source.FromString(tags.StandardDeclarationsName, tags.StandardDeclarations)
	if _, err := apidoc.Build(r, parser.New(nil), log); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if log.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", log.Items())
	}
}

func TestStandardSummaries(t *testing.T) {
	m, err := apidoc.Standard()
	if err != nil {
		t.Fatalf("Standard: %v", err)
	}
	tests := []struct {
		tag  string
		want string
	}{
		{"@returns", "(Core) Used to document the return value for a function."},
		{"@RETURNS", "(Core) Used to document the return value for a function."},
		{"label", "(Core) The `{@label}` inline tag is used to label a declaration, so that it can be referenced using a selector in the documentation reference notation."},
	}
	for _, tt := range tests {
		got, ok := m.Summary(tt.tag)
		if !ok || got != tt.want {
			t.Fatalf("Summary(%q) = %q, %v; want %q", tt.tag, got, ok, tt.want)
		}
	}
	// remarks are not part of the summary
	alpha, _ := m.Summary("@alpha")
	if strings.Contains(alpha, "Example implementations") {
		t.Fatalf("summary leaked remarks: %q", alpha)
	}
}

func TestBuildCustomDeclarations(t *testing.T) {
	src := strings.Join([]string{
		"export declare class CustomTags {",
		"  /** Custom block.",
		"   * Second line. */",
		"  static readonly customBlock: TagDefinition;",
		"  /** @remarks only remarks */",
		"  static readonly customEmpty: TagDefinition;",
		"  /** Orphan. */",
		"}",
	}, "\n")
	m, err := apidoc.Build(source.FromString("custom.d.ts", src), parser.New(nil), nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if m.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", m.Len())
	}
	if got, ok := m.Summary("@customBlock"); !ok || got != "Custom block. Second line." {
		t.Fatalf("customBlock summary %q, %v", got, ok)
	}
	if _, ok := m.Summary("@customEmpty"); ok {
		t.Fatalf("an empty summary must count as missing")
	}
	if _, ok := m.Summary("@nothing"); ok {
		t.Fatalf("unexpected summary for an undeclared name")
	}
}

func TestStandardWithOverrides(t *testing.T) {
	src := "/** Overridden. */ static readonly beta: T;\n/** Mine. */ static readonly mine: T;"
	extra, err := apidoc.Build(source.FromString("extra.d.ts", src), parser.New(nil), nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	m, err := apidoc.StandardWith(extra)
	if err != nil {
		t.Fatalf("StandardWith: %v", err)
	}
	if got, _ := m.Summary("@beta"); got != "Overridden." {
		t.Fatalf("beta summary %q", got)
	}
	if got, _ := m.Summary("@mine"); got != "Mine." {
		t.Fatalf("mine summary %q", got)
	}
	if m.Len() != len(tags.Standard())+1 {
		t.Fatalf("unexpected length %d", m.Len())
	}
	// общая стандартная модель не должна меняться
	std, _ := apidoc.Standard()
	if got, _ := std.Summary("@beta"); got == "Overridden." {
		t.Fatalf("StandardWith modified the shared model")
	}
}

func TestBuildRejectsZeroRange(t *testing.T) {
	if _, err := apidoc.Build(source.TextRange{}, parser.New(nil), nil); err == nil {
		t.Fatalf("expected an error for the zero range")
	}
}

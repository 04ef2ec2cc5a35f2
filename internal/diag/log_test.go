package diag

import (
	"testing"

	"tsdoc/internal/source"
)

func TestLogKeepsEmissionOrder(t *testing.T) {
	r := source.FromString("t", "@b @a")
	log := NewLog(0)
	rep := LogReporter{Log: log}

	Warnf(rep, DocUnsupportedTag, r.Sub(3, 5), "%s", "second")
	Warnf(rep, DocUnsupportedTag, r.Sub(0, 2), "first")
	Emit(rep, New(SevInfo, DocInfo, r, "info"))

	items := log.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].Message != "second" || items[1].Message != "first" {
		t.Fatalf("log was reordered: %v", items)
	}
	if log.Count(DocUnsupportedTag) != 2 || len(log.Filter(DocInfo)) != 1 {
		t.Fatalf("unexpected counts")
	}
	if log.HasErrors() || !log.HasWarnings() {
		t.Fatalf("unexpected severity summary")
	}

	log.Escalate(DocUnsupportedTag, SevError)
	if !log.HasErrors() {
		t.Fatalf("expected escalation to produce errors")
	}
}

func TestLogLimitAndMerge(t *testing.T) {
	r := source.FromString("t", "x")
	log := NewLog(1)
	if !log.Add(NewWarning(DocInfo, r, "a")) {
		t.Fatalf("first add must succeed")
	}
	if log.Add(NewWarning(DocInfo, r, "b")) {
		t.Fatalf("second add must hit the limit")
	}

	other := NewLog(0)
	other.Add(NewError(DocInfo, r, "c"))
	other.Add(NewError(DocInfo, r, "d"))
	log.Merge(other)
	if log.Len() != 3 {
		t.Fatalf("merge should grow the limit, got %d", log.Len())
	}
}

func TestWithNoteDoesNotAlias(t *testing.T) {
	r := source.FromString("t", "abc")
	base := NewError(DocMalformedInlineTag, r, "bad").WithNote(r.Sub(0, 1), "a")
	left := base.WithNote(r.Sub(1, 2), "b")
	right := base.WithNote(r.Sub(2, 3), "c")
	if len(base.Notes) != 1 || left.Notes[1].Msg != "b" || right.Notes[1].Msg != "c" {
		t.Fatalf("notes alias: base=%v left=%v right=%v", base.Notes, left.Notes, right.Notes)
	}
	if got := left.Notes[1].Range.String(); got != "b" {
		t.Fatalf("note range = %q", got)
	}
}

func TestNilReporterHelpers(t *testing.T) {
	r := source.FromString("t", "abc")
	Errorf(nil, DocMalformedInlineTag, r, "dropped %d", 1)
	var got []Diagnostic
	Errorf(ReporterFunc(func(d Diagnostic) { got = append(got, d) }), DocMalformedInlineTag, r, "bad %s", "tag")
	if len(got) != 1 || got[0].Message != "bad tag" || got[0].Severity != SevError {
		t.Fatalf("unexpected diagnostics %v", got)
	}
	if SevWarning.String() != "WARNING" || SevWarning.Label() != "warning" || Severity(9).Label() != "unknown" {
		t.Fatalf("unexpected severity names")
	}
}

func TestDedup(t *testing.T) {
	r := source.FromString("t", "abc")
	log := NewLog(0)
	dedup := Dedup(LogReporter{Log: log})
	for range 3 {
		dedup.Report(NewWarning(DocUnsupportedTag, r, "same"))
	}
	dedup.Report(NewWarning(DocUnsupportedTag, r.Sub(0, 1), "same"))
	if log.Len() != 2 {
		t.Fatalf("expected 2 unique diagnostics, got %d", log.Len())
	}
}

func TestCodeIDs(t *testing.T) {
	cases := map[Code]string{
		CmtMissingClose:       "CMT1001",
		DocUnsupportedTag:     "DOC2001",
		CfgReplacedDefinition: "CFG3001",
		ObsTimings:            "OBS6001",
		UnknownCode:           "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
	if Code(2999).Title() != "Unknown error" {
		t.Errorf("unknown codes should fall back to the default title")
	}
}

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")

	id := fs.Add("/workspace/src/sample.ts", []byte("/**\n * @bogus x\n */\n"), 0)
	buf := fs.Get(id).Buf
	foreign := source.FromString("elsewhere", "zzz")

	diags := []Diagnostic{
		NewWarning(DocUnsupportedTag, source.MustRange(buf, 7, 13), "the tag \"@bogus\"\nis not defined").
			WithNote(foreign, "dropped"),
		NewError(CmtMissingClose, source.MustRange(buf, 0, 3), "missing */"),
	}

	expected := "error CMT1001 src/sample.ts:1:1 missing */\n" +
		"warning DOC2001 src/sample.ts:2:4 the tag \"@bogus\" is not defined"

	if got := FormatGoldenDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

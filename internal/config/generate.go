package config

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/mitchellh/go-wordwrap"

	"tsdoc/internal/diag"
	"tsdoc/internal/tags"
)

// DefaultWrapWidth is the column limit of generated summary comments.
const DefaultWrapWidth = 80

// DocSource supplies the summary text written above each definition.
type DocSource interface {
	Summary(tagName string) (string, bool)
}

// MapDocSource is a DocSource backed by a map keyed by tag name. Lookups
// fold case like the registry does; when several keys fold to the same
// name, the smallest key in byte order wins.
type MapDocSource map[string]string

func (m MapDocSource) Summary(tagName string) (string, bool) {
	if s, ok := m[tagName]; ok {
		return s, true
	}
	for _, name := range slices.Sorted(maps.Keys(m)) {
		if tags.SameName(name, tagName) {
			return m[name], true
		}
	}
	return "", false
}

// MissingDocumentationError means a definition has no summary to emit.
type MissingDocumentationError struct {
	TagName string
}

func (e *MissingDocumentationError) Error() string {
	return fmt.Sprintf("unable to find documentation for %s", e.TagName)
}

// RoundTripError means the generated artifact did not load back into the
// registry it was generated from.
type RoundTripError struct {
	Reason string
	Err    error
}

func (e *RoundTripError) Error() string {
	msg := "generated configuration does not round-trip: " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *RoundTripError) Unwrap() error { return e.Err }

type GenerateOptions struct {
	Format Format
	// Width of the summary comments; 0 means DefaultWrapWidth.
	Width uint
	// Source names what the banner tells readers to edit.
	Source string
}

type record struct {
	def     tags.Definition
	summary []string
}

type artifact struct {
	opts       GenerateOptions
	noStandard bool
	records    []record
	support    []supportRecord
}

type supportRecord struct {
	name      string
	supported bool
}

// Generate renders reg as a configuration file, one documented record per
// definition in registry order, and checks that the result loads back into
// an equal registry. Nothing is returned unless that check passes. The
// output depends only on reg, docs and opts.
func Generate(reg *tags.Registry, docs DocSource, opts GenerateOptions) ([]byte, error) {
	if opts.Width == 0 {
		opts.Width = DefaultWrapWidth
	}
	if opts.Source == "" {
		opts.Source = "tag declarations"
	}
	if opts.Format == FormatYAML {
		return nil, fmt.Errorf("generate: %s output is not supported", opts.Format)
	}

	a := artifact{opts: opts, noStandard: !reg.HasStandardTags()}
	for _, def := range reg.AllDefinitions() {
		summary, ok := docs.Summary(def.TagName)
		if !ok || strings.TrimSpace(summary) == "" {
			return nil, &MissingDocumentationError{TagName: def.TagName}
		}
		a.records = append(a.records, record{def: def, summary: wrap(summary, opts.Width)})
	}
	for name, ok := range reg.SupportForTags() {
		a.support = append(a.support, supportRecord{name: name, supported: ok})
	}
	slices.SortFunc(a.support, func(x, y supportRecord) int {
		return strings.Compare(tags.NameKey(x.name), tags.NameKey(y.name))
	})

	var out []byte
	switch opts.Format {
	case FormatTOML:
		out = a.toml()
	default:
		out = a.jsonc()
	}
	if err := verifyRoundTrip(reg, out, opts.Format); err != nil {
		return nil, err
	}
	return out, nil
}

// wrap схлопывает пробелы и переносит по словам; слово длиннее width
// остаётся целым на своей строке
func wrap(s string, width uint) []string {
	text := strings.Join(strings.Fields(s), " ")
	return strings.Split(wordwrap.WrapString(text, width), "\n")
}

func (a *artifact) banner(prefix string) []string {
	return []string{
		prefix + " This file defines the TSDoc tags of a parser configuration. Your tsdoc.json",
		prefix + " config file can extend it or copy the records it needs.",
		prefix,
		prefix + " (THIS IS A MACHINE-GENERATED FILE. To make a change, edit the " + a.opts.Source,
		prefix + " and run \"tsdoc gen-config\".)",
	}
}

func quote(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		// строки всегда сериализуемы
		panic(err)
	}
	return string(b)
}

func (a *artifact) jsonc() []byte {
	lines := a.banner("//")
	lines = append(lines,
		"{",
		`  "$schema": `+quote(SchemaURL)+",",
		"",
	)
	if a.noStandard {
		lines = append(lines, `  "noStandardTags": true,`, "")
	}
	lines = append(lines, `  "tagDefinitions": [`)
	for i, rec := range a.records {
		if i > 0 {
			lines[len(lines)-1] += ","
			lines = append(lines, "")
		}
		for _, s := range rec.summary {
			lines = append(lines, "    // "+s)
		}
		lines = append(lines,
			"    {",
			`      "tagName": `+quote(rec.def.TagName)+",",
		)
		kind := `      "syntaxKind": ` + quote(rec.def.SyntaxKind.String())
		if rec.def.AllowMultiple {
			lines = append(lines, kind+",", `      "allowMultiple": true`)
		} else {
			lines = append(lines, kind)
		}
		lines = append(lines, "    }")
	}
	lines = append(lines,
		"  ],",
		"",
		"  // Note: Adding at least one entry to this list enables warnings for unsupported tags",
	)
	if len(a.support) == 0 {
		lines = append(lines, `  "supportForTags": { }`)
	} else {
		lines = append(lines, `  "supportForTags": {`)
		for i, s := range a.support {
			line := fmt.Sprintf("    %s: %t", quote(s.name), s.supported)
			if i < len(a.support)-1 {
				line += ","
			}
			lines = append(lines, line)
		}
		lines = append(lines, "  }")
	}
	lines = append(lines, "}")
	return []byte(strings.Join(lines, "\n") + "\n")
}

func (a *artifact) toml() []byte {
	lines := a.banner("#")
	lines = append(lines, "", `"$schema" = `+quote(SchemaURL))
	if a.noStandard {
		lines = append(lines, "noStandardTags = true")
	}
	if len(a.records) == 0 {
		lines = append(lines, "tagDefinitions = []")
	}
	for _, rec := range a.records {
		lines = append(lines, "")
		for _, s := range rec.summary {
			lines = append(lines, "# "+s)
		}
		lines = append(lines,
			"[[tagDefinitions]]",
			"tagName = "+quote(rec.def.TagName),
			"syntaxKind = "+quote(rec.def.SyntaxKind.String()),
		)
		if rec.def.AllowMultiple {
			lines = append(lines, "allowMultiple = true")
		}
	}
	lines = append(lines,
		"",
		"# Note: Adding at least one entry to this table enables warnings for unsupported tags",
		"[supportForTags]",
	)
	for _, s := range a.support {
		lines = append(lines, fmt.Sprintf("%s = %t", quote(s.name), s.supported))
	}
	return []byte(strings.Join(lines, "\n") + "\n")
}

// verifyRoundTrip перечитывает артефакт тем же загрузчиком, что и потребители
func verifyRoundTrip(reg *tags.Registry, out []byte, format Format) error {
	cfg, err := LoadBytes("generated"+format.Ext(), out, LoadOptions{})
	if err != nil {
		return &RoundTripError{Reason: "reload failed", Err: err}
	}
	for _, d := range cfg.Log.Items() {
		if d.Severity == diag.SevError {
			return &RoundTripError{Reason: fmt.Sprintf("%s %s", d.Code.ID(), d.Message)}
		}
	}

	want, got := reg.AllDefinitions(), cfg.Registry.AllDefinitions()
	if len(want) != len(got) {
		return &RoundTripError{Reason: fmt.Sprintf("expected %d definitions, reloaded %d", len(want), len(got))}
	}
	for i := range want {
		w, g := want[i], got[i]
		if w.TagName != g.TagName || w.SyntaxKind != g.SyntaxKind || w.AllowMultiple != g.AllowMultiple {
			return &RoundTripError{Reason: fmt.Sprintf("definition %d: expected %s (%s), reloaded %s (%s)",
				i, w.TagName, w.SyntaxKind, g.TagName, g.SyntaxKind)}
		}
	}
	if reg.Fingerprint() != cfg.Registry.Fingerprint() {
		return &RoundTripError{Reason: "supportForTags differs after reload"}
	}
	return nil
}

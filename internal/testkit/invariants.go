// Package testkit holds checks shared by tests of several packages.
package testkit

import (
	"fmt"

	"tsdoc/internal/doc"
	"tsdoc/internal/parser"
	"tsdoc/internal/source"
)

// CheckRangeInvariants runs the range invariants on a parse result:
// 1) every line, token, excerpt and located diagnostic is a view of the
// parsed buffer and lies inside the parsed range
// 2) lines and tokens are ordered and do not overlap
// 3) every excerpt's text equals the buffer slice it points at
func CheckRangeInvariants(res *parser.Result) error {
	if res == nil || res.Comment == nil {
		return fmt.Errorf("nil result or comment")
	}
	outer := res.Range
	if outer.IsZero() {
		return fmt.Errorf("result has no range")
	}

	inside := func(what string, r source.TextRange) error {
		if r.Buffer() != outer.Buffer() {
			return fmt.Errorf("%s %s points into a different buffer", what, r.Debug())
		}
		if !outer.Contains(r) {
			return fmt.Errorf("%s %s is outside %s", what, r.Debug(), outer.Debug())
		}
		return nil
	}

	// 1+2) строки и токены
	prev := outer.Pos()
	for i, line := range res.Lines {
		if err := inside(fmt.Sprintf("line %d", i), line); err != nil {
			return err
		}
		if line.Pos() < prev {
			return fmt.Errorf("line %d starts at %d before the previous end %d", i, line.Pos(), prev)
		}
		prev = line.End()
	}
	prev = outer.Pos()
	for i, tok := range res.Tokens {
		if tok.Range.IsZero() {
			continue
		}
		if err := inside(fmt.Sprintf("token %d (%s)", i, tok.Kind), tok.Range); err != nil {
			return err
		}
		if tok.Range.Pos() < prev {
			return fmt.Errorf("token %d starts at %d before the previous end %d", i, tok.Range.Pos(), prev)
		}
		prev = tok.Range.End()
	}

	// 1+3) фрагменты дерева
	for _, e := range doc.Excerpts(res.Comment) {
		if err := inside("excerpt "+e.ExcerptKind.String(), e.Content); err != nil {
			return err
		}
		text := outer.Buffer().Text()[e.Content.Pos():e.Content.End()]
		if text != e.Text() {
			return fmt.Errorf("excerpt text %q differs from its slice %q", e.Text(), text)
		}
	}

	for _, d := range res.Log.Items() {
		if d.Primary.IsZero() {
			continue
		}
		if err := inside("diagnostic "+d.Code.ID(), d.Primary); err != nil {
			return err
		}
	}
	return nil
}

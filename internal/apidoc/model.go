// Package apidoc builds a small documentation model from declaration files:
// every doc comment that precedes a declared name is parsed with the doc
// parser and indexed by that name.
//
// The model is the summary source of the configuration generator. The
// standard tags are documented in an embedded declaration file, so the
// generated configuration describes itself with the same parser it
// configures.
package apidoc

import (
	"fmt"
	"sync"

	"tsdoc/internal/comments"
	"tsdoc/internal/diag"
	"tsdoc/internal/doc"
	"tsdoc/internal/parser"
	"tsdoc/internal/source"
	"tsdoc/internal/tags"
)

// Item is one documented declaration.
type Item struct {
	Name    string
	Comment comments.Comment
	Result  *parser.Result
}

// Summary returns the plain text of the item's summary section.
func (it Item) Summary() string {
	if it.Result == nil || it.Result.Comment == nil {
		return ""
	}
	return doc.ExtractText(it.Result.Comment.SummarySection)
}

// Model indexes documented declarations by name. Lookups fold case the same
// way tag names do.
type Model struct {
	items []Item
	index map[string]int
}

// New returns an empty model.
func New() *Model {
	return &Model{index: make(map[string]int)}
}

// Build extracts the doc comments of r, parses each with p and adds every
// comment that has an owner. Parse and framing diagnostics go to log, which
// may be nil.
func Build(r source.TextRange, p *parser.Parser, log *diag.Log) (*Model, error) {
	if r.IsZero() {
		return nil, source.ErrNilBuffer
	}
	m := New()
	var rep diag.Reporter = diag.NopReporter{}
	if log != nil {
		rep = diag.LogReporter{Log: log}
	}
	for _, c := range comments.Extract(r, comments.Options{Reporter: rep}) {
		if c.Owner.IsZero() {
			continue
		}
		res, err := p.ParseRange(c.Range)
		if err != nil {
			return nil, fmt.Errorf("parse comment of %s: %w", c.OwnerName(), err)
		}
		if log != nil {
			log.Merge(res.Log)
		}
		m.add(Item{Name: c.OwnerName(), Comment: c, Result: res})
	}
	return m, nil
}

// add вставляет или заменяет запись; позиция заменённой сохраняется
func (m *Model) add(it Item) {
	key := memberKey(it.Name)
	if i, ok := m.index[key]; ok {
		m.items[i] = it
		return
	}
	m.index[key] = len(m.items)
	m.items = append(m.items, it)
}

// Merge adds the items of other; on a name collision other wins.
func (m *Model) Merge(other *Model) {
	if other == nil {
		return
	}
	for _, it := range other.items {
		m.add(it)
	}
}

// Items returns the documented declarations in source order.
func (m *Model) Items() []Item { return m.items }

// Len reports the number of documented declarations.
func (m *Model) Len() int { return len(m.items) }

// Lookup finds a declaration by name.
func (m *Model) Lookup(name string) (Item, bool) {
	i, ok := m.index[memberKey(name)]
	if !ok {
		return Item{}, false
	}
	return m.items[i], true
}

// Summary returns the summary text documenting tagName. The leading "@" is
// optional; declarations are named without it. An empty summary counts as
// missing.
func (m *Model) Summary(tagName string) (string, bool) {
	it, ok := m.Lookup(tagName)
	if !ok {
		return "", false
	}
	s := it.Summary()
	return s, s != ""
}

func memberKey(name string) string {
	if len(name) > 0 && name[0] == '@' {
		return tags.NameKey(name)
	}
	return tags.NameKey("@" + name)
}

var standardModel = sync.OnceValues(func() (*Model, error) {
	p := parser.New(tags.NewRegistry(tags.Options{}))
	log := diag.NewLog(0)
	r := source.FromString(tags.StandardDeclarationsName, tags.StandardDeclarations)
	m, err := Build(r, p, log)
	if err != nil {
		return nil, err
	}
	for _, d := range log.Items() {
		if d.Severity == diag.SevError {
			return nil, fmt.Errorf("%s: %s: %s", tags.StandardDeclarationsName, d.Code.ID(), d.Message)
		}
	}
	return m, nil
})

// Standard returns the model of the embedded standard tag declarations.
// The model is built once and shared; callers must not modify it.
func Standard() (*Model, error) {
	return standardModel()
}

// StandardWith returns a fresh model holding the standard declarations
// merged with extra, which wins on collisions.
func StandardWith(extra *Model) (*Model, error) {
	std, err := Standard()
	if err != nil {
		return nil, err
	}
	m := New()
	m.Merge(std)
	m.Merge(extra)
	return m, nil
}

package tags

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ErrSealed is returned when a sealed registry is modified.
var ErrSealed = errors.New("tag registry is sealed")

// Replacement records a definition that replaced an earlier one with the
// same (case-folded) name.
type Replacement struct {
	Previous Definition
	Current  Definition
}

// Options controls how a registry is seeded.
type Options struct {
	// NoStandardTags leaves the standard set out.
	NoStandardTags bool
}

type supportEntry struct {
	name      string
	supported bool
}

// Registry is the ordered, name-indexed set of tag definitions a parser
// recognizes.
//
// Order: standard definitions first in declaration order, then custom
// definitions in insertion order. A definition that replaces an existing
// name keeps the original slot with the new content.
//
// Registry is not safe for concurrent mutation; once sealed it is read-only
// and may be shared by any number of goroutines.
type Registry struct {
	defs         []Definition
	index        map[string]int
	replacements []Replacement
	support      map[string]supportEntry
	noStandard   bool
	sealed       bool
}

// NewRegistry creates a registry seeded with the standard set unless
// opts.NoStandardTags is set.
func NewRegistry(opts Options) *Registry {
	r := &Registry{
		index:      make(map[string]int),
		support:    make(map[string]supportEntry),
		noStandard: opts.NoStandardTags,
	}
	if !opts.NoStandardTags {
		for _, d := range standardTags {
			r.index[d.Key()] = len(r.defs)
			r.defs = append(r.defs, d)
		}
	}
	return r
}

// NewCustomRegistry returns the standard set merged with defs.
func NewCustomRegistry(defs ...Definition) (*Registry, error) {
	r := NewRegistry(Options{})
	if err := r.AddDefinitions(defs...); err != nil {
		return nil, err
	}
	return r, nil
}

// AddDefinitions inserts or replaces each definition by name. All inputs are
// validated before anything is inserted.
func (r *Registry) AddDefinitions(defs ...Definition) error {
	if r.sealed {
		return ErrSealed
	}
	for _, d := range defs {
		if err := d.Validate(); err != nil {
			return err
		}
	}
	for _, d := range defs {
		key := d.Key()
		if slot, ok := r.index[key]; ok {
			r.replacements = append(r.replacements, Replacement{Previous: r.defs[slot], Current: d})
			r.defs[slot] = d
			continue
		}
		r.index[key] = len(r.defs)
		r.defs = append(r.defs, d)
	}
	return nil
}

// AllDefinitions returns every definition in registry order.
func (r *Registry) AllDefinitions() []Definition {
	return slices.Clone(r.defs)
}

// Len returns the number of definitions.
func (r *Registry) Len() int { return len(r.defs) }

// TryGetDefinition looks a definition up by name, case-insensitively.
func (r *Registry) TryGetDefinition(name string) (Definition, bool) {
	slot, ok := r.index[NameKey(name)]
	if !ok {
		return Definition{}, false
	}
	return r.defs[slot], true
}

// DefinitionsOf returns the definitions of one syntax kind in registry order.
func (r *Registry) DefinitionsOf(kind SyntaxKind) []Definition {
	var out []Definition
	for _, d := range r.defs {
		if d.SyntaxKind == kind {
			out = append(out, d)
		}
	}
	return out
}

// Replacements lists every name collision resolved so far, in order.
func (r *Registry) Replacements() []Replacement {
	return slices.Clone(r.replacements)
}

// SetSupport marks a tag as supported or not. Names need not be defined;
// the config loader warns about undefined ones.
func (r *Registry) SetSupport(name string, supported bool) error {
	if r.sealed {
		return ErrSealed
	}
	if err := ValidateTagName(name); err != nil {
		return &InvalidDefinitionError{TagName: name, Reason: err.Error()}
	}
	r.support[NameKey(name)] = supportEntry{name: name, supported: supported}
	return nil
}

// StrictSupport reports whether support checking is enabled, that is whether
// at least one tag appears in the support map.
func (r *Registry) StrictSupport() bool { return len(r.support) > 0 }

// IsSupported reports whether the tag may be used. Without strict support
// every tag is supported.
func (r *Registry) IsSupported(name string) bool {
	if !r.StrictSupport() {
		return true
	}
	return r.support[NameKey(name)].supported
}

// SupportForTags returns a copy of the support map keyed by the names as
// they were given.
func (r *Registry) SupportForTags() map[string]bool {
	out := make(map[string]bool, len(r.support))
	for _, e := range r.support {
		out[e.name] = e.supported
	}
	return out
}

// HasStandardTags reports whether the registry was seeded with the standard
// set. Replacing a standard definition does not change the answer.
func (r *Registry) HasStandardTags() bool { return !r.noStandard }

// Seal makes the registry read-only. Sealing twice is harmless.
func (r *Registry) Seal() { r.sealed = true }

// Sealed reports whether the registry has been sealed.
func (r *Registry) Sealed() bool { return r.sealed }

// Clone returns an unsealed deep copy.
func (r *Registry) Clone() *Registry {
	c := &Registry{
		defs:         slices.Clone(r.defs),
		index:        make(map[string]int, len(r.index)),
		replacements: slices.Clone(r.replacements),
		support:      make(map[string]supportEntry, len(r.support)),
		noStandard:   r.noStandard,
	}
	for k, v := range r.index {
		c.index[k] = v
	}
	for k, v := range r.support {
		c.support[k] = v
	}
	return c
}

// Fingerprint is a stable digest of the definitions (in order) and the
// support map. Two registries that parse every input identically share a
// fingerprint.
func (r *Registry) Fingerprint() string {
	h := sha256.New()
	for _, d := range r.defs {
		fmt.Fprintf(h, "def %s %s %s\n", d.Key(), d.SyntaxKind, strconv.FormatBool(d.AllowMultiple))
	}
	keys := make([]string, 0, len(r.support))
	for k := range r.support {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(h, "support %s %t\n", k, r.support[k].supported)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// String renders the registry as "name:kind" pairs, mostly for debugging.
func (r *Registry) String() string {
	parts := make([]string, 0, len(r.defs))
	for _, d := range r.defs {
		parts = append(parts, d.TagName+":"+d.SyntaxKind.String())
	}
	return strings.Join(parts, " ")
}

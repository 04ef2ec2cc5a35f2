package doc

import (
	"tsdoc/internal/tags"
)

// Comment is the root of a parsed doc comment.
type Comment struct {
	SummarySection  *Section
	RemarksBlock    *Block
	PrivateRemarks  *Block
	DeprecatedBlock *Block
	ReturnsBlock    *Block
	Params          []*ParamBlock
	TypeParams      []*ParamBlock
	SeeBlocks       []*Block
	// InheritDocTag is the {@inheritDoc} tag if present. The node also stays
	// at its position in the content; Children does not repeat it.
	InheritDocTag  *InlineTag
	ModifierTagSet ModifierTagSet
	// CustomBlocks are the remaining block tags in document order.
	CustomBlocks []*Block
}

// NewComment returns a comment with an empty summary section.
func NewComment() *Comment {
	return &Comment{SummarySection: &Section{}}
}

func (*Comment) Kind() Kind { return KindComment }

// Children lists the sections in a fixed order: summary, remarks, private
// remarks, deprecated, params, type params, returns, custom blocks, see
// blocks, then modifier tags.
func (c *Comment) Children() []Node {
	var out []Node
	add := func(b *Block) {
		if b != nil {
			out = append(out, b)
		}
	}
	if c.SummarySection != nil {
		out = append(out, c.SummarySection)
	}
	add(c.RemarksBlock)
	add(c.PrivateRemarks)
	add(c.DeprecatedBlock)
	for _, p := range c.Params {
		out = append(out, p)
	}
	for _, p := range c.TypeParams {
		out = append(out, p)
	}
	add(c.ReturnsBlock)
	for _, b := range c.CustomBlocks {
		out = append(out, b)
	}
	for _, b := range c.SeeBlocks {
		out = append(out, b)
	}
	for _, m := range c.ModifierTagSet.Nodes() {
		out = append(out, m)
	}
	return out
}

// Param returns the @param block for name, if any.
func (c *Comment) Param(name string) (*ParamBlock, bool) {
	for _, p := range c.Params {
		if p.ParameterName == name {
			return p, true
		}
	}
	return nil, false
}

// CustomBlocksNamed returns the custom blocks opened by the given tag.
func (c *Comment) CustomBlocksNamed(name string) []*Block {
	var out []*Block
	for _, b := range c.CustomBlocks {
		if tags.SameName(b.TagName(), name) {
			out = append(out, b)
		}
	}
	return out
}

// ModifierTagSet holds the modifier tags of a comment, deduplicated by
// definition unless the definition allows multiple occurrences.
type ModifierTagSet struct {
	nodes []*ModifierTag
	keys  map[string]struct{}
}

// Add inserts tag for def. It returns false when def forbids repeats and
// the tag is already present; the set is left unchanged in that case.
func (s *ModifierTagSet) Add(tag *ModifierTag, def tags.Definition) bool {
	key := def.Key()
	if _, dup := s.keys[key]; dup && !def.AllowMultiple {
		return false
	}
	if s.keys == nil {
		s.keys = make(map[string]struct{})
	}
	s.keys[key] = struct{}{}
	s.nodes = append(s.nodes, tag)
	return true
}

// HasTag reports whether a tag of the given definition is present.
func (s *ModifierTagSet) HasTag(def tags.Definition) bool {
	return s.HasTagName(def.TagName)
}

// HasTagName reports whether a tag with the given name is present.
func (s *ModifierTagSet) HasTagName(name string) bool {
	_, ok := s.keys[tags.NameKey(name)]
	return ok
}

// Nodes returns the tags in insertion order.
func (s *ModifierTagSet) Nodes() []*ModifierTag { return s.nodes }

// Len returns the number of tags.
func (s *ModifierTagSet) Len() int { return len(s.nodes) }

package tags

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// SyntaxKind is the closed set of tag syntaxes.
type SyntaxKind uint8

const (
	// InvalidKind is the zero value; no definition may carry it.
	InvalidKind SyntaxKind = iota
	// InlineTag is written {@name parameter} inside running text.
	InlineTag
	// BlockTag starts a new titled section: @name followed by content.
	BlockTag
	// ModifierTag is a standalone flag with no content.
	ModifierTag
)

func (k SyntaxKind) String() string {
	switch k {
	case InlineTag:
		return "inline"
	case BlockTag:
		return "block"
	case ModifierTag:
		return "modifier"
	default:
		return "invalid"
	}
}

// Valid reports whether k is one of the three syntax kinds.
func (k SyntaxKind) Valid() bool {
	return k == InlineTag || k == BlockTag || k == ModifierTag
}

// ParseSyntaxKind maps a label ("inline", "block", "modifier") to its kind.
// Labels are matched case-insensitively.
func ParseSyntaxKind(label string) (SyntaxKind, bool) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "inline":
		return InlineTag, true
	case "block":
		return BlockTag, true
	case "modifier":
		return ModifierTag, true
	}
	return InvalidKind, false
}

// Standardization tells how widely a standard tag is expected to be supported.
type Standardization uint8

const (
	// StandardizationNone marks custom tags.
	StandardizationNone Standardization = iota
	// Core tags are essential and supported by every tool.
	Core
	// Extended tags are optional but have a common meaning.
	Extended
	// Discretionary tags have a standard syntax with tool-specific meaning.
	Discretionary
)

func (s Standardization) String() string {
	switch s {
	case Core:
		return "Core"
	case Extended:
		return "Extended"
	case Discretionary:
		return "Discretionary"
	default:
		return "None"
	}
}

// Definition describes one recognized tag.
type Definition struct {
	TagName         string
	SyntaxKind      SyntaxKind
	AllowMultiple   bool
	Standardization Standardization
}

// Key is the normalized lookup key of the definition's name.
func (d Definition) Key() string { return NameKey(d.TagName) }

// Validate checks the definition's preconditions.
func (d Definition) Validate() error {
	if err := ValidateTagName(d.TagName); err != nil {
		return &InvalidDefinitionError{TagName: d.TagName, Reason: err.Error()}
	}
	if !d.SyntaxKind.Valid() {
		return &InvalidDefinitionError{TagName: d.TagName, Reason: fmt.Sprintf("unknown syntax kind %d", d.SyntaxKind)}
	}
	return nil
}

// NameKey folds a tag name for case-insensitive comparison.
// Caser держит состояние, поэтому создаём его на каждый вызов.
func NameKey(name string) string {
	return cases.Fold().String(name)
}

// SameName reports whether two tag names denote the same tag.
func SameName(a, b string) bool { return NameKey(a) == NameKey(b) }

// ValidateTagName checks the "@" + letter + letters/digits form.
func ValidateTagName(name string) error {
	if len(name) < 2 || name[0] != '@' {
		return fmt.Errorf("tag name %q must start with \"@\" followed by a letter", name)
	}
	if !isASCIILetter(name[1]) {
		return fmt.Errorf("tag name %q must start with a letter after \"@\"", name)
	}
	for i := 2; i < len(name); i++ {
		if c := name[i]; !isASCIILetter(c) && (c < '0' || c > '9') {
			return fmt.Errorf("tag name %q contains invalid character %q", name, c)
		}
	}
	return nil
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// InvalidDefinitionError reports a definition that violates its preconditions.
type InvalidDefinitionError struct {
	TagName string
	Reason  string
}

func (e *InvalidDefinitionError) Error() string {
	return fmt.Sprintf("invalid tag definition %q: %s", e.TagName, e.Reason)
}

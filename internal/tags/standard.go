package tags

import (
	_ "embed"
)

// StandardDeclarations holds the documented declaration of every standard
// tag. The summaries in it are the source of the generated configuration.
//
//go:embed standard.d.ts
var StandardDeclarations string

// StandardDeclarationsName is the virtual file name of StandardDeclarations.
const StandardDeclarationsName = "standard.d.ts"

var standardTags = []Definition{
	{TagName: "@alpha", SyntaxKind: ModifierTag, Standardization: Discretionary},
	{TagName: "@beta", SyntaxKind: ModifierTag, Standardization: Discretionary},
	{TagName: "@decorator", SyntaxKind: BlockTag, AllowMultiple: true, Standardization: Extended},
	{TagName: "@defaultValue", SyntaxKind: BlockTag, Standardization: Extended},
	{TagName: "@deprecated", SyntaxKind: BlockTag, Standardization: Core},
	{TagName: "@eventProperty", SyntaxKind: ModifierTag, Standardization: Extended},
	{TagName: "@example", SyntaxKind: BlockTag, AllowMultiple: true, Standardization: Extended},
	{TagName: "@experimental", SyntaxKind: ModifierTag, Standardization: Discretionary},
	{TagName: "@inheritDoc", SyntaxKind: InlineTag, Standardization: Extended},
	{TagName: "@internal", SyntaxKind: ModifierTag, Standardization: Discretionary},
	{TagName: "@label", SyntaxKind: InlineTag, Standardization: Core},
	{TagName: "@link", SyntaxKind: InlineTag, AllowMultiple: true, Standardization: Core},
	{TagName: "@override", SyntaxKind: ModifierTag, Standardization: Extended},
	{TagName: "@packageDocumentation", SyntaxKind: ModifierTag, Standardization: Core},
	{TagName: "@param", SyntaxKind: BlockTag, AllowMultiple: true, Standardization: Core},
	{TagName: "@privateRemarks", SyntaxKind: BlockTag, Standardization: Core},
	{TagName: "@public", SyntaxKind: ModifierTag, Standardization: Discretionary},
	{TagName: "@readonly", SyntaxKind: ModifierTag, Standardization: Extended},
	{TagName: "@remarks", SyntaxKind: BlockTag, Standardization: Core},
	{TagName: "@returns", SyntaxKind: BlockTag, Standardization: Core},
	{TagName: "@sealed", SyntaxKind: ModifierTag, Standardization: Extended},
	{TagName: "@see", SyntaxKind: BlockTag, AllowMultiple: true, Standardization: Extended},
	{TagName: "@throws", SyntaxKind: BlockTag, AllowMultiple: true, Standardization: Extended},
	{TagName: "@typeParam", SyntaxKind: BlockTag, AllowMultiple: true, Standardization: Core},
	{TagName: "@virtual", SyntaxKind: ModifierTag, Standardization: Extended},
}

// Standard returns the built-in standard tag set in declaration order.
// The slice is a fresh copy.
func Standard() []Definition {
	out := make([]Definition, len(standardTags))
	copy(out, standardTags)
	return out
}

// Fixed slots of a doc comment. The parser routes these block tags to
// dedicated fields instead of the custom block list.
const (
	Remarks        = "@remarks"
	PrivateRemarks = "@privateRemarks"
	Deprecated     = "@deprecated"
	Returns        = "@returns"
	Param          = "@param"
	TypeParam      = "@typeParam"
	See            = "@see"
	InheritDoc     = "@inheritDoc"
)

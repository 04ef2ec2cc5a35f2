package token

// Kind represents the category of a doc-comment token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the comment content.
	EOF

	// Newline separates two content lines.
	Newline
	// Spacing is a run of spaces and tabs.
	Spacing
	// Word is a run of letters, digits and underscores.
	Word
	// AtSign represents '@'.
	AtSign // @
	// LBrace represents '{'.
	LBrace // {
	// RBrace represents '}'.
	RBrace // }
	// Backtick represents '`'.
	Backtick // `
	// Backslash represents '\'.
	Backslash // \
	// Punct is a single ASCII punctuation character not covered above.
	Punct
	// Other is a single non-ASCII rune that is neither letter nor digit.
	Other
)

var kindNames = [...]string{
	Invalid:   "Invalid",
	EOF:       "EOF",
	Newline:   "Newline",
	Spacing:   "Spacing",
	Word:      "Word",
	AtSign:    "AtSign",
	LBrace:    "LBrace",
	RBrace:    "RBrace",
	Backtick:  "Backtick",
	Backslash: "Backslash",
	Punct:     "Punct",
	Other:     "Other",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

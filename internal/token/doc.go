// Package token defines the token kinds produced for doc-comment content.
// Invariants:
//   - Token.Text is a slice of the original buffer (no copies).
//   - Token.Range matches Text exactly (Pos..End).
//   - Tag names are lexed as '@' (Kind: AtSign) + Word; there are no
//     per-tag token kinds. Whether "@word" is a tag is decided by the parser.
//   - Newline tokens sit between content lines and point at the line break
//     in the buffer; the comment gutter ("/**", " * ", "*/") never appears
//     in the stream.
package token

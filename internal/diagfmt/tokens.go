package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"tsdoc/internal/source"
	"tsdoc/internal/token"
)

// TokenOutput is the JSON form of a token.
type TokenOutput struct {
	Kind string `json:"kind"`
	Text string `json:"text,omitempty"`
	Line int    `json:"line"`
	Pos  int    `json:"pos"`
	End  int    `json:"end"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате. Позиции
// line:col берутся из fs, если диапазон ему принадлежит, иначе печатаются
// байтовые смещения.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		if _, err := fmt.Fprintf(w, "%3d: %-10s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		if _, start, end, ok := locate(fs, tok.Range); ok {
			fmt.Fprintf(w, " at %d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
		} else if !tok.Range.IsZero() {
			fmt.Fprintf(w, " at [%d,%d)", tok.Range.Pos(), tok.Range.End())
		}
		fmt.Fprintln(w)

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// BuildTokensOutput converts tokens up to and including EOF.
func BuildTokensOutput(tokens []token.Token) []TokenOutput {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		out := TokenOutput{
			Kind: tok.Kind.String(),
			Text: tok.Text,
			Line: tok.Line,
		}
		if !tok.Range.IsZero() {
			out.Pos, out.End = tok.Range.Pos(), tok.Range.End()
		}
		output = append(output, out)
		if tok.Kind == token.EOF {
			break
		}
	}
	return output
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildTokensOutput(tokens))
}

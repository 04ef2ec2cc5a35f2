package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"tsdoc/internal/diagfmt"
	"tsdoc/internal/driver"
	"tsdoc/internal/parser"
	"tsdoc/internal/source"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file",
	Short: "Show the content lines and tokens of each doc comment",
	Long:  `Tokenize frames every doc comment of a file into content lines and breaks them into tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().Bool("all-comments", false, "also tokenize plain /* */ comments")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	g, err := readGlobalOptions(cmd)
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	allComments, err := cmd.Flags().GetBool("all-comments")
	if err != nil {
		return fmt.Errorf("failed to get all-comments flag: %w", err)
	}

	reg, _, err := loadRegistry(cmd, g, filepath.Dir(filePath))
	if err != nil {
		return err
	}
	fileSet := source.NewFileSet()
	p := parser.NewWithOptions(reg, parser.Options{MaxDiagnostics: g.maxDiagnostics})
	res, err := driver.ParseFile(cmd.Context(), fileSet, filePath, p, driver.Options{
		MaxDiagnostics: g.maxDiagnostics,
		AllComments:    allComments,
	})
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Выводим диагностику в stderr, если есть
	if res.Log.Len() > 0 && !g.quiet {
		diagfmt.Pretty(cmd.ErrOrStderr(), res.Log.Items(), fileSet, g.pretty())
	}

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		return writeTokensPretty(out, res, fileSet)
	case "json":
		return writeTokensJSON(out, res)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeTokensPretty(w io.Writer, res *driver.FileResult, fileSet *source.FileSet) error {
	for i, c := range res.Comments {
		if i > 0 {
			fmt.Fprintln(w)
		}
		header := fmt.Sprintf("comment %d", i+1)
		if start, _, ok := fileSet.Resolve(c.Comment.Range); ok {
			header += fmt.Sprintf(" at %d:%d", start.Line, start.Col)
		}
		if c.Owner != "" {
			header += " (" + c.Owner + ")"
		}
		fmt.Fprintln(w, header)

		fmt.Fprintln(w, "lines:")
		for n, line := range c.Result.Lines {
			fmt.Fprintf(w, "%3d: %q\n", n+1, line.String())
		}
		fmt.Fprintln(w, "tokens:")
		if err := diagfmt.FormatTokensPretty(w, c.Result.Tokens, fileSet); err != nil {
			return err
		}
	}
	return nil
}

type tokenizeCommentJSON struct {
	Owner  string                `json:"owner,omitempty"`
	Lines  []string              `json:"lines"`
	Tokens []diagfmt.TokenOutput `json:"tokens"`
}

func writeTokensJSON(w io.Writer, res *driver.FileResult) error {
	out := make([]tokenizeCommentJSON, 0, len(res.Comments))
	for _, c := range res.Comments {
		item := tokenizeCommentJSON{
			Owner:  c.Owner,
			Lines:  make([]string, 0, len(c.Result.Lines)),
			Tokens: diagfmt.BuildTokensOutput(c.Result.Tokens),
		}
		for _, line := range c.Result.Lines {
			item.Lines = append(item.Lines, line.String())
		}
		out = append(out, item)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

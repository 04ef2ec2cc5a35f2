package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tsdoc/internal/diagfmt"
	"tsdoc/internal/doc"
	"tsdoc/internal/driver"
	"tsdoc/internal/observ"
	"tsdoc/internal/parser"
	"tsdoc/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file",
	Short: "Parse the doc comments of a file and dump them",
	Long: `Parse finds every doc comment of a TypeScript or JavaScript file, parses it
and prints the comment text, the parser log and the DocNode tree`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	parseCmd.Flags().Bool("custom-demo", false, "register @customInline, @customBlock and @customModifier")
	parseCmd.Flags().Bool("all-comments", false, "also parse plain /* */ comments")
	parseCmd.Flags().Bool("excerpts", false, "show excerpt leaves in the tree")
}

// demoModifier is the tag the demo output looks for.
const demoModifier = "@customModifier"

type parseOptions struct {
	color      bool
	customDemo bool
	excerpts   bool
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]

	g, err := readGlobalOptions(cmd)
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	customDemo, err := cmd.Flags().GetBool("custom-demo")
	if err != nil {
		return fmt.Errorf("failed to get custom-demo flag: %w", err)
	}
	allComments, err := cmd.Flags().GetBool("all-comments")
	if err != nil {
		return fmt.Errorf("failed to get all-comments flag: %w", err)
	}
	excerpts, err := cmd.Flags().GetBool("excerpts")
	if err != nil {
		return fmt.Errorf("failed to get excerpts flag: %w", err)
	}

	timer := observ.NewTimer()
	phase := timer.Start("config")
	reg, _, err := loadRegistry(cmd, g, filepath.Dir(path))
	phase.Stop("")
	if err != nil {
		return err
	}
	if customDemo {
		if err := reg.AddDefinitions(demoDefinitions()...); err != nil {
			return err
		}
	}

	p := parser.NewWithOptions(reg, parser.Options{MaxDiagnostics: g.maxDiagnostics})
	fileSet := source.NewFileSet()
	phase = timer.Start("parse")
	res, err := driver.ParseFile(cmd.Context(), fileSet, path, p, driver.Options{
		MaxDiagnostics: g.maxDiagnostics,
		AllComments:    allComments,
	})
	if err != nil {
		phase.Stop("failed")
		return err
	}
	phase.Stop(fmt.Sprintf("%d comments", res.Count))

	out := cmd.OutOrStdout()
	if format == "json" {
		err = writeParseJSON(out, res, fileSet, excerpts)
	} else {
		err = writeParseDemo(out, res, fileSet, parseOptions{
			color:      g.colorOut,
			customDemo: customDemo,
			excerpts:   excerpts,
		})
	}
	if err != nil {
		return err
	}
	if g.timings {
		fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
	}
	return nil
}

// writeParseDemo prints, for every comment of res: the comment text, its
// parser log with host positions in "file(line,col): [TSDoc] message" form,
// and the DocNode outline.
func writeParseDemo(w io.Writer, res *driver.FileResult, fileSet *source.FileSet, opts parseOptions) error {
	heading := color.New(color.FgGreen)
	frame := color.New(color.FgHiBlack)
	content := color.New(color.FgCyan)
	for _, c := range []*color.Color{heading, frame, content} {
		if opts.color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	if len(res.Comments) == 0 {
		_, err := fmt.Fprintf(w, "No doc comments were found in %s.\n", res.Path)
		return err
	}

	for i, c := range res.Comments {
		if i > 0 {
			fmt.Fprintln(w)
		}
		title := fmt.Sprintf("Comment %d of %d", i+1, len(res.Comments))
		if c.Owner != "" {
			title += " (" + c.Owner + ")"
		}
		fmt.Fprintln(w, heading.Sprint(title+":"))

		fmt.Fprintln(w)
		fmt.Fprintln(w, heading.Sprint("Input Buffer:"))
		fmt.Fprintln(w)
		fmt.Fprintln(w, frame.Sprint("<<<<<<"))
		fmt.Fprintln(w, c.Comment.Range.String())
		fmt.Fprintln(w, frame.Sprint(">>>>>>"))

		fmt.Fprintln(w)
		fmt.Fprintln(w, heading.Sprint("Parser Log Messages:"))
		fmt.Fprintln(w)
		if c.Result.Log.Len() == 0 {
			fmt.Fprintln(w, "No errors or warnings.")
		}
		for _, d := range c.Result.Log.Items() {
			if start, _, ok := fileSet.Resolve(d.Primary); ok {
				fmt.Fprintf(w, "%s(%d,%d): [TSDoc] %s\n", res.Path, start.Line, start.Col, d.Message)
			} else {
				fmt.Fprintf(w, "%s: [TSDoc] %s\n", res.Path, d.Message)
			}
		}

		if opts.customDemo {
			found := "NOT FOUND"
			if c.Result.Comment.ModifierTagSet.HasTagName(demoModifier) {
				found = "FOUND"
			}
			fmt.Fprintf(w, "\nThe %s modifier was %s.\n", demoModifier, found)
		}

		fmt.Fprintln(w)
		fmt.Fprintln(w, heading.Sprint("DocNode tree:"))
		fmt.Fprintln(w)
		err := doc.Dump(w, c.Result.Comment, doc.DumpOptions{
			Excerpts: opts.excerpts,
			Content:  func(quoted string) string { return content.Sprint(quoted) },
		})
		if err != nil {
			return err
		}
	}
	return nil
}

type parseFileJSON struct {
	File     string             `json:"file"`
	Comments []parseCommentJSON `json:"comments"`
}

type parseCommentJSON struct {
	Owner       string                    `json:"owner,omitempty"`
	Pos         int                       `json:"pos"`
	End         int                       `json:"end"`
	Diagnostics diagfmt.DiagnosticsOutput `json:"diagnostics"`
	Tree        diagfmt.TreeNode          `json:"tree"`
}

func writeParseJSON(w io.Writer, res *driver.FileResult, fileSet *source.FileSet, excerpts bool) error {
	out := parseFileJSON{File: res.Path, Comments: make([]parseCommentJSON, 0, len(res.Comments))}
	for _, c := range res.Comments {
		out.Comments = append(out.Comments, parseCommentJSON{
			Owner: c.Owner,
			Pos:   c.Comment.Range.Pos(),
			End:   c.Comment.Range.End(),
			Diagnostics: diagfmt.BuildDiagnosticsOutput(c.Result.Log.Items(), fileSet, diagfmt.JSONOpts{
				IncludePositions: true,
				IncludeNotes:     true,
			}),
			Tree: diagfmt.BuildTree(c.Result.Comment, excerpts),
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

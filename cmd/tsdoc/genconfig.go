package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"tsdoc/internal/apidoc"
	"tsdoc/internal/config"
	"tsdoc/internal/diag"
	"tsdoc/internal/diagfmt"
	"tsdoc/internal/parser"
	"tsdoc/internal/source"
	"tsdoc/internal/tags"
	"tsdoc/internal/trace"
)

var genConfigCmd = &cobra.Command{
	Use:   "gen-config [flags]",
	Short: "Generate the documented tag configuration file",
	Long: `Gen-config writes a configuration file that declares every tag of the
registry, each preceded by its summary from the tag declarations. The file is
loaded back and compared with the registry before anything is written.

With --check nothing is written; the command fails and prints a diff when the
file on disk is stale. Without --check the command fails after rewriting a
file whose content changed, so CI notices uncommitted output.`,
	Args: cobra.NoArgs,
	RunE: runGenConfig,
}

func init() {
	genConfigCmd.Flags().Bool("check", false, "only verify that the output file is up to date")
	genConfigCmd.Flags().String("format", "json", "output format (json|toml)")
	genConfigCmd.Flags().String("out", "", "output file (default: tsdoc-base.<ext>)")
	genConfigCmd.Flags().StringSlice("docs", nil, "extra declaration files documenting custom tags")
	genConfigCmd.Flags().Bool("from-config", false, "generate from the loaded configuration instead of the standard set")
	genConfigCmd.Flags().Uint("width", 0, "wrap summaries at this column (default 80)")
	genConfigCmd.Flags().Bool("stdout", false, "print the generated file instead of writing it")
}

type genConfigOptions struct {
	check  bool
	stdout bool
	out    string
	gen    config.GenerateOptions
}

func runGenConfig(cmd *cobra.Command, args []string) error {
	g, err := readGlobalOptions(cmd)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	var opts genConfigOptions
	if opts.check, err = flags.GetBool("check"); err != nil {
		return fmt.Errorf("failed to get check flag: %w", err)
	}
	if opts.stdout, err = flags.GetBool("stdout"); err != nil {
		return fmt.Errorf("failed to get stdout flag: %w", err)
	}
	formatStr, err := flags.GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if opts.gen.Format, err = config.ParseFormat(formatStr); err != nil {
		return err
	}
	if opts.out, err = flags.GetString("out"); err != nil {
		return fmt.Errorf("failed to get out flag: %w", err)
	}
	if opts.out == "" {
		opts.out = "tsdoc-base" + opts.gen.Format.Ext()
	}
	if opts.gen.Width, err = flags.GetUint("width"); err != nil {
		return fmt.Errorf("failed to get width flag: %w", err)
	}
	docFiles, err := flags.GetStringSlice("docs")
	if err != nil {
		return fmt.Errorf("failed to get docs flag: %w", err)
	}
	fromConfig, err := flags.GetBool("from-config")
	if err != nil {
		return fmt.Errorf("failed to get from-config flag: %w", err)
	}

	reg := tags.NewRegistry(tags.Options{})
	if fromConfig {
		if reg, _, err = loadRegistry(cmd, g, "."); err != nil {
			return err
		}
		opts.gen.Source = "the tsdoc configuration"
	}

	_, span := trace.StartSpan(cmd.Context(), trace.ScopePass, "load docs")
	docs, err := loadDocs(cmd.ErrOrStderr(), g, docFiles)
	if err != nil {
		span.End("error")
		return err
	}
	span.End(fmt.Sprintf("%d items", docs.Len()))

	_, span = trace.StartSpan(cmd.Context(), trace.ScopePass, "generate")
	content, err := config.Generate(reg, docs, opts.gen)
	span.End(fmt.Sprintf("%d bytes", len(content)))
	if err != nil {
		return fmt.Errorf("generate config: %w", err)
	}
	return emitGenerated(cmd.OutOrStdout(), content, opts, g.quiet)
}

// loadDocs returns the standard declarations merged with files; later
// files win on collisions.
func loadDocs(stderr io.Writer, g globalOptions, files []string) (*apidoc.Model, error) {
	if len(files) == 0 {
		return apidoc.Standard()
	}
	fileSet := source.NewFileSet()
	p := parser.NewWithOptions(nil, parser.Options{MaxDiagnostics: g.maxDiagnostics})
	extra := apidoc.New()
	for _, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			return nil, fmt.Errorf("load docs: %w", err)
		}
		log := diag.NewLog(g.maxDiagnostics)
		m, err := apidoc.Build(fileSet.Get(id).Buf.Range(), p, log)
		if log.Len() > 0 && !g.quiet {
			diagfmt.Pretty(stderr, log.Items(), fileSet, g.pretty())
		}
		if err != nil {
			return nil, fmt.Errorf("load docs %s: %w", path, err)
		}
		extra.Merge(m)
	}
	return apidoc.StandardWith(extra)
}

// emitGenerated prints, checks or writes content.
func emitGenerated(w io.Writer, content []byte, opts genConfigOptions, quiet bool) error {
	if opts.stdout {
		_, err := w.Write(content)
		return err
	}

	res, err := config.CheckFile(opts.out, content)
	if err != nil {
		return err
	}
	if res.UpToDate {
		if !quiet {
			fmt.Fprintf(w, "%s is up to date\n", opts.out)
		}
		return nil
	}
	if opts.check {
		fmt.Fprint(w, res.Diff)
		return fmt.Errorf("%s is out of date; run tsdoc gen-config to regenerate it", opts.out)
	}

	if err := config.WriteFile(opts.out, content); err != nil {
		return err
	}
	return fmt.Errorf("%s was regenerated; review and commit the changes", displayPath(opts.out))
}

func displayPath(path string) string {
	if rel, err := filepath.Rel(".", path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}

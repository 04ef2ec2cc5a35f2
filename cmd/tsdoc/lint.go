package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"tsdoc/internal/diag"
	"tsdoc/internal/diagfmt"
	"tsdoc/internal/driver"
	"tsdoc/internal/observ"
	"tsdoc/internal/parser"
	"tsdoc/internal/source"
	"tsdoc/internal/trace"
	"tsdoc/internal/version"
)

var lintCmd = &cobra.Command{
	Use:   "lint [flags] [file|directory]",
	Short: "Check the doc comments of a file or a source tree",
	Long: `Lint parses every doc comment of the given file, or of every TypeScript and
JavaScript file under the given directory, and reports malformed comments.
It exits with a non-zero status when any error is found`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLint,
}

func init() {
	lintCmd.Flags().String("format", "pretty", "output format (pretty|json|sarif|short)")
	lintCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	lintCmd.Flags().StringSlice("ext", nil, "file extensions to lint (default: TypeScript and JavaScript)")
	lintCmd.Flags().Bool("all-comments", false, "also check plain /* */ comments")
	lintCmd.Flags().Bool("no-warnings", false, "ignore warnings")
	lintCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	lintCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	lintCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	lintCmd.Flags().Bool("no-cache", false, "do not read or write the result cache")
	lintCmd.Flags().Bool("clear-cache", false, "drop the result cache before linting")
	lintCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
}

type lintOptions struct {
	format           string
	jobs             int
	exts             []string
	allComments      bool
	noWarnings       bool
	warningsAsErrors bool
	withNotes        bool
	fullPath         bool
	noCache          bool
	clearCache       bool
	ui               autoSwitch
}

func readLintOptions(cmd *cobra.Command) (lintOptions, error) {
	flags := cmd.Flags()
	var o lintOptions
	var err error
	if o.format, err = flags.GetString("format"); err != nil {
		return o, fmt.Errorf("failed to get format flag: %w", err)
	}
	switch o.format {
	case "pretty", "json", "sarif", "short":
	default:
		return o, fmt.Errorf("unknown format: %s", o.format)
	}
	if o.jobs, err = flags.GetInt("jobs"); err != nil {
		return o, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if o.exts, err = flags.GetStringSlice("ext"); err != nil {
		return o, fmt.Errorf("failed to get ext flag: %w", err)
	}
	for i, ext := range o.exts {
		if !strings.HasPrefix(ext, ".") {
			o.exts[i] = "." + ext
		}
	}
	if o.allComments, err = flags.GetBool("all-comments"); err != nil {
		return o, fmt.Errorf("failed to get all-comments flag: %w", err)
	}
	if o.noWarnings, err = flags.GetBool("no-warnings"); err != nil {
		return o, fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	if o.warningsAsErrors, err = flags.GetBool("warnings-as-errors"); err != nil {
		return o, fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	if o.withNotes, err = flags.GetBool("with-notes"); err != nil {
		return o, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	if o.fullPath, err = flags.GetBool("fullpath"); err != nil {
		return o, fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	if o.noCache, err = flags.GetBool("no-cache"); err != nil {
		return o, fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	if o.clearCache, err = flags.GetBool("clear-cache"); err != nil {
		return o, fmt.Errorf("failed to get clear-cache flag: %w", err)
	}
	uiFlag, err := flags.GetString("ui")
	if err != nil {
		return o, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if o.ui, err = parseSwitch("ui", uiFlag); err != nil {
		return o, err
	}
	return o, nil
}

func runLint(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}

	g, err := readGlobalOptions(cmd)
	if err != nil {
		return err
	}
	lo, err := readLintOptions(cmd)
	if err != nil {
		return err
	}

	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("lint: %w", err)
	}
	configDir := target
	if !st.IsDir() {
		configDir = filepath.Dir(target)
	}

	timer := observ.NewTimer()
	phase := timer.Start("config")
	reg, _, err := loadRegistry(cmd, g, configDir)
	phase.Stop("")
	if err != nil {
		return err
	}
	p := parser.NewWithOptions(reg, parser.Options{MaxDiagnostics: g.maxDiagnostics})

	opts := driver.Options{
		Extensions:     lo.exts,
		Jobs:           lo.jobs,
		MaxDiagnostics: g.maxDiagnostics,
		AllComments:    lo.allComments,
	}
	if !lo.noCache && st.IsDir() {
		opts.Cache = openCache(cmd.ErrOrStderr(), lo.clearCache)
	}

	ctx, span := trace.StartSpan(cmd.Context(), trace.ScopePass, "lint")
	phase = timer.Start("parse")
	var (
		fileSet *source.FileSet
		results []driver.FileResult
	)
	switch {
	case !st.IsDir():
		fileSet = source.NewFileSetWithBase(configDir)
		var res *driver.FileResult
		res, err = driver.ParseFile(ctx, fileSet, target, p, opts)
		if res != nil {
			results = []driver.FileResult{*res}
		}
	case lo.ui.on(os.Stderr) && lo.format == "pretty":
		var files []string
		if files, err = driver.ListFiles(target, lo.exts); err == nil {
			fileSet, results, err = runLintWithUI(ctx, "linting "+target, files, target, p, opts)
		}
	default:
		fileSet, results, err = driver.ParseDir(ctx, target, p, opts)
	}
	phase.Stop(fmt.Sprintf("%d files", len(results)))
	span.End(fmt.Sprintf("%d files", len(results)))
	if err != nil {
		return err
	}

	log, stats := collectLint(results, lo)
	if g.timings {
		driver.AppendTimings(log, "lint", target, timer.Report())
	}

	out := cmd.OutOrStdout()
	if err := writeLint(out, log, fileSet, lo, g); err != nil {
		return err
	}
	if !g.quiet && lo.format == "pretty" {
		fmt.Fprintln(cmd.ErrOrStderr(), stats)
	}
	if stats.errors > 0 {
		return fmt.Errorf("lint: %d errors", stats.errors)
	}
	return nil
}

// openCache returns nil when the cache is unusable; lint then runs uncached.
func openCache(stderr io.Writer, clear bool) *driver.DiskCache {
	cache, err := driver.OpenDiskCache("tsdoc")
	if err != nil {
		fmt.Fprintf(stderr, "warning: result cache disabled: %v\n", err)
		return nil
	}
	if clear {
		if err := cache.DropAll(); err != nil {
			fmt.Fprintf(stderr, "warning: failed to clear result cache: %v\n", err)
		}
	}
	return cache
}

type lintStats struct {
	files, cached, comments int
	errors, warnings        int
}

func (s lintStats) String() string {
	msg := fmt.Sprintf("%d files, %d doc comments: %d errors, %d warnings", s.files, s.comments, s.errors, s.warnings)
	if s.cached > 0 {
		msg += fmt.Sprintf(" (%d files from cache)", s.cached)
	}
	return msg
}

// collectLint merges the file logs in file order, applying the warning
// policy, and counts what remains.
func collectLint(results []driver.FileResult, lo lintOptions) (*diag.Log, lintStats) {
	log := diag.NewLog(0)
	stats := lintStats{files: len(results)}
	for _, res := range results {
		stats.comments += res.Count
		if res.Cached {
			stats.cached++
		}
		for _, d := range res.Log.Items() {
			if d.Severity == diag.SevWarning {
				if lo.noWarnings {
					continue
				}
				if lo.warningsAsErrors {
					d.Severity = diag.SevError
				}
			}
			switch d.Severity {
			case diag.SevError:
				stats.errors++
			case diag.SevWarning:
				stats.warnings++
			}
			log.Add(d)
		}
	}
	return log, stats
}

func writeLint(w io.Writer, log *diag.Log, fileSet *source.FileSet, lo lintOptions, g globalOptions) error {
	pathMode := diagfmt.PathModeAuto
	if lo.fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	items := log.Items()

	switch lo.format {
	case "json":
		return diagfmt.JSON(w, items, fileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			Max:              g.maxDiagnostics,
			IncludeNotes:     lo.withNotes,
		})
	case "sarif":
		return diagfmt.Sarif(w, items, fileSet, diagfmt.SarifRunMeta{
			ToolName:       "tsdoc",
			ToolVersion:    version.Current().Version,
			InvocationArgs: os.Args[1:],
		})
	case "short":
		_, err := io.WriteString(w, diag.FormatGoldenDiagnostics(items, fileSet, lo.withNotes))
		return err
	default:
		if g.maxDiagnostics > 0 && len(items) > g.maxDiagnostics {
			items = items[:g.maxDiagnostics]
		}
		opts := g.pretty()
		opts.Color = g.colorOut
		opts.PathMode = pathMode
		opts.ShowNotes = lo.withNotes
		diagfmt.Pretty(w, items, fileSet, opts)
		return nil
	}
}

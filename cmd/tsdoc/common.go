package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tsdoc/internal/config"
	"tsdoc/internal/diagfmt"
	"tsdoc/internal/tags"
	"tsdoc/internal/trace"
)

// globalOptions are the persistent flags every command shares.
type globalOptions struct {
	color          bool // stderr
	colorOut       bool // stdout
	quiet          bool
	timings        bool
	maxDiagnostics int
	configPath     string
}

func readGlobalOptions(cmd *cobra.Command) (globalOptions, error) {
	flags := cmd.Root().PersistentFlags()
	var g globalOptions

	colorFlag, err := flags.GetString("color")
	if err != nil {
		return g, fmt.Errorf("failed to get color flag: %w", err)
	}
	colors, err := parseSwitch("color", colorFlag)
	if err != nil {
		return g, err
	}
	g.color = colors.on(os.Stderr)
	g.colorOut = colors.on(os.Stdout)

	if g.quiet, err = flags.GetBool("quiet"); err != nil {
		return g, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if g.timings, err = flags.GetBool("timings"); err != nil {
		return g, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if g.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return g, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if g.configPath, err = flags.GetString("config"); err != nil {
		return g, fmt.Errorf("failed to get config flag: %w", err)
	}
	return g, nil
}

func (g globalOptions) pretty() diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:     g.color,
		Context:   1,
		ShowNotes: true,
	}
}

// loadRegistry returns the registry described by the configuration file:
// the --config flag, or the first tsdoc.* found walking up from startDir.
// Without a configuration file the standard registry is used and cfg is nil.
//
// Configuration diagnostics go to stderr; errors among them fail the command.
func loadRegistry(cmd *cobra.Command, g globalOptions, startDir string) (*tags.Registry, *config.Config, error) {
	path := g.configPath
	if path == "" {
		found, ok, err := config.FindConfigFile(startDir)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			return tags.NewRegistry(tags.Options{}), nil, nil
		}
		path = found
	}

	_, span := trace.StartSpan(cmd.Context(), trace.ScopePass, "load config")
	cfg, err := config.Load(path, config.LoadOptions{MaxDiagnostics: g.maxDiagnostics})
	if err != nil {
		span.End("error")
		return nil, nil, err
	}
	span.WithExtra("files", fmt.Sprint(len(cfg.Files))).End(cfg.Path)

	if cfg.Log.Len() > 0 && (!g.quiet || cfg.HasErrors()) {
		diagfmt.Pretty(cmd.ErrOrStderr(), cfg.Log.Items(), cfg.FileSet, g.pretty())
	}
	if cfg.HasErrors() {
		return nil, nil, fmt.Errorf("configuration %s has errors", path)
	}
	return cfg.Registry, cfg, nil
}

// demoDefinitions are the custom tags --custom-demo registers.
func demoDefinitions() []tags.Definition {
	return []tags.Definition{
		{TagName: "@customInline", SyntaxKind: tags.InlineTag, AllowMultiple: true},
		{TagName: "@customBlock", SyntaxKind: tags.BlockTag},
		{TagName: "@customModifier", SyntaxKind: tags.ModifierTag},
	}
}

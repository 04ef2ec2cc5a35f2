package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"tsdoc/internal/tags"
)

var tagsCmd = &cobra.Command{
	Use:   "tags [flags]",
	Short: "List the tag definitions in effect",
	Long:  `Tags prints the effective tag registry: the standard set merged with the configuration file`,
	Args:  cobra.NoArgs,
	RunE:  runTags,
}

func init() {
	tagsCmd.Flags().String("format", "table", "output format (table|json)")
	tagsCmd.Flags().String("kind", "", "only list tags of this kind (inline|block|modifier)")
	tagsCmd.Flags().Bool("custom-demo", false, "register @customInline, @customBlock and @customModifier")
}

type tagRow struct {
	Name            string `json:"tagName"`
	Kind            string `json:"syntaxKind"`
	AllowMultiple   bool   `json:"allowMultiple"`
	Standardization string `json:"standardization"`
	Supported       bool   `json:"supported"`
}

func runTags(cmd *cobra.Command, args []string) error {
	g, err := readGlobalOptions(cmd)
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	kindFlag, err := cmd.Flags().GetString("kind")
	if err != nil {
		return fmt.Errorf("failed to get kind flag: %w", err)
	}
	customDemo, err := cmd.Flags().GetBool("custom-demo")
	if err != nil {
		return fmt.Errorf("failed to get custom-demo flag: %w", err)
	}

	reg, _, err := loadRegistry(cmd, g, ".")
	if err != nil {
		return err
	}
	if customDemo {
		if err := reg.AddDefinitions(demoDefinitions()...); err != nil {
			return err
		}
	}

	defs := reg.AllDefinitions()
	if kindFlag != "" {
		kind, ok := tags.ParseSyntaxKind(kindFlag)
		if !ok {
			return fmt.Errorf("unknown tag kind %q (expected inline|block|modifier)", kindFlag)
		}
		defs = reg.DefinitionsOf(kind)
	}
	rows := tagRows(reg, defs)

	out := cmd.OutOrStdout()
	switch format {
	case "table":
		writeTagTable(out, rows)
		return nil
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func tagRows(reg *tags.Registry, defs []tags.Definition) []tagRow {
	rows := make([]tagRow, 0, len(defs))
	for _, def := range defs {
		rows = append(rows, tagRow{
			Name:            def.TagName,
			Kind:            def.SyntaxKind.String(),
			AllowMultiple:   def.AllowMultiple,
			Standardization: def.Standardization.String(),
			Supported:       reg.IsSupported(def.TagName),
		})
	}
	return rows
}

func writeTagTable(w io.Writer, rows []tagRow) {
	header := []string{"TAG", "KIND", "MULTIPLE", "STANDARD", "SUPPORTED"}
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{r.Name, r.Kind, yesNo(r.AllowMultiple), r.Standardization, yesNo(r.Supported)})
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range cells {
		for i, c := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(c))
		}
	}

	headStyle := lipgloss.NewStyle().Bold(true)
	fmt.Fprintln(w, headStyle.Render(strings.TrimRight(formatRow(header, widths), " ")))
	for _, row := range cells {
		fmt.Fprintln(w, strings.TrimRight(formatRow(row, widths), " "))
	}
}

func formatRow(cells []string, widths []int) string {
	var sb strings.Builder
	for i, c := range cells {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(runewidth.FillRight(c, widths[i]))
	}
	return sb.String()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

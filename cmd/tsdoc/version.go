package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"tsdoc/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show tsdoc build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			return fmt.Errorf("failed to get format flag: %w", err)
		}
		g, err := readGlobalOptions(cmd)
		if err != nil {
			return err
		}
		return writeVersion(cmd.OutOrStdout(), version.Current(), format, g.colorOut)
	},
}

func init() {
	versionCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func writeVersion(w io.Writer, info version.Info, format string, colored bool) error {
	switch strings.ToLower(format) {
	case "pretty":
		_, err := io.WriteString(w, info.Describe(colored))
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
}

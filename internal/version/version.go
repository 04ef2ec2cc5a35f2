// Package version holds the build information of the tsdoc CLI. The
// variables are meant to be set with -ldflags "-X tsdoc/internal/version.Version=...".
package version

import (
	"strings"

	"github.com/fatih/color"
)

var (
	Version    = "0.1.0-dev"
	GitCommit  = ""
	GitMessage = ""
	BuildDate  = "" // ISO-8601
)

// Info is the build information as printed by `tsdoc version --format json`.
type Info struct {
	Tool       string `json:"tool"`
	Version    string `json:"version"`
	GitCommit  string `json:"git_commit,omitempty"`
	GitMessage string `json:"git_message,omitempty"`
	BuildDate  string `json:"build_date,omitempty"`
}

// Current returns the build information with surrounding blanks trimmed.
func Current() Info {
	return Info{
		Tool:       "tsdoc",
		Version:    strings.TrimSpace(Version),
		GitCommit:  strings.TrimSpace(GitCommit),
		GitMessage: strings.TrimSpace(GitMessage),
		BuildDate:  strings.TrimSpace(BuildDate),
	}
}

// цвета компонентов major.minor.patch
var partColors = []*color.Color{
	color.New(color.FgYellow, color.Bold),
	color.New(color.FgGreen, color.Bold),
	color.New(color.FgBlue, color.Bold),
}

// Colored renders major, minor and patch in their own colors. Anything after
// the patch number is left plain.
func Colored(v string) string {
	core, suffix := v, ""
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		core, suffix = v[:i], v[i:]
	}
	parts := strings.SplitN(core, ".", len(partColors))
	for i, part := range parts {
		parts[i] = partColors[i].Sprint(part)
	}
	return strings.Join(parts, ".") + suffix
}

// Describe renders the block printed by `tsdoc version`. Empty optional
// fields are left out.
func (i Info) Describe(colored bool) string {
	v := i.Version
	if colored {
		v = Colored(v)
	}
	var sb strings.Builder
	sb.WriteString(i.Tool + " " + v + "\n")
	for _, field := range [][2]string{{"commit", i.GitCommit}, {"message", i.GitMessage}, {"built", i.BuildDate}} {
		if field[1] != "" {
			sb.WriteString(field[0] + ": " + field[1] + "\n")
		}
	}
	return sb.String()
}

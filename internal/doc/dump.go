package doc

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"tsdoc/internal/source"
)

// DumpOptions controls Dump.
type DumpOptions struct {
	// Excerpts prints Excerpt leaves as their own lines instead of folding
	// them into the parent.
	Excerpts bool
	// Content decorates the quoted content, e.g. with color. Nil means as is.
	Content func(quoted string) string
}

// Dump writes n as an indented "- Kind: "content"" outline.
func Dump(w io.Writer, n Node, opts DumpOptions) error {
	bw := bufio.NewWriter(w)
	decorate := opts.Content
	if decorate == nil {
		decorate = func(s string) string { return s }
	}

	Walk(n, func(n Node, depth int) bool {
		indent := strings.Repeat("  ", depth)
		if e, ok := n.(*Excerpt); ok {
			if !opts.Excerpts {
				return false
			}
			bw.WriteString(indent + "- Excerpt(" + e.ExcerptKind.String() + ")")
			if text := e.Text(); text != "" {
				bw.WriteString(": " + decorate(strconv.Quote(text)))
			}
			bw.WriteByte('\n')
			return false
		}

		bw.WriteString(indent + "- " + n.Kind().String())
		if !opts.Excerpts {
			if text, ok := leafContent(n); ok && text != "" {
				bw.WriteString(": " + decorate(strconv.Quote(text)))
			}
		}
		bw.WriteByte('\n')
		return true
	})
	return bw.Flush()
}

// DumpString is Dump into a string.
func DumpString(n Node, opts DumpOptions) string {
	var b strings.Builder
	_ = Dump(&b, n, opts)
	return b.String()
}

// leafContent returns the source covered by a node whose children are all
// excerpts.
func leafContent(n Node) (string, bool) {
	children := n.Children()
	if len(children) == 0 {
		return "", false
	}
	var r source.TextRange
	for _, c := range children {
		e, ok := c.(*Excerpt)
		if !ok {
			return "", false
		}
		r = r.Cover(e.Content)
	}
	return r.String(), true
}

package diagfmt

import (
	"encoding/json"
	"io"

	"tsdoc/internal/doc"
)

// TreeNode is the JSON form of a doc tree node. Only excerpts carry
// offsets; Tag and Text are filled where the node has them.
type TreeNode struct {
	Kind     string     `json:"kind"`
	Tag      string     `json:"tag,omitempty"`
	Name     string     `json:"name,omitempty"`
	Text     string     `json:"text,omitempty"`
	Excerpt  string     `json:"excerpt,omitempty"`
	Pos      *int       `json:"pos,omitempty"`
	End      *int       `json:"end,omitempty"`
	Children []TreeNode `json:"children,omitempty"`
}

// BuildTree converts n into its JSON form. With excerpts false the excerpt
// leaves are left out.
func BuildTree(n doc.Node, excerpts bool) TreeNode {
	out := TreeNode{Kind: n.Kind().String()}
	switch n := n.(type) {
	case *doc.Excerpt:
		out.Excerpt = n.ExcerptKind.String()
		out.Text = n.Text()
		pos, end := n.Content.Pos(), n.Content.End()
		out.Pos, out.End = &pos, &end
		return out
	case *doc.BlockTag:
		out.Tag = n.TagName
	case *doc.Block:
		out.Tag = n.TagName()
	case *doc.ParamBlock:
		out.Tag = n.TagName()
		out.Name = n.ParameterName
	case *doc.InlineTag:
		out.Tag = n.TagName
		out.Text = n.Content
	case *doc.ModifierTag:
		out.Tag = n.TagName
	case *doc.PlainText:
		out.Text = n.Text
	case *doc.CodeSpan:
		out.Text = n.Code
	case *doc.ErrorText:
		out.Text = n.Message
	}

	for _, c := range n.Children() {
		if _, isExcerpt := c.(*doc.Excerpt); isExcerpt && !excerpts {
			continue
		}
		out.Children = append(out.Children, BuildTree(c, excerpts))
	}
	return out
}

// FormatTreeJSON writes the doc tree of n as indented JSON.
func FormatTreeJSON(w io.Writer, n doc.Node, excerpts bool) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildTree(n, excerpts))
}

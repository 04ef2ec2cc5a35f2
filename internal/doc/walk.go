package doc

import (
	"strings"
)

// Walk visits n and its descendants depth-first in document order. fn gets
// the node and its depth (0 for n); returning false skips the node's
// children. Walk uses an explicit stack, so tree depth is not bounded by
// the goroutine stack.
func Walk(n Node, fn func(n Node, depth int) bool) {
	if n == nil {
		return
	}
	type frame struct {
		node  Node
		depth int
	}
	stack := []frame{{node: n}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(top.node, top.depth) {
			continue
		}
		children := top.node.Children()
		// дети кладутся в обратном порядке, чтобы обход шёл слева направо
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: children[i], depth: top.depth + 1})
		}
	}
}

// Excerpts collects every Excerpt leaf under n in document order.
func Excerpts(n Node) []*Excerpt {
	var out []*Excerpt
	Walk(n, func(n Node, _ int) bool {
		if e, ok := n.(*Excerpt); ok {
			out = append(out, e)
		}
		return true
	})
	return out
}

// ExtractText renders the readable text of a subtree: escapes resolved,
// soft breaks as spaces, code spans and inline tags as written, paragraphs
// separated by a blank line.
func ExtractText(n Node) string {
	var b strings.Builder
	paragraphs := 0
	Walk(n, func(n Node, _ int) bool {
		switch n := n.(type) {
		case *Paragraph:
			if paragraphs > 0 {
				b.WriteString("\n\n")
			}
			paragraphs++
		case *PlainText:
			b.WriteString(n.Text)
		case *SoftBreak:
			b.WriteByte(' ')
		case *CodeSpan:
			b.WriteString("`" + n.Code + "`")
		case *InlineTag:
			b.WriteString(n.Source())
		case *ErrorText:
			b.WriteString(n.Text)
		case *Excerpt, *ModifierTag, *BlockTag:
			return false
		}
		return true
	})
	return strings.TrimSpace(b.String())
}

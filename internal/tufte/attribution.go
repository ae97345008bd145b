package tufte

import (
	"strings"

	"github.com/alnah/go-md2tufte/internal/mdast"
)

const (
	footerOpen  = "<footer>"
	footerClose = "</footer>"
)

// AttributeQuotes marks the attribution of block quotes. A :cite marker
// inside a block quote is surrounded by <footer> and </footer> leaves; the
// text around it stays where it is. A marker that sits directly in a flow
// container is wrapped in its own footer paragraph. Markers outside block
// quotes are left alone. The marker itself is kept, so ResolveCitations can
// still turn it into a link.
func AttributeQuotes(root *mdast.Node) error {
	if root == nil {
		return ErrNilTree
	}
	attribute(root, false)
	return nil
}

func attribute(n *mdast.Node, quoted bool) {
	quoted = quoted || n.Kind == mdast.KindBlockquote

	for i := 0; i < len(n.Children); i++ {
		child := n.Children[i]
		switch {
		case quoted && isCite(child):
			if i > 0 && isRawPrefix(n.Children[i-1], footerOpen) {
				continue
			}
			footer := []*mdast.Node{mdast.HTML(footerOpen), child, mdast.HTML(footerClose)}
			if isFlow(n.Kind) {
				footer = []*mdast.Node{mdast.Paragraph(footer...)}
			}
			i = mdast.Replace(n, i, footer...) - 1
		default:
			attribute(child, quoted)
		}
	}
}

// isFlow reports whether nodes of kind k hold blocks rather than phrasing.
func isFlow(k mdast.Kind) bool {
	switch k {
	case mdast.KindRoot, mdast.KindBlockquote, mdast.KindListItem,
		mdast.KindContainerDirective, mdast.KindFootnoteDefinition, mdast.KindElement:
		return true
	}
	return false
}

func isCite(n *mdast.Node) bool {
	return n.Kind == mdast.KindTextDirective && n.Name == "cite"
}

// isRawPrefix reports whether n is a raw-markup leaf starting with prefix.
func isRawPrefix(n *mdast.Node, prefix string) bool {
	return n.Kind == mdast.KindHTML && strings.HasPrefix(n.Value, prefix)
}

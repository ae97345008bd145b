package tufte

import "github.com/alnah/go-md2tufte/internal/mdast"

// ExpandDirectives expands the figure and sans block directives.
//
//	:::figure{fullwidth}   -> paragraph [<figure class='fullwidth'>, content..., </figure>]
//	:::sans                -> <p class='sans'>content</p>
//
// Figures stay structural so later passes still see their children; sans
// blocks become a single raw leaf. A sole wrapping paragraph is unwrapped
// in both cases. Figures are expanded first.
func ExpandDirectives(root *mdast.Node) error {
	if root == nil {
		return ErrNilTree
	}

	isFigure := mdast.IsDirectiveNamed("figure", mdast.KindContainerDirective, mdast.KindLeafDirective)
	mdast.Visit(root, isFigure, func(n *mdast.Node, index int, _ *mdast.Node) (mdast.Action, int) {
		open := "<figure>"
		if _, ok := n.Attr("fullwidth"); ok {
			open = "<figure class='fullwidth'>"
		}
		children := append([]*mdast.Node{mdast.HTML(open)}, unwrapParagraph(n.Children)...)
		*n = mdast.Node{
			Kind:     mdast.KindParagraph,
			Children: append(children, mdast.HTML(figureClose)),
		}
		return mdast.Next(index)
	})

	isSans := mdast.IsDirectiveNamed("sans", mdast.KindContainerDirective, mdast.KindLeafDirective, mdast.KindTextDirective)
	var err error
	mdast.Visit(root, isSans, func(n *mdast.Node, index int, _ *mdast.Node) (mdast.Action, int) {
		if err = toRaw(n, "<p class='sans'>", unwrapParagraph(n.Children), "</p>"); err != nil {
			return mdast.Stop, index + 1
		}
		return mdast.Skip, index + 1
	})
	return err
}

// unwrapParagraph returns the children of a sole paragraph child, or
// children unchanged.
func unwrapParagraph(children []*mdast.Node) []*mdast.Node {
	if len(children) == 1 && children[0].Kind == mdast.KindParagraph {
		return children[0].Children
	}
	return children
}

package tufte

import (
	"github.com/alnah/go-md2tufte/internal/mdast"
	"github.com/alnah/go-md2tufte/internal/render"
)

// EmphasizeNewThoughts replaces :nt[...] markers with
// <span class="newthought">...</span>.
func EmphasizeNewThoughts(root *mdast.Node) error {
	if root == nil {
		return ErrNilTree
	}
	var err error
	mdast.Visit(root, mdast.IsDirectiveNamed("nt", mdast.KindTextDirective), func(n *mdast.Node, index int, _ *mdast.Node) (mdast.Action, int) {
		if err = toRaw(n, `<span class="newthought">`, n.Children, `</span>`); err != nil {
			return mdast.Stop, index + 1
		}
		return mdast.Skip, index + 1
	})
	return err
}

// toRaw turns n into a raw-markup leaf holding the rendered children
// between before and after.
func toRaw(n *mdast.Node, before string, children []*mdast.Node, after string) error {
	body, err := render.Fragment(children)
	if err != nil {
		return err
	}
	*n = mdast.Node{Kind: mdast.KindHTML, Value: before + body + after}
	return nil
}

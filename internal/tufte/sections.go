package tufte

import "github.com/alnah/go-md2tufte/internal/mdast"

// sectionDepth is the only heading level that opens a section.
const sectionDepth = 2

// SectionOptions configures WrapSections.
type SectionOptions struct {
	// IgnoreTrailingDefinitions leaves definitions that end a section
	// outside of it.
	IgnoreTrailingDefinitions bool
}

// WrapSections wraps each level-2 heading of the root and the content up to
// the next level-2 heading in a <section> element. Headings of other levels
// neither open nor close a section. Documents without level-2 headings are
// left untouched.
//
// Every heading visited triggers one lookup of the first unwrapped level-2
// range at the root, so a document with n such headings gets n sections.
func WrapSections(root *mdast.Node, opts SectionOptions) error {
	if root == nil {
		return ErrNilTree
	}
	locate := RangeOptions{
		Test: func(n *mdast.Node) bool {
			return n.Kind == mdast.KindHeading && n.Depth == sectionDepth
		},
		IgnoreTrailingDefinitions: opts.IgnoreTrailingDefinitions,
	}

	var err error
	mdast.Visit(root, mdast.IsKind(mdast.KindHeading), func(_ *mdast.Node, index int, _ *mdast.Node) (mdast.Action, int) {
		if err = wrapFirstSection(root, locate); err != nil {
			return mdast.Stop, index + 1
		}
		return mdast.Next(index)
	})
	return err
}

func wrapFirstSection(root *mdast.Node, opts RangeOptions) error {
	rng, ok, err := LocateRange(root.Children, opts)
	if err != nil || !ok {
		return err
	}
	content := append([]*mdast.Node(nil), root.Children[rng.Start:rng.End]...)
	mdast.Splice(root, rng.Start, rng.End-rng.Start, mdast.Element("section", content...))
	return nil
}

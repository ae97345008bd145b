package tufte

import "github.com/alnah/go-md2tufte/internal/mdast"

// identifierIndex maps normalized identifiers to the first node of a kind
// carrying them, in document order.
type identifierIndex struct {
	nodes      map[string]*mdast.Node
	duplicates []string
}

func buildIndex(root *mdast.Node, kind mdast.Kind) *identifierIndex {
	idx := &identifierIndex{nodes: map[string]*mdast.Node{}}
	seen := map[string]bool{}
	mdast.Visit(root, mdast.IsKind(kind), func(n *mdast.Node, index int, _ *mdast.Node) (mdast.Action, int) {
		id := n.Identifier
		if id == "" {
			id = mdast.NormalizeIdentifier(n.Label)
		}
		if _, ok := idx.nodes[id]; !ok {
			idx.nodes[id] = n
		} else if !seen[id] {
			seen[id] = true
			idx.duplicates = append(idx.duplicates, id)
		}
		return mdast.Next(index)
	})
	return idx
}

func (idx *identifierIndex) lookup(key string) (*mdast.Node, bool) {
	n, ok := idx.nodes[mdast.NormalizeIdentifier(key)]
	return n, ok
}

package tufte

import (
	"fmt"
	"sort"

	"github.com/alnah/go-md2tufte/internal/mdast"
)

// ResolveCitations turns every :cite text directive into a link to the URL
// of the matching reference definition. The first definition in document
// order wins. Children of the marker become the link text.
//
//	:cite[Tufte]{key=tufte}   key attribute
//	:cite[Tufte]{tufte}       single attribute name
//
// It fails with ErrAmbiguousKey when no key can be chosen and with
// ErrUnresolvedReference when no definition matches.
func ResolveCitations(root *mdast.Node) error {
	if root == nil {
		return ErrNilTree
	}
	defs := buildIndex(root, mdast.KindDefinition)

	var err error
	mdast.Visit(root, isCite, func(n *mdast.Node, index int, _ *mdast.Node) (mdast.Action, int) {
		key, kerr := citationKey(n)
		if kerr != nil {
			err = kerr
			return mdast.Stop, index + 1
		}
		def, ok := defs.lookup(key)
		if !ok {
			err = fmt.Errorf("%w: no definition for citation key %q", ErrUnresolvedReference, key)
			return mdast.Stop, index + 1
		}

		n.Kind = mdast.KindLink
		n.URL = def.URL
		n.Title = def.Title
		n.Name = ""
		n.Attributes = nil
		return mdast.Next(index)
	})
	return err
}

// citationKey picks the lookup key of a cite marker.
func citationKey(n *mdast.Node) (string, error) {
	if key, _ := n.Attr("key"); key != "" {
		return key, nil
	}
	if len(n.Attributes) == 1 {
		for name := range n.Attributes {
			return name, nil
		}
	}
	names := make([]string, 0, len(n.Attributes))
	for name := range n.Attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	return "", fmt.Errorf("%w: expected exactly one cite key, got %d %v", ErrAmbiguousKey, len(names), names)
}

package tufte

import "github.com/alnah/go-md2tufte/internal/mdast"

// RangeOptions configures LocateRange.
type RangeOptions struct {
	// Test selects the node that opens the range. Required.
	Test func(n *mdast.Node) bool

	// IgnoreTrailingDefinitions shrinks the range so that definitions and
	// footnote definitions at its end are not part of it.
	IgnoreTrailingDefinitions bool
}

// Range is a run of siblings opened by a start node.
//
// Content is siblings[Start+1:End]. When Closed, siblings[Close] is the node
// that ended the range; otherwise the range runs to the end of the sequence
// and Close is -1.
type Range struct {
	Start  int
	End    int
	Close  int
	Closed bool
	Depth  int
}

// LocateRange finds the first sibling matching opts.Test and the range it
// opens. The range ends at the next sibling of the same kind and depth;
// deeper and shallower nodes of that kind are content. For headings this
// means only a heading of exactly the same level closes a section.
//
// It returns false when no sibling matches, and ErrMalformedRangeTest when
// opts.Test is nil.
func LocateRange(siblings []*mdast.Node, opts RangeOptions) (Range, bool, error) {
	if opts.Test == nil {
		return Range{}, false, ErrMalformedRangeTest
	}

	rng := Range{Start: -1, Close: -1}
	var startKind mdast.Kind
	for i, n := range siblings {
		if rng.Start < 0 {
			if opts.Test(n) {
				rng.Start, rng.Depth, startKind = i, n.Depth, n.Kind
			}
			continue
		}
		if n.Kind == startKind && n.Depth == rng.Depth {
			rng.Close, rng.Closed = i, true
			break
		}
	}
	if rng.Start < 0 {
		return Range{}, false, nil
	}

	rng.End = len(siblings)
	if rng.Closed {
		rng.End = rng.Close
	}
	if opts.IgnoreTrailingDefinitions {
		for rng.End > rng.Start+1 && isDefinition(siblings[rng.End-1]) {
			rng.End--
		}
	}
	return rng, true, nil
}

func isDefinition(n *mdast.Node) bool {
	return n.Kind == mdast.KindDefinition || n.Kind == mdast.KindFootnoteDefinition
}

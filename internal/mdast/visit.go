package mdast

// Action tells Visit how to proceed after a visitor returns.
type Action int

const (
	// Continue descends into the visited node's children.
	Continue Action = iota
	// Skip does not descend into the visited node.
	Skip
	// Stop ends the walk.
	Stop
)

// Test selects the nodes a visitor is called for. A nil Test matches every node.
type Test func(n *Node) bool

// VisitFunc is called for each matching node with its index in parent
// (-1 and nil for the root). It may mutate parent.Children; it returns the
// action to take and the index in parent at which the walk resumes, normally
// index+1. A visitor that replaced its node with k nodes returns Skip and
// index+k so the inserted nodes are not revisited.
type VisitFunc func(n *Node, index int, parent *Node) (Action, int)

// Visit walks the tree rooted at root depth-first in document order.
// Sibling indices are re-read after every visitor call, so visitors may splice
// their parent's children as long as the returned index is correct.
func Visit(root *Node, test Test, fn VisitFunc) {
	visit(root, -1, nil, test, fn)
}

func visit(n *Node, index int, parent *Node, test Test, fn VisitFunc) (Action, int) {
	action, next := Continue, index+1
	if test == nil || test(n) {
		action, next = fn(n, index, parent)
	}
	if action != Continue {
		return action, next
	}
	for i := 0; i < len(n.Children); {
		a, ni := visit(n.Children[i], i, n, test, fn)
		if a == Stop {
			return Stop, next
		}
		i = ni
	}
	return Continue, next
}

// Next is the common visitor result: keep walking and descend.
func Next(index int) (Action, int) {
	return Continue, index + 1
}

// Find returns the first node in document order matching test, or nil.
func Find(root *Node, test Test) *Node {
	var found *Node
	Visit(root, test, func(n *Node, index int, _ *Node) (Action, int) {
		found = n
		return Stop, index + 1
	})
	return found
}

// FindAll returns every node matching test in document order.
func FindAll(root *Node, test Test) []*Node {
	var out []*Node
	Visit(root, test, func(n *Node, index int, _ *Node) (Action, int) {
		out = append(out, n)
		return Next(index)
	})
	return out
}

// IsKind returns a Test matching nodes of kind k.
func IsKind(k Kind) Test {
	return func(n *Node) bool { return n.Kind == k }
}

// IsDirectiveNamed returns a Test matching directives of one of the given
// kinds carrying name.
func IsDirectiveNamed(name string, kinds ...Kind) Test {
	return func(n *Node) bool {
		if n.Name != name {
			return false
		}
		for _, k := range kinds {
			if n.Kind == k {
				return true
			}
		}
		return false
	}
}

// Replace removes parent.Children[index] and inserts nodes in its place.
// It returns the index just past the inserted nodes.
func Replace(parent *Node, index int, nodes ...*Node) int {
	return Splice(parent, index, 1, nodes...)
}

// Splice removes count children starting at index and inserts nodes there.
// It returns the index just past the inserted nodes.
func Splice(parent *Node, index, count int, nodes ...*Node) int {
	tail := parent.Children[index+count:]
	out := make([]*Node, 0, len(parent.Children)-count+len(nodes))
	out = append(out, parent.Children[:index]...)
	out = append(out, nodes...)
	out = append(out, tail...)
	parent.Children = out
	return index + len(nodes)
}

// Remove deletes parent.Children[index].
func Remove(parent *Node, index int) {
	Splice(parent, index, 1)
}

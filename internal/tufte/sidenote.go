package tufte

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/alnah/go-md2tufte/internal/mdast"
	"github.com/alnah/go-md2tufte/internal/render"
)

// MarginNoteToken at the start of a footnote makes it an unnumbered margin note.
const MarginNoteToken = "{-}"

var noteLead = regexp.MustCompile(`^\s*(\{-\})?\s*`)

// ConvertSidenotes turns footnotes into tufte-css sidenotes.
//
// Each footnote reference is replaced by a toggle label, a checkbox and a
// span holding the rendered definition. Definitions starting with {-}
// become margin notes, all others numbered sidenotes. Afterwards every
// footnote definition is removed from the tree, referenced or not. Inline
// notes (^[...]) get the same treatment without a lookup.
//
// A reference without a definition fails with ErrUnresolvedReference.
// Duplicate definitions are reported as diagnostics; the first one wins.
func ConvertSidenotes(root *mdast.Node, run *Run) error {
	if root == nil {
		return ErrNilTree
	}
	run = ensureRun(run)

	defs := buildIndex(root, mdast.KindFootnoteDefinition)
	for _, id := range defs.duplicates {
		run.warnf("footnote %q is defined more than once; using the first definition", id)
	}

	var err error
	mdast.Visit(root, mdast.IsKind(mdast.KindFootnoteReference), func(n *mdast.Node, index int, parent *mdast.Node) (mdast.Action, int) {
		def, ok := defs.lookup(n.Identifier)
		if !ok {
			err = fmt.Errorf("%w: no definition for footnote %q", ErrUnresolvedReference, n.Label)
			return mdast.Stop, index + 1
		}
		body, rerr := render.Fragment(unwrapParagraph(def.Children))
		if rerr != nil {
			err = rerr
			return mdast.Stop, index + 1
		}
		note := classifyNote(body)
		id := run.noteID(strings.ReplaceAll(n.Identifier, " ", "-"))
		return mdast.Skip, mdast.Replace(parent, index, note.leaves(id)...)
	})
	if err != nil {
		return err
	}

	mdast.Visit(root, mdast.IsKind(mdast.KindFootnoteDefinition), func(_ *mdast.Node, index int, parent *mdast.Node) (mdast.Action, int) {
		mdast.Remove(parent, index)
		return mdast.Skip, index
	})

	mdast.Visit(root, mdast.IsKind(mdast.KindFootnote), func(n *mdast.Node, index int, parent *mdast.Node) (mdast.Action, int) {
		body, rerr := render.Fragment(unwrapParagraph(n.Children))
		if rerr != nil {
			err = rerr
			return mdast.Stop, index + 1
		}
		note := classifyNote(body)
		return mdast.Skip, mdast.Replace(parent, index, note.leaves(run.nextInlineNoteID())...)
	})
	return err
}

type note struct {
	margin bool
	body   string
}

// classifyNote strips leading whitespace and the margin note token from
// rendered note content.
func classifyNote(rendered string) note {
	m := noteLead.FindStringSubmatch(rendered)
	return note{
		margin: m[1] == MarginNoteToken,
		body:   rendered[len(m[0]):],
	}
}

func (n note) leaves(id string) []*mdast.Node {
	labelClass, symbol, spanClass := "margin-toggle sidenote-number", "", "sidenote"
	if n.margin {
		labelClass, symbol, spanClass = "margin-toggle", "&#8853;", "marginnote"
	}
	id = html.EscapeString(id)
	return []*mdast.Node{
		mdast.HTML(fmt.Sprintf(`<label for="%s" class="%s">%s</label>`, id, labelClass, symbol)),
		mdast.HTML(fmt.Sprintf(`<input type="checkbox" id="%s" class="margin-toggle"/>`, id)),
		mdast.HTML(fmt.Sprintf(`<span class="%s">%s</span>`, spanClass, n.body)),
	}
}

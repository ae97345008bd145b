package tufte

import (
	"fmt"
	"html"
	"strings"

	"github.com/alnah/go-md2tufte/internal/mdast"
	"github.com/alnah/go-md2tufte/internal/render"
)

const (
	figureOpen  = "<figure>"
	figureClose = "</figure>"
)

// ImagesToFigures wraps images standing in a paragraph in a <figure>. Any
// content following the image in the paragraph becomes a margin note
// caption; content before the image is dropped.
//
// Only paragraphs directly under the root, a section or another paragraph
// are considered, so images inside lists, quotes and directives keep their
// inline form. Paragraphs that already open a figure are skipped, which
// makes the pass idempotent.
func ImagesToFigures(root *mdast.Node, run *Run) error {
	if root == nil {
		return ErrNilTree
	}
	run = ensureRun(run)

	var err error
	mdast.Visit(root, isImageParagraph, func(n *mdast.Node, index int, parent *mdast.Node) (mdast.Action, int) {
		if parent == nil || !canHoldFigure(parent) {
			return mdast.Next(index)
		}
		if len(n.Children) > 0 && isRawPrefix(n.Children[0], "<figure") {
			return mdast.Skip, index + 1
		}

		pos := imageIndex(n)
		img := n.Children[pos]
		var caption string
		if caption, err = render.Fragment(n.Children[pos+1:]); err != nil {
			return mdast.Stop, index + 1
		}

		if strings.TrimSpace(caption) == "" {
			n.Children = []*mdast.Node{mdast.HTML(figureOpen), img, mdast.HTML(figureClose)}
		} else {
			n.Children = []*mdast.Node{
				mdast.HTML(figureOpen),
				img,
				mdast.HTML(marginToggle(run.nextFigureID(), caption)),
				mdast.HTML(figureClose),
			}
		}
		return mdast.Skip, index + 1
	})
	return err
}

func isImageParagraph(n *mdast.Node) bool {
	return n.Kind == mdast.KindParagraph && imageIndex(n) >= 0
}

func imageIndex(p *mdast.Node) int {
	for i, c := range p.Children {
		if c.Kind == mdast.KindImage {
			return i
		}
	}
	return -1
}

func canHoldFigure(parent *mdast.Node) bool {
	switch parent.Kind {
	case mdast.KindRoot, mdast.KindParagraph:
		return true
	case mdast.KindElement:
		return parent.HName == "section"
	}
	return false
}

// marginToggle renders the label, checkbox and margin note used for
// figure captions.
func marginToggle(id, body string) string {
	return fmt.Sprintf(
		`<label for="%[1]s" class="margin-toggle">&#8853;</label>`+
			`<input type="checkbox" id="%[1]s" class="margin-toggle"/>`+
			`<span class="marginnote">%[2]s</span>`,
		html.EscapeString(id), body)
}

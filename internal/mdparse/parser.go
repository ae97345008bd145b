// Package mdparse turns Markdown source into an mdast tree.
//
// Parsing is done by goldmark with the GFM and footnote extensions plus
// the directive (`:name`, `::name`, `:::name`) and inline note (`^[...]`)
// syntaxes defined here. The goldmark AST is then converted into the
// package mdast tree the tufte passes operate on.
package mdparse

import (
	"sort"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/alnah/go-md2tufte/internal/mdast"
)

// Parser converts Markdown to mdast. A Parser is safe for concurrent use.
type Parser struct {
	md goldmark.Markdown
}

// New creates a Parser with GFM, footnotes, directives and inline notes enabled.
func New() *Parser {
	return &Parser{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Footnote,
				DanglingFootnoteExtension,
				DirectiveExtension,
				InlineNoteExtension,
			),
		),
	}
}

// Parse parses source into a root node. Link reference definitions are
// appended to the root as definition nodes, sorted by label.
func (p *Parser) Parse(source []byte) *mdast.Node {
	pc := parser.NewContext()
	doc := p.md.Parser().Parse(text.NewReader(source), parser.WithContext(pc))

	c := newConverter(p, source)
	root := mdast.Root(c.document(doc)...)

	refs := pc.References()
	sort.SliceStable(refs, func(i, j int) bool {
		return string(refs[i].Label()) < string(refs[j].Label())
	})
	for _, ref := range refs {
		def := mdast.Definition(string(ref.Label()), string(ref.Destination()))
		def.Title = string(ref.Title())
		root.Children = append(root.Children, def)
	}
	return root
}

// parseInline parses a directive or note label as phrasing content.
// Paragraph wrappers are dropped; any other block is kept as is.
func (p *Parser) parseInline(label []byte) []*mdast.Node {
	if len(label) == 0 {
		return nil
	}
	doc := p.md.Parser().Parse(text.NewReader(label))
	c := newConverter(p, label)

	var out []*mdast.Node
	for _, n := range c.document(doc) {
		if n.Kind == mdast.KindParagraph {
			out = append(out, n.Children...)
			continue
		}
		out = append(out, n)
	}
	return out
}

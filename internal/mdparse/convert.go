package mdparse

import (
	"strings"

	gast "github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"

	"github.com/alnah/go-md2tufte/internal/mdast"
)

// converter maps a goldmark AST onto mdast nodes.
type converter struct {
	parser    *Parser
	source    []byte
	footnotes map[int]string // footnote index -> label
}

func newConverter(p *Parser, source []byte) *converter {
	return &converter{parser: p, source: source, footnotes: map[int]string{}}
}

func (c *converter) document(doc gast.Node) []*mdast.Node {
	_ = gast.Walk(doc, func(n gast.Node, entering bool) (gast.WalkStatus, error) {
		if fn, ok := n.(*extast.Footnote); ok && entering {
			c.footnotes[fn.Index] = string(fn.Ref)
		}
		return gast.WalkContinue, nil
	})
	return c.children(doc)
}

func (c *converter) children(n gast.Node) []*mdast.Node {
	var out []*mdast.Node
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		out = append(out, c.node(child)...)
	}
	return out
}

func one(n *mdast.Node) []*mdast.Node { return []*mdast.Node{n} }

func (c *converter) node(n gast.Node) []*mdast.Node {
	switch n := n.(type) {
	// Blocks.
	case *gast.Paragraph:
		// Goldmark leaves an empty paragraph behind link reference definitions.
		if n.Lines().Len() == 0 && !n.HasChildren() {
			return nil
		}
		return one(mdast.Paragraph(c.children(n)...))
	case *gast.TextBlock:
		return one(mdast.Paragraph(c.children(n)...))
	case *gast.Heading:
		return one(mdast.Heading(n.Level, c.children(n)...))
	case *gast.ThematicBreak:
		return one(&mdast.Node{Kind: mdast.KindThematicBreak})
	case *gast.Blockquote:
		return one(&mdast.Node{Kind: mdast.KindBlockquote, Children: c.children(n)})
	case *gast.List:
		return one(&mdast.Node{
			Kind:     mdast.KindList,
			Ordered:  n.IsOrdered(),
			Start:    n.Start,
			Spread:   !n.IsTight,
			Children: c.children(n),
		})
	case *gast.ListItem:
		return one(c.listItem(n))
	case *gast.FencedCodeBlock:
		return one(&mdast.Node{Kind: mdast.KindCode, Lang: string(n.Language(c.source)), Value: c.lines(n)})
	case *gast.CodeBlock:
		return one(&mdast.Node{Kind: mdast.KindCode, Value: c.lines(n)})
	case *gast.HTMLBlock:
		value := c.lines(n)
		if n.HasClosure() {
			value += "\n" + string(n.ClosureLine.Value(c.source))
		}
		return one(mdast.HTML(strings.TrimRight(value, "\n")))
	case *extast.Table:
		return one(c.table(n))

	// Inlines.
	case *gast.Text:
		return c.text(n)
	case *gast.String:
		return one(mdast.Text(string(n.Value)))
	case *gast.CodeSpan:
		return one(&mdast.Node{Kind: mdast.KindInlineCode, Value: c.codeSpan(n)})
	case *gast.Emphasis:
		kind := mdast.KindEmphasis
		if n.Level >= 2 {
			kind = mdast.KindStrong
		}
		return one(&mdast.Node{Kind: kind, Children: c.children(n)})
	case *extast.Strikethrough:
		return one(&mdast.Node{Kind: mdast.KindDelete, Children: c.children(n)})
	case *gast.Link:
		link := mdast.Link(string(n.Destination), c.children(n)...)
		link.Title = string(n.Title)
		return one(link)
	case *gast.Image:
		img := mdast.Image(string(n.Destination), mdast.ToString(mdast.Paragraph(c.children(n)...)))
		img.Title = string(n.Title)
		return one(img)
	case *gast.AutoLink:
		url := string(n.URL(c.source))
		if n.AutoLinkType == gast.AutoLinkEmail && !strings.HasPrefix(strings.ToLower(url), "mailto:") {
			url = "mailto:" + url
		}
		return one(mdast.Link(url, mdast.Text(string(n.Label(c.source)))))
	case *gast.RawHTML:
		var b strings.Builder
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			b.Write(seg.Value(c.source))
		}
		return one(mdast.HTML(b.String()))

	// Footnotes.
	case *extast.FootnoteLink:
		return one(mdast.FootnoteReference(c.footnotes[n.Index]))
	case *DanglingFootnote:
		return one(mdast.FootnoteReference(string(n.Label)))
	case *extast.FootnoteList:
		return c.children(n)
	case *extast.Footnote:
		return one(mdast.FootnoteDefinition(string(n.Ref), c.children(n)...))
	case *extast.FootnoteBacklink, *extast.TaskCheckBox:
		return nil
	case *InlineNote:
		return one(mdast.Footnote(c.parser.parseInline(n.Content)...))

	// Directives.
	case *ContainerDirective:
		d := mdast.Directive(mdast.KindContainerDirective, n.Name, n.Attrs, c.children(n)...)
		d.Label = string(n.Label)
		return one(d)
	case *LeafDirective:
		return one(mdast.Directive(mdast.KindLeafDirective, n.Name, n.Attrs, c.parser.parseInline(n.Label)...))
	case *TextDirective:
		return one(mdast.Directive(mdast.KindTextDirective, n.Name, n.Attrs, c.parser.parseInline(n.Label)...))
	}

	if n.HasChildren() {
		return c.children(n)
	}
	return nil
}

func (c *converter) text(n *gast.Text) []*mdast.Node {
	value := string(n.Value(c.source))
	switch {
	case n.HardLineBreak():
		return []*mdast.Node{mdast.Text(value), {Kind: mdast.KindBreak}}
	case n.SoftLineBreak():
		value += "\n"
	}
	return one(mdast.Text(value))
}

func (c *converter) codeSpan(n *gast.CodeSpan) string {
	var b strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch t := child.(type) {
		case *gast.Text:
			b.Write(t.Value(c.source))
		case *gast.String:
			b.Write(t.Value)
		}
	}
	return b.String()
}

func (c *converter) lines(n gast.Node) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(c.source))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (c *converter) listItem(n *gast.ListItem) *mdast.Node {
	item := &mdast.Node{Kind: mdast.KindListItem, Children: c.children(n)}
	if first := n.FirstChild(); first != nil {
		if box, ok := first.FirstChild().(*extast.TaskCheckBox); ok {
			checked := box.IsChecked
			item.Checked = &checked
			trimLeadingSpace(item)
		}
	}
	return item
}

// trimLeadingSpace drops the space goldmark leaves after a task checkbox.
func trimLeadingSpace(item *mdast.Node) {
	if len(item.Children) == 0 || len(item.Children[0].Children) == 0 {
		return
	}
	if t := item.Children[0].Children[0]; t.Kind == mdast.KindText {
		t.Value = strings.TrimLeft(t.Value, " ")
	}
}

func (c *converter) table(n *extast.Table) *mdast.Node {
	table := &mdast.Node{Kind: mdast.KindTable}
	for _, a := range n.Alignments {
		table.Align = append(table.Align, alignName(a))
	}
	for row := n.FirstChild(); row != nil; row = row.NextSibling() {
		r := &mdast.Node{Kind: mdast.KindTableRow}
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			r.Children = append(r.Children, &mdast.Node{Kind: mdast.KindTableCell, Children: c.children(cell)})
		}
		table.Children = append(table.Children, r)
	}
	return table
}

func alignName(a extast.Alignment) string {
	switch a {
	case extast.AlignLeft:
		return "left"
	case extast.AlignRight:
		return "right"
	case extast.AlignCenter:
		return "center"
	default:
		return ""
	}
}

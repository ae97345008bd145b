// Package render serializes mdast trees to HTML.
//
// Nodes are converted to golang.org/x/net/html nodes and written with
// html.Render. Raw-markup leaves become html.RawNode and are emitted
// verbatim; everything else is escaped by the html package.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-md2tufte/internal/mdast"
)

// ErrRender reports a tree html.Render refuses to write, such as a void
// element given children.
var ErrRender = errors.New("rendering failed")

// Fragment renders each node independently and concatenates the results.
// An empty slice yields "". Fragment does not modify nodes.
func Fragment(nodes []*mdast.Node) (string, error) {
	return renderer{}.render(nodes)
}

// Document renders the children of root as an HTML body fragment.
// Fenced code with a known language is syntax highlighted.
func Document(root *mdast.Node) (string, error) {
	if root == nil {
		return "", nil
	}
	return renderer{highlight: true}.render(root.Children)
}

type renderer struct {
	highlight bool
}

func (r renderer) render(nodes []*mdast.Node) (string, error) {
	var buf bytes.Buffer
	for _, n := range nodes {
		for _, h := range r.convert(n) {
			if err := html.Render(&buf, h); err != nil {
				return "", fmt.Errorf("%w: %s: %v", ErrRender, n.Kind, err)
			}
		}
	}
	return buf.String(), nil
}

func (r renderer) convertAll(nodes []*mdast.Node) []*html.Node {
	var out []*html.Node
	for _, n := range nodes {
		out = append(out, r.convert(n)...)
	}
	return out
}

func (r renderer) convert(n *mdast.Node) []*html.Node {
	switch n.Kind {
	case mdast.KindRoot:
		return r.convertAll(n.Children)
	case mdast.KindHTML:
		return one(raw(n.Value))
	case mdast.KindText:
		return one(text(n.Value))
	case mdast.KindParagraph:
		if opensFigure(n) {
			return r.convertAll(n.Children)
		}
		return one(r.wrap("p", n.Children))
	case mdast.KindHeading:
		return one(r.wrap("h"+strconv.Itoa(clampDepth(n.Depth)), n.Children))
	case mdast.KindThematicBreak:
		return one(element("hr"))
	case mdast.KindBlockquote:
		return one(r.wrap("blockquote", n.Children))
	case mdast.KindList:
		return one(r.list(n))
	case mdast.KindListItem:
		return one(r.listItem(n, false))
	case mdast.KindCode:
		return one(r.code(n))
	case mdast.KindTable:
		return one(r.table(n))
	case mdast.KindTableRow:
		return one(r.tableRow(n, "td", nil))
	case mdast.KindTableCell:
		return one(r.wrap("td", n.Children))
	case mdast.KindEmphasis:
		return one(r.wrap("em", n.Children))
	case mdast.KindStrong:
		return one(r.wrap("strong", n.Children))
	case mdast.KindDelete:
		return one(r.wrap("del", n.Children))
	case mdast.KindInlineCode:
		code := element("code")
		code.AppendChild(text(n.Value))
		return one(code)
	case mdast.KindBreak:
		return one(element("br"))
	case mdast.KindLink:
		a := r.wrap("a", n.Children, attr("href", n.URL))
		if n.Title != "" {
			a.Attr = append(a.Attr, attr("title", n.Title))
		}
		return one(a)
	case mdast.KindImage:
		img := element("img", attr("src", n.URL), attr("alt", n.Alt))
		if n.Title != "" {
			img.Attr = append(img.Attr, attr("title", n.Title))
		}
		return one(img)
	case mdast.KindFootnoteReference:
		a := element("a", attr("href", "#fn-"+n.Identifier), attr("id", "fnref-"+n.Identifier))
		a.AppendChild(text(n.Label))
		sup := element("sup")
		sup.AppendChild(a)
		return one(sup)
	case mdast.KindFootnoteDefinition:
		return one(r.wrap("div", n.Children, attr("class", "footnote"), attr("id", "fn-"+n.Identifier)))
	case mdast.KindFootnote:
		return one(r.wrap("span", n.Children, attr("class", "footnote")))
	case mdast.KindDefinition:
		return nil
	case mdast.KindElement:
		return one(r.wrap(n.HName, n.Children, attributes(n.Attributes)...))
	case mdast.KindContainerDirective, mdast.KindLeafDirective:
		return one(r.wrap("div", n.Children, directiveAttributes(n)...))
	case mdast.KindTextDirective:
		return one(r.wrap("span", n.Children, directiveAttributes(n)...))
	}
	return r.convertAll(n.Children)
}

func (r renderer) wrap(tag string, children []*mdast.Node, attrs ...html.Attribute) *html.Node {
	e := element(tag, attrs...)
	for _, c := range r.convertAll(children) {
		e.AppendChild(c)
	}
	return e
}

func (r renderer) list(n *mdast.Node) *html.Node {
	tag := "ul"
	var attrs []html.Attribute
	if n.Ordered {
		tag = "ol"
		if n.Start != 1 {
			attrs = append(attrs, attr("start", strconv.Itoa(n.Start)))
		}
	}
	list := element(tag, attrs...)
	for _, item := range n.Children {
		if item.Kind != mdast.KindListItem {
			for _, c := range r.convert(item) {
				list.AppendChild(c)
			}
			continue
		}
		list.AppendChild(r.listItem(item, !n.Spread))
	}
	return list
}

func (r renderer) listItem(n *mdast.Node, tight bool) *html.Node {
	li := element("li")
	if n.Checked != nil {
		box := element("input", attr("type", "checkbox"), attr("disabled", ""))
		if *n.Checked {
			box.Attr = append(box.Attr, attr("checked", ""))
		}
		li.AppendChild(box)
		li.AppendChild(text(" "))
	}
	for _, c := range n.Children {
		if tight && c.Kind == mdast.KindParagraph {
			for _, h := range r.convertAll(c.Children) {
				li.AppendChild(h)
			}
			continue
		}
		for _, h := range r.convert(c) {
			li.AppendChild(h)
		}
	}
	return li
}

func (r renderer) code(n *mdast.Node) *html.Node {
	if r.highlight && n.Lang != "" {
		if out, ok := highlight(n.Value, n.Lang); ok {
			return raw(out)
		}
	}
	var attrs []html.Attribute
	if n.Lang != "" {
		attrs = append(attrs, attr("class", "language-"+n.Lang))
	}
	code := element("code", attrs...)
	code.AppendChild(text(n.Value + "\n"))
	pre := element("pre")
	pre.AppendChild(code)
	return pre
}

func (r renderer) table(n *mdast.Node) *html.Node {
	table := element("table")
	if len(n.Children) == 0 {
		return table
	}
	thead := element("thead")
	thead.AppendChild(r.tableRow(n.Children[0], "th", n.Align))
	table.AppendChild(thead)

	if len(n.Children) > 1 {
		tbody := element("tbody")
		for _, row := range n.Children[1:] {
			tbody.AppendChild(r.tableRow(row, "td", n.Align))
		}
		table.AppendChild(tbody)
	}
	return table
}

func (r renderer) tableRow(n *mdast.Node, cellTag string, align []string) *html.Node {
	tr := element("tr")
	for i, cell := range n.Children {
		var attrs []html.Attribute
		if i < len(align) && align[i] != "" {
			attrs = append(attrs, attr("align", align[i]))
		}
		tr.AppendChild(r.wrap(cellTag, cell.Children, attrs...))
	}
	return tr
}

// directiveAttributes renders an unconverted directive as class=name plus
// its attributes. A class attribute is appended after the name.
func directiveAttributes(n *mdast.Node) []html.Attribute {
	class := n.Name
	rest := make(map[string]string, len(n.Attributes))
	for k, v := range n.Attributes {
		if k == "class" {
			if v != "" {
				class += " " + v
			}
			continue
		}
		rest[k] = v
	}
	return append([]html.Attribute{attr("class", class)}, attributes(rest)...)
}

// attributes converts m to html attributes sorted by key.
func attributes(m map[string]string) []html.Attribute {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]html.Attribute, 0, len(keys))
	for _, k := range keys {
		out = append(out, attr(k, m[k]))
	}
	return out
}

// opensFigure reports whether a paragraph was rewritten into a raw <figure>
// wrapper. Such paragraphs render without <p>, since a figure cannot sit
// inside one.
func opensFigure(p *mdast.Node) bool {
	if len(p.Children) == 0 {
		return false
	}
	first := p.Children[0]
	return first.Kind == mdast.KindHTML && strings.HasPrefix(first.Value, "<figure")
}

func clampDepth(d int) int {
	switch {
	case d < 1:
		return 1
	case d > 6:
		return 6
	}
	return d
}

func one(n *html.Node) []*html.Node { return []*html.Node{n} }

func element(tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag)), Attr: attrs}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func raw(s string) *html.Node {
	return &html.Node{Type: html.RawNode, Data: s}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

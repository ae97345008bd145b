// Package mdast defines the document tree the tufte passes operate on.
//
// The tree is a closed set of node kinds modelled after the Markdown AST used
// by remark (mdast), reduced to what the parser produces and the renderer
// understands. Parents own an ordered slice of children; there are no parent
// back-pointers, so every mutation goes through the parent's Children slice.
package mdast

// Kind identifies the shape of a Node.
type Kind int

// Node kinds.
const (
	KindRoot Kind = iota
	KindParagraph
	KindHeading
	KindThematicBreak
	KindBlockquote
	KindList
	KindListItem
	KindCode
	KindHTML
	KindDefinition
	KindFootnoteDefinition
	KindTable
	KindTableRow
	KindTableCell
	KindText
	KindEmphasis
	KindStrong
	KindDelete
	KindInlineCode
	KindBreak
	KindLink
	KindImage
	KindFootnoteReference
	KindFootnote
	KindElement
	KindContainerDirective
	KindLeafDirective
	KindTextDirective
)

var kindNames = [...]string{
	KindRoot:               "root",
	KindParagraph:          "paragraph",
	KindHeading:            "heading",
	KindThematicBreak:      "thematicBreak",
	KindBlockquote:         "blockquote",
	KindList:               "list",
	KindListItem:           "listItem",
	KindCode:               "code",
	KindHTML:               "html",
	KindDefinition:         "definition",
	KindFootnoteDefinition: "footnoteDefinition",
	KindTable:              "table",
	KindTableRow:           "tableRow",
	KindTableCell:          "tableCell",
	KindText:               "text",
	KindEmphasis:           "emphasis",
	KindStrong:             "strong",
	KindDelete:             "delete",
	KindInlineCode:         "inlineCode",
	KindBreak:              "break",
	KindLink:               "link",
	KindImage:              "image",
	KindFootnoteReference:  "footnoteReference",
	KindFootnote:           "footnote",
	KindElement:            "element",
	KindContainerDirective: "containerDirective",
	KindLeafDirective:      "leafDirective",
	KindTextDirective:      "textDirective",
}

// String returns the mdast type name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// IsDirective reports whether k is one of the named directive kinds.
func (k Kind) IsDirective() bool {
	return k == KindContainerDirective || k == KindLeafDirective || k == KindTextDirective
}

// Node is a single tree node. Only the fields relevant to Kind are set.
type Node struct {
	Kind     Kind
	Children []*Node

	// Value holds the literal content of text, inlineCode, code and html nodes.
	Value string

	// Depth is the heading level (1-6).
	Depth int

	// Link, image and definition fields.
	URL   string
	Title string
	Alt   string

	// Identifier is the normalized key of definitions and footnotes;
	// Label keeps the source spelling.
	Identifier string
	Label      string

	// Name and Attributes describe directives. Element nodes may also carry
	// Attributes, rendered onto the HName element.
	Name       string
	Attributes map[string]string

	// Lang is the info-string language of fenced code.
	Lang string

	// List fields. Spread is false for tight lists.
	Ordered bool
	Start   int
	Spread  bool

	// Checked is non-nil for task list items.
	Checked *bool

	// Align holds one entry per table column: "left", "right", "center" or "".
	Align []string

	// HName is the element name an Element node renders as.
	HName string
}

// Root returns a root node owning children.
func Root(children ...*Node) *Node {
	return &Node{Kind: KindRoot, Children: children}
}

// Paragraph returns a paragraph node.
func Paragraph(children ...*Node) *Node {
	return &Node{Kind: KindParagraph, Children: children}
}

// Heading returns a heading of the given depth.
func Heading(depth int, children ...*Node) *Node {
	return &Node{Kind: KindHeading, Depth: depth, Children: children}
}

// Text returns a text leaf.
func Text(value string) *Node {
	return &Node{Kind: KindText, Value: value}
}

// HTML returns a raw-markup leaf. Its value is emitted verbatim by the renderer
// and is opaque to every pass.
func HTML(value string) *Node {
	return &Node{Kind: KindHTML, Value: value}
}

// Element returns a node that renders as the named element.
func Element(hName string, children ...*Node) *Node {
	return &Node{Kind: KindElement, HName: hName, Children: children}
}

// Image returns an image leaf.
func Image(url, alt string) *Node {
	return &Node{Kind: KindImage, URL: url, Alt: alt}
}

// Link returns a link node.
func Link(url string, children ...*Node) *Node {
	return &Node{Kind: KindLink, URL: url, Children: children}
}

// Definition returns a link reference definition.
func Definition(label, url string) *Node {
	return &Node{Kind: KindDefinition, Label: label, Identifier: NormalizeIdentifier(label), URL: url}
}

// FootnoteReference returns a reference to the footnote labelled label.
func FootnoteReference(label string) *Node {
	return &Node{Kind: KindFootnoteReference, Label: label, Identifier: NormalizeIdentifier(label)}
}

// FootnoteDefinition returns the definition of the footnote labelled label.
func FootnoteDefinition(label string, children ...*Node) *Node {
	return &Node{Kind: KindFootnoteDefinition, Label: label, Identifier: NormalizeIdentifier(label), Children: children}
}

// Footnote returns an inline note carrying its own content.
func Footnote(children ...*Node) *Node {
	return &Node{Kind: KindFootnote, Children: children}
}

// Directive returns a named directive node of kind k.
// A nil attrs map is replaced by an empty one.
func Directive(k Kind, name string, attrs map[string]string, children ...*Node) *Node {
	if attrs == nil {
		attrs = map[string]string{}
	}
	return &Node{Kind: k, Name: name, Attributes: attrs, Children: children}
}

// IsParent reports whether n can own children.
func (n *Node) IsParent() bool {
	switch n.Kind {
	case KindText, KindHTML, KindCode, KindInlineCode, KindBreak, KindImage,
		KindThematicBreak, KindDefinition, KindFootnoteReference:
		return false
	}
	return true
}

// Attr returns the attribute value and whether it is present.
func (n *Node) Attr(name string) (string, bool) {
	if n.Attributes == nil {
		return "", false
	}
	v, ok := n.Attributes[name]
	return v, ok
}

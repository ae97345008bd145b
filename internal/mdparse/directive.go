package mdparse

import (
	"bytes"
	"unicode"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Goldmark node kinds added by this package.
var (
	KindContainerDirective = gast.NewNodeKind("ContainerDirective")
	KindLeafDirective      = gast.NewNodeKind("LeafDirective")
	KindTextDirective      = gast.NewNodeKind("TextDirective")
	KindInlineNote         = gast.NewNodeKind("InlineNote")
)

// ContainerDirective is a fenced `:::name` block whose body is parsed as
// Markdown. Nested containers use longer fences on the outside.
type ContainerDirective struct {
	gast.BaseBlock
	Name  string
	Label []byte
	Attrs map[string]string

	fence int
}

// Kind implements ast.Node.
func (n *ContainerDirective) Kind() gast.NodeKind { return KindContainerDirective }

// Dump implements ast.Node.
func (n *ContainerDirective) Dump(source []byte, level int) {
	gast.DumpHelper(n, source, level, map[string]string{"Name": n.Name}, nil)
}

// LeafDirective is a single-line `::name[label]{attrs}` block.
type LeafDirective struct {
	gast.BaseBlock
	Name  string
	Label []byte
	Attrs map[string]string
}

// Kind implements ast.Node.
func (n *LeafDirective) Kind() gast.NodeKind { return KindLeafDirective }

// Dump implements ast.Node.
func (n *LeafDirective) Dump(source []byte, level int) {
	gast.DumpHelper(n, source, level, map[string]string{"Name": n.Name, "Label": string(n.Label)}, nil)
}

// TextDirective is an inline `:name[label]{attrs}` span.
type TextDirective struct {
	gast.BaseInline
	Name  string
	Label []byte
	Attrs map[string]string
}

// Kind implements ast.Node.
func (n *TextDirective) Kind() gast.NodeKind { return KindTextDirective }

// Dump implements ast.Node.
func (n *TextDirective) Dump(source []byte, level int) {
	gast.DumpHelper(n, source, level, map[string]string{"Name": n.Name, "Label": string(n.Label)}, nil)
}

// InlineNote is a `^[note]` footnote written in place.
type InlineNote struct {
	gast.BaseInline
	Content []byte
}

// Kind implements ast.Node.
func (n *InlineNote) Kind() gast.NodeKind { return KindInlineNote }

// Dump implements ast.Node.
func (n *InlineNote) Dump(source []byte, level int) {
	gast.DumpHelper(n, source, level, map[string]string{"Content": string(n.Content)}, nil)
}

var (
	_ gast.Node = (*ContainerDirective)(nil)
	_ gast.Node = (*LeafDirective)(nil)
	_ gast.Node = (*TextDirective)(nil)
	_ gast.Node = (*InlineNote)(nil)
)

// blockDirectiveParser opens leaf (`::`) and container (`:::`) directives.
type blockDirectiveParser struct{}

// NewBlockDirectiveParser returns a parser.BlockParser for leaf and container directives.
func NewBlockDirectiveParser() parser.BlockParser {
	return &blockDirectiveParser{}
}

func (b *blockDirectiveParser) Trigger() []byte {
	return []byte{':'}
}

func (b *blockDirectiveParser) Open(parent gast.Node, reader text.Reader, pc parser.Context) (gast.Node, parser.State) {
	line, segment := reader.PeekLine()
	w, pos := util.IndentWidth(line, reader.LineOffset())
	if w > 3 {
		return nil, parser.NoChildren
	}

	fence := 0
	for i := pos; i < len(line) && line[i] == ':'; i++ {
		fence++
	}
	if fence < 2 {
		return nil, parser.NoChildren
	}

	rest := line[pos+fence:]
	head, ok := parseDirectiveHead(rest)
	if !ok || !util.IsBlank(rest[head.n:]) {
		return nil, parser.NoChildren
	}
	advanceLine(reader, line, segment)

	if fence == 2 {
		return &LeafDirective{
			Name:  head.name,
			Label: head.label,
			Attrs: head.attrs,
		}, parser.NoChildren
	}
	return &ContainerDirective{
		Name:  head.name,
		Label: head.label,
		Attrs: head.attrs,
		fence: fence,
	}, parser.HasChildren
}

func (b *blockDirectiveParser) Continue(node gast.Node, reader text.Reader, pc parser.Context) parser.State {
	container, ok := node.(*ContainerDirective)
	if !ok {
		return parser.Close
	}
	line, segment := reader.PeekLine()
	if isClosingFence(line, reader.LineOffset(), container.fence) {
		advanceLine(reader, line, segment)
		return parser.Close
	}
	return parser.Continue | parser.HasChildren
}

func (b *blockDirectiveParser) Close(node gast.Node, reader text.Reader, pc parser.Context) {}

func (b *blockDirectiveParser) CanInterruptParagraph() bool {
	return true
}

func (b *blockDirectiveParser) CanAcceptIndentedLine() bool {
	return false
}

// isClosingFence reports whether line is a run of at least fence colons
// followed only by whitespace.
func isClosingFence(line []byte, offset, fence int) bool {
	w, pos := util.IndentWidth(line, offset)
	if w > 3 {
		return false
	}
	n := 0
	for i := pos; i < len(line) && line[i] == ':'; i++ {
		n++
	}
	return n >= fence && util.IsBlank(line[pos+n:])
}

// advanceLine consumes the rest of the current line except its newline.
func advanceLine(reader text.Reader, line []byte, segment text.Segment) {
	newline := 1
	if len(line) == 0 || line[len(line)-1] != '\n' {
		newline = 0
	}
	reader.Advance(segment.Len() - newline)
}

// textDirectiveParser parses inline `:name[label]{attrs}` spans.
type textDirectiveParser struct{}

// NewTextDirectiveParser returns a parser.InlineParser for text directives.
func NewTextDirectiveParser() parser.InlineParser {
	return &textDirectiveParser{}
}

func (p *textDirectiveParser) Trigger() []byte {
	return []byte{':'}
}

func (p *textDirectiveParser) Parse(parent gast.Node, block text.Reader, pc parser.Context) gast.Node {
	// "a:b" and "::" are plain text.
	if prev := block.PrecendingCharacter(); prev == ':' || unicode.IsLetter(prev) || unicode.IsDigit(prev) {
		return nil
	}
	line, _ := block.PeekLine()
	if len(line) < 2 || line[1] == ':' {
		return nil
	}
	head, ok := parseDirectiveHead(line[1:])
	if !ok || (!head.hasLabel && !head.hasAttrs) {
		return nil
	}
	block.Advance(1 + head.n)
	return &TextDirective{
		Name:  head.name,
		Label: head.label,
		Attrs: head.attrs,
	}
}

// inlineNoteParser parses `^[note]` inline footnotes.
type inlineNoteParser struct{}

// NewInlineNoteParser returns a parser.InlineParser for inline notes.
func NewInlineNoteParser() parser.InlineParser {
	return &inlineNoteParser{}
}

func (p *inlineNoteParser) Trigger() []byte {
	return []byte{'^'}
}

func (p *inlineNoteParser) Parse(parent gast.Node, block text.Reader, pc parser.Context) gast.Node {
	line, _ := block.PeekLine()
	if len(line) < 3 || line[1] != '[' {
		return nil
	}
	content, n, ok := scanBracketed(line[1:])
	if !ok || len(bytes.TrimSpace(content)) == 0 {
		return nil
	}
	block.Advance(1 + n)
	return &InlineNote{Content: append([]byte(nil), content...)}
}

type directiveExtension struct{}

// DirectiveExtension adds text, leaf and container directives to goldmark.
var DirectiveExtension goldmark.Extender = &directiveExtension{}

func (e *directiveExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithBlockParsers(util.Prioritized(NewBlockDirectiveParser(), 150)),
		parser.WithInlineParsers(util.Prioritized(NewTextDirectiveParser(), 150)),
	)
}

type inlineNoteExtension struct{}

// InlineNoteExtension adds `^[note]` inline footnotes to goldmark.
var InlineNoteExtension goldmark.Extender = &inlineNoteExtension{}

func (e *inlineNoteExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithInlineParsers(util.Prioritized(NewInlineNoteParser(), 150)),
	)
}

package mdparse

import (
	"bytes"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindDanglingFootnote is the goldmark node kind of DanglingFootnote.
var KindDanglingFootnote = gast.NewNodeKind("DanglingFootnote")

// DanglingFootnote is a `[^label]` reference with no matching definition.
// Goldmark leaves such references as literal text; keeping them as nodes
// lets later stages report the missing definition.
type DanglingFootnote struct {
	gast.BaseInline
	Label []byte
}

// Kind implements ast.Node.
func (n *DanglingFootnote) Kind() gast.NodeKind { return KindDanglingFootnote }

// Dump implements ast.Node.
func (n *DanglingFootnote) Dump(source []byte, level int) {
	gast.DumpHelper(n, source, level, map[string]string{"Label": string(n.Label)}, nil)
}

// danglingFootnoteParser runs after the goldmark footnote parser, which
// claims every reference that has a definition.
type danglingFootnoteParser struct{}

func (p *danglingFootnoteParser) Trigger() []byte {
	return []byte{'['}
}

func (p *danglingFootnoteParser) Parse(parent gast.Node, block text.Reader, pc parser.Context) gast.Node {
	line, _ := block.PeekLine()
	if len(line) < 4 || line[1] != '^' {
		return nil
	}
	end := bytes.IndexByte(line, ']')
	if end < 3 {
		return nil
	}
	label := line[2:end]
	if bytes.ContainsAny(label, " \t\n[") {
		return nil
	}
	if end+1 < len(line) && (line[end+1] == '(' || line[end+1] == '[' || line[end+1] == ':') {
		return nil
	}
	block.Advance(end + 1)
	return &DanglingFootnote{Label: append([]byte(nil), label...)}
}

type danglingFootnoteExtension struct{}

// DanglingFootnoteExtension keeps undefined `[^label]` references as nodes.
// It must be combined with extension.Footnote.
var DanglingFootnoteExtension goldmark.Extender = &danglingFootnoteExtension{}

func (e *danglingFootnoteExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithInlineParsers(util.Prioritized(&danglingFootnoteParser{}, 150)),
	)
}

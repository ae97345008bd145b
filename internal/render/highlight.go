package render

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "github"

// CSS classes keep the markup small and let the page stylesheet own colors.
var formatter = chromahtml.New(chromahtml.WithClasses(true))

// highlight returns chroma markup for code, or false when lang is unknown.
func highlight(code, lang string) (string, bool) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		return "", false
	}
	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return "", false
	}
	var b strings.Builder
	if err := formatter.Format(&b, styles.Fallback, iterator); err != nil {
		return "", false
	}
	return b.String(), true
}

// HighlightCSS returns the stylesheet matching the highlight classes for the
// named chroma style. Unknown names fall back to chroma's default style.
func HighlightCSS(style string) (string, error) {
	if style == "" {
		style = DefaultHighlightStyle
	}
	var b strings.Builder
	if err := formatter.WriteCSS(&b, styles.Get(style)); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Package pipeline holds the document-level stages that surround the tufte
// passes:
//   - Markdown preprocessing (line endings, ==highlight== marks)
//   - Front matter extraction
//   - Relative path rewriting on the parsed tree
//   - Markdown to body HTML: parse, run the passes, render
//   - Page templating and CSS injection
//
// PDF export is handled separately by the root md2tufte package using
// headless Chrome (go-rod).
package pipeline

// Package md2tufte converts Markdown into Tufte-style HTML handouts, with
// sidenotes, margin notes, sections, attributed quotes, figures and citation
// links, and optionally prints them to PDF with headless Chrome.
//
// # Quick Start
//
//	conv, err := md2tufte.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, md2tufte.Input{
//	    Markdown: "# Hello\n\nA claim.[^1]\n\n[^1]: Its evidence.",
//	    HTMLOnly: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("hello.html", result.HTML, 0644)
//
// # Conversion Pipeline
//
//  1. Front matter (title, subtitle, lang, author, date, description, keywords)
//  2. Markdown preprocessing (line endings, ==highlight== marks)
//  3. Parsing via goldmark: GFM, footnotes, ^[inline notes] and
//     :text, ::leaf and :::container directives
//  4. Transformation passes on the document tree (see Passes)
//  5. Rendering, page template and stylesheet
//  6. Optional PDF rendering via headless Chrome (go-rod)
//
// # Markup
//
//	## Heading             starts a <section> running to the next ## heading
//	Text.[^note]           sidenote; "[^note]: {-} text" makes a margin note
//	Text.^[inline note]    sidenote without a separate definition
//	:nt[In the beginning]  small-caps new thought
//	> quote :cite[Author]{key}   attribution footer linking to [key]: url
//	![alt](img.png) Caption      figure with a margin caption
//	:::figure{fullwidth} … :::   explicit figure, optionally full width
//	:::sans … :::                sans-serif paragraph
//
// # Configuration
//
//	conv, err := md2tufte.NewConverter(
//	    md2tufte.WithPasses("sections", "sidenotes"),
//	    md2tufte.WithStyle("plain"),
//	    md2tufte.WithAssetPath("/path/to/assets"),
//	    md2tufte.WithTimeout(2 * time.Minute),
//	)
//
// # Errors
//
// A footnote or citation without a definition fails with
// ErrUnresolvedReference, a citation marker without a key with
// ErrAmbiguousKey. Non-fatal findings, such as duplicate definitions, are
// returned in ConvertResult.Diagnostics.
//
// # Parallel Processing
//
// For batch PDF export, ConverterPool manages one browser per Converter:
//
//	pool := md2tufte.NewConverterPool(4)
//	defer pool.Close()
//
//	conv, err := pool.Acquire()
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(conv)
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. go-rod downloads a managed
// Chromium on first run (~/.cache/rod/browser/). In containers and CI, set
// ROD_NO_SANDBOX=1; use ROD_BROWSER_BIN to point at a custom binary.
package md2tufte

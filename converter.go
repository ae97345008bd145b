package md2tufte

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/alnah/go-md2tufte/internal/fileutil"
	"github.com/alnah/go-md2tufte/internal/pipeline"
	"github.com/alnah/go-md2tufte/internal/render"
	"github.com/alnah/go-md2tufte/internal/tufte"
)

// Converter turns Markdown into Tufte-style HTML pages and, optionally, PDF.
// Create with NewConverter, call Convert, and Close when done. Convert may be
// called concurrently; PDF rendering shares one browser per Converter.
type Converter struct {
	cfg    converterConfig
	loader AssetLoader
	logger *slog.Logger

	body  pipeline.BodyConverter
	page  *pipeline.PageTemplate
	css   pipeline.CSSInjector
	style string
	pdf   pdfConverter
	now   func() time.Time
}

// NewConverter creates a Converter. It fails if a pass name is unknown or
// the style or template cannot be loaded.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout:        defaultTimeout,
			passes:         DefaultPasses(),
			styleInput:     DefaultStyle,
			templateName:   DefaultTemplate,
			highlightStyle: DefaultHighlightStyle,
		},
		css: &pipeline.CSSInjection{},
		now: time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.logger = c.cfg.logger
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if c.loader == nil {
		loader, err := NewAssetLoader(c.cfg.assetPath)
		if err != nil {
			return nil, err
		}
		c.loader = loader
	}

	passes, err := tufte.NewPipeline(c.cfg.passes,
		tufte.WithLogger(c.logger),
		tufte.WithSectionOptions(tufte.SectionOptions{IgnoreTrailingDefinitions: c.cfg.sections}),
	)
	if err != nil {
		return nil, err
	}
	c.body = pipeline.NewMarkdownConverter(passes)

	tmpl, err := c.loader.LoadTemplate(c.cfg.templateName)
	if err != nil {
		return nil, fmt.Errorf("loading template %q: %w", c.cfg.templateName, err)
	}
	if c.page, err = pipeline.NewPageTemplate(tmpl); err != nil {
		return nil, err
	}

	if c.style, err = c.resolveStyle(); err != nil {
		return nil, err
	}

	if c.pdf == nil {
		c.pdf = newRodConverter(c.cfg.timeout)
	}
	return c, nil
}

// Convert runs the full pipeline: front matter, preprocessing, parsing, the
// tufte passes, rendering, page template, CSS, then PDF unless
// input.HTMLOnly is set. The first pass error aborts the conversion.
// Internal panics are recovered and returned as errors.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := validateInput(input); err != nil {
		return nil, err
	}

	fm, markdown, err := pipeline.SplitFrontmatter(input.Markdown)
	if err != nil {
		return nil, err
	}
	if err := fm.ResolveDate(c.now()); err != nil {
		return nil, err
	}

	markdown = pipeline.Preprocess(ctx, markdown)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body, err := c.body.ToBody(ctx, markdown, input.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	htmlContent, err := c.page.Render(ctx, pipeline.NewPageData(fm, body))
	if err != nil {
		return nil, err
	}

	css := c.style
	if input.CSS != "" {
		css = joinCSS(css, input.CSS)
	}
	htmlContent = c.css.InjectCSS(ctx, htmlContent, css)
	htmlContent = pipeline.ConvertMarkPlaceholders(htmlContent)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &ConvertResult{
		HTML:        []byte(htmlContent),
		Title:       pageTitle(fm, body),
		Diagnostics: body.Report.Diagnostics,
	}
	if input.HTMLOnly {
		return res, nil
	}

	page := input.Page
	if page == nil {
		page = DefaultPageSettings()
	}
	if res.PDF, err = c.pdf.ToPDF(ctx, htmlContent, page); err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	return res, nil
}

// Close releases the headless browser, if one was started.
func (c *Converter) Close() error {
	if c.pdf != nil {
		return c.pdf.Close()
	}
	return nil
}

// Passes returns the pass names this converter runs, in order.
func (c *Converter) Passes() []string {
	return append([]string(nil), c.cfg.passes...)
}

// resolveStyle builds the stylesheet: the page style followed by the code
// highlighting theme.
func (c *Converter) resolveStyle() (string, error) {
	var css string

	switch input := c.cfg.styleInput; {
	case input == "" || input == NoStyle:
	case fileutil.IsFilePath(input):
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return "", fmt.Errorf("loading style file %q: %w", input, err)
		}
		css = string(content)
	default:
		content, err := c.loader.LoadStyle(input)
		if err != nil {
			return "", fmt.Errorf("loading style %q: %w", input, err)
		}
		css = content
	}

	if hs := c.cfg.highlightStyle; hs != "" && hs != NoStyle {
		code, err := render.HighlightCSS(hs)
		if err != nil {
			return "", fmt.Errorf("building highlight style %q: %w", hs, err)
		}
		css = joinCSS(css, code)
	}
	return css, nil
}

// validateInput is the trust boundary for library users building Input by hand.
func validateInput(input Input) error {
	if strings.TrimSpace(input.Markdown) == "" {
		return ErrEmptyMarkdown
	}
	return input.Page.Validate()
}

func pageTitle(fm pipeline.Frontmatter, body *pipeline.Body) string {
	if fm.Title != "" {
		return fm.Title
	}
	return body.Title
}

func joinCSS(a, b string) string {
	if a == "" {
		return b
	}
	return a + "\n" + b
}

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-md2tufte/internal/mdast"
	"github.com/alnah/go-md2tufte/internal/mdparse"
	"github.com/alnah/go-md2tufte/internal/render"
	"github.com/alnah/go-md2tufte/internal/tufte"
)

// ErrHTMLConversion indicates the Markdown could not be turned into HTML.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// Body is a document rendered to HTML, without page chrome.
type Body struct {
	HTML string
	// Title is the plain text of the first depth-1 heading, if any.
	Title  string
	Report *tufte.Report
}

// BodyConverter turns Markdown into body HTML.
type BodyConverter interface {
	ToBody(ctx context.Context, content, sourceDir string) (*Body, error)
}

// MarkdownConverter parses Markdown, applies the tufte passes and renders the
// result. It is safe for concurrent use.
type MarkdownConverter struct {
	parser   *mdparse.Parser
	pipeline *tufte.Pipeline
}

// NewMarkdownConverter creates a converter running the given pipeline.
func NewMarkdownConverter(p *tufte.Pipeline) *MarkdownConverter {
	return &MarkdownConverter{parser: mdparse.New(), pipeline: p}
}

// ToBody converts preprocessed Markdown. Relative image and link paths are
// resolved against sourceDir when it is set. Parsing and the passes do not
// observe ctx, so they run in a goroutine the caller can abandon. A panic
// in that goroutine is returned as ErrHTMLConversion.
func (c *MarkdownConverter) ToBody(ctx context.Context, content, sourceDir string) (*Body, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type result struct {
		body *Body
		err  error
	}
	done := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("%w: panic: %v", ErrHTMLConversion, r)}
			}
		}()
		body, err := c.convert(content, sourceDir)
		done <- result{body: body, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.body, r.err
	}
}

func (c *MarkdownConverter) convert(content, sourceDir string) (*Body, error) {
	root := c.parser.Parse([]byte(content))

	if err := RewriteRelativePaths(root, sourceDir); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}

	report, err := c.pipeline.Run(root)
	if err != nil {
		return nil, err
	}

	html, err := render.Document(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}

	return &Body{
		HTML:   html,
		Title:  firstTitle(root),
		Report: report,
	}, nil
}

func firstTitle(root *mdast.Node) string {
	h := mdast.Find(root, func(n *mdast.Node) bool {
		return n.Kind == mdast.KindHeading && n.Depth == 1
	})
	if h == nil {
		return ""
	}
	return strings.TrimSpace(mdast.ToString(h))
}

var _ BodyConverter = (*MarkdownConverter)(nil)

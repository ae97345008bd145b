package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
)

// ErrPageRender indicates the page template failed to parse or execute.
var ErrPageRender = errors.New("page template rendering failed")

// DefaultLang is used when the document does not declare a language.
const DefaultLang = "en"

// MetaTag is a <meta name content> pair in the page head.
type MetaTag struct {
	Name    string
	Content string
}

// PageData is what page templates are executed with.
type PageData struct {
	Title    string
	Subtitle string
	Lang     string
	Meta     []MetaTag
	Body     template.HTML
	// ShowTitle is false when the title was taken from a heading already
	// present in Body.
	ShowTitle bool
}

// NewPageData builds template data from front matter and a rendered body.
// Without a front matter title, the first depth-1 heading is used.
func NewPageData(fm Frontmatter, body *Body) PageData {
	data := PageData{
		Title:     fm.Title,
		Subtitle:  fm.Subtitle,
		Lang:      fm.Lang,
		Body:      template.HTML(body.HTML), // #nosec G203 -- produced by the renderer
		ShowTitle: fm.Title != "",
	}
	if data.Title == "" {
		data.Title = body.Title
	}
	if data.Lang == "" {
		data.Lang = DefaultLang
	}

	for _, m := range []MetaTag{
		{Name: "author", Content: fm.Author},
		{Name: "date", Content: fm.Date},
		{Name: "description", Content: fm.Description},
	} {
		if m.Content != "" {
			data.Meta = append(data.Meta, m)
		}
	}
	if len(fm.Keywords) > 0 {
		data.Meta = append(data.Meta, MetaTag{Name: "keywords", Content: joinKeywords(fm.Keywords)})
	}
	return data
}

func joinKeywords(words []string) string {
	var b bytes.Buffer
	for i, w := range words {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(w)
	}
	return b.String()
}

// PageTemplate wraps a rendered body into a complete HTML page.
type PageTemplate struct {
	tmpl *template.Template
}

// NewPageTemplate parses page template content.
func NewPageTemplate(content string) (*PageTemplate, error) {
	tmpl, err := template.New("page").Option("missingkey=error").Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageRender, err)
	}
	return &PageTemplate{tmpl: tmpl}, nil
}

// Render executes the template with data.
func (p *PageTemplate) Render(ctx context.Context, data PageData) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageRender, err)
	}
	return buf.String(), nil
}

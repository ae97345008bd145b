package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-md2tufte/internal/assets"
)

// ---------------------------------------------------------------------------
// PageData
// ---------------------------------------------------------------------------

func TestNewPageData(t *testing.T) {
	t.Parallel()

	t.Run("front matter title is shown", func(t *testing.T) {
		t.Parallel()

		data := NewPageData(Frontmatter{Title: "Handout", Author: "E. T.", Keywords: []string{"a", "b"}},
			&Body{HTML: "<p>x</p>", Title: "Heading"})

		if data.Title != "Handout" || !data.ShowTitle {
			t.Errorf("Title = %q, ShowTitle = %v", data.Title, data.ShowTitle)
		}
		if data.Lang != DefaultLang {
			t.Errorf("Lang = %q, want %q", data.Lang, DefaultLang)
		}
		want := []MetaTag{{Name: "author", Content: "E. T."}, {Name: "keywords", Content: "a, b"}}
		if len(data.Meta) != len(want) || data.Meta[0] != want[0] || data.Meta[1] != want[1] {
			t.Errorf("Meta = %v, want %v", data.Meta, want)
		}
	})

	t.Run("heading title is not repeated", func(t *testing.T) {
		t.Parallel()

		data := NewPageData(Frontmatter{}, &Body{HTML: "<h1>Heading</h1>", Title: "Heading"})
		if data.Title != "Heading" || data.ShowTitle {
			t.Errorf("Title = %q, ShowTitle = %v", data.Title, data.ShowTitle)
		}
	})
}

// ---------------------------------------------------------------------------
// PageTemplate
// ---------------------------------------------------------------------------

func TestPageTemplate_Render(t *testing.T) {
	t.Parallel()

	content, err := assets.LoadTemplate(assets.DefaultTemplateName)
	if err != nil {
		t.Fatalf("LoadTemplate() error = %v", err)
	}
	tmpl, err := NewPageTemplate(content)
	if err != nil {
		t.Fatalf("NewPageTemplate() error = %v", err)
	}

	data := PageData{
		Title:     "A <b> title",
		Subtitle:  "Sub",
		Lang:      "en",
		Body:      "<section><p>Body</p></section>",
		ShowTitle: true,
	}
	got, err := tmpl.Render(context.Background(), data)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	for _, want := range []string{
		`<html lang="en">`,
		"<title>A &lt;b&gt; title</title>",
		"<h1>A &lt;b&gt; title</h1>",
		`<p class="subtitle">Sub</p>`,
		"<section><p>Body</p></section>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Render() missing %q in:\n%s", want, got)
		}
	}
}

func TestPageTemplate_Errors(t *testing.T) {
	t.Parallel()

	if _, err := NewPageTemplate("{{.Body"); !errors.Is(err, ErrPageRender) {
		t.Errorf("NewPageTemplate(bad) error = %v, want ErrPageRender", err)
	}

	tmpl, err := NewPageTemplate("{{.Missing}}")
	if err != nil {
		t.Fatalf("NewPageTemplate() error = %v", err)
	}
	if _, err := tmpl.Render(context.Background(), PageData{}); !errors.Is(err, ErrPageRender) {
		t.Errorf("Render(missing field) error = %v, want ErrPageRender", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := tmpl.Render(ctx, PageData{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Render(cancelled) error = %v, want context.Canceled", err)
	}
}

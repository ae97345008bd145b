package md2tufte

import (
	"log/slog"
	"time"
)

// Option configures a Converter.
type Option func(*Converter)

type converterConfig struct {
	timeout        time.Duration
	passes         []string
	styleInput     string
	templateName   string
	highlightStyle string
	assetPath      string
	sections       bool
	logger         *slog.Logger
}

// defaultTimeout bounds PDF rendering when the context has no deadline.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the PDF rendering timeout. Panics if d is not positive.
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("md2tufte: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithPasses selects the transformation passes, in order. Unknown names make
// NewConverter fail with ErrUnknownPass. An empty list disables every pass.
func WithPasses(names ...string) Option {
	return func(c *Converter) {
		c.cfg.passes = append([]string{}, names...)
	}
}

// WithStyle sets the stylesheet: a style name resolved through the asset
// loader, a path to a CSS file, or "none" for no stylesheet.
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
	}
}

// WithTemplate sets the page template name resolved through the asset loader.
func WithTemplate(name string) Option {
	return func(c *Converter) {
		c.cfg.templateName = name
	}
}

// WithHighlightStyle sets the chroma style used for code blocks, or "none".
func WithHighlightStyle(name string) Option {
	return func(c *Converter) {
		c.cfg.highlightStyle = name
	}
}

// WithAssetPath adds a directory of custom styles and templates, searched
// before the built-in ones.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithAssetLoader replaces the asset loader. It takes precedence over
// WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *Converter) {
		c.loader = loader
	}
}

// WithIgnoreTrailingDefinitions keeps trailing link and footnote definitions
// out of the last section when sections are wrapped.
func WithIgnoreTrailingDefinitions(ignore bool) Option {
	return func(c *Converter) {
		c.cfg.sections = ignore
	}
}

// WithLogger sets the logger for pass timings and diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		c.cfg.logger = logger
	}
}

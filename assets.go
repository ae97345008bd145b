package md2tufte

import (
	"errors"
	"fmt"

	"github.com/alnah/go-md2tufte/internal/assets"
)

// Built-in asset names.
const (
	DefaultStyle          = assets.DefaultStyleName
	DefaultTemplate       = assets.DefaultTemplateName
	DefaultHighlightStyle = "github"

	// NoStyle disables the stylesheet or code highlighting theme.
	NoStyle = "none"
)

// AssetLoader loads CSS styles and page templates by name.
// Implementations may read from disk, embedded files, a database, etc.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads a page template by name (without .html extension).
	// Page templates are html/template sources executed with the title,
	// subtitle, language, meta tags and rendered body of a document.
	// Returns ErrTemplateNotFound if the template doesn't exist.
	LoadTemplate(name string) (string, error)
}

// NewAssetLoader creates an AssetLoader reading {basePath}/styles/{name}.css
// and {basePath}/templates/{name}.html, falling back to the built-in assets.
// An empty basePath yields the built-in assets only.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	return &assetLoaderAdapter{inner: resolver}, nil
}

// StyleNames lists the built-in styles.
func StyleNames() []string {
	return assets.StyleNames()
}

// CustomStyleNames lists the styles found in {basePath}/styles, sorted.
// A name shared with a built-in style overrides it.
func CustomStyleNames(basePath string) ([]string, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	return resolver.CustomStyleNames(), nil
}

// assetLoaderAdapter maps internal asset errors to the public sentinels.
type assetLoaderAdapter struct {
	inner assets.AssetLoader
}

func (a *assetLoaderAdapter) LoadStyle(name string) (string, error) {
	css, err := a.inner.LoadStyle(name)
	return css, translateAssetError(err, ErrStyleNotFound)
}

func (a *assetLoaderAdapter) LoadTemplate(name string) (string, error) {
	tmpl, err := a.inner.LoadTemplate(name)
	return tmpl, translateAssetError(err, ErrTemplateNotFound)
}

// translateAssetError reports missing and invalid names as notFound.
func translateAssetError(err, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, assets.ErrStyleNotFound),
		errors.Is(err, assets.ErrTemplateNotFound),
		errors.Is(err, assets.ErrInvalidAssetName):
		return fmt.Errorf("%w: %v", notFound, err)
	}
	return err
}

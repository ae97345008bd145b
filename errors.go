package md2tufte

import (
	"errors"

	"github.com/alnah/go-md2tufte/internal/pipeline"
	"github.com/alnah/go-md2tufte/internal/tufte"
)

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown  = errors.New("markdown content cannot be empty")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)

// Document and pipeline errors, shared with the internal packages so that
// errors.Is works across the API boundary.
var (
	// ErrAmbiguousKey indicates a citation marker without a usable key.
	ErrAmbiguousKey = tufte.ErrAmbiguousKey
	// ErrUnresolvedReference indicates a footnote or citation with no definition.
	ErrUnresolvedReference = tufte.ErrUnresolvedReference
	// ErrUnknownPass indicates a pass name that is not registered.
	ErrUnknownPass = tufte.ErrUnknownPass
	// ErrFrontmatter indicates malformed front matter.
	ErrFrontmatter = pipeline.ErrFrontmatter
	// ErrHTMLConversion indicates the Markdown could not be turned into HTML.
	ErrHTMLConversion = pipeline.ErrHTMLConversion
	// ErrPageRender indicates the page template failed.
	ErrPageRender = pipeline.ErrPageRender
)

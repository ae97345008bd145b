package main

import (
	"errors"
	"os"

	md2tufte "github.com/alnah/go-md2tufte"
	"github.com/alnah/go-md2tufte/internal/config"
)

// Exit codes for the md2tufte CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess  = 0 // Successful conversion
	ExitGeneral  = 1 // General/unexpected error
	ExitUsage    = 2 // Invalid flags, config, or validation
	ExitIO       = 3 // File not found, permission denied
	ExitBrowser  = 4 // Browser/Chrome errors
	ExitDocument = 5 // Broken references or malformed document
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, md2tufte.ErrBrowserConnect),
		errors.Is(err, md2tufte.ErrPageCreate),
		errors.Is(err, md2tufte.ErrPageLoad),
		errors.Is(err, md2tufte.ErrPDFGeneration):
		return ExitBrowser

	case errors.Is(err, md2tufte.ErrUnresolvedReference),
		errors.Is(err, md2tufte.ErrAmbiguousKey),
		errors.Is(err, md2tufte.ErrFrontmatter),
		errors.Is(err, md2tufte.ErrEmptyMarkdown):
		return ExitDocument

	case errors.Is(err, os.ErrNotExist),
		errors.Is(err, os.ErrPermission),
		errors.Is(err, ErrReadMarkdown),
		errors.Is(err, ErrReadCSS),
		errors.Is(err, ErrWriteOutput),
		errors.Is(err, ErrNoInput):
		return ExitIO

	case errors.Is(err, config.ErrConfigNotFound),
		errors.Is(err, config.ErrConfigParse),
		errors.Is(err, config.ErrConfigInvalid),
		errors.Is(err, config.ErrEmptyConfigName),
		errors.Is(err, md2tufte.ErrInvalidPageSize),
		errors.Is(err, md2tufte.ErrInvalidOrientation),
		errors.Is(err, md2tufte.ErrInvalidMargin),
		errors.Is(err, md2tufte.ErrStyleNotFound),
		errors.Is(err, md2tufte.ErrTemplateNotFound),
		errors.Is(err, md2tufte.ErrInvalidAssetPath),
		errors.Is(err, md2tufte.ErrUnknownPass),
		errors.Is(err, ErrInvalidExtension),
		errors.Is(err, ErrInvalidWorkerCount),
		errors.Is(err, ErrUnsupportedShell):
		return ExitUsage
	}

	return ExitGeneral
}

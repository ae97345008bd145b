package md2tufte

import (
	"fmt"
	"strings"

	"github.com/alnah/go-md2tufte/internal/tufte"
)

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// paperSizes holds portrait width and height in inches.
var paperSizes = map[string][2]float64{
	PageSizeLetter: {8.5, 11},
	PageSizeA4:     {8.27, 11.69},
	PageSizeLegal:  {8.5, 14},
}

// PageSettings controls PDF page layout.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns US Letter, portrait, half-inch margins.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks the settings. A nil PageSettings is valid.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}
	if _, ok := paperSizes[strings.ToLower(p.Size)]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}
	switch strings.ToLower(p.Orientation) {
	case OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}
	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}
	return nil
}

// dimensions returns the paper width and height in inches for the orientation.
func (p *PageSettings) dimensions() (width, height float64) {
	size := paperSizes[strings.ToLower(p.Size)]
	if strings.EqualFold(p.Orientation, OrientationLandscape) {
		return size[1], size[0]
	}
	return size[0], size[1]
}

// Input is one document to convert.
type Input struct {
	Markdown  string        // Markdown content, optionally with front matter (required)
	SourceDir string        // resolves relative image and link paths (optional)
	CSS       string        // extra CSS appended after the style (optional)
	HTMLOnly  bool          // skip PDF generation
	Page      *PageSettings // PDF page settings (optional, nil = defaults)
}

// Diagnostic is a non-fatal finding reported by a pass.
type Diagnostic = tufte.Diagnostic

// ConvertResult holds the outputs of a conversion.
type ConvertResult struct {
	HTML        []byte
	PDF         []byte // nil when Input.HTMLOnly is set
	Title       string
	Diagnostics []Diagnostic
}

// PassInfo describes a registered transformation pass.
type PassInfo struct {
	Name        string
	Description string
}

// Passes lists every registered pass in registry order.
func Passes() []PassInfo {
	registered := tufte.Passes()
	out := make([]PassInfo, len(registered))
	for i, p := range registered {
		out[i] = PassInfo{Name: p.Name, Description: p.Description}
	}
	return out
}

// DefaultPasses returns the pass names run when WithPasses is not used.
func DefaultPasses() []string {
	return append([]string(nil), tufte.DefaultPassNames...)
}

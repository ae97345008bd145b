package tufte

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/alnah/go-md2tufte/internal/mdast"
)

// Pass names accepted by NewPipeline.
const (
	PassSections    = "sections"
	PassAttribution = "attribution"
	PassCite        = "cite"
	PassImageFigure = "image-figure"
	PassSidenotes   = "sidenotes"
	PassNewThought  = "newthought"
	PassDirectives  = "directives"
)

// DefaultPassNames is the order used when no passes are configured.
var DefaultPassNames = []string{
	PassSections,
	PassAttribution,
	PassCite,
	PassSidenotes,
	PassNewThought,
	PassImageFigure,
	PassDirectives,
}

// Pass describes one registered transformation.
type Pass struct {
	Name        string
	Description string

	apply func(root *mdast.Node, run *Run, p *Pipeline) error
}

var registry = []Pass{
	{
		Name:        PassSections,
		Description: "wrap each level-2 heading and its content in <section>",
		apply: func(root *mdast.Node, _ *Run, p *Pipeline) error {
			return WrapSections(root, p.sections)
		},
	},
	{
		Name:        PassAttribution,
		Description: "wrap :cite attributions inside block quotes in <footer>",
		apply:       func(root *mdast.Node, _ *Run, _ *Pipeline) error { return AttributeQuotes(root) },
	},
	{
		Name:        PassCite,
		Description: "link :cite[text]{key} markers to reference definitions",
		apply:       func(root *mdast.Node, _ *Run, _ *Pipeline) error { return ResolveCitations(root) },
	},
	{
		Name:        PassSidenotes,
		Description: "turn footnotes into sidenotes, or margin notes when they start with {-}",
		apply:       func(root *mdast.Node, run *Run, _ *Pipeline) error { return ConvertSidenotes(root, run) },
	},
	{
		Name:        PassNewThought,
		Description: "render :nt[text] as a small-caps new thought",
		apply:       func(root *mdast.Node, _ *Run, _ *Pipeline) error { return EmphasizeNewThoughts(root) },
	},
	{
		Name:        PassImageFigure,
		Description: "wrap paragraph images in <figure> with a margin caption",
		apply:       func(root *mdast.Node, run *Run, _ *Pipeline) error { return ImagesToFigures(root, run) },
	},
	{
		Name:        PassDirectives,
		Description: "expand :::figure{fullwidth} and :::sans blocks",
		apply:       func(root *mdast.Node, _ *Run, _ *Pipeline) error { return ExpandDirectives(root) },
	},
}

// Passes returns every registered pass in default order.
func Passes() []Pass {
	return append([]Pass(nil), registry...)
}

func lookupPass(name string) (Pass, bool) {
	for _, p := range registry {
		if p.Name == name {
			return p, true
		}
	}
	return Pass{}, false
}

// ordering lists pairs that must run in the given order when both are
// selected. A :cite marker or a footnote reference has to be resolved
// before a pass serializes the content holding it, and attribution has to
// see markers before they become links.
var ordering = [][2]string{
	{PassAttribution, PassCite},
	{PassCite, PassSidenotes},
	{PassCite, PassNewThought},
	{PassCite, PassImageFigure},
	{PassCite, PassDirectives},
	{PassSidenotes, PassNewThought},
	{PassSidenotes, PassImageFigure},
	{PassSidenotes, PassDirectives},
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger for pass timings and diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithSectionOptions configures the sections pass.
func WithSectionOptions(opts SectionOptions) Option {
	return func(p *Pipeline) {
		p.sections = opts
	}
}

// Pipeline runs a fixed sequence of passes over document trees.
// A Pipeline is immutable after creation and safe for concurrent use on
// distinct trees.
type Pipeline struct {
	passes   []Pass
	warnings []Diagnostic
	sections SectionOptions
	logger   *slog.Logger
}

// NewPipeline builds a pipeline running the named passes in order.
// Unknown names fail with ErrUnknownPass. Order problems are not errors;
// they are reported as diagnostics on every run.
func NewPipeline(names []string, opts ...Option) (*Pipeline, error) {
	p := &Pipeline{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}

	position := map[string]int{}
	for i, name := range names {
		pass, ok := lookupPass(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPass, name)
		}
		if _, dup := position[name]; dup {
			p.warnings = append(p.warnings, Diagnostic{Message: fmt.Sprintf("pass %q is listed more than once", name)})
			continue
		}
		position[name] = i
		p.passes = append(p.passes, pass)
	}

	for _, pair := range ordering {
		before, okBefore := position[pair[0]]
		after, okAfter := position[pair[1]]
		if okBefore && okAfter && before > after {
			p.warnings = append(p.warnings, Diagnostic{
				Message: fmt.Sprintf("pass %q should run before %q", pair[0], pair[1]),
			})
		}
	}
	return p, nil
}

// Names returns the passes the pipeline runs, in order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.passes))
	for i, pass := range p.passes {
		names[i] = pass.Name
	}
	return names
}

// Report summarizes a successful run.
type Report struct {
	Passes      []string
	Diagnostics []Diagnostic
}

// Run applies the passes to root in order, mutating it in place. The first
// failing pass aborts the run; its error is wrapped with the pass name.
func (p *Pipeline) Run(root *mdast.Node) (*Report, error) {
	if root == nil {
		return nil, ErrNilTree
	}

	run := NewRun()
	run.Diagnostics = append(run.Diagnostics, p.warnings...)

	for _, pass := range p.passes {
		run.pass = pass.Name
		start := time.Now()
		if err := pass.apply(root, run, p); err != nil {
			p.logger.Debug("pass failed", "pass", pass.Name, "error", err)
			return nil, fmt.Errorf("pass %s: %w", pass.Name, err)
		}
		p.logger.Debug("pass complete", "pass", pass.Name, "duration", time.Since(start))
	}

	for _, d := range run.Diagnostics {
		p.logger.Warn(d.Message, "pass", d.Pass)
	}
	return &Report{Passes: p.Names(), Diagnostics: run.Diagnostics}, nil
}

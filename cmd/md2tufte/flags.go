package main

import (
	"errors"
	"io"
	"time"

	flag "github.com/spf13/pflag"
)

// errHelpRequested is returned when -h/--help is passed to a command.
var errHelpRequested = flag.ErrHelp

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// pageFlags holds page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// assetFlags holds stylesheet and template flags.
type assetFlags struct {
	style     string // name or path
	template  string
	highlight string
	css       string // extra CSS file appended after the style
	assetPath string
	noStyle   bool
}

// passFlags holds transformation pass flags.
type passFlags struct {
	enabled          []string
	ignoreTrailing   bool
	failOnDiagnostic bool
}

// convertFlags holds all flags for convert, watch and serve.
type convertFlags struct {
	common   commonFlags
	output   string
	workers  int
	timeout  time.Duration
	pdf      bool
	keepHTML bool
	addr     string
	debounce time.Duration
	page     pageFlags
	assets   assetFlags
	passes   passFlags

	// changed reports whether a flag was set on the command line.
	changed func(name string) bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show pass timings and debug output")
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "margin in inches (0.25-3.0)")
}

// addAssetFlags adds stylesheet and template flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "style name or CSS file path")
	fs.StringVar(&f.template, "template", "", "page template name")
	fs.StringVar(&f.highlight, "highlight", "", `code highlighting theme ("none" disables)`)
	fs.StringVar(&f.css, "css", "", "extra CSS file appended after the style")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory with styles/ and templates/")
	fs.BoolVar(&f.noStyle, "no-style", false, "disable the stylesheet")
}

// addPassFlags adds transformation pass flags to a FlagSet.
func addPassFlags(fs *flag.FlagSet, f *passFlags) {
	fs.StringSliceVar(&f.enabled, "passes", nil, "comma-separated passes to run, in order")
	fs.BoolVar(&f.ignoreTrailing, "ignore-trailing-defs", false, "keep trailing definitions out of the last section")
	fs.BoolVar(&f.failOnDiagnostic, "strict", false, "treat pass diagnostics as errors")
}

// newConvertFlagSet registers every flag of cmd on a new FlagSet.
func newConvertFlagSet(cmd string, f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false

	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	addPassFlags(fs, &f.passes)
	addAssetFlags(fs, &f.assets)

	switch cmd {
	case "serve":
		fs.StringVar(&f.addr, "addr", "", "listen address")
	default:
		fs.BoolVar(&f.pdf, "pdf", false, "export PDF instead of HTML")
		fs.BoolVar(&f.keepHTML, "html", false, "also write HTML when exporting PDF")
		fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
		fs.DurationVarP(&f.timeout, "timeout", "t", 0, "PDF rendering timeout per file")
		addPageFlags(fs, &f.page)
	}
	if cmd == "watch" {
		fs.DurationVar(&f.debounce, "debounce", defaultDebounce, "delay before rebuilding after a change")
	}
	return fs
}

// parseConvertFlags parses args for cmd and returns the remaining
// positional arguments.
func parseConvertFlags(cmd string, args []string) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newConvertFlagSet(cmd, f)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil, errHelpRequested
		}
		return nil, nil, err
	}
	f.changed = fs.Changed
	return f, fs.Args(), nil
}

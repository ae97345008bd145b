package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	md2tufte "github.com/alnah/go-md2tufte"
	"github.com/alnah/go-md2tufte/internal/fileutil"
)

// Sentinel errors for batch operations.
var (
	ErrNoInput        = errors.New("no input specified")
	ErrReadCSS        = errors.New("failed to read CSS file")
	ErrReadMarkdown   = errors.New("failed to read markdown file")
	ErrWriteOutput    = errors.New("failed to write output file")
	ErrConverterInit  = errors.New("failed to initialize converter")
	ErrDiagnostics    = errors.New("document has diagnostics")
	ErrNoMarkdownFile = errors.New("no markdown files found")
)

// conversionParams groups parameters shared across a batch.
type conversionParams struct {
	css      string
	page     *md2tufte.PageSettings
	pdf      bool
	keepHTML bool
	strict   bool
	logger   *slog.Logger
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath   string
	OutputPath  string
	Diagnostics int
	Err         error
	Duration    time.Duration
}

// convertBatch converts files concurrently, at most pool.Size() at a time.
// A failing file does not stop the others.
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert, params *conversionParams) []ConversionResult {
	results := make([]ConversionResult, len(files))

	var g errgroup.Group
	g.SetLimit(max(pool.Size(), 1))

	for i, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = ConversionResult{InputPath: f.InputPath, Err: err}
				return nil
			}
			conv, err := pool.Acquire()
			if err != nil {
				results[i] = ConversionResult{InputPath: f.InputPath, Err: fmt.Errorf("%w: %w", ErrConverterInit, err)}
				return nil
			}
			defer pool.Release(conv)

			results[i] = convertFile(ctx, conv, f, params)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// convertFile converts one file and writes its outputs atomically.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert, params *conversionParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{InputPath: f.InputPath, OutputPath: f.OutputPath}
	finish := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return finish(fmt.Errorf("%w: %v", ErrReadMarkdown, err))
	}

	sourceDir, err := filepath.Abs(filepath.Dir(f.InputPath))
	if err != nil {
		return finish(fmt.Errorf("resolving source directory: %w", err))
	}

	res, err := conv.Convert(ctx, md2tufte.Input{
		Markdown:  string(content),
		SourceDir: sourceDir,
		CSS:       params.css,
		HTMLOnly:  !params.pdf,
		Page:      params.page,
	})
	if err != nil {
		return finish(err)
	}

	result.Diagnostics = len(res.Diagnostics)
	for _, d := range res.Diagnostics {
		params.logger.Warn("diagnostic", "file", f.InputPath, "pass", d.Pass, "message", d.Message)
	}
	if params.strict && result.Diagnostics > 0 {
		return finish(fmt.Errorf("%w: %d found", ErrDiagnostics, result.Diagnostics))
	}

	if !params.pdf {
		return finish(writeOutput(f.OutputPath, res.HTML))
	}
	if params.keepHTML {
		if err := writeOutput(fileutil.ReplaceExt(f.OutputPath, ".html"), res.HTML); err != nil {
			return finish(err)
		}
	}
	return finish(writeOutput(f.OutputPath, res.PDF))
}

func writeOutput(path string, data []byte) error {
	if err := fileutil.WriteFileAtomic(path, data); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
	FirstErr  error
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
			if summary.FirstErr == nil {
				summary.FirstErr = r.Err
			}
			continue
		}
		summary.Succeeded++
	}
	return summary
}

// printResults writes one line per file and a summary for batches.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) ResultSummary {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}
		if quiet {
			continue
		}
		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v, %d diagnostics)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond), r.Diagnostics)
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}
	return summary
}

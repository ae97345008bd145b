package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alnah/go-md2tufte/internal/config"
)

// newPool creates the converter pool for a run. Tests replace it.
var newPool = func(cfg *config.Config, logger *slog.Logger) Pool {
	return newConverterPool(resolvePoolSize(cfg.PDF.Workers, cfg.PDF.Enabled), converterOptions(cfg, logger)...)
}

// job is a resolved convert or watch invocation.
type job struct {
	cfg       *config.Config
	inputPath string
	outputDir string
	params    *conversionParams
}

// outputExt is the extension of the primary output.
func (j *job) outputExt() string {
	if j.cfg.PDF.Enabled {
		return ".pdf"
	}
	return ".html"
}

// prepareJob resolves settings, input and shared conversion parameters.
func prepareJob(args []string, flags *convertFlags, env *Environment, logger *slog.Logger) (*job, error) {
	if err := validateWorkers(flags.workers); err != nil {
		return nil, err
	}

	cfg, err := loadSettings(flags, env)
	if err != nil {
		return nil, err
	}

	inputPath, err := resolveInputPath(args, cfg)
	if err != nil {
		return nil, err
	}

	css, err := readExtraCSS(flags.assets.css)
	if err != nil {
		return nil, err
	}

	return &job{
		cfg:       cfg,
		inputPath: inputPath,
		outputDir: cfg.Output.DefaultDir,
		params: &conversionParams{
			css:      css,
			page:     pageSettings(cfg),
			pdf:      cfg.PDF.Enabled,
			keepHTML: flags.keepHTML,
			strict:   flags.passes.failOnDiagnostic,
			logger:   logger,
		},
	}, nil
}

// runConvert converts a file or a directory tree.
func runConvert(ctx context.Context, args []string, flags *convertFlags, env *Environment, logger *slog.Logger) error {
	j, err := prepareJob(args, flags, env, logger)
	if err != nil {
		return err
	}

	files, err := discoverFiles(j.inputPath, j.outputDir, j.outputExt())
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w in %s", ErrNoMarkdownFile, j.inputPath)
	}

	pool := newPool(j.cfg, logger)
	defer func() {
		if err := pool.Close(); err != nil {
			logger.Warn("closing converters", "error", err)
		}
	}()
	logger.Debug("converting", "files", len(files), "workers", pool.Size(), "pdf", j.cfg.PDF.Enabled)

	results := convertBatch(ctx, pool, files, j.params)
	summary := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if summary.Failed > 0 {
		if summary.Failed == 1 && len(results) == 1 {
			return summary.FirstErr
		}
		return fmt.Errorf("%d conversion(s) failed: %w", summary.Failed, summary.FirstErr)
	}
	return nil
}

package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
)

// defaultDebounce groups the burst of events editors emit on save.
const defaultDebounce = 200 * time.Millisecond

// runWatch converts the input once, then again for every changed markdown
// file until the context is cancelled.
func runWatch(ctx context.Context, args []string, flags *convertFlags, env *Environment, logger *slog.Logger) error {
	j, err := prepareJob(args, flags, env, logger)
	if err != nil {
		return err
	}

	info, err := os.Stat(j.inputPath)
	if err != nil {
		return err
	}
	baseDir := ""
	if info.IsDir() {
		baseDir = j.inputPath
	} else if err := validateMarkdownExtension(j.inputPath); err != nil {
		return err
	}

	pool := newPool(j.cfg, logger)
	defer func() { _ = pool.Close() }()

	files, err := discoverFiles(j.inputPath, j.outputDir, j.outputExt())
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	printResults(convertBatch(ctx, pool, files, j.params), flags.common.quiet, flags.common.verbose, env)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer w.Close()

	watchRoot := j.inputPath
	if baseDir == "" {
		watchRoot = filepath.Dir(j.inputPath)
	}
	if err := addDirsRecursive(w, watchRoot, baseDir != ""); err != nil {
		return fmt.Errorf("watching %s: %w", watchRoot, err)
	}
	logger.Info("watching", "path", j.inputPath)

	debounce := flags.debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	pending := make(map[string]bool)
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case <-fire:
			fire = nil
			batch := make([]FileToConvert, 0, len(pending))
			for path := range pending {
				batch = append(batch, FileToConvert{InputPath: path, OutputPath: resolveOutputPath(path, j.outputDir, baseDir, j.outputExt())})
			}
			sort.Slice(batch, func(a, b int) bool { return batch[a].InputPath < batch[b].InputPath })
			clear(pending)
			printResults(convertBatch(ctx, pool, batch, j.params), flags.common.quiet, flags.common.verbose, env)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&fsnotify.Create != 0 && baseDir != "" {
				if st, statErr := os.Stat(ev.Name); statErr == nil && st.IsDir() {
					if addErr := addDirsRecursive(w, ev.Name, true); addErr != nil {
						logger.Warn("watch: add directory failed", "path", ev.Name, "error", addErr)
					}
					continue
				}
			}
			if !isWatchedChange(ev, j.inputPath, baseDir) {
				continue
			}
			logger.Debug("watch: change", "path", ev.Name, "op", ev.Op.String())
			pending[ev.Name] = true
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch: error", "error", watchErr)
		}
	}
}

// isWatchedChange reports whether ev writes a markdown file that belongs
// to the watched input.
func isWatchedChange(ev fsnotify.Event, inputPath, baseDir string) bool {
	if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 || !isMarkdown(ev.Name) {
		return false
	}
	if baseDir == "" {
		return filepath.Clean(ev.Name) == filepath.Clean(inputPath)
	}
	return true
}

// addDirsRecursive adds root, and its subdirectories when recursive is set,
// to the watcher. Hidden directories are skipped.
func addDirsRecursive(w *fsnotify.Watcher, root string, recursive bool) error {
	if !recursive {
		return w.Add(root)
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && len(d.Name()) > 1 && d.Name()[0] == '.' {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}

package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/alnah/go-litdoc/internal/config"
	"github.com/alnah/go-litdoc/internal/watch"
)

// watchSession carries what a re-conversion needs.
type watchSession struct {
	pool   Pool
	inputs []string
	cfg    *config.Config
	css    string
	flags  *cliFlags
	env    *Environment
}

// watchAndConvert re-converts changed inputs until ctx is canceled.
// Inputs are rediscovered on each change so new files in watched
// directories or matching a glob are picked up.
func watchAndConvert(ctx context.Context, s watchSession) error {
	debounce, err := s.cfg.DebounceDuration()
	if err != nil {
		return err
	}
	logger := s.env.logger(s.flags.common.verbose)

	w, err := watch.New(debounce,
		watch.WithLogger(logger),
		watch.WithFilter(func(path string) bool {
			return hasExtension(path, s.cfg.Input.Extensions)
		}),
		// Generated documents must not trigger rebuilds.
		watch.WithSkipDir(func(name string) bool {
			return name == docsDirName
		}),
	)
	if err != nil {
		return err
	}
	defer w.Close()

	roots, err := watchRoots(s.inputs)
	if err != nil {
		return err
	}
	if err := w.Add(roots...); err != nil {
		return err
	}

	logger.Info("watching for changes", "dirs", len(w.Dirs()), "debounce", debounce)
	if !s.flags.common.quiet {
		fmt.Fprintln(s.env.Stdout, "Watching... Ctrl+C to exit")
	}

	return w.Run(ctx, func(paths []string) {
		files, err := changedFiles(s, paths)
		if err != nil {
			logger.Error("rediscovering inputs", "error", err)
			return
		}
		if len(files) == 0 {
			return
		}
		logger.Debug("re-converting", "files", len(files))
		results := convertBatch(ctx, s.pool, files, s.css)
		report(results, s.flags, s.cfg, s.env)
	})
}

// changedFiles returns the discovered files whose source is in paths.
func changedFiles(s watchSession, paths []string) ([]FileToConvert, error) {
	changed := make(map[string]bool, len(paths))
	for _, p := range paths {
		changed[p] = true
	}

	all, err := discoverFiles(s.inputs, s.cfg.Output.Dir, s.cfg.Input.Extensions)
	if err != nil {
		return nil, err
	}

	var out []FileToConvert
	for _, f := range all {
		abs, err := filepath.Abs(f.InputPath)
		if err != nil {
			continue
		}
		if changed[abs] {
			out = append(out, f)
		}
	}
	return out, nil
}

// watchRoots maps inputs to paths for the watcher: files and directories
// as given, and for a glob its directory, or its matches when the directory
// part is itself a pattern.
func watchRoots(inputs []string) ([]string, error) {
	var roots []string
	for _, input := range inputs {
		if !hasGlobMeta(input) {
			roots = append(roots, input)
			continue
		}
		dir := filepath.Dir(input)
		if !hasGlobMeta(dir) {
			roots = append(roots, dir)
			continue
		}
		matches, err := filepath.Glob(input)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrNoMatch, input, err)
		}
		roots = append(roots, matches...)
	}
	return roots, nil
}

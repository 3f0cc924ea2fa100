package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	litdoc "github.com/alnah/go-litdoc"
)

// Sentinel errors for file discovery.
var (
	ErrNoMatch            = errors.New("pattern matched no files")
	ErrOutputConflict     = errors.New("several inputs map to the same output")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// docsDirName is the output directory created next to sources when no
// output directory is given.
const docsDirName = "docs"

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// discoverFiles expands inputs (files, directories or glob patterns) into
// the files to convert, in a stable order and without duplicates.
// Directories are walked for files whose extension is in exts; hidden
// directories and docs/ output directories are skipped. Files named
// explicitly are kept whatever their extension.
func discoverFiles(inputs []string, outputDir string, exts []string) ([]FileToConvert, error) {
	var files []FileToConvert
	seen := make(map[string]bool)
	outputs := make(map[string]string)

	add := func(path, baseDir string) error {
		clean := filepath.Clean(path)
		if seen[clean] {
			return nil
		}
		seen[clean] = true

		out := resolveOutputPath(clean, outputDir, baseDir)
		if prev, ok := outputs[out]; ok {
			return fmt.Errorf("%w: %s and %s both write %s", ErrOutputConflict, prev, clean, out)
		}
		outputs[out] = clean
		files = append(files, FileToConvert{InputPath: clean, OutputPath: out})
		return nil
	}

	for _, input := range inputs {
		paths := []string{input}
		if hasGlobMeta(input) {
			matches, err := filepath.Glob(input)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrNoMatch, input, err)
			}
			if len(matches) == 0 {
				return nil, fmt.Errorf("%w: %s", ErrNoMatch, input)
			}
			paths = matches
		}

		for _, p := range paths {
			info, err := os.Stat(p)
			if err != nil {
				return nil, err
			}
			if !info.IsDir() {
				if err := add(p, ""); err != nil {
					return nil, err
				}
				continue
			}
			found, err := walkSources(p, exts)
			if err != nil {
				return nil, err
			}
			for _, f := range found {
				if err := add(f, p); err != nil {
					return nil, err
				}
			}
		}
	}
	return files, nil
}

// walkSources lists files under root with one of the given extensions.
func walkSources(root string, exts []string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			if path != root && (strings.HasPrefix(d.Name(), ".") || d.Name() == docsDirName) {
				return filepath.SkipDir
			}
			return nil
		}
		if hasExtension(path, exts) {
			found = append(found, path)
		}
		return nil
	})
	return found, err
}

func hasExtension(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.ContainsFunc(exts, func(e string) bool {
		return strings.ToLower(e) == ext
	})
}

func hasGlobMeta(path string) bool {
	return strings.ContainsAny(path, "*?[")
}

// resolveOutputPath determines the HTML output path for a source file.
//
// Without an output directory the document goes to docs/ next to the
// source, or to the sibling docs/ when the source sits in a src/ directory:
//
//	awesome.py     -> docs/awesome.html
//	src/awesome.py -> docs/awesome.html
//
// With an output directory, files found by walking baseInputDir keep their
// relative subdirectory.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	ext := filepath.Ext(inputPath)
	name := strings.TrimSuffix(filepath.Base(inputPath), ext) + ".html"

	if outputDir == "" {
		return filepath.Join(docsDirFor(inputPath), name)
	}

	if baseInputDir != "" {
		if rel, err := filepath.Rel(baseInputDir, inputPath); err == nil {
			return filepath.Join(outputDir, filepath.Dir(rel), name)
		}
	}
	return filepath.Join(outputDir, name)
}

// docsDirFor returns the docs directory for a source file.
func docsDirFor(inputPath string) string {
	dir := filepath.Dir(inputPath)
	if filepath.Base(dir) == "src" {
		return filepath.Join(filepath.Dir(dir), docsDirName)
	}
	return filepath.Join(dir, docsDirName)
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > litdoc.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, litdoc.MaxPoolSize)
	}
	return nil
}

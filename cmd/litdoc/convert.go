package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	litdoc "github.com/alnah/go-litdoc"
	"github.com/alnah/go-litdoc/internal/config"
	"github.com/alnah/go-litdoc/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput = errors.New("no input specified")
	ErrReadCSS = errors.New("failed to read CSS file")
	ErrUsage   = errors.New("invalid usage")
)

// runConvert loads configuration, converts every input and, in watch mode,
// keeps converting changed inputs until ctx is canceled.
func runConvert(ctx context.Context, args []string, flags *cliFlags, env *Environment) error {
	if err := validateWorkers(flags.output.workers); err != nil {
		return err
	}

	// Load config (defaults when no --config is given)
	cfg, err := loadConfig(flags.common.config)
	if err != nil {
		return err
	}

	// CLI wins over the config file.
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if flags.common.printConfig {
		out, err := cfg.Marshal()
		if err != nil {
			return err
		}
		_, err = env.Stdout.Write(out)
		return err
	}

	// Resolve and discover files to convert
	inputs, err := resolveInputs(args, cfg)
	if err != nil {
		return err
	}

	files, err := discoverFiles(inputs, cfg.Output.Dir, cfg.Input.Extensions)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: nothing to convert in %s%s",
			ErrNoInput, strings.Join(inputs, ", "), hints.ForNoInputs(cfg.Input.Extensions))
	}

	// Extra CSS is appended after the style and highlight rules
	css, err := readExtraCSS(cfg.Style.CSS)
	if err != nil {
		return err
	}

	pool := newConverterPool(litdoc.ResolvePoolSize(flags.output.workers), converterOptions(cfg, flags.style.noStyle)...)
	defer pool.Close()

	// Fail on bad options before touching any file.
	conv, err := pool.Acquire()
	if err != nil {
		if errors.Is(err, litdoc.ErrStyleNotFound) {
			return fmt.Errorf("%w%s", err, hints.ForStyleNotFound(litdoc.StyleNames()))
		}
		return err
	}
	pool.Release(conv)

	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Converting %d file(s) with %d worker(s)\n", len(files), pool.Size())
	}

	results := convertBatch(ctx, pool, files, css)
	failed := report(results, flags, cfg, env)

	if flags.watch.enabled {
		return watchAndConvert(ctx, watchSession{
			pool:   pool,
			inputs: inputs,
			cfg:    cfg,
			css:    css,
			flags:  flags,
			env:    env,
		})
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d file(s)", ErrConversionFail, failed, len(results))
	}
	return nil
}

// report prints results and a fence hint when a file had malformed fences.
func report(results []ConversionResult, flags *cliFlags, cfg *config.Config, env *Environment) int {
	failed := printResults(results, flags.common.quiet, flags.common.verbose, env)
	for _, r := range results {
		if len(r.Warnings) > 0 {
			fmt.Fprintln(env.Stderr, strings.TrimPrefix(hints.ForMalformedFence(cfg.Fences.Doc), "\n"))
			break
		}
	}
	return failed
}

// loadConfig loads the named config, or the defaults when name is empty.
func loadConfig(name string) (*config.Config, error) {
	if name == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. Flags set on the command line
// override config values.
func mergeFlags(flags *cliFlags, cfg *config.Config) {
	set := func(name string) bool { return flags.changed[name] }

	if flags.output.dir != "" {
		cfg.Output.Dir = flags.output.dir
	}
	if set("debounce") {
		cfg.Watch.Debounce = flags.watch.debounce
	}

	if flags.style.style != "" {
		cfg.Style.Name = flags.style.style
	}
	if flags.style.css != "" {
		cfg.Style.CSS = flags.style.css
	}
	if flags.style.assetPath != "" {
		cfg.Assets.BasePath = flags.style.assetPath
	}

	if flags.code.noHighlight {
		cfg.Code.Highlight = false
	}
	if flags.code.collapse {
		cfg.Code.Collapsible = true
	}
	if flags.code.theme != "" {
		cfg.Code.Theme = flags.code.theme
	}

	if set("toc-title") {
		cfg.TOC.Title = flags.toc.title
	}
	if set("toc-depth") {
		cfg.TOC.MaxDepth = flags.toc.depth
	}
	if flags.toc.backLinks {
		cfg.TOC.BackLinks = true
	}

	if flags.allowHTML {
		cfg.Markdown.AllowHTML = true
	}
}

// converterOptions maps the configuration onto converter options.
func converterOptions(cfg *config.Config, noStyle bool) []litdoc.Option {
	style := cfg.Style.Name
	if noStyle {
		style = ""
	}
	return []litdoc.Option{
		litdoc.WithStyle(style),
		litdoc.WithAssetPath(cfg.Assets.BasePath),
		litdoc.WithFences(cfg.Fences.Doc, cfg.Fences.Escape),
		litdoc.WithHighlighting(cfg.Code.Highlight),
		litdoc.WithTheme(cfg.Code.Theme),
		litdoc.WithCollapsibleCode(cfg.Code.Collapsible),
		litdoc.WithTOCTitle(cfg.TOC.Title),
		litdoc.WithTOCMaxDepth(cfg.TOC.MaxDepth),
		litdoc.WithTOCBackLinks(cfg.TOC.BackLinks),
		litdoc.WithAllowHTML(cfg.Markdown.AllowHTML),
	}
}

// resolveInputs returns the positional inputs, or input.defaultDir from config.
func resolveInputs(args []string, cfg *config.Config) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if cfg.Input.DefaultDir != "" {
		return []string{cfg.Input.DefaultDir}, nil
	}
	return nil, fmt.Errorf("%w%s", ErrNoInput, hints.ForNoInputs(nil))
}

// readExtraCSS reads the extra stylesheet appended after the style.
func readExtraCSS(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	content, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadCSS, err)
	}
	return string(content), nil
}

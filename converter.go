package litdoc

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-litdoc/internal/assets"
	"github.com/alnah/go-litdoc/internal/fileutil"
	"github.com/alnah/go-litdoc/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.DocRenderer  = (*pipeline.GoldmarkRenderer)(nil)
	_ pipeline.CodeRenderer = (*pipeline.ChromaCodeRenderer)(nil)
	_ pipeline.CodeRenderer = pipeline.PlainCodeRenderer{}
	_ assets.StyleLoader    = (*assets.AssetResolver)(nil)
)

// Converter runs the source-to-HTML pipeline.
// Create with NewConverter and call Convert for each file.
type Converter struct {
	cfg       converterConfig
	loader    assets.StyleLoader
	renderers pipeline.Renderers
	css       string // resolved style followed by highlight classes
}

// NewConverter creates a Converter. It fails when an option is out of range
// or the style cannot be resolved.
func NewConverter(opts ...Option) (*Converter, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	resolver, err := assets.NewAssetResolver(cfg.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}

	c := &Converter{cfg: cfg, loader: resolver}

	style, err := c.resolveStyle()
	if err != nil {
		return nil, err
	}

	chroma := pipeline.NewChromaCodeRenderer(cfg.theme)
	highlightCSS, err := chroma.CSS()
	if err != nil {
		return nil, err
	}

	var code pipeline.CodeRenderer = pipeline.PlainCodeRenderer{}
	if cfg.highlight {
		code = chroma
	}
	doc := pipeline.NewGoldmarkRenderer(pipeline.DocOptions{
		AllowHTML: cfg.allowHTML,
		Theme:     cfg.theme,
	})
	c.renderers = pipeline.NewRenderers(doc, code, pipeline.CodeOptions{
		Collapsible: cfg.collapsible,
	})

	// Highlight rules only make sense on top of a stylesheet.
	if style != "" {
		c.css = style + "\n" + highlightCSS
	}
	return c, nil
}

// Convert runs the full pipeline on one source file.
// The context is checked between stages. Internal panics are returned as
// errors instead of crashing the caller.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := validateInput(input); err != nil {
		return nil, err
	}

	var (
		segs  []pipeline.Segment
		diags []pipeline.Diagnostic
		lang  string
	)
	if IsMarkdownFile(input.Filename) {
		segs = pipeline.SegmentMarkdown(input.Source)
	} else {
		segs, diags = pipeline.SplitSegments(input.Source, c.cfg.fences)
		lang = pipeline.LanguageFor(input.Filename)
	}

	frags, err := c.renderers.Render(segs, lang)
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", input.Filename, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	frags, index, err := pipeline.IndexHeadings(frags)
	if err != nil {
		return nil, fmt.Errorf("indexing headings: %w", err)
	}

	frags, tocs, err := pipeline.SubstituteTOC(frags, index, c.cfg.toc)
	if err != nil {
		return nil, fmt.Errorf("building table of contents: %w", err)
	}
	if tocs > 0 && c.cfg.toc.BackLinks {
		frags, err = pipeline.AddBackLinks(frags)
		if err != nil {
			return nil, fmt.Errorf("adding back links: %w", err)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	frags, err = pipeline.CrossReference(frags, index)
	if err != nil {
		return nil, fmt.Errorf("cross-referencing: %w", err)
	}

	frags, err = pipeline.RewriteRelativePaths(frags, input.SourceDir, input.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("rewriting relative paths: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// User CSS last so it can override the style.
	css := c.css
	if input.CSS != "" {
		css = strings.TrimSpace(css + "\n" + input.CSS)
	}

	doc, err := pipeline.Assemble(frags, pipeline.AssembleOptions{
		Title: filepath.Base(input.Filename),
		CSS:   css,
	})
	if err != nil {
		return nil, fmt.Errorf("assembling document: %w", err)
	}

	return &Result{
		HTML:     []byte(doc),
		Headings: toHeadings(index),
		Segments: len(segs),
		TOCs:     tocs,
		Warnings: toWarnings(diags),
	}, nil
}

// CSS returns the stylesheet inlined in every document, before Input.CSS.
func (c *Converter) CSS() string {
	return c.css
}

// resolveStyle turns the style setting (name, path, or CSS content) into CSS.
func (c *Converter) resolveStyle() (string, error) {
	input := c.cfg.style
	if input == "" {
		return "", nil
	}

	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return "", fmt.Errorf("loading style file %q: %w", input, err)
		}
		return string(content), nil
	}

	if fileutil.IsCSS(input) {
		return input, nil
	}

	css, err := c.loader.LoadStyle(input)
	if err != nil {
		if errors.Is(err, assets.ErrStyleNotFound) {
			if r, ok := c.loader.(*assets.AssetResolver); ok && r.HasCustomLoader() {
				return "", fmt.Errorf("%w: %q (searched %s)", ErrStyleNotFound, input, c.cfg.assetPath)
			}
			return "", fmt.Errorf("%w: %q", ErrStyleNotFound, input)
		}
		return "", fmt.Errorf("loading style %q: %w", input, err)
	}
	return css, nil
}

// StyleNames lists the built-in style names.
func StyleNames() []string {
	return assets.NewEmbeddedLoader().Names()
}

// validateInput is the trust boundary for callers building Input manually.
// An empty Source is valid and yields a minimal document.
func validateInput(input Input) error {
	if strings.TrimSpace(input.Filename) == "" {
		return ErrEmptyFilename
	}
	return nil
}

// IsMarkdownFile reports whether name has a markdown extension. Markdown
// files are rendered as a single documentation segment.
func IsMarkdownFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

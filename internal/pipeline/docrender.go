package pipeline

import (
	"bytes"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/alnah/go-litdoc/internal/diagram"
)

// DefaultTheme is the chroma style used for highlighted code.
const DefaultTheme = "github"

// DocRenderer renders documentation text to an HTML fragment.
type DocRenderer interface {
	RenderDoc(text string) (string, error)
}

// DocOptions configures a GoldmarkRenderer.
type DocOptions struct {
	// AllowHTML passes raw HTML in documentation through unescaped.
	AllowHTML bool
	// Theme is the chroma style name for fenced code in documentation.
	Theme string
}

// GoldmarkRenderer renders markdown with goldmark, GFM, chroma-highlighted
// fenced code and inline SVG diagrams.
type GoldmarkRenderer struct {
	md goldmark.Markdown
}

// NewGoldmarkRenderer creates a renderer. Heading ids are left unset: the
// heading indexer assigns them over the whole document.
func NewGoldmarkRenderer(opts DocOptions) *GoldmarkRenderer {
	theme := opts.Theme
	if theme == "" {
		theme = DefaultTheme
	}

	rendererOpts := []renderer.Option{
		html.WithHardWraps(),
		html.WithXHTML(),
	}
	if opts.AllowHTML {
		rendererOpts = append(rendererOpts, html.WithUnsafe())
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			diagram.Extension,
			highlighting.NewHighlighting(
				highlighting.WithStyle(theme),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithRendererOptions(rendererOpts...),
	)

	return &GoldmarkRenderer{md: md}
}

// RenderDoc converts one documentation segment to HTML.
func (r *GoldmarkRenderer) RenderDoc(text string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(PrepareMarkdown(text)), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}
	return ConvertMarkPlaceholders(buf.String()), nil
}

// Compile-time interface check.
var _ DocRenderer = (*GoldmarkRenderer)(nil)

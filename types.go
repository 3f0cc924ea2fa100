package litdoc

import (
	"fmt"
	"strings"

	"github.com/alnah/go-litdoc/internal/pipeline"
)

// Input contains the parameters of one conversion.
type Input struct {
	Source    string // File content; may be empty
	Filename  string // Source file name (required), used for the title and language
	CSS       string // Extra CSS appended after the converter style (optional)
	SourceDir string // Directory of the source, for relative links (optional)
	OutputDir string // Directory of the output, for relative links (optional)
}

// Heading is one indexed heading of the document.
type Heading struct {
	Text   string
	Anchor string
	Level  int
}

// Result holds the output of a conversion.
type Result struct {
	HTML     []byte
	Headings []Heading
	Segments int      // Number of source segments
	TOCs     int      // Number of [TOC] markers replaced
	Warnings []string // Non-fatal diagnostics such as malformed fences
}

// Option configures a Converter.
type Option func(*converterConfig)

// converterConfig holds the settings applied by options.
type converterConfig struct {
	style       string
	assetPath   string
	fences      pipeline.Fences
	highlight   bool
	collapsible bool
	theme       string
	toc         pipeline.TOCOptions
	allowHTML   bool
}

// DefaultStyle is the embedded stylesheet used when WithStyle is not given.
const DefaultStyle = "default"

func defaultConfig() converterConfig {
	return converterConfig{
		style:     DefaultStyle,
		fences:    pipeline.DefaultFences(),
		highlight: true,
		theme:     pipeline.DefaultTheme,
	}
}

// WithStyle sets the stylesheet: a built-in style name, a path to a CSS file,
// or CSS content. An empty value disables styling.
func WithStyle(nameOrPathOrCSS string) Option {
	return func(c *converterConfig) {
		c.style = strings.TrimSpace(nameOrPathOrCSS)
	}
}

// WithAssetPath adds a directory searched for styles before the built-in
// ones. Style names resolve to <path>/styles/<name>.css.
func WithAssetPath(path string) Option {
	return func(c *converterConfig) {
		c.assetPath = path
	}
}

// WithFences sets the documentation fence and the escape marker. An empty
// escape marker disables escaped blocks.
func WithFences(doc, escape string) Option {
	return func(c *converterConfig) {
		c.fences = pipeline.Fences{Doc: doc, Escape: escape}
	}
}

// WithHighlighting toggles syntax highlighting of code segments.
func WithHighlighting(enabled bool) Option {
	return func(c *converterConfig) {
		c.highlight = enabled
	}
}

// WithTheme sets the chroma style used for highlighting.
func WithTheme(name string) Option {
	return func(c *converterConfig) {
		c.theme = name
	}
}

// WithCollapsibleCode wraps code segments in a collapsible "View code" block.
func WithCollapsibleCode(enabled bool) Option {
	return func(c *converterConfig) {
		c.collapsible = enabled
	}
}

// WithTOCTitle sets the heading shown above each table of contents.
func WithTOCTitle(title string) Option {
	return func(c *converterConfig) {
		c.toc.Title = title
	}
}

// WithTOCMaxDepth limits the heading levels listed in the table of contents
// (1-6, 0 = all).
func WithTOCMaxDepth(depth int) Option {
	return func(c *converterConfig) {
		c.toc.MaxDepth = depth
	}
}

// WithTOCBackLinks adds a link back to the table of contents after every
// heading but the first. It has no effect on documents without [TOC].
func WithTOCBackLinks(enabled bool) Option {
	return func(c *converterConfig) {
		c.toc.BackLinks = enabled
	}
}

// WithAllowHTML passes raw HTML in documentation through unescaped.
func WithAllowHTML(enabled bool) Option {
	return func(c *converterConfig) {
		c.allowHTML = enabled
	}
}

func (c converterConfig) validate() error {
	if err := c.fences.Validate(); err != nil {
		return err
	}
	if err := c.toc.Validate(); err != nil {
		return err
	}
	return nil
}

func toHeadings(index pipeline.HeadingIndex) []Heading {
	entries := index.Entries()
	out := make([]Heading, len(entries))
	for i, e := range entries {
		out[i] = Heading{Text: e.Text, Anchor: e.Anchor, Level: e.Level}
	}
	return out
}

func toWarnings(diags []pipeline.Diagnostic) []string {
	if len(diags) == 0 {
		return nil
	}
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = fmt.Sprint(d)
	}
	return out
}

package pipeline

import (
	"bytes"
	"fmt"
	"html"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultCodeSummary is the label of collapsible code blocks.
const DefaultCodeSummary = "View code"

// CodeRenderer renders source code to an HTML fragment.
type CodeRenderer interface {
	RenderCode(text, lang string) (string, error)
}

// PlainCodeRenderer escapes code into a <pre><code> block. Unescaping the
// <code> content yields the input byte for byte.
type PlainCodeRenderer struct{}

// RenderCode implements CodeRenderer.
func (PlainCodeRenderer) RenderCode(text, lang string) (string, error) {
	var b strings.Builder
	b.Grow(len(text) + 64)
	b.WriteString(`<pre class="code"><code`)
	if lang != "" {
		b.WriteString(` class="language-`)
		b.WriteString(html.EscapeString(lang))
		b.WriteString(`"`)
	}
	b.WriteString(">")
	b.WriteString(html.EscapeString(text))
	b.WriteString("</code></pre>")
	return b.String(), nil
}

// ChromaCodeRenderer highlights code with chroma using CSS classes.
type ChromaCodeRenderer struct {
	formatter *chromahtml.Formatter
	style     *chroma.Style
}

// NewChromaCodeRenderer creates a renderer for the named chroma style.
// Unknown styles fall back to chroma's default.
func NewChromaCodeRenderer(theme string) *ChromaCodeRenderer {
	if theme == "" {
		theme = DefaultTheme
	}
	return &ChromaCodeRenderer{
		formatter: chromahtml.New(chromahtml.WithClasses(true)),
		style:     styles.Get(theme),
	}
}

// tokeniseOptions keeps carriage returns in token text. chroma's defaults
// fold CRLF into LF, which would change CRLF sources.
var tokeniseOptions = &chroma.TokeniseOptions{State: "root"}

// RenderCode implements CodeRenderer. An unknown language is guessed from
// the content, then rendered without highlighting.
func (r *ChromaCodeRenderer) RenderCode(text, lang string) (string, error) {
	var lexer chroma.Lexer
	if lang != "" {
		lexer = lexers.Get(lang)
	}
	if lexer == nil {
		lexer = lexers.Analyse(text)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}

	it, err := chroma.Coalesce(lexer).Tokenise(tokeniseOptions, text)
	if err != nil {
		return "", fmt.Errorf("%w: tokenising %s code: %v", ErrRender, lang, err)
	}

	var buf bytes.Buffer
	if err := r.formatter.Format(&buf, r.style, it); err != nil {
		return "", fmt.Errorf("%w: formatting %s code: %v", ErrRender, lang, err)
	}
	return buf.String(), nil
}

// CSS returns the stylesheet matching the classes RenderCode emits.
func (r *ChromaCodeRenderer) CSS() (string, error) {
	var buf bytes.Buffer
	if err := r.formatter.WriteCSS(&buf, r.style); err != nil {
		return "", fmt.Errorf("%w: writing highlight styles: %v", ErrRender, err)
	}
	return buf.String(), nil
}

// LanguageFor returns the language hint for a source file, or "" when no
// lexer claims its name.
func LanguageFor(filename string) string {
	lexer := lexers.Match(filepath.Base(filename))
	if lexer == nil {
		return ""
	}
	cfg := lexer.Config()
	if len(cfg.Aliases) > 0 {
		return cfg.Aliases[0]
	}
	return strings.ToLower(cfg.Name)
}

func renderCodeSegment(r CodeRenderer, text, lang string, opts CodeOptions) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	out, err := r.RenderCode(text, lang)
	if err != nil {
		return "", err
	}
	if !opts.Collapsible {
		return out, nil
	}

	summary := opts.Summary
	if summary == "" {
		summary = DefaultCodeSummary
	}
	return `<details class="code-block"><summary>` + html.EscapeString(summary) +
		"</summary>" + out + "</details>", nil
}

// Compile-time interface checks.
var (
	_ CodeRenderer = PlainCodeRenderer{}
	_ CodeRenderer = (*ChromaCodeRenderer)(nil)
)

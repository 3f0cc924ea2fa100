package litdoc

// Notes:
// - Tests run the real pipeline end to end; outputs are checked with
//   substring assertions because the full document includes the embedded
//   stylesheet.
// - Style resolution tests write CSS files under t.TempDir.

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestConverter(t *testing.T, opts ...Option) *Converter {
	t.Helper()

	conv, err := NewConverter(opts...)
	if err != nil {
		t.Fatalf("NewConverter() unexpected error: %v", err)
	}
	return conv
}

func TestNewConverter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{name: "defaults"},
		{name: "plain style", opts: []Option{WithStyle("plain")}},
		{name: "inline css", opts: []Option{WithStyle("body { color: red; }")}},
		{name: "no style", opts: []Option{WithStyle("")}},
		{name: "unknown style", opts: []Option{WithStyle("nope")}, wantErr: ErrStyleNotFound},
		{name: "toc depth too large", opts: []Option{WithTOCMaxDepth(7)}, wantErr: ErrInvalidTOCDepth},
		{name: "empty doc fence", opts: []Option{WithFences("", "'''")}, wantErr: ErrInvalidFence},
		{name: "missing asset path", opts: []Option{WithAssetPath("/nonexistent/litdoc")}, wantErr: ErrInvalidAssetPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewConverter(tt.opts...)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("NewConverter() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewConverter() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewConverter_StyleFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "custom.css")
	if err := os.WriteFile(path, []byte("main { max-width: 40em; }"), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	conv := newTestConverter(t, WithStyle(path))
	if !strings.HasPrefix(conv.CSS(), "main { max-width: 40em; }") {
		t.Errorf("CSS() should start with the file content, got %.60q", conv.CSS())
	}
}

func TestNewConverter_AssetPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "styles"), 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "styles", "house.css"), []byte(".house{}"), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	conv := newTestConverter(t, WithAssetPath(dir), WithStyle("house"))
	if !strings.HasPrefix(conv.CSS(), ".house{}") {
		t.Errorf("CSS() = %.60q, want custom style", conv.CSS())
	}

	// Built-in names still resolve through the fallback.
	newTestConverter(t, WithAssetPath(dir), WithStyle("plain"))
}

func TestConvert_Validation(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t)
	_, err := conv.Convert(context.Background(), Input{Source: "x = 1\n"})
	if !errors.Is(err, ErrEmptyFilename) {
		t.Errorf("Convert() error = %v, want ErrEmptyFilename", err)
	}
}

func TestConvert_ContextCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	conv := newTestConverter(t)
	_, err := conv.Convert(ctx, Input{Source: "\"\"\"\n# A\n\"\"\"\n", Filename: "a.py"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Convert() error = %v, want context.Canceled", err)
	}
}

func TestConvert_HeadingsAndCrossReferences(t *testing.T) {
	t.Parallel()

	src := "\"\"\"# Title\nSee Title below.\n\"\"\"\ncode_here()\n\"\"\"\n## Title\nmore text\n\"\"\"\n"

	conv := newTestConverter(t, WithStyle(""), WithHighlighting(false))
	res, err := conv.Convert(context.Background(), Input{Source: src, Filename: "example.py"})
	if err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}

	if res.Segments != 3 {
		t.Errorf("Segments = %d, want 3", res.Segments)
	}
	want := []Heading{
		{Text: "Title", Anchor: "title", Level: 1},
		{Text: "Title", Anchor: "title-2", Level: 2},
	}
	if len(res.Headings) != len(want) {
		t.Fatalf("Headings = %+v, want %+v", res.Headings, want)
	}
	for i := range want {
		if res.Headings[i] != want[i] {
			t.Errorf("Headings[%d] = %+v, want %+v", i, res.Headings[i], want[i])
		}
	}

	html := string(res.HTML)
	for _, s := range []string{
		`<h1 id="title">Title</h1>`,
		`<h2 id="title-2">Title</h2>`,
		`See <a class="xref" href="#title-2">Title</a> below.`,
		"code_here()",
		"<title>example.py</title>",
	} {
		if !strings.Contains(html, s) {
			t.Errorf("HTML missing %q\n%s", s, html)
		}
	}
	if res.TOCs != 0 || strings.Contains(html, `class="toc"`) {
		t.Error("no [TOC] marker, no table of contents expected")
	}

	// Segments keep source order: the code sits between the two headings.
	first := strings.Index(html, `<h1 id="title">`)
	code := strings.Index(html, "code_here()")
	second := strings.Index(html, `<h2 id="title-2">`)
	if first < 0 || code < 0 || second < 0 || !(first < code && code < second) {
		t.Errorf("order h1=%d code=%d h2=%d, want h1 < code < h2", first, code, second)
	}
}

func TestConvert_TOC(t *testing.T) {
	t.Parallel()

	src := "\"\"\"\n[TOC]\n\n# Intro\n\n## Setup\n\n# Details\n\"\"\"\n"

	conv := newTestConverter(t, WithStyle(""), WithTOCTitle("Contents"), WithTOCBackLinks(true))
	res, err := conv.Convert(context.Background(), Input{Source: src, Filename: "toc.py"})
	if err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}

	if res.TOCs != 1 {
		t.Errorf("TOCs = %d, want 1", res.TOCs)
	}
	html := string(res.HTML)
	nested := `<li><a href="#intro">Intro</a><ul><li><a href="#setup">Setup</a></li></ul></li><li><a href="#details">Details</a></li>`
	if !strings.Contains(html, nested) {
		t.Errorf("TOC nesting wrong:\n%s", html)
	}
	if !strings.Contains(html, `<p class="toc-title">Contents</p>`) {
		t.Errorf("TOC title missing:\n%s", html)
	}
	if got := strings.Count(html, `class="toc-backlink"`); got != 2 {
		t.Errorf("back links = %d, want 2 (every heading but the first)", got)
	}
}

func TestConvert_EmptySource(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t, WithStyle(""))
	res, err := conv.Convert(context.Background(), Input{Filename: "empty.py"})
	if err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}

	if res.Segments != 1 {
		t.Errorf("Segments = %d, want 1", res.Segments)
	}
	if len(res.Headings) != 0 || res.TOCs != 0 || len(res.Warnings) != 0 {
		t.Errorf("Result = %+v, want no headings, TOCs or warnings", res)
	}
	html := string(res.HTML)
	if !strings.HasPrefix(html, "<!DOCTYPE html>") || !strings.Contains(html, `<main class="litdoc">`) {
		t.Errorf("not a minimal document:\n%s", html)
	}
	if strings.Contains(html, "<style>") {
		t.Error("style disabled, no <style> expected")
	}
}

func TestConvert_Markdown(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t, WithStyle(""))
	res, err := conv.Convert(context.Background(), Input{
		Source:   "# Guide\n\n\"\"\"\nnot a fence\n",
		Filename: "README.md",
	})
	if err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}

	if res.Segments != 1 || len(res.Warnings) != 0 {
		t.Errorf("markdown should be one DOC segment, got %d segments, warnings %v", res.Segments, res.Warnings)
	}
	if !strings.Contains(string(res.HTML), `<h1 id="guide">Guide</h1>`) {
		t.Errorf("HTML = %s", res.HTML)
	}
}

func TestConvert_MalformedFenceWarning(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t, WithStyle(""))
	res, err := conv.Convert(context.Background(), Input{
		Source:   "x = 1\n\"\"\"\n# Never closed\n",
		Filename: "open.py",
	})
	if err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}

	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "line 2") {
		t.Errorf("Warnings = %v, want one malformed fence at line 2", res.Warnings)
	}
	if len(res.Headings) != 1 {
		t.Errorf("unterminated DOC content should still render, headings = %+v", res.Headings)
	}
}

func TestConvert_CodeOptions(t *testing.T) {
	t.Parallel()

	src := "def f():\n    return \"<b>\"\n"

	tests := []struct {
		name     string
		opts     []Option
		contains []string
		excludes []string
	}{
		{
			name:     "plain code",
			opts:     []Option{WithHighlighting(false)},
			contains: []string{`<pre class="code"><code class="language-python">`, "&lt;b&gt;"},
		},
		{
			name:     "highlighted code",
			opts:     []Option{WithHighlighting(true)},
			contains: []string{`class="chroma"`},
			excludes: []string{`<pre class="code">`},
		},
		{
			name:     "collapsible code",
			opts:     []Option{WithCollapsibleCode(true)},
			contains: []string{`<details class="code-block"><summary>View code</summary>`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv := newTestConverter(t, append([]Option{WithStyle("")}, tt.opts...)...)
			res, err := conv.Convert(context.Background(), Input{Source: src, Filename: "f.py"})
			if err != nil {
				t.Fatalf("Convert() unexpected error: %v", err)
			}
			html := string(res.HTML)
			for _, s := range tt.contains {
				if !strings.Contains(html, s) {
					t.Errorf("HTML missing %q\n%s", s, html)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(html, s) {
					t.Errorf("HTML should not contain %q", s)
				}
			}
		})
	}
}

func TestConvert_CSSOrder(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t, WithStyle("main{color:red}"))
	res, err := conv.Convert(context.Background(), Input{
		Filename: "a.py",
		CSS:      "main{color:blue}",
	})
	if err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}

	html := string(res.HTML)
	red := strings.Index(html, "main{color:red}")
	blue := strings.Index(html, "main{color:blue}")
	if red < 0 || blue < 0 || red > blue {
		t.Errorf("user CSS must follow the style: red=%d blue=%d", red, blue)
	}
}

func TestConvert_RelativePaths(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t, WithStyle(""))
	res, err := conv.Convert(context.Background(), Input{
		Source:    "# Pic\n\n![logo](img/logo.png)\n",
		Filename:  "guide.md",
		SourceDir: filepath.FromSlash("/proj/src"),
		OutputDir: filepath.FromSlash("/proj/docs"),
	})
	if err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}
	if !strings.Contains(string(res.HTML), `src="../src/img/logo.png"`) {
		t.Errorf("image path not rebased:\n%s", res.HTML)
	}
}

func TestIsMarkdownFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want bool
	}{
		{"README.md", true},
		{"notes.MARKDOWN", true},
		{"main.py", false},
		{"md", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := IsMarkdownFile(tt.name); got != tt.want {
				t.Errorf("IsMarkdownFile(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestStyleNames(t *testing.T) {
	t.Parallel()

	names := StyleNames()
	found := false
	for _, n := range names {
		if n == DefaultStyle {
			found = true
		}
	}
	if !found {
		t.Errorf("StyleNames() = %v, missing %q", names, DefaultStyle)
	}
}

package diagram

// Notes:
// - Parse is tested for connectors, brackets, comments and each syntax error.
// - RenderSVG is checked structurally (element counts, escaping, determinism);
//   exact coordinates are not asserted beyond the canvas size.

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want Diagram
	}{
		{
			name: "arrow chain",
			src:  "A -> B -> C",
			want: Diagram{Chains: []Chain{{Nodes: []string{"A", "B", "C"}, Links: []Connector{Arrow, Arrow}}}},
		},
		{
			name: "plain line",
			src:  "A -- B",
			want: Diagram{Chains: []Chain{{Nodes: []string{"A", "B"}, Links: []Connector{Line}}}},
		},
		{
			name: "bracketed labels keep connector characters",
			src:  "[read -> parse] -> [emit]",
			want: Diagram{Chains: []Chain{{Nodes: []string{"read -> parse", "emit"}, Links: []Connector{Arrow}}}},
		},
		{
			name: "single node",
			src:  "Lonely box",
			want: Diagram{Chains: []Chain{{Nodes: []string{"Lonely box"}}}},
		},
		{
			name: "comments and blank lines skipped",
			src:  "# header\n\nA -> B\n  # indented comment\nC -- D\n",
			want: Diagram{Chains: []Chain{
				{Nodes: []string{"A", "B"}, Links: []Connector{Arrow}},
				{Nodes: []string{"C", "D"}, Links: []Connector{Line}},
			}},
		},
		{
			name: "hyphenated label",
			src:  "pre-pass -> render",
			want: Diagram{Chains: []Chain{{Nodes: []string{"pre-pass", "render"}, Links: []Connector{Arrow}}}},
		},
		{
			name: "empty source",
			src:  "",
			want: Diagram{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Parse(tt.src)
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.src, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.src, got, tt.want)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		src      string
		wantLine string
	}{
		{name: "dangling arrow", src: "A ->", wantLine: "line 1"},
		{name: "leading arrow", src: "-> B", wantLine: "line 1"},
		{name: "empty middle", src: "A -> -> B", wantLine: "line 1"},
		{name: "unclosed bracket", src: "A -> [B", wantLine: "line 1"},
		{name: "stray bracket", src: "A] -> B", wantLine: "line 1"},
		{name: "error on later line", src: "A -> B\n\nC --", wantLine: "line 3"},
		{name: "empty brackets", src: "[] -> B", wantLine: "line 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse(tt.src)
			if !errors.Is(err, ErrSyntax) {
				t.Fatalf("Parse(%q) error = %v, want ErrSyntax", tt.src, err)
			}
			if !strings.Contains(err.Error(), tt.wantLine) {
				t.Errorf("Parse(%q) error = %q, want it to mention %q", tt.src, err, tt.wantLine)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	t.Parallel()

	d, err := Parse("A -> B -- C\n[x < y & z]")
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	svg := RenderSVG(d)

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg"`) || !strings.HasSuffix(svg, "</svg>") {
		t.Fatalf("RenderSVG() is not a standalone svg element: %s", svg)
	}
	if got := strings.Count(svg, "<rect "); got != 4 {
		t.Errorf("rect count = %d, want 4", got)
	}
	if got := strings.Count(svg, "<line "); got != 2 {
		t.Errorf("line count = %d, want 2", got)
	}
	if got := strings.Count(svg, "<polygon "); got != 1 {
		t.Errorf("arrowhead count = %d, want 1", got)
	}
	if !strings.Contains(svg, ">x &lt; y &amp; z</text>") {
		t.Errorf("label not escaped: %s", svg)
	}
	if strings.Contains(svg, " id=") {
		t.Error("svg must not declare ids, several diagrams can share a page")
	}
	if again := RenderSVG(d); again != svg {
		t.Error("RenderSVG() is not deterministic")
	}
}

func TestRenderSVG_Empty(t *testing.T) {
	t.Parallel()

	svg := RenderSVG(Diagram{})
	want := `<svg xmlns="http://www.w3.org/2000/svg" class="diagram" role="img" width="16" height="16" viewBox="0 0 16 16"></svg>`
	if svg != want {
		t.Errorf("RenderSVG(empty) = %s, want %s", svg, want)
	}
}

func TestBoxWidth(t *testing.T) {
	t.Parallel()

	if got := boxWidth("A"); got != minBox {
		t.Errorf("boxWidth(short) = %d, want minimum %d", got, minBox)
	}
	long := "a fairly long label"
	if got, want := boxWidth(long), len(long)*charWidth+2*boxPadding; got != want {
		t.Errorf("boxWidth(long) = %d, want %d", got, want)
	}
	if boxWidth("ééé") != boxWidth("eee") {
		t.Error("boxWidth should count runes, not bytes")
	}
}

package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrHTMLParse indicates a rendered fragment could not be parsed back.
var ErrHTMLParse = errors.New("HTML parsing failed")

// parseFragment parses an HTML fragment in body context and hangs the
// resulting nodes under a detached container for uniform traversal.
func parseFragment(content string) (*html.Node, error) {
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHTMLParse, err)
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, nil
}

// renderFragment renders the children of a container built by parseFragment.
func renderFragment(container *html.Node) (string, error) {
	var buf strings.Builder
	for c := container.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", fmt.Errorf("%w: %v", ErrHTMLParse, err)
		}
	}
	return buf.String(), nil
}

// transformDocFragments applies fn to a parsed copy of every DOC fragment
// and returns new fragments. CODE fragments, and DOC fragments rejected by
// want, are copied unchanged. want may be nil.
func transformDocFragments(frags []Fragment, want func(Fragment) bool, fn func(Fragment, *html.Node) error) ([]Fragment, error) {
	out := make([]Fragment, len(frags))
	copy(out, frags)

	for i, f := range out {
		if f.Kind != KindDoc || (want != nil && !want(f)) {
			continue
		}
		root, err := parseFragment(f.HTML)
		if err != nil {
			return nil, fmt.Errorf("fragment %d: %w", f.Index, err)
		}
		if err := fn(f, root); err != nil {
			return nil, fmt.Errorf("fragment %d: %w", f.Index, err)
		}
		rendered, err := renderFragment(root)
		if err != nil {
			return nil, fmt.Errorf("fragment %d: %w", f.Index, err)
		}
		out[i].HTML = rendered
	}
	return out, nil
}

// walk visits n and its descendants in document order. Returning false from
// visit skips the children of that node.
func walk(n *html.Node, visit func(*html.Node) bool) {
	if !visit(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

// textContent concatenates the text of n and its descendants.
func textContent(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		return true
	})
	return b.String()
}

// normalizeSpace collapses whitespace runs to one space and trims the ends.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// headingLevel returns 1-6 for h1-h6 elements and 0 otherwise.
func headingLevel(n *html.Node) int {
	if n.Type != html.ElementNode || n.Namespace != "" {
		return 0
	}
	switch n.DataAtom {
	case atom.H1:
		return 1
	case atom.H2:
		return 2
	case atom.H3:
		return 3
	case atom.H4:
		return 4
	case atom.H5:
		return 5
	case atom.H6:
		return 6
	default:
		return 0
	}
}

// isVerbatim reports elements whose text is never rewritten.
func isVerbatim(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch n.DataAtom {
	case atom.Pre, atom.Code, atom.Kbd, atom.Samp, atom.Script, atom.Style, atom.Textarea, atom.Svg:
		return true
	}
	return n.Namespace == "svg" || n.Namespace == "math"
}

func getAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key && a.Namespace == "" {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key && a.Namespace == "" {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func newText(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func newElement(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

// insertAfter places n right after ref under ref's parent.
func insertAfter(ref, n *html.Node) {
	if ref.NextSibling != nil {
		ref.Parent.InsertBefore(n, ref.NextSibling)
		return
	}
	ref.Parent.AppendChild(n)
}

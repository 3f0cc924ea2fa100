package pipeline

import (
	"errors"
	"fmt"
	"html"
	"strings"

	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// TOCMarker is replaced by the table of contents wherever it appears in
// documentation prose.
const TOCMarker = "[TOC]"

// MaxHeadingLevel is the deepest heading level HTML defines.
const MaxHeadingLevel = 6

// ErrInvalidTOCDepth indicates a depth outside 0-6.
var ErrInvalidTOCDepth = errors.New("invalid TOC depth")

// TOCOptions configures the table of contents.
type TOCOptions struct {
	// Title is shown above the list when non-empty.
	Title string
	// MaxDepth limits the listed heading levels. 0 lists every level.
	MaxDepth int
	// BackLinks adds a link back to the table of contents after every
	// heading but the first.
	BackLinks bool
}

// Validate checks the depth bounds.
func (o TOCOptions) Validate() error {
	if o.MaxDepth < 0 || o.MaxDepth > MaxHeadingLevel {
		return fmt.Errorf("%w: %d (must be 0-%d)", ErrInvalidTOCDepth, o.MaxDepth, MaxHeadingLevel)
	}
	return nil
}

type tocNode struct {
	entry    HeadingEntry
	children []*tocNode
}

// buildTree nests each entry under the closest preceding entry of a smaller
// level. Skipped levels do not create empty intermediate items.
func buildTree(entries []HeadingEntry) []*tocNode {
	var roots, stack []*tocNode
	for _, e := range entries {
		n := &tocNode{entry: e}
		for len(stack) > 0 && stack[len(stack)-1].entry.Level >= e.Level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			roots = append(roots, n)
		} else {
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, n)
		}
		stack = append(stack, n)
	}
	return roots
}

// BuildTOC renders the index as a nested list of links. An empty index
// yields an empty list.
func BuildTOC(index HeadingIndex, opts TOCOptions) string {
	depth := opts.MaxDepth
	if depth <= 0 || depth > MaxHeadingLevel {
		depth = MaxHeadingLevel
	}
	entries := make([]HeadingEntry, 0, len(index.entries))
	for _, e := range index.entries {
		if e.Level <= depth {
			entries = append(entries, e)
		}
	}

	var b strings.Builder
	b.WriteString(`<nav class="toc">`)
	if opts.Title != "" {
		b.WriteString(`<p class="toc-title">`)
		b.WriteString(html.EscapeString(opts.Title))
		b.WriteString(`</p>`)
	}
	writeTOCList(&b, buildTree(entries))
	b.WriteString(`</nav>`)
	return b.String()
}

func writeTOCList(b *strings.Builder, nodes []*tocNode) {
	b.WriteString("<ul>")
	for _, n := range nodes {
		b.WriteString(`<li><a href="#`)
		b.WriteString(html.EscapeString(n.entry.Anchor))
		b.WriteString(`">`)
		b.WriteString(html.EscapeString(n.entry.Text))
		b.WriteString("</a>")
		if len(n.children) > 0 {
			writeTOCList(b, n.children)
		}
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
}

// SubstituteTOC replaces every [TOC] marker in documentation prose with its
// own copy of the table of contents and returns the number of copies made.
// A paragraph holding nothing but the marker is replaced as a whole. The
// first copy carries the id TOCAnchor. Markers inside code are kept.
func SubstituteTOC(frags []Fragment, index HeadingIndex, opts TOCOptions) ([]Fragment, int, error) {
	if err := opts.Validate(); err != nil {
		return nil, 0, err
	}

	toc := BuildTOC(index, opts)
	count := 0
	nextTOC := func() ([]*xhtml.Node, error) {
		nodes, err := xhtml.ParseFragment(strings.NewReader(toc), &xhtml.Node{
			Type:     xhtml.ElementNode,
			DataAtom: atom.Body,
			Data:     "body",
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrHTMLParse, err)
		}
		if count == 0 && len(nodes) > 0 {
			setAttr(nodes[0], "id", TOCAnchor)
		}
		count++
		return nodes, nil
	}

	hasMarker := func(f Fragment) bool { return strings.Contains(f.HTML, TOCMarker) }
	out, err := transformDocFragments(frags, hasMarker, func(_ Fragment, root *xhtml.Node) error {
		var markers []*xhtml.Node
		walk(root, func(n *xhtml.Node) bool {
			if isVerbatim(n) || n.DataAtom == atom.A {
				return false
			}
			if n.Type == xhtml.TextNode && strings.Contains(n.Data, TOCMarker) {
				markers = append(markers, n)
			}
			return true
		})
		for _, m := range markers {
			if err := replaceMarker(m, nextTOC); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return out, count, nil
}

// replaceMarker swaps the first marker in text for a table of contents and
// recurses on whatever follows it. A marker inside a paragraph splits the
// paragraph, since <nav> cannot live in phrasing content.
func replaceMarker(text *xhtml.Node, nextTOC func() ([]*xhtml.Node, error)) error {
	i := strings.Index(text.Data, TOCMarker)
	if i < 0 {
		return nil
	}
	before, after := text.Data[:i], text.Data[i+len(TOCMarker):]
	nodes, err := nextTOC()
	if err != nil {
		return err
	}

	p := enclosingParagraph(text)
	if p == nil {
		// List items, cells and quotes accept flow content in place.
		parent := text.Parent
		if before != "" {
			parent.InsertBefore(newText(before), text)
		}
		for _, n := range nodes {
			parent.InsertBefore(n, text)
		}
		if after == "" {
			parent.RemoveChild(text)
			return nil
		}
		text.Data = after
		return replaceMarker(text, nextTOC)
	}

	rest, tail := splitParagraph(p, text, before, after)
	for _, n := range nodes {
		p.Parent.InsertBefore(n, rest)
	}
	pruneParagraph(p)
	if tail != nil && strings.Contains(tail.Data, TOCMarker) {
		return replaceMarker(tail, nextTOC)
	}
	pruneParagraph(rest)
	return nil
}

// enclosingParagraph returns the <p> holding text through inline elements
// only, or nil.
func enclosingParagraph(text *xhtml.Node) *xhtml.Node {
	for n := text.Parent; n != nil && n.Type == xhtml.ElementNode; n = n.Parent {
		if n.DataAtom == atom.P {
			return n
		}
		if !inlineElements[n.DataAtom] {
			return nil
		}
	}
	return nil
}

var inlineElements = map[atom.Atom]bool{
	atom.Abbr: true, atom.B: true, atom.Cite: true, atom.Del: true,
	atom.Em: true, atom.I: true, atom.Ins: true, atom.Mark: true,
	atom.Q: true, atom.S: true, atom.Small: true, atom.Span: true,
	atom.Strong: true, atom.Sub: true, atom.Sup: true, atom.U: true,
}

// splitParagraph cuts p at text: before stays in p, after and every later
// node move to a new paragraph inserted right after p. It returns the new
// paragraph and the text node holding after (nil when after is empty).
func splitParagraph(p, text *xhtml.Node, before, after string) (rest, tail *xhtml.Node) {
	var carry *xhtml.Node
	if after != "" {
		tail = newText(after)
		carry = tail
	}

	cur := text
	for {
		parent := cur.Parent
		var container *xhtml.Node
		if parent == p {
			rest = shallowClone(p)
			container = rest
		} else {
			container = shallowClone(parent)
		}
		if carry != nil {
			container.AppendChild(carry)
		}
		for sib := cur.NextSibling; sib != nil; {
			next := sib.NextSibling
			parent.RemoveChild(sib)
			container.AppendChild(sib)
			sib = next
		}
		if parent == p {
			break
		}
		carry = container
		cur = parent
	}

	if before == "" {
		text.Parent.RemoveChild(text)
	} else {
		text.Data = before
	}
	insertAfter(p, rest)
	return rest, tail
}

// shallowClone copies an element without its children or id.
func shallowClone(n *xhtml.Node) *xhtml.Node {
	c := &xhtml.Node{Type: n.Type, DataAtom: n.DataAtom, Data: n.Data, Namespace: n.Namespace}
	for _, a := range n.Attr {
		if a.Key != "id" {
			c.Attr = append(c.Attr, a)
		}
	}
	return c
}

// pruneParagraph trims blank edges left by a split and drops p when
// nothing remains.
func pruneParagraph(p *xhtml.Node) {
	for p.LastChild != nil && isBlankInline(p.LastChild) {
		p.RemoveChild(p.LastChild)
	}
	for p.FirstChild != nil && isBlankInline(p.FirstChild) {
		p.RemoveChild(p.FirstChild)
	}
	if p.FirstChild == nil && p.Parent != nil {
		p.Parent.RemoveChild(p)
	}
}

func isBlankInline(n *xhtml.Node) bool {
	switch n.Type {
	case xhtml.TextNode:
		return strings.TrimSpace(n.Data) == ""
	case xhtml.ElementNode:
		if n.DataAtom == atom.Br {
			return true
		}
		if !inlineElements[n.DataAtom] {
			return false
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if !isBlankInline(c) {
				return false
			}
		}
		return true
	}
	return false
}

// AddBackLinks inserts a link to the table of contents after every heading
// of the document except the first.
func AddBackLinks(frags []Fragment) ([]Fragment, error) {
	seen := 0
	return transformDocFragments(frags, nil, func(_ Fragment, root *xhtml.Node) error {
		var headings []*xhtml.Node
		walk(root, func(n *xhtml.Node) bool {
			if headingLevel(n) > 0 {
				headings = append(headings, n)
				return false
			}
			return !isVerbatim(n)
		})
		for _, h := range headings {
			seen++
			if seen == 1 {
				continue
			}
			link := newElement(atom.A,
				xhtml.Attribute{Key: "class", Val: "toc-backlink"},
				xhtml.Attribute{Key: "href", Val: "#" + TOCAnchor},
			)
			link.AppendChild(newText("TOC"))
			insertAfter(h, link)
		}
		return nil
	})
}

package pipeline

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// CrossReference links every whole occurrence of a heading's text in
// documentation prose to that heading. At each position the longest heading
// text wins. Text inside code, links, scripts, styles, diagrams and the
// table of contents is left alone, as is a heading's own text inside that
// heading. CODE fragments are never modified.
func CrossReference(frags []Fragment, index HeadingIndex) ([]Fragment, error) {
	m := newMatcher(index)
	if len(m.targets) == 0 {
		out := make([]Fragment, len(frags))
		copy(out, frags)
		return out, nil
	}

	return transformDocFragments(frags, nil, func(_ Fragment, root *html.Node) error {
		m.link(root, "")
		return nil
	})
}

type matcher struct {
	targets map[string]string // heading text -> anchor
	byFirst map[rune][]string // candidate texts by first rune, longest first
}

func newMatcher(index HeadingIndex) *matcher {
	m := &matcher{targets: make(map[string]string), byFirst: make(map[rune][]string)}
	for _, e := range index.entries {
		if e.Text == "" {
			continue
		}
		// Later entries overwrite earlier ones: the last definition wins.
		m.targets[e.Text] = e.Anchor
	}
	for text := range m.targets {
		r, _ := utf8.DecodeRuneInString(text)
		m.byFirst[r] = append(m.byFirst[r], text)
	}
	for _, list := range m.byFirst {
		sort.Slice(list, func(i, j int) bool {
			if len(list[i]) != len(list[j]) {
				return len(list[i]) > len(list[j])
			}
			return list[i] < list[j]
		})
	}
	return m
}

// link rewrites the text nodes below n. own is the text of the enclosing
// heading, if any.
func (m *matcher) link(n *html.Node, own string) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		switch {
		case c.Type == html.TextNode:
			m.rewrite(c, own)
		case c.Type != html.ElementNode:
		case isVerbatim(c), c.DataAtom == atom.A, c.DataAtom == atom.Nav:
		case headingLevel(c) > 0:
			m.link(c, normalizeSpace(textContent(c)))
		default:
			m.link(c, own)
		}
		c = next
	}
}

func (m *matcher) rewrite(t *html.Node, own string) {
	s := t.Data
	var out []*html.Node
	last := 0
	for i := 0; i < len(s); {
		text, ok := m.matchAt(s, i)
		if !ok {
			_, size := utf8.DecodeRuneInString(s[i:])
			i += size
			continue
		}
		if text != own {
			if last < i {
				out = append(out, newText(s[last:i]))
			}
			a := newElement(atom.A,
				html.Attribute{Key: "class", Val: "xref"},
				html.Attribute{Key: "href", Val: "#" + m.targets[text]},
			)
			a.AppendChild(newText(text))
			out = append(out, a)
			last = i + len(text)
		}
		i += len(text)
	}
	if len(out) == 0 {
		return
	}
	if last < len(s) {
		out = append(out, newText(s[last:]))
	}
	for _, n := range out {
		t.Parent.InsertBefore(n, t)
	}
	t.Parent.RemoveChild(t)
}

// matchAt returns the longest heading text occurring whole at s[i:].
func (m *matcher) matchAt(s string, i int) (string, bool) {
	r, _ := utf8.DecodeRuneInString(s[i:])
	for _, text := range m.byFirst[r] {
		end := i + len(text)
		if strings.HasPrefix(s[i:], text) && wholeOccurrence(s, i, end) {
			return text, true
		}
	}
	return "", false
}

// wholeOccurrence reports whether s[start:end] is not glued to a word
// character on either side.
func wholeOccurrence(s string, start, end int) bool {
	if start > 0 {
		before, _ := utf8.DecodeLastRuneInString(s[:start])
		first, _ := utf8.DecodeRuneInString(s[start:])
		if isWordRune(before) && isWordRune(first) {
			return false
		}
	}
	if end < len(s) {
		after, _ := utf8.DecodeRuneInString(s[end:])
		lastRune, _ := utf8.DecodeLastRuneInString(s[:end])
		if isWordRune(after) && isWordRune(lastRune) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

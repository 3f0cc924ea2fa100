package pipeline

import (
	"slices"

	"golang.org/x/net/html"
)

// HeadingEntry describes one heading of the document.
type HeadingEntry struct {
	Text   string // visible text, whitespace-normalized
	Anchor string // unique id assigned to the heading element
	Level  int    // 1-6
	Index  int    // index of the fragment holding the heading
}

// HeadingIndex is the ordered list of headings of a document. The zero value
// is an empty index.
type HeadingIndex struct {
	entries []HeadingEntry
}

// NewHeadingIndex builds an index from entries in document order.
func NewHeadingIndex(entries []HeadingEntry) HeadingIndex {
	return HeadingIndex{entries: slices.Clone(entries)}
}

// Entries returns a copy of the entries in document order.
func (h HeadingIndex) Entries() []HeadingEntry {
	return slices.Clone(h.entries)
}

// Len returns the number of headings.
func (h HeadingIndex) Len() int {
	return len(h.entries)
}

// Lookup returns the heading a reference to text links to. When several
// headings share the text, the last one in the document wins.
func (h HeadingIndex) Lookup(text string) (HeadingEntry, bool) {
	for i := len(h.entries) - 1; i >= 0; i-- {
		if h.entries[i].Text == text {
			return h.entries[i], true
		}
	}
	return HeadingEntry{}, false
}

// IndexHeadings finds the h1-h6 elements of every DOC fragment in document
// order, gives each a unique id and returns the rewritten fragments with the
// resulting index.
func IndexHeadings(frags []Fragment) ([]Fragment, HeadingIndex, error) {
	anchors := newAnchorSet(TOCAnchor)
	var entries []HeadingEntry

	out, err := transformDocFragments(frags, nil, func(f Fragment, root *html.Node) error {
		walk(root, func(n *html.Node) bool {
			level := headingLevel(n)
			if level == 0 {
				return !isVerbatim(n)
			}
			text := normalizeSpace(textContent(n))
			anchor := anchors.assign(Slugify(text))
			setAttr(n, "id", anchor)
			entries = append(entries, HeadingEntry{
				Text:   text,
				Anchor: anchor,
				Level:  level,
				Index:  f.Index,
			})
			return false
		})
		return nil
	})
	if err != nil {
		return nil, HeadingIndex{}, err
	}

	return out, HeadingIndex{entries: entries}, nil
}

package pipeline

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// TOCAnchor is the id of the first table of contents in a document.
	TOCAnchor = "toc"
	// fallbackAnchor replaces headings whose text has no letters or digits.
	fallbackAnchor = "section"
)

// Slugify derives an anchor from heading text: accents are folded, letters
// lower-cased and every run of other characters collapsed to a single '-'.
// The result may be empty.
func Slugify(text string) string {
	// transformers and casers carry state, so each call gets its own.
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, text)
	if err != nil {
		folded = text
	}
	folded = cases.Lower(language.Und).String(folded)

	var b strings.Builder
	sep := false
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if sep && b.Len() > 0 {
				b.WriteByte('-')
			}
			sep = false
			b.WriteRune(r)
			continue
		}
		sep = true
	}
	return b.String()
}

// anchorSet hands out anchors that are unique within one document.
type anchorSet struct {
	used map[string]bool
	next map[string]int
}

func newAnchorSet(reserved ...string) *anchorSet {
	s := &anchorSet{used: make(map[string]bool), next: make(map[string]int)}
	for _, r := range reserved {
		s.used[r] = true
	}
	return s
}

// assign returns base, or base-2, base-3, ... if base is taken.
func (s *anchorSet) assign(base string) string {
	if base == "" {
		base = fallbackAnchor
	}
	id := base
	if s.used[id] {
		n := max(s.next[base], 2)
		for s.used[fmt.Sprintf("%s-%d", base, n)] {
			n++
		}
		id = fmt.Sprintf("%s-%d", base, n)
		s.next[base] = n + 1
	}
	s.used[id] = true
	return id
}

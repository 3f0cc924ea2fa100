package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidFence indicates a fence configuration that cannot be scanned.
var ErrInvalidFence = errors.New("invalid fence")

// SegmentKind tells how a segment is rendered.
type SegmentKind int

const (
	// KindCode is source code, rendered verbatim.
	KindCode SegmentKind = iota
	// KindDoc is documentation prose, rendered as markdown.
	KindDoc
)

// String returns a lowercase name for the kind.
func (k SegmentKind) String() string {
	switch k {
	case KindCode:
		return "code"
	case KindDoc:
		return "doc"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Segment is a contiguous run of source lines of one kind.
type Segment struct {
	Kind  SegmentKind
	Text  string
	Index int // position in the segment sequence
	Line  int // 1-based source line of the first content line
}

// Fences holds the markers recognized by the segmenter.
type Fences struct {
	// Doc opens and closes a documentation block when it starts a line.
	Doc string
	// Escape toggles a verbatim code block. Empty disables escaping.
	Escape string
}

// DefaultFences returns the triple-quote markers.
func DefaultFences() Fences {
	return Fences{Doc: `"""`, Escape: `'''`}
}

// Validate checks that the markers can be told apart.
func (f Fences) Validate() error {
	if f.Doc == "" {
		return fmt.Errorf("%w: empty documentation marker", ErrInvalidFence)
	}
	if strings.ContainsAny(f.Doc, "\r\n") || strings.ContainsAny(f.Escape, "\r\n") {
		return fmt.Errorf("%w: markers cannot contain line breaks", ErrInvalidFence)
	}
	if f.Escape != "" && (strings.Contains(f.Doc, f.Escape) || strings.Contains(f.Escape, f.Doc)) {
		return fmt.Errorf("%w: markers %q and %q overlap", ErrInvalidFence, f.Doc, f.Escape)
	}
	return nil
}

// Diagnostic reports a recoverable problem found while segmenting.
type Diagnostic struct {
	Line    int
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s", d.Line, d.Message)
}

// SplitSegments splits src into ordered CODE and DOC segments.
//
// Scanning starts in CODE mode. A line that begins with fences.Doc and does
// not repeat it toggles the mode; text after the marker becomes the first
// line of the next segment. In CODE mode a line holding an odd number of
// fences.Escape markers opens an escaped block when its first marker starts
// a literal (at line start, or after =, an opening bracket, a comma, a colon
// or return); the next line with an odd count closes it. Escaped lines stay
// CODE even when they look like documentation fences.
//
// Unterminated fences never fail: the content stays in its current mode and
// a Diagnostic is returned. The result always holds at least one segment.
func SplitSegments(src string, fences Fences) ([]Segment, []Diagnostic) {
	s := &segmenter{fences: fences}
	for i, line := range strings.SplitAfter(src, "\n") {
		if line == "" {
			continue
		}
		s.feed(i+1, line)
	}
	return s.finish()
}

// SegmentMarkdown wraps a whole markdown file in a single DOC segment.
func SegmentMarkdown(src string) []Segment {
	return []Segment{{Kind: KindDoc, Text: src, Index: 0, Line: 1}}
}

type segmenter struct {
	fences     Fences
	kind       SegmentKind
	escaped    bool
	escapeLine int
	fenceLine  int
	start      int
	buf        strings.Builder
	segs       []Segment
	diags      []Diagnostic
}

func (s *segmenter) feed(n int, line string) {
	if !s.escaped {
		if rest, ok := s.docFence(line); ok {
			s.flush()
			s.toggle(n)
			if strings.TrimSpace(rest) != "" {
				s.add(n, rest)
			}
			return
		}
	}

	if s.kind == KindCode && s.fences.Escape != "" && strings.Count(line, s.fences.Escape)%2 == 1 {
		switch {
		case s.escaped:
			s.escaped = false
		case opensBlock(line, s.fences.Escape):
			s.escaped = true
			s.escapeLine = n
		}
	}
	s.add(n, line)
}

// opensBlock reports whether the first marker on line starts a block: it
// begins the line or follows an assignment, an opening bracket, a comma,
// a colon or return. A marker quoted inside another literal does not.
func opensBlock(line, marker string) bool {
	before := strings.TrimSpace(line[:strings.Index(line, marker)])
	before = strings.TrimSpace(trimStringPrefix(before))
	if before == "" || strings.HasSuffix(before, "return") {
		return true
	}
	return strings.IndexByte("=([{,:", before[len(before)-1]) >= 0
}

// trimStringPrefix drops a literal prefix such as r, b or f glued to the
// marker.
func trimStringPrefix(s string) string {
	end := len(s)
	for end > 0 && len(s)-end < 2 && strings.IndexByte("rRbBuUfF", s[end-1]) >= 0 {
		end--
	}
	if end == len(s) || end == 0 || !isIdentByte(s[end-1]) {
		return s[:end]
	}
	return s
}

func isIdentByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func (s *segmenter) docFence(line string) (string, bool) {
	if s.fences.Doc == "" || !strings.HasPrefix(line, s.fences.Doc) {
		return "", false
	}
	rest := line[len(s.fences.Doc):]
	if strings.Contains(rest, s.fences.Doc) {
		return "", false
	}
	return rest, true
}

func (s *segmenter) toggle(n int) {
	if s.kind == KindCode {
		s.kind = KindDoc
	} else {
		s.kind = KindCode
	}
	s.fenceLine = n
}

func (s *segmenter) add(n int, text string) {
	if s.buf.Len() == 0 {
		s.start = n
	}
	s.buf.WriteString(text)
}

func (s *segmenter) flush() {
	if s.buf.Len() == 0 {
		return
	}
	s.segs = append(s.segs, Segment{
		Kind:  s.kind,
		Text:  s.buf.String(),
		Index: len(s.segs),
		Line:  s.start,
	})
	s.buf.Reset()
}

func (s *segmenter) finish() ([]Segment, []Diagnostic) {
	s.flush()

	if s.escaped {
		s.diags = append(s.diags, Diagnostic{
			Line:    s.escapeLine,
			Message: fmt.Sprintf("malformed fence: escaped block %q is never closed", s.fences.Escape),
		})
	}
	if s.kind == KindDoc {
		s.diags = append(s.diags, Diagnostic{
			Line:    s.fenceLine,
			Message: fmt.Sprintf("malformed fence: documentation block %q is never closed", s.fences.Doc),
		})
	}

	if len(s.segs) == 0 {
		s.segs = append(s.segs, Segment{Kind: KindCode, Line: 1})
	}
	return s.segs, s.diags
}

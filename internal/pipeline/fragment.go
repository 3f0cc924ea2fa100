package pipeline

import (
	"errors"
	"fmt"
)

// ErrRender indicates a segment could not be rendered.
var ErrRender = errors.New("rendering failed")

// Fragment is the rendered HTML of one segment.
type Fragment struct {
	Index int
	Kind  SegmentKind
	HTML  string
}

// RenderFunc turns one segment into HTML. lang is the language hint of the
// source file, empty when unknown.
type RenderFunc func(seg Segment, lang string) (string, error)

// Renderers dispatches segments to a renderer by kind.
type Renderers map[SegmentKind]RenderFunc

// CodeOptions controls how CODE segments are presented.
type CodeOptions struct {
	// Collapsible wraps each block in a <details> element.
	Collapsible bool
	// Summary is the text of the <summary> element. Defaults to "View code".
	Summary string
}

// NewRenderers builds the dispatch table for the two segment kinds.
func NewRenderers(doc DocRenderer, code CodeRenderer, opts CodeOptions) Renderers {
	return Renderers{
		KindDoc: func(seg Segment, _ string) (string, error) {
			return doc.RenderDoc(seg.Text)
		},
		KindCode: func(seg Segment, lang string) (string, error) {
			return renderCodeSegment(code, seg.Text, lang, opts)
		},
	}
}

// Render renders every segment in order. The fragment at position i always
// corresponds to segs[i].
func (r Renderers) Render(segs []Segment, lang string) ([]Fragment, error) {
	frags := make([]Fragment, 0, len(segs))
	for _, seg := range segs {
		fn, ok := r[seg.Kind]
		if !ok {
			return nil, fmt.Errorf("%w: no renderer for %s segment", ErrRender, seg.Kind)
		}
		out, err := fn(seg, lang)
		if err != nil {
			return nil, fmt.Errorf("segment %d (line %d): %w", seg.Index, seg.Line, err)
		}
		frags = append(frags, Fragment{Index: seg.Index, Kind: seg.Kind, HTML: out})
	}
	return frags, nil
}

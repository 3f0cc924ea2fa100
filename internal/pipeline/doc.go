// Package pipeline implements the source-to-document transformation.
//
// A conversion runs these stages in order, each one a pure function of its
// inputs:
//   - segmentation of the source into ordered CODE and DOC segments
//   - rendering of DOC segments as markdown (goldmark) and of CODE segments
//     as escaped or highlighted (chroma) preformatted blocks
//   - heading indexing, which assigns unique anchors to h1-h6
//   - table of contents substitution for [TOC] markers
//   - cross-referencing of heading text found in prose
//   - assembly of the fragments into one standalone HTML5 document
//
// Stages after rendering work on parsed HTML trees (golang.org/x/net/html),
// never on the markdown text, and never touch CODE fragments.
package pipeline

// Package diagram renders small box-and-arrow diagrams written in fenced
// code blocks as inline SVG.
//
// A diagram block uses the info string "diagram" and holds one chain per
// line:
//
//	# comment
//	Source -> [Segmenter] -> Renderers
//	Renderers -- Indexer
//
// "->" draws an arrow and "--" a plain line. Square brackets around a label
// are optional and allow connector characters inside it. Each chain becomes
// one row of boxes.
//
// The package exposes the parser and the SVG renderer directly and a goldmark
// extension (Extension) that swaps diagram blocks for rendered figures.
// Blocks that fail to parse are rendered as preformatted text.
package diagram

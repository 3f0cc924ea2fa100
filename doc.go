// Package litdoc turns document-style source files into standalone HTML.
//
// A document-style source interleaves code with documentation blocks
// delimited by a fence line (""" by default). Documentation is markdown;
// code is shown as preformatted, optionally highlighted, blocks. The
// resulting page carries an automatic table of contents wherever [TOC]
// appears and links every mention of a heading's text back to that heading.
//
// # Quick Start
//
//	conv, err := litdoc.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, litdoc.Input{
//	    Source:   string(src),
//	    Filename: "main.py",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("docs/main.html", result.HTML, 0o644)
//
// # Conversion Pipeline
//
//  1. Segmentation into ordered CODE and DOC segments (markdown files are a
//     single DOC segment)
//  2. Rendering: DOC through goldmark (GFM, highlighted fences, diagrams),
//     CODE through chroma or as escaped text
//  3. Heading indexing with unique anchors
//  4. [TOC] substitution and optional back links
//  5. Cross-referencing of heading text in prose
//  6. Relative path rewriting and assembly into one HTML5 document
//
// # Configuration
//
//	conv, err := litdoc.NewConverter(
//	    litdoc.WithStyle("plain"),
//	    litdoc.WithCollapsibleCode(true),
//	    litdoc.WithTOCTitle("Contents"),
//	    litdoc.WithTOCBackLinks(true),
//	)
//
// A Converter holds no per-conversion state and is safe for concurrent use.
// ConverterPool bounds the number of conversions running at once.
package litdoc

package pipeline

import (
	"regexp"
	"strings"
)

// Highlight placeholders use Unicode Private Use Area characters so they pass
// through goldmark untouched without enabling raw HTML.
const (
	MarkStartPlaceholder = "\uE000"
	MarkEndPlaceholder   = "\uE001"
)

var (
	crlfOrCR           = regexp.MustCompile(`\r\n?`)
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)

	// ==text== with no whitespace hugging the markers, so comparisons such
	// as `a == b == c` in prose are left alone.
	highlightPattern = regexp.MustCompile(`==(\S|\S[^\n]*?\S)==`)
)

// PrepareMarkdown normalizes documentation text before goldmark sees it:
// line endings become \n, ==text== becomes placeholder marks and runs of
// blank lines are compressed.
func PrepareMarkdown(content string) string {
	content = crlfOrCR.ReplaceAllString(content, "\n")
	content = highlightPattern.ReplaceAllString(content, MarkStartPlaceholder+"$1"+MarkEndPlaceholder)
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}

// ConvertMarkPlaceholders turns placeholder marks into <mark> elements.
func ConvertMarkPlaceholders(content string) string {
	return strings.NewReplacer(
		MarkStartPlaceholder, "<mark>",
		MarkEndPlaceholder, "</mark>",
	).Replace(content)
}

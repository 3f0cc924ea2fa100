package pipeline

import (
	"fmt"
	"html/template"
	"slices"
	"strings"
)

// AssembleOptions configures the document shell.
type AssembleOptions struct {
	// Title fills <title>, usually the source file name.
	Title string
	// CSS is inlined in a <style> element when non-empty.
	CSS string
	// Lang is the document language. Defaults to "en".
	Lang string
}

type documentData struct {
	Lang      string
	Title     string
	CSS       template.CSS
	Fragments []template.HTML
}

var documentTemplate = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta name="generator" content="litdoc">
<title>{{.Title}}</title>
{{- if .CSS}}
<style>
{{.CSS}}
</style>
{{- end}}
</head>
<body>
<main class="litdoc">
{{- range .Fragments}}
{{.}}
{{- end}}
</main>
</body>
</html>
`))

// Assemble concatenates fragments in index order into a standalone HTML5
// document. Empty fragments are dropped. The output depends only on its
// inputs.
func Assemble(frags []Fragment, opts AssembleOptions) (string, error) {
	ordered := slices.Clone(frags)
	slices.SortStableFunc(ordered, func(a, b Fragment) int { return a.Index - b.Index })

	data := documentData{
		Lang:  opts.Lang,
		Title: opts.Title,
		CSS:   template.CSS(sanitizeCSS(strings.TrimSpace(opts.CSS))), // #nosec G203 -- closing sequences escaped
	}
	if data.Lang == "" {
		data.Lang = "en"
	}
	for _, f := range ordered {
		if strings.TrimSpace(f.HTML) == "" {
			continue
		}
		data.Fragments = append(data.Fragments, template.HTML(strings.TrimRight(f.HTML, "\n"))) // #nosec G203 -- produced by the renderers
	}

	var buf strings.Builder
	if err := documentTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: assembling document: %v", ErrRender, err)
	}
	return buf.String(), nil
}

// sanitizeCSS escapes sequences that could close the <style> element early.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

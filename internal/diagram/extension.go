package diagram

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Language is the fenced code info string that marks a diagram.
const Language = "diagram"

// KindBlock is the AST node kind of a diagram block.
var KindBlock = ast.NewNodeKind("DiagramBlock")

// Block is a fenced diagram in a goldmark AST.
type Block struct {
	ast.BaseBlock
	Source []byte
}

// Kind implements ast.Node.
func (n *Block) Kind() ast.NodeKind {
	return KindBlock
}

// Dump implements ast.Node.
func (n *Block) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Source": string(n.Source)}, nil)
}

type blockTransformer struct{}

// Transform replaces fenced code blocks tagged as diagrams with Block nodes.
func (blockTransformer) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	source := reader.Source()

	var fenced []*ast.FencedCodeBlock
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if fb, ok := n.(*ast.FencedCodeBlock); ok && strings.EqualFold(string(fb.Language(source)), Language) {
			fenced = append(fenced, fb)
		}
		return ast.WalkContinue, nil
	})

	for _, fb := range fenced {
		var buf bytes.Buffer
		lines := fb.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(source))
		}
		parent := fb.Parent()
		parent.ReplaceChild(parent, fb, &Block{Source: buf.Bytes()})
	}
}

type blockRenderer struct{}

// RegisterFuncs implements renderer.NodeRenderer.
func (r blockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindBlock, r.render)
}

func (blockRenderer) render(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*Block)

	d, err := Parse(string(n.Source))
	if err != nil {
		_, _ = w.WriteString(`<pre class="diagram-error"><code>`)
		_, _ = w.Write(util.EscapeHTML(n.Source))
		_, _ = w.WriteString("</code></pre>\n")
		return ast.WalkSkipChildren, nil
	}

	_, _ = w.WriteString(`<figure class="diagram">`)
	_, _ = w.WriteString(RenderSVG(d))
	_, _ = w.WriteString("</figure>\n")
	return ast.WalkSkipChildren, nil
}

type extender struct{}

// Extension renders ```diagram blocks as inline SVG figures.
var Extension goldmark.Extender = extender{}

// Extend implements goldmark.Extender.
func (extender) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithASTTransformers(
		util.Prioritized(blockTransformer{}, 100),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(blockRenderer{}, 100),
	))
}

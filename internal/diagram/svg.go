package diagram

import (
	"fmt"
	"html"
	"strings"
	"unicode/utf8"
)

// Layout constants, in SVG user units.
const (
	margin     = 8
	boxHeight  = 32
	boxPadding = 12
	minBox     = 48
	charWidth  = 8
	edgeLength = 40
	rowGap     = 24
	arrowSize  = 8
	fontSize   = 13
)

func boxWidth(label string) int {
	return max(utf8.RuneCountInString(label)*charWidth+2*boxPadding, minBox)
}

func rowWidth(c Chain) int {
	w := 0
	for _, n := range c.Nodes {
		w += boxWidth(n)
	}
	return w + len(c.Links)*edgeLength
}

// RenderSVG lays the diagram out left to right, one row per chain, and
// returns a standalone <svg> element. Colors follow currentColor so the
// figure adapts to the surrounding stylesheet.
func RenderSVG(d Diagram) string {
	width := 0
	for _, c := range d.Chains {
		width = max(width, rowWidth(c))
	}
	width += 2 * margin
	height := 2 * margin
	if n := len(d.Chains); n > 0 {
		height += n*boxHeight + (n-1)*rowGap
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" class="diagram" role="img" width="%d" height="%d" viewBox="0 0 %d %d">`,
		width, height, width, height)

	for row, c := range d.Chains {
		y := margin + row*(boxHeight+rowGap)
		mid := y + boxHeight/2
		x := margin
		for i, label := range c.Nodes {
			w := boxWidth(label)
			fmt.Fprintf(&b, `<rect x="%d" y="%d" width="%d" height="%d" rx="4" fill="none" stroke="currentColor"/>`,
				x, y, w, boxHeight)
			fmt.Fprintf(&b, `<text x="%d" y="%d" text-anchor="middle" dominant-baseline="middle" font-family="sans-serif" font-size="%d" fill="currentColor">%s</text>`,
				x+w/2, mid, fontSize, html.EscapeString(label))
			x += w
			if i == len(c.Links) {
				break
			}
			end := x + edgeLength
			fmt.Fprintf(&b, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="currentColor"/>`, x, mid, end, mid)
			if c.Links[i] == Arrow {
				fmt.Fprintf(&b, `<polygon points="%d,%d %d,%d %d,%d" fill="currentColor"/>`,
					end, mid, end-arrowSize, mid-arrowSize/2, end-arrowSize, mid+arrowSize/2)
			}
			x = end
		}
	}

	b.WriteString(`</svg>`)
	return b.String()
}

package diagram

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSyntax indicates a malformed diagram line.
var ErrSyntax = errors.New("diagram syntax error")

// Connector is the kind of edge between two boxes.
type Connector int

const (
	// Arrow is a directed edge, written "->".
	Arrow Connector = iota
	// Line is an undirected edge, written "--".
	Line
)

// Chain is one row of the diagram. Links[i] joins Nodes[i] and Nodes[i+1].
type Chain struct {
	Nodes []string
	Links []Connector
}

// Diagram is a parsed diagram, one chain per non-comment line.
type Diagram struct {
	Chains []Chain
}

// Parse reads diagram notation. Blank lines and lines starting with '#' are
// ignored.
func Parse(src string) (Diagram, error) {
	var d Diagram
	for i, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		chain, err := parseChain(line)
		if err != nil {
			return Diagram{}, fmt.Errorf("%w: line %d: %v", ErrSyntax, i+1, err)
		}
		d.Chains = append(d.Chains, chain)
	}
	return d, nil
}

func parseChain(line string) (Chain, error) {
	var c Chain
	depth, start := 0, 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '[':
			depth++
		case ']':
			if depth == 0 {
				return Chain{}, fmt.Errorf("unbalanced ']' at column %d", i+1)
			}
			depth--
		case '-':
			if depth > 0 || i+1 >= len(line) || (line[i+1] != '>' && line[i+1] != '-') {
				continue
			}
			label, err := nodeLabel(line[start:i])
			if err != nil {
				return Chain{}, fmt.Errorf("connector at column %d: %v", i+1, err)
			}
			c.Nodes = append(c.Nodes, label)
			if line[i+1] == '>' {
				c.Links = append(c.Links, Arrow)
			} else {
				c.Links = append(c.Links, Line)
			}
			i++
			start = i + 1
		}
	}
	if depth > 0 {
		return Chain{}, errors.New("unclosed '['")
	}

	label, err := nodeLabel(line[start:])
	if err != nil {
		return Chain{}, fmt.Errorf("dangling connector: %v", err)
	}
	c.Nodes = append(c.Nodes, label)
	return c, nil
}

func nodeLabel(s string) (string, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if s == "" {
		return "", errors.New("missing node label")
	}
	return s, nil
}

package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RewriteRelativePaths rewrites relative img[src] and a[href] references in
// documentation so they resolve from outputDir instead of sourceDir. Anchors,
// URLs and absolute paths are kept. Nothing changes when either directory is
// empty or both are the same.
func RewriteRelativePaths(frags []Fragment, sourceDir, outputDir string) ([]Fragment, error) {
	out := make([]Fragment, len(frags))
	copy(out, frags)
	if sourceDir == "" || outputDir == "" {
		return out, nil
	}

	absSource, err := filepath.Abs(sourceDir)
	if err != nil {
		return nil, err
	}
	absOutput, err := filepath.Abs(outputDir)
	if err != nil {
		return nil, err
	}
	if absSource == absOutput {
		return out, nil
	}

	hasRef := func(f Fragment) bool {
		return strings.Contains(f.HTML, "<img") || strings.Contains(f.HTML, "<a")
	}
	return transformDocFragments(frags, hasRef, func(_ Fragment, root *html.Node) error {
		walk(root, func(n *html.Node) bool {
			if n.Type != html.ElementNode {
				return true
			}
			switch n.DataAtom {
			case atom.Img:
				rebaseAttr(n, "src", absSource, absOutput)
			case atom.A:
				rebaseAttr(n, "href", absSource, absOutput)
			}
			return !isVerbatim(n)
		})
		return nil
	})
}

func rebaseAttr(n *html.Node, key, sourceDir, outputDir string) {
	val, ok := getAttr(n, key)
	if !ok || !isRelativePath(val) {
		return
	}

	ref, suffix := val, ""
	if i := strings.IndexAny(val, "?#"); i >= 0 {
		ref, suffix = val[:i], val[i:]
	}
	if ref == "" {
		return
	}
	if unescaped, err := url.PathUnescape(ref); err == nil {
		ref = unescaped
	}

	target := filepath.Join(sourceDir, filepath.FromSlash(ref))
	rel, err := filepath.Rel(outputDir, target)
	if err != nil {
		return
	}
	u := url.URL{Path: filepath.ToSlash(rel)}
	setAttr(n, key, u.EscapedPath()+suffix)
}

// isRelativePath reports whether path is a relative file reference.
func isRelativePath(path string) bool {
	if path == "" || strings.HasPrefix(path, "#") || strings.HasPrefix(path, "//") {
		return false
	}
	if u, err := url.Parse(path); err == nil && u.Scheme != "" {
		return false
	}
	return !filepath.IsAbs(path) && !strings.HasPrefix(path, "/")
}

package pipeline

import (
	"path"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// LinkResolver maps a slash-separated source path, relative to the content
// root, to the URL of the entry built from it. ok is false for paths that
// are not documents (images, downloads, ...).
type LinkResolver func(sourcePath string) (url string, ok bool)

// RewriteRelativePaths makes relative links in a rendered fragment valid
// from the page's output location.
//
// sourcePath is the document's path relative to the content root and
// pageURL its output URL. Each relative a[href] and img[src] is resolved
// against the source directory; links to other documents point at their
// URL, anything else at the copied file. Links that climb out of the
// content root are left alone.
//
// The fragment is re-serialized only when at least one attribute changed.
func RewriteRelativePaths(htmlContent, sourcePath, pageURL string, resolve LinkResolver) (string, error) {
	if !strings.Contains(htmlContent, "href=") && !strings.Contains(htmlContent, "src=") {
		return htmlContent, nil
	}

	doc, err := parseFragment(htmlContent)
	if err != nil {
		return "", err
	}

	rw := linkRewriter{
		sourceDir: path.Dir(sourcePath),
		pageURL:   pageURL,
		resolve:   resolve,
	}
	rw.walk(doc)
	if !rw.changed {
		return htmlContent, nil
	}
	return renderFragment(doc)
}

// parseFragment parses HTML with body context to avoid wrapping.
func parseFragment(content string) (*html.Node, error) {
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, err
	}

	// Wrap nodes in a container for uniform traversal
	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, nil
}

// renderFragment renders only the container's children.
func renderFragment(doc *html.Node) (string, error) {
	var buf strings.Builder
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

type linkRewriter struct {
	sourceDir string
	pageURL   string
	resolve   LinkResolver
	changed   bool
}

func (rw *linkRewriter) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Img:
			rw.rewriteAttr(n, "src")
		case atom.A:
			rw.rewriteAttr(n, "href")
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rw.walk(c)
	}
}

func (rw *linkRewriter) rewriteAttr(n *html.Node, attrName string) {
	for i, attr := range n.Attr {
		if attr.Key != attrName || !isRelativePath(attr.Val) {
			continue
		}

		target, suffix := splitSuffix(attr.Val)
		joined := path.Join(rw.sourceDir, target)
		if !isUnderRoot(joined) {
			continue
		}

		dest := joined
		if rw.resolve != nil {
			if u, ok := rw.resolve(joined); ok {
				dest = u
			}
		}

		rel := RelativeURL(rw.pageURL, dest) + suffix
		if rel != attr.Val {
			n.Attr[i].Val = rel
			rw.changed = true
		}
	}
}

// isRelativePath returns true if the reference should be rewritten.
func isRelativePath(ref string) bool {
	if ref == "" {
		return false
	}

	// Skip URLs (any scheme, protocol-relative) and anchors
	if strings.Contains(ref, "://") ||
		strings.HasPrefix(ref, "//") ||
		strings.HasPrefix(ref, "#") {
		return false
	}
	for _, scheme := range []string{"data:", "mailto:", "tel:", "javascript:"} {
		if strings.HasPrefix(strings.ToLower(ref), scheme) {
			return false
		}
	}

	// Site-absolute paths are already resolved
	return !strings.HasPrefix(ref, "/")
}

// splitSuffix separates the path from a trailing ?query or #fragment.
func splitSuffix(ref string) (string, string) {
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		return ref[:i], ref[i:]
	}
	return ref, ""
}

// isUnderRoot rejects cleaned paths that escape the content root.
func isUnderRoot(p string) bool {
	return p != ".." && !strings.HasPrefix(p, "../")
}

// RelativeURL returns the reference that leads from the page at pageURL to
// target. Both are site-relative URLs without a leading slash; a trailing
// slash marks a directory.
func RelativeURL(pageURL, target string) string {
	from := urlSegments(pageDir(pageURL))
	to := urlSegments(target)

	common := 0
	for common < len(from) && common < len(to) && from[common] == to[common] {
		common++
	}

	parts := make([]string, 0, len(from)-common+len(to)-common)
	for range len(from) - common {
		parts = append(parts, "..")
	}
	parts = append(parts, to[common:]...)

	rel := strings.Join(parts, "/")
	isDir := target == "" || target == "." || strings.HasSuffix(target, "/")
	switch {
	case rel == "":
		return "./"
	case isDir:
		return rel + "/"
	default:
		return rel
	}
}

// pageDir is the directory a browser resolves relative references against.
func pageDir(pageURL string) string {
	if pageURL == "" || strings.HasSuffix(pageURL, "/") {
		return pageURL
	}
	return path.Dir(pageURL)
}

func urlSegments(u string) []string {
	var segs []string
	for _, s := range strings.Split(u, "/") {
		if s != "" && s != "." {
			segs = append(segs, s)
		}
	}
	return segs
}

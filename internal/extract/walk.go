package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// blockTags are the elements whose text becomes one line in the
// block-walk strategy.
var blockTags = map[string]struct{}{
	"p": {}, "li": {},
	"h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {},
	"div": {}, "span": {},
}

// skipTags never contribute text.
var skipTags = map[string]struct{}{
	"script": {}, "style": {}, "meta": {}, "link": {}, "noscript": {},
}

// linesFromBlocks is the secondary strategy: walk the parse tree and emit
// the text of each block element exactly once, preferring the outermost
// block ancestor so nested elements are not double-counted.
func linesFromBlocks(input string) []string {
	root, err := html.Parse(strings.NewReader(input))
	if err != nil || root == nil {
		return nil
	}

	var lines []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			name := strings.ToLower(n.Data)
			if _, skip := skipTags[name]; skip {
				return
			}
			if _, block := blockTags[name]; block {
				if text := flattenText(n); text != "" {
					lines = append(lines, text)
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return lines
}

// linesFromText is the last-resort strategy: every text node on its own
// line, blanks dropped.
func linesFromText(input string) []string {
	root, err := html.Parse(strings.NewReader(input))
	if err != nil || root == nil {
		return nil
	}

	var b strings.Builder
	collectTextNodes(&b, root, "\n")
	var lines []string
	for _, line := range strings.Split(b.String(), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

// flattenText returns the whitespace-collapsed text content of a subtree.
func flattenText(n *html.Node) string {
	var b strings.Builder
	collectTextNodes(&b, n, " ")
	return strings.Join(strings.Fields(b.String()), " ")
}

// collectTextNodes appends every text node under n, separated by sep,
// skipping non-content elements.
func collectTextNodes(b *strings.Builder, n *html.Node, sep string) {
	if n.Type == html.ElementNode {
		if _, skip := skipTags[strings.ToLower(n.Data)]; skip {
			return
		}
	}
	if n.Type == html.TextNode {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectTextNodes(b, c, sep)
	}
}

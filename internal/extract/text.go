package extract

import (
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"
)

// PlainText converts HTML to readable plain text for the raw-content
// fallback. Link URLs and emphasis markers survive the markdown
// rendering, and runs of blank lines collapse to a single blank line.
func PlainText(input string) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}

	md, err := mdConverter.ConvertString(input)
	if err != nil {
		log.Warn().Err(err).Msg("markdown conversion failed, using text walk")
		root, perr := html.Parse(strings.NewReader(input))
		if perr != nil || root == nil {
			// Last resort: hand back the raw markup for manual review.
			return input
		}
		var b strings.Builder
		collectTextNodes(&b, root, "\n")
		md = b.String()
	}

	lines := strings.Split(md, "\n")
	out := make([]string, 0, len(lines))
	prevBlank := false
	for _, line := range lines {
		line = unescapeMarkdown(line)
		blank := strings.TrimSpace(line) == ""
		if blank && prevBlank {
			continue
		}
		out = append(out, line)
		prevBlank = blank
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

// Description derives a short description from HTML: the first meaningful
// paragraph, else the first sentence or first maxLen characters of all
// visible text.
func Description(input string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = 500
	}
	root, err := html.Parse(strings.NewReader(input))
	if err != nil || root == nil {
		return ""
	}

	if p := findFirst(root, "p"); p != nil {
		text := flattenText(p)
		// A couple of words is not a description.
		if len(text) > 20 {
			return truncateRunes(text, maxLen)
		}
	}

	all := flattenText(root)
	if all == "" {
		return ""
	}
	if first, _, found := strings.Cut(all, ". "); found && len(first) < maxLen {
		return first + "."
	}
	return truncateRunes(all, maxLen)
}

// findFirst returns the first element with the given tag in document
// order, or nil.
func findFirst(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && strings.EqualFold(n.Data, tag) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

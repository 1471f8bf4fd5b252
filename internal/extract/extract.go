// Package extract converts note HTML into text the classification engine
// can work with: ordered cleaned lines, plain text, and short
// descriptions. Extraction never fails; each entry point degrades through
// successively simpler strategies and returns empty output only when the
// input has no textual content.
package extract

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/rs/zerolog/log"
)

// mdConverter renders HTML as markdown so header markers and list
// structure survive into the line sequence. Built once, safe for
// concurrent use.
var mdConverter = converter.NewConverter(
	converter.WithPlugins(
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(),
	),
)

var (
	mdImageRe  = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	mdLinkRe   = regexp.MustCompile(`\[([^\]]*)\]\(([^)]*)\)`)
	mdBulletRe = regexp.MustCompile(`^\s*[*\-]\s+`)
	mdEscapeRe = regexp.MustCompile("\\\\([\\\\`*_{}\\[\\]()#+\\-.!|])")
)

// Lines converts an HTML fragment into an ordered sequence of non-empty
// text lines. Markdown header markers are preserved so section headers
// stay detectable, and every list item becomes one line with its bullet
// stripped. Strategies, in order: markdown conversion, a block-element
// walk of the parse tree, and a flat text split.
func Lines(html string) []string {
	if strings.TrimSpace(html) == "" {
		return nil
	}
	if lines := linesFromMarkdown(html); len(lines) > 0 {
		return lines
	}
	if lines := linesFromBlocks(html); len(lines) > 0 {
		return lines
	}
	return linesFromText(html)
}

// linesFromMarkdown is the primary strategy: convert to markdown, then
// split and clean line by line.
func linesFromMarkdown(html string) []string {
	md, err := mdConverter.ConvertString(html)
	if err != nil {
		log.Debug().Err(err).Msg("markdown conversion failed")
		return nil
	}

	var lines []string
	for _, line := range strings.Split(md, "\n") {
		line = unescapeMarkdown(stripMarkdownLinks(line))
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			continue
		}

		// Keep markdown headers as-is for the header detector.
		if strings.HasPrefix(stripped, "#") {
			lines = append(lines, stripped)
			continue
		}

		// Unwrap bulleted list items.
		if mdBulletRe.MatchString(line) {
			if cleaned := strings.TrimSpace(mdBulletRe.ReplaceAllString(line, "")); cleaned != "" {
				lines = append(lines, cleaned)
			}
			continue
		}

		// Numbered items and regular text stay as-is.
		lines = append(lines, stripped)
	}
	return lines
}

// stripMarkdownLinks drops image markup and reduces links to their text,
// since URLs are noise for line classification.
func stripMarkdownLinks(line string) string {
	line = mdImageRe.ReplaceAllString(line, "")
	return mdLinkRe.ReplaceAllString(line, "$1")
}

// unescapeMarkdown undoes the converter's backslash escaping so numbered
// steps like "1. Preheat" keep their original punctuation.
func unescapeMarkdown(line string) string {
	return mdEscapeRe.ReplaceAllString(line, "$1")
}

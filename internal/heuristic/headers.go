package heuristic

import (
	"strings"
	"unicode/utf8"
)

// Category names a detected recipe section.
type Category string

const (
	CategoryIngredients  Category = "ingredients"
	CategoryInstructions Category = "instructions"
)

// Span is a half-open index range [Start, End) into a line sequence.
type Span struct {
	Start int
	End   int
}

// normalizeHeader strips markdown header markers, a trailing colon and
// surrounding whitespace, then lowercases.
func normalizeHeader(line string) string {
	line = mdHeaderRe.ReplaceAllString(line, "")
	line = trailingColonRe.ReplaceAllString(line, "")
	return strings.ToLower(strings.TrimSpace(line))
}

// headerMatch reports whether a line matches any entry of a header
// vocabulary. Entries starting with "for " match as prefixes, so
// "For the sauce:" matches the "for the" entry.
func headerMatch(line string, headers []string) bool {
	normalized := normalizeHeader(line)
	for _, h := range headers {
		if normalized == h {
			return true
		}
		if strings.HasPrefix(h, "for ") && strings.HasPrefix(normalized, h) {
			return true
		}
	}
	return false
}

// FindSections locates ingredient and instruction section boundaries by
// scanning for the first header of each category. The returned spans
// never overlap. An empty map means no headers were found.
func FindSections(lines []string) map[Category]Span {
	ingredientStart := -1
	instructionStart := -1

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		// Very short lines are noise, not headers.
		if utf8.RuneCountInString(trimmed) < 3 {
			continue
		}
		if ingredientStart < 0 && headerMatch(trimmed, ingredientHeaders) {
			ingredientStart = i + 1 // content starts after the header
		}
		if instructionStart < 0 && headerMatch(trimmed, instructionHeaders) {
			instructionStart = i + 1
		}
	}

	sections := map[Category]Span{}
	switch {
	case ingredientStart >= 0 && instructionStart >= 0:
		if ingredientStart < instructionStart {
			sections[CategoryIngredients] = Span{ingredientStart, instructionStart - 1}
			sections[CategoryInstructions] = Span{instructionStart, len(lines)}
		} else {
			sections[CategoryInstructions] = Span{instructionStart, ingredientStart - 1}
			sections[CategoryIngredients] = Span{ingredientStart, len(lines)}
		}
	case ingredientStart >= 0:
		sections[CategoryIngredients] = Span{ingredientStart, len(lines)}
	case instructionStart >= 0:
		sections[CategoryInstructions] = Span{instructionStart, len(lines)}
		// An untitled ingredient list commonly precedes a labeled
		// instructions section.
		if instructionStart > 0 {
			sections[CategoryIngredients] = Span{0, instructionStart - 1}
		}
	}
	return sections
}

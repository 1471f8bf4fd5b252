package heuristic

import (
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/enexcook/enexcook/internal/extract"
)

// DefaultThreshold is the minimum winning score for a line to be
// assigned to a category when no section headers are present.
const DefaultThreshold = 0.3

// GroupScored partitions scored lines into ingredients and instructions.
// A line is assigned only when its winning score strictly exceeds the
// other and meets the threshold; ties and low-signal lines are dropped
// rather than misclassified.
func GroupScored(scored []ScoredLine, threshold float64) (ingredients, instructions []string) {
	for _, s := range scored {
		switch {
		case s.Ingredient > s.Instruction && s.Ingredient >= threshold:
			ingredients = append(ingredients, s.Line)
		case s.Instruction > s.Ingredient && s.Instruction >= threshold:
			instructions = append(instructions, s.Line)
		}
	}
	return ingredients, instructions
}

// Parse extracts ingredients and instructions from an HTML fragment and
// reports a 0..1 confidence for the split. It looks for explicit section
// headers first and falls back to per-line scoring when none are found.
func Parse(html string) (ingredients, instructions []string, confidence float64) {
	if strings.TrimSpace(html) == "" {
		return nil, nil, 0
	}

	raw := extract.Lines(html)
	if len(raw) == 0 {
		log.Warn().Msg("no text lines extracted from html")
		return nil, nil, 0
	}

	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if strings.TrimSpace(l) == "" {
			continue
		}
		lines = append(lines, CleanLine(l))
	}

	sections := FindSections(lines)

	if len(sections) > 0 {
		if span, ok := sections[CategoryIngredients]; ok {
			ingredients = collectSpan(lines, span)
		}
		if span, ok := sections[CategoryInstructions]; ok {
			instructions = collectSpan(lines, span)
		}
		if len(sections) == 2 {
			confidence = 0.9
		} else {
			confidence = 0.6
		}
	} else {
		scored := make([]ScoredLine, 0, len(lines))
		for _, l := range lines {
			scored = append(scored, Score(l))
		}
		ingredients, instructions = GroupScored(scored, DefaultThreshold)

		switch {
		case len(ingredients) > 0 && len(instructions) > 0:
			confidence = 0.5
		case len(ingredients) > 0 || len(instructions) > 0:
			confidence = 0.3
		default:
			confidence = 0.1
		}
	}

	// Reward complete, well-populated extractions; penalize partial ones.
	if len(ingredients) > 0 && len(instructions) > 0 {
		if len(ingredients) >= 3 && len(instructions) >= 2 {
			confidence = min(1.0, confidence+0.1)
		}
	} else {
		confidence *= 0.5
	}

	log.Debug().
		Int("ingredients", len(ingredients)).
		Int("instructions", len(instructions)).
		Float64("confidence", confidence).
		Msg("heuristic parse complete")

	return ingredients, instructions, confidence
}

// collectSpan gathers the non-blank lines of a section span.
func collectSpan(lines []string, span Span) []string {
	start, end := span.Start, span.End
	if start < 0 {
		start = 0
	}
	if end > len(lines) {
		end = len(lines)
	}
	var out []string
	for _, l := range lines[start:end] {
		if strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return out
}

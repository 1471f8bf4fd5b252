// Package heuristic classifies free-form note text into recipe ingredients
// and instructions. Scoring is additive over independent pattern, keyword,
// length and verb signals; ingredient and instruction scores are computed
// separately and reconciled by comparison, since cues overlap in natural
// text (an instruction step can mention a quantity).
package heuristic

import (
	"strings"
	"unicode/utf8"
)

// ScoredLine pairs a cleaned text line with its two class scores. The
// scores are independently clamped to [0,1] and do not sum to one.
type ScoredLine struct {
	Line        string
	Ingredient  float64
	Instruction float64
}

// CleanLine normalizes whitespace and strips a leading bullet glyph,
// keeping the content.
func CleanLine(line string) string {
	line = strings.Join(strings.Fields(line), " ")
	line = bulletPrefixRe.ReplaceAllString(line, "")
	return strings.TrimSpace(line)
}

// ScoreIngredient scores a line as likely being an ingredient, in [0,1].
// Pure function: no shared mutable state.
func ScoreIngredient(line string) float64 {
	if utf8.RuneCountInString(line) < 2 {
		return 0
	}

	score := 0.0
	lower := strings.ToLower(line)

	for _, re := range ingredientPatterns {
		if re.MatchString(line) {
			score += 0.4
			break // only the first pattern counts
		}
	}

	for _, word := range strings.Fields(lower) {
		clean := nonWordRe.ReplaceAllString(word, "")
		if _, ok := ingredientKeywords[clean]; ok {
			score += 0.3
			break // only the first keyword counts
		}
	}

	if leadingDigitRe.MatchString(line) {
		score += 0.2
	}
	if fractionRe.MatchString(line) {
		score += 0.2
	}

	// Very long lines read like instructions.
	if utf8.RuneCountInString(line) > 100 {
		score -= 0.3
	}

	for _, verb := range instructionVerbs {
		if strings.HasPrefix(lower, verb+" ") || strings.HasPrefix(lower, verb+".") {
			score -= 0.4
			break
		}
	}

	if numberedStepRe.MatchString(line) {
		score -= 0.3
	}

	return clamp01(score)
}

// ScoreInstruction scores a line as likely being an instruction step,
// in [0,1]. Pure function: no shared mutable state.
func ScoreInstruction(line string) float64 {
	if utf8.RuneCountInString(line) < 2 {
		return 0
	}

	score := 0.0
	lower := strings.ToLower(line)

	for _, re := range instructionPatterns {
		if re.MatchString(line) {
			score += 0.5
			break // only the first pattern counts
		}
	}

	words := strings.Fields(lower)
	if len(words) > 0 {
		first := nonWordRe.ReplaceAllString(words[0], "")
		if _, ok := instructionVerbSet[first]; ok {
			score += 0.4
		}
	}

	// Weaker signal: a cooking verb anywhere in the line.
	for _, verb := range instructionVerbs {
		if strings.Contains(lower, verb) {
			score += 0.1
			break
		}
	}

	// Instructions tend to be full sentences.
	if utf8.RuneCountInString(line) > 50 {
		score += 0.2
	}
	if timeHintRe.MatchString(lower) {
		score += 0.2
	}
	if tempHintRe.MatchString(lower) {
		score += 0.2
	}

	// Lines opening with quantity+unit read like ingredients.
	if quantityUnitRe.MatchString(line) {
		score -= 0.5
	}
	for _, word := range words {
		clean := nonWordRe.ReplaceAllString(word, "")
		if _, ok := commonUnits[clean]; ok {
			score -= 0.2
			break
		}
	}

	return clamp01(score)
}

// Score computes both class scores for a line.
func Score(line string) ScoredLine {
	return ScoredLine{
		Line:        line,
		Ingredient:  ScoreIngredient(line),
		Instruction: ScoreInstruction(line),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

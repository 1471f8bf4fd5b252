package recipe

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/enexcook/enexcook/internal/extract"
	"github.com/enexcook/enexcook/internal/heuristic"
)

// MinConfidence is the quality gate for heuristic extraction; results
// below it fall through to the raw-text tier.
const MinConfidence = 0.5

// descriptionMaxLen caps heuristic-tier descriptions.
const descriptionMaxLen = 500

// Extractor runs the tiered extraction state machine. The Scraper is
// optional; when nil, extraction starts at the heuristic tier.
type Extractor struct {
	Scraper Scraper
}

// Extract converts note HTML into a Recipe, trying the scraper
// capability, then the heuristic engine, then the raw-text fallback.
// It never fails; every tier miss is logged and absorbed. rawHTML is
// the unsanitized note markup: the scraper capability reads it so
// embedded structured-data scripts are still present, while the
// heuristic and fallback tiers work on the sanitized html.
func (e *Extractor) Extract(ctx context.Context, html, rawHTML, sourceURL, title string) Recipe {
	logger := log.With().Str("note", title).Logger()

	scrapeHTML := rawHTML
	if strings.TrimSpace(scrapeHTML) == "" {
		scrapeHTML = html
	}
	if sourceURL != "" && e.Scraper != nil && strings.TrimSpace(scrapeHTML) != "" {
		if r, ok := e.tryScraper(ctx, logger, scrapeHTML, sourceURL, title); ok {
			logger.Info().Str("tier", TierScraper.String()).Msg("extraction succeeded")
			return r
		}
	}

	if strings.TrimSpace(html) == "" {
		logger.Warn().Msg("empty note content")
		return e.fallback("<p>No content</p>", title)
	}

	if r, ok := e.tryHeuristic(logger, html, title); ok {
		logger.Info().Str("tier", TierHeuristic.String()).Msg("extraction succeeded")
		return r
	}

	logger.Info().Str("tier", TierFallback.String()).Msg("using raw-text fallback")
	return e.fallback(html, title)
}

// tryScraper invokes the capability. Errors and empty results are both
// tier misses.
func (e *Extractor) tryScraper(ctx context.Context, logger zerolog.Logger, html, sourceURL, title string) (Recipe, bool) {
	scraped, err := e.Scraper.Scrape(ctx, html, sourceURL)
	if err != nil {
		logger.Warn().Err(err).Str("url", sourceURL).Msg("scraper capability failed")
		return Recipe{}, false
	}
	if scraped == nil || (len(scraped.Ingredients) == 0 && len(scraped.Instructions) == 0) {
		logger.Warn().Str("url", sourceURL).Msg("scraper returned no ingredients or instructions")
		return Recipe{}, false
	}

	return Recipe{
		// The note title wins over whatever the site declares.
		Name:         title,
		Description:  scraped.Description,
		Ingredients:  scraped.Ingredients,
		Instructions: scraped.Instructions,
		PrepTime:     minutesToISO(scraped.PrepMinutes),
		CookTime:     minutesToISO(scraped.CookMinutes),
		TotalTime:    minutesToISO(scraped.TotalMinutes),
		Yield:        scraped.Yield,
		NeedsReview:  false,
	}, true
}

// tryHeuristic runs the classification engine and applies the confidence
// gate.
func (e *Extractor) tryHeuristic(logger zerolog.Logger, html, title string) (Recipe, bool) {
	ingredients, instructions, confidence := heuristic.Parse(html)

	if confidence < MinConfidence {
		logger.Warn().Float64("confidence", confidence).Msg("heuristic confidence below threshold")
		return Recipe{}, false
	}
	if len(ingredients) == 0 && len(instructions) == 0 {
		logger.Warn().Msg("heuristic extraction produced no content")
		return Recipe{}, false
	}

	return Recipe{
		Name:         title,
		Description:  extract.Description(html, descriptionMaxLen),
		Ingredients:  ingredients,
		Instructions: instructions,
		// The threshold already encodes acceptable quality.
		NeedsReview: false,
	}, true
}

// fallback places the whole note, converted to plain text, in the
// description for manual review. This tier cannot fail.
func (e *Extractor) fallback(html, title string) Recipe {
	return Recipe{
		Name:        title,
		Description: extract.PlainText(html),
		NeedsReview: true,
	}
}

// Package recipe defines the structured recipe model and the three-tier
// extraction orchestrator that turns note HTML into a Recipe. The
// orchestrator has no failure mode visible to callers: the final tier
// always produces a usable, if unstructured, result.
package recipe

import (
	"context"
	"fmt"
)

// Recipe is the unified extraction output, shaped for the Nextcloud
// Cookbook writer. Optional fields are empty when absent, never a
// sentinel value. Duration fields hold ISO-8601 strings like "PT1H30M".
type Recipe struct {
	Name          string
	Description   string
	Ingredients   []string
	Instructions  []string
	PrepTime      string
	CookTime      string
	TotalTime     string
	Yield         string
	Category      string
	Keywords      string
	ImageFilename string
	DateCreated   string
	DatePublished string
	NeedsReview   bool
}

// Tier records which extraction strategy produced a Recipe.
type Tier int

const (
	// TierScraper is the external site-metadata capability.
	TierScraper Tier = iota + 1
	// TierHeuristic is the pattern-based classification engine.
	TierHeuristic
	// TierFallback is the raw-text passthrough that never fails.
	TierFallback
)

func (t Tier) String() string {
	switch t {
	case TierScraper:
		return "scraper"
	case TierHeuristic:
		return "heuristic"
	case TierFallback:
		return "fallback"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// Scraped holds the optional fields a scraping capability can supply.
// Zero values mean the capability could not provide the field; minute
// counts of zero or less are treated as absent.
type Scraped struct {
	Title        string
	Description  string
	Ingredients  []string
	Instructions []string
	PrepMinutes  int
	CookMinutes  int
	TotalMinutes int
	Yield        string
}

// Scraper is the pluggable site-metadata capability tried first by the
// orchestrator. Implementations return an error or an empty result to
// signal a tier miss; both are treated identically.
type Scraper interface {
	Scrape(ctx context.Context, html, sourceURL string) (*Scraped, error)
}

// minutesToISO renders a minute count as an ISO-8601 duration. Zero and
// negative counts mean "absent" at this boundary, not "PT0M".
func minutesToISO(minutes int) string {
	if minutes <= 0 {
		return ""
	}
	if minutes >= 60 {
		hours := minutes / 60
		rest := minutes % 60
		if rest > 0 {
			return fmt.Sprintf("PT%dH%dM", hours, rest)
		}
		return fmt.Sprintf("PT%dH", hours)
	}
	return fmt.Sprintf("PT%dM", minutes)
}

package scrape

import (
	"context"
	"errors"

	"github.com/enexcook/enexcook/internal/recipe"
)

// Chain tries capabilities in order and returns the first result that
// carries any ingredients or instructions.
type Chain []recipe.Scraper

// Scrape implements recipe.Scraper.
func (c Chain) Scrape(ctx context.Context, html, sourceURL string) (*recipe.Scraped, error) {
	var lastErr error
	for _, s := range c {
		scraped, err := s.Scrape(ctx, html, sourceURL)
		if err != nil {
			lastErr = err
			continue
		}
		if scraped != nil && (len(scraped.Ingredients) > 0 || len(scraped.Instructions) > 0) {
			return scraped, nil
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, errors.New("no capability produced recipe data")
}

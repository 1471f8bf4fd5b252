package recipe

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// fakeScraper returns canned results for orchestrator tests.
type fakeScraper struct {
	result   *Scraped
	err      error
	calls    int
	lastHTML string
}

func (f *fakeScraper) Scrape(ctx context.Context, html, sourceURL string) (*Scraped, error) {
	f.calls++
	f.lastHTML = html
	return f.result, f.err
}

const recipeHTML = `
<h2>Ingredients</h2>
<ul>
  <li>2 cups flour</li>
  <li>1 cup sugar</li>
  <li>3 eggs</li>
</ul>
<h2>Instructions</h2>
<ol>
  <li>Mix the dry ingredients together thoroughly in a large bowl.</li>
  <li>Bake for 30 minutes at 350 degrees.</li>
</ol>`

const proseHTML = `<p>Saw a nice sunset today.</p><p>Should call back tomorrow.</p>`

func TestExtract_ScraperTierWins(t *testing.T) {
	fake := &fakeScraper{result: &Scraped{
		Title:        "Site Title",
		Description:  "From the site",
		Ingredients:  []string{"1 cup flour"},
		Instructions: []string{"Bake it."},
		PrepMinutes:  15,
		CookMinutes:  90,
		Yield:        "4 servings",
	}}
	e := &Extractor{Scraper: fake}

	r := e.Extract(context.Background(), recipeHTML, "", "https://example.com/r", "Note Title")

	if fake.calls != 1 {
		t.Fatalf("expected one scraper call, got %d", fake.calls)
	}
	if r.Name != "Note Title" {
		t.Fatalf("note title should win over scraped title, got %q", r.Name)
	}
	if r.PrepTime != "PT15M" || r.CookTime != "PT1H30M" {
		t.Fatalf("unexpected durations: prep=%q cook=%q", r.PrepTime, r.CookTime)
	}
	if r.TotalTime != "" {
		t.Fatalf("zero minutes must mean absent, got %q", r.TotalTime)
	}
	if r.NeedsReview {
		t.Fatal("scraper-tier result should not need review")
	}
}

func TestExtract_ScraperErrorFallsThrough(t *testing.T) {
	fake := &fakeScraper{err: errors.New("boom")}
	e := &Extractor{Scraper: fake}

	r := e.Extract(context.Background(), recipeHTML, "", "https://example.com/r", "Cake")

	if fake.calls != 1 {
		t.Fatalf("expected one scraper call, got %d", fake.calls)
	}
	if len(r.Ingredients) == 0 || len(r.Instructions) == 0 {
		t.Fatalf("expected heuristic tier to recover, got %+v", r)
	}
	if r.NeedsReview {
		t.Fatal("heuristic result above the gate should not need review")
	}
}

func TestExtract_ScraperEmptyResultFallsThrough(t *testing.T) {
	fake := &fakeScraper{result: &Scraped{Title: "only a title"}}
	e := &Extractor{Scraper: fake}

	r := e.Extract(context.Background(), recipeHTML, "", "https://example.com/r", "Cake")

	if len(r.Ingredients) == 0 {
		t.Fatalf("expected heuristic tier to recover, got %+v", r)
	}
}

func TestExtract_ScraperSeesRawMarkup(t *testing.T) {
	raw := `<p>clipped page</p><script type="application/ld+json">{"@type":"Recipe"}</script>`
	sanitized := `<p>clipped page</p>`
	fake := &fakeScraper{result: &Scraped{Ingredients: []string{"1 cup flour"}}}
	e := &Extractor{Scraper: fake}

	e.Extract(context.Background(), sanitized, raw, "https://example.com/r", "Clipped")

	if fake.lastHTML != raw {
		t.Fatalf("scraper must receive the unsanitized markup, got %q", fake.lastHTML)
	}
}

func TestExtract_EmptyRawFallsBackToSanitized(t *testing.T) {
	fake := &fakeScraper{result: &Scraped{Ingredients: []string{"1 egg"}}}
	e := &Extractor{Scraper: fake}

	e.Extract(context.Background(), recipeHTML, "", "https://example.com/r", "Cake")

	if fake.lastHTML != recipeHTML {
		t.Fatalf("scraper should see the sanitized html when no raw copy exists, got %q", fake.lastHTML)
	}
}

func TestExtract_NoSourceURLSkipsScraper(t *testing.T) {
	fake := &fakeScraper{err: errors.New("must not be called")}
	e := &Extractor{Scraper: fake}

	e.Extract(context.Background(), recipeHTML, "", "", "Cake")

	if fake.calls != 0 {
		t.Fatalf("scraper must be skipped without a source URL, got %d calls", fake.calls)
	}
}

func TestExtract_NilScraper(t *testing.T) {
	e := &Extractor{}

	r := e.Extract(context.Background(), recipeHTML, "", "https://example.com/r", "Cake")

	if len(r.Ingredients) != 3 || len(r.Instructions) != 2 {
		t.Fatalf("expected heuristic extraction, got %+v", r)
	}
}

func TestExtract_FallbackOnProse(t *testing.T) {
	e := &Extractor{}

	r := e.Extract(context.Background(), proseHTML, "", "", "Journal")

	if len(r.Ingredients) != 0 || len(r.Instructions) != 0 {
		t.Fatalf("prose must not classify, got %+v", r)
	}
	if !r.NeedsReview {
		t.Fatal("fallback output must be flagged for review")
	}
	if !strings.Contains(r.Description, "sunset") {
		t.Fatalf("fallback must keep the note text, got %q", r.Description)
	}
}

func TestExtract_EmptyContent(t *testing.T) {
	e := &Extractor{}

	r := e.Extract(context.Background(), "   ", "", "", "Blank")

	if !r.NeedsReview {
		t.Fatal("empty note must be flagged for review")
	}
	if !strings.Contains(r.Description, "No content") {
		t.Fatalf("expected placeholder description, got %q", r.Description)
	}
	if r.Name != "Blank" {
		t.Fatalf("title must survive, got %q", r.Name)
	}
}

func TestMinutesToISO(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{0, ""},
		{-5, ""},
		{1, "PT1M"},
		{45, "PT45M"},
		{60, "PT1H"},
		{90, "PT1H30M"},
		{150, "PT2H30M"},
	}
	for _, tc := range cases {
		if got := minutesToISO(tc.minutes); got != tc.want {
			t.Errorf("minutesToISO(%d) = %q, want %q", tc.minutes, got, tc.want)
		}
	}
}

func TestTierString(t *testing.T) {
	if TierScraper.String() != "scraper" || TierHeuristic.String() != "heuristic" || TierFallback.String() != "fallback" {
		t.Fatal("unexpected tier names")
	}
}

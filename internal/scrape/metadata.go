// Package scrape provides Tier-1 capabilities that read structured recipe
// data out of note HTML before the heuristic engine has to guess.
package scrape

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/enexcook/enexcook/internal/recipe"
)

// ErrNoMetadata signals that the HTML carries no usable schema.org
// Recipe object. The orchestrator treats it like any other tier miss.
var ErrNoMetadata = errors.New("no recipe metadata found")

// Metadata extracts schema.org Recipe objects embedded as JSON-LD, the
// format used by web-clipped recipe pages.
type Metadata struct{}

// Scrape implements recipe.Scraper.
func (Metadata) Scrape(_ context.Context, input, _ string) (*recipe.Scraped, error) {
	root, err := html.Parse(strings.NewReader(input))
	if err != nil || root == nil {
		return nil, ErrNoMetadata
	}

	for _, payload := range jsonLDScripts(root) {
		var doc any
		if err := json.Unmarshal([]byte(payload), &doc); err != nil {
			continue
		}
		if obj := findRecipeObject(doc); obj != nil {
			return scrapedFromObject(obj), nil
		}
	}
	return nil, ErrNoMetadata
}

// jsonLDScripts collects the contents of every
// <script type="application/ld+json"> element in document order.
func jsonLDScripts(root *html.Node) []string {
	var payloads []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && strings.EqualFold(n.Data, "script") {
			for _, attr := range n.Attr {
				if strings.EqualFold(attr.Key, "type") && strings.EqualFold(strings.TrimSpace(attr.Val), "application/ld+json") {
					var b strings.Builder
					for c := n.FirstChild; c != nil; c = c.NextSibling {
						if c.Type == html.TextNode {
							b.WriteString(c.Data)
						}
					}
					if s := strings.TrimSpace(b.String()); s != "" {
						payloads = append(payloads, s)
					}
					break
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return payloads
}

// findRecipeObject locates the first object typed as a schema.org Recipe,
// descending into top-level arrays and @graph containers.
func findRecipeObject(doc any) map[string]any {
	switch v := doc.(type) {
	case map[string]any:
		if isRecipeType(v["@type"]) {
			return v
		}
		if graph, ok := v["@graph"]; ok {
			return findRecipeObject(graph)
		}
	case []any:
		for _, item := range v {
			if obj := findRecipeObject(item); obj != nil {
				return obj
			}
		}
	}
	return nil
}

func isRecipeType(t any) bool {
	switch v := t.(type) {
	case string:
		return strings.EqualFold(v, "Recipe")
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && strings.EqualFold(s, "Recipe") {
				return true
			}
		}
	}
	return false
}

func scrapedFromObject(obj map[string]any) *recipe.Scraped {
	s := &recipe.Scraped{
		Title:        stringField(obj, "name"),
		Description:  stringField(obj, "description"),
		Ingredients:  stringList(obj["recipeIngredient"]),
		Instructions: instructionList(obj["recipeInstructions"]),
		PrepMinutes:  durationMinutes(stringField(obj, "prepTime")),
		CookMinutes:  durationMinutes(stringField(obj, "cookTime")),
		TotalMinutes: durationMinutes(stringField(obj, "totalTime")),
		Yield:        yieldField(obj["recipeYield"]),
	}
	if len(s.Ingredients) == 0 {
		// Older markup uses the plural key.
		s.Ingredients = stringList(obj["ingredients"])
	}
	return s
}

func stringField(obj map[string]any, key string) string {
	if s, ok := obj[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func stringList(v any) []string {
	switch items := v.(type) {
	case string:
		if s := strings.TrimSpace(items); s != "" {
			return []string{s}
		}
	case []any:
		var out []string
		for _, item := range items {
			if s, ok := item.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			}
		}
		return out
	}
	return nil
}

// instructionList flattens the many shapes recipeInstructions takes:
// a newline-joined string, a list of strings, HowToStep objects, or
// HowToSection objects holding steps.
func instructionList(v any) []string {
	switch items := v.(type) {
	case string:
		var out []string
		for _, line := range strings.Split(items, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				out = append(out, line)
			}
		}
		return out
	case []any:
		var out []string
		for _, item := range items {
			switch step := item.(type) {
			case string:
				if s := strings.TrimSpace(step); s != "" {
					out = append(out, s)
				}
			case map[string]any:
				if text := stringField(step, "text"); text != "" {
					out = append(out, text)
				} else if nested, ok := step["itemListElement"]; ok {
					out = append(out, instructionList(nested)...)
				}
			}
		}
		return out
	}
	return nil
}

func yieldField(v any) string {
	switch y := v.(type) {
	case string:
		return strings.TrimSpace(y)
	case float64:
		return strconv.FormatFloat(y, 'f', -1, 64)
	case []any:
		if len(y) > 0 {
			return yieldField(y[0])
		}
	}
	return ""
}

var isoDurationRe = regexp.MustCompile(`(?i)^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// durationMinutes converts an ISO-8601 duration to whole minutes,
// returning 0 for anything unparseable.
func durationMinutes(s string) int {
	m := isoDurationRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0
	}
	days, _ := strconv.Atoi(zeroIfEmpty(m[1]))
	hours, _ := strconv.Atoi(zeroIfEmpty(m[2]))
	minutes, _ := strconv.Atoi(zeroIfEmpty(m[3]))
	return days*24*60 + hours*60 + minutes
}

func zeroIfEmpty(s string) string {
	if s == "" {
		return "0"
	}
	return s
}

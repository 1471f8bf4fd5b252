// Package writer serializes extracted recipes into the Nextcloud
// Cookbook on-disk layout: one folder per recipe holding a schema.org
// recipe.json and, when available, the note's first image as full.<ext>.
package writer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/unicode/norm"

	"github.com/enexcook/enexcook/internal/enex"
	"github.com/enexcook/enexcook/internal/recipe"
)

// maxFolderNameLength keeps folder names portable across filesystems.
const maxFolderNameLength = 200

var (
	invalidCharsRe = regexp.MustCompile(`[/\\:*?"<>|]`)
	spaceRunsRe    = regexp.MustCompile(`\s+`)
)

// mimeExtensions maps image MIME types to the extension of the written
// full.* file.
var mimeExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
	"image/bmp":  "bmp",
}

// recipeJSON is the schema.org Recipe shape Nextcloud Cookbook reads.
// Optional fields are omitted when empty; the ingredient and instruction
// arrays are always present, even when empty.
type recipeJSON struct {
	Type          string   `json:"@type"`
	Name          string   `json:"name"`
	Ingredients   []string `json:"recipeIngredient"`
	Instructions  []string `json:"recipeInstructions"`
	Description   string   `json:"description,omitempty"`
	PrepTime      string   `json:"prepTime,omitempty"`
	CookTime      string   `json:"cookTime,omitempty"`
	TotalTime     string   `json:"totalTime,omitempty"`
	Yield         string   `json:"recipeYield,omitempty"`
	Category      string   `json:"recipeCategory,omitempty"`
	Keywords      string   `json:"keywords,omitempty"`
	Image         string   `json:"image,omitempty"`
	DateCreated   string   `json:"dateCreated,omitempty"`
	DatePublished string   `json:"datePublished,omitempty"`
}

// SanitizeFolderName makes a recipe name filesystem-safe: NFC
// normalization, invalid characters removed, whitespace collapsed, and a
// length cap broken at a word boundary.
func SanitizeFolderName(name string) string {
	name = norm.NFC.String(name)
	name = invalidCharsRe.ReplaceAllString(name, "")
	name = strings.TrimSpace(spaceRunsRe.ReplaceAllString(name, " "))
	if name == "" {
		return "Untitled Recipe"
	}
	if runes := []rune(name); len(runes) > maxFolderNameLength {
		name = string(runes[:maxFolderNameLength])
		if i := strings.LastIndex(name, " "); i > 0 {
			name = name[:i]
		}
	}
	return name
}

// uniquePath appends " (2)", " (3)", … until the path does not exist.
func uniquePath(base string) string {
	if _, err := os.Stat(base); os.IsNotExist(err) {
		return base
	}
	for counter := 2; ; counter++ {
		candidate := fmt.Sprintf("%s (%d)", base, counter)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

// Write creates the recipe folder and its contents, returning the folder
// path. In dry-run mode nothing touches the disk.
func Write(r *recipe.Recipe, resources []enex.Resource, outputDir string, dryRun bool) (string, error) {
	dir := filepath.Join(outputDir, SanitizeFolderName(r.Name))
	if !dryRun {
		dir = uniquePath(dir)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create recipe folder: %w", err)
		}
	}

	if img := firstImage(resources); img != nil {
		filename, err := writeImage(img, dir, dryRun)
		if err != nil {
			// A failed image write is not worth losing the recipe over.
			log.Warn().Err(err).Str("recipe", r.Name).Msg("could not write image")
		} else {
			r.ImageFilename = filename
		}
	}

	payload := buildJSON(r)
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode recipe json: %w", err)
	}
	data = append(data, '\n')

	if dryRun {
		log.Info().Str("folder", dir).Msg("[dry run] would write recipe.json")
		return dir, nil
	}
	if err := os.WriteFile(filepath.Join(dir, "recipe.json"), data, 0o644); err != nil {
		return "", fmt.Errorf("write recipe json: %w", err)
	}
	log.Info().Str("folder", filepath.Base(dir)).Msg("wrote recipe")
	return dir, nil
}

func firstImage(resources []enex.Resource) *enex.Resource {
	for i := range resources {
		if _, ok := mimeExtensions[strings.ToLower(resources[i].MimeType)]; ok {
			return &resources[i]
		}
	}
	return nil
}

func writeImage(res *enex.Resource, dir string, dryRun bool) (string, error) {
	ext, ok := mimeExtensions[strings.ToLower(res.MimeType)]
	if !ok {
		ext = "jpg"
	}
	filename := "full." + ext
	if dryRun {
		log.Info().Str("file", filename).Int("bytes", len(res.Data)).Msg("[dry run] would write image")
		return filename, nil
	}
	if err := os.WriteFile(filepath.Join(dir, filename), res.Data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return filename, nil
}

func buildJSON(r *recipe.Recipe) recipeJSON {
	name := r.Name
	if strings.TrimSpace(name) == "" {
		name = "Untitled Recipe"
	}
	ingredients := r.Ingredients
	if ingredients == nil {
		ingredients = []string{}
	}
	instructions := r.Instructions
	if instructions == nil {
		instructions = []string{}
	}

	out := recipeJSON{
		Type:         "Recipe",
		Name:         name,
		Ingredients:  ingredients,
		Instructions: instructions,
		Description:  r.Description,
		PrepTime:     r.PrepTime,
		CookTime:     r.CookTime,
		TotalTime:    r.TotalTime,
		Yield:        r.Yield,
		Category:     r.Category,
		Keywords:     r.Keywords,
		Image:        r.ImageFilename,
	}
	if r.DateCreated != "" {
		out.DateCreated = r.DateCreated
		out.DatePublished = dateOnly(r.DateCreated)
	} else if r.DatePublished != "" {
		out.DatePublished = r.DatePublished
	}
	return out
}

// dateOnly reduces an RFC 3339 timestamp to YYYY-MM-DD.
func dateOnly(iso string) string {
	if len(iso) >= 10 {
		return iso[:10]
	}
	return iso
}

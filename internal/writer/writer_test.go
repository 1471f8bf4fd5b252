package writer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/enexcook/enexcook/internal/enex"
	"github.com/enexcook/enexcook/internal/recipe"
)

func TestSanitizeFolderName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Banana Bread", "Banana Bread"},
		{"Mom's Lasagna: The Best", "Mom's Lasagna The Best"},
		{`A/B\C:D*E?F"G<H>I|J`, "ABCDEFGHIJ"},
		{"  lots   of \t spaces  ", "lots of spaces"},
		{"", "Untitled Recipe"},
		{`///`, "Untitled Recipe"},
		{"Crème Brûlée", "Crème Brûlée"},
	}
	for _, tc := range cases {
		if got := SanitizeFolderName(tc.in); got != tc.want {
			t.Errorf("SanitizeFolderName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitizeFolderName_CapsAtWordBoundary(t *testing.T) {
	long := strings.Repeat("word ", 60) // 300 chars
	got := SanitizeFolderName(long)
	if len([]rune(got)) > maxFolderNameLength {
		t.Fatalf("name too long: %d runes", len([]rune(got)))
	}
	if strings.HasSuffix(got, " ") || !strings.HasSuffix(got, "word") {
		t.Fatalf("expected cut at word boundary, got %q", got)
	}
}

func TestWrite_RecipeJSON(t *testing.T) {
	dir := t.TempDir()
	r := &recipe.Recipe{
		Name:         "Banana Bread",
		Description:  "Moist and easy.",
		Ingredients:  []string{"3 bananas", "2 cups flour"},
		Instructions: []string{"Mash.", "Bake."},
		PrepTime:     "PT15M",
		Yield:        "1 loaf",
		Category:     "Baking",
		Keywords:     "baking, dessert",
		DateCreated:  "2024-01-10T08:30:00Z",
	}

	folder, err := Write(r, nil, dir, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(folder, "recipe.json"))
	if err != nil {
		t.Fatal(err)
	}

	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got["@type"] != "Recipe" || got["name"] != "Banana Bread" {
		t.Errorf("header fields = %v %v", got["@type"], got["name"])
	}
	if ing, ok := got["recipeIngredient"].([]any); !ok || len(ing) != 2 {
		t.Errorf("recipeIngredient = %v", got["recipeIngredient"])
	}
	if got["dateCreated"] != "2024-01-10T08:30:00Z" {
		t.Errorf("dateCreated = %v", got["dateCreated"])
	}
	if got["datePublished"] != "2024-01-10" {
		t.Errorf("datePublished should derive from dateCreated, got %v", got["datePublished"])
	}
	if _, present := got["cookTime"]; present {
		t.Error("empty optional fields must be omitted")
	}
}

func TestWrite_EmptyListsStayArrays(t *testing.T) {
	dir := t.TempDir()
	r := &recipe.Recipe{Name: "Bare", NeedsReview: true}

	folder, err := Write(r, nil, dir, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(folder, "recipe.json"))
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if !strings.Contains(text, `"recipeIngredient": []`) || !strings.Contains(text, `"recipeInstructions": []`) {
		t.Fatalf("expected empty arrays, got:\n%s", text)
	}
}

func TestWrite_Image(t *testing.T) {
	dir := t.TempDir()
	r := &recipe.Recipe{Name: "With Photo"}
	resources := []enex.Resource{
		{MimeType: "application/pdf", Data: []byte("not an image")},
		{MimeType: "image/png", Data: []byte("png bytes")},
	}

	folder, err := Write(r, resources, dir, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	img, err := os.ReadFile(filepath.Join(folder, "full.png"))
	if err != nil {
		t.Fatalf("image not written: %v", err)
	}
	if string(img) != "png bytes" {
		t.Error("image data mismatch")
	}
	if r.ImageFilename != "full.png" {
		t.Errorf("ImageFilename = %q", r.ImageFilename)
	}
}

func TestWrite_DuplicateNamesGetSuffix(t *testing.T) {
	dir := t.TempDir()

	first, err := Write(&recipe.Recipe{Name: "Chili"}, nil, dir, false)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Write(&recipe.Recipe{Name: "Chili"}, nil, dir, false)
	if err != nil {
		t.Fatal(err)
	}
	third, err := Write(&recipe.Recipe{Name: "Chili"}, nil, dir, false)
	if err != nil {
		t.Fatal(err)
	}

	if filepath.Base(first) != "Chili" {
		t.Errorf("first = %q", first)
	}
	if filepath.Base(second) != "Chili (2)" {
		t.Errorf("second = %q", second)
	}
	if filepath.Base(third) != "Chili (3)" {
		t.Errorf("third = %q", third)
	}
}

func TestWrite_DryRunTouchesNothing(t *testing.T) {
	dir := t.TempDir()
	r := &recipe.Recipe{Name: "Ghost", Ingredients: []string{"1 cup air"}}

	if _, err := Write(r, []enex.Resource{{MimeType: "image/jpeg", Data: []byte("x")}}, dir, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("dry run created files: %v", entries)
	}
}

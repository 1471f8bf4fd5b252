package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// validationIssue names one broken recipe folder.
type validationIssue struct {
	Folder string
	Issue  string
}

// Validate re-reads every */recipe.json under outputDir and checks the
// fields Nextcloud Cookbook requires. It reports results on stdout and
// returns false when any recipe is invalid.
func Validate(outputDir string) (bool, error) {
	paths, err := filepath.Glob(filepath.Join(outputDir, "*", "recipe.json"))
	if err != nil {
		return false, fmt.Errorf("scan output: %w", err)
	}

	var issues []validationIssue
	valid := 0
	for _, path := range paths {
		folder := filepath.Base(filepath.Dir(path))
		if issue := checkRecipeFile(path); issue != "" {
			issues = append(issues, validationIssue{Folder: folder, Issue: issue})
			continue
		}
		valid++
	}

	fmt.Println()
	fmt.Println("============================================================")
	fmt.Println("VALIDATION RESULTS")
	fmt.Println("============================================================")
	fmt.Printf("Total recipes found: %d\n", len(paths))
	fmt.Printf("Valid:               %d\n", valid)
	fmt.Printf("Invalid:             %d\n", len(issues))

	if len(issues) > 0 {
		fmt.Printf("\nIssues (%d):\n", len(issues))
		for i, issue := range issues {
			if i == 20 {
				fmt.Printf("  ... and %d more\n", len(issues)-20)
				break
			}
			fmt.Printf("  [%s] %s\n", issue.Folder, issue.Issue)
		}
		return false, nil
	}

	fmt.Println("\nAll recipes validated successfully!")
	return true, nil
}

func checkRecipeFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Sprintf("error reading: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Sprintf("invalid JSON: %v", err)
	}

	for _, field := range []string{"@type", "name", "recipeIngredient", "recipeInstructions"} {
		if _, ok := doc[field]; !ok {
			return fmt.Sprintf("missing required field: %s", field)
		}
	}
	if t, _ := doc["@type"].(string); t != "Recipe" {
		return fmt.Sprintf("invalid @type: %v", doc["@type"])
	}
	if _, ok := doc["recipeIngredient"].([]any); !ok {
		return "recipeIngredient is not an array"
	}
	if _, ok := doc["recipeInstructions"].([]any); !ok {
		return "recipeInstructions is not an array"
	}
	return ""
}

package app

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Config holds runtime configuration for a migration run.
type Config struct {
	// Inputs are explicit .enex file paths; InputDir, when set, is
	// scanned for *.enex instead.
	Inputs    []string
	InputDir  string
	OutputDir string

	// Behavior
	DryRun   bool
	Validate bool
	Verbose  bool
	LogFile  string

	// Optional LLM scraper capability (OpenAI-compatible endpoint).
	LLMBaseURL string
	LLMModel   string
	LLMAPIKey  string
}

// CollectInputs resolves the configured ENEX inputs to a sorted list of
// existing files.
func CollectInputs(cfg Config) ([]string, error) {
	if cfg.InputDir != "" {
		info, err := os.Stat(cfg.InputDir)
		if err != nil {
			return nil, fmt.Errorf("input directory not found: %s", cfg.InputDir)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("not a directory: %s", cfg.InputDir)
		}
		files, err := filepath.Glob(filepath.Join(cfg.InputDir, "*.enex"))
		if err != nil {
			return nil, fmt.Errorf("scan input directory: %w", err)
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("no .enex files found in: %s", cfg.InputDir)
		}
		sort.Strings(files)
		return files, nil
	}

	if len(cfg.Inputs) == 0 {
		return nil, fmt.Errorf("no enex files given")
	}
	for _, f := range cfg.Inputs {
		if _, err := os.Stat(f); err != nil {
			return nil, fmt.Errorf("enex file not found: %s", f)
		}
		if !strings.EqualFold(filepath.Ext(f), ".enex") {
			return nil, fmt.Errorf("not an enex file: %s", f)
		}
	}
	return cfg.Inputs, nil
}

// CategoryFromFilename derives the recipe category from the export file
// name, e.g. "Main Dishes.enex" becomes "Main Dishes". Exports of
// clipped articles get a review category since they often duplicate
// proper recipe notes.
func CategoryFromFilename(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if strings.Contains(strings.ToLower(name), "interesting articles") {
		return "Review - Possible Duplicate"
	}
	return name
}

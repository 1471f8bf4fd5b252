package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
)

// Stats tracks the outcome of a migration run.
type Stats struct {
	Total           int
	Success         int
	NeedsReview     int
	Failed          int
	ImagesExtracted int
	ByCategory      map[string]int
	Errors          []NoteError
	Start           time.Time
}

// NoteError records a single note that could not be migrated.
type NoteError struct {
	File  string `json:"file"`
	Note  string `json:"note"`
	Error string `json:"error"`
}

// NewStats returns a Stats with the clock started.
func NewStats() *Stats {
	return &Stats{ByCategory: map[string]int{}, Start: time.Now()}
}

// RecordCategory increments the per-category count.
func (s *Stats) RecordCategory(category string) {
	s.ByCategory[category]++
}

// RecordError notes a failed migration for the summary report.
func (s *Stats) RecordError(file, note string, err error) {
	s.Errors = append(s.Errors, NoteError{File: file, Note: note, Error: err.Error()})
}

// Duration is the elapsed run time.
func (s *Stats) Duration() time.Duration {
	return time.Since(s.Start)
}

// summaryJSON is the migration_summary.json layout.
type summaryJSON struct {
	RunDate         string         `json:"run_date"`
	Mode            string         `json:"mode"`
	DurationSeconds float64        `json:"duration_seconds"`
	Summary         summaryCounts  `json:"summary"`
	ByCategory      map[string]int `json:"by_category"`
	Issues          []NoteError    `json:"issues"`
}

type summaryCounts struct {
	TotalNotes      int `json:"total_notes"`
	Successful      int `json:"successful"`
	NeedsReview     int `json:"needs_review"`
	Failed          int `json:"failed"`
	ImagesExtracted int `json:"images_extracted"`
}

// WriteSummary writes migration_summary.json into the output directory.
func (s *Stats) WriteSummary(outputDir string, dryRun bool) error {
	payload := summaryJSON{
		RunDate:         time.Now().Format(time.RFC3339),
		Mode:            "production",
		DurationSeconds: s.Duration().Round(10 * time.Millisecond).Seconds(),
		Summary: summaryCounts{
			TotalNotes:      s.Total,
			Successful:      s.Success,
			NeedsReview:     s.NeedsReview,
			Failed:          s.Failed,
			ImagesExtracted: s.ImagesExtracted,
		},
		ByCategory: s.ByCategory,
		Issues:     s.Errors,
	}
	if payload.Issues == nil {
		payload.Issues = []NoteError{}
	}
	if dryRun {
		payload.Mode = "dry-run"
		log.Info().Msg("[dry run] would write migration_summary.json")
		return nil
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	data = append(data, '\n')
	path := filepath.Join(outputDir, "migration_summary.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	log.Info().Str("path", path).Msg("wrote migration summary")
	return nil
}

// Print writes a human-readable summary to stdout.
func (s *Stats) Print() {
	fmt.Println()
	fmt.Println("============================================================")
	fmt.Println("MIGRATION SUMMARY")
	fmt.Println("============================================================")
	fmt.Printf("Total notes processed: %d\n", s.Total)
	fmt.Printf("  Successful:          %d\n", s.Success)
	fmt.Printf("  Needs Review:        %d\n", s.NeedsReview)
	fmt.Printf("  Failed:              %d\n", s.Failed)
	fmt.Printf("  Images extracted:    %d\n", s.ImagesExtracted)
	fmt.Printf("Duration:              %.1f seconds\n", s.Duration().Seconds())
	fmt.Println()

	if len(s.ByCategory) > 0 {
		fmt.Println("By Category:")
		categories := make([]string, 0, len(s.ByCategory))
		for c := range s.ByCategory {
			categories = append(categories, c)
		}
		sort.Strings(categories)
		for _, c := range categories {
			fmt.Printf("  %s: %d\n", c, s.ByCategory[c])
		}
		fmt.Println()
	}

	if len(s.Errors) > 0 {
		fmt.Printf("Errors (%d):\n", len(s.Errors))
		for i, e := range s.Errors {
			if i == 10 {
				fmt.Printf("  ... and %d more\n", len(s.Errors)-10)
				break
			}
			fmt.Printf("  [%s] %s: %s\n", e.File, e.Note, e.Error)
		}
		fmt.Println()
	}
}

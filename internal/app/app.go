// Package app wires the migration pipeline: ENEX parsing, tiered recipe
// extraction, Cookbook output, and run statistics.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/enexcook/enexcook/internal/enex"
	"github.com/enexcook/enexcook/internal/llm"
	"github.com/enexcook/enexcook/internal/recipe"
	"github.com/enexcook/enexcook/internal/scrape"
	"github.com/enexcook/enexcook/internal/writer"
)

// ErrNotesFailed is returned when the run completed but some notes could
// not be migrated. The CLI maps it to a non-zero exit code.
var ErrNotesFailed = errors.New("some notes failed to migrate")

// App runs a migration.
type App struct {
	cfg       Config
	extractor *recipe.Extractor
}

// New builds the App and its scraper capability chain. The schema.org
// metadata scraper is always available; the LLM capability joins the
// chain only when a model is configured.
func New(cfg Config) *App {
	capabilities := scrape.Chain{scrape.Metadata{}}
	if cfg.LLMModel != "" {
		log.Info().Str("model", cfg.LLMModel).Msg("LLM scraper capability enabled")
		capabilities = append(capabilities, &scrape.LLM{
			Client: llm.New(cfg.LLMBaseURL, cfg.LLMAPIKey),
			Model:  cfg.LLMModel,
		})
	}
	return &App{
		cfg:       cfg,
		extractor: &recipe.Extractor{Scraper: capabilities},
	}
}

// Run processes every input file and writes the summary. It returns
// ErrNotesFailed when any note failed; other errors abort the run.
func (a *App) Run(ctx context.Context) error {
	files, err := CollectInputs(a.cfg)
	if err != nil {
		return err
	}

	if !a.cfg.DryRun {
		if err := os.MkdirAll(a.cfg.OutputDir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	log.Info().
		Int("files", len(files)).
		Str("output", a.cfg.OutputDir).
		Bool("dryRun", a.cfg.DryRun).
		Msg("starting migration")

	stats := NewStats()
	for _, path := range files {
		if err := a.processFile(ctx, path, stats); err != nil {
			return err
		}
	}

	if err := stats.WriteSummary(a.cfg.OutputDir, a.cfg.DryRun); err != nil {
		log.Error().Err(err).Msg("failed to write summary")
	}
	stats.Print()

	if a.cfg.Validate && !a.cfg.DryRun {
		if _, err := Validate(a.cfg.OutputDir); err != nil {
			log.Error().Err(err).Msg("validation failed")
		}
	}

	if stats.Failed > 0 {
		log.Warn().Int("failed", stats.Failed).Msg("migration completed with errors")
		return ErrNotesFailed
	}
	log.Info().Msg("migration completed successfully")
	return nil
}

func (a *App) processFile(ctx context.Context, path string, stats *Stats) error {
	category := CategoryFromFilename(path)
	log.Info().Str("file", path).Str("category", category).Msg("processing export")

	if count, err := enex.CountNotes(path); err == nil {
		log.Info().Int("notes", count).Msg("found notes")
	}

	return enex.Parse(path, func(note enex.Note) error {
		a.processNote(ctx, note, category, path, stats)
		return nil
	})
}

// processNote extracts one note and writes the result. Failures are
// recorded, never propagated; one bad note must not stop the batch.
func (a *App) processNote(ctx context.Context, note enex.Note, category, enexPath string, stats *Stats) {
	stats.Total++

	r := a.extractor.Extract(ctx, note.ContentHTML, note.RawContentHTML, note.SourceURL, note.Title)

	// Attach note metadata that is not the extraction engine's concern.
	r.Name = note.Title
	r.Keywords = strings.Join(note.Tags, ", ")
	r.DateCreated = note.Created.Format(time.RFC3339)
	r.DatePublished = note.Created.Format("2006-01-02")
	if r.NeedsReview {
		r.Category = "Needs Review"
	} else {
		r.Category = category
	}

	if note.FirstImage() != nil {
		stats.ImagesExtracted++
	}

	if _, err := writer.Write(&r, note.Resources, a.cfg.OutputDir, a.cfg.DryRun); err != nil {
		stats.Failed++
		stats.RecordError(enexPath, note.Title, err)
		log.Error().Err(err).Str("note", note.Title).Msg("failed to write recipe")
		return
	}

	if r.NeedsReview {
		stats.NeedsReview++
	} else {
		stats.Success++
	}
	stats.RecordCategory(r.Category)
}

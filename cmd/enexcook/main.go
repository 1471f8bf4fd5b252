// Command enexcook migrates Evernote recipe exports (.enex) into the
// Nextcloud Cookbook folder format.
//
// Usage:
//
//	enexcook --input-dir "Imported Notes" ./output
//	enexcook Appetizers.enex Desserts.enex ./output
//	enexcook --validate ./output
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/enexcook/enexcook/internal/app"
)

func main() {
	var (
		inputDir     string
		configPath   string
		logFile      string
		dryRun       bool
		validateOnly bool
		verbose      bool
		llmBaseURL   string
		llmModel     string
		llmKey       string
	)

	flag.StringVar(&inputDir, "input-dir", "", "Directory containing .enex files (alternative to positional files)")
	flag.StringVar(&configPath, "config", "", "Path to optional YAML config file")
	flag.StringVar(&logFile, "log-file", "", "Also write logs to this file")
	flag.BoolVar(&dryRun, "dry-run", false, "Show what would be created without writing files")
	flag.BoolVar(&validateOnly, "validate", false, "Validate output after migration (or standalone with just an output dir)")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.StringVar(&llmBaseURL, "llm.base", os.Getenv("LLM_BASE_URL"), "OpenAI-compatible base URL for the optional LLM scraper")
	flag.StringVar(&llmModel, "llm.model", os.Getenv("LLM_MODEL"), "Model name for the optional LLM scraper")
	flag.StringVar(&llmKey, "llm.key", os.Getenv("LLM_API_KEY"), "API key for the optional LLM scraper")
	flag.Parse()

	cfg := app.Config{
		InputDir:   inputDir,
		DryRun:     dryRun,
		Validate:   validateOnly,
		Verbose:    verbose,
		LogFile:    logFile,
		LLMBaseURL: llmBaseURL,
		LLMModel:   llmModel,
		LLMAPIKey:  llmKey,
	}

	args := flag.Args()
	switch {
	case validateOnly && len(args) == 1 && inputDir == "":
		// Standalone validation of an existing output directory.
		cfg.OutputDir = args[0]
	case inputDir != "":
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "Error: output directory required")
			os.Exit(1)
		}
		cfg.OutputDir = args[0]
	default:
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "Error: need at least one ENEX file and an output directory")
			fmt.Fprintln(os.Stderr, "Use --help for usage information")
			os.Exit(1)
		}
		cfg.OutputDir = args[len(args)-1]
		cfg.Inputs = args[:len(args)-1]
	}

	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		app.ApplyFileConfig(&cfg, fc)
	}

	setupLogging(cfg)

	// Standalone validation needs no migration run.
	if validateOnly && len(cfg.Inputs) == 0 && cfg.InputDir == "" {
		ok, err := app.Validate(cfg.OutputDir)
		if err != nil {
			log.Error().Err(err).Msg("validation failed")
			os.Exit(1)
		}
		if !ok {
			os.Exit(1)
		}
		return
	}

	if err := app.New(cfg).Run(context.Background()); err != nil {
		if errors.Is(err, app.ErrNotesFailed) {
			os.Exit(1)
		}
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

func setupLogging(cfg app.Config) {
	zerolog.TimeFieldFormat = time.RFC3339
	var writers []io.Writer
	writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cannot open log file: %v\n", err)
		} else {
			writers = append(writers, f)
		}
	}
	log.Logger = log.Output(zerolog.MultiLevelWriter(writers...))

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

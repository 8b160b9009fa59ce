package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dvloznov/retail-recon/internal/config"
	"github.com/dvloznov/retail-recon/internal/csvio"
	"github.com/dvloznov/retail-recon/internal/engine"
	"github.com/dvloznov/retail-recon/internal/gcsio"
	"github.com/dvloznov/retail-recon/internal/logger"
	"github.com/dvloznov/retail-recon/internal/report"
)

func main() {
	input := flag.String("input", "", "Path or gs:// URI of the transaction feed CSV (overrides RECON_INPUT)")
	output := flag.String("output", "", "Directory for the output CSVs (overrides RECON_OUTPUT_DIR)")
	envFile := flag.String("env", ".env", "Path to the .env file")
	dayFirst := flag.Bool("day-first", true, "Parse feed timestamps day-before-month (overrides RECON_DAY_FIRST)")
	flag.Parse()

	cfg := config.Load(*envFile)
	if *input != "" {
		cfg.InputPath = *input
	}
	if *output != "" {
		cfg.OutputDir = *output
	}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "day-first" {
			cfg.DayFirst = *dayFirst
		}
	})

	log := logger.New(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	log.Info().
		Str("input", cfg.InputPath).
		Str("output_dir", cfg.OutputDir).
		Bool("day_first", cfg.DayFirst).
		Msg("Starting reconciliation run")

	raw, err := loadFeed(ctx, cfg.InputPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Loading feed failed")
	}
	log.Info().Int("rows", len(raw.Rows)).Msg("Feed loaded")

	result, err := engine.Run(ctx, raw, engine.Options{DayFirst: cfg.DayFirst})
	if err != nil {
		log.Fatal().Err(err).Msg("Reconciliation failed")
	}

	summary := result.Summary()
	log.Info().
		Int("total", summary.Total).
		Int("matched", summary.Matched).
		Int("unmatched", summary.Unmatched).
		Int("exceptions", summary.Exceptions).
		Msg("Reconciliation completed")

	files, err := csvio.WriteResult(cfg.OutputDir, result)
	if err != nil {
		log.Fatal().Err(err).Msg("Writing outputs failed")
	}
	for _, f := range files {
		log.Debug().Str("file", f).Msg("Output written")
	}

	if cfg.UploadBucket != "" {
		prefix := "runs/" + time.Now().UTC().Format("2006-01-02T15-04-05")
		if err := gcsio.UploadRunOutputs(ctx, cfg.UploadBucket, prefix, files); err != nil {
			log.Fatal().Err(err).Msg("Uploading outputs failed")
		}
		log.Info().Str("bucket", cfg.UploadBucket).Str("prefix", prefix).Msg("Outputs uploaded")
	}

	report.WriteSummary(os.Stdout, result)
	report.WriteSamples(os.Stdout, result, cfg.SampleRows)

	fmt.Printf("Wrote %d files to %s\n", len(files), filepath.Clean(cfg.OutputDir))
}

func loadFeed(ctx context.Context, path string) (*engine.RawInput, error) {
	if gcsio.IsURI(path) {
		data, err := gcsio.FetchFeed(ctx, path)
		if err != nil {
			return nil, err
		}
		return csvio.ReadRaw(bytes.NewReader(data))
	}
	return csvio.ReadRawFile(path)
}

package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/dvloznov/retail-recon/internal/config"
	"github.com/dvloznov/retail-recon/internal/csvio"
	"github.com/dvloznov/retail-recon/internal/engine"
	"github.com/dvloznov/retail-recon/internal/gcsio"
	infra "github.com/dvloznov/retail-recon/internal/infra/bigquery"
	"github.com/dvloznov/retail-recon/internal/logger"
)

func main() {
	input := flag.String("input", "", "Path or gs:// URI of the transaction feed CSV (overrides RECON_INPUT)")
	project := flag.String("project", "", "GCP project ID (overrides RECON_BQ_PROJECT)")
	dataset := flag.String("dataset", "", "BigQuery dataset (overrides RECON_BQ_DATASET)")
	envFile := flag.String("env", ".env", "Path to the .env file")
	flag.Parse()

	cfg := config.Load(*envFile)
	if *input != "" {
		cfg.InputPath = *input
	}
	if *project != "" {
		cfg.BigQuery.ProjectID = *project
	}
	if *dataset != "" {
		cfg.BigQuery.Dataset = *dataset
	}

	log := logger.New(cfg.LogLevel)

	if cfg.BigQuery.ProjectID == "" {
		log.Fatal().Msg("Error: -project or RECON_BQ_PROJECT is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	log.Info().
		Str("input", cfg.InputPath).
		Str("project", cfg.BigQuery.ProjectID).
		Str("dataset", cfg.BigQuery.Dataset).
		Msg("Starting BigQuery export run")

	publisher, err := infra.NewPublisher(ctx, cfg.BigQuery.ProjectID, cfg.BigQuery.Dataset)
	if err != nil {
		log.Fatal().Err(err).Msg("Creating publisher failed")
	}
	defer publisher.Close()

	runID, err := publisher.StartRun(ctx, cfg.InputPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Starting run record failed")
	}
	log.Info().Str("run_id", runID).Msg("Run started")

	result, err := reconcile(ctx, cfg)
	if err != nil {
		publisher.MarkRunFailed(ctx, runID, err)
		log.Fatal().Err(err).Str("run_id", runID).Msg("Reconciliation failed")
	}

	if err := publisher.PublishResult(ctx, runID, result); err != nil {
		publisher.MarkRunFailed(ctx, runID, err)
		log.Fatal().Err(err).Str("run_id", runID).Msg("Publishing results failed")
	}

	summary := result.Summary()
	if err := publisher.MarkRunSucceeded(ctx, runID, summary); err != nil {
		log.Fatal().Err(err).Str("run_id", runID).Msg("Closing run record failed")
	}

	counts, err := publisher.ExceptionCountsByRule(ctx, runID)
	if err != nil {
		log.Warn().Err(err).Msg("Reading exception counts failed")
	} else {
		for ruleID, n := range counts {
			log.Info().Str("rule_id", ruleID).Int64("count", n).Msg("Exceptions recorded")
		}
	}

	log.Info().
		Str("run_id", runID).
		Int("total", summary.Total).
		Int("matched", summary.Matched).
		Int("unmatched", summary.Unmatched).
		Int("exceptions", summary.Exceptions).
		Msg("Export completed")

	fmt.Printf("Run %s exported to %s.%s\n", runID, cfg.BigQuery.ProjectID, cfg.BigQuery.Dataset)
}

func reconcile(ctx context.Context, cfg *config.Config) (*engine.Result, error) {
	var (
		raw *engine.RawInput
		err error
	)
	if gcsio.IsURI(cfg.InputPath) {
		var data []byte
		data, err = gcsio.FetchFeed(ctx, cfg.InputPath)
		if err == nil {
			raw, err = csvio.ReadRaw(bytes.NewReader(data))
		}
	} else {
		raw, err = csvio.ReadRawFile(cfg.InputPath)
	}
	if err != nil {
		return nil, err
	}
	return engine.Run(ctx, raw, engine.Options{DayFirst: cfg.DayFirst})
}

package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config carries the batch job settings. Values come from RECON_*
// environment variables, optionally seeded from a .env file.
type Config struct {
	InputPath  string
	OutputDir  string
	DayFirst   bool
	LogLevel   string
	SampleRows int

	// UploadBucket, when set, receives a copy of the output files.
	UploadBucket string

	BigQuery BigQueryConfig
}

// BigQueryConfig identifies the dataset the export command publishes to.
type BigQueryConfig struct {
	ProjectID string
	Dataset   string
}

// Load reads configuration from the environment, seeding it from the
// given .env file first. A missing .env file is not an error; the
// environment alone is a valid source.
func Load(envFile string) *Config {
	if envFile != "" {
		_ = godotenv.Load(envFile)
	}

	cfg := &Config{}
	cfg.InputPath = GetEnv("RECON_INPUT", "online_retail.csv")
	cfg.OutputDir = GetEnv("RECON_OUTPUT_DIR", "output")
	// The retail feed writes timestamps day-before-month. This must stay
	// an explicit setting: a wrong value corrupts txn_date silently.
	cfg.DayFirst = GetEnvAsBool("RECON_DAY_FIRST", true)
	cfg.LogLevel = GetEnv("RECON_LOG_LEVEL", "info")
	cfg.SampleRows = GetEnvAsInt("RECON_SAMPLE_ROWS", 8)
	cfg.UploadBucket = GetEnv("RECON_UPLOAD_BUCKET", "")
	cfg.BigQuery.ProjectID = GetEnv("RECON_BQ_PROJECT", "")
	cfg.BigQuery.Dataset = GetEnv("RECON_BQ_DATASET", "recon")
	return cfg
}

// GetEnv reads a string environment variable with a fallback.
func GetEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// GetEnvAsBool reads a boolean environment variable with a fallback.
func GetEnvAsBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// GetEnvAsInt reads an integer environment variable with a fallback.
func GetEnvAsInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

package config

import (
	"testing"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("RECON_TEST_STR", "value")

	if got := GetEnv("RECON_TEST_STR", "fallback"); got != "value" {
		t.Errorf("GetEnv = %q, want value", got)
	}
	if got := GetEnv("RECON_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("GetEnv = %q, want fallback", got)
	}
}

func TestGetEnvAsBool(t *testing.T) {
	tests := []struct {
		value    string
		fallback bool
		want     bool
	}{
		{"true", false, true},
		{"false", true, false},
		{"1", false, true},
		{"0", true, false},
		{"garbage", true, true},
		{"", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("RECON_TEST_BOOL", tt.value)
			if got := GetEnvAsBool("RECON_TEST_BOOL", tt.fallback); got != tt.want {
				t.Errorf("GetEnvAsBool(%q, %v) = %v, want %v", tt.value, tt.fallback, got, tt.want)
			}
		})
	}
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("RECON_TEST_INT", "42")
	if got := GetEnvAsInt("RECON_TEST_INT", 7); got != 42 {
		t.Errorf("GetEnvAsInt = %d, want 42", got)
	}

	t.Setenv("RECON_TEST_INT", "not-a-number")
	if got := GetEnvAsInt("RECON_TEST_INT", 7); got != 7 {
		t.Errorf("GetEnvAsInt = %d, want fallback 7", got)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg := Load("")

	if cfg.OutputDir != "output" {
		t.Errorf("OutputDir = %q, want output", cfg.OutputDir)
	}
	if !cfg.DayFirst {
		t.Error("DayFirst should default to true for the retail feed")
	}
	if cfg.BigQuery.Dataset != "recon" {
		t.Errorf("Dataset = %q, want recon", cfg.BigQuery.Dataset)
	}
	if cfg.SampleRows != 8 {
		t.Errorf("SampleRows = %d, want 8", cfg.SampleRows)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("RECON_INPUT", "gs://bucket/feed.csv")
	t.Setenv("RECON_DAY_FIRST", "false")
	t.Setenv("RECON_BQ_PROJECT", "my-project")

	cfg := Load("")

	if cfg.InputPath != "gs://bucket/feed.csv" {
		t.Errorf("InputPath = %q", cfg.InputPath)
	}
	if cfg.DayFirst {
		t.Error("DayFirst should be false")
	}
	if cfg.BigQuery.ProjectID != "my-project" {
		t.Errorf("ProjectID = %q", cfg.BigQuery.ProjectID)
	}
}

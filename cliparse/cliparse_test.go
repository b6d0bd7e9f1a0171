// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"testing"
)

func TestParseFlags_EnvVars(t *testing.T) {
	// Set env vars
	os.Setenv("META_DIR", "/data/meta")
	os.Setenv("RAW_DIR", "/data/raw")
	os.Setenv("WORKERS", "8")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.MetaDir != "/data/meta" {
		t.Errorf("expected meta dir /data/meta, got %s", cfg.MetaDir)
	}
	if cfg.RawDir != "/data/raw" {
		t.Errorf("expected raw dir /data/raw, got %s", cfg.RawDir)
	}
	if cfg.Workers != 8 {
		t.Errorf("expected 8 workers, got %d", cfg.Workers)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	os.Setenv("RAW_DIR", "/data/raw")
	os.Setenv("WORKERS", "8")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{"-raw", "/other/raw", "-workers", "2"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.RawDir != "/other/raw" {
		t.Errorf("CLI should override env: expected /other/raw, got %s", cfg.RawDir)
	}
	if cfg.Workers != 2 {
		t.Errorf("CLI should override env: expected 2, got %d", cfg.Workers)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{"-raw", "/data/raw"})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.MetaDir != "election-metadata" {
		t.Errorf("expected default meta dir, got %s", cfg.MetaDir)
	}
	if cfg.ReportDir != "reports" {
		t.Errorf("expected default report dir, got %s", cfg.ReportDir)
	}
	if cfg.PreprocessedDir != "preprocessed" {
		t.Errorf("expected default preprocessed dir, got %s", cfg.PreprocessedDir)
	}
	if cfg.Workers != 4 {
		t.Errorf("expected default of 4 workers, got %d", cfg.Workers)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected default database type sqlite, got %s", cfg.DatabaseType)
	}
}

func TestParseFlags_MissingRawDir(t *testing.T) {
	defer os.Clearenv()

	if _, err := ParseFlags([]string{}); err == nil {
		t.Error("expected error when raw dir is missing")
	}
}

func TestParseFlags_InvalidWorkers(t *testing.T) {
	defer os.Clearenv()

	if _, err := ParseFlags([]string{"-raw", "/data/raw", "-workers", "-1"}); err == nil {
		t.Error("expected error for negative worker count")
	}
}

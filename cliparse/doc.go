// Copyright (c) 2026 OpenBallot.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[2:])

# Config Fields

  - MetaDir: Election metadata directory (default: election-metadata)
  - RawDir: Raw ballot data directory (required)
  - ReportDir: Report output directory (default: reports)
  - PreprocessedDir: Normalized ballot cache directory (default: preprocessed)
  - Jurisdiction: Optional single-jurisdiction filter
  - ForcePreprocess, ForceReport: Regenerate cached artifacts
  - Workers: Concurrent jurisdiction workers (default: 4)
  - DatabaseURL, DatabaseType: Database connection for report storage
    and the extract command (default type: sqlite)

# CLI Flags

	-meta              Election metadata directory
	-raw               Raw ballot data directory
	-reports           Report output directory
	-preprocessed      Normalized ballot cache directory
	-jurisdiction      Restrict to one jurisdiction path
	-force-preprocess  Regenerate normalized ballot caches
	-force-report      Regenerate reports from cached ballots
	-workers           Concurrent jurisdiction workers
	-d                 Database URL
	-t                 Database type (sqlite or postgres)

# Environment Variables

Flags fall back to environment variables:

	META_DIR         → -meta
	RAW_DIR          → -raw
	REPORT_DIR       → -reports
	PREPROCESSED_DIR → -preprocessed
	WORKERS          → -workers
	DATABASE_URL     → -d
	DATABASE_TYPE    → -t

CLI flags take precedence over environment variables. A .env file in
the working directory is loaded first if present.

# Validation

ParseFlags returns an error if required values are missing:

  - Raw data directory must be set via -raw or RAW_DIR
  - Workers must be at least 1

# Example

	// In main.go
	cfg, err := cliparse.ParseFlags(os.Args[2:])
	if err != nil {
		log.Fatal(err)
	}

	index, err := report.Run(ctx, report.Options{
		MetaDir: cfg.MetaDir,
		RawDir:  cfg.RawDir,
		// ...
	})
*/
package cliparse

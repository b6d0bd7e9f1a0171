// Copyright (c) 2026 OpenBallot.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the rcvtally batch pipeline.

rcvtally tabulates ranked-choice elections from raw vendor exports and
produces per-contest reports with instant-runoff rounds, pairwise
(Condorcet) analysis, the Smith set, and vote-transfer distributions.

# Running the Pipeline

The report command walks the metadata directory and generates a report
for every declared contest:

	RAW_DIR=/data/raw go run . report

Or with flags:

	go run . report -meta election-metadata -raw /data/raw -reports reports

The extract command loads raw NIST SP 1500-103 ballots into a database
for ad-hoc SQL analysis:

	go run . extract -raw /data/raw -d file:ballots.db -t sqlite

# Configuration

Required settings:

  - RAW_DIR (-raw): Raw ballot data directory

Optional settings:

  - META_DIR (-meta): Election metadata directory (default: election-metadata)
  - REPORT_DIR (-reports): Report output directory (default: reports)
  - PREPROCESSED_DIR (-preprocessed): Normalized ballot cache (default: preprocessed)
  - WORKERS (-workers): Concurrent jurisdiction workers (default: 4)
  - DATABASE_URL (-d), DATABASE_TYPE (-t): Report/extraction storage

# Architecture

The pipeline flows raw exports through normalization to analysis:

  - formats: Raw-format readers (Dominion RCR, NIST SP 1500-103, state spreadsheets)
  - normalize: Ballot normalization policies
  - tabulate: Instant-runoff round tabulation
  - analyze: Pairwise matrix, Smith set, transfer distributions
  - report: Batch pipeline, caching, and index generation
  - meta: Election metadata loading
  - db: Report snapshots and raw ballot extraction
  - models: Shared election and report types
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main

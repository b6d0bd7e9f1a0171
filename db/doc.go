// Copyright (c) 2026 OpenBallot.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db persists contest reports and raw ballot extractions.

# Connections

Open selects the driver from the configured database type:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

"sqlite" is the default and what the extract command uses; "postgres"
suits shared report storage.

# Schema Creation

CreateSchema initializes all required tables. Safe to call multiple
times - uses IF NOT EXISTS for all tables and indexes.

# Tables

Report persistence:

  - contest: One row per stored report snapshot (uuid primary key)
  - candidate: Per-candidate totals, elimination round, winner and
    Smith-set flags
  - round: Per-round undervote/overvote/continuing counts
  - allocation: Candidate-or-exhausted vote buckets per round
  - transfer: Ballot movement out of eliminated candidates

Raw extraction (sqlite workflow):

  - ballots: Rank-ordered choice strings per ballot
  - contests: Contest id and name
  - candidates: Manifest candidates per contest

# Relationships

	contest 1──* candidate
	contest 1──* round
	contest 1──* allocation
	contest 1──* transfer

All report foreign keys use ON DELETE CASCADE. A NULL candidate column
in allocation or transfer rows is the exhausted bucket.
*/
package db

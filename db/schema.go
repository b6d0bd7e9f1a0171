// Copyright (c) 2026 OpenBallot.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for report persistence and raw
// ballot extraction. Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// Statements are kept individually executable so both the sqlite and
// postgres drivers accept them.
var schema = []string{
	// Contest reports: one row per stored report snapshot.
	`CREATE TABLE IF NOT EXISTS contest (
    id TEXT PRIMARY KEY,
    jurisdiction TEXT NOT NULL,
    election TEXT NOT NULL,
    office TEXT NOT NULL,
    name TEXT NOT NULL,
    date TEXT NOT NULL,
    data_format TEXT NOT NULL,
    num_candidates INTEGER NOT NULL,
    num_ballots INTEGER NOT NULL,
    winner INTEGER,
    condorcet INTEGER,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
	`CREATE INDEX IF NOT EXISTS idx_contest_election ON contest(jurisdiction, election, office)`,

	// Candidates within a stored report, keyed by dense candidate id.
	`CREATE TABLE IF NOT EXISTS candidate (
    contest_id TEXT NOT NULL REFERENCES contest(id) ON DELETE CASCADE,
    candidate INTEGER NOT NULL,
    name TEXT NOT NULL,
    type TEXT NOT NULL,
    first_round_votes INTEGER NOT NULL,
    transfer_votes INTEGER NOT NULL,
    round_eliminated INTEGER,
    winner BOOLEAN NOT NULL DEFAULT FALSE,
    in_smith_set BOOLEAN NOT NULL DEFAULT FALSE,
    PRIMARY KEY (contest_id, candidate)
)`,

	// Tabulation rounds and their allocations and transfers. A NULL
	// candidate in allocation or transfer destination is the exhausted
	// bucket.
	`CREATE TABLE IF NOT EXISTS round (
    contest_id TEXT NOT NULL REFERENCES contest(id) ON DELETE CASCADE,
    round INTEGER NOT NULL,
    undervote INTEGER NOT NULL,
    overvote INTEGER NOT NULL,
    continuing_ballots INTEGER NOT NULL,
    PRIMARY KEY (contest_id, round)
)`,
	`CREATE TABLE IF NOT EXISTS allocation (
    contest_id TEXT NOT NULL REFERENCES contest(id) ON DELETE CASCADE,
    round INTEGER NOT NULL,
    position INTEGER NOT NULL,
    candidate INTEGER,
    votes INTEGER NOT NULL,
    PRIMARY KEY (contest_id, round, position)
)`,
	`CREATE TABLE IF NOT EXISTS transfer (
    contest_id TEXT NOT NULL REFERENCES contest(id) ON DELETE CASCADE,
    round INTEGER NOT NULL,
    position INTEGER NOT NULL,
    from_candidate INTEGER NOT NULL,
    to_candidate INTEGER,
    count INTEGER NOT NULL,
    PRIMARY KEY (contest_id, round, position)
)`,

	// Raw ballot extraction, independent of the report tables: choices
	// is a JSON array of "vote:N" / "undervote" / "overvote" strings in
	// rank order.
	`CREATE TABLE IF NOT EXISTS ballots (
    ballot_id TEXT,
    contest_id INTEGER,
    choices TEXT,
    overvoted BOOLEAN,
    PRIMARY KEY (ballot_id, contest_id)
)`,
	`CREATE INDEX IF NOT EXISTS idx_ballots_contest ON ballots(contest_id)`,
	`CREATE TABLE IF NOT EXISTS contests (
    contest_id INTEGER PRIMARY KEY,
    contest_name TEXT,
    election_id TEXT
)`,
	`CREATE TABLE IF NOT EXISTS candidates (
    candidate_id INTEGER PRIMARY KEY,
    candidate_name TEXT,
    contest_id INTEGER,
    candidate_type TEXT
)`,
}

// Copyright (c) 2026 OpenBallot.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/openballot/rcvtally/models"
)

// ExtractElection stores one contest's raw ballots into the extraction
// tables for ad-hoc SQL analysis. Choices are stored as a JSON array of
// "vote:N" / "undervote" / "overvote" strings in rank order. Re-running
// an extraction replaces existing rows.
func ExtractElection(db *sql.DB, contestID int, contestName, electionID string, e models.Election) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("starting extraction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT OR REPLACE INTO contests (contest_id, contest_name, election_id)
		 VALUES ($1, $2, $3)`,
		contestID, contestName, electionID,
	)
	if err != nil {
		return fmt.Errorf("writing contest: %w", err)
	}

	for i, c := range e.Candidates {
		_, err := tx.Exec(
			`INSERT OR REPLACE INTO candidates (candidate_id, candidate_name, contest_id, candidate_type)
			 VALUES ($1, $2, $3, $4)`,
			i, c.Name, contestID, c.Type,
		)
		if err != nil {
			return fmt.Errorf("writing candidate %d: %w", i, err)
		}
	}

	for _, b := range e.Ballots {
		choices, err := json.Marshal(b.Choices)
		if err != nil {
			return fmt.Errorf("encoding ballot %s: %w", b.ID, err)
		}
		overvoted := false
		for _, c := range b.Choices {
			if c.Kind == models.KindOvervote {
				overvoted = true
				break
			}
		}
		_, err = tx.Exec(
			`INSERT OR REPLACE INTO ballots (ballot_id, contest_id, choices, overvoted)
			 VALUES ($1, $2, $3, $4)`,
			b.ID, contestID, string(choices), overvoted,
		)
		if err != nil {
			return fmt.Errorf("writing ballot %s: %w", b.ID, err)
		}
	}

	return tx.Commit()
}

// Copyright (c) 2026 OpenBallot.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/openballot/rcvtally/models"
)

// WriteReport stores one contest report losslessly across the contest,
// candidate, round, allocation, and transfer tables. It returns the
// snapshot id of the new contest row. The write is transactional: a
// failed report leaves no partial rows.
func WriteReport(db *sql.DB, r models.ContestReport) (string, error) {
	id := uuid.NewString()

	tx, err := db.Begin()
	if err != nil {
		return "", fmt.Errorf("starting report write: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO contest (id, jurisdiction, election, office, name, date, data_format,
		                      num_candidates, num_ballots, winner, condorcet)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		id, r.Info.Jurisdiction, r.Info.Election, r.Info.Office, r.Info.Name, r.Info.Date,
		r.Info.DataFormat, r.NumCandidates, r.NumBallots,
		candidateValue(r.Winner), candidateValue(r.Condorcet),
	)
	if err != nil {
		return "", fmt.Errorf("writing contest row: %w", err)
	}

	if err := writeCandidates(tx, id, r); err != nil {
		return "", err
	}
	if err := writeRounds(tx, id, r.Rounds); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing report write: %w", err)
	}
	return id, nil
}

func writeCandidates(tx *sql.Tx, contestID string, r models.ContestReport) error {
	inSmith := make(map[models.CandidateID]bool, len(r.SmithSet))
	for _, c := range r.SmithSet {
		inSmith[c] = true
	}

	totals := make(map[models.CandidateID]models.CandidateVotes, len(r.TotalVotes))
	for _, cv := range r.TotalVotes {
		totals[cv.Candidate] = cv
	}

	for i, c := range r.Candidates {
		id := models.CandidateID(i)
		cv := totals[id]
		var eliminated interface{}
		if cv.RoundEliminated != nil {
			eliminated = *cv.RoundEliminated
		}
		_, err := tx.Exec(
			`INSERT INTO candidate (contest_id, candidate, name, type,
			                        first_round_votes, transfer_votes, round_eliminated,
			                        winner, in_smith_set)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			contestID, int(id), c.Name, c.Type,
			cv.FirstRoundVotes, cv.TransferVotes, eliminated,
			cv.Winner, inSmith[id],
		)
		if err != nil {
			return fmt.Errorf("writing candidate %d: %w", id, err)
		}
	}
	return nil
}

func writeRounds(tx *sql.Tx, contestID string, rounds []models.Round) error {
	for r, round := range rounds {
		_, err := tx.Exec(
			`INSERT INTO round (contest_id, round, undervote, overvote, continuing_ballots)
			 VALUES ($1, $2, $3, $4, $5)`,
			contestID, r, round.Undervote, round.Overvote, round.ContinuingBallots,
		)
		if err != nil {
			return fmt.Errorf("writing round %d: %w", r, err)
		}

		for pos, a := range round.Allocations {
			_, err := tx.Exec(
				`INSERT INTO allocation (contest_id, round, position, candidate, votes)
				 VALUES ($1, $2, $3, $4, $5)`,
				contestID, r, pos, allocateeValue(a.Allocatee), a.Votes,
			)
			if err != nil {
				return fmt.Errorf("writing allocation %d of round %d: %w", pos, r, err)
			}
		}

		for pos, t := range round.Transfers {
			_, err := tx.Exec(
				`INSERT INTO transfer (contest_id, round, position, from_candidate, to_candidate, count)
				 VALUES ($1, $2, $3, $4, $5, $6)`,
				contestID, r, pos, int(t.From), allocateeValue(t.To), t.Count,
			)
			if err != nil {
				return fmt.Errorf("writing transfer %d of round %d: %w", pos, r, err)
			}
		}
	}
	return nil
}

// candidateValue maps an optional candidate to a nullable column.
func candidateValue(id *models.CandidateID) interface{} {
	if id == nil {
		return nil
	}
	return int(*id)
}

// allocateeValue maps a candidate-or-exhausted destination to a nullable
// column; NULL is the exhausted bucket.
func allocateeValue(a models.Allocatee) interface{} {
	if a.Exhausted {
		return nil
	}
	return int(a.Candidate)
}

// Copyright (c) 2026 OpenBallot.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package normalize

import (
	"fmt"

	"github.com/openballot/rcvtally/models"
)

// Simple applies the default normalization policy: duplicate candidates
// are dropped (first occurrence wins), undervotes are skipped, and the
// first overvote stops the scan and flags the ballot.
func Simple(b models.Ballot) models.NormalizedBallot {
	seen := make(map[models.CandidateID]bool)
	var choices []models.CandidateID
	overvoted := false

	for _, choice := range b.Choices {
		switch choice.Kind {
		case models.KindVote:
			if !seen[choice.Candidate] {
				seen[choice.Candidate] = true
				choices = append(choices, choice.Candidate)
			}
		case models.KindOvervote:
			overvoted = true
		}
		if overvoted {
			break
		}
	}

	return models.NormalizedBallot{ID: b.ID, Choices: choices, Overvoted: overvoted}
}

// Maine applies Maine's sequential-undervote rule: like Simple, but two
// undervotes in a row truncate the ballot at that point. A single,
// non-consecutive undervote is tolerated and skipped.
func Maine(b models.Ballot) models.NormalizedBallot {
	seen := make(map[models.CandidateID]bool)
	var choices []models.CandidateID
	overvoted := false
	prevUndervote := false

scan:
	for _, choice := range b.Choices {
		switch choice.Kind {
		case models.KindVote:
			prevUndervote = false
			if !seen[choice.Candidate] {
				seen[choice.Candidate] = true
				choices = append(choices, choice.Candidate)
			}
		case models.KindUndervote:
			if prevUndervote {
				break scan
			}
			prevUndervote = true
		case models.KindOvervote:
			overvoted = true
			break scan
		}
	}

	return models.NormalizedBallot{ID: b.ID, Choices: choices, Overvoted: overvoted}
}

// NYC applies NYC's inactive-ballot rule: undervotes are ignored and an
// overvote keeps any votes already collected, but a ballot that never
// casts a single valid vote is dropped entirely. The second return is
// false for a dropped ballot.
func NYC(b models.Ballot) (models.NormalizedBallot, bool) {
	seen := make(map[models.CandidateID]bool)
	var choices []models.CandidateID
	overvoted := false

scan:
	for _, choice := range b.Choices {
		switch choice.Kind {
		case models.KindVote:
			if !seen[choice.Candidate] {
				seen[choice.Candidate] = true
				choices = append(choices, choice.Candidate)
			}
		case models.KindOvervote:
			overvoted = true
			break scan
		}
	}

	if len(choices) == 0 {
		return models.NormalizedBallot{}, false
	}
	return models.NormalizedBallot{ID: b.ID, Choices: choices, Overvoted: overvoted}, true
}

// Election normalizes every ballot of an election under the policy named
// by format. The nyc policy filters inactive ballots out of the result;
// the others map every ballot through.
func Election(format string, e models.Election) (models.NormalizedElection, error) {
	var ballots []models.NormalizedBallot

	switch format {
	case "", "simple":
		ballots = make([]models.NormalizedBallot, 0, len(e.Ballots))
		for _, b := range e.Ballots {
			ballots = append(ballots, Simple(b))
		}
	case "maine":
		ballots = make([]models.NormalizedBallot, 0, len(e.Ballots))
		for _, b := range e.Ballots {
			ballots = append(ballots, Maine(b))
		}
	case "nyc":
		for _, b := range e.Ballots {
			if nb, ok := NYC(b); ok {
				ballots = append(ballots, nb)
			}
		}
	default:
		return models.NormalizedElection{}, fmt.Errorf("normalizer %q is not implemented", format)
	}

	return models.NormalizedElection{Candidates: e.Candidates, Ballots: ballots}, nil
}

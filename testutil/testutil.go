// Copyright (c) 2026 OpenBallot.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"fmt"

	"github.com/openballot/rcvtally/models"
)

// Candidates builds a regular candidate list from names.
func Candidates(names ...string) []models.Candidate {
	candidates := make([]models.Candidate, len(names))
	for i, name := range names {
		candidates[i] = models.Candidate{Name: name, Type: models.CandidateRegular}
	}
	return candidates
}

// Raw builds a raw ballot from a mark sequence.
func Raw(id string, choices ...models.Choice) models.Ballot {
	return models.Ballot{ID: id, Choices: choices}
}

// Normalized builds a normalized ballot from a ranked candidate list.
func Normalized(id string, choices ...models.CandidateID) models.NormalizedBallot {
	return models.NormalizedBallot{ID: id, Choices: choices}
}

// Election builds an in-memory election.
func Election(candidates []models.Candidate, ballots ...models.Ballot) models.Election {
	return models.Election{Candidates: candidates, Ballots: ballots}
}

// Repeat appends n copies of the same ranked ballot, numbering ids from
// the current length of the slice.
func Repeat(ballots []models.NormalizedBallot, n int, choices ...models.CandidateID) []models.NormalizedBallot {
	for i := 0; i < n; i++ {
		ballots = append(ballots, Normalized(fmt.Sprintf("b%d", len(ballots)), choices...))
	}
	return ballots
}

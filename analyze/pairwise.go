// Copyright (c) 2026 OpenBallot.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package analyze

import (
	"github.com/openballot/rcvtally/models"
)

// Pairwise builds the head-to-head preference matrix. A ranked candidate
// beats every candidate ranked strictly below it on the same ballot, and
// every candidate the ballot leaves unranked.
//
// The per-ballot pass touches only the ranked positions actually present;
// the implicit wins over unranked candidates fall out of the identity
// beats(a,b) = ranked(a) - rankedAbove(b,a), applied once per pair at the
// end.
func Pairwise(ballots []models.NormalizedBallot, numCandidates int) *models.PairwiseTable {
	n := numCandidates
	rankedAbove := make([]int, n*n) // rankedAbove[a*n+b]: ballots ranking a strictly above b
	ranked := make([]int, n)

	for _, b := range ballots {
		for i, hi := range b.Choices {
			ranked[hi]++
			for _, lo := range b.Choices[i+1:] {
				rankedAbove[int(hi)*n+int(lo)]++
			}
		}
	}

	cells := make([]models.PairwiseCell, n*n)
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			if a == b {
				continue
			}
			cells[a*n+b].Wins = ranked[a] - rankedAbove[b*n+a]
		}
	}
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			if a != b {
				cells[a*n+b].Losses = cells[b*n+a].Wins
			}
		}
	}

	return &models.PairwiseTable{N: n, Cells: cells}
}

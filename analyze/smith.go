// Copyright (c) 2026 OpenBallot.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package analyze

import (
	"sort"

	"github.com/openballot/rcvtally/models"
)

// SmithSet computes the smallest non-empty set of candidates that each
// beat every candidate outside the set head-to-head.
//
// Treating strict pairwise victories as directed edges, the Smith set is
// the union of the condensation's in-degree-zero strongly connected
// components. Kosaraju's two-pass search finds the components; candidate
// counts are small enough that the dense adjacency test is fine. The
// result is sorted by ascending candidate id.
func SmithSet(t *models.PairwiseTable) []models.CandidateID {
	n := t.N
	if n == 0 {
		return nil
	}

	beats := func(a, b int) bool {
		c := t.Cells[a*n+b]
		return c.Wins > c.Losses
	}

	visited := make([]bool, n)
	order := make([]int, 0, n)
	var forward func(v int)
	forward = func(v int) {
		visited[v] = true
		for w := 0; w < n; w++ {
			if w != v && beats(v, w) && !visited[w] {
				forward(w)
			}
		}
		order = append(order, v)
	}
	for v := 0; v < n; v++ {
		if !visited[v] {
			forward(v)
		}
	}

	comp := make([]int, n)
	for i := range comp {
		comp[i] = -1
	}
	ncomp := 0
	var backward func(v int)
	backward = func(v int) {
		comp[v] = ncomp
		for w := 0; w < n; w++ {
			if w != v && beats(w, v) && comp[w] == -1 {
				backward(w)
			}
		}
	}
	for i := n - 1; i >= 0; i-- {
		if v := order[i]; comp[v] == -1 {
			backward(v)
			ncomp++
		}
	}

	dominated := make([]bool, ncomp)
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			if a != b && comp[a] != comp[b] && beats(a, b) {
				dominated[comp[b]] = true
			}
		}
	}

	var smith []models.CandidateID
	for v := 0; v < n; v++ {
		if !dominated[comp[v]] {
			smith = append(smith, models.CandidateID(v))
		}
	}
	sort.Slice(smith, func(i, j int) bool { return smith[i] < smith[j] })
	return smith
}

// CondorcetWinner returns the candidate who beats every other head-to-head,
// which exists exactly when the Smith set is a singleton.
func CondorcetWinner(smith []models.CandidateID) *models.CandidateID {
	if len(smith) != 1 {
		return nil
	}
	winner := smith[0]
	return &winner
}

// Copyright (c) 2026 OpenBallot.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tabulate

import (
	"errors"
	"fmt"
	"sort"

	"github.com/openballot/rcvtally/candmap"
	"github.com/openballot/rcvtally/models"
)

// MaxRounds bounds the elimination loop. A real contest converges in far
// fewer rounds; hitting the cap indicates a normalization or elimination
// defect, not a legitimate long election.
const MaxRounds = 1000

// ErrRoundCapExceeded reports that tabulation did not converge to two or
// fewer candidates within MaxRounds rounds.
var ErrRoundCapExceeded = errors.New("round cap exceeded")

// ballotState is a cursor into a ballot's immutable ranked-choice list.
// Advancing the cursor is the only mutation during tabulation.
type ballotState struct {
	choices   []models.CandidateID
	overvoted bool
	cursor    int
}

// current moves the cursor past eliminated candidates and returns the
// ballot's active candidate. ok is false once the ballot is exhausted.
func (b *ballotState) current(eliminated []bool) (models.CandidateID, bool) {
	for b.cursor < len(b.choices) {
		c := b.choices[b.cursor]
		if !eliminated[c] {
			return c, true
		}
		b.cursor++
	}
	return 0, false
}

type tally struct {
	id    models.CandidateID
	votes int
}

// Tabulate runs the elimination state machine over normalized ballots and
// returns the ordered round sequence. A contest with zero ballots yields
// zero rounds. Given identical input the output is identical: vote sorts
// break ties by ascending candidate id, and transfer lists are ordered by
// destination vote count with exhaustion last.
func Tabulate(ballots []models.NormalizedBallot, numCandidates int, opts models.TabulationOptions) ([]models.Round, error) {
	if len(ballots) == 0 {
		return nil, nil
	}

	for _, b := range ballots {
		for _, c := range b.Choices {
			if c < 0 || int(c) >= numCandidates {
				return nil, fmt.Errorf("ballot %s references candidate %d: %w", b.ID, c, candmap.ErrUnknownCandidate)
			}
		}
	}

	states := make([]ballotState, len(ballots))
	piles := make([][]int, numCandidates)
	eliminated := make([]bool, numCandidates)
	exhaustedUndervote := 0
	exhaustedOvervote := 0

	exhaust := func(st *ballotState) {
		if st.overvoted {
			exhaustedOvervote++
		} else {
			exhaustedUndervote++
		}
	}

	for i, b := range ballots {
		states[i] = ballotState{choices: b.Choices, overvoted: b.Overvoted}
		if c, ok := states[i].current(eliminated); ok {
			piles[c] = append(piles[c], i)
		} else {
			exhaust(&states[i])
		}
	}

	var rounds []models.Round
	var pending []models.Transfer

	for {
		standing := make([]tally, 0, numCandidates)
		continuing := 0
		for id := 0; id < numCandidates; id++ {
			if eliminated[id] {
				continue
			}
			votes := len(piles[id])
			standing = append(standing, tally{id: models.CandidateID(id), votes: votes})
			continuing += votes
		}
		sort.Slice(standing, func(i, j int) bool {
			if standing[i].votes != standing[j].votes {
				return standing[i].votes > standing[j].votes
			}
			return standing[i].id < standing[j].id
		})

		exhausted := exhaustedUndervote + exhaustedOvervote
		if opts.NYCStyle && len(rounds) == 0 {
			// NYC reports inactive ballots separately in the first round;
			// they join the exhausted tally from round 1 onward.
			exhausted = 0
		}

		allocations := make([]models.Allocation, 0, len(standing)+1)
		for _, t := range standing {
			allocations = append(allocations, models.Allocation{Allocatee: models.ToCandidate(t.id), Votes: t.votes})
		}
		allocations = append(allocations, models.Allocation{Allocatee: models.Exhausted, Votes: exhausted})

		rounds = append(rounds, models.Round{
			Allocations:       allocations,
			Undervote:         exhaustedUndervote,
			Overvote:          exhaustedOvervote,
			ContinuingBallots: continuing,
			Transfers:         pending,
		})
		pending = nil

		if len(standing) <= 2 {
			return rounds, nil
		}
		if len(rounds) >= MaxRounds {
			return nil, fmt.Errorf("no winner after %d rounds: %w", MaxRounds, ErrRoundCapExceeded)
		}

		losers := eliminate(standing, opts.Eager)
		for _, id := range losers {
			eliminated[id] = true
		}

		var moves []models.Transfer
		for _, from := range losers {
			toCandidate := make(map[models.CandidateID]int)
			toExhausted := 0
			for _, idx := range piles[from] {
				st := &states[idx]
				st.cursor++
				if c, ok := st.current(eliminated); ok {
					piles[c] = append(piles[c], idx)
					toCandidate[c]++
				} else {
					exhaust(st)
					toExhausted++
				}
			}
			piles[from] = nil

			dests := make([]models.CandidateID, 0, len(toCandidate))
			for c := range toCandidate {
				dests = append(dests, c)
			}
			sort.Slice(dests, func(i, j int) bool { return dests[i] < dests[j] })
			for _, c := range dests {
				moves = append(moves, models.Transfer{From: from, To: models.ToCandidate(c), Count: toCandidate[c]})
			}
			if toExhausted > 0 {
				moves = append(moves, models.Transfer{From: from, To: models.Exhausted, Count: toExhausted})
			}
		}

		// Order for the next round's record: destination vote count
		// descending, exhaustion always last.
		sort.SliceStable(moves, func(i, j int) bool {
			a, b := moves[i], moves[j]
			if a.To.Exhausted != b.To.Exhausted {
				return !a.To.Exhausted
			}
			if a.To.Exhausted {
				return false
			}
			va, vb := len(piles[a.To.Candidate]), len(piles[b.To.Candidate])
			if va != vb {
				return va > vb
			}
			return a.To.Candidate < b.To.Candidate
		})
		pending = moves
	}
}

// eliminate picks this round's losers from the standing candidates, which
// arrive sorted by votes descending with ties broken by ascending id.
//
// Eager mode walks from the top keeping a running total of the votes
// below each candidate; the first non-leading candidate whose own count
// exceeds everything below it marks a cutoff, and everyone at or below
// the cutoff is out. When no cutoff exists the single lowest-vote
// candidate is eliminated, which is also the non-eager behavior.
func eliminate(standing []tally, eager bool) []models.CandidateID {
	if eager {
		remaining := 0
		for _, t := range standing {
			remaining += t.votes
		}
		for i, t := range standing {
			remaining -= t.votes
			if t.votes > remaining && i != 0 {
				ids := make([]models.CandidateID, 0, len(standing)-i)
				for _, loser := range standing[i:] {
					ids = append(ids, loser.id)
				}
				return ids
			}
		}
	}
	return []models.CandidateID{standing[len(standing)-1].id}
}

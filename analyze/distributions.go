// Copyright (c) 2026 OpenBallot.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package analyze

import (
	"sort"

	"github.com/openballot/rcvtally/models"
)

// destTally accumulates ballots per destination for one source candidate.
type destTally struct {
	toCandidate map[models.CandidateID]int
	toExhausted int
	total       int
}

func newDestTally() *destTally {
	return &destTally{toCandidate: make(map[models.CandidateID]int)}
}

func (d *destTally) add(to models.Allocatee) {
	if to.Exhausted {
		d.toExhausted++
	} else {
		d.toCandidate[to.Candidate]++
	}
	d.total++
}

// destinations flattens the tally into a weighted list: count descending,
// exhaustion last, ties by ascending candidate id.
func (d *destTally) destinations() []models.WeightedAllocatee {
	out := make([]models.WeightedAllocatee, 0, len(d.toCandidate)+1)
	for c, n := range d.toCandidate {
		out = append(out, models.WeightedAllocatee{To: models.ToCandidate(c), Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].To.Candidate < out[j].To.Candidate
	})
	if d.toExhausted > 0 {
		out = append(out, models.WeightedAllocatee{To: models.Exhausted, Count: d.toExhausted})
	}
	for i := range out {
		out[i].Fraction = float64(out[i].Count) / float64(d.total)
	}
	return out
}

// FirstAlternate reports, per candidate, where that candidate's
// first-choice voters ranked their second choice. Ballots with no second
// choice count toward exhaustion. Candidates with no first-choice ballots
// are omitted.
func FirstAlternate(ballots []models.NormalizedBallot, numCandidates int) []models.TransferDistribution {
	tallies := make([]*destTally, numCandidates)
	for _, b := range ballots {
		if len(b.Choices) == 0 {
			continue
		}
		first := b.Choices[0]
		if tallies[first] == nil {
			tallies[first] = newDestTally()
		}
		if len(b.Choices) > 1 {
			tallies[first].add(models.ToCandidate(b.Choices[1]))
		} else {
			tallies[first].add(models.Exhausted)
		}
	}
	return flatten(tallies)
}

// FirstFinal reports, for each candidate eliminated before the final
// round, where that candidate's first-choice voters ended up among the
// finalists. A ballot ranking no finalist counts toward exhaustion.
func FirstFinal(ballots []models.NormalizedBallot, rounds []models.Round, numCandidates int) []models.TransferDistribution {
	if len(rounds) == 0 {
		return nil
	}
	finalist := make([]bool, numCandidates)
	for _, a := range rounds[len(rounds)-1].Allocations {
		if !a.Allocatee.Exhausted {
			finalist[a.Allocatee.Candidate] = true
		}
	}

	tallies := make([]*destTally, numCandidates)
	for _, b := range ballots {
		if len(b.Choices) == 0 {
			continue
		}
		first := b.Choices[0]
		if finalist[first] {
			continue
		}
		if tallies[first] == nil {
			tallies[first] = newDestTally()
		}
		dest := models.Exhausted
		for _, c := range b.Choices {
			if finalist[c] {
				dest = models.ToCandidate(c)
				break
			}
		}
		tallies[first].add(dest)
	}
	return flatten(tallies)
}

func flatten(tallies []*destTally) []models.TransferDistribution {
	var out []models.TransferDistribution
	for id, d := range tallies {
		if d == nil {
			continue
		}
		out = append(out, models.TransferDistribution{
			Candidate:    models.CandidateID(id),
			Total:        d.total,
			Destinations: d.destinations(),
		})
	}
	return out
}

// RankingLengths buckets ballots by how many ranks they use, overall and
// split by first-choice candidate. Ballots with no valid ranking appear
// only in the overall distribution, in the zero bucket.
func RankingLengths(ballots []models.NormalizedBallot, numCandidates int) ([]models.RankingCount, [][]models.RankingCount) {
	overall := make(map[int]int)
	perCandidate := make([]map[int]int, numCandidates)

	for _, b := range ballots {
		n := len(b.Choices)
		overall[n]++
		if n == 0 {
			continue
		}
		first := b.Choices[0]
		if perCandidate[first] == nil {
			perCandidate[first] = make(map[int]int)
		}
		perCandidate[first][n]++
	}

	byCandidate := make([][]models.RankingCount, numCandidates)
	for id, m := range perCandidate {
		byCandidate[id] = bucketCounts(m)
	}
	return bucketCounts(overall), byCandidate
}

func bucketCounts(m map[int]int) []models.RankingCount {
	out := make([]models.RankingCount, 0, len(m))
	for ranks, count := range m {
		out = append(out, models.RankingCount{Ranks: ranks, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ranks < out[j].Ranks })
	return out
}

// Winner returns the candidate holding the top allocation of the final
// round with a nonzero vote count, or nil when tabulation produced no
// rounds or the contest emptied out.
func Winner(rounds []models.Round) *models.CandidateID {
	if len(rounds) == 0 {
		return nil
	}
	final := rounds[len(rounds)-1].Allocations
	if len(final) == 0 {
		return nil
	}
	top := final[0]
	if top.Allocatee.Exhausted || top.Votes == 0 {
		return nil
	}
	id := top.Allocatee.Candidate
	return &id
}

// TotalVotes summarizes each candidate's path through the rounds: first
// round votes, the net gained through transfers, and the round the
// candidate was eliminated in, if any.
func TotalVotes(rounds []models.Round, numCandidates int, winner *models.CandidateID) []models.CandidateVotes {
	if len(rounds) == 0 {
		return nil
	}

	firstVotes := make([]int, numCandidates)
	lastVotes := make([]int, numCandidates)
	lastSeen := make([]int, numCandidates)
	for i := range lastSeen {
		lastSeen[i] = -1
	}
	for r, round := range rounds {
		for _, a := range round.Allocations {
			if a.Allocatee.Exhausted {
				continue
			}
			c := a.Allocatee.Candidate
			if r == 0 {
				firstVotes[c] = a.Votes
			}
			lastVotes[c] = a.Votes
			lastSeen[c] = r
		}
	}

	out := make([]models.CandidateVotes, 0, numCandidates)
	for id := 0; id < numCandidates; id++ {
		if lastSeen[id] < 0 {
			continue
		}
		cv := models.CandidateVotes{
			Candidate:       models.CandidateID(id),
			FirstRoundVotes: firstVotes[id],
			TransferVotes:   lastVotes[id] - firstVotes[id],
		}
		if lastSeen[id] < len(rounds)-1 {
			round := lastSeen[id]
			cv.RoundEliminated = &round
		}
		if winner != nil && *winner == models.CandidateID(id) {
			cv.Winner = true
		}
		out = append(out, cv)
	}
	return out
}

// Copyright (c) 2026 OpenBallot.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package analyze

import (
	"github.com/openballot/rcvtally/models"
)

// Report assembles the full contest report from normalized ballots and
// the tabulation rounds: winner, pairwise matrix, Smith set, Condorcet
// winner, and the voter-behavior distributions.
func Report(info models.ContestInfo, e models.NormalizedElection, rounds []models.Round) models.ContestReport {
	n := len(e.Candidates)
	winner := Winner(rounds)
	pairwise := Pairwise(e.Ballots, n)
	smith := SmithSet(pairwise)
	rankingLength, byCandidate := RankingLengths(e.Ballots, n)

	return models.ContestReport{
		Info:          info,
		NumCandidates: n,
		NumBallots:    len(e.Ballots),
		Candidates:    e.Candidates,
		Rounds:        rounds,

		Winner:    winner,
		Condorcet: CondorcetWinner(smith),
		SmithSet:  smith,

		Pairwise:                 pairwise,
		FirstAlternate:           FirstAlternate(e.Ballots, n),
		FirstFinal:               FirstFinal(e.Ballots, rounds, n),
		RankingLength:            rankingLength,
		RankingLengthByCandidate: byCandidate,
		TotalVotes:               TotalVotes(rounds, n, winner),
	}
}

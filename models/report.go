// Copyright (c) 2026 OpenBallot.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// ContestInfo identifies a contest within a jurisdiction and election.
type ContestInfo struct {
	Jurisdiction     string `json:"jurisdiction"`
	JurisdictionName string `json:"jurisdiction_name"`
	Election         string `json:"election"`
	Name             string `json:"name"`
	Date             string `json:"date"`
	Office           string `json:"office"`
	OfficeName       string `json:"office_name"`
	DataFormat       string `json:"data_format"`
}

// ElectionPreprocessed pairs contest identity with its normalized ballots.
// It is the cacheable unit between reading and report generation.
type ElectionPreprocessed struct {
	Info    ContestInfo        `json:"info"`
	Ballots NormalizedElection `json:"ballots"`
}

// PairwiseCell holds head-to-head counts for one ordered candidate pair.
type PairwiseCell struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

// PairwiseTable is a dense candidates×candidates preference matrix.
// Cells is row-major: Cells[a*N+b] counts ballots preferring a over b.
type PairwiseTable struct {
	N     int            `json:"n"`
	Cells []PairwiseCell `json:"cells"`
}

// Cell returns the counts for the ordered pair (a, b).
func (t *PairwiseTable) Cell(a, b CandidateID) PairwiseCell {
	return t.Cells[int(a)*t.N+int(b)]
}

// Fraction returns the share of comparable ballots preferring a over b.
// The second return is false when the pair never co-occurred comparably.
func (t *PairwiseTable) Fraction(a, b CandidateID) (float64, bool) {
	c := t.Cell(a, b)
	denom := c.Wins + c.Losses
	if denom == 0 {
		return 0, false
	}
	return float64(c.Wins) / float64(denom), true
}

// WeightedAllocatee is one destination within a transfer distribution.
type WeightedAllocatee struct {
	To       Allocatee `json:"to"`
	Count    int       `json:"count"`
	Fraction float64   `json:"fraction"`
}

// TransferDistribution reports, for one candidate's first-choice voters,
// where those ballots went (to another candidate or to exhaustion) as a
// fraction of the candidate's first-choice total.
type TransferDistribution struct {
	Candidate    CandidateID         `json:"candidate"`
	Total        int                 `json:"total"`
	Destinations []WeightedAllocatee `json:"destinations"`
}

// RankingCount is one bucket of the ranking-length distribution.
type RankingCount struct {
	Ranks int `json:"ranks"`
	Count int `json:"count"`
}

// CandidateVotes summarizes one candidate's path through tabulation.
// TransferVotes is the delta between the candidate's final-round and
// first-round vote counts. RoundEliminated is nil for survivors.
type CandidateVotes struct {
	Candidate       CandidateID `json:"candidate"`
	FirstRoundVotes int         `json:"first_round_votes"`
	TransferVotes   int         `json:"transfer_votes"`
	RoundEliminated *int        `json:"round_eliminated,omitempty"`
	Winner          bool        `json:"winner"`
}

// ContestReport is the complete output for one contest: the tabulation
// rounds plus the social-choice analysis, in a shape the persistence
// writer can store losslessly.
type ContestReport struct {
	Info          ContestInfo `json:"info"`
	NumCandidates int         `json:"num_candidates"`
	NumBallots    int         `json:"num_ballots"`
	Candidates    []Candidate `json:"candidates"`
	Rounds        []Round     `json:"rounds"`

	Winner    *CandidateID  `json:"winner,omitempty"`
	Condorcet *CandidateID  `json:"condorcet,omitempty"`
	SmithSet  []CandidateID `json:"smith_set"`

	Pairwise       *PairwiseTable         `json:"pairwise"`
	FirstAlternate []TransferDistribution `json:"first_alternate"`
	FirstFinal     []TransferDistribution `json:"first_final"`
	RankingLength  []RankingCount         `json:"ranking_length"`
	// RankingLengthByCandidate is indexed by first-choice candidate id.
	RankingLengthByCandidate [][]RankingCount `json:"ranking_length_by_candidate"`
	TotalVotes               []CandidateVotes `json:"total_votes"`
}

// WinnerCandidate resolves the winner to a candidate record, if any.
func (r *ContestReport) WinnerCandidate() *Candidate {
	if r.Winner == nil {
		return nil
	}
	return &r.Candidates[*r.Winner]
}

// ContestIndexEntry is the per-contest summary published in the report
// index.
type ContestIndexEntry struct {
	Office                string `json:"office"`
	OfficeName            string `json:"office_name"`
	Name                  string `json:"name"`
	Winner                string `json:"winner"`
	NumCandidates         int    `json:"num_candidates"`
	NumRounds             int    `json:"num_rounds"`
	CondorcetWinner       string `json:"condorcet_winner,omitempty"`
	HasNonCondorcetWinner bool   `json:"has_non_condorcet_winner"`
}

// ElectionIndexEntry groups contest summaries for one election.
type ElectionIndexEntry struct {
	Path             string              `json:"path"`
	JurisdictionName string              `json:"jurisdiction_name"`
	ElectionName     string              `json:"election_name"`
	Date             string              `json:"date"`
	Contests         []ContestIndexEntry `json:"contests"`
}

// ReportIndex is the top-level index of all published elections, sorted
// by date descending.
type ReportIndex struct {
	Elections []ElectionIndexEntry `json:"elections"`
}

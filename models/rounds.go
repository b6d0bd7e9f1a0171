// Copyright (c) 2026 OpenBallot.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"encoding/json"
	"strconv"
)

// Allocatee is the destination of a ballot within a tabulation round:
// either a candidate still standing, or the exhausted bucket.
type Allocatee struct {
	Exhausted bool
	Candidate CandidateID // valid only when !Exhausted
}

// Exhausted is the single exhausted-ballots bucket. It is a sentinel
// destination, not a candidate.
var Exhausted = Allocatee{Exhausted: true}

// ToCandidate returns an allocatee addressing a still-standing candidate.
func ToCandidate(id CandidateID) Allocatee {
	return Allocatee{Candidate: id}
}

func (a Allocatee) String() string {
	if a.Exhausted {
		return "exhausted"
	}
	return strconv.Itoa(int(a.Candidate))
}

// MarshalJSON encodes an allocatee as a candidate id or the string
// "exhausted".
func (a Allocatee) MarshalJSON() ([]byte, error) {
	if a.Exhausted {
		return json.Marshal("exhausted")
	}
	return json.Marshal(int(a.Candidate))
}

func (a *Allocatee) UnmarshalJSON(data []byte) error {
	var id int
	if err := json.Unmarshal(data, &id); err == nil {
		*a = ToCandidate(CandidateID(id))
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*a = Exhausted
	return nil
}

// Allocation is one bucket of a round: every ballot counts toward exactly
// one allocation per round.
type Allocation struct {
	Allocatee Allocatee `json:"allocatee"`
	Votes     int       `json:"votes"`
}

// Transfer describes ballots moved out of an eliminated candidate. It is
// attached to the round that follows the elimination.
type Transfer struct {
	From  CandidateID `json:"from"`
	To    Allocatee   `json:"to"`
	Count int         `json:"count"`
}

// Round is one step of the elimination state machine. Allocations lists
// every candidate still standing, sorted by votes descending, plus exactly
// one Exhausted entry. Undervote and Overvote count ballots exhausted via
// each cause. ContinuingBallots is the sum of non-exhausted votes.
type Round struct {
	Allocations       []Allocation `json:"allocations"`
	Undervote         int          `json:"undervote"`
	Overvote          int          `json:"overvote"`
	ContinuingBallots int          `json:"continuing_ballots"`
	Transfers         []Transfer   `json:"transfers"`
}

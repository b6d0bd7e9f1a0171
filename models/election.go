package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Candidate type constants
const (
	CandidateRegular          = "regular"
	CandidateWriteIn          = "write_in"
	CandidateQualifiedWriteIn = "qualified_write_in"
)

// CandidateID is a dense, zero-based index into a contest's candidate list.
// IDs are assigned once per contest and never renumbered mid-computation.
type CandidateID int

// Candidate is immutable once built.
type Candidate struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// ChoiceKind discriminates the three states of a single ranking position.
type ChoiceKind uint8

const (
	KindVote ChoiceKind = iota
	KindUndervote
	KindOvervote
)

// Choice is one ranking position on a raw ballot: a vote for a candidate,
// a skipped rank (undervote), or multiple marks at one rank (overvote).
type Choice struct {
	Kind      ChoiceKind
	Candidate CandidateID
}

func Vote(id CandidateID) Choice { return Choice{Kind: KindVote, Candidate: id} }

var (
	Undervote = Choice{Kind: KindUndervote}
	Overvote  = Choice{Kind: KindOvervote}
)

func (c Choice) String() string {
	switch c.Kind {
	case KindVote:
		return "vote:" + strconv.Itoa(int(c.Candidate))
	case KindUndervote:
		return "undervote"
	default:
		return "overvote"
	}
}

// MarshalJSON encodes a choice as "vote:N", "undervote", or "overvote".
func (c Choice) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Choice) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch {
	case s == "undervote":
		*c = Undervote
	case s == "overvote":
		*c = Overvote
	case strings.HasPrefix(s, "vote:"):
		id, err := strconv.Atoi(strings.TrimPrefix(s, "vote:"))
		if err != nil {
			return fmt.Errorf("invalid choice %q: %w", s, err)
		}
		*c = Vote(CandidateID(id))
	default:
		return fmt.Errorf("invalid choice %q", s)
	}
	return nil
}

// Ballot is a raw per-ballot mark sequence, ordered by rank position.
// Ballots are produced by format readers and consumed by the normalizer.
type Ballot struct {
	ID      string   `json:"id"`
	Choices []Choice `json:"choices"`
}

// NormalizedBallot is an ordered, deduplicated candidate-preference list.
// Overvoted records that normalization stopped at an overvote; the ranked
// list simply ends at that point.
type NormalizedBallot struct {
	ID        string        `json:"id"`
	Choices   []CandidateID `json:"choices"`
	Overvoted bool          `json:"overvoted"`
}

// Election is the in-memory ballot set for one contest, as produced by a
// format reader.
type Election struct {
	Candidates []Candidate `json:"candidates"`
	Ballots    []Ballot    `json:"ballots"`
}

// NormalizedElection is an election after ballot normalization.
type NormalizedElection struct {
	Candidates []Candidate        `json:"candidates"`
	Ballots    []NormalizedBallot `json:"ballots"`
}

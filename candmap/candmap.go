// Copyright (c) 2026 OpenBallot.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package candmap

import (
	"errors"
	"fmt"

	"github.com/openballot/rcvtally/models"
)

// ErrUnknownCandidate reports a ballot referencing a candidate identifier
// that was never interned. It signals a corrupt or mismatched ballot/
// manifest pair and aborts the contest.
var ErrUnknownCandidate = errors.New("unknown candidate")

// Map interns candidates addressed by heterogeneous external identifiers
// and hands out dense CandidateIDs. IDs are stable for the lifetime of one
// contest.
type Map[K comparable] struct {
	ids        map[K]models.CandidateID
	byName     map[string]models.CandidateID
	candidates []models.Candidate
}

func New[K comparable]() *Map[K] {
	return &Map[K]{
		ids:    make(map[K]models.CandidateID),
		byName: make(map[string]models.CandidateID),
	}
}

// Add interns a candidate under an external identifier and returns its
// dense id. A repeated external id returns the existing id. An unseen
// external id whose candidate name was already interned reuses that id;
// some formats address the same candidate by different external keys
// across files.
func (m *Map[K]) Add(external K, c models.Candidate) models.CandidateID {
	if id, ok := m.ids[external]; ok {
		return id
	}
	if id, ok := m.byName[c.Name]; ok {
		m.ids[external] = id
		return id
	}
	id := models.CandidateID(len(m.candidates))
	m.candidates = append(m.candidates, c)
	m.ids[external] = id
	m.byName[c.Name] = id
	return id
}

// Resolve maps an external identifier to its interned id. It fails with
// ErrUnknownCandidate if the id was never interned.
func (m *Map[K]) Resolve(external K) (models.CandidateID, error) {
	id, ok := m.ids[external]
	if !ok {
		return 0, fmt.Errorf("resolve %v: %w", external, ErrUnknownCandidate)
	}
	return id, nil
}

// Choice resolves an external identifier to a Vote choice.
func (m *Map[K]) Choice(external K) (models.Choice, error) {
	id, err := m.Resolve(external)
	if err != nil {
		return models.Choice{}, err
	}
	return models.Vote(id), nil
}

// AddChoice interns a candidate and returns a Vote for it in one step.
// Readers that discover candidates from the ballots themselves use this.
func (m *Map[K]) AddChoice(external K, c models.Candidate) models.Choice {
	return models.Vote(m.Add(external, c))
}

// Candidates returns the interned candidate list in dense-id order.
func (m *Map[K]) Candidates() []models.Candidate {
	return m.candidates
}

// Len reports the number of distinct interned candidates.
func (m *Map[K]) Len() int {
	return len(m.candidates)
}

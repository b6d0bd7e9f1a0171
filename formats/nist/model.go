// Copyright (c) 2026 OpenBallot.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package nist

// Wire types for the Dominion NIST SP 1500-103 JSON export. Only the
// fields the reader consumes are declared; the export carries much more.

type candidateManifest struct {
	List []manifestCandidate `json:"List"`
}

type manifestCandidate struct {
	Description string `json:"Description"`
	ID          int    `json:"Id"`
	ContestID   int    `json:"ContestId"`
	Type        string `json:"Type"`
}

type cvrExport struct {
	Sessions []session `json:"Sessions"`
}

// session is one scanned ballot. Modified, when present, supersedes the
// Original snapshot (adjudicated ballots).
type session struct {
	RecordID int       `json:"RecordId"`
	Original snapshot  `json:"Original"`
	Modified *snapshot `json:"Modified"`
}

// snapshot holds contest marks either directly or nested under Cards,
// depending on the export generation.
type snapshot struct {
	Contests []contestMarks `json:"Contests"`
	Cards    []card         `json:"Cards"`
}

type card struct {
	Contests []contestMarks `json:"Contests"`
}

type contestMarks struct {
	ID    int    `json:"Id"`
	Marks []mark `json:"Marks"`
}

type mark struct {
	CandidateID int  `json:"CandidateId"`
	Rank        int  `json:"Rank"`
	IsAmbiguous bool `json:"IsAmbiguous"`
}

// contests returns the session's effective contest marks, preferring the
// adjudicated snapshot.
func (s *session) contests() []contestMarks {
	snap := &s.Original
	if s.Modified != nil {
		snap = s.Modified
	}
	if len(snap.Cards) == 0 {
		return snap.Contests
	}
	var out []contestMarks
	out = append(out, snap.Contests...)
	for _, c := range snap.Cards {
		out = append(out, c.Contests...)
	}
	return out
}

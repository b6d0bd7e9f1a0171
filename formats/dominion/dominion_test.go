// Copyright (c) 2026 OpenBallot.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package dominion

import (
	"reflect"
	"strings"
	"testing"

	"github.com/openballot/rcvtally/models"
)

const sample = "1\t3\t2\t1\n" +
	"City Council Ward 5\n" +
	"Alice Anders\n" +
	"Bob Brown\n" +
	"Carol Chen\n" +
	"1\tPrecinct One\n" +
	"2\tPrecinct Two\n" +
	"1\tElection Day\n" +
	"1\t1\t2\t1\t2\t3\n" +
	"1\t1\t1\t0\t2\t1=3\n" +
	"2\t1\t1\t3\t0\t0\n"

func TestParse(t *testing.T) {
	election, err := Parse(sample)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	wantCandidates := []models.Candidate{
		{Name: "Alice Anders", Type: models.CandidateRegular},
		{Name: "Bob Brown", Type: models.CandidateRegular},
		{Name: "Carol Chen", Type: models.CandidateRegular},
	}
	if !reflect.DeepEqual(election.Candidates, wantCandidates) {
		t.Errorf("candidates = %v, want %v", election.Candidates, wantCandidates)
	}

	// The first aggregated line expands into two identical ballots.
	if len(election.Ballots) != 4 {
		t.Fatalf("got %d ballots, want 4", len(election.Ballots))
	}
	wantFirst := []models.Choice{
		models.Vote(0), models.Vote(1), models.Vote(2),
	}
	for i := 0; i < 2; i++ {
		if !reflect.DeepEqual(election.Ballots[i].Choices, wantFirst) {
			t.Errorf("ballot %d choices = %v, want %v", i, election.Ballots[i].Choices, wantFirst)
		}
	}

	// Candidate number 0 is an undervote; '='-joined cells are overvotes.
	wantThird := []models.Choice{models.Undervote, models.Vote(1), models.Overvote}
	if !reflect.DeepEqual(election.Ballots[2].Choices, wantThird) {
		t.Errorf("ballot 2 choices = %v, want %v", election.Ballots[2].Choices, wantThird)
	}

	if election.Ballots[3].ID != "3" {
		t.Errorf("ballot ids should number sequentially, got %q", election.Ballots[3].ID)
	}
}

func TestParseCRLF(t *testing.T) {
	election, err := Parse(strings.ReplaceAll(sample, "\n", "\r\n"))
	if err != nil {
		t.Fatalf("Parse failed on CRLF input: %v", err)
	}
	if len(election.Ballots) != 4 {
		t.Errorf("got %d ballots, want 4", len(election.Ballots))
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"short header", "1\t2\n"},
		{"bad header count", "1\tx\t0\t0\nname\n"},
		{"truncated candidates", "1\t3\t0\t0\nname\nAlice\n"},
		{"candidate number out of range", "1\t1\t0\t0\nname\nAlice\n1\t1\t1\t2\n"},
		{"bad ballot count", "1\t1\t0\t0\nname\nAlice\n1\t1\tx\t1\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse(tc.input); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

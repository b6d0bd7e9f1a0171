// Copyright (c) 2026 OpenBallot.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package usmnmpls

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/openballot/rcvtally/formats/common"
	"github.com/openballot/rcvtally/models"
)

const sampleCSV = `Precinct,1st Choice,2nd Choice,3rd Choice,Count
P-01,Alice,Bob,undervote,2
P-01,Bob,overvote,Alice,1
P-02,UWI,Alice,,1
P-02,,,,1
`

func TestReadElectionCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ballots.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatal(err)
	}

	election, err := ReadElection(dir, common.Params{"file": "ballots.csv"})
	if err != nil {
		t.Fatalf("ReadElection failed: %v", err)
	}

	wantCandidates := []models.Candidate{
		{Name: "Alice", Type: models.CandidateRegular},
		{Name: "Bob", Type: models.CandidateRegular},
		{Name: "Undeclared Write-ins", Type: models.CandidateWriteIn},
	}
	if !reflect.DeepEqual(election.Candidates, wantCandidates) {
		t.Errorf("candidates = %v, want %v", election.Candidates, wantCandidates)
	}

	if len(election.Ballots) != 5 {
		t.Fatalf("got %d ballots, want 5", len(election.Ballots))
	}

	// The count column expands rows into identical ballots.
	wantFirst := []models.Choice{models.Vote(0), models.Vote(1), models.Undervote}
	for i := 0; i < 2; i++ {
		if !reflect.DeepEqual(election.Ballots[i].Choices, wantFirst) {
			t.Errorf("ballot %d choices = %v, want %v", i, election.Ballots[i].Choices, wantFirst)
		}
	}
	if election.Ballots[0].ID != "P-01:1" || election.Ballots[1].ID != "P-01:2" {
		t.Errorf("ballot ids = %q, %q", election.Ballots[0].ID, election.Ballots[1].ID)
	}

	// Any overvote cell collapses the whole ballot.
	if want := []models.Choice{models.Overvote}; !reflect.DeepEqual(election.Ballots[2].Choices, want) {
		t.Errorf("overvoted ballot choices = %v, want %v", election.Ballots[2].Choices, want)
	}

	// UWI interns as the write-in bucket; empty cells are undervotes.
	wantUWI := []models.Choice{models.Vote(2), models.Vote(0), models.Undervote}
	if !reflect.DeepEqual(election.Ballots[3].Choices, wantUWI) {
		t.Errorf("UWI ballot choices = %v, want %v", election.Ballots[3].Choices, wantUWI)
	}
	wantEmpty := []models.Choice{models.Undervote, models.Undervote, models.Undervote}
	if !reflect.DeepEqual(election.Ballots[4].Choices, wantEmpty) {
		t.Errorf("empty ballot choices = %v, want %v", election.Ballots[4].Choices, wantEmpty)
	}
}

func TestReadElectionMissingFile(t *testing.T) {
	if _, err := ReadElection(t.TempDir(), common.Params{"file": "absent.csv"}); err == nil {
		t.Error("expected an error for a missing ballot file")
	}
}

func TestReadElectionMissingParam(t *testing.T) {
	if _, err := ReadElection(t.TempDir(), common.Params{}); err == nil {
		t.Error("expected an error for a missing file parameter")
	}
}

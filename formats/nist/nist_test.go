// Copyright (c) 2026 OpenBallot.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package nist

import (
	"archive/zip"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/openballot/rcvtally/formats/common"
	"github.com/openballot/rcvtally/models"
)

const manifestJSON = `{
  "List": [
    {"Description": "Alice Anders", "Id": 101, "ContestId": 7, "Type": "Regular"},
    {"Description": "Bob Brown", "Id": 102, "ContestId": 7, "Type": "Regular"},
    {"Description": "Write-in", "Id": 103, "ContestId": 7, "Type": "WriteIn"},
    {"Description": "Other Race", "Id": 201, "ContestId": 8, "Type": "Regular"}
  ]
}`

const cvrJSON = `{
  "Sessions": [
    {
      "RecordId": 1,
      "Original": {
        "Contests": [
          {"Id": 7, "Marks": [
            {"CandidateId": 101, "Rank": 1, "IsAmbiguous": false},
            {"CandidateId": 102, "Rank": 2, "IsAmbiguous": false}
          ]},
          {"Id": 8, "Marks": [{"CandidateId": 201, "Rank": 1, "IsAmbiguous": false}]}
        ]
      }
    },
    {
      "RecordId": 2,
      "Original": {
        "Contests": [
          {"Id": 7, "Marks": [
            {"CandidateId": 101, "Rank": 1, "IsAmbiguous": false},
            {"CandidateId": 102, "Rank": 1, "IsAmbiguous": false},
            {"CandidateId": 103, "Rank": 2, "IsAmbiguous": false},
            {"CandidateId": 101, "Rank": 3, "IsAmbiguous": true}
          ]}
        ]
      }
    },
    {
      "RecordId": 3,
      "Original": {
        "Contests": [{"Id": 7, "Marks": [{"CandidateId": 102, "Rank": 1, "IsAmbiguous": false}]}]
      },
      "Modified": {
        "Contests": [{"Id": 7, "Marks": [{"CandidateId": 101, "Rank": 1, "IsAmbiguous": false}]}]
      }
    }
  ]
}`

func writeCVRDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "CandidateManifest.json"), []byte(manifestJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "CvrExport_1.json"), []byte(cvrJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestReadElectionFromDirectory(t *testing.T) {
	dir := writeCVRDir(t)

	election, err := ReadElection(dir, common.Params{"cvr": ".", "contest": "7"})
	if err != nil {
		t.Fatalf("ReadElection failed: %v", err)
	}

	wantCandidates := []models.Candidate{
		{Name: "Alice Anders", Type: models.CandidateRegular},
		{Name: "Bob Brown", Type: models.CandidateRegular},
		{Name: "Write-in", Type: models.CandidateWriteIn},
	}
	if !reflect.DeepEqual(election.Candidates, wantCandidates) {
		t.Errorf("candidates = %v, want %v", election.Candidates, wantCandidates)
	}
	if len(election.Ballots) != 3 {
		t.Fatalf("got %d ballots, want 3", len(election.Ballots))
	}

	// Session 1: clean two-rank ballot for the requested contest only.
	want1 := []models.Choice{models.Vote(0), models.Vote(1)}
	if !reflect.DeepEqual(election.Ballots[0].Choices, want1) {
		t.Errorf("ballot 0 choices = %v, want %v", election.Ballots[0].Choices, want1)
	}
	if election.Ballots[0].ID != "CvrExport_1.json:1" {
		t.Errorf("ballot 0 id = %q", election.Ballots[0].ID)
	}

	// Session 2: two marks at rank 1 overvote; the ambiguous rank-3 mark
	// reads as an undervote.
	want2 := []models.Choice{models.Overvote, models.Vote(2), models.Undervote}
	if !reflect.DeepEqual(election.Ballots[1].Choices, want2) {
		t.Errorf("ballot 1 choices = %v, want %v", election.Ballots[1].Choices, want2)
	}

	// Session 3: the adjudicated snapshot wins.
	want3 := []models.Choice{models.Vote(0)}
	if !reflect.DeepEqual(election.Ballots[2].Choices, want3) {
		t.Errorf("ballot 2 choices = %v, want %v", election.Ballots[2].Choices, want3)
	}
}

func TestReadElectionDropUnqualifiedWriteIn(t *testing.T) {
	dir := writeCVRDir(t)

	election, err := ReadElection(dir, common.Params{
		"cvr": ".", "contest": "7", "dropUnqualifiedWriteIn": "true",
	})
	if err != nil {
		t.Fatalf("ReadElection failed: %v", err)
	}

	if len(election.Candidates) != 2 {
		t.Fatalf("got %d candidates, want 2 after dropping the write-in", len(election.Candidates))
	}
	// Session 2's rank-2 write-in mark now reads as an undervote.
	want := []models.Choice{models.Overvote, models.Undervote, models.Undervote}
	if !reflect.DeepEqual(election.Ballots[1].Choices, want) {
		t.Errorf("ballot 1 choices = %v, want %v", election.Ballots[1].Choices, want)
	}
}

func TestReadElectionFromZip(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "cvr.zip")

	f, err := os.Create(zipPath)
	if err != nil {
		t.Fatal(err)
	}
	w := zip.NewWriter(f)
	for name, content := range map[string]string{
		"CandidateManifest.json": manifestJSON,
		"CvrExport_1.json":       cvrJSON,
	} {
		entry, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := entry.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	election, err := ReadElection(dir, common.Params{"cvr": "cvr.zip", "contest": "7"})
	if err != nil {
		t.Fatalf("ReadElection failed: %v", err)
	}
	if len(election.Ballots) != 3 || len(election.Candidates) != 3 {
		t.Errorf("got %d ballots and %d candidates, want 3 and 3",
			len(election.Ballots), len(election.Candidates))
	}
}

func TestReadElectionUnknownCandidateInMarks(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "CandidateManifest.json"), []byte(manifestJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	bad := `{"Sessions": [{"RecordId": 1, "Original": {"Contests": [
		{"Id": 7, "Marks": [{"CandidateId": 999, "Rank": 1, "IsAmbiguous": false}]}
	]}}]}`
	if err := os.WriteFile(filepath.Join(dir, "CvrExport_1.json"), []byte(bad), 0o644); err != nil {
		t.Fatal(err)
	}

	// A file with an unknown candidate id is skipped, not fatal.
	election, err := ReadElection(dir, common.Params{"cvr": ".", "contest": "7"})
	if err != nil {
		t.Fatalf("ReadElection failed: %v", err)
	}
	if len(election.Ballots) != 0 {
		t.Errorf("got %d ballots from a corrupt export, want 0", len(election.Ballots))
	}
}

func TestResolveCVRPath(t *testing.T) {
	t.Run("dot is the base directory", func(t *testing.T) {
		base := t.TempDir()
		if got := ResolveCVRPath(base, "."); got != base {
			t.Errorf("got %q, want %q", got, base)
		}
	})

	t.Run("joins the cvr name", func(t *testing.T) {
		base := t.TempDir()
		sub := filepath.Join(base, "cvr")
		if err := os.Mkdir(sub, 0o755); err != nil {
			t.Fatal(err)
		}
		if got := ResolveCVRPath(base, "cvr"); got != sub {
			t.Errorf("got %q, want %q", got, sub)
		}
	})

	t.Run("missing zip falls back to extracted directory", func(t *testing.T) {
		base := t.TempDir()
		sub := filepath.Join(base, "cvr")
		if err := os.Mkdir(sub, 0o755); err != nil {
			t.Fatal(err)
		}
		if got := ResolveCVRPath(base, "cvr.zip"); got != sub {
			t.Errorf("got %q, want %q", got, sub)
		}
	})

	t.Run("missing name falls back to base with manifest", func(t *testing.T) {
		base := t.TempDir()
		if err := os.WriteFile(filepath.Join(base, "CandidateManifest.json"), nil, 0o644); err != nil {
			t.Fatal(err)
		}
		if got := ResolveCVRPath(base, "nonexistent"); got != base {
			t.Errorf("got %q, want %q", got, base)
		}
	})

	t.Run("no fallback without manifest", func(t *testing.T) {
		base := t.TempDir()
		want := filepath.Join(base, "nonexistent")
		if got := ResolveCVRPath(base, "nonexistent"); got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})
}

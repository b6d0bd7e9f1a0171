// Copyright (c) 2026 OpenBallot.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package report

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/openballot/rcvtally/models"
)

const jurisdictionJSON = `{
  "name": "Testville",
  "path": "us/tv",
  "offices": {"mayor": {"name": "Mayor"}},
  "elections": {
    "2024-11": {
      "name": "November 2024 General",
      "date": "2024-11-05",
      "dataFormat": "dominion_rcr",
      "contests": [{"office": "mayor", "loaderParams": {"file": "ballots.rcr"}}]
    }
  }
}`

// Ten ballots over three candidates: Alice wins after Carol's
// elimination.
const rcrExport = "1\t3\t1\t1\n" +
	"November 2024 General\n" +
	"Alice Anders\n" +
	"Bob Brown\n" +
	"Carol Chen\n" +
	"1\tPrecinct One\n" +
	"1\tElection Day\n" +
	"1\t1\t4\t1\t2\n" +
	"1\t1\t3\t2\t1\n" +
	"1\t1\t3\t3\t1\n"

func pipelineDirs(t *testing.T) Options {
	t.Helper()
	root := t.TempDir()
	opts := Options{
		MetaDir:         filepath.Join(root, "meta"),
		RawDir:          filepath.Join(root, "raw"),
		ReportDir:       filepath.Join(root, "reports"),
		PreprocessedDir: filepath.Join(root, "preprocessed"),
		Workers:         2,
	}

	metaPath := filepath.Join(opts.MetaDir, "tv.json")
	if err := os.MkdirAll(opts.MetaDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(metaPath, []byte(jurisdictionJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	rawDir := filepath.Join(opts.RawDir, "us", "tv", "2024-11")
	if err := os.MkdirAll(rawDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(rawDir, "ballots.rcr"), []byte(rcrExport), 0o644); err != nil {
		t.Fatal(err)
	}
	return opts
}

func TestRunEndToEnd(t *testing.T) {
	opts := pipelineDirs(t)

	index, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(index.Elections) != 1 {
		t.Fatalf("index has %d elections, want 1", len(index.Elections))
	}
	election := index.Elections[0]
	if election.Path != "us/tv/2024-11" || election.Date != "2024-11-05" {
		t.Errorf("election entry = %+v", election)
	}
	if len(election.Contests) != 1 {
		t.Fatalf("election has %d contests, want 1", len(election.Contests))
	}
	contest := election.Contests[0]
	if contest.Winner != "Alice Anders" {
		t.Errorf("winner = %q, want Alice Anders", contest.Winner)
	}
	if contest.NumCandidates != 3 || contest.NumRounds != 2 {
		t.Errorf("contest entry = %+v", contest)
	}
	if contest.CondorcetWinner != "Alice Anders" || contest.HasNonCondorcetWinner {
		t.Errorf("Condorcet fields = %q, %v", contest.CondorcetWinner, contest.HasNonCondorcetWinner)
	}

	// The artifacts land where the frontend expects them.
	contestDir := filepath.Join("us", "tv", "2024-11", "mayor")
	for _, path := range []string{
		filepath.Join(opts.ReportDir, "index.json"),
		filepath.Join(opts.ReportDir, contestDir, "report.json"),
		filepath.Join(opts.PreprocessedDir, contestDir, "normalized.json.gz"),
	} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("missing artifact %s: %v", path, err)
		}
	}

	// The stored report round-trips losslessly.
	var stored models.ContestReport
	if err := ReadJSON(filepath.Join(opts.ReportDir, contestDir, "report.json"), &stored); err != nil {
		t.Fatalf("reading stored report: %v", err)
	}
	if stored.Winner == nil || *stored.Winner != 0 {
		t.Errorf("stored winner = %v, want candidate 0", stored.Winner)
	}
	if stored.NumBallots != 10 || len(stored.Rounds) != 2 {
		t.Errorf("stored report = %d ballots, %d rounds", stored.NumBallots, len(stored.Rounds))
	}

	// A second run reuses the cached artifacts and produces the same
	// index.
	again, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Run failed: %v", err)
	}
	if !reflect.DeepEqual(index, again) {
		t.Error("cached rerun produced a different index")
	}

	// Force flags regenerate without changing the result.
	opts.ForcePreprocess = true
	opts.ForceReport = true
	forced, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("forced Run failed: %v", err)
	}
	if !reflect.DeepEqual(index, forced) {
		t.Error("forced rerun produced a different index")
	}
}

func TestRunJurisdictionFilter(t *testing.T) {
	opts := pipelineDirs(t)

	opts.Jurisdiction = "us/other"
	index, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(index.Elections) != 0 {
		t.Errorf("filter matched %d elections, want 0", len(index.Elections))
	}

	opts.Jurisdiction = "us/tv"
	index, err = Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(index.Elections) != 1 {
		t.Errorf("filter matched %d elections, want 1", len(index.Elections))
	}
}

func TestRunContestFailureDoesNotAbort(t *testing.T) {
	opts := pipelineDirs(t)
	// Remove the raw export so the contest fails to read.
	if err := os.Remove(filepath.Join(opts.RawDir, "us", "tv", "2024-11", "ballots.rcr")); err != nil {
		t.Fatal(err)
	}

	index, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("Run should not fail on a contest error: %v", err)
	}
	if len(index.Elections) != 1 {
		t.Fatalf("index has %d elections, want 1", len(index.Elections))
	}
	if got := len(index.Elections[0].Contests); got != 0 {
		t.Errorf("failed contest produced %d index entries, want 0", got)
	}
}

func TestWriteReadJSONGzip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "data.json.gz")

	in := map[string]int{"a": 1, "b": 2}
	if err := WriteJSON(path, in); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	var out map[string]int
	if err := ReadJSON(path, &out); err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip = %v, want %v", out, in)
	}
}

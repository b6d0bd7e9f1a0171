// Copyright (c) 2026 OpenBallot.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package report

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/openballot/rcvtally/meta"
	"github.com/openballot/rcvtally/models"
)

// Options configures one pipeline run.
type Options struct {
	MetaDir         string
	RawDir          string
	ReportDir       string
	PreprocessedDir string

	// Jurisdiction restricts the run to one jurisdiction path, e.g.
	// "us/me". Empty means all.
	Jurisdiction string

	// ForcePreprocess regenerates normalized ballot caches even when
	// present; ForceReport regenerates reports from cached ballots.
	ForcePreprocess bool
	ForceReport     bool

	// Workers bounds concurrent jurisdiction processing. Zero or
	// negative means one.
	Workers int
}

// Run executes the pipeline over every metadata-declared contest and
// writes index.json to the report directory. A contest that fails is
// logged and left out of the index; the batch always continues.
func Run(ctx context.Context, opts Options) (models.ReportIndex, error) {
	jurisdictions, err := meta.ReadMetadata(opts.MetaDir)
	if err != nil {
		return models.ReportIndex{}, err
	}

	if opts.Jurisdiction != "" {
		slog.Info("filtering to jurisdiction", "path", opts.Jurisdiction)
		filtered := jurisdictions[:0]
		for _, j := range jurisdictions {
			if j.Path == opts.Jurisdiction {
				filtered = append(filtered, j)
			}
		}
		jurisdictions = filtered
	}
	if len(jurisdictions) == 0 {
		slog.Warn("no jurisdictions matched", "filter", opts.Jurisdiction)
		return models.ReportIndex{}, nil
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	// One slot per jurisdiction keeps the output deterministic without
	// coordinating the workers.
	results := make([][]models.ElectionIndexEntry, len(jurisdictions))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, jurisdiction := range jurisdictions {
		i, jurisdiction := i, jurisdiction
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = processJurisdiction(jurisdiction, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.ReportIndex{}, err
	}

	var entries []models.ElectionIndexEntry
	for _, r := range results {
		entries = append(entries, r...)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date > entries[j].Date
		}
		return entries[i].Path > entries[j].Path
	})

	index := models.ReportIndex{Elections: entries}
	if err := WriteJSON(filepath.Join(opts.ReportDir, "index.json"), index); err != nil {
		return models.ReportIndex{}, err
	}
	return index, nil
}

func processJurisdiction(jurisdiction models.Jurisdiction, opts Options) []models.ElectionIndexEntry {
	rawBase := filepath.Join(opts.RawDir, filepath.FromSlash(jurisdiction.Path))

	electionPaths := make([]string, 0, len(jurisdiction.Elections))
	for p := range jurisdiction.Elections {
		electionPaths = append(electionPaths, p)
	}
	sort.Strings(electionPaths)

	entries := make([]models.ElectionIndexEntry, 0, len(electionPaths))
	for _, electionPath := range electionPaths {
		election := jurisdiction.Elections[electionPath]
		slog.Info("processing election",
			"jurisdiction", jurisdiction.Path, "election", electionPath, "name", election.Name)

		var contests []models.ContestIndexEntry
		for _, contest := range election.Contests {
			entry, err := processContest(rawBase, electionPath, election, jurisdiction, contest, opts)
			if err != nil {
				slog.Error("contest failed",
					"jurisdiction", jurisdiction.Path,
					"election", electionPath,
					"office", contest.Office,
					"error", err)
				continue
			}
			contests = append(contests, entry)
		}

		entries = append(entries, models.ElectionIndexEntry{
			Path:             jurisdiction.Path + "/" + electionPath,
			JurisdictionName: jurisdiction.Name,
			ElectionName:     election.Name,
			Date:             election.Date,
			Contests:         contests,
		})
	}
	return entries
}

func processContest(rawBase, electionPath string, election models.ElectionMetadata, jurisdiction models.Jurisdiction, contest models.Contest, opts Options) (models.ContestIndexEntry, error) {
	office, ok := jurisdiction.Offices[contest.Office]
	if !ok {
		return models.ContestIndexEntry{}, fmt.Errorf("office %q is not declared", contest.Office)
	}
	slog.Info("processing contest", "office", office.Name)

	contestDir := filepath.Join(filepath.FromSlash(jurisdiction.Path), electionPath, contest.Office)
	reportPath := filepath.Join(opts.ReportDir, contestDir, "report.json")
	preprocessedPath := filepath.Join(opts.PreprocessedDir, contestDir, "normalized.json.gz")

	var contestReport models.ContestReport
	if pathExists(reportPath) && pathExists(preprocessedPath) && !opts.ForceReport && !opts.ForcePreprocess {
		slog.Info("reusing existing report", "path", reportPath)
		if err := ReadJSON(reportPath, &contestReport); err != nil {
			return models.ContestIndexEntry{}, err
		}
		return indexEntry(contestReport), nil
	}

	var preprocessed models.ElectionPreprocessed
	if pathExists(preprocessedPath) && !opts.ForcePreprocess {
		slog.Info("loading preprocessed ballots", "path", preprocessedPath)
		if err := ReadJSON(preprocessedPath, &preprocessed); err != nil {
			return models.ContestIndexEntry{}, err
		}
	} else {
		slog.Info("preprocessing ballots", "path", preprocessedPath)
		var err error
		preprocessed, err = Preprocess(rawBase, electionPath, election, jurisdiction, contest)
		if err != nil {
			return models.ContestIndexEntry{}, err
		}
		if err := WriteJSON(preprocessedPath, preprocessed); err != nil {
			return models.ContestIndexEntry{}, err
		}
		slog.Info("preprocessed ballots", "ballots", len(preprocessed.Ballots.Ballots))
	}

	contestReport, err := Generate(preprocessed, election.Tabulation)
	if err != nil {
		return models.ContestIndexEntry{}, err
	}
	if err := WriteJSON(reportPath, contestReport); err != nil {
		return models.ContestIndexEntry{}, err
	}
	slog.Info("report written", "path", reportPath)

	return indexEntry(contestReport), nil
}

func indexEntry(r models.ContestReport) models.ContestIndexEntry {
	winner := "No Winner"
	if w := r.WinnerCandidate(); w != nil {
		winner = w.Name
	}
	var condorcet string
	if r.Condorcet != nil {
		condorcet = r.Candidates[*r.Condorcet].Name
	}
	nonCondorcet := r.Condorcet != nil &&
		(r.Winner == nil || *r.Winner != *r.Condorcet)

	return models.ContestIndexEntry{
		Office:                r.Info.Office,
		OfficeName:            r.Info.OfficeName,
		Name:                  r.Info.Name,
		Winner:                winner,
		NumCandidates:         r.NumCandidates,
		NumRounds:             len(r.Rounds),
		CondorcetWinner:       condorcet,
		HasNonCondorcetWinner: nonCondorcet,
	}
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

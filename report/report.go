// Copyright (c) 2026 OpenBallot.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package report orchestrates the pipeline: read raw ballots, normalize,
// tabulate, analyze, and publish per-contest reports plus a global
// index. Intermediate normalized ballots are cached on disk so report
// regeneration does not re-read the raw exports.
package report

import (
	"fmt"
	"path/filepath"

	"github.com/openballot/rcvtally/analyze"
	"github.com/openballot/rcvtally/formats"
	"github.com/openballot/rcvtally/models"
	"github.com/openballot/rcvtally/normalize"
	"github.com/openballot/rcvtally/tabulate"
)

// Preprocess reads one contest's raw ballots and normalizes them. The
// result is the cacheable unit between reading and report generation.
func Preprocess(rawBase, electionPath string, election models.ElectionMetadata, jurisdiction models.Jurisdiction, contest models.Contest) (models.ElectionPreprocessed, error) {
	raw, err := formats.Read(election.DataFormat, filepath.Join(rawBase, electionPath), contest.LoaderParams)
	if err != nil {
		return models.ElectionPreprocessed{}, fmt.Errorf("reading %s/%s %s: %w",
			jurisdiction.Path, electionPath, contest.Office, err)
	}

	normalized, err := normalize.Election(election.Normalization, raw)
	if err != nil {
		return models.ElectionPreprocessed{}, fmt.Errorf("normalizing %s/%s %s: %w",
			jurisdiction.Path, electionPath, contest.Office, err)
	}

	return models.ElectionPreprocessed{
		Info: models.ContestInfo{
			Jurisdiction:     jurisdiction.Path,
			JurisdictionName: jurisdiction.Name,
			Election:         electionPath,
			Name:             election.Name,
			Date:             election.Date,
			Office:           contest.Office,
			OfficeName:       jurisdiction.Offices[contest.Office].Name,
			DataFormat:       election.DataFormat,
		},
		Ballots: normalized,
	}, nil
}

// Generate tabulates a preprocessed contest and assembles its report.
func Generate(p models.ElectionPreprocessed, opts models.TabulationOptions) (models.ContestReport, error) {
	rounds, err := tabulate.Tabulate(p.Ballots.Ballots, len(p.Ballots.Candidates), opts)
	if err != nil {
		return models.ContestReport{}, fmt.Errorf("tabulating %s/%s %s: %w",
			p.Info.Jurisdiction, p.Info.Election, p.Info.Office, err)
	}
	return analyze.Report(p.Info, p.Ballots, rounds), nil
}

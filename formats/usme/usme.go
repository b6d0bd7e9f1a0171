// Copyright (c) 2026 OpenBallot.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package usme reads Maine's spreadsheet cast-vote-record exports.
//
// Each workbook's first sheet holds one ballot per row: the ballot id in
// column 0, bookkeeping in columns 1-2, and rank cells from column 3 on.
// A rank cell is "undervote", "overvote", or a candidate label of the
// form "DEM Smith, Jane (1234)"; the party prefix and trailing number are
// stripped before interning. Candidates are discovered from the ballots,
// so the same label across files maps to one candidate.
package usme

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/openballot/rcvtally/candmap"
	"github.com/openballot/rcvtally/formats/common"
	"github.com/openballot/rcvtally/models"
)

// Rank cells run from column 3 through column 9 on every Maine export
// seen so far; missing trailing cells read as undervotes.
const (
	firstRankColumn = 3
	lastRankColumn  = 10
)

var candidateRx = regexp.MustCompile(`(?:DEM |REP )?([^(]*[^ ()])(?: +\(\d+\))?`)

// ReadElection reads every workbook named by the semicolon-separated
// "files" loader parameter, relative to the contest's raw-data directory.
func ReadElection(path string, params common.Params) (models.Election, error) {
	filesParam, err := params.Get("files")
	if err != nil {
		return models.Election{}, err
	}

	cm := candmap.New[string]()
	var ballots []models.Ballot

	for _, file := range strings.Split(filesParam, ";") {
		slog.Debug("reading ballot workbook", "file", file)
		fileBallots, err := readWorkbook(filepath.Join(path, file), cm)
		if err != nil {
			return models.Election{}, fmt.Errorf("workbook %s: %w", file, err)
		}
		ballots = append(ballots, fileBallots...)
	}

	return models.Election{Candidates: cm.Candidates(), Ballots: ballots}, nil
}

func readWorkbook(path string, cm *candmap.Map[string]) ([]models.Ballot, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	ballots := make([]models.Ballot, 0, len(rows)-1)
	for _, row := range rows[1:] { // skip header
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		id := strings.TrimSpace(row[0])

		choices := make([]models.Choice, 0, lastRankColumn-firstRankColumn)
		for col := firstRankColumn; col < lastRankColumn; col++ {
			cell := "undervote"
			if col < len(row) && strings.TrimSpace(row[col]) != "" {
				cell = strings.TrimSpace(row[col])
			}
			choices = append(choices, ParseChoice(cell, cm))
		}
		ballots = append(ballots, models.Ballot{ID: id, Choices: choices})
	}
	return ballots, nil
}

// ParseChoice maps one rank cell to a choice, interning candidate labels
// as they appear.
func ParseChoice(cell string, cm *candmap.Map[string]) models.Choice {
	switch cell {
	case "overvote":
		return models.Overvote
	case "undervote":
		return models.Undervote
	}

	label := cell
	if m := candidateRx.FindStringSubmatch(cell); m != nil {
		label = m[1]
	} else {
		slog.Debug("candidate label did not match", "cell", cell)
	}

	return cm.AddChoice(label, models.Candidate{
		Name: common.NormalizeName(label, true),
		Type: models.CandidateRegular,
	})
}

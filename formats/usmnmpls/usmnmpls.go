// Copyright (c) 2026 OpenBallot.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package usmnmpls reads Minneapolis three-rank cast-vote summaries.
//
// Rows carry precinct, three choice columns, and a repetition count, in
// CSV or spreadsheet form. Any "overvote" cell collapses the whole ballot
// to a single overvote, matching how the city publishes the data. "UWI"
// is the undeclared write-in bucket and is interned as a write-in
// candidate so reports can exclude it from candidate counts.
package usmnmpls

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/openballot/rcvtally/candmap"
	"github.com/openballot/rcvtally/formats/common"
	"github.com/openballot/rcvtally/models"
)

// ReadElection reads the file named by the "file" loader parameter,
// relative to the contest's raw-data directory. The extension selects
// CSV or spreadsheet parsing.
func ReadElection(path string, params common.Params) (models.Election, error) {
	file, err := params.Get("file")
	if err != nil {
		return models.Election{}, err
	}
	full := filepath.Join(path, file)

	switch strings.ToLower(filepath.Ext(full)) {
	case ".xlsx", ".xlsm", ".xls":
		return readSpreadsheet(full)
	default:
		return readCSV(full)
	}
}

type builder struct {
	cm       *candmap.Map[string]
	ballots  []models.Ballot
	ballotID int
}

func newBuilder() *builder {
	return &builder{cm: candmap.New[string]()}
}

// appendRow expands one summary row into count ballots.
func (b *builder) appendRow(precinct, choice1, choice2, choice3 string, count int) {
	var choices []models.Choice
	if isOvervote(choice1) || isOvervote(choice2) || isOvervote(choice3) {
		choices = []models.Choice{models.Overvote}
	} else {
		choices = []models.Choice{
			b.parseChoice(choice1),
			b.parseChoice(choice2),
			b.parseChoice(choice3),
		}
	}

	for i := 0; i < count; i++ {
		b.ballotID++
		b.ballots = append(b.ballots, models.Ballot{
			ID:      fmt.Sprintf("%s:%d", precinct, b.ballotID),
			Choices: choices,
		})
	}
}

func isOvervote(cell string) bool {
	return strings.EqualFold(strings.TrimSpace(cell), "overvote")
}

func (b *builder) parseChoice(cell string) models.Choice {
	cell = strings.TrimSpace(cell)
	if cell == "" || strings.EqualFold(cell, "undervote") {
		return models.Undervote
	}

	name, ctype := cell, models.CandidateRegular
	if strings.EqualFold(cell, "uwi") {
		name, ctype = "Undeclared Write-ins", models.CandidateWriteIn
	}
	return b.cm.AddChoice(cell, models.Candidate{Name: name, Type: ctype})
}

func (b *builder) election() models.Election {
	return models.Election{Candidates: b.cm.Candidates(), Ballots: b.ballots}
}

func readCSV(path string) (models.Election, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.Election{}, fmt.Errorf("opening ballot file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return models.Election{}, fmt.Errorf("reading ballot file: %w", err)
	}
	if len(records) == 0 {
		return models.Election{}, nil
	}

	b := newBuilder()
	for _, rec := range records[1:] { // skip header
		if len(rec) < 5 {
			continue
		}
		count, err := strconv.Atoi(strings.TrimSpace(rec[4]))
		if err != nil || count < 1 {
			count = 1
		}
		b.appendRow(strings.TrimSpace(rec[0]), rec[1], rec[2], rec[3], count)
	}
	return b.election(), nil
}

func readSpreadsheet(path string) (models.Election, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return models.Election{}, fmt.Errorf("opening workbook: %w", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return models.Election{}, fmt.Errorf("workbook %s has no sheets", path)
	}
	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return models.Election{}, fmt.Errorf("reading workbook: %w", err)
	}
	if len(rows) == 0 {
		return models.Election{}, nil
	}

	b := newBuilder()
	for _, row := range rows[1:] { // skip header
		if len(row) < 5 {
			continue
		}
		count, err := strconv.Atoi(strings.TrimSpace(row[4]))
		if err != nil || count < 1 {
			count = 1
		}
		b.appendRow(strings.TrimSpace(row[0]), row[1], row[2], row[3], count)
	}
	return b.election(), nil
}

// Copyright (c) 2026 OpenBallot.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package dominion reads Dominion RCR tab-separated cast-vote exports.
//
// The file is line-oriented: a header of four counts (seats, candidates,
// precincts, counting groups), the election name, one line per candidate,
// numbered precinct and counting-group tables, then aggregated ballot
// lines. Each ballot line carries a repetition count and one cell per
// rank; a cell is a 1-based candidate number, 0 for an undervote, or
// several numbers joined by '=' for an overvote.
package dominion

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/openballot/rcvtally/formats/common"
	"github.com/openballot/rcvtally/models"
)

// ReadElection reads the RCR file named by the "file" loader parameter,
// relative to the contest's raw-data directory.
func ReadElection(path string, params common.Params) (models.Election, error) {
	file, err := params.Get("file")
	if err != nil {
		return models.Election{}, err
	}
	data, err := os.ReadFile(filepath.Join(path, file))
	if err != nil {
		return models.Election{}, fmt.Errorf("reading rcr export: %w", err)
	}
	return Parse(string(data))
}

type scanner struct {
	lines []string
	pos   int
}

func newScanner(input string) *scanner {
	lines := strings.Split(input, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return &scanner{lines: lines}
}

func (s *scanner) next() (string, error) {
	if s.pos >= len(s.lines) {
		return "", fmt.Errorf("unexpected end of input at line %d", s.pos+1)
	}
	line := s.lines[s.pos]
	s.pos++
	return line, nil
}

// Parse parses a complete RCR export.
func Parse(input string) (models.Election, error) {
	s := newScanner(input)

	header, err := s.next()
	if err != nil {
		return models.Election{}, err
	}
	counts := strings.Split(header, "\t")
	if len(counts) != 4 {
		return models.Election{}, fmt.Errorf("rcr header has %d fields, want 4", len(counts))
	}
	var numCandidates, numPrecincts, numCountingGroups int
	for i, dst := range []*int{nil, &numCandidates, &numPrecincts, &numCountingGroups} {
		if dst == nil {
			continue // seat count is unused
		}
		n, err := strconv.Atoi(counts[i])
		if err != nil || n < 0 {
			return models.Election{}, fmt.Errorf("rcr header field %d: invalid count %q", i, counts[i])
		}
		*dst = n
	}

	// Election name line.
	if _, err := s.next(); err != nil {
		return models.Election{}, err
	}

	candidates := make([]models.Candidate, 0, numCandidates)
	for i := 0; i < numCandidates; i++ {
		name, err := s.next()
		if err != nil {
			return models.Election{}, err
		}
		candidates = append(candidates, models.Candidate{
			Name: common.NormalizeName(name, false),
			Type: models.CandidateRegular,
		})
	}

	// Precinct and counting-group tables are "number TAB name" lines the
	// ballots reference by position; only their line count matters here.
	for i := 0; i < numPrecincts+numCountingGroups; i++ {
		if _, err := s.next(); err != nil {
			return models.Election{}, err
		}
	}

	var ballots []models.Ballot
	for s.pos < len(s.lines) {
		line, _ := s.next()
		if line == "" {
			continue
		}
		count, choices, err := parseBallotLine(line, numCandidates)
		if err != nil {
			return models.Election{}, fmt.Errorf("line %d: %w", s.pos, err)
		}
		for i := 0; i < count; i++ {
			ballots = append(ballots, models.Ballot{
				ID:      strconv.Itoa(len(ballots)),
				Choices: choices,
			})
		}
	}

	return models.Election{Candidates: candidates, Ballots: ballots}, nil
}

// parseBallotLine parses "precinct TAB group TAB count TAB cell..." where
// each cell is one rank.
func parseBallotLine(line string, numCandidates int) (int, []models.Choice, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 4 {
		return 0, nil, fmt.Errorf("ballot line has %d fields, want at least 4", len(fields))
	}
	count, err := strconv.Atoi(fields[2])
	if err != nil || count < 0 {
		return 0, nil, fmt.Errorf("invalid ballot count %q", fields[2])
	}

	choices := make([]models.Choice, 0, len(fields)-3)
	for _, cell := range fields[3:] {
		choice, err := parseCell(cell, numCandidates)
		if err != nil {
			return 0, nil, err
		}
		choices = append(choices, choice)
	}
	return count, choices, nil
}

func parseCell(cell string, numCandidates int) (models.Choice, error) {
	marks := strings.Split(cell, "=")
	if len(marks) > 1 {
		return models.Overvote, nil
	}
	n, err := strconv.Atoi(marks[0])
	if err != nil || n < 0 || n > numCandidates {
		return models.Choice{}, fmt.Errorf("invalid candidate number %q", cell)
	}
	if n == 0 {
		return models.Undervote, nil
	}
	return models.Vote(models.CandidateID(n - 1)), nil
}

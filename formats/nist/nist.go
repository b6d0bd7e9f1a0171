// Copyright (c) 2026 OpenBallot.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package nist reads NIST SP 1500-103 cast-vote records as exported by
// Dominion systems: a CandidateManifest.json plus CvrExport*.json files,
// in a directory or a ZIP archive.
//
// Each export file covers every contest on the ballot; the reader keeps
// only the sessions for the requested contest. Marks are grouped by
// rank: a rank with one unambiguous mark is a vote, none is an
// undervote, several are an overvote. Ambiguous marks are ignored. The
// dropUnqualifiedWriteIn parameter turns the unqualified write-in
// candidate into undervotes, which some jurisdictions require.
package nist

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/openballot/rcvtally/candmap"
	"github.com/openballot/rcvtally/formats/common"
	"github.com/openballot/rcvtally/models"
)

type readerOptions struct {
	contest                int
	dropUnqualifiedWriteIn bool
}

// ReadElection reads the CVR named by the "cvr" loader parameter for the
// contest named by "contest". File-level problems are logged and skipped
// so one corrupt export does not lose the contest.
func ReadElection(path string, params common.Params) (models.Election, error) {
	cvrName, err := params.Get("cvr")
	if err != nil {
		return models.Election{}, err
	}
	contestParam, err := params.Get("contest")
	if err != nil {
		return models.Election{}, err
	}
	contest, err := strconv.Atoi(contestParam)
	if err != nil {
		return models.Election{}, fmt.Errorf("reader parameter %q: %w", "contest", err)
	}
	drop, err := params.Bool("dropUnqualifiedWriteIn")
	if err != nil {
		return models.Election{}, err
	}
	opts := readerOptions{contest: contest, dropUnqualifiedWriteIn: drop}

	cvrPath := ResolveCVRPath(path, cvrName)
	info, err := os.Stat(cvrPath)
	if err != nil {
		return models.Election{}, fmt.Errorf("cvr source %s: %w", cvrPath, err)
	}
	if info.IsDir() {
		return readFromDirectory(cvrPath, opts)
	}
	return readFromZip(cvrPath, opts)
}

// contestCandidates interns the manifest's candidates for one contest.
// With dropUnqualifiedWriteIn set, the write-in candidate is skipped and
// its external id returned so its marks become undervotes.
func contestCandidates(manifest candidateManifest, opts readerOptions) (*candmap.Map[int], *int) {
	cm := candmap.New[int]()
	var droppedWriteIn *int

	for _, c := range manifest.List {
		if c.ContestID != opts.contest {
			continue
		}
		ctype := models.CandidateRegular
		switch c.Type {
		case "WriteIn":
			ctype = models.CandidateWriteIn
		case "QualifiedWriteIn":
			ctype = models.CandidateQualifiedWriteIn
		}
		if opts.dropUnqualifiedWriteIn && ctype == models.CandidateWriteIn {
			id := c.ID
			droppedWriteIn = &id
			continue
		}
		cm.Add(c.ID, models.Candidate{
			Name: common.NormalizeName(c.Description, false),
			Type: ctype,
		})
	}
	return cm, droppedWriteIn
}

// marksToChoices converts one contest's marks to ranked choices. Marks
// are grouped by rank after dropping ambiguous ones; a group emptied by
// the ambiguity filter reads as an undervote.
func marksToChoices(marks []mark, cm *candmap.Map[int], droppedWriteIn *int) ([]models.Choice, error) {
	sorted := make([]mark, len(marks))
	copy(sorted, marks)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Rank < sorted[j].Rank })

	var choices []models.Choice
	for i := 0; i < len(sorted); {
		j := i
		var group []mark
		for ; j < len(sorted) && sorted[j].Rank == sorted[i].Rank; j++ {
			if !sorted[j].IsAmbiguous {
				group = append(group, sorted[j])
			}
		}
		i = j

		switch {
		case len(group) == 0:
			choices = append(choices, models.Undervote)
		case len(group) > 1:
			choices = append(choices, models.Overvote)
		case droppedWriteIn != nil && group[0].CandidateID == *droppedWriteIn:
			choices = append(choices, models.Undervote)
		default:
			choice, err := cm.Choice(group[0].CandidateID)
			if err != nil {
				return nil, err
			}
			choices = append(choices, choice)
		}
	}
	return choices, nil
}

// collectBallots appends the ballots one export file contributes to the
// contest.
func collectBallots(r io.Reader, filename string, opts readerOptions, cm *candmap.Map[int], droppedWriteIn *int, ballots []models.Ballot) ([]models.Ballot, error) {
	var cvr cvrExport
	if err := json.NewDecoder(r).Decode(&cvr); err != nil {
		return ballots, fmt.Errorf("parsing %s: %w", filename, err)
	}

	for i := range cvr.Sessions {
		s := &cvr.Sessions[i]
		for _, contest := range s.contests() {
			if contest.ID != opts.contest {
				continue
			}
			choices, err := marksToChoices(contest.Marks, cm, droppedWriteIn)
			if err != nil {
				return ballots, fmt.Errorf("session %d in %s: %w", s.RecordID, filename, err)
			}
			ballots = append(ballots, models.Ballot{
				ID:      fmt.Sprintf("%s:%d", filename, s.RecordID),
				Choices: choices,
			})
		}
	}
	return ballots, nil
}

func isCVRExport(name string) bool {
	return strings.HasPrefix(name, "CvrExport") && strings.HasSuffix(name, ".json")
}

func readFromDirectory(dir string, opts readerOptions) (models.Election, error) {
	manifestFile, err := os.Open(filepath.Join(dir, "CandidateManifest.json"))
	if err != nil {
		return models.Election{}, fmt.Errorf("candidate manifest: %w", err)
	}
	defer manifestFile.Close()

	var manifest candidateManifest
	if err := json.NewDecoder(manifestFile).Decode(&manifest); err != nil {
		return models.Election{}, fmt.Errorf("candidate manifest: %w", err)
	}
	cm, droppedWriteIn := contestCandidates(manifest, opts)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return models.Election{}, fmt.Errorf("cvr directory: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && isCVRExport(e.Name()) {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	slog.Info("processing cvr files", "contest", opts.contest, "files", len(files))

	var ballots []models.Ballot
	for _, name := range files {
		full := filepath.Join(dir, name)
		f, err := os.Open(full)
		if err != nil {
			slog.Warn("skipping unreadable cvr file", "file", name, "error", err)
			continue
		}
		if info, err := f.Stat(); err == nil {
			slog.Debug("reading cvr file", "file", name, "size", humanize.Bytes(uint64(info.Size())))
		}
		before := len(ballots)
		ballots, err = collectBallots(f, name, opts, cm, droppedWriteIn, ballots)
		f.Close()
		if err != nil {
			slog.Warn("skipping cvr file", "file", name, "error", err)
			continue
		}
		if n := len(ballots) - before; n > 0 {
			slog.Debug("collected ballots", "file", name, "ballots", n)
		}
	}

	slog.Info("read ballots", "contest", opts.contest, "ballots", len(ballots))
	return models.Election{Candidates: cm.Candidates(), Ballots: ballots}, nil
}

func readFromZip(path string, opts readerOptions) (models.Election, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return models.Election{}, fmt.Errorf("cvr archive: %w", err)
	}
	defer archive.Close()

	manifestFile, err := archive.Open("CandidateManifest.json")
	if err != nil {
		return models.Election{}, fmt.Errorf("candidate manifest: %w", err)
	}
	var manifest candidateManifest
	err = json.NewDecoder(manifestFile).Decode(&manifest)
	manifestFile.Close()
	if err != nil {
		return models.Election{}, fmt.Errorf("candidate manifest: %w", err)
	}
	cm, droppedWriteIn := contestCandidates(manifest, opts)

	var files []*zip.File
	for _, f := range archive.File {
		if isCVRExport(f.Name) {
			files = append(files, f)
		}
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	slog.Info("processing cvr archive", "contest", opts.contest, "files", len(files))

	var ballots []models.Ballot
	for _, f := range files {
		r, err := f.Open()
		if err != nil {
			slog.Warn("skipping unreadable cvr entry", "file", f.Name, "error", err)
			continue
		}
		slog.Debug("reading cvr entry", "file", f.Name, "size", humanize.Bytes(f.UncompressedSize64))
		before := len(ballots)
		ballots, err = collectBallots(r, f.Name, opts, cm, droppedWriteIn, ballots)
		r.Close()
		if err != nil {
			slog.Warn("skipping cvr entry", "file", f.Name, "error", err)
			continue
		}
		if n := len(ballots) - before; n > 0 {
			slog.Debug("collected ballots", "file", f.Name, "ballots", n)
		}
	}

	slog.Info("read ballots", "contest", opts.contest, "ballots", len(ballots))
	return models.Election{Candidates: cm.Candidates(), Ballots: ballots}, nil
}

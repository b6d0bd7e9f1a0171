// Copyright (c) 2026 OpenBallot.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package meta loads the election metadata directory: one JSON document
// per jurisdiction describing its offices, elections, and the loader
// parameters each contest's reader needs.
package meta

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/openballot/rcvtally/models"
)

// ReadMetadata reads every jurisdiction document under dir, recursing
// into subdirectories. The result is sorted by jurisdiction path so runs
// are deterministic.
func ReadMetadata(dir string) ([]models.Jurisdiction, error) {
	var jurisdictions []models.Jurisdiction

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}
		j, err := readJurisdiction(path)
		if err != nil {
			return fmt.Errorf("metadata %s: %w", path, err)
		}
		jurisdictions = append(jurisdictions, j)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(jurisdictions, func(i, j int) bool {
		return jurisdictions[i].Path < jurisdictions[j].Path
	})
	return jurisdictions, nil
}

func readJurisdiction(path string) (models.Jurisdiction, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.Jurisdiction{}, err
	}
	defer f.Close()

	var j models.Jurisdiction
	if err := json.NewDecoder(f).Decode(&j); err != nil {
		return models.Jurisdiction{}, err
	}
	if j.Path == "" {
		return models.Jurisdiction{}, fmt.Errorf("jurisdiction has no path")
	}

	// Contests referencing an office the jurisdiction never declares are
	// metadata bugs; catch them here rather than mid-pipeline.
	for key, e := range j.Elections {
		for _, c := range e.Contests {
			if _, ok := j.Offices[c.Office]; !ok {
				return models.Jurisdiction{}, fmt.Errorf(
					"election %s references undeclared office %q", key, c.Office)
			}
		}
	}
	return j, nil
}

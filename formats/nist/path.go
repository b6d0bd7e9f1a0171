// Copyright (c) 2026 OpenBallot.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package nist

import (
	"os"
	"path/filepath"
	"strings"
)

// ResolveCVRPath resolves the "cvr" loader parameter against the
// contest's raw-data directory.
//
// Metadata and disk layout drift apart in practice, so a few fallbacks
// are applied: "." means the base directory itself; a .zip name whose
// file is gone but whose extracted directory exists resolves to the
// directory; and a missing name falls back to the base directory when
// the manifest or CVR files already live there.
func ResolveCVRPath(base, cvrName string) string {
	var cvrPath string
	if cvrName == "." {
		cvrPath = base
	} else {
		cvrPath = filepath.Join(base, cvrName)
	}

	if strings.HasSuffix(cvrPath, ".zip") && !exists(cvrPath) {
		dir := strings.TrimSuffix(cvrPath, ".zip")
		if isDir(dir) {
			return dir
		}
	}

	if !exists(cvrPath) && isDir(base) {
		if exists(filepath.Join(base, "CvrExport.json")) ||
			exists(filepath.Join(base, "CandidateManifest.json")) {
			return base
		}
	}

	return cvrPath
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

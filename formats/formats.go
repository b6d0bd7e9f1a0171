// Copyright (c) 2026 OpenBallot.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package formats dispatches to the raw-format readers. Every reader is
// a mechanical translator from one published cast-vote-record format
// into an in-memory Election; all interpretation happens downstream in
// normalization and tabulation.
package formats

import (
	"fmt"

	"github.com/openballot/rcvtally/formats/common"
	"github.com/openballot/rcvtally/formats/dominion"
	"github.com/openballot/rcvtally/formats/nist"
	"github.com/openballot/rcvtally/formats/usme"
	"github.com/openballot/rcvtally/formats/usmnmpls"
	"github.com/openballot/rcvtally/models"
)

// Read reads one contest's raw ballots. format comes from the election
// metadata's dataFormat field, path is the contest's raw-data directory,
// and params are the contest's loader parameters.
func Read(format, path string, params map[string]string) (models.Election, error) {
	p := common.Params(params)
	switch format {
	case "dominion_rcr":
		return dominion.ReadElection(path, p)
	case "us_me":
		return usme.ReadElection(path, p)
	case "us_mn_mpls":
		return usmnmpls.ReadElection(path, p)
	case "nist_sp_1500":
		return nist.ReadElection(path, p)
	default:
		return models.Election{}, fmt.Errorf("data format %q is not implemented", format)
	}
}

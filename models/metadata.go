// Copyright (c) 2026 OpenBallot.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// TabulationOptions selects per-contest tabulation behavior.
type TabulationOptions struct {
	// Eager eliminates every mathematically losing candidate per round
	// instead of only the lowest-vote candidate.
	Eager bool `json:"eager,omitempty"`
	// NYCStyle excludes inactive ballots from the round-0 exhausted tally,
	// matching the NYC reporting convention.
	NYCStyle bool `json:"nycStyle,omitempty"`
}

// Contest names one office race within an election, plus the
// format-specific parameters its reader needs.
type Contest struct {
	Office       string            `json:"office"`
	LoaderParams map[string]string `json:"loaderParams,omitempty"`
}

// ElectionMetadata describes one election within a jurisdiction.
// DataFormat selects the raw-format reader; Normalization selects the
// ballot normalization policy (defaults to "simple").
type ElectionMetadata struct {
	Name          string            `json:"name"`
	Date          string            `json:"date"`
	DataFormat    string            `json:"dataFormat"`
	Normalization string            `json:"normalization,omitempty"`
	Tabulation    TabulationOptions `json:"tabulation,omitempty"`
	Contests      []Contest         `json:"contests"`
}

// Office is a named office within a jurisdiction.
type Office struct {
	Name string `json:"name"`
}

// Jurisdiction is the top-level metadata unit: a city, county, or state
// with its offices and elections.
type Jurisdiction struct {
	Name      string                      `json:"name"`
	Path      string                      `json:"path"`
	Offices   map[string]Office           `json:"offices"`
	Elections map[string]ElectionMetadata `json:"elections"`
}

// Copyright (c) 2026 OpenBallot.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package common

import "testing"

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in      string
		fixCase bool
		want    string
	}{
		{"  Jane   Doe ", false, "Jane Doe"},
		{"JANE DOE", false, "JANE DOE"},
		{"JANE DOE", true, "Jane Doe"},
		{"JANE de la CRUZ", true, "Jane de la Cruz"},
		{"O'BRIEN", true, "O'Brien"},
		{"Smith-JONES", true, "Smith-JONES"},
		{"", false, ""},
	}
	for _, tc := range cases {
		if got := NormalizeName(tc.in, tc.fixCase); got != tc.want {
			t.Errorf("NormalizeName(%q, %v) = %q, want %q", tc.in, tc.fixCase, got, tc.want)
		}
	}
}

func TestParams(t *testing.T) {
	p := Params{"file": "ballots.csv", "dropUnqualifiedWriteIn": "true"}

	if v, err := p.Get("file"); err != nil || v != "ballots.csv" {
		t.Errorf("Get(file) = %q, %v", v, err)
	}
	if _, err := p.Get("cvr"); err == nil {
		t.Error("Get on a missing key should fail")
	}
	if b, err := p.Bool("dropUnqualifiedWriteIn"); err != nil || !b {
		t.Errorf("Bool = %v, %v, want true", b, err)
	}
	if b, err := p.Bool("absent"); err != nil || b {
		t.Errorf("Bool on absent key = %v, %v, want false", b, err)
	}
	p["bad"] = "not-a-bool"
	if _, err := p.Bool("bad"); err == nil {
		t.Error("Bool on a malformed value should fail")
	}
}

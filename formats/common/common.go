// Copyright (c) 2026 OpenBallot.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package common holds helpers shared by the raw-format readers.
package common

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// NormalizeName squeezes runs of whitespace into single spaces. With
// fixCase set, words written entirely in capitals are rewritten in title
// case, which cleans up exports that shout candidate names.
func NormalizeName(name string, fixCase bool) string {
	fields := strings.Fields(name)
	if fixCase {
		for i, f := range fields {
			if isShouting(f) {
				fields[i] = titleCase(f)
			}
		}
	}
	return strings.Join(fields, " ")
}

func isShouting(word string) bool {
	hasLetter := false
	for _, r := range word {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}

func titleCase(word string) string {
	var b strings.Builder
	first := true
	for _, r := range word {
		if !unicode.IsLetter(r) {
			b.WriteRune(r)
			first = true
			continue
		}
		if first {
			b.WriteRune(unicode.ToUpper(r))
			first = false
		} else {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// Params are the loader options a contest's metadata passes to its
// reader.
type Params map[string]string

// Get returns a required parameter or an error naming what is missing.
func (p Params) Get(key string) (string, error) {
	v, ok := p[key]
	if !ok || v == "" {
		return "", fmt.Errorf("missing required reader parameter %q", key)
	}
	return v, nil
}

// Bool returns an optional boolean parameter, false when absent.
func (p Params) Bool(key string) (bool, error) {
	v, ok := p[key]
	if !ok || v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("reader parameter %q: %w", key, err)
	}
	return b, nil
}

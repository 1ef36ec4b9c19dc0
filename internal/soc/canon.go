// Package soc normalizes Standard Occupational Classification codes into the
// canonical NN-NNNN form used for filters and joins across the survey tables.
package soc

import "strings"

// Source files mix ASCII hyphens with en/em dashes in code cells.
var dashReplacer = strings.NewReplacer("–", "-", "—", "-")

// Canonicalize reduces a raw occupation code to the canonical NN-NNNN form.
// Dash variants are normalized and whitespace trimmed first. If stripping
// every non-digit character leaves exactly seven digits, the result is
// reformatted with the hyphen reinserted. Any other digit count returns the
// dash-normalized, trimmed original unchanged; malformed codes degrade
// rather than error.
func Canonicalize(code string) string {
	s := strings.TrimSpace(dashReplacer.Replace(code))

	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	if digits.Len() != 7 {
		return s
	}
	d := digits.String()
	return d[:2] + "-" + d[2:]
}

// CanonicalizePtr is Canonicalize lifted over optional codes: nil in, nil out.
func CanonicalizePtr(code *string) *string {
	if code == nil {
		return nil
	}
	c := Canonicalize(*code)
	return &c
}

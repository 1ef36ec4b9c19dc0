package soc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "already canonical is unchanged",
			in:   "15-1212",
			want: "15-1212",
		},
		{
			name: "en dash normalized",
			in:   "15–1212",
			want: "15-1212",
		},
		{
			name: "em dash normalized",
			in:   "15—1212",
			want: "15-1212",
		},
		{
			name: "seven digits without separator reformatted",
			in:   "1512120",
			want: "15-12120",
		},
		{
			name: "six digits returned verbatim",
			in:   "151212",
			want: "151212",
		},
		{
			name: "eight digits returned verbatim",
			in:   "15121200",
			want: "15121200",
		},
		{
			name: "whitespace trimmed",
			in:   "  29-1141  ",
			want: "29-1141",
		},
		{
			name: "punctuation stripped before reformat",
			in:   "29.1141.0",
			want: "29-11410",
		},
		{
			name: "empty string stays empty",
			in:   "",
			want: "",
		},
		{
			name: "non numeric text returned trimmed",
			in:   " All Occupations ",
			want: "All Occupations",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Canonicalize(tt.in))
		})
	}
}

func TestCanonicalizeIdempotent(t *testing.T) {
	for _, code := range []string{"15-1212", "00-0000", "151212", "bad code"} {
		once := Canonicalize(code)
		assert.Equal(t, once, Canonicalize(once), "code %q", code)
	}
}

func TestCanonicalizePtr(t *testing.T) {
	assert.Nil(t, CanonicalizePtr(nil))

	in := "151212 0"
	got := CanonicalizePtr(&in)
	require.NotNil(t, got)
	assert.Equal(t, "15-12120", *got)
}

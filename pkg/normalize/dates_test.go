package normalize_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/govcongiants/encore/pkg/normalize"
)

func TestParseHumanDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{name: "abbreviated month", input: "9 Apr 2025", want: "2025-04-09", ok: true},
		{name: "four-letter abbreviation", input: "30 Sept 2025", want: "2025-09-30", ok: true},
		{name: "full month name", input: "9 July 2025", want: "2025-07-09", ok: true},
		{name: "case insensitive", input: "1 dEcEmBeR 2025", want: "2025-12-01", ok: true},
		{name: "comma stripped", input: "9 Apr, 2025", want: "2025-04-09", ok: true},
		{name: "empty", input: "", ok: false},
		{name: "whitespace only", input: "   ", ok: false},
		{name: "period label is not a date", input: "April 2025", ok: false},
		{name: "unknown month", input: "9 Foo 2025", ok: false},
		{name: "nonexistent calendar date", input: "31 Apr 2025", ok: false},
		{name: "non-numeric day", input: "ninth Apr 2025", ok: false},
		{name: "iso shape rejected", input: "2025-04-09", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := normalize.ParseHumanDate(tt.input)
			if !tt.ok {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.want, d.Format(normalize.ISODate))
		})
	}
}

func TestParseReportMonth(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{name: "full month", input: "December 2025", want: "2025-12-01", ok: true},
		{name: "abbreviation", input: "Mar 2025", want: "2025-03-01", ok: true},
		{name: "sept abbreviation", input: "Sept 2025", want: "2025-09-01", ok: true},
		{name: "empty", input: "", ok: false},
		{name: "human date is not a period", input: "9 Apr 2025", ok: false},
		{name: "unknown month", input: "Smarch 2025", ok: false},
		{name: "bad year", input: "April next", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := normalize.ParseReportMonth(tt.input)
			if !tt.ok {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.want, d.Format(normalize.ISODate))
			// Anchors always land on the first of the month.
			assert.Equal(t, 1, d.Day())
			assert.Equal(t, time.UTC, d.Location())
		})
	}
}

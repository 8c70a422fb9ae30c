// Package aggregate buckets final records by calendar month and channel,
// producing the totals and chart-ready series the report pages consume.
package aggregate

import (
	"github.com/govcongiants/encore/pkg/report"
)

// EmptyMonthNote annotates months inside the configured range that saw no
// new content.
const EmptyMonthNote = "No new content published this month"

// Build computes per-month and per-channel-per-month totals over the fixed
// metric set, plus the parallel series arrays, for the given contiguous
// month sequence. Records whose month falls outside the sequence are
// silently excluded from aggregates; they stay in the flat item list the
// caller holds.
func Build(items []*report.Record, months []string) (map[string]*report.MonthAggregate, *report.Series) {
	agg := make(map[string]*report.MonthAggregate, len(months))
	for _, m := range months {
		agg[m] = &report.MonthAggregate{
			Totals:    &report.Totals{},
			ByChannel: make(map[string]*report.Totals),
		}
	}

	for _, rec := range items {
		ma, ok := agg[rec.Month]
		if !ok {
			continue
		}
		ma.Totals.Add(rec)

		ch := rec.Channel
		if ch == "" {
			ch = "Unknown"
		}
		chTotals, ok := ma.ByChannel[ch]
		if !ok {
			chTotals = &report.Totals{}
			ma.ByChannel[ch] = chTotals
		}
		chTotals.Add(rec)
	}

	for _, m := range months {
		if agg[m].Totals.Items == 0 {
			agg[m].IsEmpty = true
			agg[m].Note = EmptyMonthNote
		}
	}

	series := &report.Series{
		Months:      months,
		Impressions: make([]int64, len(months)),
		Views:       make([]int64, len(months)),
		Engagements: make([]int64, len(months)),
		Clicks:      make([]int64, len(months)),
		Attendees:   make([]int64, len(months)),
		ChatCount:   make([]int64, len(months)),
		Items:       make([]int64, len(months)),
	}
	for i, m := range months {
		t := agg[m].Totals
		series.Impressions[i] = t.Impressions
		series.Views[i] = t.Views
		series.Engagements[i] = t.Engagements
		series.Clicks[i] = t.Clicks
		series.Attendees[i] = t.Attendees
		series.ChatCount[i] = t.ChatCount
		series.Items[i] = t.Items
	}

	return agg, series
}

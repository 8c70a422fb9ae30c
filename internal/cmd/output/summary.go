package output

import (
	"sort"
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/govcongiants/encore/pkg/report"
)

// MonthSummary converts a dataset's aggregates into the per-month summary
// table the build command prints.
func MonthSummary(ds *report.Dataset) Data {
	data := Data{
		Headers: []string{"Month", "Items", "Impressions", "Views", "Engagements", "Clicks", "Notes"},
		ColumnAlignment: []Align{
			AlignLeft, AlignRight, AlignRight, AlignRight, AlignRight, AlignRight, AlignLeft,
		},
	}
	for _, m := range ds.Months {
		agg, ok := ds.Aggregates[m]
		if !ok {
			continue
		}
		t := agg.Totals
		data.Rows = append(data.Rows, []string{
			m,
			strconv.FormatInt(t.Items, 10),
			strconv.FormatInt(t.Impressions, 10),
			strconv.FormatInt(t.Views, 10),
			strconv.FormatInt(t.Engagements, 10),
			strconv.FormatInt(t.Clicks, 10),
			agg.Note,
		})
	}
	return data
}

// ChannelSummary converts a dataset's aggregates into per-channel totals
// across the whole report range, one row per channel.
func ChannelSummary(ds *report.Dataset) Data {
	totals := make(map[string]*report.Totals)
	for _, m := range ds.Months {
		agg, ok := ds.Aggregates[m]
		if !ok {
			continue
		}
		for ch, t := range agg.ByChannel {
			acc, ok := totals[ch]
			if !ok {
				acc = &report.Totals{}
				totals[ch] = acc
			}
			acc.Items += t.Items
			acc.Impressions += t.Impressions
			acc.Views += t.Views
			acc.Engagements += t.Engagements
			acc.Clicks += t.Clicks
			acc.Attendees += t.Attendees
			acc.ChatCount += t.ChatCount
			acc.EmailSends += t.EmailSends
			acc.ArticleViews += t.ArticleViews
		}
	}

	channels := make([]string, 0, len(totals))
	for ch := range totals {
		channels = append(channels, ch)
	}
	sort.Strings(channels)

	caser := cases.Title(language.English)
	data := Data{
		Headers: []string{"Channel", "Items", "Impressions", "Views", "Engagements", "Clicks"},
		ColumnAlignment: []Align{
			AlignLeft, AlignRight, AlignRight, AlignRight, AlignRight, AlignRight,
		},
	}
	for _, ch := range channels {
		t := totals[ch]
		data.Rows = append(data.Rows, []string{
			caser.String(ch),
			strconv.FormatInt(t.Items, 10),
			strconv.FormatInt(t.Impressions, 10),
			strconv.FormatInt(t.Views, 10),
			strconv.FormatInt(t.Engagements, 10),
			strconv.FormatInt(t.Clicks, 10),
		})
	}
	return data
}

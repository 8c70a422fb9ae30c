// Package normalize turns raw export rows into canonical records. It never
// fails: any field that cannot be parsed degrades to nil or empty instead
// of raising, so one bad cell never costs a row.
package normalize

import (
	"strconv"
	"strings"

	"github.com/govcongiants/encore/pkg/report"
)

// Column headers of the combined export. These are fixed contract strings;
// the extraction that produces the CSV writes exactly these.
const (
	colChannel      = "Channel"
	colType         = "Data Type"
	colTitle        = "Video/Post Title"
	colLink         = "Link"
	colDate         = "Date"
	colReportMonth  = "Report Month"
	colImpressions  = "Impressions"
	colViews        = "Views"
	colEngagements  = "Engagements"
	colClicks       = "Clicks"
	colAttendees    = "Attendees"
	colChatCount    = "Chat Count"
	colEmailSends   = "Email Sends"
	colArticleViews = "Article Views"
	colInteractions = "Interactions"
	colNotes        = "Notes"
)

// noValue is the placeholder the export uses for metrics that were not
// reported. A lone em-dash, not a hyphen.
const noValue = "—"

// ParseInt parses a metric cell: thousands separators stripped, the
// em-dash placeholder and empty text mean "not reported", and values with
// a decimal point are truncated toward zero. Anything else, including
// signed values, is nil; metrics are nil or non-negative, never below
// zero.
func ParseInt(s string) *int64 {
	t := strings.TrimSpace(s)
	if t == "" || t == noValue {
		return nil
	}
	t = strings.ReplaceAll(t, ",", "")
	n, err := strconv.ParseInt(t, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(t, 64)
		if ferr != nil {
			return nil
		}
		n = int64(f)
	}
	if n < 0 {
		return nil
	}
	return &n
}

// FromRow converts one raw export row (keyed by column header) into a
// Record. Date resolution is left to the resolver; this fills identity
// fields, raw date text, and the metric set, applying the known
// channel-specific column corrections.
func FromRow(row map[string]string) *report.Record {
	rec := &report.Record{
		Channel:     strings.TrimSpace(row[colChannel]),
		Type:        strings.TrimSpace(row[colType]),
		Title:       strings.TrimSpace(row[colTitle]),
		Link:        strings.TrimSpace(row[colLink]),
		DateRaw:     strings.TrimSpace(row[colDate]),
		ReportMonth: strings.TrimSpace(row[colReportMonth]),

		Impressions:  ParseInt(row[colImpressions]),
		Views:        ParseInt(row[colViews]),
		Engagements:  ParseInt(row[colEngagements]),
		Clicks:       ParseInt(row[colClicks]),
		Attendees:    ParseInt(row[colAttendees]),
		ChatCount:    ParseInt(row[colChatCount]),
		EmailSends:   ParseInt(row[colEmailSends]),
		ArticleViews: ParseInt(row[colArticleViews]),
		Interactions: ParseInt(row[colInteractions]),
	}

	applyLinkedInSwap(rec)
	applyInstagramColumns(rec, row)

	return rec
}

// applyLinkedInSwap corrects a known extraction artifact on LinkedIn posts.
// The source PDFs have no "views" column for posts, and the extraction
// often landed Impressions in the Views column and Engagements in the
// Impressions column. When the engagements slot is empty and views exceed
// impressions, the original layout is restored: views were the real
// impressions, impressions were the real engagements, and views were never
// reported. A deterministic per-source correction, not a heuristic.
func applyLinkedInSwap(rec *report.Record) {
	if !strings.EqualFold(rec.Channel, report.ChannelLinkedIn) {
		return
	}
	if !strings.Contains(strings.ToLower(rec.Type), "post") {
		return
	}
	if rec.Engagements == nil && rec.Views != nil && rec.Impressions != nil && *rec.Views > *rec.Impressions {
		rec.Impressions, rec.Engagements, rec.Views = rec.Views, rec.Impressions, nil
	}
}

// applyInstagramColumns maps Instagram's raw "Interactions" and "Notes"
// columns onto the canonical engagements and impressions slots when those
// slots came through empty. Also a fixed per-source correction.
func applyInstagramColumns(rec *report.Record, row map[string]string) {
	if !strings.EqualFold(rec.Channel, report.ChannelInstagram) {
		return
	}
	if v := ParseInt(row[colInteractions]); v != nil && rec.Engagements == nil {
		rec.Engagements = v
	}
	if v := ParseInt(row[colNotes]); v != nil && rec.Impressions == nil {
		rec.Impressions = v
	}
}

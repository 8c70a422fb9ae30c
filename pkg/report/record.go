// Package report defines the record and dataset types produced by the
// Encore content pipeline. A Record is one piece of published content or
// activity (a video, a post, a webinar); a Dataset is the deduplicated,
// date-resolved, aggregated document consumed by the report pages.
package report

// Channel names as they appear in the combined export. Comparisons against
// these are case-insensitive; the constants are the canonical lowercase
// forms used by rules and the platform-link table.
const (
	ChannelYouTube   = "youtube"
	ChannelLinkedIn  = "linkedin"
	ChannelInstagram = "instagram"
	ChannelFHC       = "fhc"
	ChannelPodcast   = "podcast"
)

// MonthNoDate is the month bucket for records whose date could not be
// resolved. It sorts after every real YYYY-MM key.
const MonthNoDate = "_nodate"

// DateSource identifies how a record's publish date was resolved, from the
// most trustworthy (provided in the export) down to unknown.
type DateSource string

// Date sources in descending confidence order.
const (
	DateSourceProvided DateSource = "provided"
	DateSourceYouTube  DateSource = "youtube_publish"
	DateSourceInferred DateSource = "inferred_report_month"
	DateSourceUnknown  DateSource = "unknown"
)

// matchedPrefix tags records whose date was adopted from a properly-dated
// duplicate during cross-period reconciliation.
const matchedPrefix = "matched_"

// String returns the string representation of a DateSource.
func (s DateSource) String() string {
	return string(s)
}

// Matched returns the reconciled form of a date source, e.g.
// "matched_provided" for a record that adopted a provided date.
func (s DateSource) Matched() DateSource {
	return DateSource(matchedPrefix + string(s))
}

// IsMatched reports whether the source was produced by reconciliation.
func (s DateSource) IsMatched() bool {
	return len(s) > len(matchedPrefix) && s[:len(matchedPrefix)] == matchedPrefix
}

// DatePriority returns the confidence ranking used to arbitrate merges:
// a record's date may only be replaced by a date of equal or higher rank.
// Callers receive a fresh map so the table stays effectively immutable.
func DatePriority() map[DateSource]int {
	return map[DateSource]int{
		DateSourceProvided: 3,
		DateSourceYouTube:  2,
		DateSourceInferred: 1,
		DateSourceUnknown:  0,
	}
}

// LinkType describes how a record's link field was populated.
type LinkType string

// Link types, set once merging and reconciliation are final.
const (
	LinkDirect   LinkType = "direct"   // the record carried its own link
	LinkPlatform LinkType = "platform" // filled from the platform-link table
	LinkNone     LinkType = "none"     // no link and no platform fallback
)

// Record is one piece of content or activity from the combined export.
// Metric fields are pointers: nil means "not reported", which the report
// pages render differently from an explicit zero.
type Record struct {
	Channel string `json:"channel"`
	Type    string `json:"type"`
	Title   string `json:"title"`
	Link    string `json:"link"`

	DateRaw    string     `json:"date_raw"`
	DateISO    string     `json:"date_iso"`
	Month      string     `json:"month"`
	DateSource DateSource `json:"date_source"`

	Impressions  *int64 `json:"impressions"`
	Views        *int64 `json:"views"`
	Engagements  *int64 `json:"engagements"`
	Clicks       *int64 `json:"clicks"`
	Attendees    *int64 `json:"attendees"`
	ChatCount    *int64 `json:"chat_count"`
	EmailSends   *int64 `json:"email_sends"`
	ArticleViews *int64 `json:"article_views"`
	Interactions *int64 `json:"interactions"`

	ReportMonth string `json:"report_month"`

	LinkType LinkType `json:"link_type,omitempty"`
}

// ImpressionsValue returns the impressions metric with nil treated as 0,
// the reading used by merge and reconciliation comparisons.
func (r *Record) ImpressionsValue() int64 {
	if r.Impressions == nil {
		return 0
	}
	return *r.Impressions
}

// MonthKey returns the YYYY-MM bucket for an ISO date, or MonthNoDate when
// the date is empty. Month must never be derived any other way.
func MonthKey(dateISO string) string {
	if len(dateISO) < 7 {
		return MonthNoDate
	}
	return dateISO[:7]
}

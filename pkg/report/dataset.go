package report

import (
	"sort"
	"time"

	"github.com/govcongiants/encore/pkg/errors"
)

// Totals accumulates the aggregated metric set for one month or one
// channel-within-month. Interactions are carried on records but are not
// part of the aggregate contract.
type Totals struct {
	Impressions  int64 `json:"impressions"`
	Views        int64 `json:"views"`
	Engagements  int64 `json:"engagements"`
	Clicks       int64 `json:"clicks"`
	Attendees    int64 `json:"attendees"`
	ChatCount    int64 `json:"chat_count"`
	EmailSends   int64 `json:"email_sends"`
	ArticleViews int64 `json:"article_views"`
	Items        int64 `json:"items"`
}

// Add accumulates a record's reported metrics. Nil metrics contribute
// nothing; the item count always increments.
func (t *Totals) Add(r *Record) {
	t.Items++
	for dst, src := range map[*int64]*int64{
		&t.Impressions:  r.Impressions,
		&t.Views:        r.Views,
		&t.Engagements:  r.Engagements,
		&t.Clicks:       r.Clicks,
		&t.Attendees:    r.Attendees,
		&t.ChatCount:    r.ChatCount,
		&t.EmailSends:   r.EmailSends,
		&t.ArticleViews: r.ArticleViews,
	} {
		if src != nil {
			*dst += *src
		}
	}
}

// MonthAggregate holds one month's totals, its per-channel breakdown, and
// the empty-month flag for months inside the configured range that saw no
// new content.
type MonthAggregate struct {
	Totals    *Totals            `json:"totals"`
	ByChannel map[string]*Totals `json:"by_channel"`
	IsEmpty   bool               `json:"is_empty,omitempty"`
	Note      string             `json:"note,omitempty"`
}

// Series holds chart-ready arrays parallel to Months.
type Series struct {
	Months      []string `json:"months"`
	Impressions []int64  `json:"impressions"`
	Views       []int64  `json:"views"`
	Engagements []int64  `json:"engagements"`
	Clicks      []int64  `json:"clicks"`
	Attendees   []int64  `json:"attendees"`
	ChatCount   []int64  `json:"chat_count"`
	Items       []int64  `json:"items"`
}

// Dataset is the document handed to the report pages. GeneratedAt is UTC at
// second precision in the fixed "2006-01-02T15:04:05Z" layout.
type Dataset struct {
	GeneratedAt string                     `json:"generated_at"`
	Months      []string                   `json:"months"`
	Items       []*Record                  `json:"items"`
	Aggregates  map[string]*MonthAggregate `json:"aggregates"`
	Series      *Series                    `json:"series"`
}

// GeneratedAtLayout is the time layout for Dataset.GeneratedAt.
const GeneratedAtLayout = "2006-01-02T15:04:05Z"

// monthLayout parses the YYYY-MM keys used throughout the dataset.
const monthLayout = "2006-01"

// MonthRange expands an inclusive start/end pair of YYYY-MM keys into the
// contiguous month sequence between them.
func MonthRange(start, end string) ([]string, error) {
	s, err := time.Parse(monthLayout, start)
	if err != nil {
		return nil, errors.NewValidationError("start", start, "not a YYYY-MM month key")
	}
	e, err := time.Parse(monthLayout, end)
	if err != nil {
		return nil, errors.NewValidationError("end", end, "not a YYYY-MM month key")
	}
	if e.Before(s) {
		return nil, errors.NewValidationError("end", end, "month range ends before it starts")
	}

	var months []string
	for m := s; !m.After(e); m = m.AddDate(0, 1, 0) {
		months = append(months, m.Format(monthLayout))
	}
	return months, nil
}

// noDateSortKey places undated records after every real date.
const noDateSortKey = "9999-99-99"

// SortItems orders records for output: date ascending with undated records
// last, then channel and title. Type and link break any remaining ties so
// the order is total and runs are reproducible.
func SortItems(items []*Record) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		ad, bd := a.DateISO, b.DateISO
		if ad == "" {
			ad = noDateSortKey
		}
		if bd == "" {
			bd = noDateSortKey
		}
		if ad != bd {
			return ad < bd
		}
		if a.Channel != b.Channel {
			return a.Channel < b.Channel
		}
		if a.Title != b.Title {
			return a.Title < b.Title
		}
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		return a.Link < b.Link
	})
}

// Package resolve determines the best available publish date for a record
// and tags it with a confidence tier. Precedence is strict: a date provided
// in the export beats a confirmed YouTube publish date, which beats the
// first-of-month anchor inferred from the reporting-period label.
package resolve

import (
	"context"
	"strings"

	"github.com/govcongiants/encore/pkg/normalize"
	"github.com/govcongiants/encore/pkg/report"
)

// Confirmer confirms the publish date for a content URL. ok is false when
// the URL carries no recognizable identifier or no date could be confirmed;
// confirmation failures are never errors.
type Confirmer interface {
	PublishDate(ctx context.Context, rawURL string) (iso string, ok bool)
}

// Resolver resolves record dates. A nil Confirmer disables the external
// confirmation tier; records fall through to the reporting-period anchor.
type Resolver struct {
	confirmer Confirmer
}

// New creates a Resolver over the given confirmer.
func New(confirmer Confirmer) *Resolver {
	return &Resolver{confirmer: confirmer}
}

// Resolve fills a record's date_iso, month, and date_source in place.
func (r *Resolver) Resolve(ctx context.Context, rec *report.Record) {
	if d, ok := normalize.ParseHumanDate(rec.DateRaw); ok {
		rec.DateISO = d.Format(normalize.ISODate)
		rec.Month = report.MonthKey(rec.DateISO)
		rec.DateSource = report.DateSourceProvided
		return
	}

	if r.confirmer != nil && rec.Link != "" && strings.EqualFold(rec.Channel, report.ChannelYouTube) {
		if iso, ok := r.confirmer.PublishDate(ctx, rec.Link); ok {
			rec.DateISO = iso
			rec.Month = report.MonthKey(iso)
			rec.DateSource = report.DateSourceYouTube
			return
		}
	}

	if d, ok := normalize.ParseReportMonth(rec.ReportMonth); ok {
		rec.DateISO = d.Format(normalize.ISODate)
		rec.Month = report.MonthKey(rec.DateISO)
		rec.DateSource = report.DateSourceInferred
		return
	}

	rec.DateISO = ""
	rec.Month = report.MonthNoDate
	rec.DateSource = report.DateSourceUnknown
}

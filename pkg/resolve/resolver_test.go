package resolve_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/govcongiants/encore/pkg/report"
	"github.com/govcongiants/encore/pkg/resolve"
)

// fakeConfirmer answers lookups from a fixed map and records how often it
// was consulted.
type fakeConfirmer struct {
	dates map[string]string
	calls int
}

func (f *fakeConfirmer) PublishDate(_ context.Context, rawURL string) (string, bool) {
	f.calls++
	d, ok := f.dates[rawURL]
	return d, ok && d != ""
}

func TestResolvePrecedence(t *testing.T) {
	ctx := context.Background()

	t.Run("provided date wins over everything", func(t *testing.T) {
		confirmer := &fakeConfirmer{dates: map[string]string{
			"https://youtu.be/abc123XYZ": "2025-01-15",
		}}
		rec := &report.Record{
			Channel:     "youtube",
			Link:        "https://youtu.be/abc123XYZ",
			DateRaw:     "9 Apr 2025",
			ReportMonth: "May 2025",
		}

		resolve.New(confirmer).Resolve(ctx, rec)

		assert.Equal(t, "2025-04-09", rec.DateISO)
		assert.Equal(t, "2025-04", rec.Month)
		assert.Equal(t, report.DateSourceProvided, rec.DateSource)
		assert.Zero(t, confirmer.calls, "confirmer must not be consulted when a date is provided")
	})

	t.Run("confirmed publish date beats the period anchor", func(t *testing.T) {
		confirmer := &fakeConfirmer{dates: map[string]string{
			"https://youtu.be/abc123XYZ": "2025-01-15",
		}}
		rec := &report.Record{
			Channel:     "YouTube",
			Link:        "https://youtu.be/abc123XYZ",
			ReportMonth: "May 2025",
		}

		resolve.New(confirmer).Resolve(ctx, rec)

		assert.Equal(t, "2025-01-15", rec.DateISO)
		assert.Equal(t, "2025-01", rec.Month)
		assert.Equal(t, report.DateSourceYouTube, rec.DateSource)
	})

	t.Run("confirmation only applies to the video channel", func(t *testing.T) {
		confirmer := &fakeConfirmer{dates: map[string]string{
			"https://example.com/post": "2025-01-15",
		}}
		rec := &report.Record{
			Channel:     "linkedin",
			Link:        "https://example.com/post",
			ReportMonth: "May 2025",
		}

		resolve.New(confirmer).Resolve(ctx, rec)

		assert.Zero(t, confirmer.calls)
		assert.Equal(t, "2025-05-01", rec.DateISO)
		assert.Equal(t, report.DateSourceInferred, rec.DateSource)
	})

	t.Run("failed confirmation falls through to the anchor", func(t *testing.T) {
		confirmer := &fakeConfirmer{dates: map[string]string{}}
		rec := &report.Record{
			Channel:     "youtube",
			Link:        "https://youtu.be/abc123XYZ",
			ReportMonth: "May 2025",
		}

		resolve.New(confirmer).Resolve(ctx, rec)

		assert.Equal(t, 1, confirmer.calls)
		assert.Equal(t, "2025-05-01", rec.DateISO)
		assert.Equal(t, "2025-05", rec.Month)
		assert.Equal(t, report.DateSourceInferred, rec.DateSource)
	})

	t.Run("nil confirmer disables the lookup tier", func(t *testing.T) {
		rec := &report.Record{
			Channel:     "youtube",
			Link:        "https://youtu.be/abc123XYZ",
			ReportMonth: "May 2025",
		}

		resolve.New(nil).Resolve(ctx, rec)

		assert.Equal(t, report.DateSourceInferred, rec.DateSource)
	})

	t.Run("nothing resolvable lands in the no-date bucket", func(t *testing.T) {
		rec := &report.Record{Channel: "podcast", Title: "Episode 12"}

		resolve.New(nil).Resolve(ctx, rec)

		assert.Empty(t, rec.DateISO)
		assert.Equal(t, report.MonthNoDate, rec.Month)
		assert.Equal(t, report.DateSourceUnknown, rec.DateSource)
	})
}

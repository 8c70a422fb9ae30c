package encore_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agentstation/utc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	encore "github.com/govcongiants/encore"
	"github.com/govcongiants/encore/pkg/logging"
	"github.com/govcongiants/encore/pkg/report"
)

// fakeConfirmer answers publish-date lookups from a fixed table and counts
// how often it was consulted.
type fakeConfirmer struct {
	dates map[string]string
	calls int
}

func (f *fakeConfirmer) PublishDate(_ context.Context, rawURL string) (string, bool) {
	f.calls++
	d, ok := f.dates[rawURL]
	return d, ok && d != ""
}

func writeExport(t *testing.T, rows ...string) string {
	t.Helper()
	header := "Channel,Data Type,Video/Post Title,Link,Date,Report Month,Impressions,Views,Engagements,Clicks,Attendees,Chat Count,Email Sends,Article Views,Interactions,Notes"
	path := filepath.Join(t.TempDir(), "export.csv")
	content := header + "\n" + strings.Join(rows, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testConfig(t *testing.T, input string) *encore.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := encore.DefaultConfig()
	cfg.Input = input
	cfg.Output = filepath.Join(dir, "report-data.js")
	cfg.Cache = filepath.Join(dir, "cache.json")
	cfg.Months = encore.MonthsConfig{Start: "2025-03", End: "2025-05"}
	cfg.DisableLookup = true
	return cfg
}

func TestPipelineRun(t *testing.T) {
	input := writeExport(t,
		`YouTube,Video,Quarterly Kickoff,https://youtu.be/abc123XYZ,9 April 2025,April 2025,100,50,,,,,,,,`,
		`YouTube,Video,Quarterly Kickoff,https://www.youtube.com/watch?v=abc123XYZ,,April 2025,40,,,,,,,,,`,
		`Instagram,Post,Spring Promo,,,March 2025,,,,,,,,,77,`,
		`LinkedIn,Post,Hiring Update,https://www.linkedin.com/posts/x,2 May 2025,May 2025,30,200,,,,,,,,`,
		`YouTube,Video,Deep Dive Webinar Recap,https://youtu.be/def456UVW,20 April 2025,April 2025,30,,,,,,,,,`,
		`YouTube,Video,Deep Dive Webinar Recap Extended,,,May 2025,50,,,,,,,,,`,
	)
	cfg := testConfig(t, input)

	tl := logging.NewTestLogger(t)
	p, err := encore.New(encore.WithConfig(cfg), encore.WithLogger(tl.Logger))
	require.NoError(t, err)
	ds, err := p.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, ds.Items, 4)
	assert.Equal(t, []string{"2025-03", "2025-04", "2025-05"}, ds.Months)

	t.Run("sorted by date then channel then title", func(t *testing.T) {
		dates := make([]string, 0, len(ds.Items))
		for _, it := range ds.Items {
			dates = append(dates, it.DateISO)
		}
		assert.Equal(t, []string{"2025-03-01", "2025-04-09", "2025-04-20", "2025-05-02"}, dates)
	})

	t.Run("duplicate rows merge and keep the higher-confidence date", func(t *testing.T) {
		kickoff := ds.Items[1]
		require.Equal(t, "Quarterly Kickoff", kickoff.Title)
		assert.Equal(t, report.DateSourceProvided, kickoff.DateSource)
		assert.EqualValues(t, 100, kickoff.ImpressionsValue())
	})

	t.Run("re-listing adopts the matched date and link", func(t *testing.T) {
		recap := ds.Items[2]
		require.Equal(t, "Deep Dive Webinar Recap Extended", recap.Title)
		assert.Equal(t, "2025-04-20", recap.DateISO)
		assert.Equal(t, "2025-04", recap.Month)
		assert.Equal(t, report.DateSourceProvided.Matched(), recap.DateSource)
		assert.Equal(t, "https://youtu.be/def456UVW", recap.Link)
		assert.Equal(t, report.LinkDirect, recap.LinkType)
		assert.EqualValues(t, 50, recap.ImpressionsValue())
	})

	t.Run("link-less records fall back to the platform link", func(t *testing.T) {
		promo := ds.Items[0]
		require.Equal(t, "Spring Promo", promo.Title)
		assert.Equal(t, "https://www.instagram.com/govcongiants/", promo.Link)
		assert.Equal(t, report.LinkPlatform, promo.LinkType)
		assert.Equal(t, report.DateSourceInferred, promo.DateSource)
		assert.EqualValues(t, 77, *promo.Engagements, "instagram interactions map onto engagements")
	})

	t.Run("linkedin column swap restores impressions", func(t *testing.T) {
		hiring := ds.Items[3]
		require.Equal(t, "Hiring Update", hiring.Title)
		assert.EqualValues(t, 200, hiring.ImpressionsValue())
		require.NotNil(t, hiring.Engagements)
		assert.EqualValues(t, 30, *hiring.Engagements)
		assert.Nil(t, hiring.Views)
		assert.Equal(t, report.LinkDirect, hiring.LinkType)
	})

	t.Run("progress logged with stage context", func(t *testing.T) {
		assert.True(t, tl.ContainsAll(`"stage":"ingest"`, `"stage":"merge"`, `"stage":"reconcile"`))
		assert.True(t, tl.Contains(`"channel":"Instagram"`), "platform-link fallback logs the channel")
	})

	t.Run("aggregates cover every configured month", func(t *testing.T) {
		require.Len(t, ds.Aggregates, 3)
		assert.EqualValues(t, 2, ds.Aggregates["2025-04"].Totals.Items)
		assert.EqualValues(t, 150, ds.Aggregates["2025-04"].Totals.Impressions)
		assert.False(t, ds.Aggregates["2025-03"].IsEmpty)
		assert.Equal(t, []int64{0, 150, 200}, ds.Series.Impressions)
	})
}

func TestPipelineRunConfirmsYouTubeDates(t *testing.T) {
	input := writeExport(t,
		`YouTube,Video,Undated Upload,https://youtu.be/abc123XYZ,,April 2025,10,,,,,,,,,`,
		`YouTube,Video,Unconfirmable Upload,https://youtu.be/zzz999AAA,,April 2025,10,,,,,,,,,`,
	)
	cfg := testConfig(t, input)
	cfg.DisableLookup = false

	confirmer := &fakeConfirmer{dates: map[string]string{
		"https://youtu.be/abc123XYZ": "2025-04-15",
	}}
	p, err := encore.New(encore.WithConfig(cfg), encore.WithConfirmer(confirmer))
	require.NoError(t, err)
	ds, err := p.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, ds.Items, 2)

	// The unconfirmable record falls through to the reporting-period anchor
	// and sorts first on its first-of-month date.
	anchored := ds.Items[0]
	assert.Equal(t, "Unconfirmable Upload", anchored.Title)
	assert.Equal(t, "2025-04-01", anchored.DateISO)
	assert.Equal(t, report.DateSourceInferred, anchored.DateSource)

	confirmed := ds.Items[1]
	assert.Equal(t, "Undated Upload", confirmed.Title)
	assert.Equal(t, "2025-04-15", confirmed.DateISO)
	assert.Equal(t, report.DateSourceYouTube, confirmed.DateSource)

	assert.Equal(t, 2, confirmer.calls)
}

func TestPipelineRunMissingInput(t *testing.T) {
	cfg := testConfig(t, filepath.Join(t.TempDir(), "nope.csv"))
	p, err := encore.New(encore.WithConfig(cfg))
	require.NoError(t, err)

	_, err = p.Run(context.Background())
	assert.Error(t, err)
}

func TestPipelineRunCanceledContext(t *testing.T) {
	input := writeExport(t,
		`YouTube,Video,Quarterly Kickoff,https://youtu.be/abc123XYZ,9 April 2025,April 2025,100,,,,,,,,,`,
	)
	p, err := encore.New(encore.WithConfig(testConfig(t, input)))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPipelineOutputIsReproducible(t *testing.T) {
	input := writeExport(t,
		`YouTube,Video,Quarterly Kickoff,https://youtu.be/abc123XYZ,9 April 2025,April 2025,100,50,,,,,,,,`,
		`Instagram,Post,Spring Promo,,,March 2025,,,,,,,,,77,`,
	)
	cfg := testConfig(t, input)
	fixed := utc.New(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	p, err := encore.New(
		encore.WithConfig(cfg),
		encore.WithNow(func() utc.Time { return fixed }),
	)
	require.NoError(t, err)

	first, err := p.Run(context.Background())
	require.NoError(t, err)
	second, err := p.Run(context.Background())
	require.NoError(t, err)

	a, err := encore.MarshalJS(first)
	require.NoError(t, err)
	b, err := encore.MarshalJS(second)
	require.NoError(t, err)
	assert.Equal(t, a, b, "same input and clock must produce identical bytes")
}

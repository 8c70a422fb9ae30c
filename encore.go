// Package encore turns the multi-channel content export into the
// deduplicated, date-resolved dataset behind the Encore HTML reports.
//
// The pipeline runs leaves-first: rows are normalized into records, each
// record's publish date is resolved through a strict confidence precedence,
// records for the same underlying content are merged by identity, inferred
// re-listings are reconciled back onto their originals, and the survivors
// are aggregated into per-month totals and chart series.
package encore

import (
	"context"
	"strings"

	"github.com/agentstation/utc"
	"github.com/rs/zerolog"

	"github.com/govcongiants/encore/internal/ingest"
	"github.com/govcongiants/encore/pkg/aggregate"
	"github.com/govcongiants/encore/pkg/dedupe"
	"github.com/govcongiants/encore/pkg/logging"
	"github.com/govcongiants/encore/pkg/normalize"
	"github.com/govcongiants/encore/pkg/report"
	"github.com/govcongiants/encore/pkg/resolve"
	"github.com/govcongiants/encore/pkg/youtube"
)

// Pipeline executes the batch that builds a report dataset. It is
// single-threaded and synchronous: the only call that may block is the
// external publish-date lookup, bounded by its client timeout and memoized
// in the cache.
type Pipeline struct {
	config    *Config
	logger    *zerolog.Logger
	confirmer resolve.Confirmer
	now       func() utc.Time
}

// New creates a Pipeline with the given options.
func New(opts ...Option) (*Pipeline, error) {
	p := &Pipeline{
		config: DefaultConfig(),
		logger: logging.Default(),
		now:    utc.Now,
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Config returns the pipeline's configuration.
func (p *Pipeline) Config() *Config {
	return p.config
}

// Run executes the batch and returns the finished dataset. Nothing is
// written to disk except the lookup cache, which is persisted as soon as
// the merge pass completes so a failure downstream does not lose confirmed
// lookups; writing the dataset itself is the caller's move.
func (p *Pipeline) Run(ctx context.Context) (*report.Dataset, error) {
	cfg := p.config
	ctx = logging.WithLogger(ctx, p.logger)

	months, err := report.MonthRange(cfg.Months.Start, cfg.Months.End)
	if err != nil {
		return nil, err
	}

	rows, err := ingest.ReadFile(cfg.Input)
	if err != nil {
		return nil, err
	}
	logging.Ctx(logging.WithStage(ctx, "ingest")).Info().
		Int("rows", len(rows)).Str("input", cfg.Input).Msg("Read combined export")

	lookupLog := logging.Ctx(logging.WithStage(ctx, "lookup"))
	confirmer := p.confirmer
	var cache *youtube.Cache
	if confirmer == nil && !cfg.DisableLookup {
		cache = youtube.LoadCache(cfg.Cache)
		clientOpts := []youtube.ClientOption{}
		if cfg.DisableExec {
			clientOpts = append(clientOpts, youtube.WithoutExec())
		}
		confirmer = youtube.NewClient(cache, clientOpts...)
		lookupLog.Debug().Int("cached", cache.Len()).Str("cache", cfg.Cache).Msg("Loaded lookup cache")
	}

	resolver := resolve.New(confirmer)
	engine := dedupe.NewEngine(cfg.Merge)

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec := normalize.FromRow(row)
		resolver.Resolve(ctx, rec)
		engine.Add(rec)
	}
	logging.Ctx(logging.WithStage(ctx, "merge")).Info().
		Int("records", engine.Len()).Msg("Merged rows by identity")

	// Persist confirmed lookups before anything else can fail.
	if cache != nil {
		if err := cache.Save(); err != nil {
			lookupLog.Warn().Err(err).Str("cache", cfg.Cache).Msg("Could not persist lookup cache")
		}
	}

	if merged := engine.Reconcile(); merged > 0 {
		logging.Ctx(logging.WithStage(ctx, "reconcile")).Info().
			Int("pairs", merged).Msg("Reconciled cross-period re-listings")
	}

	items := engine.Records()
	applyPlatformLinks(logging.WithStage(ctx, "links"), items, cfg.PlatformLinks)
	report.SortItems(items)

	agg, series := aggregate.Build(items, months)

	return &report.Dataset{
		GeneratedAt: p.now().Format(report.GeneratedAtLayout),
		Months:      months,
		Items:       items,
		Aggregates:  agg,
		Series:      series,
	}, nil
}

// applyPlatformLinks gives every link-less record its channel's platform
// URL and stamps the link_type derivation on all records. Records become
// immutable once they enter the output list, so this runs last.
func applyPlatformLinks(ctx context.Context, items []*report.Record, links map[string]string) {
	lower := make(map[string]string, len(links))
	for ch, u := range links {
		lower[strings.ToLower(strings.TrimSpace(ch))] = u
	}
	for _, rec := range items {
		if rec.Link != "" {
			rec.LinkType = report.LinkDirect
			continue
		}
		if u, ok := lower[strings.ToLower(strings.TrimSpace(rec.Channel))]; ok && u != "" {
			rec.Link = u
			rec.LinkType = report.LinkPlatform
			logging.Ctx(logging.WithChannel(ctx, rec.Channel)).Debug().
				Str("title", rec.Title).Msg("Filled platform link")
		} else {
			rec.LinkType = report.LinkNone
		}
	}
}

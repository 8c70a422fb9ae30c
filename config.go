package encore

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/govcongiants/encore/pkg/dedupe"
	"github.com/govcongiants/encore/pkg/errors"
	"github.com/govcongiants/encore/pkg/report"
)

// Config is the report definition: where the export lives, which months the
// report covers, and the knobs of the merge passes. It is loaded from an
// encore.yaml document; every field has a working default.
type Config struct {
	// Input is the combined export CSV.
	Input string `yaml:"input" json:"input"`

	// Output is the dataset document to write.
	Output string `yaml:"output" json:"output"`

	// Format selects the output flavor: "js" wraps the dataset in a
	// window.REPORT_DATA assignment for the report pages, "json" writes
	// the bare document.
	Format string `yaml:"format" json:"format"`

	// Cache is the publish-date lookup cache file.
	Cache string `yaml:"cache" json:"cache"`

	// Months is the inclusive range of report months.
	Months MonthsConfig `yaml:"months" json:"months"`

	// PlatformLinks maps a channel to the URL used for records that carry
	// no link of their own, so every report row stays clickable.
	PlatformLinks map[string]string `yaml:"platform_links" json:"platform_links"`

	// Merge carries the thresholds of the dedup and reconciliation passes.
	Merge dedupe.Rules `yaml:"merge" json:"merge"`

	// DisableLookup turns off the external publish-date confirmation;
	// YouTube records without a provided date fall straight through to the
	// reporting-period anchor.
	DisableLookup bool `yaml:"disable_lookup" json:"disable_lookup"`

	// DisableExec turns off the extraction-tool fallback of the lookup,
	// keeping only the watch-page scrape.
	DisableExec bool `yaml:"disable_exec" json:"disable_exec"`
}

// MonthsConfig is an inclusive YYYY-MM month range.
type MonthsConfig struct {
	Start string `yaml:"start" json:"start"`
	End   string `yaml:"end" json:"end"`
}

// DefaultConfig returns the configuration the report is built with when no
// encore.yaml overrides it.
func DefaultConfig() *Config {
	return &Config{
		Input:  "Encore_Combined_Report.csv",
		Output: "report-data.js",
		Format: "js",
		Cache:  "youtube_publish_dates_cache.json",
		Months: MonthsConfig{Start: "2025-03", End: "2026-01"},
		PlatformLinks: map[string]string{
			report.ChannelLinkedIn:  "https://www.linkedin.com/company/govcongiants",
			report.ChannelInstagram: "https://www.instagram.com/govcongiants/",
			report.ChannelFHC:       "https://federalhelpcenter.com/",
			report.ChannelPodcast:   "https://open.spotify.com/show/1XZCaN0VDP9zQSNYS1syoC",
		},
		Merge: dedupe.DefaultRules(),
	}
}

// LoadConfig reads an encore.yaml document, layering it over the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the parts of the configuration that would otherwise fail
// mid-run.
func (c *Config) Validate() error {
	if c.Input == "" {
		return errors.NewConfigError("input", "no input file configured", nil)
	}
	if c.Format != "js" && c.Format != "json" {
		return errors.NewConfigError("format", "format must be js or json", nil)
	}
	if _, err := report.MonthRange(c.Months.Start, c.Months.End); err != nil {
		return errors.NewConfigError("months", err.Error(), err)
	}
	return nil
}

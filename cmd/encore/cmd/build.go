package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/govcongiants/encore"
	"github.com/govcongiants/encore/internal/cmd/output"
	"github.com/govcongiants/encore/pkg/logging"
	"github.com/govcongiants/encore/pkg/report"
)

var (
	buildInput     string
	buildOutput    string
	buildCache     string
	buildFormat    string
	buildMonths    string
	buildNoLookup  bool
	buildNoExec    bool
	buildSummary   string
	buildByChannel bool
)

// buildCmd runs the full pipeline and writes the dataset document.
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the report dataset from the combined export",
	Long: `Build reads the combined export CSV, resolves each record's publish
date, merges duplicate listings across report months, and writes the
aggregated dataset document consumed by the report pages.

Confirmed YouTube publish dates are cached between runs, so rebuilding a
report costs at most one lookup per new video.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildInput, "input", "i", "", "combined export CSV (default from config)")
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "dataset document to write (default from config)")
	buildCmd.Flags().StringVar(&buildCache, "cache", "", "publish-date lookup cache file (default from config)")
	buildCmd.Flags().StringVar(&buildFormat, "format", "", "output format: js or json (default from config)")
	buildCmd.Flags().StringVar(&buildMonths, "months", "", "report month range as start:end, e.g. 2025-03:2026-01")
	buildCmd.Flags().BoolVar(&buildNoLookup, "no-lookup", false, "skip external publish-date confirmation")
	buildCmd.Flags().BoolVar(&buildNoExec, "no-exec", false, "skip the extraction-tool lookup fallback")
	buildCmd.Flags().StringVar(&buildSummary, "summary", "", "summary format: table, json, or yaml (default auto-detect)")
	buildCmd.Flags().BoolVar(&buildByChannel, "by-channel", false, "summarize per channel instead of per month")

	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	pipeline, err := encore.New(
		encore.WithConfig(cfg),
		encore.WithLogger(logging.Default()),
	)
	if err != nil {
		return err
	}

	ctx := logging.WithOperation(cmd.Context(), "build")
	dataset, err := pipeline.Run(ctx)
	if err != nil {
		return err
	}
	if err := pipeline.Write(dataset); err != nil {
		return err
	}
	logging.Info().
		Int("items", len(dataset.Items)).
		Str("output", cfg.Output).
		Msg("Wrote report dataset")

	return printSummary(dataset)
}

// buildConfig layers the report definition file under the command flags.
func buildConfig() (*encore.Config, error) {
	var cfg *encore.Config
	switch {
	case configFile != "":
		loaded, err := encore.LoadConfig(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	default:
		if _, err := os.Stat("encore.yaml"); err == nil {
			loaded, err := encore.LoadConfig("encore.yaml")
			if err != nil {
				return nil, err
			}
			cfg = loaded
		} else {
			cfg = encore.DefaultConfig()
		}
	}

	if buildInput != "" {
		cfg.Input = buildInput
	}
	if buildOutput != "" {
		cfg.Output = buildOutput
	}
	if buildCache != "" {
		cfg.Cache = buildCache
	}
	if buildFormat != "" {
		cfg.Format = buildFormat
	}
	if buildNoLookup {
		cfg.DisableLookup = true
	}
	if buildNoExec {
		cfg.DisableExec = true
	}
	if buildMonths != "" {
		start, end, ok := strings.Cut(buildMonths, ":")
		if !ok {
			return nil, fmt.Errorf("invalid --months %q: expected start:end", buildMonths)
		}
		cfg.Months.Start = start
		cfg.Months.End = end
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// printSummary writes the per-month (or per-channel) totals to stdout in
// the detected or requested format.
func printSummary(dataset *report.Dataset) error {
	format, err := output.ParseFormat(buildSummary)
	if err != nil {
		return err
	}
	format = output.DetectFormat(string(format))
	formatter := output.NewFormatter(format)

	if format == output.FormatTable {
		data := output.MonthSummary(dataset)
		if buildByChannel {
			data = output.ChannelSummary(dataset)
		}
		return formatter.Format(os.Stdout, data)
	}
	return formatter.Format(os.Stdout, dataset.Aggregates)
}

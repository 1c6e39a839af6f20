package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/seminar-events/internal/calendar"
	"github.com/pfrederiksen/seminar-events/internal/enrich"
	"github.com/pfrederiksen/seminar-events/internal/logger"
	"github.com/pfrederiksen/seminar-events/internal/scraper"
	"github.com/pfrederiksen/seminar-events/internal/transform"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// Default config files probed when --config is not given.
var defaultConfigPaths = []string{"transform_config.yaml", "transform_config.json"}

var (
	flagICSURL     string
	flagConfig     string
	flagOutput     string
	flagPrintOnly  bool
	flagLimit      int
	flagTimezone   string
	flagTimeout    time.Duration
	flagVerbose    bool
	flagTitlePfx   string
	flagEnrich     bool
	flagEnrichOver bool
	flagContent    bool
	flagContOver   bool
	flagContFormat string
	flagRawDet     bool
	flagRawDetOver bool
	flagRawExt     bool
	flagRawExtOver bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seminar-events",
		Short: "Convert an iCalendar seminar feed into normalized JSON records",
		Long: `Fetches an iCalendar feed, maps each event into a flat JSON record
per a configurable field mapping, and optionally enriches records by
scraping each event's detail page for titles, body content, and raw
details with Abstract/Bio extraction.`,
		RunE: runPipeline,
	}

	cmd.Flags().StringVar(&flagICSURL, "ics-url", "", "ICS feed URL or local file path (env ICS_URL)")
	cmd.Flags().StringVar(&flagConfig, "config", "", "Transform config file (YAML or JSON)")
	cmd.Flags().StringVar(&flagOutput, "output", "", "Output JSON file; stdout when empty (env OUTPUT_FILE)")
	cmd.Flags().BoolVar(&flagPrintOnly, "print-only", false, "Print to stdout even when an output file is configured")
	cmd.Flags().IntVar(&flagLimit, "limit", 0, "Emit at most N records (0 = all)")
	cmd.Flags().StringVar(&flagTimezone, "timezone", "", "Target timezone for event times (env TARGET_TZ)")
	cmd.Flags().DurationVar(&flagTimeout, "timeout", scraper.DefaultTimeout, "Per-page fetch timeout for enrichment")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging (env ENRICH_DEBUG)")
	cmd.Flags().StringVar(&flagTitlePfx, "title-prefix", "", "Prefix template for fallback titles, {field} refs allowed (env TITLE_PREFIX_TEMPLATE)")
	cmd.Flags().BoolVar(&flagEnrich, "enrich-titles", false, "Fill titles from detail page subtitles (env ENRICH_TITLES)")
	cmd.Flags().BoolVar(&flagEnrichOver, "enrich-overwrite", false, "Overwrite existing titles (env ENRICH_OVERWRITE)")
	cmd.Flags().BoolVar(&flagContent, "enrich-content", false, "Fill content from detail page bodies (env ENRICH_CONTENT)")
	cmd.Flags().BoolVar(&flagContOver, "enrich-content-overwrite", false, "Overwrite existing content (env ENRICH_CONTENT_OVERWRITE)")
	cmd.Flags().StringVar(&flagContFormat, "content-format", "text", "Content serialization: text, markdown, or html (env ENRICH_CONTENT_FORMAT)")
	cmd.Flags().BoolVar(&flagRawDet, "enrich-raw-details", false, "Store raw detail HTML on each record (env ENRICH_RAW_DETAILS)")
	cmd.Flags().BoolVar(&flagRawDetOver, "enrich-raw-details-overwrite", false, "Overwrite existing raw details (env ENRICH_RAW_DETAILS_OVERWRITE)")
	cmd.Flags().BoolVar(&flagRawExt, "enrich-raw-extracts", true, "Extract Abstract/Bio from stored raw details (env ENRICH_RAW_EXTRACTS)")
	cmd.Flags().BoolVar(&flagRawExtOver, "enrich-raw-extracts-overwrite", false, "Overwrite existing extracts")

	return cmd
}

// runPipeline is the main command logic: fetch, parse, map, enrich, write.
func runPipeline(cmd *cobra.Command, args []string) error {
	resolveEnv(cmd)

	if flagVerbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
	}

	source := strings.TrimSpace(flagICSURL)
	if source == "" {
		return fmt.Errorf("--ics-url or ICS_URL is required")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagTimezone != "" {
		cfg.TargetTimezone = flagTimezone
	}

	fetchStart := time.Now()
	raw, err := calendar.Fetch(source)
	if err != nil {
		return fmt.Errorf("fetching feed: %w", err)
	}
	logger.RecordTiming("feed_fetch", time.Since(fetchStart))

	entries, err := calendar.Parse(raw)
	if err != nil {
		return fmt.Errorf("parsing feed: %w", err)
	}
	logger.Info("parsed feed", logger.Fields{"source": source, "events": len(entries)})

	records := transform.MapCalendar(entries, cfg)

	en := enrich.New(enrich.Options{
		Timeout:              flagTimeout,
		BypassHeader:         bypassHeaderValue(),
		ContentFormat:        scraper.ParseFormat(flagContFormat),
		TitleOverwrite:       flagEnrichOver,
		ContentOverwrite:     flagContOver,
		RawDetailsOverwrite:  flagRawDetOver,
		RawExtractsOverwrite: flagRawExtOver,
	})

	if flagEnrich {
		start := time.Now()
		stats := en.Titles(records)
		logger.RecordTiming("enrich_titles", time.Since(start))
		logger.IncrCounter("records_updated", int64(stats.Updated))
		fmt.Fprintf(os.Stderr, "Enriched titles: attempted=%d updated=%d errors=%d overwrite=%v\n",
			stats.Attempted, stats.Updated, stats.Errors, flagEnrichOver)

		// Post-process fallback so no blank or TBD titles remain.
		filled := enrich.FillTitleFallback(records, false, flagTitlePfx)
		if filled > 0 {
			fmt.Fprintf(os.Stderr, "Fallback populated %d titles from speaker field\n", filled)
		}
	}

	if flagContent {
		start := time.Now()
		stats := en.Content(records)
		logger.RecordTiming("enrich_content", time.Since(start))
		logger.IncrCounter("records_updated", int64(stats.Updated))
		fmt.Fprintf(os.Stderr, "Enriched content: attempted=%d updated=%d errors=%d overwrite=%v format=%s\n",
			stats.Attempted, stats.Updated, stats.Errors, flagContOver, scraper.ParseFormat(flagContFormat))
	}

	if flagRawDet {
		start := time.Now()
		stats := en.RawDetails(records)
		logger.RecordTiming("enrich_raw_details", time.Since(start))
		logger.IncrCounter("records_updated", int64(stats.Updated))
		fmt.Fprintf(os.Stderr, "Enriched raw details: attempted=%d updated=%d errors=%d overwrite=%v\n",
			stats.Attempted, stats.Updated, stats.Errors, flagRawDetOver)
	}

	if flagRawExt {
		stats := en.RawExtracts(records)
		fmt.Fprintf(os.Stderr, "Raw extracts: attempted=%d abstract=%d bio=%d skipped=%d errors=%d\n",
			stats.Attempted, stats.UpdatedAbstract, stats.UpdatedBio, stats.SkippedMissingDetails, stats.Errors)
	}

	if flagVerbose {
		logger.Debug("pipeline metrics", logger.Fields{"metrics": logger.GetMetricsSnapshot()})
	}

	return WriteRecords(records, flagOutput, flagLimit, flagPrintOnly)
}

// loadConfig loads the transform config from --config, or from the default
// file names when present, or falls back to built-in defaults.
func loadConfig() (transform.Config, error) {
	if flagConfig != "" {
		cfg, err := transform.Load(flagConfig)
		if err != nil {
			return transform.Config{}, fmt.Errorf("loading config: %w", err)
		}
		return cfg, nil
	}
	for _, path := range defaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			cfg, err := transform.Load(path)
			if err != nil {
				return transform.Config{}, fmt.Errorf("loading config: %w", err)
			}
			logger.Debug("loaded default config", logger.Fields{"path": path})
			return cfg, nil
		}
	}
	return transform.DefaultConfig(), nil
}

// bypassHeaderValue returns the bot-bypass header value. Defaults to "1";
// set BOT_BYPASS_HEADER_VALUE empty to omit the header.
func bypassHeaderValue() string {
	if v, ok := os.LookupEnv("BOT_BYPASS_HEADER_VALUE"); ok {
		return v
	}
	return "1"
}

// resolveEnv applies environment fallbacks for flags the user did not set
// on the command line. Explicit flags always win.
func resolveEnv(cmd *cobra.Command) {
	envString(cmd, "ics-url", "ICS_URL", &flagICSURL)
	envString(cmd, "output", "OUTPUT_FILE", &flagOutput)
	envString(cmd, "timezone", "TARGET_TZ", &flagTimezone)
	envString(cmd, "title-prefix", "TITLE_PREFIX_TEMPLATE", &flagTitlePfx)
	envString(cmd, "content-format", "ENRICH_CONTENT_FORMAT", &flagContFormat)
	envBool(cmd, "verbose", "ENRICH_DEBUG", &flagVerbose)
	envBool(cmd, "enrich-titles", "ENRICH_TITLES", &flagEnrich)
	envBool(cmd, "enrich-overwrite", "ENRICH_OVERWRITE", &flagEnrichOver)
	envBool(cmd, "enrich-content", "ENRICH_CONTENT", &flagContent)
	envBool(cmd, "enrich-content-overwrite", "ENRICH_CONTENT_OVERWRITE", &flagContOver)
	envBool(cmd, "enrich-raw-details", "ENRICH_RAW_DETAILS", &flagRawDet)
	envBool(cmd, "enrich-raw-details-overwrite", "ENRICH_RAW_DETAILS_OVERWRITE", &flagRawDetOver)
	envBool(cmd, "enrich-raw-extracts", "ENRICH_RAW_EXTRACTS", &flagRawExt)
}

func envString(cmd *cobra.Command, flag, env string, dst *string) {
	if cmd.Flags().Changed(flag) {
		return
	}
	if v, ok := os.LookupEnv(env); ok && v != "" {
		*dst = v
	}
}

func envBool(cmd *cobra.Command, flag, env string, dst *bool) {
	if cmd.Flags().Changed(flag) {
		return
	}
	if v, ok := os.LookupEnv(env); ok && v != "" {
		*dst = Truthy(v)
	}
}

// Truthy reports whether an environment value means "on".
func Truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}

package enrich

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/seminar-events/internal/event"
	"github.com/pfrederiksen/seminar-events/internal/logger"
	"github.com/pfrederiksen/seminar-events/internal/scraper"
)

// Options configures an Enricher. Passed explicitly rather than read from
// ambient process state so each pipeline is independently testable.
type Options struct {
	// Timeout bounds each page fetch; zero selects the scraper default.
	Timeout time.Duration
	// BypassHeader is the optional site bot-bypass header value.
	BypassHeader string
	// ContentFormat selects the content pipeline's serialization.
	ContentFormat scraper.Format

	TitleOverwrite       bool
	ContentOverwrite     bool
	RawDetailsOverwrite  bool
	RawExtractsOverwrite bool
}

// Stats summarizes one fetch-based pipeline invocation. Purely
// observational; never feeds back into behavior within the same call.
type Stats struct {
	Attempted         int
	Updated           int
	SkippedMissingURL int
	Errors            int
}

// RawExtractStats summarizes a raw-extracts invocation.
type RawExtractStats struct {
	Attempted             int
	SkippedMissingDetails int
	UpdatedAbstract       int
	UpdatedBio            int
	Errors                int
}

// Enricher runs the enrichment pipelines. Each pipeline iterates records
// strictly in order with at most one fetch per distinct URL per invocation;
// caches are private to one invocation and never shared across pipelines.
type Enricher struct {
	fetcher *scraper.Fetcher
	opts    Options
}

// New creates an Enricher.
func New(opts Options) *Enricher {
	if opts.ContentFormat == "" {
		opts.ContentFormat = scraper.FormatText
	}
	return &Enricher{
		fetcher: scraper.NewFetcher(opts.Timeout, opts.BypassHeader),
		opts:    opts,
	}
}

// Titles fills each record's title from the detail page subtitle.
func (en *Enricher) Titles(records []event.Record) Stats {
	return en.enrichField(records, scraper.KindSubtitle, event.FieldTitle, scraper.FormatText, en.opts.TitleOverwrite)
}

// Content fills each record's content from the detail page body, serialized
// in the configured format.
func (en *Enricher) Content(records []event.Record) Stats {
	return en.enrichField(records, scraper.KindContentBody, event.FieldContent, en.opts.ContentFormat, en.opts.ContentOverwrite)
}

// RawDetails stores the detail container's inner HTML on each record.
func (en *Enricher) RawDetails(records []event.Record) Stats {
	return en.enrichField(records, scraper.KindRawDetails, event.FieldRawDetails, scraper.FormatHTML, en.opts.RawDetailsOverwrite)
}

// enrichField is the shared pipeline shape: skip records without a URL,
// fetch-or-cache the extracted value, and overwrite only when permitted.
func (en *Enricher) enrichField(records []event.Record, kind scraper.SectionKind, field string, format scraper.Format, overwrite bool) Stats {
	var stats Stats
	cache := make(map[string]string)

	for _, rec := range records {
		url := rec.GetString(event.FieldURLRef)
		if url == "" {
			stats.SkippedMissingURL++
			continue
		}
		stats.Attempted++

		value, cached := cache[url]
		if cached {
			logger.Debug("enrich cache hit", logger.Fields{"url": url, "field": field})
		} else {
			var failed bool
			value, failed = en.lookup(url, kind, format)
			// Cache misses and failures too: a consistently-failing URL is
			// fetched once per run.
			cache[url] = value
			if failed {
				stats.Errors++
				logger.Debug("enrich fetch failed", logger.Fields{"url": url, "field": field})
				continue
			}
		}

		if value == "" {
			continue
		}
		existing := rec.GetString(field)
		if overwrite || strings.TrimSpace(existing) == "" {
			rec.SetString(field, value)
			stats.Updated++
			logger.Debug("enrich updated", logger.Fields{"url": url, "field": field})
		}
	}
	return stats
}

// lookup fetches a page and extracts the section. failed is true only for
// transport/parse failures; a structural miss (page fine, section absent)
// returns an empty value without being an error.
func (en *Enricher) lookup(url string, kind scraper.SectionKind, format scraper.Format) (value string, failed bool) {
	body, ok := en.fetcher.Fetch(url)
	if !ok {
		return "", true
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", true
	}
	sel := scraper.Locate(doc, kind)
	if sel == nil {
		return "", false
	}
	value = strings.TrimSpace(scraper.Serialize(sel, format))
	if kind == scraper.KindSubtitle {
		// Subtitles are single-line.
		value = event.CollapseWhitespace(value)
	}
	return value, false
}

// RawExtracts reprocesses stored raw details into Abstract/Bio extracts.
// No network. Each sub-field is extracted independently: an abstract failure
// never blocks the bio for the same record.
func (en *Enricher) RawExtracts(records []event.Record) RawExtractStats {
	var stats RawExtractStats

	for _, rec := range records {
		raw := rec.GetString(event.FieldRawDetails)
		if strings.TrimSpace(raw) == "" {
			stats.SkippedMissingDetails++
			continue
		}
		stats.Attempted++

		if updated, err := en.extractInto(rec, raw, scraper.MarkerAbstract, event.FieldExtractAbstract); err != nil {
			stats.Errors++
		} else if updated {
			stats.UpdatedAbstract++
		}
		if updated, err := en.extractInto(rec, raw, scraper.MarkerBio, event.FieldExtractBio); err != nil {
			stats.Errors++
		} else if updated {
			stats.UpdatedBio++
		}
	}
	return stats
}

func (en *Enricher) extractInto(rec event.Record, raw, marker, field string) (bool, error) {
	text, err := scraper.ExtractMarked(raw, marker)
	if err != nil {
		return false, err
	}
	if text == "" {
		return false, nil
	}
	existing := rec.GetString(field)
	if !en.opts.RawExtractsOverwrite && strings.TrimSpace(existing) != "" {
		return false, nil
	}
	rec.SetString(field, text)
	return true, nil
}

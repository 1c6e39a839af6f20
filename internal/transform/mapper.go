package transform

import (
	"sort"
	"strings"
	"time"

	"github.com/pfrederiksen/seminar-events/internal/calendar"
	"github.com/pfrederiksen/seminar-events/internal/event"
)

// MapEntry converts one raw calendar entry into an output record.
func MapEntry(e calendar.Entry, cfg Config) event.Record {
	out := event.Record{}

	for source, target := range cfg.FieldMappings {
		if cfg.masked(source) {
			continue
		}
		switch source {
		case SourceBegin:
			if !e.HasStart {
				continue
			}
			out[target] = formatTime(e.Start, cfg)
		case SourceEnd:
			if !e.HasEnd {
				continue
			}
			out[target] = formatTime(e.End, cfg)
		case SourceUID:
			if e.UID == "" {
				continue
			}
			out[target] = e.UID
		case SourceURL:
			if e.URL == "" {
				continue
			}
			out[target] = e.URL
		case SourceDescription:
			if e.Description == "" {
				continue
			}
			out[target] = transformDescription(e.Description, cfg)
		case SourceSummary:
			if e.Summary == "" {
				continue
			}
			// Always a single string, even with multiple commas.
			out[target] = event.EscapeCommas(e.Summary)
		case SourceCategories:
			if len(e.Categories) == 0 {
				continue
			}
			out[target] = joinCategories(e.Categories, cfg)
		}
	}

	out[event.FieldLocation] = ParseLocation(e.Location)

	// Placeholders never overwrite a mapped value.
	for key, value := range cfg.Placeholders {
		if !out.Has(key) {
			out[key] = value
		}
	}

	for newField, sourceField := range cfg.Copies {
		if out.Has(sourceField) {
			out[newField] = out[sourceField]
		}
	}

	return out
}

// MapCalendar maps all entries, sorted ascending by start instant. Entries
// without a start sort first via an empty-string sentinel; they are kept
// rather than dropped so the external validator sees the whole feed.
func MapCalendar(entries []calendar.Entry, cfg Config) []event.Record {
	sorted := make([]calendar.Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sortKey(sorted[i]) < sortKey(sorted[j])
	})

	records := make([]event.Record, 0, len(sorted))
	for _, e := range sorted {
		records = append(records, MapEntry(e, cfg))
	}
	return records
}

func sortKey(e calendar.Entry) string {
	if !e.HasStart {
		return ""
	}
	return e.Start.UTC().Format(time.RFC3339)
}

// ParseLocation splits a raw "<detail> - <name>" string on the first hyphen.
// No hyphen means the whole string is the detail; missing input yields
// all-empty fields. The id slot is reserved for an upstream room registry.
func ParseLocation(raw string) event.Location {
	if strings.TrimSpace(raw) == "" {
		return event.Location{}
	}
	parts := strings.SplitN(raw, "-", 2)
	loc := event.Location{Detail: strings.TrimSpace(parts[0])}
	if len(parts) == 2 {
		loc.Name = strings.TrimSpace(parts[1])
	}
	return loc
}

func formatTime(t time.Time, cfg Config) string {
	if loc, err := time.LoadLocation(cfg.TargetTimezone); err == nil {
		t = t.In(loc)
	}
	return t.Format(cfg.TimeFormat)
}

func transformDescription(desc string, cfg Config) string {
	if cfg.EscapeDescription {
		desc = event.EscapeSeparators(desc)
	}
	if cfg.CollapseWhitespace {
		desc = event.CleanText(desc, event.NewlineMode(cfg.NewlineMode))
	}
	return desc
}

func joinCategories(cats []string, cfg Config) string {
	if len(cats) == 1 {
		return cats[0]
	}
	if !cfg.JoinCategories {
		return cats[0]
	}
	sorted := make([]string, len(cats))
	copy(sorted, cats)
	sort.Strings(sorted)
	return strings.Join(sorted, cfg.CategoryDelimiter)
}

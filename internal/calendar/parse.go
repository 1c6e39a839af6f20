package calendar

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
)

// Entry is one raw calendar event, flattened from a VEVENT.
type Entry struct {
	UID         string
	Start       time.Time
	End         time.Time
	HasStart    bool
	HasEnd      bool
	Summary     string
	Description string
	URL         string
	Location    string
	Categories  []string
}

// Parse parses raw ICS text into entries.
func Parse(raw string) ([]Entry, error) {
	cal, err := ics.ParseCalendar(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing calendar: %w", err)
	}

	events := cal.Events()
	entries := make([]Entry, 0, len(events))
	for _, ev := range events {
		entry := Entry{
			UID:         propValue(ev, ics.ComponentPropertyUniqueId),
			Summary:     unescapeText(propValue(ev, ics.ComponentPropertySummary)),
			Description: unescapeText(propValue(ev, ics.ComponentPropertyDescription)),
			URL:         propValue(ev, ics.ComponentPropertyUrl),
			Location:    unescapeText(propValue(ev, ics.ComponentPropertyLocation)),
			Categories:  splitCategories(propValue(ev, ics.ComponentPropertyCategories)),
		}
		if start, err := ev.GetStartAt(); err == nil {
			entry.Start = start
			entry.HasStart = true
		}
		if end, err := ev.GetEndAt(); err == nil {
			entry.End = end
			entry.HasEnd = true
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// propValue returns the raw value of a property, or "" when absent.
func propValue(ev *ics.VEvent, prop ics.ComponentProperty) string {
	p := ev.GetProperty(prop)
	if p == nil {
		return ""
	}
	return p.Value
}

// unescapeText folds RFC 5545 \n / \N sequences back into real newlines.
// Escaped separators (\, and \;) are deliberately left intact so the mapper
// can distinguish already-escaped separators from bare ones.
func unescapeText(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && (s[i+1] == 'n' || s[i+1] == 'N') {
			b.WriteByte('\n')
			i++
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// splitCategories splits a CATEGORIES value on unescaped commas.
func splitCategories(raw string) []string {
	if raw == "" {
		return nil
	}
	var cats []string
	var current strings.Builder
	escaped := false
	for _, r := range raw {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\':
			current.WriteRune(r)
			escaped = true
		case r == ',':
			if c := strings.TrimSpace(current.String()); c != "" {
				cats = append(cats, c)
			}
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	if c := strings.TrimSpace(current.String()); c != "" {
		cats = append(cats, c)
	}
	return cats
}

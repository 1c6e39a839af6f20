package enrich

import (
	"regexp"
	"strings"

	"github.com/pfrederiksen/seminar-events/internal/event"
)

// MaxPrefixLength caps a rendered title prefix; anything longer is discarded
// entirely (speaker used bare) rather than truncated.
const MaxPrefixLength = 80

var fieldRefPattern = regexp.MustCompile(`\{([A-Za-z][A-Za-z0-9_]*)\}`)

// FillTitleFallback fills missing titles from the speaker field as a
// last-resort, network-free pass. A title is missing when it is empty,
// whitespace, or "TBD" in any casing. The optional prefix template may
// reference record fields as {name}; unresolved references render empty.
// Returns the number of titles filled.
func FillTitleFallback(records []event.Record, overwrite bool, prefixTemplate string) int {
	count := 0
	for _, rec := range records {
		speaker := rec.GetString(event.FieldSpeaker)
		if strings.TrimSpace(speaker) == "" {
			continue
		}
		if !overwrite && !event.IsMissing(rec.GetString(event.FieldTitle)) {
			continue
		}

		title := speaker
		if prefixTemplate != "" {
			if prefix := renderPrefix(prefixTemplate, rec); prefix != "" && len(prefix) <= MaxPrefixLength {
				title = event.CollapseWhitespace(prefix + " " + speaker)
			}
		}
		rec.SetString(event.FieldTitle, title)
		count++
	}
	return count
}

// renderPrefix substitutes {field} references from the record and collapses
// whitespace so empty substitutions leave no double spaces. Text that is not
// a well-formed reference passes through literally.
func renderPrefix(tmpl string, rec event.Record) string {
	rendered := fieldRefPattern.ReplaceAllStringFunc(tmpl, func(m string) string {
		return rec.GetString(m[1 : len(m)-1])
	})
	return event.CollapseWhitespace(rendered)
}

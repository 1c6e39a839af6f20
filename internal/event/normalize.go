package event

import "strings"

// NewlineMode controls how folded newlines inside a description are rendered.
type NewlineMode string

const (
	// NewlineSpace collapses newline runs into a single space.
	NewlineSpace NewlineMode = "space"
	// NewlineEscape renders each newline run as the literal two characters \n.
	NewlineEscape NewlineMode = "escape"
)

// CollapseWhitespace collapses all runs of whitespace (including NBSP and
// newlines) to single spaces and trims the result.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// CleanText normalizes text produced by ICS line folding: carriage returns
// become newlines, newline runs are rendered per mode, and remaining
// whitespace is collapsed.
func CleanText(s string, mode NewlineMode) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	if mode == NewlineEscape {
		var b strings.Builder
		inRun := false
		for _, r := range s {
			if r == '\n' {
				if !inRun {
					b.WriteString(`\n`)
					inRun = true
				}
				continue
			}
			inRun = false
			b.WriteRune(r)
		}
		s = b.String()
	}
	return CollapseWhitespace(s)
}

// EscapeSeparators backslash-escapes commas and semicolons that are not
// already escaped. Already-escaped separators are left untouched so the
// function is safe to run over partially-escaped ICS values.
func EscapeSeparators(s string) string {
	return escapeRunes(s, ',', ';')
}

// EscapeCommas backslash-escapes commas that are not already escaped.
func EscapeCommas(s string) string {
	return escapeRunes(s, ',')
}

func escapeRunes(s string, targets ...rune) string {
	var b strings.Builder
	b.Grow(len(s))
	escaped := false
	for _, r := range s {
		if escaped {
			b.WriteRune(r)
			escaped = false
			continue
		}
		if r == '\\' {
			b.WriteRune(r)
			escaped = true
			continue
		}
		for _, t := range targets {
			if r == t {
				b.WriteByte('\\')
				break
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

// IsMissing reports whether a field value should be treated as absent: empty,
// whitespace-only, or the placeholder "TBD" in any casing.
func IsMissing(s string) bool {
	trimmed := strings.TrimSpace(s)
	return trimmed == "" || strings.EqualFold(trimmed, "tbd")
}

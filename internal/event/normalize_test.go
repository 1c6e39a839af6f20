package event

import "testing"

func TestCollapseWhitespace(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "a  b", "a b"},
		{"newlines", "a\nb\n\nc", "a b c"},
		{"tabs and nbsp", "a\t b c", "a b c"},
		{"leading trailing", "  hello  ", "hello"},
		{"empty", "", ""},
		{"whitespace only", " \n\t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CollapseWhitespace(tt.input); got != tt.expected {
				t.Errorf("CollapseWhitespace(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		mode     NewlineMode
		expected string
	}{
		{"space mode folds newlines", "line1\nline2", NewlineSpace, "line1 line2"},
		{"space mode CR", "line1\r\nline2\rline3", NewlineSpace, "line1 line2 line3"},
		{"space mode collapses runs", "a\n\n\nb", NewlineSpace, "a b"},
		{"escape mode literal", "line1\nline2", NewlineEscape, `line1\nline2`},
		{"escape mode collapses run to one", "a\n\n\nb", NewlineEscape, `a\nb`},
		{"empty", "", NewlineSpace, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.input, tt.mode); got != tt.expected {
				t.Errorf("CleanText(%q, %s) = %q, expected %q", tt.input, tt.mode, got, tt.expected)
			}
		})
	}
}

func TestEscapeSeparators(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"comma", "a,b", `a\,b`},
		{"semicolon", "a;b", `a\;b`},
		{"already escaped untouched", `a\,b`, `a\,b`},
		{"mixed", `x, y\; z;`, `x\, y\; z\;`},
		{"no separators", "plain", "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscapeSeparators(tt.input); got != tt.expected {
				t.Errorf("EscapeSeparators(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestEscapeCommas(t *testing.T) {
	if got := EscapeCommas("Chen, NYU"); got != `Chen\, NYU` {
		t.Errorf("EscapeCommas = %q", got)
	}
	if got := EscapeCommas(`Chen\, NYU`); got != `Chen\, NYU` {
		t.Errorf("EscapeCommas double-escaped: %q", got)
	}
	// Semicolons pass through untouched.
	if got := EscapeCommas("a;b"); got != "a;b" {
		t.Errorf("EscapeCommas touched semicolon: %q", got)
	}
}

func TestIsMissing(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"", true},
		{"   ", true},
		{"TBD", true},
		{"tbd", true},
		{"  TbD  ", true},
		{"Real Title", false},
		{"TBD: details to follow", false},
	}

	for _, tt := range tests {
		if got := IsMissing(tt.input); got != tt.expected {
			t.Errorf("IsMissing(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func TestRecordStringAccess(t *testing.T) {
	r := Record{
		FieldTitle:    "Talk",
		FieldLocation: Location{Name: "Sherrerd", Detail: "101"},
	}

	if got := r.GetString(FieldTitle); got != "Talk" {
		t.Errorf("GetString(title) = %q", got)
	}
	if got := r.GetString("missing"); got != "" {
		t.Errorf("GetString(missing) = %q, expected empty", got)
	}
	// Non-string values read as empty rather than panicking.
	if got := r.GetString(FieldLocation); got != "" {
		t.Errorf("GetString(location) = %q, expected empty", got)
	}

	r.SetString(FieldSpeaker, "Alice")
	if !r.Has(FieldSpeaker) || r.GetString(FieldSpeaker) != "Alice" {
		t.Error("SetString did not store the value")
	}
	if r.Has("never-set") {
		t.Error("Has reported a field that was never set")
	}
}

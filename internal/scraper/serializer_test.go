package scraper

import (
	"strings"
	"testing"
)

func TestSerializeTextParagraphBreaks(t *testing.T) {
	doc := parseDoc(t, `<html><body><div id="frag">
		<p>First   paragraph
		with folded line.</p>
		<p>Second paragraph.</p>
	</div></body></html>`)

	got := Serialize(doc.Find("#frag"), FormatText)
	want := "First paragraph with folded line.\n\nSecond paragraph."
	if got != want {
		t.Errorf("text = %q, expected %q", got, want)
	}
}

func TestSerializeTextCollapsesBlankLineRuns(t *testing.T) {
	doc := parseDoc(t, `<html><body><div id="frag">
		<p>One</p>
		<div></div>
		<div></div>
		<p>Two</p>
	</div></body></html>`)

	got := Serialize(doc.Find("#frag"), FormatText)
	if got != "One\n\nTwo" {
		t.Errorf("text = %q", got)
	}
}

func TestSerializeStripsScriptAndStyle(t *testing.T) {
	doc := parseDoc(t, `<html><body><div id="frag">
		<p>Visible</p>
		<script>var hidden = 1;</script>
		<style>.x { color: red }</style>
	</div></body></html>`)

	for _, format := range []Format{FormatText, FormatHTML, FormatMarkdown} {
		got := Serialize(doc.Find("#frag").Clone(), format)
		if strings.Contains(got, "hidden") || strings.Contains(got, "color: red") {
			t.Errorf("format %s leaked script/style content: %q", format, got)
		}
		if !strings.Contains(got, "Visible") {
			t.Errorf("format %s lost visible content: %q", format, got)
		}
	}
}

func TestSerializeHTMLInner(t *testing.T) {
	doc := parseDoc(t, `<html><body><div id="frag"><h3>Abstract</h3><p>Line 1</p></div></body></html>`)

	got := Serialize(doc.Find("#frag"), FormatHTML)
	if !strings.HasPrefix(got, "<h3>Abstract</h3>") {
		t.Errorf("html = %q, expected inner HTML without wrapper", got)
	}
	if strings.Contains(got, "frag") {
		t.Errorf("wrapper attributes leaked: %q", got)
	}
}

func TestSerializeHTMLChildSelection(t *testing.T) {
	doc := parseDoc(t, `<html><body><div id="frag">text before <p>Hello <strong>World</strong></p></div></body></html>`)

	got := Serialize(doc.Find("#frag").Contents(), FormatHTML)
	if !strings.Contains(got, "text before") || !strings.Contains(got, "<strong>World</strong>") {
		t.Errorf("html = %q", got)
	}
	if strings.Contains(got, "frag") {
		t.Errorf("wrapper leaked into child serialization: %q", got)
	}
}

func TestSerializeMarkdown(t *testing.T) {
	doc := parseDoc(t, `<html><body><div id="frag">
		<h2>Abstract</h2>
		<p>We study <em>X</em> and <a href="https://example.org/paper">its paper</a>.</p>
		<ul><li>First</li><li>Second</li></ul>
	</div></body></html>`)

	got := Serialize(doc.Find("#frag"), FormatMarkdown)
	if !strings.Contains(got, "## Abstract") {
		t.Errorf("markdown missing ATX heading: %q", got)
	}
	if !strings.Contains(got, "*X*") && !strings.Contains(got, "_X_") {
		t.Errorf("markdown missing emphasis: %q", got)
	}
	if !strings.Contains(got, "https://example.org/paper") {
		t.Errorf("markdown missing link target: %q", got)
	}
	if !strings.Contains(got, "First") || !strings.Contains(got, "Second") {
		t.Errorf("markdown missing list items: %q", got)
	}
	if strings.Contains(got, "\n\n\n") {
		t.Errorf("markdown kept runs of blank lines: %q", got)
	}
}

func TestSerializeNilAndEmpty(t *testing.T) {
	if got := Serialize(nil, FormatText); got != "" {
		t.Errorf("Serialize(nil) = %q", got)
	}
	doc := parseDoc(t, `<html><body></body></html>`)
	if got := Serialize(doc.Find(".missing"), FormatText); got != "" {
		t.Errorf("Serialize(empty) = %q", got)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
	}{
		{"text", FormatText},
		{"markdown", FormatMarkdown},
		{"HTML", FormatHTML},
		{" markdown ", FormatMarkdown},
		{"bogus", FormatText},
		{"", FormatText},
	}

	for _, tt := range tests {
		if got := ParseFormat(tt.input); got != tt.expected {
			t.Errorf("ParseFormat(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

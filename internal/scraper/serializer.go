package scraper

import (
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/pfrederiksen/seminar-events/internal/event"
)

// Format selects the serialized shape of a located fragment.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// ParseFormat maps a configuration string to a Format; unknown values fall
// back to text.
func ParseFormat(s string) Format {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatMarkdown:
		return FormatMarkdown
	case FormatHTML:
		return FormatHTML
	default:
		return FormatText
	}
}

// blockTags are elements that terminate a text line during plain-text
// serialization.
var blockTags = map[string]bool{
	"p": true, "div": true, "section": true, "article": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"ul": true, "ol": true, "li": true, "blockquote": true, "tr": true,
	"table": true, "pre": true, "header": true, "footer": true,
}

// Serialize renders a located fragment in the requested format. Script and
// style elements are stripped first regardless of format; the parsed tree is
// discarded afterwards, so mutating it is fine.
func Serialize(sel *goquery.Selection, format Format) string {
	if sel == nil || sel.Length() == 0 {
		return ""
	}
	sel.Find("script, style").Remove()
	sel = sel.Not("script, style")

	switch format {
	case FormatHTML:
		return serializeHTML(sel)
	case FormatMarkdown:
		return serializeMarkdown(sel)
	default:
		return serializeText(sel)
	}
}

// serializeText extracts text with paragraph breaks preserved as blank lines.
func serializeText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		writeNodeText(n, &b)
	}
	return normalizeBlankLines(b.String())
}

func writeNodeText(n *html.Node, b *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
	case html.ElementNode:
		if n.Data == "br" {
			b.WriteString("\n")
			return
		}
		block := blockTags[n.Data]
		if block {
			b.WriteString("\n\n")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeNodeText(c, b)
		}
		if block {
			b.WriteString("\n\n")
		}
	case html.DocumentNode:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeNodeText(c, b)
		}
	}
}

// normalizeBlankLines collapses per-line whitespace, squeezes runs of blank
// lines down to one, and trims leading/trailing blanks.
func normalizeBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	var out []string
	blankPending := false
	for _, line := range lines {
		line = event.CollapseWhitespace(line)
		if line == "" {
			blankPending = len(out) > 0
			continue
		}
		if blankPending {
			out = append(out, "")
			blankPending = false
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// serializeMarkdown converts the fragment to Markdown, degrading to the text
// form when conversion fails.
func serializeMarkdown(sel *goquery.Selection) string {
	converter := md.NewConverter("", true, nil)
	rendered, err := converter.ConvertString(renderNodes(sel))
	if err != nil {
		return serializeText(sel)
	}
	return squeezeBlankLines(strings.TrimSpace(rendered))
}

// squeezeBlankLines collapses runs of more than one blank line to exactly one.
func squeezeBlankLines(s string) string {
	for strings.Contains(s, "\n\n\n") {
		s = strings.ReplaceAll(s, "\n\n\n", "\n\n")
	}
	return s
}

// serializeHTML returns the fragment's inner HTML for a single element, or
// the concatenated markup of an already-unwrapped child selection.
func serializeHTML(sel *goquery.Selection) string {
	if len(sel.Nodes) == 1 && sel.Nodes[0].Type == html.ElementNode {
		inner, err := sel.Html()
		if err != nil {
			// Last resort: the wrapper's full string form.
			return renderNodes(sel)
		}
		return strings.TrimSpace(inner)
	}
	return strings.TrimSpace(renderNodes(sel))
}

// renderNodes renders each node of the selection back to markup.
func renderNodes(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		if err := html.Render(&b, n); err != nil {
			return ""
		}
	}
	return b.String()
}

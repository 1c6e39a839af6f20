package scraper

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/pfrederiksen/seminar-events/internal/event"
)

// Markers recognized on event detail pages. ExtractMarked itself is
// word-agnostic.
const (
	MarkerAbstract = "Abstract"
	MarkerBio      = "Bio"
)

// blockAncestorTags bound the climb from an inline-wrapped marker word to the
// element whose text carries the full "Word:" pattern.
var blockAncestorTags = map[string]bool{
	"p": true, "div": true, "section": true, "article": true,
}

// ExtractMarked finds a marker section in raw HTML and returns its text.
//
// The marker is searched for as (1) a literal "Word:" text pattern, (2) a
// marker word wrapped in inline tags whose block ancestor carries the colon
// (e.g. <b>Bio</b>: ...), or (3) a standalone heading equal to the word. A
// colon match yields the text following the marker within that element; a
// heading match collects following siblings until the next heading. Only the
// first occurrence is used. Empty input yields empty output.
func ExtractMarked(rawHTML, marker string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", fmt.Errorf("parsing raw details: %w", err)
	}

	root := doc.Get(0)

	if text, found := findColonMarker(root, marker); found {
		return text, nil
	}
	if text, found := findInlineMarker(root, marker); found {
		return text, nil
	}
	if text, found := findHeadingMarker(doc, marker); found {
		return text, nil
	}
	return "", nil
}

// findColonMarker looks for the first text node containing the literal
// "Word:" pattern and returns the containing element's text after it.
func findColonMarker(root *html.Node, marker string) (string, bool) {
	pattern := marker + ":"
	node := findTextNode(root, func(data string) bool {
		return strings.Contains(data, pattern)
	})
	if node == nil {
		return "", false
	}
	parent := nearestElement(node)
	if parent == nil {
		return afterPattern(node.Data, pattern), true
	}
	return afterPattern(nodeText(parent), pattern), true
}

// findInlineMarker handles markers wrapped in inline emphasis tags: the word
// sits in its own text node and the colon lives outside it, so the check
// moves up to the nearest block ancestor.
func findInlineMarker(root *html.Node, marker string) (string, bool) {
	lowerWord := strings.ToLower(marker)
	lowerPattern := lowerWord + ":"

	var result string
	found := false
	walkTextNodes(root, func(node *html.Node) bool {
		if !strings.Contains(strings.ToLower(node.Data), lowerWord) {
			return true
		}
		ancestor := nearestBlockAncestor(node)
		if ancestor == nil {
			return true
		}
		text := nodeText(ancestor)
		if !strings.Contains(strings.ToLower(text), lowerPattern) {
			return true
		}
		idx := strings.Index(strings.ToLower(text), lowerPattern)
		result = event.CollapseWhitespace(text[idx+len(lowerPattern):])
		found = true
		return false
	})
	return result, found
}

// findHeadingMarker matches a heading whose exact text equals the marker word
// and collects following siblings until the next heading.
func findHeadingMarker(doc *goquery.Document, marker string) (string, bool) {
	var heading *html.Node
	doc.Find("h1, h2, h3, h4, h5, h6").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if strings.EqualFold(strings.TrimSpace(sel.Text()), marker) {
			heading = sel.Get(0)
			return false
		}
		return true
	})
	if heading == nil {
		return "", false
	}

	var parts []string
	for sib := heading.NextSibling; sib != nil; sib = sib.NextSibling {
		if sib.Type == html.ElementNode && isHeadingTag(sib.Data) {
			break
		}
		if text := strings.TrimSpace(nodeText(sib)); text != "" {
			parts = append(parts, text)
		}
	}
	return event.CollapseWhitespace(strings.Join(parts, " ")), true
}

func isHeadingTag(tag string) bool {
	switch tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}

// findTextNode returns the first text node (document order) matching the
// predicate.
func findTextNode(root *html.Node, match func(string) bool) *html.Node {
	var found *html.Node
	walkTextNodes(root, func(node *html.Node) bool {
		if match(node.Data) {
			found = node
			return false
		}
		return true
	})
	return found
}

// walkTextNodes visits text nodes depth-first; the visitor returns false to
// stop the walk.
func walkTextNodes(n *html.Node, visit func(*html.Node) bool) bool {
	if n.Type == html.TextNode {
		return visit(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walkTextNodes(c, visit) {
			return false
		}
	}
	return true
}

func nearestElement(n *html.Node) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode {
			return p
		}
	}
	return nil
}

func nearestBlockAncestor(n *html.Node) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && blockAncestorTags[p.Data] {
			return p
		}
	}
	return nil
}

// nodeText concatenates all descendant text of a node.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func afterPattern(text, pattern string) string {
	idx := strings.Index(text, pattern)
	if idx < 0 {
		return ""
	}
	return event.CollapseWhitespace(text[idx+len(pattern):])
}

package scraper

import "github.com/PuerkitoBio/goquery"

// SectionKind names a page section the locator knows how to find.
type SectionKind string

const (
	KindSubtitle    SectionKind = "subtitle"
	KindContentBody SectionKind = "content-body"
	KindRawDetails  SectionKind = "raw-details"
)

const (
	subtitleSelector      = "div.event-subtitle"
	detailsHeaderSelector = "h2.details"
)

// detailsContainerSelectors name the main details wrapper across the site's
// templates, tried in order.
var detailsContainerSelectors = []string{
	".events-detail-main",
	".event-details-main",
}

// contentWrapperSelectors are the known content wrappers that follow the
// details header, in priority order.
var contentWrapperSelectors = []string{
	".text-formatted",
	".field__item",
	".tex2jax_process",
}

// genericContentSelectors are last-resort content containers. They must only
// run after the specific strategies: a bare article tag can wrap the specific
// fragment and would duplicate its content if tried first.
var genericContentSelectors = []string{
	".event-description",
	".event-body",
	"article",
}

// strategy is one pure document probe; Locate evaluates an ordered list of
// these and the first non-nil result wins.
type strategy func(doc *goquery.Document) *goquery.Selection

// Locate finds the named section in a parsed document, or nil when no
// strategy matches.
func Locate(doc *goquery.Document, kind SectionKind) *goquery.Selection {
	var strategies []strategy
	switch kind {
	case KindSubtitle:
		strategies = []strategy{locateSubtitle}
	case KindRawDetails:
		strategies = []strategy{locateRawDetails}
	case KindContentBody:
		strategies = []strategy{locateDetailsBody, locateGenericBody}
	default:
		return nil
	}

	for _, probe := range strategies {
		if sel := probe(doc); sel != nil {
			return sel
		}
	}
	return nil
}

func locateSubtitle(doc *goquery.Document) *goquery.Selection {
	sel := doc.Find(subtitleSelector)
	if sel.Length() == 0 {
		return nil
	}
	return sel.First()
}

// locateRawDetails returns the children of the details container, not the
// wrapper itself, so the html serialization is the container's inner HTML.
func locateRawDetails(doc *goquery.Document) *goquery.Selection {
	container := findDetailsContainer(doc)
	if container == nil {
		return nil
	}
	return container.Contents()
}

// locateDetailsBody walks from the details container to the content block:
// find the "Details" header inside it, then the first known content wrapper
// after the header. No header means the container itself is the body.
func locateDetailsBody(doc *goquery.Document) *goquery.Selection {
	container := findDetailsContainer(doc)
	if container == nil {
		return nil
	}

	header := container.Find(detailsHeaderSelector).First()
	if header.Length() == 0 {
		return container
	}

	for _, sel := range contentWrapperSelectors {
		if wrapper := header.NextAllFiltered(sel); wrapper.Length() > 0 {
			return wrapper.First()
		}
		// The wrapper may sit inside a following sibling.
		if wrapper := header.NextAll().Find(sel); wrapper.Length() > 0 {
			return wrapper.First()
		}
	}

	// Default to the next generic block after the header.
	if next := header.Next(); next.Length() > 0 {
		return next
	}
	return container
}

func locateGenericBody(doc *goquery.Document) *goquery.Selection {
	for _, sel := range genericContentSelectors {
		if found := doc.Find(sel); found.Length() > 0 {
			return found.First()
		}
	}
	return nil
}

func findDetailsContainer(doc *goquery.Document) *goquery.Selection {
	for _, sel := range detailsContainerSelectors {
		if found := doc.Find(sel); found.Length() > 0 {
			return found.First()
		}
	}
	return nil
}

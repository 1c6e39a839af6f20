// Package scraper provides HTTP fetching and heuristic HTML extraction for
// event detail pages.
//
// Detail pages are rendered by several templates that place the subtitle,
// body, and labeled Abstract/Bio sections in different containers with
// different markup. The package locates sections through ordered selector
// strategies (specific containers first, generic fallbacks last), serializes
// located fragments as plain text, Markdown, or inner HTML, and extracts
// marker-delimited sections from raw HTML. Fetch failures are misses, never
// errors: a page that cannot be retrieved simply contributes no data.
package scraper

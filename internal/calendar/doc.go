// Package calendar retrieves and parses the source iCalendar feed.
//
// Feeds are read from http(s) URLs, file:// URLs, or bare local paths. Each
// VEVENT is flattened into an Entry with typed start/end instants and the raw
// text properties the transform stage maps into output records. Unlike
// enrichment fetches, a feed fetch failure is fatal and propagates to the
// caller.
package calendar

// Package enrich runs the per-field enrichment pipelines over mapped records.
//
// Three pipelines fetch each record's detail page and extract a section
// (title subtitle, content body, raw details inner HTML); a fourth reprocesses
// the stored raw details into labeled Abstract/Bio extracts without touching
// the network. Every pipeline keeps a request-scoped URL cache (misses
// included, so failing URLs are fetched once per run), isolates errors per
// record, and only ever overwrites a field when new non-empty data was
// actually obtained. The package also holds the network-free title fallback
// that fills missing titles from the speaker field.
package enrich

// Package event provides the output record model shared by the transform and
// enrichment stages.
//
// A Record is a flat field-name -> value mapping produced from one calendar
// entry. The package also holds the text normalization helpers (whitespace
// collapsing, separator escaping, missing-value detection) that every other
// stage relies on when deciding whether a field holds usable data.
package event

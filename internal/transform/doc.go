// Package transform maps raw calendar entries into output records.
//
// Mapping is driven by a declarative Config: field renames, masked fields,
// static placeholders, field copies, category joining, and the escaping and
// whitespace toggles applied to descriptions. A config document is optional;
// built-in defaults reproduce the canonical feed layout.
package transform

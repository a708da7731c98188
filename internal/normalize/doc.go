// Package normalize turns a raw submitted string into a model.ParsedURL.
//
// Normalization never fails. When structural parsing is impossible the
// result is marked Degraded and the host falls back to the raw input, so
// host-based detectors still have something to inspect.
//
// Design decision: We derive the lowered form with golang.org/x/text/cases
// rather than strings.ToLower because full Unicode case mapping changes the
// rune count and entropy of some non-Latin inputs, and the length/entropy
// detector must see the same string a Unicode-aware lowercasing produces.
package normalize

// Package detector implements the heuristic phishing detectors.
//
// Each detector inspects a normalized URL and produces at most one finding
// carrying a fixed confidence penalty. Detectors run in a fixed order:
//
//  1. Keyword: credential and urgency vocabulary anywhere in the URL
//  2. IPHost: a dotted-quad numeric host
//  3. NonASCIIHost: non-ASCII characters in the host (homoglyphs)
//  4. Entropy: overall URL length or Shannon entropy
//  5. QueryParams: credential-like query parameter names
//
// Detectors are pure functions of their input. They share no state and can
// be evaluated from any number of goroutines.
//
// The penalty constants are part of the scoring contract: historical scores
// were produced with exactly these values, so changing one changes every
// stored confidence that depended on it.
package detector

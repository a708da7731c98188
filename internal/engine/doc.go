// Package engine is the public entry point for scoring URLs.
//
// An Engine runs the normalizer, the heuristic detector set, the optional
// classifier and the score aggregator, and returns a model.ScoreResult.
// Scoring never fails: empty input, unparseable URLs and classifier
// problems all produce a well-formed result.
//
// ScanAndRecord additionally hands a model.ScanRecord to a Recorder.
// Storage is a best-effort side channel. A recorder error is wrapped in
// ErrStorageFailure and logged, and the score is returned unchanged.
//
// BatchProcessor scans many URLs concurrently with a bounded number of
// goroutines, preserving input order in its results.
package engine

// Package model defines the core data structures used throughout phishscore.
//
// This package contains the following main types:
//   - ParsedURL: The normalized view of a submitted URL
//   - Finding: A single heuristic or classifier signal with its penalty
//   - ScoreResult: The terminal output of one scan
//   - ScanRecord / UserReport: The append-only records handed to storage
//   - Summary: Aggregated counts over a batch of results
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. The detector, scoring, engine, database and report packages
// all need these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for API responses,
// report output and database storage.
package model

// Package database provides SQLite-based storage for phishscore.
//
// This package implements the ScanDB, which stores:
//   - Scan records with confidence, status and JSON-encoded reasons
//   - User-submitted reports about URLs
//
// Both tables are append-only. Storage is a best-effort side channel for the
// scoring engine: callers log write failures and never fail a scan on them.
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Existing scans.db files from earlier deployments open unchanged
// 4. WAL mode lets the history command read while the server writes
package database
